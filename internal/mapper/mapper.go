// Package mapper projects binding secret fields into a property map.
//
// Statements are written fluently and run in the order they are declared:
//
//	m := mapper.New(secret, props)
//	m.From("username").To("spring.datasource.username")
//	m.From("host", "port", "database").ToTriple("spring.datasource.url", jdbcURL)
//	m.From("jdbc-url").To("spring.datasource.url")
//	m.From("ssl").When(mapper.Truthy).ToFunc("spring.redis.ssl", strings.ToLower)
//
// Missing source keys are never an error. The last statement that writes a
// destination wins, except ToIfAbsent which never overwrites. Calling a
// single-key operation on a multi-key source (or ToTriple on anything other
// than three keys) is a programming error and panics.
package mapper

import (
	"fmt"

	"github.com/sufield/svcbind/internal/domain"
)

// Mapper reads from one secret map and writes into one Properties map.
type Mapper struct {
	src map[string]string
	dst domain.Properties
}

// New creates a Mapper. dst is written in place.
func New(src map[string]string, dst domain.Properties) *Mapper {
	if dst == nil {
		panic("mapper: destination must not be nil")
	}
	return &Mapper{src: src, dst: dst}
}

// From selects one or more source keys.
func (m *Mapper) From(keys ...string) Source {
	return Source{m: m, keys: keys, state: active}
}

type gate int

const (
	active gate = iota
	suppressed
)

func (g gate) String() string {
	if g == suppressed {
		return "suppressed"
	}
	return "active"
}

// Source is a selection of source keys. A Source is either active or
// suppressed; every projection on a suppressed Source is a no-op.
type Source struct {
	m     *Mapper
	keys  []string
	state gate
}

// Suppressed reports whether the Source was switched off by When.
func (s Source) Suppressed() bool {
	return s.state == suppressed
}

// When gates a single-key Source on pred, which sees the raw value and
// whether the key was present. A false result suppresses the Source.
// When on an already suppressed Source does not call pred.
func (s Source) When(pred func(value string, present bool) bool) Source {
	s.requireArity(1, "When")
	if s.state == suppressed {
		return s
	}
	v, ok := s.m.src[s.keys[0]]
	if !pred(v, ok) {
		s.state = suppressed
	}
	return s
}

// To copies the value to dest when the key is present.
func (s Source) To(dest string) {
	s.ToFunc(dest, nil)
}

// ToFunc stores fn(value) at dest when the key is present. A nil fn copies
// the value verbatim.
func (s Source) ToFunc(dest string, fn func(string) string) {
	s.requireArity(1, "To")
	if s.state == suppressed {
		return
	}
	v, ok := s.m.src[s.keys[0]]
	if !ok {
		return
	}
	if fn != nil {
		v = fn(v)
	}
	s.m.dst[dest] = v
}

// ToIfAbsent copies the value only when dest is not already set.
func (s Source) ToIfAbsent(dest string) {
	s.requireArity(1, "ToIfAbsent")
	if s.state == suppressed || s.m.dst.Has(dest) {
		return
	}
	if v, ok := s.m.src[s.keys[0]]; ok {
		s.m.dst[dest] = v
	}
}

// ToTriple stores fn(a, b, c) at dest only when all three keys are present.
func (s Source) ToTriple(dest string, fn func(a, b, c string) string) {
	s.requireArity(3, "ToTriple")
	if s.state == suppressed {
		return
	}
	a, okA := s.m.src[s.keys[0]]
	b, okB := s.m.src[s.keys[1]]
	c, okC := s.m.src[s.keys[2]]
	if !okA || !okB || !okC {
		return
	}
	s.m.dst[dest] = fn(a, b, c)
}

func (s Source) requireArity(n int, op string) {
	if len(s.keys) != n {
		panic(fmt.Sprintf("mapper: %s requires %d source key(s), got %d %q", op, n, len(s.keys), s.keys))
	}
}
