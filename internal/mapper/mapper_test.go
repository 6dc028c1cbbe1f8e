package mapper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sufield/svcbind/internal/domain"
)

func newMapper(src map[string]string) (*Mapper, domain.Properties) {
	dst := domain.Properties{}
	return New(src, dst), dst
}

func TestTo(t *testing.T) {
	t.Parallel()

	m, dst := newMapper(map[string]string{"host": "h"})

	m.From("host").To("out.host")
	m.From("missing").To("out.missing")

	assert.Equal(t, domain.Properties{"out.host": "h"}, dst)
}

func TestToFunc(t *testing.T) {
	t.Parallel()

	m, dst := newMapper(map[string]string{"name": "Value"})

	m.From("name").ToFunc("out", strings.ToUpper)
	m.From("missing").ToFunc("never", func(string) string {
		t.Fatal("transform must not run for a missing key")
		return ""
	})

	assert.Equal(t, domain.Properties{"out": "VALUE"}, dst)
}

func TestToIfAbsent_NeverOverwrites(t *testing.T) {
	t.Parallel()

	m, dst := newMapper(map[string]string{"url": "explicit", "other": "second"})
	dst["out.url"] = "composed"

	m.From("url").ToIfAbsent("out.url")
	m.From("other").ToIfAbsent("out.new")
	m.From("other").ToIfAbsent("out.new")
	m.From("missing").ToIfAbsent("out.none")

	assert.Equal(t, "composed", dst["out.url"])
	assert.Equal(t, "second", dst["out.new"])
	assert.False(t, dst.Has("out.none"))
}

func TestLastStatementWins(t *testing.T) {
	t.Parallel()

	m, dst := newMapper(map[string]string{"a": "1", "b": "2"})

	m.From("a").To("out")
	m.From("b").To("out")

	assert.Equal(t, "2", dst["out"])
}

func TestToTriple(t *testing.T) {
	t.Parallel()

	join := func(a, b, c string) string { return a + ":" + b + "/" + c }

	tests := []struct {
		name string
		src  map[string]string
		want domain.Properties
	}{
		{"all present", map[string]string{"h": "host", "p": "1", "d": "db"}, domain.Properties{"url": "host:1/db"}},
		{"first missing", map[string]string{"p": "1", "d": "db"}, domain.Properties{}},
		{"second missing", map[string]string{"h": "host", "d": "db"}, domain.Properties{}},
		{"third missing", map[string]string{"h": "host", "p": "1"}, domain.Properties{}},
		{"empty values still count", map[string]string{"h": "", "p": "", "d": ""}, domain.Properties{"url": ":/"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, dst := newMapper(tt.src)
			m.From("h", "p", "d").ToTriple("url", join)
			assert.Equal(t, tt.want, dst)
		})
	}
}

func TestWhen(t *testing.T) {
	t.Parallel()

	m, dst := newMapper(map[string]string{"ssl": "true", "off": "false"})

	m.From("ssl").When(Truthy).To("out.ssl")
	m.From("off").When(Truthy).To("out.off")

	assert.Equal(t, domain.Properties{"out.ssl": "true"}, dst)
}

func TestWhen_SuppressedIsInert(t *testing.T) {
	t.Parallel()

	m, dst := newMapper(map[string]string{"k": "v"})

	src := m.From("k").When(func(string, bool) bool { return false })
	assert.True(t, src.Suppressed())

	calls := 0
	again := src.When(func(string, bool) bool {
		calls++
		return true
	})
	assert.True(t, again.Suppressed())
	assert.Zero(t, calls, "predicate must not run on a suppressed source")

	again.To("a")
	again.ToIfAbsent("b")
	again.ToFunc("c", strings.ToUpper)

	assert.Empty(t, dst)
}

func TestWhen_SeesAbsentKey(t *testing.T) {
	t.Parallel()

	m, _ := newMapper(map[string]string{})

	var gotPresent = true
	m.From("missing").When(func(v string, present bool) bool {
		gotPresent = present
		assert.Empty(t, v)
		return true
	}).To("x")

	assert.False(t, gotPresent)
}

func TestArityMisusePanics(t *testing.T) {
	t.Parallel()

	m, _ := newMapper(map[string]string{"a": "1", "b": "2", "c": "3"})

	assert.Panics(t, func() { m.From().To("x") })
	assert.Panics(t, func() { m.From("a", "b").To("x") })
	assert.Panics(t, func() { m.From("a", "b").ToIfAbsent("x") })
	assert.Panics(t, func() { m.From("a", "b").When(Present) })
	assert.Panics(t, func() { m.From("a").ToTriple("x", func(a, b, c string) string { return "" }) })
	assert.Panics(t, func() { m.From("a", "b", "c", "a").ToTriple("x", func(a, b, c string) string { return "" }) })
	assert.Panics(t, func() { New(nil, nil) })
}

func TestPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, Present("", true))
	assert.False(t, Present("", false))
	assert.False(t, NonEmpty("", true))
	assert.True(t, NonEmpty("x", true))
	assert.True(t, Truthy("YES", true))
	assert.False(t, Truthy("true", false))
	assert.False(t, Truthy("nope", true))
	assert.True(t, Absent("", false))
	assert.True(t, Equals("RW")("rw", true))
	assert.False(t, Equals("rw")("ro", true))
}
