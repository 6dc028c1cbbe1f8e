// Package replica assembles read-write and read-only bindings that describe
// one logical replicated datastore into indexed groups.
//
// Every candidate binding carries a "correlation" field naming the logical
// datastore and a "function" field of "rw" or "ro". Groups are numbered by
// the order in which their correlation value first appears, so the result
// is stable for a given catalogue.
package replica

import (
	"log/slog"
	"strings"

	"github.com/sufield/svcbind/internal/assert"
	"github.com/sufield/svcbind/internal/domain"
)

// Secret fields read by the correlator.
const (
	KeyCorrelation = "correlation"
	KeyFunction    = "function"
)

// Role is the leg of a replicated datastore a binding represents.
type Role string

const (
	ReadWrite Role = "rw"
	ReadOnly  Role = "ro"
)

// ParseRole accepts "rw" or "ro" in any case.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(s)) {
	case ReadWrite:
		return ReadWrite, true
	case ReadOnly:
		return ReadOnly, true
	}
	return "", false
}

// Member is one binding within a group.
type Member struct {
	Role    Role
	Binding *domain.Binding
}

// Group is one logical datastore.
type Group struct {
	Index   int
	Name    string
	Members []Member
}

// Member returns the first member with role r.
func (g Group) Member(r Role) (Member, bool) {
	for _, m := range g.Members {
		if m.Role == r {
			return m, true
		}
	}
	return Member{}, false
}

// Correlate validates and groups bindings. Bindings with an empty
// correlation or an unknown function are logged and left out; they do not
// consume an index.
func Correlate(bindings []*domain.Binding, logger *slog.Logger) []Group {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var groups []Group
	index := make(map[string]int)

	for _, b := range bindings {
		correlation, _ := b.Get(KeyCorrelation)
		if correlation == "" {
			logger.Warn("skipping replica binding", "binding", b.Name(), "reason", "empty correlation")
			continue
		}
		function, _ := b.Get(KeyFunction)
		role, ok := ParseRole(function)
		if !ok {
			logger.Warn("skipping replica binding", "binding", b.Name(),
				"reason", "function must be rw or ro", "function", function)
			continue
		}

		i, seen := index[correlation]
		if !seen {
			i = len(groups)
			index[correlation] = i
			groups = append(groups, Group{Index: i, Name: correlation})
		}
		groups[i].Members = append(groups[i].Members, Member{Role: role, Binding: b})
	}

	for i, g := range groups {
		assert.Invariantf(g.Index == i, "group %q has index %d at position %d", g.Name, g.Index, i)
		assert.Invariantf(len(g.Members) > 0, "group %q is empty", g.Name)
	}

	return groups
}
