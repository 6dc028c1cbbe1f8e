package mapper

// Rule is the declarative form of one mapping statement, so per-type
// knowledge can live in tables instead of code.
type Rule struct {
	// From lists the source keys: none for a constant, one for a copy or
	// conversion, three for a composition.
	From []string

	// To is the destination property key.
	To string

	// Value is written unconditionally when From is empty.
	Value string

	// When gates the rule. A single-key rule passes the source value, a
	// composition the composed value with present set only when all three
	// keys are bound, and a constant its Value.
	When func(value string, present bool) bool

	// Convert transforms a single value.
	Convert func(string) string

	// Compose builds a value from three source values.
	Compose func(a, b, c string) string

	// IfAbsent keeps an existing destination value.
	IfAbsent bool
}

// Copy maps from to to verbatim.
func Copy(from, to string) Rule {
	return Rule{From: []string{from}, To: to}
}

// CopyIfAbsent maps from to to unless to is already set.
func CopyIfAbsent(from, to string) Rule {
	return Rule{From: []string{from}, To: to, IfAbsent: true}
}

// Convert maps from to to through fn.
func Convert(from, to string, fn func(string) string) Rule {
	return Rule{From: []string{from}, To: to, Convert: fn}
}

// Compose maps three keys to to through fn.
func Compose(a, b, c, to string, fn func(a, b, c string) string) Rule {
	return Rule{From: []string{a, b, c}, To: to, Compose: fn}
}

// Const sets to to value.
func Const(to, value string) Rule {
	return Rule{To: to, Value: value}
}

// If returns a copy of r gated on pred.
func (r Rule) If(pred func(string, bool) bool) Rule {
	r.When = pred
	return r
}

// Apply runs rules against m in order.
func Apply(m *Mapper, rules []Rule) {
	for _, r := range rules {
		r.apply(m)
	}
}

func (r Rule) apply(m *Mapper) {
	switch {
	case len(r.From) == 0:
		r.store(m, r.Value, true)
	case r.Compose != nil:
		src := m.From(r.From...)
		src.requireArity(3, "Compose")
		if r.When == nil && !r.IfAbsent {
			src.ToTriple(r.To, r.Compose)
			return
		}
		a, okA := m.src[r.From[0]]
		b, okB := m.src[r.From[1]]
		c, okC := m.src[r.From[2]]
		present := okA && okB && okC
		var v string
		if present {
			v = r.Compose(a, b, c)
		}
		r.store(m, v, present)
	default:
		src := m.From(r.From...)
		if r.When != nil {
			src = src.When(r.When)
		}
		if r.IfAbsent {
			src.ToIfAbsent(r.To)
			return
		}
		src.ToFunc(r.To, r.Convert)
	}
}

// store writes v at r.To when present, honoring When and IfAbsent.
func (r Rule) store(m *Mapper, v string, present bool) {
	if r.When != nil && !r.When(v, present) {
		return
	}
	if !present || (r.IfAbsent && m.dst.Has(r.To)) {
		return
	}
	m.dst[r.To] = v
}
