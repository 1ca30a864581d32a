package matching

import "go.trai.ch/weft/internal/core/domain"

// Matcher decides attribute compatibility and, among multiple compatible
// candidates, the most specific one. It is a pure function of the schema
// and its inputs.
type Matcher struct {
	schema *Schema
}

// NewMatcher creates a Matcher over the given schema.
func NewMatcher(schema *Schema) *Matcher {
	return &Matcher{schema: schema}
}

// IsCompatible applies the attribute's compatibility rule.
func (m *Matcher) IsCompatible(name string, requested, candidate domain.Value) bool {
	return m.schema.rulesFor(name).compat(requested, candidate)
}

// Matches reports whether the candidate set is compatible with the
// requested set. An attribute absent from the candidate is unspecified,
// never a mismatch. An attribute present only on the candidate counts
// per that attribute's extra-attribute policy.
func (m *Matcher) Matches(requested, candidate domain.AttributeSet) bool {
	for _, name := range requested.Names() {
		rv, _ := requested.Get(name)
		cv, ok := candidate.Get(name)
		if !ok {
			continue
		}
		if !m.IsCompatible(name, rv, cv) {
			return false
		}
	}
	for _, name := range candidate.Names() {
		if requested.Contains(name) {
			continue
		}
		if m.schema.rulesFor(name).extra == ExtraIncompatible {
			return false
		}
	}
	return true
}

// Disambiguate narrows compatible candidates to the equally-best subset,
// returned as indices into candidates. It never guesses: if no rule
// narrows the set to one, all survivors are returned and the caller
// reports ambiguity.
func (m *Matcher) Disambiguate(requested domain.AttributeSet, candidates []domain.AttributeSet) []int {
	remaining := make([]int, len(candidates))
	for i := range candidates {
		remaining[i] = i
	}

	for _, name := range requested.Names() {
		if len(remaining) <= 1 {
			break
		}
		rv, _ := requested.Get(name)

		var present []int
		var values []domain.Value
		for _, idx := range remaining {
			if v, ok := candidates[idx].Get(name); ok {
				present = append(present, idx)
				values = append(values, v)
			}
		}
		if len(present) == 0 {
			continue
		}

		preferred := m.schema.rulesFor(name).disamb(&rv, values)
		if len(preferred) < len(values) {
			// The rule expressed a preference; candidates lacking the
			// attribute lose to the preferred ones.
			remaining = filterByValues(present, values, preferred)
			continue
		}

		// Default: an exact match beats unspecified.
		var exact []int
		for i, idx := range present {
			if values[i].Equal(rv) {
				exact = append(exact, idx)
			}
		}
		if len(exact) > 0 && len(exact) < len(remaining) {
			remaining = exact
		}
	}

	if len(remaining) > 1 {
		remaining = preferFewestExtras(requested, candidates, remaining)
	}
	return remaining
}

// filterByValues keeps the candidates whose value is among preferred.
func filterByValues(present []int, values, preferred []domain.Value) []int {
	var kept []int
	for i, idx := range present {
		for _, p := range preferred {
			if values[i].Equal(p) {
				kept = append(kept, idx)
				break
			}
		}
	}
	return kept
}

// preferFewestExtras keeps the candidates carrying the fewest attributes
// the request never asked for.
func preferFewestExtras(requested domain.AttributeSet, candidates []domain.AttributeSet, remaining []int) []int {
	best := -1
	for _, idx := range remaining {
		extras := 0
		for _, name := range candidates[idx].Names() {
			if !requested.Contains(name) {
				extras++
			}
		}
		if best == -1 || extras < best {
			best = extras
		}
	}
	var kept []int
	for _, idx := range remaining {
		extras := 0
		for _, name := range candidates[idx].Names() {
			if !requested.Contains(name) {
				extras++
			}
		}
		if extras == best {
			kept = append(kept, idx)
		}
	}
	return kept
}
