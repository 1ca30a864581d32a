package domain

import (
	"sort"
	"strings"
)

// Registration is one registered transform edge: it converts artifacts
// whose attributes satisfy From into artifacts carrying the attributes
// in To. Registrations are added during setup and read-only during a
// resolution.
type Registration struct {
	// Action is the stable identity of the transform action.
	Action string
	// From is the attribute pattern the input must satisfy.
	From AttributeSet
	// To holds the attributes this transform changes or fixes.
	To AttributeSet
	// Parameters are the declared action parameters. They are part of
	// the transform identity and the cache key.
	Parameters map[string]string
	// Cacheable declares whether outputs may be reused across resolutions.
	Cacheable bool
	// UsesDependencies declares that the action consumes the input's
	// transitive dependency artifacts, which then join the cache key.
	UsesDependencies bool
}

// ParamString returns the canonical "k=v;k=v" form with keys sorted.
func (r Registration) ParamString() string {
	if len(r.Parameters) == 0 {
		return ""
	}
	keys := make([]string, 0, len(r.Parameters))
	for k := range r.Parameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(r.Parameters[k])
	}
	return b.String()
}

// ID returns the transform identity: the action plus its parameter values.
func (r Registration) ID() string {
	ps := r.ParamString()
	if ps == "" {
		return r.Action
	}
	return r.Action + "(" + ps + ")"
}

// SameStep reports whether two registrations are the same transform edge.
func (r Registration) SameStep(o Registration) bool {
	return r.ID() == o.ID() && r.From.Equal(o.From) && r.To.Equal(o.To)
}

// Chain is an ordered sequence of transform steps applied to one source
// variant's artifacts to reach a requested attribute set. A chain of
// length zero means an exact variant match.
type Chain struct {
	Steps []Registration
}

// Len returns the number of steps.
func (c Chain) Len() int { return len(c.Steps) }

// Equal reports whether both chains apply the same steps in the same order.
func (c Chain) Equal(o Chain) bool {
	if len(c.Steps) != len(o.Steps) {
		return false
	}
	for i := range c.Steps {
		if !c.Steps[i].SameStep(o.Steps[i]) {
			return false
		}
	}
	return true
}

// IsSuffixOf reports whether c's step sequence is a strict suffix of o's.
func (c Chain) IsSuffixOf(o Chain) bool {
	if len(c.Steps) >= len(o.Steps) {
		return false
	}
	offset := len(o.Steps) - len(c.Steps)
	for i := range c.Steps {
		if !c.Steps[i].SameStep(o.Steps[offset+i]) {
			return false
		}
	}
	return true
}

// String returns the step identities joined by " -> ".
func (c Chain) String() string {
	if len(c.Steps) == 0 {
		return "<direct>"
	}
	ids := make([]string, len(c.Steps))
	for i, s := range c.Steps {
		ids[i] = s.ID()
	}
	return strings.Join(ids, " -> ")
}
