// Package transform implements the transform registry, the chain
// selection search, and cached transform execution.
package transform

import (
	"sync"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/engine/matching"
	"go.trai.ch/zerr"
)

// Registry maps (from-attributes, to-attributes) patterns to transform
// definitions. Registrations are additive, happen during setup, and are
// read-only for the duration of a resolution.
type Registry struct {
	mu   sync.RWMutex
	regs []domain.Registration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a transform. The "to" pattern must name at least one
// attribute: each attribute in "to" is one this transform changes or fixes.
func (r *Registry) Add(reg domain.Registration) error {
	if reg.Action == "" {
		return zerr.New("transform registration has no action identity")
	}
	if reg.To.Len() == 0 {
		return zerr.With(zerr.New("transform registration has an empty 'to' pattern"), "action", reg.Action)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regs = append(r.regs, reg)
	return nil
}

// All returns a copy of every registration.
func (r *Registry) All() []domain.Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Registration, len(r.regs))
	copy(out, r.regs)
	return out
}

// CandidatesFor returns the registrations whose "to" pattern could close
// the gap toward target: at least one "to" attribute appears in the
// target, and every "to" attribute the target specifies is compatible.
// Bounding the search to these edges avoids exploring arbitrary
// attribute combinations.
func (r *Registry) CandidatesFor(target domain.AttributeSet, m *matching.Matcher) []domain.Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Registration
	for _, reg := range r.regs {
		relevant := false
		compatible := true
		for _, name := range reg.To.Names() {
			tv, ok := target.Get(name)
			if !ok {
				continue
			}
			relevant = true
			pv, _ := reg.To.Get(name)
			if !m.IsCompatible(name, tv, pv) {
				compatible = false
				break
			}
		}
		if relevant && compatible {
			out = append(out, reg)
		}
	}
	return out
}
