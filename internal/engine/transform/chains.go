package transform

import (
	"strings"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/engine/matching"
	"go.trai.ch/zerr"
)

// DefaultMaxDepth bounds the chain search. Chains longer than this are
// not considered; real registries stay far below it.
const DefaultMaxDepth = 8

// ChainSelector finds the best chain of registered transforms bridging
// an existing variant of a component to a requested attribute set.
type ChainSelector struct {
	registry *Registry
	matcher  *matching.Matcher
	maxDepth int
}

// NewChainSelector creates a selector over the given registry.
func NewChainSelector(registry *Registry, matcher *matching.Matcher) *ChainSelector {
	return &ChainSelector{
		registry: registry,
		matcher:  matcher,
		maxDepth: DefaultMaxDepth,
	}
}

// candidate is one valid chain together with the variants able to source it.
type candidate struct {
	chain   domain.Chain
	request domain.AttributeSet
	sources []*domain.Variant
}

// searchNode is one frontier entry of the backward search: the attribute
// set still to be produced, and the steps already queued after it.
type searchNode struct {
	target domain.AttributeSet
	suffix []domain.Registration
}

// FindChain searches backward from the requested attributes over the
// registry's edges. Each expansion picks a registration whose "to"
// pattern is compatible with the current target and replaces the target
// with the predecessor request the registration needs; the search stops
// at a component variant satisfying a predecessor, or when no further
// registrations apply within the depth bound.
//
// Selection policy, in order: a single chain wins; a chain that has
// another candidate as a strict suffix wins over it (the longer one
// encodes steps the shorter implicitly assumed); otherwise fewest steps;
// remaining ties fail with ErrAmbiguousChain.
func (cs *ChainSelector) FindChain(requested domain.AttributeSet, component *domain.Component) (domain.Chain, *domain.Variant, error) {
	// An exact existing variant beats any transform.
	if source, ok := cs.directMatch(requested, component); ok {
		return domain.Chain{}, source, nil
	}

	var candidates []candidate
	frontier := []searchNode{{target: requested}}

	for depth := 1; depth <= cs.maxDepth && len(frontier) > 0; depth++ {
		var next []searchNode
		for _, node := range frontier {
			for _, reg := range cs.registry.CandidatesFor(node.target, cs.matcher) {
				if suffixContains(node.suffix, reg) {
					continue
				}
				prev, ok := predecessorRequest(reg, node.target)
				if !ok {
					continue
				}
				steps := make([]domain.Registration, 0, len(node.suffix)+1)
				steps = append(steps, reg)
				steps = append(steps, node.suffix...)

				if sources := cs.matchingVariants(prev, component); len(sources) > 0 {
					candidates = addCandidate(candidates, candidate{
						chain:   domain.Chain{Steps: steps},
						request: prev,
						sources: sources,
					})
				}
				// Keep expanding: a longer chain that has this one as a
				// suffix may still be preferred.
				next = append(next, searchNode{target: prev, suffix: steps})
			}
		}
		frontier = next
	}

	if len(candidates) == 0 {
		err := zerr.With(domain.ErrNoTransformChain, "component", component.Coordinate.String())
		err = zerr.With(err, "requested", requested.String())
		return domain.Chain{}, nil, zerr.With(err, "available", availableAttributes(component))
	}

	winner, err := selectCandidate(candidates, requested)
	if err != nil {
		return domain.Chain{}, nil, err
	}
	source, err := cs.pickSource(winner, component)
	if err != nil {
		return domain.Chain{}, nil, err
	}
	return winner.chain, source, nil
}

// directMatch returns the single variant matching requested exactly per
// the matcher, if one exists unambiguously.
func (cs *ChainSelector) directMatch(requested domain.AttributeSet, component *domain.Component) (*domain.Variant, bool) {
	sources := cs.matchingVariants(requested, component)
	if len(sources) == 0 {
		return nil, false
	}
	if len(sources) == 1 {
		return sources[0], true
	}
	sets := make([]domain.AttributeSet, len(sources))
	for i, v := range sources {
		sets[i] = v.Attributes
	}
	best := cs.matcher.Disambiguate(requested, sets)
	if len(best) == 1 {
		return sources[best[0]], true
	}
	return nil, false
}

func (cs *ChainSelector) matchingVariants(request domain.AttributeSet, component *domain.Component) []*domain.Variant {
	var out []*domain.Variant
	for i := range component.Variants {
		v := &component.Variants[i]
		if cs.matcher.Matches(request, v.Attributes) {
			out = append(out, v)
		}
	}
	return out
}

// pickSource disambiguates among the variants able to source the chain.
func (cs *ChainSelector) pickSource(c candidate, component *domain.Component) (*domain.Variant, error) {
	if len(c.sources) == 1 {
		return c.sources[0], nil
	}
	sets := make([]domain.AttributeSet, len(c.sources))
	for i, v := range c.sources {
		sets[i] = v.Attributes
	}
	best := cs.matcher.Disambiguate(c.request, sets)
	if len(best) == 1 {
		return c.sources[best[0]], nil
	}
	names := make([]string, len(best))
	for i, idx := range best {
		names[i] = c.sources[idx].Name
	}
	err := zerr.With(domain.ErrAmbiguousVariant, "component", component.Coordinate.String())
	err = zerr.With(err, "requested", c.request.String())
	err = zerr.With(err, "variants", strings.Join(names, ", "))
	return nil, zerr.With(err, "chain", c.chain.String())
}

// predecessorRequest computes the attribute set a step's input must
// satisfy: the step's "from" pattern, plus every target attribute the
// step's "to" does not set. Attributes the step does not set are carried
// through from the input unchanged, so a carried target value clashing
// with the "from" pattern makes the step unusable for this target.
func predecessorRequest(reg domain.Registration, target domain.AttributeSet) (domain.AttributeSet, bool) {
	prev := reg.From
	for _, name := range target.Names() {
		if reg.To.Contains(name) {
			continue
		}
		v, _ := target.Get(name)
		if fv, ok := prev.Get(name); ok {
			if !fv.Equal(v) {
				return domain.AttributeSet{}, false
			}
			continue
		}
		prev = prev.With(name, v)
	}
	return prev, true
}

func suffixContains(suffix []domain.Registration, reg domain.Registration) bool {
	for _, s := range suffix {
		if s.SameStep(reg) {
			return true
		}
	}
	return false
}

// addCandidate merges a new candidate, deduplicating identical chains
// reached along different search paths.
func addCandidate(candidates []candidate, c candidate) []candidate {
	for i := range candidates {
		if candidates[i].chain.Equal(c.chain) {
			return candidates
		}
	}
	return append(candidates, c)
}

// selectCandidate applies the tie-breaking policy. It never guesses.
func selectCandidate(candidates []candidate, requested domain.AttributeSet) (candidate, error) {
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	// A chain that is a strict suffix of another candidate loses to it.
	var kept []candidate
	for i := range candidates {
		suffixOfOther := false
		for j := range candidates {
			if i != j && candidates[i].chain.IsSuffixOf(candidates[j].chain) {
				suffixOfOther = true
				break
			}
		}
		if !suffixOfOther {
			kept = append(kept, candidates[i])
		}
	}
	if len(kept) == 1 {
		return kept[0], nil
	}

	// Fewest steps.
	minLen := kept[0].chain.Len()
	for _, c := range kept[1:] {
		if c.chain.Len() < minLen {
			minLen = c.chain.Len()
		}
	}
	var shortest []candidate
	for _, c := range kept {
		if c.chain.Len() == minLen {
			shortest = append(shortest, c)
		}
	}
	if len(shortest) == 1 {
		return shortest[0], nil
	}

	chains := make([]string, len(shortest))
	for i, c := range shortest {
		chains[i] = c.chain.String()
	}
	err := zerr.With(domain.ErrAmbiguousChain, "requested", requested.String())
	return candidate{}, zerr.With(err, "chains", strings.Join(chains, " | "))
}

func availableAttributes(component *domain.Component) string {
	if len(component.Variants) == 0 {
		return "<none>"
	}
	parts := make([]string, len(component.Variants))
	for i := range component.Variants {
		v := &component.Variants[i]
		parts[i] = v.Name + " (" + v.Attributes.String() + ")"
	}
	return strings.Join(parts, "; ")
}
