package matching

import (
	"strings"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/zerr"
)

// VariantSelector chooses the variant of one component matching the
// requested attributes.
type VariantSelector struct {
	matcher *Matcher
}

// NewVariantSelector creates a selector using the given matcher.
func NewVariantSelector(matcher *Matcher) *VariantSelector {
	return &VariantSelector{matcher: matcher}
}

// Select filters the component's variants to the compatible ones and
// disambiguates. It returns ErrNoMatchingVariant when zero variants are
// compatible, which triggers transform-chain search, and
// ErrAmbiguousVariant when more than one survives disambiguation.
func (s *VariantSelector) Select(component *domain.Component, requested domain.AttributeSet) (*domain.Variant, error) {
	var compatible []*domain.Variant
	for i := range component.Variants {
		v := &component.Variants[i]
		if s.matcher.Matches(requested, v.Attributes) {
			compatible = append(compatible, v)
		}
	}

	switch len(compatible) {
	case 0:
		err := zerr.With(domain.ErrNoMatchingVariant, "component", component.Coordinate.String())
		err = zerr.With(err, "requested", requested.String())
		return nil, zerr.With(err, "available", describeVariants(component.Variants))
	case 1:
		return compatible[0], nil
	}

	sets := make([]domain.AttributeSet, len(compatible))
	for i, v := range compatible {
		sets[i] = v.Attributes
	}
	best := s.matcher.Disambiguate(requested, sets)
	if len(best) == 1 {
		return compatible[best[0]], nil
	}

	tied := make([]*domain.Variant, len(best))
	for i, idx := range best {
		tied[i] = compatible[idx]
	}
	return nil, ambiguousVariantError(component, requested, tied)
}

// ambiguousVariantError names the tied variants and, when one attribute
// differentiates them, the values each variant would be selected by.
func ambiguousVariantError(component *domain.Component, requested domain.AttributeSet, tied []*domain.Variant) error {
	names := make([]string, len(tied))
	for i, v := range tied {
		names[i] = v.Name
	}
	err := zerr.With(domain.ErrAmbiguousVariant, "component", component.Coordinate.String())
	err = zerr.With(err, "requested", requested.String())
	err = zerr.With(err, "variants", strings.Join(names, ", "))
	if attr, values := differentiatingAttribute(tied); attr != "" {
		err = zerr.With(err, "differentiating_attribute", attr)
		err = zerr.With(err, "values", values)
	}
	return err
}

// differentiatingAttribute finds an attribute the tied variants disagree
// on, and maps each value to the variants it would select.
func differentiatingAttribute(tied []*domain.Variant) (string, string) {
	seen := map[string]struct{}{}
	var names []string
	for _, v := range tied {
		for _, name := range v.Attributes.Names() {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	for _, name := range names {
		byValue := map[string][]string{}
		distinct := 0
		for _, v := range tied {
			val, ok := v.Attributes.Get(name)
			if !ok {
				continue
			}
			key := val.String()
			if len(byValue[key]) == 0 {
				distinct++
			}
			byValue[key] = append(byValue[key], v.Name)
		}
		if distinct < 2 {
			continue
		}
		var parts []string
		for _, v := range tied {
			val, ok := v.Attributes.Get(name)
			if !ok {
				continue
			}
			key := val.String()
			if vs, found := byValue[key]; found {
				parts = append(parts, name+"="+key+" selects "+strings.Join(vs, ", "))
				delete(byValue, key)
			}
		}
		return name, strings.Join(parts, "; ")
	}
	return "", ""
}

func describeVariants(variants []domain.Variant) string {
	if len(variants) == 0 {
		return "<none>"
	}
	parts := make([]string, len(variants))
	for i, v := range variants {
		parts[i] = v.Name + " (" + v.Attributes.String() + ")"
	}
	return strings.Join(parts, "; ")
}
