// Package matching implements attribute compatibility, disambiguation,
// and variant selection.
package matching

import (
	"strconv"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/zerr"
)

// CompatibilityRule decides whether a candidate value satisfies a
// requested value for one attribute.
type CompatibilityRule func(requested, candidate domain.Value) bool

// DisambiguationRule narrows a set of compatible candidate values to the
// preferred ones. requested is nil when the attribute was not requested.
// Returning all values means the rule expresses no preference.
type DisambiguationRule func(requested *domain.Value, candidates []domain.Value) []domain.Value

// ExtraAttributePolicy decides how an attribute present only on the
// candidate (not requested) counts. This is an explicit per-attribute
// configuration point.
type ExtraAttributePolicy uint8

const (
	// ExtraCompatible treats a candidate-only attribute as compatible.
	ExtraCompatible ExtraAttributePolicy = iota
	// ExtraIncompatible treats a candidate-only attribute as a mismatch.
	ExtraIncompatible
)

// EqualityCompatibility is the default rule: values must be equal.
func EqualityCompatibility(requested, candidate domain.Value) bool {
	return requested.Equal(candidate)
}

// AtLeastCompatibility accepts integer candidates greater than or equal
// to the requested value. Non-integer pairs fall back to equality.
func AtLeastCompatibility(requested, candidate domain.Value) bool {
	if requested.Kind() == domain.KindInt && candidate.Kind() == domain.KindInt {
		return candidate.Int() >= requested.Int()
	}
	return requested.Equal(candidate)
}

// ExactMatchDisambiguation is the default rule: when any candidate value
// equals the requested one, only those candidates remain preferred.
func ExactMatchDisambiguation(requested *domain.Value, candidates []domain.Value) []domain.Value {
	if requested == nil {
		return candidates
	}
	var exact []domain.Value
	for _, c := range candidates {
		if c.Equal(*requested) {
			exact = append(exact, c)
		}
	}
	if len(exact) > 0 {
		return exact
	}
	return candidates
}

type attributeRules struct {
	kind    domain.Kind
	compat  CompatibilityRule
	disamb  DisambiguationRule
	extra   ExtraAttributePolicy
	defined bool
}

// Schema is the registry of known attributes and their rules. It is
// populated during setup and read-only during a resolution; it is passed
// explicitly through every matching call, never looked up globally.
type Schema struct {
	rules map[string]attributeRules
}

// NewSchema creates an empty schema.
func NewSchema() *Schema {
	return &Schema{rules: make(map[string]attributeRules)}
}

// Option configures one registered attribute.
type Option func(*attributeRules)

// WithCompatibility overrides the attribute's compatibility rule.
func WithCompatibility(rule CompatibilityRule) Option {
	return func(r *attributeRules) { r.compat = rule }
}

// WithDisambiguation overrides the attribute's disambiguation rule.
func WithDisambiguation(rule DisambiguationRule) Option {
	return func(r *attributeRules) { r.disamb = rule }
}

// WithExtraPolicy overrides how a candidate-only occurrence of the
// attribute counts.
func WithExtraPolicy(p ExtraAttributePolicy) Option {
	return func(r *attributeRules) { r.extra = p }
}

// Register adds an attribute to the schema. Registering the same name
// twice replaces the previous rules.
func (s *Schema) Register(name string, kind domain.Kind, opts ...Option) {
	r := attributeRules{
		kind:    kind,
		compat:  EqualityCompatibility,
		disamb:  ExactMatchDisambiguation,
		extra:   ExtraCompatible,
		defined: true,
	}
	for _, opt := range opts {
		opt(&r)
	}
	s.rules[name] = r
}

func (s *Schema) rulesFor(name string) attributeRules {
	if r, ok := s.rules[name]; ok {
		return r
	}
	// Unregistered attributes get the defaults.
	return attributeRules{
		compat: EqualityCompatibility,
		disamb: ExactMatchDisambiguation,
		extra:  ExtraCompatible,
	}
}

// KindOf returns the declared kind of the attribute, if registered.
func (s *Schema) KindOf(name string) (domain.Kind, bool) {
	r, ok := s.rules[name]
	if !ok {
		return domain.KindInvalid, false
	}
	return r.kind, true
}

// CoerceValue parses a raw string into a Value of the attribute's
// declared kind. Unregistered attributes infer bool, then int, then string.
func (s *Schema) CoerceValue(name, raw string) (domain.Value, error) {
	if r, ok := s.rules[name]; ok {
		switch r.kind {
		case domain.KindBool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				werr := zerr.With(zerr.Wrap(err, "invalid boolean attribute value"), "attribute", name)
				return domain.Value{}, zerr.With(werr, "value", raw)
			}
			return domain.BoolValue(b), nil
		case domain.KindInt:
			i, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				werr := zerr.With(zerr.Wrap(err, "invalid integer attribute value"), "attribute", name)
				return domain.Value{}, zerr.With(werr, "value", raw)
			}
			return domain.IntValue(i), nil
		default:
			return domain.StringValue(raw), nil
		}
	}
	if b, err := strconv.ParseBool(raw); err == nil && (raw == "true" || raw == "false") {
		return domain.BoolValue(b), nil
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return domain.IntValue(i), nil
	}
	return domain.StringValue(raw), nil
}

// SchemaFromDecls builds a schema from loaded attribute declarations.
func SchemaFromDecls(decls []domain.AttributeDecl) (*Schema, error) {
	s := NewSchema()
	for _, d := range decls {
		var opts []Option
		switch d.Compatibility {
		case "", "equals":
		case "at-least":
			opts = append(opts, WithCompatibility(AtLeastCompatibility))
		default:
			err := zerr.With(zerr.New("unknown compatibility rule"), "attribute", d.Name)
			return nil, zerr.With(err, "rule", d.Compatibility)
		}
		switch d.ExtraPolicy {
		case "", "compatible":
		case "incompatible":
			opts = append(opts, WithExtraPolicy(ExtraIncompatible))
		default:
			err := zerr.With(zerr.New("unknown extra-attribute policy"), "attribute", d.Name)
			return nil, zerr.With(err, "policy", d.ExtraPolicy)
		}
		s.Register(d.Name, d.Kind, opts...)
	}
	return s, nil
}
