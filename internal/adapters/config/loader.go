// Package config loads the resolution universe from a YAML file.
package config

import (
	"os"
	"strings"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultCacheDir is used when the universe file does not set cache_dir.
const DefaultCacheDir = ".weft/cache"

var _ ports.UniverseLoader = (*FileLoader)(nil)

// FileLoader implements ports.UniverseLoader using a YAML file.
type FileLoader struct{}

// NewFileLoader creates a FileLoader.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load reads the universe definition at path.
func (l *FileLoader) Load(path string) (*domain.Universe, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read universe file")
	}

	var dto universeDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.Wrap(err, "failed to parse universe file")
	}

	u := &domain.Universe{CacheDir: dto.CacheDir}
	if u.CacheDir == "" {
		u.CacheDir = DefaultCacheDir
	}

	kinds := map[string]domain.Kind{}
	for _, a := range dto.Attributes {
		kind, err := kindFromName(a.Type)
		if err != nil {
			return nil, zerr.With(err, "attribute", a.Name)
		}
		kinds[a.Name] = kind
		u.Attributes = append(u.Attributes, domain.AttributeDecl{
			Name:          a.Name,
			Kind:          kind,
			Compatibility: a.Compatibility,
			ExtraPolicy:   a.Extra,
		})
	}

	for _, c := range dto.Components {
		component, err := componentFromDTO(c, kinds)
		if err != nil {
			return nil, err
		}
		u.Components = append(u.Components, component)
	}

	for _, t := range dto.Transforms {
		reg, err := registrationFromDTO(t, kinds)
		if err != nil {
			return nil, err
		}
		u.Transforms = append(u.Transforms, reg)
	}

	for _, a := range dto.Actions {
		u.Actions = append(u.Actions, domain.ActionSpec{Name: a.Name, Command: a.Cmd})
	}

	return u, nil
}

func componentFromDTO(c componentDTO, kinds map[string]domain.Kind) (domain.Component, error) {
	coord := domain.NewCoordinate(c.Group, c.Name, c.Version)
	component := domain.Component{Coordinate: coord, Project: c.Project}

	for _, v := range c.Variants {
		attrs, err := attributeSetFromYAML(v.Attributes, kinds)
		if err != nil {
			err = zerr.With(err, "component", coord.String())
			return domain.Component{}, zerr.With(err, "variant", v.Name)
		}

		variant := domain.Variant{
			Name:       v.Name,
			Owner:      coord,
			Attributes: attrs,
		}
		for _, capability := range v.Capabilities {
			group, name, ok := strings.Cut(capability, ":")
			if !ok {
				err := zerr.With(zerr.New("capability must be group:name"), "capability", capability)
				return domain.Component{}, zerr.With(err, "variant", v.Name)
			}
			variant.Capabilities = append(variant.Capabilities, domain.Capability{Group: group, Name: name})
		}
		for _, a := range v.Artifacts {
			variant.Artifacts = append(variant.Artifacts, domain.Artifact{Name: a.Name, Path: a.Path})
		}
		for _, dep := range v.Dependencies {
			depCoord, err := coordinateFromString(dep)
			if err != nil {
				return domain.Component{}, zerr.With(err, "variant", v.Name)
			}
			variant.Dependencies = append(variant.Dependencies, depCoord)
		}
		component.Variants = append(component.Variants, variant)
	}
	return component, nil
}

func registrationFromDTO(t transformDTO, kinds map[string]domain.Kind) (domain.Registration, error) {
	if t.Action == "" {
		return domain.Registration{}, zerr.New("transform is missing an action")
	}
	from, err := attributeSetFromYAML(t.From, kinds)
	if err != nil {
		return domain.Registration{}, zerr.With(err, "action", t.Action)
	}
	to, err := attributeSetFromYAML(t.To, kinds)
	if err != nil {
		return domain.Registration{}, zerr.With(err, "action", t.Action)
	}
	return domain.Registration{
		Action:           t.Action,
		From:             from,
		To:               to,
		Parameters:       t.Parameters,
		Cacheable:        t.Cacheable,
		UsesDependencies: t.UsesDependencies,
	}, nil
}

func attributeSetFromYAML(attrs map[string]any, kinds map[string]domain.Kind) (domain.AttributeSet, error) {
	values := make(map[string]domain.Value, len(attrs))
	for name, raw := range attrs {
		v, err := valueFromYAML(raw)
		if err != nil {
			return domain.AttributeSet{}, zerr.With(err, "attribute", name)
		}
		if kind, declared := kinds[name]; declared && v.Kind() != kind {
			err := zerr.With(zerr.New("attribute value does not match declared type"), "attribute", name)
			err = zerr.With(err, "declared", kind.String())
			return domain.AttributeSet{}, zerr.With(err, "actual", v.Kind().String())
		}
		values[name] = v
	}
	return domain.NewAttributeSet(values), nil
}

func valueFromYAML(raw any) (domain.Value, error) {
	switch v := raw.(type) {
	case bool:
		return domain.BoolValue(v), nil
	case int:
		return domain.IntValue(int64(v)), nil
	case int64:
		return domain.IntValue(v), nil
	case string:
		return domain.StringValue(v), nil
	default:
		return domain.Value{}, zerr.With(zerr.New("unsupported attribute value type"), "value", raw)
	}
}

func kindFromName(name string) (domain.Kind, error) {
	switch name {
	case "bool":
		return domain.KindBool, nil
	case "int":
		return domain.KindInt, nil
	case "", "string":
		return domain.KindString, nil
	default:
		return domain.KindInvalid, zerr.With(zerr.New("unknown attribute type"), "type", name)
	}
}

func coordinateFromString(s string) (domain.Coordinate, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return domain.Coordinate{}, zerr.With(zerr.New("dependency must be group:name:version"), "dependency", s)
	}
	return domain.NewCoordinate(parts[0], parts[1], parts[2]), nil
}
