// Package app implements the application layer for weft.
package app

import (
	"context"
	"path/filepath"
	"strings"

	"go.trai.ch/weft/internal/adapters/cas"   //nolint:depguard // Wired in app layer
	"go.trai.ch/weft/internal/adapters/fs"    //nolint:depguard // Wired in app layer
	"go.trai.ch/weft/internal/adapters/shell" //nolint:depguard // Wired in app layer
	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/weft/internal/engine/matching"
	"go.trai.ch/weft/internal/engine/resolution"
	"go.trai.ch/weft/internal/engine/transform"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader    ports.UniverseLoader
	logger    ports.Logger
	telemetry ports.Telemetry
}

// New creates a new App instance.
func New(loader ports.UniverseLoader, logger ports.Logger, telemetry ports.Telemetry) *App {
	return &App{
		loader:    loader,
		logger:    logger,
		telemetry: telemetry,
	}
}

// ResolveOptions configures one resolution run.
type ResolveOptions struct {
	// Attributes are "name=value" pairs forming the request.
	Attributes []string
	// Filter restricts the candidate components.
	Filter domain.ComponentFilter
	// ContinueOnFailure collects per-artifact failures instead of
	// aborting on the first one.
	ContinueOnFailure bool
	// PrepareProjects executes chains for in-workspace components
	// ahead of the visit so consumers hit the execution cache.
	PrepareProjects bool
}

// session holds the engine assembled for one loaded universe.
type session struct {
	universe *domain.Universe
	schema   *matching.Schema
	selector *matching.VariantSelector
	chains   *transform.ChainSelector
	store    *cas.Store
	engine   *resolution.Engine
}

// openSession loads the universe at path and assembles the resolution
// engine around it. The cache store, workspace, and action runner are
// built from the universe itself, so they cannot be graft nodes.
func (a *App) openSession(path string) (*session, error) {
	universe, err := a.loader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	schema, err := matching.SchemaFromDecls(universe.Attributes)
	if err != nil {
		return nil, zerr.Wrap(err, "invalid attribute schema")
	}
	matcher := matching.NewMatcher(schema)
	selector := matching.NewVariantSelector(matcher)

	registry := transform.NewRegistry()
	for _, reg := range universe.Transforms {
		if err := registry.Add(reg); err != nil {
			return nil, zerr.Wrap(err, "invalid transform registration")
		}
	}
	chains := transform.NewChainSelector(registry, matcher)

	store, err := cas.NewStore(universe.CacheDir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open transform cache")
	}
	walker := fs.NewWalker()
	hasher := fs.NewHasher(walker)
	workspace := fs.NewWorkspace(universe.CacheDir)
	runner := shell.NewRunner(universe.Actions, a.logger)
	executor := transform.NewExecutor(store, runner, workspace, hasher, a.telemetry, a.logger)

	provider := staticProvider{components: universe.Components}
	engine := resolution.NewEngine(selector, chains, executor, provider, a.logger)

	return &session{
		universe: universe,
		schema:   schema,
		selector: selector,
		chains:   chains,
		store:    store,
		engine:   engine,
	}, nil
}

// Resolve loads the universe at configPath and resolves the requested
// attributes against it, returning the final artifacts in component
// order. With ContinueOnFailure the collected artifacts are returned
// alongside the first failure.
func (a *App) Resolve(ctx context.Context, configPath string, opts ResolveOptions) ([]resolution.ResolvedArtifact, error) {
	s, err := a.openSession(configPath)
	if err != nil {
		return nil, err
	}

	requested, err := a.parseAttributes(s, opts.Attributes)
	if err != nil {
		return nil, err
	}

	if opts.PrepareProjects {
		if err := s.engine.PrepareProjectTransforms(ctx, requested); err != nil {
			return nil, zerr.Wrap(err, "failed to prepare project transforms")
		}
	}

	set := s.engine.Resolve(resolution.Request{
		Attributes: requested,
		Filter:     opts.Filter,
	})

	var collector artifactCollector
	visitErr := set.VisitArtifacts(ctx, &collector, opts.ContinueOnFailure)
	for _, failure := range collector.failures {
		a.logger.Error(failure)
	}
	return collector.artifacts, visitErr
}

// ChainPlan describes what a resolution would do for one component,
// without executing anything.
type ChainPlan struct {
	Component domain.Coordinate
	Variant   string
	Chain     domain.Chain
}

// Chains loads the universe at configPath and reports, per component,
// the variant and transform chain the requested attributes select.
// The first component that fails selection aborts the planning, with
// the component's coordinate attached to the error.
func (a *App) Chains(configPath string, attributes []string, filter domain.ComponentFilter) ([]ChainPlan, error) {
	s, err := a.openSession(configPath)
	if err != nil {
		return nil, err
	}

	requested, err := a.parseAttributes(s, attributes)
	if err != nil {
		return nil, err
	}

	components := s.filterComponents(filter)
	plans := make([]ChainPlan, 0, len(components))
	for _, component := range components {
		if variant, err := s.selector.Select(component, requested); err == nil {
			plans = append(plans, ChainPlan{
				Component: component.Coordinate,
				Variant:   variant.Name,
			})
			continue
		}
		chain, source, err := s.chains.FindChain(requested, component)
		if err != nil {
			return nil, zerr.With(err, "component", component.Coordinate.String())
		}
		plans = append(plans, ChainPlan{
			Component: component.Coordinate,
			Variant:   source.Name,
			Chain:     chain,
		})
	}
	return plans, nil
}

// Clean removes the transform execution cache of the universe at
// configPath.
func (a *App) Clean(configPath string) error {
	s, err := a.openSession(configPath)
	if err != nil {
		return err
	}
	if err := s.store.Clean(); err != nil {
		return zerr.Wrap(err, "failed to clean transform cache")
	}
	a.logger.Info("transform cache cleaned", "dir", filepath.Clean(s.universe.CacheDir))
	return nil
}

// parseAttributes turns "name=value" pairs into a typed attribute set
// using the schema's declared kinds. A name that no variant or transform
// in the universe can ever satisfy is rejected up front.
func (a *App) parseAttributes(s *session, pairs []string) (domain.AttributeSet, error) {
	producible := s.producibleAttributes()
	attrs := make(map[string]domain.Value, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return domain.AttributeSet{}, zerr.With(
				zerr.New("attribute must be name=value"), "attribute", pair)
		}
		if _, ok := producible[name]; !ok {
			err := zerr.Wrap(domain.ErrNoMatchingVariant,
				"requested attribute is not declared and not produced by any variant or transform")
			return domain.AttributeSet{}, zerr.With(err, "attribute", name)
		}
		value, err := s.schema.CoerceValue(name, raw)
		if err != nil {
			return domain.AttributeSet{}, err
		}
		attrs[name] = value
	}
	if len(attrs) == 0 {
		return domain.AttributeSet{}, domain.ErrNoRequestAttributes
	}
	return domain.NewAttributeSet(attrs), nil
}

// producibleAttributes collects every attribute name the universe can
// satisfy: declared in the schema, published by a variant, or set by a
// transform's "to" pattern.
func (s *session) producibleAttributes() map[string]struct{} {
	names := make(map[string]struct{})
	for _, d := range s.universe.Attributes {
		names[d.Name] = struct{}{}
	}
	for i := range s.universe.Components {
		for _, v := range s.universe.Components[i].Variants {
			for _, name := range v.Attributes.Names() {
				names[name] = struct{}{}
			}
		}
	}
	for _, reg := range s.universe.Transforms {
		for _, name := range reg.To.Names() {
			names[name] = struct{}{}
		}
	}
	return names
}

func (s *session) filterComponents(filter domain.ComponentFilter) []*domain.Component {
	var out []*domain.Component
	for i := range s.universe.Components {
		c := &s.universe.Components[i]
		if filter.Accepts(c) {
			out = append(out, c)
		}
	}
	return out
}

// artifactCollector accumulates visited artifacts and failures in visit
// order.
type artifactCollector struct {
	artifacts []resolution.ResolvedArtifact
	failures  []error
}

func (c *artifactCollector) VisitArtifact(a resolution.ResolvedArtifact) {
	c.artifacts = append(c.artifacts, a)
}

func (c *artifactCollector) VisitFailure(err error) {
	c.failures = append(c.failures, err)
}

// staticProvider serves the components parsed from the universe file.
type staticProvider struct {
	components []domain.Component
}

func (p staticProvider) Components(_ context.Context, filter domain.ComponentFilter) ([]domain.Component, error) {
	out := make([]domain.Component, 0, len(p.components))
	for i := range p.components {
		if filter.Accepts(&p.components[i]) {
			out = append(out, p.components[i])
		}
	}
	return out, nil
}
