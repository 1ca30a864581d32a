package resolution

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/weft/internal/engine/matching"
	"go.trai.ch/weft/internal/engine/transform"
	"go.trai.ch/zerr"
)

// Request is one consumer resolution request.
type Request struct {
	// Attributes is the requested attribute set.
	Attributes domain.AttributeSet
	// Filter restricts the candidate components.
	Filter domain.ComponentFilter
}

// Engine resolves requests against the selected components: variant
// selection first, transform-chain search as the fallback, assembled
// into a SelectedArtifactSet.
type Engine struct {
	selector *matching.VariantSelector
	chains   *transform.ChainSelector
	executor *transform.Executor
	provider ports.ComponentProvider
	logger   ports.Logger
}

// NewEngine creates an Engine.
func NewEngine(
	selector *matching.VariantSelector,
	chains *transform.ChainSelector,
	executor *transform.Executor,
	provider ports.ComponentProvider,
	logger ports.Logger,
) *Engine {
	return &Engine{
		selector: selector,
		chains:   chains,
		executor: executor,
		provider: provider,
		logger:   logger,
	}
}

// Resolve returns the lazily-computed artifact set for the request.
// No selection or transform work happens until the set's artifacts are
// first visited.
func (e *Engine) Resolve(request Request) *SelectedArtifactSet {
	return newSelectedArtifactSet(
		func(ctx context.Context) []Result {
			return e.resolveAll(ctx, request)
		},
		func(visitor DependencyVisitor) {
			e.visitDependencies(request, visitor)
		},
	)
}

// visitDependencies walks component coordinates and their declared
// dependency edges. This is cheap: no variant or transform selection.
func (e *Engine) visitDependencies(request Request, visitor DependencyVisitor) {
	components, err := e.provider.Components(context.Background(), request.Filter)
	if err != nil {
		e.logger.Error(zerr.Wrap(err, "failed to list components for dependency visit"))
		return
	}
	seen := map[domain.Coordinate]struct{}{}
	for i := range components {
		c := &components[i]
		if _, ok := seen[c.Coordinate]; !ok {
			seen[c.Coordinate] = struct{}{}
			visitor.VisitDependency(c.Coordinate)
		}
		for _, v := range c.Variants {
			for _, dep := range v.Dependencies {
				if _, ok := seen[dep]; !ok {
					seen[dep] = struct{}{}
					visitor.VisitDependency(dep)
				}
			}
		}
	}
}

func (e *Engine) resolveAll(ctx context.Context, request Request) []Result {
	if request.Attributes.Len() == 0 {
		return []Result{{Err: domain.ErrNoRequestAttributes}}
	}
	components, err := e.provider.Components(ctx, request.Filter)
	if err != nil {
		return []Result{{Err: zerr.Wrap(err, "failed to obtain candidate components")}}
	}

	index := make(map[domain.Coordinate]*domain.Component, len(components))
	for i := range components {
		index[components[i].Coordinate] = &components[i]
	}

	var results []Result
	for i := range components {
		results = append(results, e.resolveComponent(ctx, index, &components[i], request.Attributes)...)
	}
	return results
}

// resolveComponent selects a variant, falling back to transform-chain
// search on a NoMatch, and produces the component's final artifacts.
func (e *Engine) resolveComponent(ctx context.Context, index map[domain.Coordinate]*domain.Component, component *domain.Component, requested domain.AttributeSet) []Result {
	variant, err := e.selector.Select(component, requested)
	if err == nil {
		// Exact variant match: chain length zero, artifacts as published.
		results := make([]Result, 0, len(variant.Artifacts))
		for _, a := range variant.Artifacts {
			results = append(results, Result{Artifact: ResolvedArtifact{
				Artifact:  a,
				Component: component.Coordinate,
				Variant:   variant.Name,
			}})
		}
		return results
	}
	if !errors.Is(err, domain.ErrNoMatchingVariant) {
		// Ambiguity is surfaced, never resolved by guessing.
		return []Result{{Err: err}}
	}

	chain, source, err := e.chains.FindChain(requested, component)
	if err != nil {
		return []Result{{Err: err}}
	}
	return e.executeChain(ctx, index, component, source, chain)
}

// executeChain runs the chain over every artifact of the source variant
// in parallel, preserving the variant's artifact order in the results.
func (e *Engine) executeChain(ctx context.Context, index map[domain.Coordinate]*domain.Component, component *domain.Component, source *domain.Variant, chain domain.Chain) []Result {
	deps := e.dependencyArtifacts(index, source)
	perInput := make([][]Result, len(source.Artifacts))

	g, gctx := errgroup.WithContext(ctx)
	for i, artifact := range source.Artifacts {
		g.Go(func() error {
			outs, err := e.executor.ApplyChain(gctx, chain, artifact, deps)
			if err != nil {
				werr := zerr.With(err, "component", component.Coordinate.String())
				perInput[i] = []Result{{Err: zerr.With(werr, "variant", source.Name)}}
				return nil
			}
			results := make([]Result, 0, len(outs))
			for _, out := range outs {
				results = append(results, Result{Artifact: ResolvedArtifact{
					Artifact:  out,
					Component: component.Coordinate,
					Variant:   source.Name,
					Chain:     chain,
				}})
			}
			perInput[i] = results
			return nil
		})
	}
	_ = g.Wait()

	var results []Result
	for _, rs := range perInput {
		results = append(results, rs...)
	}
	return results
}

// dependencyArtifacts collects the artifacts of the source variant's
// declared dependencies, selecting each dependency's variant by the
// source's own attributes. A dependency outside the selected component
// set, or without a matching variant, contributes nothing: wiring those
// is the upstream graph resolution's job.
func (e *Engine) dependencyArtifacts(index map[domain.Coordinate]*domain.Component, source *domain.Variant) []domain.Artifact {
	var deps []domain.Artifact
	for _, coord := range source.Dependencies {
		component, ok := index[coord]
		if !ok {
			continue
		}
		variant, err := e.selector.Select(component, source.Attributes)
		if err != nil {
			continue
		}
		deps = append(deps, variant.Artifacts...)
	}
	return deps
}

// PrepareProjectTransforms discovers and executes transform chains for
// in-workspace components ahead of the task graph, so consuming tasks
// hit the execution cache. Transforms for external modules are left to
// run inline with their consuming task, since their inputs are not
// known earlier.
func (e *Engine) PrepareProjectTransforms(ctx context.Context, requested domain.AttributeSet) error {
	components, err := e.provider.Components(ctx, domain.FilterProjects)
	if err != nil {
		return zerr.Wrap(err, "failed to obtain project components")
	}

	index := make(map[domain.Coordinate]*domain.Component, len(components))
	for i := range components {
		index[components[i].Coordinate] = &components[i]
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range components {
		component := &components[i]
		g.Go(func() error {
			if _, err := e.selector.Select(component, requested); err == nil {
				return nil
			} else if !errors.Is(err, domain.ErrNoMatchingVariant) {
				return err
			}
			chain, source, err := e.chains.FindChain(requested, component)
			if err != nil {
				return err
			}
			deps := e.dependencyArtifacts(index, source)
			for _, artifact := range source.Artifacts {
				if _, err := e.executor.ApplyChain(gctx, chain, artifact, deps); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
