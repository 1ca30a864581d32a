package transform

import (
	"context"

	"golang.org/x/sync/singleflight"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor runs transform steps, de-duplicating concurrent requests for
// the same cache key and reusing previously produced outputs.
type Executor struct {
	store     ports.TransformStore
	runner    ports.ActionRunner
	workspace ports.Workspace
	hasher    ports.Hasher
	telemetry ports.Telemetry
	logger    ports.Logger

	group singleflight.Group
}

// NewExecutor creates an Executor.
func NewExecutor(
	store ports.TransformStore,
	runner ports.ActionRunner,
	workspace ports.Workspace,
	hasher ports.Hasher,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Executor {
	return &Executor{
		store:     store,
		runner:    runner,
		workspace: workspace,
		hasher:    hasher,
		telemetry: telemetry,
		logger:    logger,
	}
}

// ExecuteOrFetch returns the step's outputs for the given input, from the
// cache when a byte-identical key was computed before. On a miss, at
// most one execution runs per key: concurrent callers await the first
// execution's result instead of duplicating work. Non-cacheable steps
// skip the cache entirely and always execute.
//
// Cancellation of the caller's context releases that caller; an
// execution already in flight finishes for the remaining waiters.
func (e *Executor) ExecuteOrFetch(ctx context.Context, step domain.Registration, input domain.Artifact, deps []domain.Artifact, key domain.CacheKey) ([]domain.Artifact, error) {
	if !step.Cacheable {
		return e.execute(ctx, step, input, deps, key)
	}

	digest := key.Digest()
	ch := e.group.DoChan(digest, func() (any, error) {
		outs, ok, err := e.store.Get(key)
		if err != nil {
			// A broken cache entry is a forced miss, never a failure.
			e.logger.Warn("transform cache read failed, re-executing", "key", digest, "error", err.Error())
		} else if ok {
			_, vertex := e.telemetry.Record(ctx, vertexName(step, input))
			vertex.Cached()
			vertex.Complete(nil)
			return outs, nil
		}

		outs, err = e.execute(ctx, step, input, deps, key)
		if err != nil {
			// Nothing is written under the key on failure.
			return nil, err
		}
		if err := e.store.Put(key, outs); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to store transform outputs"), "key", digest)
		}
		return outs, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]domain.Artifact), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ApplyChain applies every step of the chain to one source artifact,
// feeding each step's outputs into the next. Length-zero chains return
// the input unchanged.
func (e *Executor) ApplyChain(ctx context.Context, chain domain.Chain, input domain.Artifact, deps []domain.Artifact) ([]domain.Artifact, error) {
	current := []domain.Artifact{input}
	for pos, step := range chain.Steps {
		var next []domain.Artifact
		for _, art := range current {
			art, key, err := e.keyFor(step, art, deps, pos)
			if err != nil {
				return nil, err
			}
			outs, err := e.ExecuteOrFetch(ctx, step, art, deps, key)
			if err != nil {
				return nil, err
			}
			next = append(next, outs...)
		}
		current = next
	}
	return current, nil
}

// keyFor computes the cache key of one step application, filling in the
// input artifact's content digest if not already known.
func (e *Executor) keyFor(step domain.Registration, art domain.Artifact, deps []domain.Artifact, pos int) (domain.Artifact, domain.CacheKey, error) {
	if art.Digest == "" {
		digest, err := e.hasher.ArtifactDigest(art.Path)
		if err != nil {
			return art, domain.CacheKey{}, zerr.With(zerr.Wrap(err, "failed to compute input artifact digest"), "path", art.Path)
		}
		art.Digest = digest
	}

	var depsDigest string
	if step.UsesDependencies {
		d, err := e.hasher.DependenciesDigest(deps)
		if err != nil {
			return art, domain.CacheKey{}, zerr.Wrap(err, "failed to compute dependencies digest")
		}
		depsDigest = d
	}

	return art, domain.CacheKey{
		InputPath:          art.Path,
		InputDigest:        art.Digest,
		TransformID:        step.ID(),
		Parameters:         step.ParamString(),
		ChainPosition:      pos,
		DependenciesDigest: depsDigest,
	}, nil
}

// execute runs the action once, recording it as a telemetry vertex.
func (e *Executor) execute(ctx context.Context, step domain.Registration, input domain.Artifact, deps []domain.Artifact, key domain.CacheKey) ([]domain.Artifact, error) {
	ctx, vertex := e.telemetry.Record(ctx, vertexName(step, input))

	outDir, err := e.workspace.OutputDir(key.Digest())
	if err != nil {
		vertex.Complete(err)
		return nil, zerr.Wrap(err, "failed to allocate transform workspace")
	}

	outs, err := e.runner.Run(ctx, ports.ActionInvocation{
		Action:       step.Action,
		Parameters:   step.Parameters,
		Input:        input,
		Dependencies: deps,
		OutputDir:    outDir,
	})
	vertex.Complete(err)
	if err != nil {
		werr := zerr.With(zerr.Wrap(err, "transform execution failed"), "transform", step.ID())
		return nil, zerr.With(werr, "input", input.Path)
	}
	return outs, nil
}

func vertexName(step domain.Registration, input domain.Artifact) string {
	return step.ID() + " " + input.Name
}
