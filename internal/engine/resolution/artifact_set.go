package resolution

import (
	"context"
	"sync"
)

// SelectedArtifactSet is the lazily-computed, memoized result of
// resolving one consumer request. The delegate is computed at most once
// per instance, on the first artifact visit, never at construction.
// sync.Once makes the single assignment safe under concurrent visits:
// one caller computes, everyone else reuses.
type SelectedArtifactSet struct {
	resolve func(ctx context.Context) []Result
	deps    func(visitor DependencyVisitor)

	once    sync.Once
	results []Result
}

// newSelectedArtifactSet is constructed by the engine with the deferred
// resolution and the cheap dependency walk.
func newSelectedArtifactSet(resolve func(ctx context.Context) []Result, deps func(DependencyVisitor)) *SelectedArtifactSet {
	return &SelectedArtifactSet{resolve: resolve, deps: deps}
}

// VisitDependencies walks the build-dependency edges of the request.
// It always delegates to the upstream provider and never triggers
// variant or transform selection.
func (s *SelectedArtifactSet) VisitDependencies(visitor DependencyVisitor) {
	s.deps(visitor)
}

// VisitArtifacts visits the final artifacts. The first call triggers the
// full resolution and memoizes it; subsequent calls reuse the memoized
// results without recomputation.
//
// With continueOnFailure, per-artifact failures are reported to the
// visitor alongside successes and the first of them is returned after
// the walk. Without it, the first failure aborts the visit.
func (s *SelectedArtifactSet) VisitArtifacts(ctx context.Context, visitor ArtifactVisitor, continueOnFailure bool) error {
	s.once.Do(func() {
		s.results = s.resolve(ctx)
	})

	var firstErr error
	for _, r := range s.results {
		if r.Failed() {
			visitor.VisitFailure(r.Err)
			if !continueOnFailure {
				return r.Err
			}
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}
		visitor.VisitArtifact(r.Artifact)
	}
	return firstErr
}
