// Package resolution orchestrates variant selection, transform chain
// execution, and the lazily-computed selected artifact set.
package resolution

import "go.trai.ch/weft/internal/core/domain"

// ResolvedArtifact is one final artifact of a resolution, together with
// where it came from and the chain (possibly empty) that produced it.
type ResolvedArtifact struct {
	Artifact  domain.Artifact
	Component domain.Coordinate
	Variant   string
	Chain     domain.Chain
}

// Result is the variant-tagged outcome for one artifact: success or
// failure. Failures travel as data so the continue-on-failure semantics
// stay explicit instead of crossing the visitor as control flow.
type Result struct {
	Artifact ResolvedArtifact
	Err      error
}

// Failed reports whether the result is a failure.
func (r Result) Failed() bool { return r.Err != nil }

// ArtifactVisitor receives the final artifacts of a resolution.
type ArtifactVisitor interface {
	// VisitArtifact is called once per successfully resolved artifact.
	VisitArtifact(a ResolvedArtifact)
	// VisitFailure is called once per collected failure.
	VisitFailure(err error)
}

// DependencyVisitor receives the build-dependency edges of a resolution
// without forcing variant or transform selection.
type DependencyVisitor interface {
	VisitDependency(coord domain.Coordinate)
}
