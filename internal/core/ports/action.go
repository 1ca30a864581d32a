// Package ports defines the core interfaces for the engine.
package ports

import (
	"context"

	"go.trai.ch/weft/internal/core/domain"
)

// ActionInvocation is one request to run a transform action: one input
// artifact, its declared parameters, and a caller-provided output
// location the action materializes its outputs under.
type ActionInvocation struct {
	// Action is the stable action identity from the registration.
	Action string
	// Parameters are the registration's declared parameter values.
	Parameters map[string]string
	// Input is the artifact being transformed. Digest is populated.
	Input domain.Artifact
	// Dependencies holds the input's transitive dependency artifacts,
	// only when the registration declared it needs them.
	Dependencies []domain.Artifact
	// OutputDir is where the action must materialize relative outputs.
	OutputDir string
}

// ActionRunner executes one transform action. It is implemented by the
// build-script collaborator; the engine only schedules and caches it.
// Actions are expected to be deterministic: the same invocation produces
// byte-identical outputs.
//
//go:generate go run go.uber.org/mock/mockgen -source=action.go -destination=mocks/mock_action.go -package=mocks
type ActionRunner interface {
	// Run produces zero, one, or multiple named output artifacts.
	// On error no outputs are considered produced.
	Run(ctx context.Context, inv ActionInvocation) ([]domain.Artifact, error)
}
