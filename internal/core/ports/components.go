package ports

import (
	"context"

	"go.trai.ch/weft/internal/core/domain"
)

// ComponentProvider supplies the selected components for a resolution.
// Version-conflict resolution across the graph happens upstream; the
// engine only selects variants within the components it is handed.
//
//go:generate go run go.uber.org/mock/mockgen -source=components.go -destination=mocks/mock_components.go -package=mocks
type ComponentProvider interface {
	// Components returns the candidate components passing the filter.
	Components(ctx context.Context, filter domain.ComponentFilter) ([]domain.Component, error)
}
