package ports

import "go.trai.ch/weft/internal/core/domain"

// UniverseLoader loads the resolution context: schema declarations,
// components, transform registrations, and action definitions.
//
//go:generate go run go.uber.org/mock/mockgen -source=universe_loader.go -destination=mocks/mock_universe_loader.go -package=mocks
type UniverseLoader interface {
	// Load reads the universe definition at path.
	Load(path string) (*domain.Universe, error)
}
