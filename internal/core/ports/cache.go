package ports

import "go.trai.ch/weft/internal/core/domain"

// TransformStore is the content-addressable transform execution cache.
// It is the one mutable structure shared across resolutions and must
// support safe concurrent reads and writes with no cross-key interference.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type TransformStore interface {
	// Get returns the outputs previously produced under key.
	// ok is false on a miss, including when a stored entry's outputs
	// are no longer present on disk (a forced miss, never an error).
	Get(key domain.CacheKey) (outputs []domain.Artifact, ok bool, err error)

	// Put stores the outputs produced under key. It is only called
	// after the action succeeded; a failed step caches nothing.
	Put(key domain.CacheKey, outputs []domain.Artifact) error

	// Clean drops every cache entry and its materialized outputs.
	Clean() error
}
