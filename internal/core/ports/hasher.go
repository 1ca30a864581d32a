package ports

import "go.trai.ch/weft/internal/core/domain"

// Hasher computes content identities for cache keys.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ArtifactDigest computes the content digest of the file or
	// directory at path. The digest is stable across machines for
	// identical content.
	ArtifactDigest(path string) (string, error)

	// DependenciesDigest combines the digests of the given artifacts
	// into one identity, independent of their order.
	DependenciesDigest(artifacts []domain.Artifact) (string, error)
}
