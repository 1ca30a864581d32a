package domain

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// CacheKey identifies one transform execution for the execution cache.
// Two logically identical requests across unrelated resolutions must
// collide to the same key, so every field is content- or identity-based
// and never build-local.
type CacheKey struct {
	// InputPath is the normalized path of the input artifact.
	InputPath string
	// InputDigest is the content digest of the input artifact.
	InputDigest string
	// TransformID is the transform identity (action + parameters).
	TransformID string
	// Parameters is the canonical serialized parameter string.
	Parameters string
	// ChainPosition is the step's index within its chain.
	ChainPosition int
	// DependenciesDigest is the combined identity of the input's
	// transitive dependency artifacts. Empty unless the registration
	// declared UsesDependencies.
	DependenciesDigest string
}

// Digest returns the stable hex key used by the execution cache.
// Fields are NUL-separated so distinct field values never collide.
func (k CacheKey) Digest() string {
	h := xxhash.New()
	_, _ = h.WriteString(k.InputPath)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(k.InputDigest)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(k.TransformID)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(k.Parameters)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(strconv.Itoa(k.ChainPosition))
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(k.DependenciesDigest)
	return fmt.Sprintf("%016x", h.Sum64())
}
