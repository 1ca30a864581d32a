package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes artifact content identities with xxhash.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ArtifactDigest computes the content digest of the file or directory at
// path. Directory digests combine each contained file's relative path
// and content hash, so the digest is stable across machines. Cache keys
// built from these digests collide exactly when the content is identical.
func (h *Hasher) ArtifactDigest(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to stat artifact"), "path", path)
	}

	hasher := xxhash.New()
	if info.IsDir() {
		for filePath := range h.walker.WalkFiles(path) {
			rel, relErr := filepath.Rel(path, filePath)
			if relErr != nil {
				rel = filePath
			}
			_, _ = hasher.WriteString(rel)
			_, _ = hasher.Write([]byte{0})
			fileHash, hashErr := h.fileHash(filePath)
			if hashErr != nil {
				return "", hashErr
			}
			if err := binary.Write(hasher, binary.LittleEndian, fileHash); err != nil {
				return "", zerr.Wrap(err, "failed to write hash to digest")
			}
		}
	} else {
		fileHash, hashErr := h.fileHash(path)
		if hashErr != nil {
			return "", hashErr
		}
		if err := binary.Write(hasher, binary.LittleEndian, fileHash); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
	}
	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// DependenciesDigest combines artifact digests independent of order, so
// the upstream dependency identity is stable across resolutions.
func (h *Hasher) DependenciesDigest(artifacts []domain.Artifact) (string, error) {
	digests := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		d := a.Digest
		if d == "" {
			var err error
			d, err = h.ArtifactDigest(a.Path)
			if err != nil {
				return "", err
			}
		}
		digests = append(digests, a.Path+"\x00"+d)
	}
	sort.Strings(digests)

	hasher := xxhash.New()
	for _, d := range digests {
		_, _ = hasher.WriteString(d)
		_, _ = hasher.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func (h *Hasher) fileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open artifact file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash artifact content"), "path", path)
	}
	return hasher.Sum64(), nil
}
