package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Workspace = (*Workspace)(nil)

// Workspace allocates per-key output directories under the cache root.
// The same key digest always maps to the same directory, so cache
// entries and their outputs live side by side.
type Workspace struct {
	root string
}

// NewWorkspace creates a Workspace rooted at dir.
func NewWorkspace(dir string) *Workspace {
	return &Workspace{root: filepath.Clean(dir)}
}

// OutputDir returns the output directory for keyDigest, creating it if
// needed. Digests are sharded by their first two characters to keep
// directory fan-out bounded.
func (w *Workspace) OutputDir(keyDigest string) (string, error) {
	shard := keyDigest
	if len(shard) > 2 {
		shard = shard[:2]
	}
	dir := filepath.Join(w.root, "outputs", shard, keyDigest)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create transform output directory"), "dir", dir)
	}
	return dir, nil
}
