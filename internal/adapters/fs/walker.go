// Package fs provides filesystem adapters: artifact content hashing and
// transform workspace allocation.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker yields the files under a directory artifact in lexical order,
// which keeps directory digests deterministic.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every regular file under root. VCS metadata
// directories never contribute to an artifact's content identity.
func (w *Walker) WalkFiles(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if name == ".git" || name == ".jj" {
					return filepath.SkipDir
				}
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
