// Package cas implements the content-addressable transform execution
// cache, backed by a JSON index on disk.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/zerr"
)

const indexFile = "index.json"

// entry is one cached transform execution.
type entry struct {
	TransformID string            `json:"transform_id"`
	InputPath   string            `json:"input_path"`
	Outputs     []domain.Artifact `json:"outputs"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Store implements ports.TransformStore. Reads and writes are keyed by
// cache-key digest with no cross-key interference; a single RWMutex
// guards the in-memory index, disk writes happen under the write lock.
type Store struct {
	dir   string
	mu    sync.RWMutex
	cache map[string]entry
}

// NewStore opens (or creates) the store rooted at dir.
func NewStore(dir string) (*Store, error) {
	s := &Store{
		dir:   filepath.Clean(dir),
		cache: make(map[string]entry),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) indexPath() string {
	return filepath.Join(s.dir, indexFile)
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.indexPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read transform cache index")
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal transform cache index")
	}
	return nil
}

// save writes the index. Callers must hold the write lock.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal transform cache index")
	}
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create transform cache directory")
	}
	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.indexPath(), data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write transform cache index")
	}
	return nil
}

// Get returns the outputs stored under key. A stored entry whose outputs
// are no longer present on disk is dropped and reported as a miss, so a
// corrupted cache forces re-execution instead of failing the resolution.
func (s *Store) Get(key domain.CacheKey) ([]domain.Artifact, bool, error) {
	digest := key.Digest()

	s.mu.RLock()
	e, ok := s.cache[digest]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	for _, out := range e.Outputs {
		if _, err := os.Stat(out.Path); err != nil {
			s.evict(digest)
			return nil, false, nil
		}
	}

	outputs := make([]domain.Artifact, len(e.Outputs))
	copy(outputs, e.Outputs)
	return outputs, true, nil
}

func (s *Store) evict(digest string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cache[digest]; !ok {
		return
	}
	delete(s.cache, digest)
	// Best effort: a failed index write leaves a stale entry that the
	// existence check catches again on the next fetch.
	_ = s.save()
}

// Put stores the outputs produced under key.
func (s *Store) Put(key domain.CacheKey, outputs []domain.Artifact) error {
	stored := make([]domain.Artifact, len(outputs))
	copy(stored, outputs)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key.Digest()] = entry{
		TransformID: key.TransformID,
		InputPath:   key.InputPath,
		Outputs:     stored,
		CreatedAt:   time.Now(),
	}
	return s.save()
}

// Clean drops every entry and the materialized outputs under the store's
// directory.
func (s *Store) Clean() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]entry)
	if err := os.RemoveAll(s.dir); err != nil {
		return zerr.Wrap(err, "failed to remove transform cache directory")
	}
	return nil
}
