// Package store persists room graph documents by name.
//
// A [Store] holds opaque byte slices, normally the JSON documents written by
// [io.Marshal]. Backends:
//   - [MemoryStore]: in-process map for tests and the HTTP server's scratch mode
//   - [FileStore]: one JSON file per graph in a data directory (CLI default)
//   - redis, mongo and sqlite subpackages for shared deployments
//
// Graph names are validated with [errors.ValidateGraphName] before they
// reach a backend, so every backend can use them verbatim as keys.
//
// # Usage
//
//	s, err := store.NewFileStore("")
//	if err != nil {
//	    return err
//	}
//	s = store.Instrument(s, "file")
//	defer s.Close()
//
//	data, err := s.Load(ctx, "level1")
//	if errors.Is(err, store.ErrNotFound) {
//	    // first save
//	}
//
// [io.Marshal]: github.com/matzehuels/roomgraph/pkg/io.Marshal
// [errors.ValidateGraphName]: github.com/matzehuels/roomgraph/pkg/errors.ValidateGraphName
package store

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrNotFound is returned by Load when no graph is stored under the name.
var ErrNotFound = errors.New("graph not found")

// Store is the interface for graph storage backends.
type Store interface {
	// Load returns the stored document for name, or ErrNotFound.
	Load(ctx context.Context, name string) ([]byte, error)

	// Save stores data under name, replacing any previous document.
	Save(ctx context.Context, name string, data []byte) error

	// Delete removes name. Deleting a missing graph is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names in lexical order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// MemoryStore keeps documents in memory. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.docs[name]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(data), nil
}

func (s *MemoryStore) Save(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[name] = slices.Clone(data)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, name)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
