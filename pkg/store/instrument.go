package store

import (
	"context"
	"time"

	"github.com/matzehuels/roomgraph/pkg/observability"
)

// Instrument wraps s so that every Load, Save and Delete is reported to the
// registered [observability.StoreHooks] under the given backend name.
func Instrument(s Store, backend string) Store {
	return &instrumented{Store: s, backend: backend}
}

type instrumented struct {
	Store
	backend string
}

func (s *instrumented) Load(ctx context.Context, name string) ([]byte, error) {
	start := time.Now()
	data, err := s.Store.Load(ctx, name)
	observability.Store().OnLoad(ctx, s.backend, name, len(data), time.Since(start), err)
	return data, err
}

func (s *instrumented) Save(ctx context.Context, name string, data []byte) error {
	start := time.Now()
	err := s.Store.Save(ctx, name, data)
	observability.Store().OnSave(ctx, s.backend, name, len(data), time.Since(start), err)
	return err
}

func (s *instrumented) Delete(ctx context.Context, name string) error {
	err := s.Store.Delete(ctx, name)
	observability.Store().OnDelete(ctx, s.backend, name, err)
	return err
}
