// Package storetest provides a conformance suite shared by the store
// backends' tests.
package storetest

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/matzehuels/roomgraph/pkg/store"
)

// Run exercises s through the full [store.Store] contract. s must start
// empty.
func Run(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		if _, err := s.Load(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("save and load", func(t *testing.T) {
		want := []byte(`{"version":1,"nodes":[]}`)
		if err := s.Save(ctx, "level1", want); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := s.Load(ctx, "level1")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if string(got) != string(want) {
			t.Errorf("Load() = %s, want %s", got, want)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		if err := s.Save(ctx, "level1", []byte("v2")); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := s.Load(ctx, "level1")
		if err != nil || string(got) != "v2" {
			t.Errorf("Load() = %s, %v, want v2", got, err)
		}
	})

	t.Run("list", func(t *testing.T) {
		if err := s.Save(ctx, "a-level", []byte("a")); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		names, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if want := []string{"a-level", "level1"}; !slices.Equal(names, want) {
			t.Errorf("List() = %v, want %v", names, want)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := s.Delete(ctx, "level1"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := s.Load(ctx, "level1"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Load() after Delete error = %v, want ErrNotFound", err)
		}
		if err := s.Delete(ctx, "level1"); err != nil {
			t.Errorf("Delete() twice error = %v, want nil", err)
		}
	})
}
