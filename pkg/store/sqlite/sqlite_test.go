package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matzehuels/roomgraph/pkg/store/storetest"
)

func TestStore(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "graphs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	storetest.Run(t, s)
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "graphs.db")
	ctx := context.Background()

	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, "level1", []byte("{}")); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = New(path)
	if err != nil {
		t.Fatalf("New() reopen error = %v", err)
	}
	defer s.Close()
	got, err := s.Load(ctx, "level1")
	if err != nil || string(got) != "{}" {
		t.Errorf("Load() = %s, %v, want {}", got, err)
	}
}
