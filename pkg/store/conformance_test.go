package store_test

import (
	"testing"

	"github.com/matzehuels/roomgraph/pkg/store"
	"github.com/matzehuels/roomgraph/pkg/store/storetest"
)

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, store.NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	s, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	storetest.Run(t, s)
}

func TestInstrumentedStore(t *testing.T) {
	storetest.Run(t, store.Instrument(store.NewMemoryStore(), "memory"))
}
