package redis

import (
	"context"
	"os"
	"testing"

	goredis "github.com/redis/go-redis/v9"

	"github.com/matzehuels/roomgraph/pkg/store/storetest"
)

func TestKeys(t *testing.T) {
	tests := []struct {
		prefix    string
		wantGraph string
		wantIndex string
	}{
		{"", "roomgraph:graph:level1", "roomgraph:graphs"},
		{"test:", "test:graph:level1", "test:graphs"},
	}

	for _, tt := range tests {
		s := NewWithClient(goredis.NewClient(&goredis.Options{}), tt.prefix)
		if got := s.graphKey("level1"); got != tt.wantGraph {
			t.Errorf("graphKey() = %q, want %q", got, tt.wantGraph)
		}
		if got := s.indexKey(); got != tt.wantIndex {
			t.Errorf("indexKey() = %q, want %q", got, tt.wantIndex)
		}
		s.Close()
	}
}

// TestStore runs against a live server when ROOMGRAPH_REDIS_ADDR is set.
func TestStore(t *testing.T) {
	addr := os.Getenv("ROOMGRAPH_REDIS_ADDR")
	if addr == "" {
		t.Skip("ROOMGRAPH_REDIS_ADDR not set")
	}
	ctx := context.Background()
	prefix := "roomgraph-test:" + t.Name() + ":"

	s, err := New(ctx, Config{Addr: addr, Prefix: prefix})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	t.Cleanup(func() {
		names, _ := s.List(ctx)
		for _, n := range names {
			s.Delete(ctx, n)
		}
	})

	storetest.Run(t, s)
}
