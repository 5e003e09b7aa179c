package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/roomgraph/pkg/observability"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "render:x"); hit {
		t.Error("Get on empty cache should miss")
	}
	if err := c.Set(ctx, "render:x", []byte("<svg/>"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "render:x")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Errorf("Get = %q, %v, %v, want <svg/>, true, nil", data, hit, err)
	}

	if err := c.Delete(ctx, "render:x"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "render:x"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "render:x"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)
	fc := c.(*FileCache)

	path := fc.path("k")
	os.MkdirAll(filepath.Dir(path), 0755)
	os.WriteFile(path, []byte("not json"), 0644)

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get corrupt entry = %v, %v, want miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

type countingHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets map[string]int
}

func (h *countingHooks) OnCacheHit(_ context.Context, keyType string)  { h.hits[keyType]++ }
func (h *countingHooks) OnCacheMiss(_ context.Context, keyType string) { h.misses[keyType]++ }
func (h *countingHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.sets[keyType]++
}

func TestFileCacheHooks(t *testing.T) {
	h := &countingHooks{hits: map[string]int{}, misses: map[string]int{}, sets: map[string]int{}}
	observability.SetCacheHooks(h)
	defer observability.Reset()

	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	key := RenderKey([]byte("digraph {}"), "svg")

	c.Get(ctx, key)
	c.Set(ctx, key, []byte("<svg/>"), 0)
	c.Get(ctx, key)

	if h.misses["render"] != 1 || h.sets["render"] != 1 || h.hits["render"] != 1 {
		t.Errorf("hooks = hits %v misses %v sets %v, want one of each for render", h.hits, h.misses, h.sets)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestRenderKey(t *testing.T) {
	src := []byte("digraph { a -> b }")

	k := RenderKey(src, "svg")
	if !strings.HasPrefix(k, "render:") {
		t.Errorf("RenderKey() = %q, want render: prefix", k)
	}
	if RenderKey(src, "svg") != k {
		t.Error("RenderKey should be deterministic")
	}
	if RenderKey(src, "dot") == k {
		t.Error("format should change the key")
	}
	if RenderKey([]byte("digraph {}"), "svg") == k {
		t.Error("source should change the key")
	}
}

func TestUsageAndClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)

	for _, dot := range []string{"digraph a {}", "digraph b {}", "digraph c {}"} {
		if err := c.Set(ctx, RenderKey([]byte(dot), "svg"), []byte("<svg/>"), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, size, err := Usage(dir)
	if err != nil || n != 3 || size == 0 {
		t.Errorf("Usage() = %d, %d, %v, want 3 entries", n, size, err)
	}

	removed, err := Clear(dir)
	if err != nil || removed != 3 {
		t.Errorf("Clear() = %d, %v, want 3", removed, err)
	}
	if n, _, _ := Usage(dir); n != 0 {
		t.Errorf("Usage() after Clear = %d entries, want 0", n)
	}
	if shards, _ := os.ReadDir(dir); len(shards) != 0 {
		t.Errorf("Clear left %d shard directories", len(shards))
	}
}

func TestUsageMissingDir(t *testing.T) {
	n, size, err := Usage(filepath.Join(t.TempDir(), "absent"))
	if n != 0 || size != 0 || err != nil {
		t.Errorf("Usage(missing) = %d, %d, %v, want empty", n, size, err)
	}
}
