package cli

import (
	"context"
	"os"
	"path/filepath"

	rgerrors "github.com/matzehuels/roomgraph/pkg/errors"
	"github.com/matzehuels/roomgraph/pkg/store"
	"github.com/matzehuels/roomgraph/pkg/store/mongo"
	"github.com/matzehuels/roomgraph/pkg/store/redis"
	"github.com/matzehuels/roomgraph/pkg/store/sqlite"
)

// Store backends.
const (
	backendMemory = "memory"
	backendFile   = "file"
	backendRedis  = "redis"
	backendMongo  = "mongo"
	backendSQLite = "sqlite"
)

// openStore opens the configured backend wrapped with store hooks.
func openStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	logger := loggerFromContext(ctx)

	var (
		s   store.Store
		err error
	)
	switch cfg.Backend {
	case backendMemory:
		s = store.NewMemoryStore()
	case backendFile, "":
		s, err = store.NewFileStore(cfg.Dir)
	case backendRedis:
		spin := startSpinner(ctx, os.Stderr, "Connecting to redis...")
		s, err = redis.New(ctx, redis.Config{Addr: cfg.RedisAddr, Prefix: cfg.RedisPrefix})
		spin.Stop()
	case backendMongo:
		spin := startSpinner(ctx, os.Stderr, "Connecting to mongo...")
		s, err = mongo.New(ctx, mongo.Config{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
		spin.Stop()
	case backendSQLite:
		path := cfg.SQLitePath
		if path == "" {
			dir, derr := store.DefaultDir()
			if derr != nil {
				return nil, derr
			}
			path = filepath.Join(filepath.Dir(dir), "graphs.db")
		}
		s, err = sqlite.New(path)
	default:
		return nil, rgerrors.New(rgerrors.ErrCodeInvalidInput, "unknown store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, rgerrors.Wrap(rgerrors.ErrCodeStorage, err, "open %s store", cfg.Backend)
	}

	backend := cfg.Backend
	if backend == "" {
		backend = backendFile
	}
	logger.Debug("store opened", "backend", backend)
	return store.Instrument(s, backend), nil
}
