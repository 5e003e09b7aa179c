package cli

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	rgerrors "github.com/matzehuels/roomgraph/pkg/errors"
)

const configFile = "config.toml"

// Config is the optional TOML configuration file.
//
//	catalog = "types.toml"
//	max_child_corridors = 3
//
//	[store]
//	backend = "file"
//	dir = ""
//
//	[server]
//	addr = ":8080"
type Config struct {
	Catalog           string       `toml:"catalog"`
	MaxChildCorridors int          `toml:"max_child_corridors"`
	Store             StoreConfig  `toml:"store"`
	Server            ServerConfig `toml:"server"`
}

// StoreConfig selects and configures the graph store backend.
type StoreConfig struct {
	Backend       string `toml:"backend"` // memory | file | redis | mongo | sqlite
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPrefix   string `toml:"redis_prefix"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
	SQLitePath    string `toml:"sqlite_path"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

func defaultConfig() Config {
	return Config{
		Store: StoreConfig{
			Backend:       backendFile,
			RedisAddr:     "localhost:6379",
			RedisPrefix:   "roomgraph:",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "roomgraph",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// loadConfig reads path over the defaults. A missing file is only an error
// when the path was given explicitly. Relative catalog and store paths are
// resolved against the config file's directory.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return defaultConfig(), nil
	}
	if err != nil {
		return Config{}, rgerrors.Wrap(rgerrors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, rgerrors.New(rgerrors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	base := filepath.Dir(path)
	cfg.Catalog = resolve(base, cfg.Catalog)
	cfg.Store.Dir = resolve(base, cfg.Store.Dir)
	cfg.Store.SQLitePath = resolve(base, cfg.Store.SQLitePath)
	return cfg, nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// merge overrides c with every non-zero field of o.
func (c *Config) merge(o Config) {
	if o.Catalog != "" {
		c.Catalog = o.Catalog
	}
	if o.MaxChildCorridors > 0 {
		c.MaxChildCorridors = o.MaxChildCorridors
	}
	if o.Store.Backend != "" {
		c.Store.Backend = o.Store.Backend
	}
	if o.Store.Dir != "" {
		c.Store.Dir = o.Store.Dir
	}
	if o.Store.RedisAddr != "" {
		c.Store.RedisAddr = o.Store.RedisAddr
	}
	if o.Store.MongoURI != "" {
		c.Store.MongoURI = o.Store.MongoURI
	}
	if o.Store.SQLitePath != "" {
		c.Store.SQLitePath = o.Store.SQLitePath
	}
	if o.Server.Addr != "" {
		c.Server.Addr = o.Server.Addr
	}
}
