package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgraph/internal/workspace"
	"github.com/matzehuels/roomgraph/pkg/buildinfo"
	"github.com/matzehuels/roomgraph/pkg/cache"
	"github.com/matzehuels/roomgraph/pkg/catalog"
	rgerrors "github.com/matzehuels/roomgraph/pkg/errors"
	"github.com/matzehuels/roomgraph/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "roomgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	overrides  Config // values set by persistent flags
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Roomgraph edits dungeon room graphs",
		Long:         `Roomgraph builds the topology of a dungeon level as a graph of typed rooms and corridors, enforcing the rules a procedural level generator relies on.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			if c.Logger.GetLevel() <= log.DebugLevel {
				hooks := &logHooks{logger: c.Logger}
				observability.SetGraphHooks(hooks)
				observability.SetStoreHooks(hooks)
				observability.SetCacheHooks(hooks)
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/roomgraph/config.toml)")
	flags.StringVar(&c.overrides.Catalog, "catalog", "", "node type catalog (.toml or .hcl)")
	flags.StringVar(&c.overrides.Store.Backend, "store", "", "store backend: memory, file, redis, mongo, sqlite")
	flags.StringVar(&c.overrides.Store.Dir, "store-dir", "", "graph directory for the file backend")

	// Graphs
	root.AddCommand(c.typesCommand())
	root.AddCommand(c.newCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.renderCommand())

	// Nodes and edges
	root.AddCommand(c.addCommand())
	root.AddCommand(c.connectCommand())
	root.AddCommand(c.disconnectCommand())
	root.AddCommand(c.deleteCommand())
	root.AddCommand(c.retypeCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.selectCommand())
	root.AddCommand(c.unlinkCommand())
	root.AddCommand(c.pruneCommand())

	// Sessions
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())

	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	c.registerCompletions(root)
	return root
}

// =============================================================================
// Workspace Factory
// =============================================================================

// config loads the config file and applies flag overrides.
func (c *CLI) config() (Config, error) {
	path := c.configPath
	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return Config{}, err
	}
	cfg.merge(c.overrides)
	return cfg, nil
}

// openWorkspace builds the catalog and store named by the configuration.
// The caller must close the returned workspace's store.
func (c *CLI) openWorkspace(ctx context.Context) (*workspace.Workspace, Config, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, Config{}, err
	}
	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, Config{}, err
	}
	for _, msg := range cat.Lint() {
		loggerFromContext(ctx).Warn("catalog", "issue", msg)
	}
	s, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, Config{}, err
	}
	return workspace.New(cat, s, graphOptions(cfg)...), cfg, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		if rgerrors.GetCode(err) != "" {
			return nil, err
		}
		return nil, rgerrors.Wrap(rgerrors.ErrCodeInvalidCatalog, err, "load catalog %s", path)
	}
	return cat, nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/roomgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/roomgraph/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
