// Package cli implements the roomgraph command-line interface.
//
// This package provides commands for creating and editing dungeon room
// graphs held in a graph store, validating and rendering them, and serving
// them over HTTP. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - new, list, show, validate: Manage stored graphs
//   - add, connect, disconnect, delete, retype, move: Edit one graph per call
//   - select, unlink, prune: Batch edits over a set of nodes
//   - edit: Interactive shell over one graph
//   - render, import, export: Convert graphs to and from files
//   - serve: JSON HTTP API
//
// # Configuration
//
// An optional TOML file at $XDG_CONFIG_HOME/roomgraph/config.toml selects
// the node type catalog and the store backend. Persistent flags override it.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports graph edits and store traffic. Loggers are passed through
// context.Context.
//
// # Example
//
//	import "github.com/matzehuels/roomgraph/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger that timestamps each line as 15:04:05.00.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one command step and reports it at info level.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with keyvals and the elapsed time, e.g.
// "Imported graph=level1 nodes=6 elapsed=12ms".
func (p *progress) done(msg string, keyvals ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Info(msg, append(keyvals, "elapsed", elapsed)...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the command's logger, or log.Default() when
// none is attached (completion runs without the root pre-run).
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
