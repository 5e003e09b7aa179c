package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgraph/internal/server"
)

// serveCommand runs the JSON HTTP API over the configured store.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the room graph HTTP API",
		Long: `Serve the room graph HTTP API. Every successful edit is saved to the
configured store. The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, cfg, err := c.openWorkspace(ctx)
			if err != nil {
				return err
			}
			defer ws.Store.Close()

			if addr == "" {
				addr = cfg.Server.Addr
			}
			return server.New(ws, loggerFromContext(ctx)).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
