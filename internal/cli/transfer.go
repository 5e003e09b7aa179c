package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgraph/internal/workspace"
	rgerrors "github.com/matzehuels/roomgraph/pkg/errors"
	rgio "github.com/matzehuels/roomgraph/pkg/io"
	"github.com/matzehuels/roomgraph/pkg/roomgraph"
)

// importCommand stores a graph read from a JSON document.
func (c *CLI) importCommand() *cobra.Command {
	var (
		name  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Store a graph from a JSON document",
		Long: `Store a graph from a JSON document. The graph is named after the file
unless --name is given. Graphs that break room graph rules are imported with
their violations listed, so they can be repaired with the edit commands.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if err := rgerrors.ValidatePath(path); err != nil {
				return err
			}
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}
			if err := rgerrors.ValidateGraphName(name); err != nil {
				return err
			}

			return c.withWorkspace(cmd, func(ws *workspace.Workspace) error {
				ctx := cmd.Context()
				prog := newProgress(loggerFromContext(ctx))
				g, err := rgio.ImportJSON(path, ws.Catalog, ws.Options...)
				if err != nil {
					return importError(err)
				}
				if !force {
					if _, err := ws.Open(ctx, name); err == nil {
						return rgerrors.New(rgerrors.ErrCodeConflict, "graph %q already exists (use --force to replace it)", name)
					} else if !rgerrors.Is(err, rgerrors.ErrCodeGraphNotFound) {
						return err
					}
				}
				if err := ws.Save(ctx, name, g); err != nil {
					return err
				}
				prog.done("Imported", "graph", name, "nodes", g.Len())

				printSuccess("Imported %s", StyleHighlight.Render(name))
				printStats(g.Len(), g.EdgeCount(), false)
				if vs := roomgraph.Audit(g); len(vs) > 0 {
					printViolations(cmd.OutOrStdout(), vs)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "graph name (default: file name)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing graph")
	return cmd
}

// exportCommand writes a stored graph as a JSON document.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <graph>",
		Short: "Write a stored graph as a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withWorkspace(cmd, func(ws *workspace.Workspace) error {
				g, err := ws.Open(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if output == "-" {
					return rgio.WriteJSON(g, os.Stdout)
				}
				path := output
				if path == "" {
					path = args[0] + ".json"
				}
				if err := rgerrors.ValidatePath(path); err != nil {
					return err
				}
				if err := rgio.ExportJSON(g, path); err != nil {
					return rgerrors.Wrap(rgerrors.ErrCodeInvalidPath, err, "export %s", args[0])
				}
				printSuccess("Exported %s", StyleHighlight.Render(args[0]))
				printFile(path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <graph>.json, - for stdout)")
	return cmd
}
