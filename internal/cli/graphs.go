package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgraph/internal/workspace"
	rgerrors "github.com/matzehuels/roomgraph/pkg/errors"
	"github.com/matzehuels/roomgraph/pkg/roomgraph"
)

// withWorkspace opens the configured workspace for one command and closes
// its store afterwards.
func (c *CLI) withWorkspace(cmd *cobra.Command, fn func(ws *workspace.Workspace) error) error {
	ws, _, err := c.openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer ws.Store.Close()
	return fn(ws)
}

// typesCommand lists the node types of the configured catalog.
func (c *CLI) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the node types of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg.Catalog)
			if err != nil {
				return err
			}
			printTypes(cmd.OutOrStdout(), cat)
			for _, msg := range cat.Lint() {
				printWarning("%s", msg)
			}
			return nil
		},
	}
}

// newCommand creates a graph holding only the entrance.
func (c *CLI) newCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "new <graph>",
		Short: "Create a graph with an entrance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withWorkspace(cmd, func(ws *workspace.Workspace) error {
				g, err := ws.Create(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				entrance, _ := g.Entrance()
				printSuccess("Created %s", StyleHighlight.Render(args[0]))
				printDetail("entrance: %s", shortID(entrance.ID()))
				printNewline()
				printNextStep("Add a corridor", fmt.Sprintf("%s add %s Corridor", appName, args[0]))
				return nil
			})
		},
	}
}

// listCommand lists the stored graph names.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored graphs",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withWorkspace(cmd, func(ws *workspace.Workspace) error {
				names, err := ws.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(names) == 0 {
					printInfo("No graphs yet")
					printNextStep("Create one", appName+" new <graph>")
					return nil
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}
}

// showCommand prints a graph's nodes and a summary.
func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <graph>",
		Short: "Show the nodes and edges of a graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withWorkspace(cmd, func(ws *workspace.Workspace) error {
				g, err := ws.Open(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printSummary(args[0], g)
				printNodes(cmd.OutOrStdout(), g)
				return nil
			})
		},
	}
}

// validateCommand audits a stored graph and fails when it has errors.
func (c *CLI) validateCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <graph>",
		Short: "Check a stored graph against the room graph rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withWorkspace(cmd, func(ws *workspace.Workspace) error {
				g, err := ws.Open(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				vs := roomgraph.Audit(g)
				printViolations(cmd.OutOrStdout(), vs)
				return checkViolations(args[0], vs, strict)
			})
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	return cmd
}

// checkViolations reports the audit outcome and returns an INVALID_GRAPH
// error when the graph fails.
func checkViolations(name string, vs []roomgraph.Violation, strict bool) error {
	failed := roomgraph.HasErrors(vs) || (strict && len(vs) > 0)
	if failed {
		return rgerrors.New(rgerrors.ErrCodeInvalidGraph, "%s has %d %s", name, len(vs), plural(len(vs), "violation", "violations"))
	}
	if len(vs) > 0 {
		printWarning("%s is valid with %d %s", name, len(vs), plural(len(vs), "warning", "warnings"))
		return nil
	}
	printSuccess("%s is valid", name)
	return nil
}

func printSummary(name string, g *roomgraph.Graph) {
	printKeyValue("Graph", StyleHighlight.Render(name))
	printKeyValue("Nodes", fmt.Sprint(g.Len()))
	printKeyValue("Edges", fmt.Sprint(g.EdgeCount()))
	if e, ok := g.Entrance(); ok {
		printKeyValue("Entrance", shortID(e.ID()))
	}
}
