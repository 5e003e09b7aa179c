package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgraph/pkg/catalog"
	rgerrors "github.com/matzehuels/roomgraph/pkg/errors"
)

// mutate runs one edit against a stored graph and saves it when the edit
// changed anything.
func (c *CLI) mutate(cmd *cobra.Command, name string, fn func(s *session) (string, error)) error {
	ctx := cmd.Context()
	s, err := c.openSession(ctx, name)
	if err != nil {
		return err
	}
	defer s.close()

	msg, err := fn(s)
	if err != nil {
		return err
	}
	if err := s.save(ctx); err != nil {
		return err
	}
	printSuccess("%s", msg)
	return nil
}

// addCommand creates a node.
func (c *CLI) addCommand() *cobra.Command {
	var (
		x, y float64
		pick bool
	)

	cmd := &cobra.Command{
		Use:   "add <graph> [type...]",
		Short: "Add a node to a graph",
		Long: `Add a node to a graph. The type name may contain spaces and is matched
case-insensitively. Without a type the node is unassigned, to be given a type
later with retype.`,
		Example: `  roomgraph add level1 Corridor --x 120 --y 40
  roomgraph add level1 boss room
  roomgraph add level1 --pick`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.mutate(cmd, args[0], func(s *session) (string, error) {
				var t *catalog.NodeType
				var err error
				if pick {
					t, err = pickType(s.ws.Catalog, nil)
				} else {
					t, err = s.lookupType(strings.Join(args[1:], " "))
				}
				if err != nil {
					return "", err
				}
				return s.add(t, x, y)
			})
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "canvas x position")
	cmd.Flags().Float64Var(&y, "y", 0, "canvas y position")
	cmd.Flags().BoolVar(&pick, "pick", false, "choose the type interactively")
	return cmd
}

// connectCommand adds a parent→child edge.
func (c *CLI) connectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "connect <graph> <parent> <child>",
		Short: "Connect a parent node to a child node",
		Long: `Connect a parent node to a child node. Nodes are referenced by id or by a
unique id prefix. The edge is refused with the reason when it would break a
room graph rule.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.mutate(cmd, args[0], func(s *session) (string, error) {
				return s.connect(args[1], args[2])
			})
		},
	}
}

// disconnectCommand removes a parent→child edge.
func (c *CLI) disconnectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect <graph> <parent> <child>",
		Short: "Remove the edge between two nodes",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.mutate(cmd, args[0], func(s *session) (string, error) {
				return s.disconnect(args[1], args[2])
			})
		},
	}
}

// deleteCommand deletes one node.
func (c *CLI) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <graph> <node>",
		Aliases: []string{"rm"},
		Short:   "Delete a node and its edges",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.mutate(cmd, args[0], func(s *session) (string, error) {
				return s.remove(args[1])
			})
		},
	}
}

// retypeCommand changes a node's type.
func (c *CLI) retypeCommand() *cobra.Command {
	var pick bool

	cmd := &cobra.Command{
		Use:   "retype <graph> <node> [type...]",
		Short: "Change the type of a node",
		Long: `Change the type of a node. Nodes with a parent are locked. Edges to
children that the new type may not lead into are removed.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.mutate(cmd, args[0], func(s *session) (string, error) {
				var t *catalog.NodeType
				var err error
				if pick {
					n, nerr := s.node(args[1])
					if nerr != nil {
						return "", nerr
					}
					t, err = pickType(s.ws.Catalog, n.Type())
				} else {
					if len(args) < 3 {
						return "", rgerrors.New(rgerrors.ErrCodeInvalidInput, "a type name or --pick is required")
					}
					t, err = s.lookupType(strings.Join(args[2:], " "))
				}
				if err != nil {
					return "", err
				}
				return s.retype(args[1], t)
			})
		},
	}

	cmd.Flags().BoolVar(&pick, "pick", false, "choose the type interactively")
	return cmd
}

// moveCommand positions a node on the canvas.
func (c *CLI) moveCommand() *cobra.Command {
	var relative bool

	cmd := &cobra.Command{
		Use:   "move <graph> <node> <x> <y>",
		Short: "Move a node on the canvas",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parsePoint(args[2], args[3])
			if err != nil {
				return err
			}
			return c.mutate(cmd, args[0], func(s *session) (string, error) {
				return s.move(args[1], x, y, relative)
			})
		},
	}

	cmd.Flags().BoolVarP(&relative, "relative", "r", false, "offset the node instead of placing it")
	return cmd
}

// selectCommand previews what unlink and prune would touch.
func (c *CLI) selectCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "select <graph> [node...]",
		Short: "Preview a selection for unlink and prune",
		Long: `Preview a selection. Selection is not stored with the graph, so this
prints the nodes the same arguments select for unlink and prune, and the
edges between them.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.openSession(ctx, args[0])
			if err != nil {
				return err
			}
			defer s.close()

			if err := selectArgs(s, args[1:], all); err != nil {
				return err
			}
			for _, n := range s.g.Selected() {
				printDetail("%s", describe(n))
			}
			n := len(s.g.Selected())
			printInfo("%d %s selected, %d %s between them", n, plural(n, "node", "nodes"),
				s.internalEdges(), plural(s.internalEdges(), "edge", "edges"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "select every node")
	return cmd
}

// unlinkCommand removes the edges among a selection.
func (c *CLI) unlinkCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "unlink <graph> [node...]",
		Short: "Remove every edge between the given nodes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.mutate(cmd, args[0], func(s *session) (string, error) {
				if err := selectArgs(s, args[1:], all); err != nil {
					return "", err
				}
				return s.unlink(), nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "remove every edge in the graph")
	return cmd
}

// pruneCommand deletes a selection of nodes.
func (c *CLI) pruneCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "prune <graph> [node...]",
		Short: "Delete the given nodes, keeping the entrance",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.mutate(cmd, args[0], func(s *session) (string, error) {
				if err := selectArgs(s, args[1:], all); err != nil {
					return "", err
				}
				return s.prune(), nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "delete every node except the entrance")
	return cmd
}

// selectArgs applies a one-shot selection; refs and --all are exclusive.
func selectArgs(s *session, refs []string, all bool) error {
	switch {
	case all && len(refs) > 0:
		return rgerrors.New(rgerrors.ErrCodeInvalidInput, "--all cannot be combined with node arguments")
	case !all && len(refs) == 0:
		return rgerrors.New(rgerrors.ErrCodeInvalidInput, "no nodes given (use --all for every node)")
	}
	return s.selectNodes(refs, all)
}

func parsePoint(xs, ys string) (float64, float64, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return 0, 0, rgerrors.New(rgerrors.ErrCodeInvalidInput, "invalid x coordinate %q", xs)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return 0, 0, rgerrors.New(rgerrors.ErrCodeInvalidInput, "invalid y coordinate %q", ys)
	}
	return x, y, nil
}
