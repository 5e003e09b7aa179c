package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgraph/pkg/roomgraph"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for roomgraph. Graph names complete
from the configured store and node arguments complete from the graph's ids.

  $ source <(roomgraph completion bash)
  $ roomgraph completion zsh > "${fpath[1]}/_roomgraph"
  $ roomgraph completion fish | source
  PS> roomgraph completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// graphArgs lists commands whose first argument is a stored graph, with the
// number of node arguments that follow it (-1 for any number).
var graphArgs = map[string]int{
	"show":       0,
	"validate":   0,
	"export":     0,
	"render":     0,
	"edit":       0,
	"add":        0,
	"connect":    2,
	"disconnect": 2,
	"delete":     1,
	"retype":     1,
	"move":       1,
	"select":     -1,
	"unlink":     -1,
	"prune":      -1,
}

// registerCompletions attaches graph and node completion to root's commands.
func (c *CLI) registerCompletions(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		if n, ok := graphArgs[cmd.Name()]; ok {
			cmd.ValidArgsFunction = c.completeGraphArgs(n)
		}
	}
}

// completeGraphArgs completes a graph name, then up to nodeArgs node ids of
// that graph.
func (c *CLI) completeGraphArgs(nodeArgs int) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		ctx := cmd.Context()
		if len(args) == 0 {
			ws, _, err := c.openWorkspace(ctx)
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			defer ws.Store.Close()
			names, err := ws.List(ctx)
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			return filterPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
		}

		if nodeArgs >= 0 && len(args) > nodeArgs {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		s, err := c.openSession(ctx, args[0])
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		defer s.close()
		return nodeCompletions(s.g, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// nodeCompletions returns "id\ttype" entries for the nodes whose id starts
// with prefix.
func nodeCompletions(g *roomgraph.Graph, prefix string) []string {
	var out []string
	for _, n := range g.Nodes() {
		if strings.HasPrefix(n.ID(), prefix) {
			out = append(out, n.ID()+"\t"+n.Type().Name())
		}
	}
	return out
}

func filterPrefix(names []string, prefix string) []string {
	var out []string
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}
