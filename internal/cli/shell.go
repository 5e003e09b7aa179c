package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	rgerrors "github.com/matzehuels/roomgraph/pkg/errors"
	"github.com/matzehuels/roomgraph/pkg/roomgraph"
)

const shellHelp = `Commands:
  add <x> <y> [type...]       add a node (no type: default gesture)
  connect <parent> <child>    connect two nodes
  disconnect <parent> <child> remove an edge
  delete <node>               delete a node and its edges
  retype <node> <type...>     change a node's type
  move <node> <x> <y>         place a node on the canvas
  select <node...>|all|none   set the selection
  unlink                      remove edges between selected nodes
  prune                       delete selected nodes except the entrance
  show                        list nodes
  validate                    audit the graph
  types                       list node types
  save                        write the graph to the store
  help                        show this help
  exit                        leave the shell`

// editCommand opens an interactive shell over one graph.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <graph>",
		Short: "Edit a graph in an interactive shell",
		Long: `Edit a graph in an interactive shell. Edits stay in memory until save,
and the selection persists between commands so unlink and prune act on it.
Arguments containing spaces can be quoted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.openSession(ctx, args[0])
			if err != nil {
				return err
			}
			defer s.close()
			return runShell(ctx, s)
		},
	}
}

// shell executes edit commands against one session.
type shell struct {
	s      *session
	out    io.Writer
	warned bool // an exit with unsaved changes was refused once
}

func runShell(ctx context.Context, s *session) error {
	cfg := &readline.Config{
		Prompt:          prompt(s.name),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    shellCompleter(),
	}
	if dir, err := cacheDir(); err == nil {
		cfg.HistoryFile = filepath.Join(dir, "shell_history")
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return err
	}
	defer rl.Close()

	sh := &shell{s: s, out: rl.Stdout()}
	fmt.Fprintln(sh.out, StyleDim.Render("Editing "+s.name+". Type help for commands."))
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			fmt.Fprintln(sh.out, StyleDim.Render("Use exit to leave the shell."))
			continue
		}
		if errors.Is(err, io.EOF) {
			return sh.s.save(ctx)
		}
		if err != nil {
			return err
		}
		quit, err := sh.exec(ctx, splitLine(line))
		if err != nil {
			sh.fail(err)
		}
		if quit {
			return nil
		}
	}
}

func prompt(name string) string {
	return StyleHighlight.Render(name) + "> "
}

func shellCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("add"),
		readline.PcItem("connect"),
		readline.PcItem("disconnect"),
		readline.PcItem("delete"),
		readline.PcItem("retype"),
		readline.PcItem("move"),
		readline.PcItem("select", readline.PcItem("all"), readline.PcItem("none")),
		readline.PcItem("unlink"),
		readline.PcItem("prune"),
		readline.PcItem("show"),
		readline.PcItem("validate"),
		readline.PcItem("types"),
		readline.PcItem("save"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
}

// exec runs one command line and reports whether the shell should exit.
func (sh *shell) exec(ctx context.Context, args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}
	verb, args := strings.ToLower(args[0]), args[1:]
	if verb != "exit" && verb != "quit" {
		sh.warned = false
	}

	switch verb {
	case "add":
		if len(args) < 2 {
			return false, usage("add <x> <y> [type...]")
		}
		x, y, err := parsePoint(args[0], args[1])
		if err != nil {
			return false, err
		}
		t, err := sh.s.lookupType(strings.Join(args[2:], " "))
		if err != nil {
			return false, err
		}
		return false, sh.report(sh.s.add(t, x, y))
	case "connect", "disconnect":
		if len(args) != 2 {
			return false, usage(verb + " <parent> <child>")
		}
		if verb == "connect" {
			return false, sh.report(sh.s.connect(args[0], args[1]))
		}
		return false, sh.report(sh.s.disconnect(args[0], args[1]))
	case "delete", "rm":
		if len(args) != 1 {
			return false, usage("delete <node>")
		}
		return false, sh.report(sh.s.remove(args[0]))
	case "retype":
		if len(args) < 2 {
			return false, usage("retype <node> <type...>")
		}
		t, err := sh.s.lookupType(strings.Join(args[1:], " "))
		if err != nil {
			return false, err
		}
		return false, sh.report(sh.s.retype(args[0], t))
	case "move":
		if len(args) != 3 {
			return false, usage("move <node> <x> <y>")
		}
		x, y, err := parsePoint(args[1], args[2])
		if err != nil {
			return false, err
		}
		return false, sh.report(sh.s.move(args[0], x, y, false))
	case "select":
		return false, sh.selectCmd(args)
	case "unlink":
		return false, sh.report(sh.s.unlink(), nil)
	case "prune":
		return false, sh.report(sh.s.prune(), nil)
	case "show":
		printNodes(sh.out, sh.s.g)
		return false, nil
	case "validate":
		vs := roomgraph.Audit(sh.s.g)
		printViolations(sh.out, vs)
		if len(vs) == 0 {
			sh.success("graph is valid")
		}
		return false, nil
	case "types":
		printTypes(sh.out, sh.s.ws.Catalog)
		return false, nil
	case "save":
		dirty := sh.s.dirty
		if err := sh.s.save(ctx); err != nil {
			return false, err
		}
		if dirty {
			sh.success("Saved " + sh.s.name)
		} else {
			sh.success("No changes")
		}
		return false, nil
	case "help", "?":
		fmt.Fprintln(sh.out, shellHelp)
		return false, nil
	case "exit", "quit":
		if sh.s.dirty && !sh.warned {
			sh.warned = true
			fmt.Fprintln(sh.out, styleIconWarning.Render(iconWarning)+" "+
				StyleWarning.Render("unsaved changes; run save, or exit again to discard them"))
			return false, nil
		}
		return true, nil
	}
	return false, rgerrors.New(rgerrors.ErrCodeInvalidInput, "unknown command %q (type help)", verb)
}

func (sh *shell) selectCmd(args []string) error {
	switch {
	case len(args) == 1 && args[0] == "all":
		sh.s.g.SelectAll()
	case len(args) == 1 && args[0] == "none":
		sh.s.g.ClearSelection()
	case len(args) == 0:
		return usage("select <node...>|all|none")
	default:
		if err := sh.s.selectNodes(args, false); err != nil {
			return err
		}
	}
	n := len(sh.s.g.Selected())
	sh.success(fmt.Sprintf("%d %s selected", n, plural(n, "node", "nodes")))
	return nil
}

func (sh *shell) report(msg string, err error) error {
	if err != nil {
		return err
	}
	sh.success(msg)
	return nil
}

func (sh *shell) success(msg string) {
	fmt.Fprintln(sh.out, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

func (sh *shell) fail(err error) {
	fmt.Fprintln(sh.out, styleIconError.Render(iconError)+" "+rgerrors.UserMessage(err))
}

func usage(form string) error {
	return rgerrors.New(rgerrors.ErrCodeInvalidInput, "usage: %s", form)
}

// splitLine splits a shell line on spaces. Double quotes group words.
func splitLine(line string) []string {
	var (
		args     []string
		cur      strings.Builder
		inQuotes bool
		quoted   bool // cur holds a quoted, possibly empty, argument
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			quoted = true
		case (r == ' ' || r == '\t') && !inQuotes:
			if cur.Len() > 0 || quoted {
				args = append(args, cur.String())
				cur.Reset()
				quoted = false
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 || quoted {
		args = append(args, cur.String())
	}
	return args
}
