package cli

import (
	"context"
	"os"
	"slices"
	"testing"

	"github.com/spf13/cobra"
)

func TestNodeCompletions(t *testing.T) {
	s := newTestSession(t)
	mustDo(t)(s.add(mustLookup(t, s, "Corridor"), 0, 0)) // n2

	tests := []struct {
		prefix string
		want   []string
	}{
		{"", []string{"n1\tEntrance", "n2\tCorridor"}},
		{"n2", []string{"n2\tCorridor"}},
		{"x", nil},
	}
	for _, tt := range tests {
		if got := nodeCompletions(s.g, tt.prefix); !slices.Equal(got, tt.want) {
			t.Errorf("nodeCompletions(%q) = %q, want %q", tt.prefix, got, tt.want)
		}
	}
}

func TestRegisterCompletions(t *testing.T) {
	root := New(os.Stderr, LogInfo).RootCommand()

	for _, cmd := range root.Commands() {
		_, want := graphArgs[cmd.Name()]
		if got := cmd.ValidArgsFunction != nil; got != want {
			t.Errorf("%s: has completion = %v, want %v", cmd.Name(), got, want)
		}
	}
}

func TestCompleteGraphArgs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ctx := context.Background()

	c := New(os.Stderr, LogInfo)
	c.overrides.Store.Backend = backendFile
	c.overrides.Store.Dir = t.TempDir()

	ws, _, err := c.openWorkspace(ctx)
	if err != nil {
		t.Fatalf("openWorkspace() error: %v", err)
	}
	for _, name := range []string{"level1", "level2", "crypt"} {
		if _, err := ws.Create(ctx, name); err != nil {
			t.Fatalf("Create(%s) error: %v", name, err)
		}
	}
	ws.Store.Close()

	cmd := &cobra.Command{}
	cmd.SetContext(ctx)
	complete := c.completeGraphArgs(1)

	got, dir := complete(cmd, nil, "lev")
	if !slices.Equal(got, []string{"level1", "level2"}) || dir != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("complete graph = %q, %v", got, dir)
	}

	got, _ = complete(cmd, []string{"crypt"}, "")
	if len(got) != 1 {
		t.Errorf("complete node = %q, want the entrance only", got)
	}

	got, _ = complete(cmd, []string{"crypt", "x"}, "")
	if got != nil {
		t.Errorf("complete past node args = %q, want none", got)
	}
}
