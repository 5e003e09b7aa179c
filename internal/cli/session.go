package cli

import (
	"context"
	"fmt"

	"github.com/matzehuels/roomgraph/internal/workspace"
	"github.com/matzehuels/roomgraph/pkg/catalog"
	"github.com/matzehuels/roomgraph/pkg/roomgraph"
)

// session is one stored graph opened for editing. Every verb returns the
// line to show the user; callers decide how to print it.
type session struct {
	ws    *workspace.Workspace
	name  string
	g     *roomgraph.Graph
	dirty bool
}

// openSession opens the workspace and loads the named graph. The caller
// must call close.
func (c *CLI) openSession(ctx context.Context, name string) (*session, error) {
	ws, _, err := c.openWorkspace(ctx)
	if err != nil {
		return nil, err
	}
	g, err := ws.Open(ctx, name)
	if err != nil {
		ws.Store.Close()
		return nil, err
	}
	return &session{ws: ws, name: name, g: g}, nil
}

// save writes the graph back when an edit changed it.
func (s *session) save(ctx context.Context) error {
	if !s.dirty {
		return nil
	}
	if err := s.ws.Save(ctx, s.name, s.g); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

func (s *session) close() error {
	return s.ws.Store.Close()
}

func (s *session) node(ref string) (*roomgraph.Node, error) {
	return workspace.ResolveNode(s.g, ref)
}

// lookupType resolves a type name; an empty name yields nil.
func (s *session) lookupType(name string) (*catalog.NodeType, error) {
	if name == "" {
		return nil, nil
	}
	return s.ws.LookupType(name)
}

// add creates a node at (x, y). A nil type takes the default gesture and
// creates an unassigned node, seeding the entrance first on an empty graph.
func (s *session) add(t *catalog.NodeType, x, y float64) (string, error) {
	var (
		n   *roomgraph.Node
		err error
	)
	if t == nil {
		n, err = s.g.CreateDefaultNode(x, y)
	} else {
		n, err = s.g.CreateNode(x, y, t)
	}
	if err != nil {
		return "", workspace.Translate(err)
	}
	s.dirty = true
	return fmt.Sprintf("Added %s %s at %s", n.Type().Name(), shortID(n.ID()), formatPoint(x, y)), nil
}

func (s *session) connect(parentRef, childRef string) (string, error) {
	parent, err := s.node(parentRef)
	if err != nil {
		return "", err
	}
	child, err := s.node(childRef)
	if err != nil {
		return "", err
	}
	if r := s.g.Check(parent.ID(), child.ID()); r != roomgraph.ReasonOK {
		return "", workspace.ConnectError(parent.ID(), child.ID(), r)
	}
	s.g.TryConnect(parent.ID(), child.ID())
	s.dirty = true
	return fmt.Sprintf("Connected %s -> %s", describe(parent), describe(child)), nil
}

func (s *session) disconnect(parentRef, childRef string) (string, error) {
	parent, err := s.node(parentRef)
	if err != nil {
		return "", err
	}
	child, err := s.node(childRef)
	if err != nil {
		return "", err
	}
	if !s.g.Disconnect(parent.ID(), child.ID()) {
		return fmt.Sprintf("No edge %s -> %s, nothing to do", describe(parent), describe(child)), nil
	}
	s.dirty = true
	return fmt.Sprintf("Disconnected %s -> %s", describe(parent), describe(child)), nil
}

func (s *session) remove(ref string) (string, error) {
	n, err := s.node(ref)
	if err != nil {
		return "", err
	}
	if err := workspace.DeleteNode(s.g, n); err != nil {
		return "", err
	}
	s.dirty = true
	return "Deleted " + describe(n), nil
}

func (s *session) retype(ref string, t *catalog.NodeType) (string, error) {
	n, err := s.node(ref)
	if err != nil {
		return "", err
	}
	old := n.Type().Name()
	severed, err := s.g.SetType(n.ID(), t)
	if err != nil {
		return "", workspace.Translate(err)
	}
	s.dirty = true
	msg := fmt.Sprintf("Changed %s from %s to %s", shortID(n.ID()), old, t.Name())
	if severed > 0 {
		msg += fmt.Sprintf(" (%d %s severed)", severed, plural(severed, "edge", "edges"))
	}
	return msg, nil
}

// move places a node at (x, y), or offsets it when relative is set.
func (s *session) move(ref string, x, y float64, relative bool) (string, error) {
	n, err := s.node(ref)
	if err != nil {
		return "", err
	}
	if relative {
		s.g.Move(n.ID(), x, y)
	} else {
		s.g.SetPosition(n.ID(), x, y)
	}
	s.dirty = true
	r := n.Rect()
	return fmt.Sprintf("Moved %s to %s", describe(n), formatPoint(r.X, r.Y)), nil
}

// selectNodes replaces the selection with refs, or with every node when
// all is set.
func (s *session) selectNodes(refs []string, all bool) error {
	if all {
		s.g.SelectAll()
		return nil
	}
	nodes := make([]*roomgraph.Node, 0, len(refs))
	for _, ref := range refs {
		n, err := s.node(ref)
		if err != nil {
			return err
		}
		nodes = append(nodes, n)
	}
	s.g.ClearSelection()
	for _, n := range nodes {
		s.g.SetSelected(n.ID(), true)
	}
	return nil
}

// internalEdges counts the edges with both endpoints selected.
func (s *session) internalEdges() int {
	count := 0
	for _, e := range s.g.Edges() {
		p, _ := s.g.Node(e.From)
		c, _ := s.g.Node(e.To)
		if p.Selected() && c.Selected() {
			count++
		}
	}
	return count
}

func (s *session) unlink() string {
	n := s.g.DeleteSelectedLinks()
	if n > 0 {
		s.dirty = true
	}
	return fmt.Sprintf("Removed %d %s", n, plural(n, "edge", "edges"))
}

func (s *session) prune() string {
	n := s.g.DeleteSelected()
	if n > 0 {
		s.dirty = true
	}
	return fmt.Sprintf("Deleted %d %s", n, plural(n, "node", "nodes"))
}

func describe(n *roomgraph.Node) string {
	return n.Type().Name() + " " + shortID(n.ID())
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
