package roomgraph

import (
	"fmt"
	"slices"
)

// NodeState is the persisted form of a node. Types are referenced by name;
// the id index and selection state are not persisted.
type NodeState struct {
	ID       string
	Type     string
	Parents  []string
	Children []string
	Rect     Rect
}

// Snapshot returns the persisted form of every node in insertion order.
func (g *Graph) Snapshot() []NodeState {
	out := make([]NodeState, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = NodeState{
			ID:       n.id,
			Type:     n.typ.Name(),
			Parents:  slices.Clone(n.parents),
			Children: slices.Clone(n.children),
			Rect:     n.rect,
		}
	}
	return out
}

// Load replaces the graph's nodes with states and rebuilds the index.
//
// Every state needs an id and a type name known to the catalog; otherwise
// Load returns an error and leaves the graph unchanged. Adjacency is taken
// as stored: Load does not repair invariant violations, use [Audit] to find
// them.
func (g *Graph) Load(states []NodeState) error {
	nodes := make([]*Node, 0, len(states))
	for i, s := range states {
		if s.ID == "" {
			return fmt.Errorf("node %d: %w", i, ErrInvalidNodeID)
		}
		t, ok := g.catalog.Lookup(s.Type)
		if !ok {
			return fmt.Errorf("node %s: type %q: %w", s.ID, s.Type, ErrUnknownType)
		}
		rect := s.Rect
		if rect.Width == 0 && rect.Height == 0 {
			rect.Width, rect.Height = NodeWidth, NodeHeight
		}
		nodes = append(nodes, &Node{
			id:       s.ID,
			typ:      t,
			parents:  slices.Clone(s.Parents),
			children: slices.Clone(s.Children),
			rect:     rect,
		})
	}
	g.nodes = nodes
	g.RebuildIndex()
	return nil
}
