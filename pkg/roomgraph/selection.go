package roomgraph

import (
	"slices"

	"github.com/matzehuels/roomgraph/pkg/observability"
)

// SetPosition moves a node's canvas rectangle to (x, y). It reports false
// for unknown ids.
func (g *Graph) SetPosition(id string, x, y float64) bool {
	n, ok := g.index[id]
	if !ok {
		return false
	}
	n.rect.X, n.rect.Y = x, y
	return true
}

// Move offsets a node's canvas rectangle by (dx, dy), as a drag does.
func (g *Graph) Move(id string, dx, dy float64) bool {
	n, ok := g.index[id]
	if !ok {
		return false
	}
	n.rect.X += dx
	n.rect.Y += dy
	return true
}

// SetSelected sets a node's selection state.
func (g *Graph) SetSelected(id string, selected bool) bool {
	n, ok := g.index[id]
	if !ok {
		return false
	}
	n.selected = selected
	return true
}

// SelectAll selects every node.
func (g *Graph) SelectAll() {
	for _, n := range g.nodes {
		n.selected = true
	}
}

// ClearSelection deselects every node.
func (g *Graph) ClearSelection() {
	for _, n := range g.nodes {
		n.selected = false
	}
}

// Selected returns the selected nodes in insertion order.
func (g *Graph) Selected() []*Node {
	var out []*Node
	for _, n := range g.nodes {
		if n.selected {
			out = append(out, n)
		}
	}
	return out
}

// DeleteSelected deletes every selected node except the entrance and
// returns how many were deleted.
//
// All doomed nodes are unlinked from their neighbours against the live
// adjacency lists before any of them is removed, so edges to unselected
// nodes disappear with their endpoint and nothing else changes.
func (g *Graph) DeleteSelected() int {
	var doomed []*Node
	for _, n := range g.nodes {
		if n.selected && !n.typ.IsEntrance() {
			doomed = append(doomed, n)
		}
	}
	for _, n := range doomed {
		g.unlink(n)
	}
	for _, n := range doomed {
		g.remove(n)
		observability.Graph().OnNodeDeleted(n.id)
	}
	return len(doomed)
}

// DeleteSelectedLinks removes exactly the edges whose endpoints are both
// selected, then clears the selection. It returns the number of edges
// removed.
func (g *Graph) DeleteSelectedLinks() int {
	removed := 0
	for _, n := range g.nodes {
		if !n.selected {
			continue
		}
		children := slices.Clone(n.children)
		for i := len(children) - 1; i >= 0; i-- {
			child, ok := g.index[children[i]]
			if ok && child.selected && g.Disconnect(n.id, child.id) {
				removed++
			}
		}
	}
	g.ClearSelection()
	return removed
}
