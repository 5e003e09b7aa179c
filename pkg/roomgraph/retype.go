package roomgraph

import (
	"slices"

	"github.com/matzehuels/roomgraph/pkg/catalog"
	"github.com/matzehuels/roomgraph/pkg/observability"
)

// SetType changes the type of an unlocked node and returns the number of
// child edges it had to sever.
//
// Children are re-checked in order against the new type with the
// type-compatibility rules (corridor/room alternation and fan-out), counting
// only the children kept so far. Edges that fail are disconnected, so the
// graph satisfies its invariants as soon as SetType returns.
func (g *Graph) SetType(id string, t *catalog.NodeType) (int, error) {
	n, ok := g.index[id]
	if !ok {
		return 0, ErrUnknownNode
	}
	if !g.catalog.Contains(t) {
		return 0, ErrUnknownType
	}
	if n.Locked() {
		return 0, ErrLocked
	}
	if t.IsEntrance() {
		return 0, ErrEntranceType
	}

	from := n.typ
	n.typ = t
	if from == t {
		return 0, nil
	}

	severed := 0
	var kept []string
	for _, cid := range slices.Clone(n.children) {
		child, ok := g.index[cid]
		if !ok {
			kept = append(kept, cid)
			continue
		}
		if g.checkTypes(t, kept, child) == ReasonOK {
			kept = append(kept, cid)
			continue
		}
		n.removeChildID(cid)
		child.removeParentID(n.id)
		severed++
		observability.Graph().OnDisconnect(n.id, cid)
	}
	observability.Graph().OnRetype(id, from.Name(), t.Name(), severed)
	return severed, nil
}
