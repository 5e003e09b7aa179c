package roomgraph

import (
	"fmt"

	"github.com/matzehuels/roomgraph/pkg/catalog"
)

// Reason says why an edge is rejected. Each non-OK reason is an independent
// necessary condition, so the order only decides which reason is reported
// when several apply.
type Reason int

const (
	// ReasonOK means the edge may be added.
	ReasonOK Reason = iota
	// ReasonUnknownNode: an endpoint is not in the graph.
	ReasonUnknownNode
	// ReasonSelfLoop: parent and child are the same node.
	ReasonSelfLoop
	// ReasonDuplicateEdge: the edge already exists.
	ReasonDuplicateEdge
	// ReasonReverseEdge: the child is already the parent's parent.
	ReasonReverseEdge
	// ReasonChildHasParent: the child already has a parent.
	ReasonChildHasParent
	// ReasonChildIsEntrance: the entrance can never be a child.
	ReasonChildIsEntrance
	// ReasonChildIsNone: a placeholder node can never be connected.
	ReasonChildIsNone
	// ReasonBossRoomConnected: another boss room is already connected.
	ReasonBossRoomConnected
	// ReasonCorridorToCorridor: corridors cannot lead into corridors.
	ReasonCorridorToCorridor
	// ReasonRoomToRoom: two rooms must be separated by a corridor.
	ReasonRoomToRoom
	// ReasonCorridorFanOut: the parent already leads into the maximum number
	// of corridors.
	ReasonCorridorFanOut
	// ReasonParentHasChild: a room child needs a parent with no children yet.
	ReasonParentHasChild
)

var reasonText = map[Reason]string{
	ReasonOK:                 "ok",
	ReasonUnknownNode:        "unknown node",
	ReasonSelfLoop:           "node cannot be its own child",
	ReasonDuplicateEdge:      "edge already exists",
	ReasonReverseEdge:        "child is already the parent's parent",
	ReasonChildHasParent:     "child already has a parent",
	ReasonChildIsEntrance:    "entrance cannot be a child",
	ReasonChildIsNone:        "unassigned node cannot be connected",
	ReasonBossRoomConnected:  "a boss room is already connected",
	ReasonCorridorToCorridor: "corridor cannot lead into a corridor",
	ReasonRoomToRoom:         "rooms must be separated by a corridor",
	ReasonCorridorFanOut:     "room already leads into the maximum number of corridors",
	ReasonParentHasChild:     "corridor already leads into a room",
}

func (r Reason) String() string {
	if s, ok := reasonText[r]; ok {
		return s
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// Check evaluates the edge parentID→childID against the current graph
// without changing anything.
func (g *Graph) Check(parentID, childID string) Reason {
	parent, ok := g.index[parentID]
	if !ok {
		return ReasonUnknownNode
	}
	child, ok := g.index[childID]
	if !ok {
		return ReasonUnknownNode
	}
	return g.check(parent, child)
}

// CanConnect reports whether parent→child would be accepted.
func (g *Graph) CanConnect(parent, child *Node) bool {
	if parent == nil || child == nil {
		return false
	}
	return g.check(parent, child) == ReasonOK
}

func (g *Graph) check(parent, child *Node) Reason {
	pt, ct := parent.typ, child.typ
	switch {
	case parent.id == child.id:
		return ReasonSelfLoop
	case parent.HasChild(child.id):
		return ReasonDuplicateEdge
	case parent.HasParentID(child.id):
		return ReasonReverseEdge
	case len(child.parents) > 0:
		return ReasonChildHasParent
	case ct.IsEntrance():
		return ReasonChildIsEntrance
	case ct.IsNone():
		return ReasonChildIsNone
	case ct.IsBossRoom() && g.connectedBossRoom(child) != nil:
		return ReasonBossRoomConnected
	}
	return g.checkTypes(pt, parent.children, child)
}

// checkTypes holds the conditions that depend on the parent's type and its
// current children. Re-typing reuses it to decide which edges survive.
func (g *Graph) checkTypes(pt *catalog.NodeType, children []string, child *Node) Reason {
	ct := child.typ
	switch {
	case ct.IsCorridor() && pt.IsCorridor():
		return ReasonCorridorToCorridor
	case !ct.IsCorridor() && !pt.IsCorridor():
		return ReasonRoomToRoom
	case ct.IsCorridor() && g.corridorCount(children) >= g.maxChildCorridors:
		return ReasonCorridorFanOut
	case !ct.IsCorridor() && len(children) > 0:
		return ReasonParentHasChild
	}
	return ReasonOK
}

// connectedBossRoom returns a boss room other than except that has a parent.
func (g *Graph) connectedBossRoom(except *Node) *Node {
	for _, n := range g.nodes {
		if n != except && n.typ.IsBossRoom() && len(n.parents) > 0 {
			return n
		}
	}
	return nil
}

func (g *Graph) corridorCount(ids []string) int {
	count := 0
	for _, id := range ids {
		if n, ok := g.index[id]; ok && n.typ.IsCorridor() {
			count++
		}
	}
	return count
}
