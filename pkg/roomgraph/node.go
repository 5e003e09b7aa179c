package roomgraph

import (
	"slices"

	"github.com/matzehuels/roomgraph/pkg/catalog"
)

// Default node size in editor units.
const (
	NodeWidth  = 120
	NodeHeight = 60
)

// Rect is a node's position and size on the editor canvas. It has no
// structural meaning.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Node is one room or corridor in a [Graph]. Nodes are created and destroyed
// only by their graph; the exported methods are read-only.
type Node struct {
	id       string
	typ      *catalog.NodeType
	parents  []string
	children []string
	rect     Rect
	selected bool
}

// ID returns the node's immutable identifier.
func (n *Node) ID() string { return n.id }

// Type returns the node's type.
func (n *Node) Type() *catalog.NodeType { return n.typ }

// ParentIDs returns a copy of the node's parent ids in insertion order.
func (n *Node) ParentIDs() []string { return slices.Clone(n.parents) }

// ChildIDs returns a copy of the node's child ids in insertion order.
func (n *Node) ChildIDs() []string { return slices.Clone(n.children) }

// HasParent reports whether the node is connected below another node.
func (n *Node) HasParent() bool { return len(n.parents) > 0 }

// HasChild reports whether id is one of the node's children.
func (n *Node) HasChild(id string) bool { return slices.Contains(n.children, id) }

// HasParentID reports whether id is one of the node's parents.
func (n *Node) HasParentID(id string) bool { return slices.Contains(n.parents, id) }

// Rect returns the node's canvas rectangle.
func (n *Node) Rect() Rect { return n.rect }

// Selected reports the node's editor selection state.
func (n *Node) Selected() bool { return n.selected }

// Locked reports whether the node's type may no longer be changed: it is
// already connected below a parent, or it is the entrance.
func (n *Node) Locked() bool {
	return len(n.parents) > 0 || n.typ.IsEntrance()
}

// The list operations below are unchecked; the graph validates an edge once
// before calling any of them.

func (n *Node) addChildID(id string) {
	if !slices.Contains(n.children, id) {
		n.children = append(n.children, id)
	}
}

func (n *Node) removeChildID(id string) bool {
	i := slices.Index(n.children, id)
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	return true
}

func (n *Node) addParentID(id string) {
	if !slices.Contains(n.parents, id) {
		n.parents = append(n.parents, id)
	}
}

func (n *Node) removeParentID(id string) bool {
	i := slices.Index(n.parents, id)
	if i < 0 {
		return false
	}
	n.parents = slices.Delete(n.parents, i, i+1)
	return true
}
