package roomgraph

import (
	"errors"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/roomgraph/pkg/catalog"
	"github.com/matzehuels/roomgraph/pkg/observability"
)

// DefaultMaxChildCorridors is the number of corridors a room may lead into.
// Three is the practical ceiling: with more, the level builder rarely finds
// room templates whose doorways fit together.
const DefaultMaxChildCorridors = 3

// Position of the entrance created by [NewSeeded] and [Graph.CreateDefaultNode].
const (
	EntranceX = 200
	EntranceY = 200
)

var (
	// ErrUnknownNode is returned when an operation that must report failure
	// names a node id the graph does not hold.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownType is returned when a node type does not belong to the
	// graph's catalog.
	ErrUnknownType = errors.New("node type not in catalog")

	// ErrLocked is returned by [Graph.SetType] for a node that already has a
	// parent or is the entrance.
	ErrLocked = errors.New("node type is locked")

	// ErrEntranceType is returned by [Graph.SetType] when the new type is an
	// entrance; a graph has exactly one entrance, created with the graph.
	ErrEntranceType = errors.New("cannot change a node into an entrance")

	// ErrInvalidNodeID is returned by [Graph.Load] for a node without an id.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.CreateNode] when the id
	// generator produces an id already in use.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrNoEntranceType is returned when the catalog has no entrance type.
	ErrNoEntranceType = errors.New("catalog has no entrance type")

	// ErrNoNoneType is returned when the catalog has no placeholder type.
	ErrNoNoneType = errors.New("catalog has no none type")
)

// Edge is a parent→child connection.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Option configures a [Graph].
type Option func(*Graph)

// WithMaxChildCorridors sets the corridor fan-out limit for rooms.
// Values below 1 are ignored.
func WithMaxChildCorridors(n int) Option {
	return func(g *Graph) {
		if n > 0 {
			g.maxChildCorridors = n
		}
	}
}

// WithIDGenerator replaces the UUID generator used for new node ids.
func WithIDGenerator(fn func() string) Option {
	return func(g *Graph) {
		if fn != nil {
			g.newID = fn
		}
	}
}

// Graph is a room node graph bound to one node-type catalog.
//
// The zero value is not usable; create graphs with [New] or [NewSeeded].
// Graph is not safe for concurrent use.
type Graph struct {
	catalog           *catalog.Catalog
	nodes             []*Node
	index             map[string]*Node
	maxChildCorridors int
	newID             func() string
}

// New creates an empty graph authored against cat.
func New(cat *catalog.Catalog, opts ...Option) *Graph {
	g := &Graph{
		catalog:           cat,
		index:             make(map[string]*Node),
		maxChildCorridors: DefaultMaxChildCorridors,
		newID:             uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewSeeded creates a graph that already holds its entrance node.
func NewSeeded(cat *catalog.Catalog, opts ...Option) (*Graph, error) {
	g := New(cat, opts...)
	if _, err := g.seedEntrance(); err != nil {
		return nil, err
	}
	return g, nil
}

// Catalog returns the catalog the graph was created with.
func (g *Graph) Catalog() *catalog.Catalog { return g.catalog }

// MaxChildCorridors returns the corridor fan-out limit for rooms.
func (g *Graph) MaxChildCorridors() int { return g.maxChildCorridors }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Nodes returns all nodes in insertion order. The slice is a copy; the
// nodes are shared.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Node returns the node with the given id. It never panics; unknown ids
// report false.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.index[id]
	return n, ok
}

// Entrance returns the first entrance-typed node.
func (g *Graph) Entrance() (*Node, bool) {
	for _, n := range g.nodes {
		if n.typ.IsEntrance() {
			return n, true
		}
	}
	return nil, false
}

// Edges returns every parent→child edge, ordered by parent insertion order
// and then by child order.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, n := range g.nodes {
		for _, c := range n.children {
			edges = append(edges, Edge{From: n.id, To: c})
		}
	}
	return edges
}

// EdgeCount returns the number of parent→child edges.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, n := range g.nodes {
		count += len(n.children)
	}
	return count
}

// CreateNode adds an unconnected node of type t at (x, y) with the default
// size. The only check is that t belongs to the graph's catalog.
func (g *Graph) CreateNode(x, y float64, t *catalog.NodeType) (*Node, error) {
	if !g.catalog.Contains(t) {
		return nil, ErrUnknownType
	}
	id := g.newID()
	if id == "" {
		return nil, ErrInvalidNodeID
	}
	if _, exists := g.index[id]; exists {
		return nil, ErrDuplicateNodeID
	}
	n := &Node{
		id:   id,
		typ:  t,
		rect: Rect{X: x, Y: y, Width: NodeWidth, Height: NodeHeight},
	}
	g.nodes = append(g.nodes, n)
	g.index[id] = n
	observability.Graph().OnNodeCreated(id, t.Name())
	return n, nil
}

// CreateDefaultNode performs the editor's "create room node" gesture: on an
// empty graph it first creates the entrance at (EntranceX, EntranceY), then
// it creates a none-typed placeholder at (x, y) and returns it.
func (g *Graph) CreateDefaultNode(x, y float64) (*Node, error) {
	none, ok := g.catalog.None()
	if !ok {
		return nil, ErrNoNoneType
	}
	if len(g.nodes) == 0 {
		if _, err := g.seedEntrance(); err != nil {
			return nil, err
		}
	}
	return g.CreateNode(x, y, none)
}

func (g *Graph) seedEntrance() (*Node, error) {
	t, ok := g.catalog.Entrance()
	if !ok {
		return nil, ErrNoEntranceType
	}
	return g.CreateNode(EntranceX, EntranceY, t)
}

// TryConnect adds the edge parentID→childID if [Graph.Check] accepts it and
// reports whether it did. A rejected edge leaves the graph unchanged.
func (g *Graph) TryConnect(parentID, childID string) bool {
	reason := g.Check(parentID, childID)
	if reason != ReasonOK {
		observability.Graph().OnConnect(parentID, childID, false, reason.String())
		return false
	}
	parent, child := g.index[parentID], g.index[childID]
	parent.addChildID(childID)
	child.addParentID(parentID)
	observability.Graph().OnConnect(parentID, childID, true, "")
	return true
}

// Disconnect removes the edge parentID→childID in both directions and
// reports whether anything was removed. Missing edges and unknown ids are
// no-ops, so calling it twice is the same as calling it once.
func (g *Graph) Disconnect(parentID, childID string) bool {
	removed := false
	if parent, ok := g.index[parentID]; ok {
		removed = parent.removeChildID(childID) || removed
	}
	if child, ok := g.index[childID]; ok {
		removed = child.removeParentID(parentID) || removed
	}
	if removed {
		observability.Graph().OnDisconnect(parentID, childID)
	}
	return removed
}

// DeleteNode detaches the node from every parent and child and removes it.
// It reports whether a node was removed; unknown ids are a no-op.
//
// The graph does not protect the entrance; callers that must keep it
// check [catalog.NodeType.IsEntrance] first.
func (g *Graph) DeleteNode(id string) bool {
	n, ok := g.index[id]
	if !ok {
		return false
	}
	g.unlink(n)
	g.remove(n)
	observability.Graph().OnNodeDeleted(id)
	return true
}

// unlink removes every edge touching n, in both directions.
func (g *Graph) unlink(n *Node) {
	for _, pid := range n.parents {
		if p, ok := g.index[pid]; ok {
			p.removeChildID(n.id)
		}
	}
	for _, cid := range n.children {
		if c, ok := g.index[cid]; ok {
			c.removeParentID(n.id)
		}
	}
	n.parents = nil
	n.children = nil
}

// remove drops n from the node list and the index.
func (g *Graph) remove(n *Node) {
	g.nodes = slices.DeleteFunc(g.nodes, func(m *Node) bool { return m == n })
	delete(g.index, n.id)
	// A malformed load may have stored the id twice; keep the survivor reachable.
	for _, m := range g.nodes {
		if m.id == n.id {
			g.index[m.id] = m
		}
	}
}

// RebuildIndex recomputes the id index from the node list. It is called
// after loading and tolerates malformed data: with duplicate ids the last
// node wins.
func (g *Graph) RebuildIndex() {
	g.index = make(map[string]*Node, len(g.nodes))
	for _, n := range g.nodes {
		g.index[n.id] = n
	}
}
