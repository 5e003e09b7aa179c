// Package roomgraph implements the dungeon topology graph: typed room nodes
// joined by parent→child edges, with the rules that keep the topology
// buildable by a procedural level generator.
//
// # Structure
//
// A [Graph] owns an ordered list of [Node] values and an id→node index
// derived from it. Each node has a [catalog.NodeType], a list of parent ids
// and a list of child ids. The graph is the only way to change adjacency:
// [Graph.TryConnect] is the only way to add an edge, and it runs the full
// validity predicate before touching either endpoint.
//
// # Invariants
//
// After every call into the graph:
//
//   - every node has at most one parent; entrance nodes have none
//   - at most one boss room has a parent
//   - no node is its own child
//   - a corridor has at most one child and never a corridor child
//   - a room's children are corridors, at most [DefaultMaxChildCorridors] of them
//   - no node has a none-typed or entrance-typed child
//
// A graph restored with [Graph.Load] is not repaired; [Audit] reports any
// violations the stored data carries.
//
// # Concurrency
//
// Graph is not safe for concurrent use. Every method runs to completion
// without suspension, so a caller that serialises access always observes a
// graph satisfying the invariants above.
//
// # Example
//
//	cat := catalog.Default()
//	g, _ := roomgraph.NewSeeded(cat)
//	entrance, _ := g.Entrance()
//	corridor, _ := cat.Lookup("Corridor")
//	c, _ := g.CreateNode(400, 200, corridor)
//	g.TryConnect(entrance.ID(), c.ID()) // true
package roomgraph
