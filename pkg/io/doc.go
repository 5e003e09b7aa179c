// Package io provides JSON import and export for room graphs.
//
// # JSON Format
//
// A document carries a format version and the node list in insertion
// order. Adjacency is stored on both endpoints, exactly as the graph keeps
// it:
//
//	{
//	  "version": 1,
//	  "nodes": [
//	    {"id": "e", "type": "Entrance", "children": ["c"],
//	     "rect": {"x": 200, "y": 200, "width": 120, "height": 60}},
//	    {"id": "c", "type": "Corridor", "parents": ["e"],
//	     "rect": {"x": 400, "y": 200, "width": 120, "height": 60}}
//	  ]
//	}
//
// # Node Fields
//
// Required:
//   - id: Unique string identifier
//   - type: Name of a node type in the catalog the document is read with
//
// Optional:
//   - parents, children: Neighbour ids (omitted when empty)
//   - rect: Canvas rectangle; a missing size gets the default node size
//
// Selection is presentation state and is never written.
//
// # Import
//
// Use [ImportJSON] to read a graph from a file path, [ReadJSON] to read
// from any io.Reader, or [Unmarshal] for a byte slice:
//
//	g, err := io.ImportJSON("level1.json", catalog.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Type names are resolved through the catalog. The topology is taken as
// stored; run [roomgraph.Audit] on the result to find invariant violations
// in hand-edited files.
//
// # Export
//
// Use [ExportJSON] to write a graph to a file, [WriteJSON] to write to any
// io.Writer, or [Marshal] for a byte slice. Export then import yields a
// graph with the same nodes, types, adjacency and positions.
//
// [roomgraph.Audit]: github.com/matzehuels/roomgraph/pkg/roomgraph.Audit
package io
