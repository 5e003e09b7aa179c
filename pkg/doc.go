// Package pkg provides the core libraries for roomgraph, an editor core for
// dungeon level topologies.
//
// # Overview
//
// A level is a graph of typed nodes (an entrance, rooms, corridors, a boss
// room) joined by directed parent→child edges. Every edit goes through a
// validity predicate, so a graph built with the editor always satisfies the
// rules a procedural level builder relies on: one parent per node, rooms and
// corridors alternate, at most one connected boss room. The pkg directory
// is organized into four main areas:
//
//  1. [roomgraph] and [catalog] - Domain logic (node types, the graph, its rules)
//  2. [io] and [render/nodelink] - Serialization and visualization
//  3. [store] and [cache] - Persistence and render caching
//  4. [errors], [observability] and [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	catalog file (.toml / .hcl)
//	         ↓
//	    [catalog] package (node types and their flags)
//	         ↓
//	    [roomgraph] package (validated edits, audit)
//	         ↓
//	    [io] package (versioned JSON document)
//	         ↓
//	    [store] backends / [render/nodelink] SVG
//
// # Quick Start
//
// Build a small level and check an edge before adding it:
//
//	import (
//	    "github.com/matzehuels/roomgraph/pkg/catalog"
//	    "github.com/matzehuels/roomgraph/pkg/roomgraph"
//	)
//
//	g, _ := roomgraph.NewSeeded(catalog.Default())
//	entrance, _ := g.Entrance()
//	corridor, _ := catalog.Default().Lookup("Corridor")
//	c, _ := g.CreateNode(120, 40, corridor)
//	if r := g.Check(entrance.ID(), c.ID()); r != roomgraph.ReasonOK {
//	    fmt.Println("refused:", r)
//	}
//	g.TryConnect(entrance.ID(), c.ID())
//
// # Main Packages
//
// [catalog] - Node type registry. Types carry the flags the rules read
// (corridor, entrance, boss room, none). Catalogs load from TOML or HCL.
//
// [roomgraph] - The graph: node creation, the edge validity predicate,
// re-typing with edge severing, selection and batch deletes, and an audit
// for graphs loaded from elsewhere.
//
// [io] - Versioned JSON document format for graphs.
//
// [render/nodelink] - Node-link diagrams through Graphviz, styled by node kind.
//
// [store] - Named graph persistence with memory, file, Redis, MongoDB and
// SQLite backends sharing one interface and one conformance suite.
//
// [cache] - File-based cache for rendered SVGs.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/roomgraph/...          # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// The Redis and MongoDB stores run their integration tests only when
// ROOMGRAPH_REDIS_ADDR or ROOMGRAPH_MONGO_URI is set.
//
// [roomgraph]: https://pkg.go.dev/github.com/matzehuels/roomgraph/pkg/roomgraph
// [catalog]: https://pkg.go.dev/github.com/matzehuels/roomgraph/pkg/catalog
// [io]: https://pkg.go.dev/github.com/matzehuels/roomgraph/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/roomgraph/pkg/render/nodelink
// [store]: https://pkg.go.dev/github.com/matzehuels/roomgraph/pkg/store
// [cache]: https://pkg.go.dev/github.com/matzehuels/roomgraph/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/roomgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/roomgraph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/roomgraph/pkg/buildinfo
package pkg
