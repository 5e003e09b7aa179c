// Package nodelink renders room graphs as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz: each
// node is a box styled by its kind, and each parent→child edge is an arrow.
// The layout is computed by Graphviz; canvas positions are shown only in
// detailed labels.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels include the full id, canvas rectangle and child count
//   - IDLength: length of the id prefix in short labels
//
// # Styling
//
// Entrances are green, boss rooms red, corridors small grey boxes, none
// nodes dashed and rooms white. Selected nodes get a bold outline.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
