package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/roomgraph/pkg/catalog"
	"github.com/matzehuels/roomgraph/pkg/roomgraph"
)

// DefaultIDLength is the id prefix length shown in short labels.
const DefaultIDLength = 8

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the full id, canvas rectangle and child count in
	// node labels. When false, labels show the type and an id prefix.
	Detailed bool

	// IDLength is the id prefix length of short labels. Zero means
	// DefaultIDLength.
	IDLength int
}

// ToDOT converts a graph to Graphviz DOT format. Nodes appear in insertion
// order and edges in parent order, so the output is deterministic for a
// given graph and can be used as a cache key.
func ToDOT(g *roomgraph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=16, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		label := fmtLabel(n, opts)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *roomgraph.Node, opts Options) string {
	if !opts.Detailed {
		size := opts.IDLength
		if size <= 0 {
			size = DefaultIDLength
		}
		id := n.ID()
		if len(id) > size {
			id = id[:size]
		}
		return n.Type().Name() + "\n" + id
	}

	r := n.Rect()
	parts := []string{
		n.Type().Name(),
		n.ID(),
		fmt.Sprintf("at: %g,%g", r.X, r.Y),
		fmt.Sprintf("size: %gx%g", r.Width, r.Height),
		fmt.Sprintf("children: %d", len(n.ChildIDs())),
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n *roomgraph.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch n.Type().Kind() {
	case catalog.KindEntrance:
		attrs = append(attrs, "fillcolor=palegreen", "penwidth=2")
	case catalog.KindBossRoom:
		attrs = append(attrs, "fillcolor=salmon", "penwidth=2")
	case catalog.KindCorridor:
		attrs = append(attrs, "fillcolor=lightgrey", "fontsize=12", "height=0.3")
	case catalog.KindNone:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=white", "fontcolor=grey40")
	}
	if n.Selected() {
		attrs = append(attrs, "color=royalblue", "penwidth=3")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg element so the drawing scales
// with its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
