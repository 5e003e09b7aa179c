package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/roomgraph/pkg/roomgraph"
)

// Version is the document format version written by this package.
const Version = 1

type document struct {
	Version int    `json:"version"`
	Nodes   []node `json:"nodes"`
}

type node struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Parents  []string       `json:"parents,omitempty"`
	Children []string       `json:"children,omitempty"`
	Rect     roomgraph.Rect `json:"rect"`
}

// WriteJSON encodes g as an indented JSON document and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(g *roomgraph.Graph, w io.Writer) error {
	states := g.Snapshot()
	out := document{
		Version: Version,
		Nodes:   make([]node, len(states)),
	}
	for i, s := range states {
		out.Nodes[i] = node{
			ID:       s.ID,
			Type:     s.Type,
			Parents:  s.Parents,
			Children: s.Children,
			Rect:     s.Rect,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Marshal returns the JSON document for g.
func Marshal(g *roomgraph.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes g to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *roomgraph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
