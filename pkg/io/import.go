package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/roomgraph/pkg/catalog"
	"github.com/matzehuels/roomgraph/pkg/roomgraph"
)

// ErrUnsupportedVersion is returned for documents written by a newer format.
var ErrUnsupportedVersion = errors.New("unsupported document version")

// ReadJSON decodes a JSON document from r into a new graph over cat.
//
// Unknown fields are rejected. A missing version is read as version 1.
// ReadJSON returns an error if the JSON is malformed, a node has no id, or
// a node's type is not in cat. Options are passed to [roomgraph.New].
// ReadJSON does not close r.
func ReadJSON(r io.Reader, cat *catalog.Catalog, opts ...roomgraph.Option) (*roomgraph.Graph, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc.Version > Version {
		return nil, fmt.Errorf("version %d: %w", doc.Version, ErrUnsupportedVersion)
	}

	states := make([]roomgraph.NodeState, len(doc.Nodes))
	for i, n := range doc.Nodes {
		states[i] = roomgraph.NodeState{
			ID:       n.ID,
			Type:     n.Type,
			Parents:  n.Parents,
			Children: n.Children,
			Rect:     n.Rect,
		}
	}

	g := roomgraph.New(cat, opts...)
	if err := g.Load(states); err != nil {
		return nil, err
	}
	return g, nil
}

// Unmarshal decodes a JSON document held in memory.
func Unmarshal(data []byte, cat *catalog.Catalog, opts ...roomgraph.Option) (*roomgraph.Graph, error) {
	return ReadJSON(bytes.NewReader(data), cat, opts...)
}

// ImportJSON reads the JSON document at path and returns the decoded graph.
// The error wraps the underlying cause with the file path for context.
func ImportJSON(path string, cat *catalog.Catalog, opts ...roomgraph.Option) (*roomgraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := ReadJSON(f, cat, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
