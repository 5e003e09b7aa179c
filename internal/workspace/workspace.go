// Package workspace opens, creates and persists named room graphs over a
// store and a catalog, and translates graph errors into coded errors for
// the CLI and the HTTP API.
package workspace

import (
	"context"
	"errors"
	"strings"

	"github.com/matzehuels/roomgraph/pkg/catalog"
	rgerrors "github.com/matzehuels/roomgraph/pkg/errors"
	graphio "github.com/matzehuels/roomgraph/pkg/io"
	"github.com/matzehuels/roomgraph/pkg/roomgraph"
	"github.com/matzehuels/roomgraph/pkg/store"
)

// Workspace binds a store to the catalog its graphs are read with.
type Workspace struct {
	Catalog *catalog.Catalog
	Store   store.Store
	Options []roomgraph.Option
}

// New returns a workspace. Options are applied to every graph it opens.
func New(cat *catalog.Catalog, s store.Store, opts ...roomgraph.Option) *Workspace {
	return &Workspace{Catalog: cat, Store: s, Options: opts}
}

// Create makes a new graph seeded with its entrance and saves it under
// name. It fails with CONFLICT if name is already taken.
func (w *Workspace) Create(ctx context.Context, name string) (*roomgraph.Graph, error) {
	if err := rgerrors.ValidateGraphName(name); err != nil {
		return nil, err
	}
	if _, err := w.Store.Load(ctx, name); err == nil {
		return nil, rgerrors.New(rgerrors.ErrCodeConflict, "graph %q already exists", name)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, rgerrors.Wrap(rgerrors.ErrCodeStorage, err, "load %s", name)
	}

	g, err := roomgraph.NewSeeded(w.Catalog, w.Options...)
	if err != nil {
		return nil, rgerrors.Wrap(rgerrors.ErrCodeInvalidCatalog, err, "seed graph")
	}
	if err := w.Save(ctx, name, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Open loads the graph stored under name.
func (w *Workspace) Open(ctx context.Context, name string) (*roomgraph.Graph, error) {
	if err := rgerrors.ValidateGraphName(name); err != nil {
		return nil, err
	}
	data, err := w.Store.Load(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return nil, rgerrors.New(rgerrors.ErrCodeGraphNotFound, "graph %q not found", name)
	}
	if err != nil {
		return nil, rgerrors.Wrap(rgerrors.ErrCodeStorage, err, "load %s", name)
	}
	g, err := graphio.Unmarshal(data, w.Catalog, w.Options...)
	if err != nil {
		return nil, rgerrors.Wrap(rgerrors.ErrCodeInvalidGraph, err, "decode %s", name)
	}
	return g, nil
}

// Save writes g under name.
func (w *Workspace) Save(ctx context.Context, name string, g *roomgraph.Graph) error {
	if err := rgerrors.ValidateGraphName(name); err != nil {
		return err
	}
	data, err := graphio.Marshal(g)
	if err != nil {
		return rgerrors.Wrap(rgerrors.ErrCodeInternal, err, "encode %s", name)
	}
	if err := w.Store.Save(ctx, name, data); err != nil {
		return rgerrors.Wrap(rgerrors.ErrCodeStorage, err, "save %s", name)
	}
	return nil
}

// Delete removes the graph stored under name.
func (w *Workspace) Delete(ctx context.Context, name string) error {
	if err := rgerrors.ValidateGraphName(name); err != nil {
		return err
	}
	if _, err := w.Store.Load(ctx, name); errors.Is(err, store.ErrNotFound) {
		return rgerrors.New(rgerrors.ErrCodeGraphNotFound, "graph %q not found", name)
	}
	if err := w.Store.Delete(ctx, name); err != nil {
		return rgerrors.Wrap(rgerrors.ErrCodeStorage, err, "delete %s", name)
	}
	return nil
}

// List returns the stored graph names.
func (w *Workspace) List(ctx context.Context) ([]string, error) {
	names, err := w.Store.List(ctx)
	if err != nil {
		return nil, rgerrors.Wrap(rgerrors.ErrCodeStorage, err, "list graphs")
	}
	return names, nil
}

// LookupType finds a node type by exact name, then case-insensitively.
func (w *Workspace) LookupType(name string) (*catalog.NodeType, error) {
	if t, ok := w.Catalog.Lookup(name); ok {
		return t, nil
	}
	if t, ok := w.Catalog.LookupFold(name); ok {
		return t, nil
	}
	return nil, rgerrors.New(rgerrors.ErrCodeTypeNotFound, "unknown node type %q", name)
}

// ResolveNode finds a node by full id or by a unique id prefix.
func ResolveNode(g *roomgraph.Graph, ref string) (*roomgraph.Node, error) {
	if ref == "" {
		return nil, rgerrors.New(rgerrors.ErrCodeInvalidInput, "node reference cannot be empty")
	}
	if n, ok := g.Node(ref); ok {
		return n, nil
	}
	var match *roomgraph.Node
	for _, n := range g.Nodes() {
		if !strings.HasPrefix(n.ID(), ref) {
			continue
		}
		if match != nil {
			return nil, rgerrors.New(rgerrors.ErrCodeInvalidInput, "node reference %q is ambiguous", ref)
		}
		match = n
	}
	if match == nil {
		return nil, rgerrors.New(rgerrors.ErrCodeNodeNotFound, "node %q not found", ref)
	}
	return match, nil
}

// Translate maps graph sentinel errors to coded errors. Errors that are
// already coded, and nil, pass through.
func Translate(err error) error {
	if err == nil || rgerrors.GetCode(err) != "" {
		return err
	}
	switch {
	case errors.Is(err, roomgraph.ErrUnknownNode):
		return rgerrors.Wrap(rgerrors.ErrCodeNodeNotFound, err, "node not found")
	case errors.Is(err, roomgraph.ErrUnknownType):
		return rgerrors.Wrap(rgerrors.ErrCodeTypeNotFound, err, "node type not found")
	case errors.Is(err, roomgraph.ErrLocked):
		return rgerrors.Wrap(rgerrors.ErrCodeLocked, err, "node is connected to a parent")
	case errors.Is(err, roomgraph.ErrEntranceType):
		return rgerrors.Wrap(rgerrors.ErrCodeConflict, err, "cannot change a node into an entrance")
	case errors.Is(err, roomgraph.ErrInvalidNodeID), errors.Is(err, roomgraph.ErrDuplicateNodeID):
		return rgerrors.Wrap(rgerrors.ErrCodeInvalidGraph, err, "invalid node id")
	case errors.Is(err, roomgraph.ErrNoEntranceType), errors.Is(err, roomgraph.ErrNoNoneType):
		return rgerrors.Wrap(rgerrors.ErrCodeInvalidCatalog, err, "incomplete catalog")
	}
	return rgerrors.Wrap(rgerrors.ErrCodeInternal, err, "unexpected error")
}

// ConnectError describes a rejected connection attempt.
func ConnectError(parent, child string, r roomgraph.Reason) error {
	code := rgerrors.ErrCodeConflict
	if r == roomgraph.ReasonUnknownNode {
		code = rgerrors.ErrCodeNodeNotFound
	}
	return rgerrors.New(code, "cannot connect %s -> %s: %s", short(parent), short(child), r)
}

// DeleteNode removes a node unless it is an entrance.
func DeleteNode(g *roomgraph.Graph, n *roomgraph.Node) error {
	if n.Type().IsEntrance() {
		return rgerrors.New(rgerrors.ErrCodeConflict, "the entrance cannot be deleted")
	}
	if !g.DeleteNode(n.ID()) {
		return rgerrors.New(rgerrors.ErrCodeNodeNotFound, "node %q not found", n.ID())
	}
	return nil
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
