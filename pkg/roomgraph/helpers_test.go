package roomgraph

import (
	"fmt"
	"testing"

	"github.com/matzehuels/roomgraph/pkg/catalog"
)

// counterIDs returns an id generator producing n1, n2, ...
func counterIDs() func() string {
	i := 0
	return func() string {
		i++
		return fmt.Sprintf("n%d", i)
	}
}

func newTestGraph(t *testing.T, opts ...Option) *Graph {
	t.Helper()
	return New(catalog.Default(), append([]Option{WithIDGenerator(counterIDs())}, opts...)...)
}

func mustType(t *testing.T, g *Graph, name string) *catalog.NodeType {
	t.Helper()
	nt, ok := g.Catalog().Lookup(name)
	if !ok {
		t.Fatalf("type %q not in catalog", name)
	}
	return nt
}

func mustCreate(t *testing.T, g *Graph, typeName string) *Node {
	t.Helper()
	n, err := g.CreateNode(0, 0, mustType(t, g, typeName))
	if err != nil {
		t.Fatalf("CreateNode(%s) error = %v", typeName, err)
	}
	return n
}

func mustConnect(t *testing.T, g *Graph, parent, child *Node) {
	t.Helper()
	if !g.TryConnect(parent.ID(), child.ID()) {
		t.Fatalf("TryConnect(%s, %s) = false (%v), want true",
			parent.Type().Name(), child.Type().Name(), g.Check(parent.ID(), child.ID()))
	}
}

func assertNoAuditErrors(t *testing.T, g *Graph) {
	t.Helper()
	for _, v := range Audit(g) {
		if v.Severity == SeverityError {
			t.Errorf("audit: %v", v)
		}
	}
}
