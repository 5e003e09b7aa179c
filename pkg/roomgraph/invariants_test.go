package roomgraph

import (
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/roomgraph/pkg/catalog"
)

// TestInvariantsUnderRandomEdits drives the mutation API with a seeded
// random sequence and checks the structural invariants after every call.
func TestInvariantsUnderRandomEdits(t *testing.T) {
	cat := catalog.Default()
	g, err := NewSeeded(cat, WithIDGenerator(counterIDs()))
	if err != nil {
		t.Fatal(err)
	}
	types := cat.Types()
	r := rand.New(rand.NewPCG(7, 11))

	pick := func() *Node {
		nodes := g.Nodes()
		return nodes[r.IntN(len(nodes))]
	}

	accepted := 0
	for step := range 2000 {
		switch op := r.IntN(10); {
		case op < 3:
			nt := types[r.IntN(len(types))]
			if nt.IsEntrance() {
				continue
			}
			if _, err := g.CreateNode(0, 0, nt); err != nil {
				t.Fatalf("step %d: CreateNode() error = %v", step, err)
			}
		case op < 7:
			if g.TryConnect(pick().ID(), pick().ID()) {
				accepted++
			}
		case op < 8:
			g.Disconnect(pick().ID(), pick().ID())
		case op < 9:
			if n := pick(); !n.Type().IsEntrance() {
				g.DeleteNode(n.ID())
			}
		default:
			g.SetType(pick().ID(), types[r.IntN(len(types))])
		}

		bosses := 0
		for _, n := range g.Nodes() {
			if len(n.ParentIDs()) > 1 {
				t.Fatalf("step %d: node %s has %d parents", step, n.ID(), len(n.ParentIDs()))
			}
			if n.Type().IsBossRoom() && n.HasParent() {
				bosses++
			}
		}
		if bosses > 1 {
			t.Fatalf("step %d: %d connected boss rooms", step, bosses)
		}
		if len(g.index) != g.Len() {
			t.Fatalf("step %d: index size %d, node count %d", step, len(g.index), g.Len())
		}
		if HasErrors(Audit(g)) {
			t.Fatalf("step %d: audit errors %v", step, Audit(g))
		}
	}
	if accepted == 0 {
		t.Error("random sequence never connected an edge")
	}
}
