package roomgraph

import (
	"errors"
	"testing"

	"github.com/matzehuels/roomgraph/pkg/catalog"
)

func TestSetTypeErrors(t *testing.T) {
	g := newTestGraph(t)
	e := mustCreate(t, g, "Entrance")
	r := mustCreate(t, g, "Small Room")
	c := mustCreate(t, g, "Corridor")
	free := mustCreate(t, g, "None")
	mustConnect(t, g, r, c)

	tests := []struct {
		name    string
		id      string
		typ     *catalog.NodeType
		wantErr error
	}{
		{"unknown node", "missing", mustType(t, g, "Small Room"), ErrUnknownNode},
		{"foreign type", free.ID(), func() *catalog.NodeType { nt, _ := catalog.Default().Lookup("Corridor"); return nt }(), ErrUnknownType},
		{"connected node", c.ID(), mustType(t, g, "CorridorEW"), ErrLocked},
		{"entrance node", e.ID(), mustType(t, g, "Small Room"), ErrLocked},
		{"second entrance", free.ID(), mustType(t, g, "Entrance"), ErrEntranceType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := g.SetType(tt.id, tt.typ); !errors.Is(err, tt.wantErr) {
				t.Errorf("SetType() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if c.Type().Name() != "Corridor" || !free.Type().IsNone() {
		t.Error("failed SetType changed a type")
	}
}

func TestSetTypeSeversInvalidChildren(t *testing.T) {
	tests := []struct {
		name        string
		from, to    string
		children    []string
		wantSevered int
		wantKept    int
	}{
		{"room to corridor drops corridor children", "Small Room", "Corridor", []string{"Corridor", "Corridor"}, 2, 0},
		{"corridor to room drops room child", "Corridor", "Large Room", []string{"Small Room"}, 1, 0},
		{"corridor orientation keeps room child", "Corridor", "CorridorNS", []string{"Small Room"}, 0, 1},
		{"room to boss keeps corridors", "Small Room", "Boss Room", []string{"Corridor", "Corridor", "Corridor"}, 0, 3},
		{"room to none keeps corridors", "Chest Room", "None", []string{"Corridor"}, 0, 1},
		{"same type", "Small Room", "Small Room", []string{"Corridor"}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGraph(t)
			n := mustCreate(t, g, tt.from)
			var kids []*Node
			for _, k := range tt.children {
				kid := mustCreate(t, g, k)
				mustConnect(t, g, n, kid)
				kids = append(kids, kid)
			}

			severed, err := g.SetType(n.ID(), mustType(t, g, tt.to))
			if err != nil {
				t.Fatalf("SetType() error = %v", err)
			}
			if severed != tt.wantSevered {
				t.Errorf("severed = %d, want %d", severed, tt.wantSevered)
			}
			if got := len(n.ChildIDs()); got != tt.wantKept {
				t.Errorf("children = %d, want %d", got, tt.wantKept)
			}
			for _, kid := range kids {
				if kid.HasParent() != n.HasChild(kid.ID()) {
					t.Errorf("edge to %s is one-sided", kid.ID())
				}
			}
			if n.Type().Name() != tt.to {
				t.Errorf("Type() = %v, want %s", n.Type(), tt.to)
			}
			assertNoAuditErrors(t, g)
		})
	}
}

func TestSetTypeOnFreshNode(t *testing.T) {
	g := newTestGraph(t)
	n, err := g.CreateDefaultNode(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n.Locked() {
		t.Fatal("fresh node Locked() = true")
	}
	if _, err := g.SetType(n.ID(), mustType(t, g, "Corridor")); err != nil {
		t.Fatalf("SetType() error = %v", err)
	}
	e, _ := g.Entrance()
	mustConnect(t, g, e, n)
	if !n.Locked() {
		t.Error("connected node Locked() = false")
	}
}
