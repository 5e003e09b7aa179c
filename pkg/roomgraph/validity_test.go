package roomgraph

import (
	"fmt"
	"slices"
	"testing"

	"github.com/matzehuels/roomgraph/pkg/catalog"
)

func TestCheckReasons(t *testing.T) {
	tests := []struct {
		name   string
		build  func(t *testing.T, g *Graph) (parent, child string)
		reason Reason
	}{
		{
			name: "unknown parent",
			build: func(t *testing.T, g *Graph) (string, string) {
				return "missing", mustCreate(t, g, "Corridor").ID()
			},
			reason: ReasonUnknownNode,
		},
		{
			name: "unknown child",
			build: func(t *testing.T, g *Graph) (string, string) {
				return mustCreate(t, g, "Small Room").ID(), "missing"
			},
			reason: ReasonUnknownNode,
		},
		{
			name: "self loop",
			build: func(t *testing.T, g *Graph) (string, string) {
				c := mustCreate(t, g, "Corridor")
				return c.ID(), c.ID()
			},
			reason: ReasonSelfLoop,
		},
		{
			name: "duplicate edge",
			build: func(t *testing.T, g *Graph) (string, string) {
				r, c := mustCreate(t, g, "Small Room"), mustCreate(t, g, "Corridor")
				mustConnect(t, g, r, c)
				return r.ID(), c.ID()
			},
			reason: ReasonDuplicateEdge,
		},
		{
			name: "reverse edge",
			build: func(t *testing.T, g *Graph) (string, string) {
				r, c := mustCreate(t, g, "Small Room"), mustCreate(t, g, "Corridor")
				mustConnect(t, g, r, c)
				return c.ID(), r.ID()
			},
			reason: ReasonReverseEdge,
		},
		{
			name: "child has parent",
			build: func(t *testing.T, g *Graph) (string, string) {
				r1, r2, c := mustCreate(t, g, "Small Room"), mustCreate(t, g, "Large Room"), mustCreate(t, g, "Corridor")
				mustConnect(t, g, r1, c)
				return r2.ID(), c.ID()
			},
			reason: ReasonChildHasParent,
		},
		{
			name: "child is entrance",
			build: func(t *testing.T, g *Graph) (string, string) {
				return mustCreate(t, g, "Corridor").ID(), mustCreate(t, g, "Entrance").ID()
			},
			reason: ReasonChildIsEntrance,
		},
		{
			name: "child is none",
			build: func(t *testing.T, g *Graph) (string, string) {
				return mustCreate(t, g, "Corridor").ID(), mustCreate(t, g, "None").ID()
			},
			reason: ReasonChildIsNone,
		},
		{
			name: "corridor to corridor",
			build: func(t *testing.T, g *Graph) (string, string) {
				return mustCreate(t, g, "Corridor").ID(), mustCreate(t, g, "CorridorNS").ID()
			},
			reason: ReasonCorridorToCorridor,
		},
		{
			name: "room to room",
			build: func(t *testing.T, g *Graph) (string, string) {
				return mustCreate(t, g, "Small Room").ID(), mustCreate(t, g, "Boss Room").ID()
			},
			reason: ReasonRoomToRoom,
		},
		{
			name: "corridor fan-out",
			build: func(t *testing.T, g *Graph) (string, string) {
				r := mustCreate(t, g, "Small Room")
				for range DefaultMaxChildCorridors {
					mustConnect(t, g, r, mustCreate(t, g, "Corridor"))
				}
				return r.ID(), mustCreate(t, g, "Corridor").ID()
			},
			reason: ReasonCorridorFanOut,
		},
		{
			name: "accepted",
			build: func(t *testing.T, g *Graph) (string, string) {
				return mustCreate(t, g, "Corridor").ID(), mustCreate(t, g, "Boss Room").ID()
			},
			reason: ReasonOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGraph(t)
			p, c := tt.build(t, g)
			if got := g.Check(p, c); got != tt.reason {
				t.Errorf("Check() = %v, want %v", got, tt.reason)
			}
			if got := g.TryConnect(p, c); got != (tt.reason == ReasonOK) {
				t.Errorf("TryConnect() = %v, want %v", got, tt.reason == ReasonOK)
			}
		})
	}
}

func TestWithMaxChildCorridors(t *testing.T) {
	g := newTestGraph(t, WithMaxChildCorridors(1))
	r := mustCreate(t, g, "Small Room")
	mustConnect(t, g, r, mustCreate(t, g, "Corridor"))
	if got := g.Check(r.ID(), mustCreate(t, g, "Corridor").ID()); got != ReasonCorridorFanOut {
		t.Errorf("Check() = %v, want %v", got, ReasonCorridorFanOut)
	}

	if New(catalog.Default(), WithMaxChildCorridors(0)).MaxChildCorridors() != DefaultMaxChildCorridors {
		t.Error("WithMaxChildCorridors(0) should be ignored")
	}
}

func TestCanConnectNil(t *testing.T) {
	g := newTestGraph(t)
	c := mustCreate(t, g, "Corridor")
	if g.CanConnect(nil, c) || g.CanConnect(c, nil) {
		t.Error("CanConnect(nil) = true")
	}
}

func TestReasonString(t *testing.T) {
	for r := ReasonOK; r <= ReasonParentHasChild; r++ {
		if s := r.String(); s == "" || s == fmt.Sprintf("Reason(%d)", int(r)) {
			t.Errorf("Reason(%d) has no text", int(r))
		}
	}
	if got := Reason(99).String(); got != "Reason(99)" {
		t.Errorf("String() = %q, want Reason(99)", got)
	}
}

// oracle restates the eleven rejection conditions independently of check.
func oracle(g *Graph, p, c *Node) bool {
	otherBoss := false
	for _, n := range g.nodes {
		if n != c && n.typ.IsBossRoom() && len(n.parents) > 0 {
			otherBoss = true
		}
	}
	corridors := 0
	for _, id := range p.children {
		if n, ok := g.index[id]; ok && n.typ.IsCorridor() {
			corridors++
		}
	}
	pc, cc := p.typ.IsCorridor(), c.typ.IsCorridor()
	rejected := []bool{
		p.id == c.id,
		slices.Contains(p.children, c.id),
		slices.Contains(p.parents, c.id),
		len(c.parents) > 0,
		c.typ.IsEntrance(),
		c.typ.IsNone(),
		c.typ.IsBossRoom() && otherBoss,
		cc && pc,
		!cc && !pc,
		cc && corridors >= g.maxChildCorridors,
		!cc && len(p.children) > 0,
	}
	return !slices.Contains(rejected, true)
}

type fixture struct {
	parentChildren string // "", "room", "corridor", "corridors-max"
	childHasParent bool
	bossConnected  bool
	relation       string // "", "self", "duplicate", "reverse"
}

func (f fixture) String() string {
	return fmt.Sprintf("kids=%s/childParent=%v/boss=%v/rel=%s", f.parentChildren, f.childHasParent, f.bossConnected, f.relation)
}

// build lays out a graph through Load so that every combination can be
// reached, including ones the mutation API would refuse to create.
func (f fixture) build(t *testing.T, pt, ct string) *Graph {
	t.Helper()
	g := New(catalog.Default(), WithIDGenerator(counterIDs()))
	states := map[string]*NodeState{}
	order := []string{}
	add := func(id, typ string) *NodeState {
		s := &NodeState{ID: id, Type: typ}
		states[id] = s
		order = append(order, id)
		return s
	}
	link := func(from, to string) {
		states[from].Children = append(states[from].Children, to)
		states[to].Parents = append(states[to].Parents, from)
	}

	add("P", pt)
	if f.relation != "self" {
		add("C", ct)
	}
	switch f.parentChildren {
	case "room":
		add("K1", "Small Room")
		link("P", "K1")
	case "corridor":
		add("K1", "Corridor")
		link("P", "K1")
	case "corridors-max":
		for i := range DefaultMaxChildCorridors {
			id := fmt.Sprintf("K%d", i+1)
			add(id, "Corridor")
			link("P", id)
		}
	}
	if f.childHasParent && f.relation == "" {
		add("X", "Corridor")
		link("X", "C")
	}
	if f.bossConnected {
		add("Y", "Corridor")
		add("B", "Boss Room")
		link("Y", "B")
	}
	switch f.relation {
	case "duplicate":
		link("P", "C")
	case "reverse":
		link("C", "P")
	}

	list := make([]NodeState, len(order))
	for i, id := range order {
		list[i] = *states[id]
	}
	if err := g.Load(list); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return g
}

// TestTryConnectMatchesOracle enumerates every pair of catalog types against
// every neighbourhood shape and checks TryConnect against the oracle.
func TestTryConnectMatchesOracle(t *testing.T) {
	var fixtures []fixture
	for _, kids := range []string{"", "room", "corridor", "corridors-max"} {
		for _, childParent := range []bool{false, true} {
			for _, boss := range []bool{false, true} {
				for _, rel := range []string{"", "self", "duplicate", "reverse"} {
					fixtures = append(fixtures, fixture{kids, childParent, boss, rel})
				}
			}
		}
	}

	types := catalog.Default().Types()
	checked := 0
	for _, pt := range types {
		for _, ct := range types {
			for _, f := range fixtures {
				g := f.build(t, pt.Name(), ct.Name())
				p, _ := g.Node("P")
				c, ok := g.Node("C")
				if f.relation == "self" {
					c, ok = p, true
				}
				if !ok {
					t.Fatalf("fixture %v has no child", f)
				}

				want := oracle(g, p, c)
				before := g.Snapshot()
				got := g.TryConnect(p.ID(), c.ID())
				checked++

				if got != want {
					t.Errorf("%s→%s %v: TryConnect() = %v, want %v (reason %v)",
						pt.Name(), ct.Name(), f, got, want, g.Check(p.ID(), c.ID()))
					continue
				}
				if !got && !slices.EqualFunc(before, g.Snapshot(), stateEqual) {
					t.Errorf("%s→%s %v: rejected edge mutated the graph", pt.Name(), ct.Name(), f)
				}
				if got && (!p.HasChild(c.ID()) || !c.HasParentID(p.ID())) {
					t.Errorf("%s→%s %v: accepted edge not recorded both ways", pt.Name(), ct.Name(), f)
				}
			}
		}
	}
	if checked == 0 {
		t.Fatal("no combinations checked")
	}
}
