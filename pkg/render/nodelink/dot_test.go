package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/roomgraph/pkg/catalog"
	"github.com/matzehuels/roomgraph/pkg/roomgraph"
)

func sampleGraph(t *testing.T) *roomgraph.Graph {
	t.Helper()
	cat := catalog.Default()
	ids := []string{"entrance-0001", "corridor-0002", "boss-0003"}
	g, err := roomgraph.NewSeeded(cat, roomgraph.WithIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))
	if err != nil {
		t.Fatal(err)
	}
	corridor, _ := cat.Lookup("Corridor")
	boss, _ := cat.Lookup("Boss Room")
	c, _ := g.CreateNode(400, 200, corridor)
	b, _ := g.CreateNode(600, 200, boss)
	g.TryConnect("entrance-0001", c.ID())
	g.TryConnect(c.ID(), b.ID())
	g.SetSelected(b.ID(), true)
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleGraph(t), Options{})

	for _, want := range []string{
		"digraph G {",
		`"entrance-0001" [label="Entrance\nentrance", fillcolor=palegreen, penwidth=2];`,
		`"corridor-0002" [label="Corridor\ncorridor", fillcolor=lightgrey, fontsize=12, height=0.3];`,
		`fillcolor=salmon, penwidth=2, color=royalblue, penwidth=3`,
		`"entrance-0001" -> "corridor-0002";`,
		`"corridor-0002" -> "boss-0003";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
}

func TestToDOTDeterministic(t *testing.T) {
	if ToDOT(sampleGraph(t), Options{}) != ToDOT(sampleGraph(t), Options{}) {
		t.Error("ToDOT() differs between identical graphs")
	}
}

func TestFmtLabel(t *testing.T) {
	g := sampleGraph(t)
	n, _ := g.Node("corridor-0002")

	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"short", Options{}, "Corridor\ncorridor"},
		{"id length", Options{IDLength: 3}, "Corridor\ncor"},
		{"long id kept", Options{IDLength: 64}, "Corridor\ncorridor-0002"},
		{"detailed", Options{Detailed: true}, "Corridor\ncorridor-0002\nat: 400,200\nsize: 120x60\nchildren: 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fmtLabel(n, tt.opts); got != tt.want {
				t.Errorf("fmtLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte("<svg><g/></svg>")
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("normalizeViewBox() changed an svg without viewBox")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(sampleGraph(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("RenderSVG() output is not svg: %.80s", svg)
	}

	if _, err := RenderSVG("digraph {"); err == nil {
		t.Error("RenderSVG() with bad DOT should fail")
	}
}
