package roomgraph_test

import (
	"fmt"

	"github.com/matzehuels/roomgraph/pkg/catalog"
	"github.com/matzehuels/roomgraph/pkg/roomgraph"
)

func Example() {
	cat := catalog.Default()
	g, _ := roomgraph.NewSeeded(cat)
	entrance, _ := g.Entrance()

	corridor, _ := cat.Lookup("Corridor")
	room, _ := cat.Lookup("Small Room")
	c, _ := g.CreateNode(400, 200, corridor)
	r, _ := g.CreateNode(600, 200, room)

	fmt.Println(g.TryConnect(entrance.ID(), c.ID()))
	fmt.Println(g.TryConnect(c.ID(), r.ID()))
	fmt.Println(g.TryConnect(entrance.ID(), r.ID()))
	fmt.Println(g.Check(entrance.ID(), r.ID()))
	// Output:
	// true
	// true
	// false
	// child already has a parent
}

func ExampleGraph_SetType() {
	cat := catalog.Default()
	g := roomgraph.New(cat)

	room, _ := cat.Lookup("Small Room")
	corridor, _ := cat.Lookup("Corridor")
	r, _ := g.CreateNode(0, 0, room)
	c1, _ := g.CreateNode(0, 0, corridor)
	c2, _ := g.CreateNode(0, 0, corridor)
	g.TryConnect(r.ID(), c1.ID())
	g.TryConnect(r.ID(), c2.ID())

	// A corridor cannot lead into corridors, so both edges go.
	severed, _ := g.SetType(r.ID(), corridor)
	fmt.Println("severed:", severed)
	fmt.Println("edges:", g.EdgeCount())
	// Output:
	// severed: 2
	// edges: 0
}
