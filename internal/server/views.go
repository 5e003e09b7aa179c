package server

import (
	"github.com/matzehuels/roomgraph/pkg/catalog"
	"github.com/matzehuels/roomgraph/pkg/roomgraph"
)

type typeView struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Displayable bool   `json:"displayable"`
	CorridorNS  bool   `json:"corridor_ns,omitempty"`
	CorridorEW  bool   `json:"corridor_ew,omitempty"`
}

type nodeView struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Kind     string         `json:"kind"`
	Parents  []string       `json:"parents"`
	Children []string       `json:"children"`
	Rect     roomgraph.Rect `json:"rect"`
	Selected bool           `json:"selected"`
	Locked   bool           `json:"locked"`
}

type edgeView struct {
	Parent string `json:"parent"`
	Child  string `json:"child"`
}

type graphView struct {
	Name  string     `json:"name"`
	Nodes []nodeView `json:"nodes"`
	Edges []edgeView `json:"edges"`
}

type violationView struct {
	NodeID   string `json:"node_id,omitempty"`
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type validateView struct {
	Valid      bool            `json:"valid"`
	Violations []violationView `json:"violations"`
}

func newTypeView(t *catalog.NodeType) typeView {
	return typeView{
		Name:        t.Name(),
		Kind:        t.Kind().String(),
		Displayable: t.Displayable(),
		CorridorNS:  t.IsCorridorNS(),
		CorridorEW:  t.IsCorridorEW(),
	}
}

func newNodeView(n *roomgraph.Node) nodeView {
	parents, children := n.ParentIDs(), n.ChildIDs()
	if parents == nil {
		parents = []string{}
	}
	if children == nil {
		children = []string{}
	}
	return nodeView{
		ID:       n.ID(),
		Type:     n.Type().Name(),
		Kind:     n.Type().Kind().String(),
		Parents:  parents,
		Children: children,
		Rect:     n.Rect(),
		Selected: n.Selected(),
		Locked:   n.Locked(),
	}
}

func newGraphView(name string, g *roomgraph.Graph) graphView {
	v := graphView{Name: name, Nodes: []nodeView{}, Edges: []edgeView{}}
	for _, n := range g.Nodes() {
		v.Nodes = append(v.Nodes, newNodeView(n))
	}
	for _, e := range g.Edges() {
		v.Edges = append(v.Edges, edgeView{Parent: e.From, Child: e.To})
	}
	return v
}

func newValidateView(vs []roomgraph.Violation) validateView {
	v := validateView{Valid: !roomgraph.HasErrors(vs), Violations: []violationView{}}
	for _, x := range vs {
		v.Violations = append(v.Violations, violationView{
			NodeID:   x.NodeID,
			Rule:     x.Rule,
			Severity: x.Severity.String(),
			Message:  x.Message,
		})
	}
	return v
}
