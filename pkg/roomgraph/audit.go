package roomgraph

import (
	"fmt"
	"slices"
)

// Severity indicates whether a finding makes the graph unbuildable or is
// merely advisory.
type Severity int

const (
	SeverityError   Severity = iota // the level builder cannot rely on the topology
	SeverityWarning                 // informational
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Rule names used in [Violation].
const (
	RuleIndex          = "index"
	RuleDuplicateID    = "duplicate-id"
	RuleDangling       = "dangling-reference"
	RuleAsymmetric     = "asymmetric-edge"
	RuleSelfLoop       = "self-loop"
	RuleDuplicateEdge  = "duplicate-edge"
	RuleSingleParent   = "single-parent"
	RuleEntranceParent = "entrance-parent"
	RuleEntranceChild  = "entrance-child"
	RuleNoneChild      = "none-child"
	RuleBossSingleton  = "boss-singleton"
	RuleCorridorChild  = "corridor-child"
	RuleRoomToRoom     = "room-to-room"
	RuleCorridorFanOut = "corridor-fan-out"
	RuleCycle          = "cycle"
	RuleEntranceCount  = "entrance-count"
	RuleUnconnected    = "unconnected"
)

// Violation is a single audit finding.
type Violation struct {
	NodeID   string // empty for graph-level findings
	Rule     string
	Message  string
	Severity Severity
}

func (v Violation) Error() string {
	if v.NodeID == "" {
		return fmt.Sprintf("[%s] %s: %s", v.Severity, v.Rule, v.Message)
	}
	return fmt.Sprintf("[%s] %s: node %s: %s", v.Severity, v.Rule, v.NodeID, v.Message)
}

// Audit checks every structural invariant against the graph as it stands
// and returns the findings; an empty result means the graph is buildable.
// Graphs edited only through the mutation API never produce errors; Audit
// exists for data restored with [Graph.Load]. It never mutates the graph.
func Audit(g *Graph) []Violation {
	a := auditor{g: g}
	a.index()
	for _, n := range g.nodes {
		a.adjacency(n)
		a.node(n)
	}
	a.bossRooms()
	a.cycles()
	a.entrances()
	return a.out
}

type auditor struct {
	g   *Graph
	out []Violation
}

func (a *auditor) add(id, rule string, sev Severity, format string, args ...any) {
	a.out = append(a.out, Violation{NodeID: id, Rule: rule, Message: fmt.Sprintf(format, args...), Severity: sev})
}

func (a *auditor) index() {
	seen := make(map[string]bool, len(a.g.nodes))
	for _, n := range a.g.nodes {
		if seen[n.id] {
			a.add(n.id, RuleDuplicateID, SeverityError, "id appears more than once")
		}
		seen[n.id] = true
	}
	if len(a.g.index) != len(seen) {
		a.add("", RuleIndex, SeverityError, "index holds %d ids, node list holds %d", len(a.g.index), len(seen))
	}
	for id := range seen {
		if _, ok := a.g.index[id]; !ok {
			a.add(id, RuleIndex, SeverityError, "id does not resolve through the index")
		}
	}
}

func (a *auditor) adjacency(n *Node) {
	for i, cid := range n.children {
		if cid == n.id {
			a.add(n.id, RuleSelfLoop, SeverityError, "node is its own child")
			continue
		}
		if slices.Contains(n.children[:i], cid) {
			a.add(n.id, RuleDuplicateEdge, SeverityError, "child %s listed twice", cid)
			continue
		}
		c, ok := a.g.index[cid]
		if !ok {
			a.add(n.id, RuleDangling, SeverityError, "child %s does not exist", cid)
			continue
		}
		if !c.HasParentID(n.id) {
			a.add(n.id, RuleAsymmetric, SeverityError, "child %s does not list it as parent", cid)
		}
	}
	for i, pid := range n.parents {
		if slices.Contains(n.parents[:i], pid) {
			a.add(n.id, RuleDuplicateEdge, SeverityError, "parent %s listed twice", pid)
			continue
		}
		p, ok := a.g.index[pid]
		if !ok {
			a.add(n.id, RuleDangling, SeverityError, "parent %s does not exist", pid)
			continue
		}
		if !p.HasChild(n.id) {
			a.add(n.id, RuleAsymmetric, SeverityError, "parent %s does not list it as child", pid)
		}
	}
}

func (a *auditor) node(n *Node) {
	t := n.typ
	switch {
	case t.IsEntrance() && len(n.parents) > 0:
		a.add(n.id, RuleEntranceParent, SeverityError, "entrance has %d parents", len(n.parents))
	case len(n.parents) > 1:
		a.add(n.id, RuleSingleParent, SeverityError, "node has %d parents", len(n.parents))
	case !t.IsEntrance() && len(n.parents) == 0:
		a.add(n.id, RuleUnconnected, SeverityWarning, "%s is not connected to the dungeon", t.Name())
	}

	corridors, rooms := 0, 0
	for _, cid := range n.children {
		c, ok := a.g.index[cid]
		if !ok || c == n {
			continue
		}
		ct := c.typ
		switch {
		case ct.IsEntrance():
			a.add(n.id, RuleEntranceChild, SeverityError, "entrance %s is a child", cid)
		case ct.IsNone():
			a.add(n.id, RuleNoneChild, SeverityError, "unassigned node %s is a child", cid)
		}
		if ct.IsCorridor() {
			corridors++
		} else {
			rooms++
		}
	}

	if t.IsCorridor() {
		if corridors > 0 {
			a.add(n.id, RuleCorridorChild, SeverityError, "corridor leads into %d corridors", corridors)
		}
		if len(n.children) > 1 {
			a.add(n.id, RuleCorridorChild, SeverityError, "corridor has %d children, want at most 1", len(n.children))
		}
		return
	}
	if rooms > 0 {
		a.add(n.id, RuleRoomToRoom, SeverityError, "room leads directly into %d rooms", rooms)
	}
	if corridors > a.g.maxChildCorridors {
		a.add(n.id, RuleCorridorFanOut, SeverityError, "room leads into %d corridors, max %d", corridors, a.g.maxChildCorridors)
	}
}

func (a *auditor) bossRooms() {
	var connected []string
	for _, n := range a.g.nodes {
		if n.typ.IsBossRoom() && len(n.parents) > 0 {
			connected = append(connected, n.id)
		}
	}
	if len(connected) > 1 {
		a.add("", RuleBossSingleton, SeverityError, "%d boss rooms are connected: %v", len(connected), connected)
	}
}

// cycles walks parent chains. The connect rules never check ancestry, so a
// ring of nodes that each have one parent is reachable through the editor;
// it is reported as a warning since the ring has no path from the entrance.
func (a *auditor) cycles() {
	reported := make(map[string]bool)
	for _, start := range a.g.nodes {
		visited := map[string]bool{start.id: true}
		cur := start
		for len(cur.parents) > 0 {
			next, ok := a.g.index[cur.parents[0]]
			if !ok {
				break
			}
			if next == start {
				if !reported[start.id] {
					a.add(start.id, RuleCycle, SeverityWarning, "node is its own ancestor")
					reported[start.id] = true
				}
				break
			}
			if visited[next.id] {
				break
			}
			visited[next.id] = true
			cur = next
		}
	}
}

func (a *auditor) entrances() {
	count := 0
	for _, n := range a.g.nodes {
		if n.typ.IsEntrance() {
			count++
		}
	}
	if count != 1 {
		a.add("", RuleEntranceCount, SeverityWarning, "graph has %d entrances, want 1", count)
	}
}

// HasErrors reports whether any finding is an error.
func HasErrors(vs []Violation) bool {
	for _, v := range vs {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}
