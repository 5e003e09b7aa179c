package catalog

import (
	"errors"
	"fmt"
	"strings"

	rgerrors "github.com/matzehuels/roomgraph/pkg/errors"
)

var (
	// ErrEmptyCatalog is returned by [New] when no types are given.
	ErrEmptyCatalog = errors.New("catalog has no node types")

	// ErrDuplicateType is returned by [New] when two types share a name.
	ErrDuplicateType = errors.New("duplicate node type name")
)

// Kind is the structural category of a node type as the validity rules see it.
type Kind int

const (
	// KindRoom is an ordinary room: no capability flag set.
	KindRoom Kind = iota
	// KindEntrance is the dungeon's root room.
	KindEntrance
	// KindCorridor connects two rooms.
	KindCorridor
	// KindBossRoom is the singleton connected boss room.
	KindBossRoom
	// KindNone is the unassigned placeholder.
	KindNone
)

func (k Kind) String() string {
	switch k {
	case KindRoom:
		return "room"
	case KindEntrance:
		return "entrance"
	case KindCorridor:
		return "corridor"
	case KindBossRoom:
		return "boss"
	case KindNone:
		return "none"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Spec is the decoded, not yet validated form of a node type.
// Displayable is a pointer so that an omitted value defaults to true.
type Spec struct {
	Name        string `toml:"name"`
	Displayable *bool  `toml:"displayable"`
	Corridor    bool   `toml:"corridor"`
	CorridorNS  bool   `toml:"corridor_ns"`
	CorridorEW  bool   `toml:"corridor_ew"`
	Entrance    bool   `toml:"entrance"`
	BossRoom    bool   `toml:"boss_room"`
	None        bool   `toml:"none"`
}

// NodeType is an immutable room type descriptor. Values are only created by
// [New]; graphs compare types by pointer identity.
type NodeType struct {
	name        string
	displayable bool
	corridor    bool
	corridorNS  bool
	corridorEW  bool
	entrance    bool
	bossRoom    bool
	none        bool
}

// Name returns the display label of the type.
func (t *NodeType) Name() string { return t.name }

// Displayable reports whether editors offer the type in their type picker.
func (t *NodeType) Displayable() bool { return t.displayable }

// IsCorridor reports whether the type is a corridor.
func (t *NodeType) IsCorridor() bool { return t.corridor }

// IsCorridorNS reports whether the type is a north-south corridor segment.
func (t *NodeType) IsCorridorNS() bool { return t.corridorNS }

// IsCorridorEW reports whether the type is an east-west corridor segment.
func (t *NodeType) IsCorridorEW() bool { return t.corridorEW }

// IsEntrance reports whether the type is the entrance.
func (t *NodeType) IsEntrance() bool { return t.entrance }

// IsBossRoom reports whether the type is a boss room.
func (t *NodeType) IsBossRoom() bool { return t.bossRoom }

// IsNone reports whether the type is the unassigned placeholder.
func (t *NodeType) IsNone() bool { return t.none }

// IsRoom reports whether the type is anything other than a corridor.
// The validity rules treat every non-corridor type as a room; see [Catalog.Lint].
func (t *NodeType) IsRoom() bool { return !t.corridor }

// Kind classifies the type. When several flags are set (which [Catalog.Lint]
// warns about) entrance wins over none, none over corridor, corridor over boss.
func (t *NodeType) Kind() Kind {
	switch {
	case t.entrance:
		return KindEntrance
	case t.none:
		return KindNone
	case t.corridor:
		return KindCorridor
	case t.bossRoom:
		return KindBossRoom
	default:
		return KindRoom
	}
}

func (t *NodeType) String() string { return t.name }

func (t *NodeType) flagCount() int {
	n := 0
	for _, f := range []bool{t.entrance, t.corridor, t.bossRoom, t.none} {
		if f {
			n++
		}
	}
	return n
}

// Catalog is an ordered, immutable collection of node types.
// The zero value is not usable; build one with [New] or [Default].
type Catalog struct {
	types  []*NodeType
	byName map[string]*NodeType
}

// New validates specs and builds a catalog preserving their order.
// Every name must pass [rgerrors.ValidateTypeName] and be unique.
func New(specs []Spec) (*Catalog, error) {
	if len(specs) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{
		types:  make([]*NodeType, 0, len(specs)),
		byName: make(map[string]*NodeType, len(specs)),
	}
	for i, s := range specs {
		if err := rgerrors.ValidateTypeName(s.Name); err != nil {
			return nil, fmt.Errorf("type %d: %w", i, err)
		}
		if _, exists := c.byName[s.Name]; exists {
			return nil, fmt.Errorf("type %q: %w", s.Name, ErrDuplicateType)
		}
		t := &NodeType{
			name:        s.Name,
			displayable: s.Displayable == nil || *s.Displayable,
			corridor:    s.Corridor,
			corridorNS:  s.CorridorNS,
			corridorEW:  s.CorridorEW,
			entrance:    s.Entrance,
			bossRoom:    s.BossRoom,
			none:        s.None,
		}
		c.types = append(c.types, t)
		c.byName[t.name] = t
	}
	return c, nil
}

// Len returns the number of types.
func (c *Catalog) Len() int { return len(c.types) }

// Types returns all types in catalog order. The slice is a copy.
func (c *Catalog) Types() []*NodeType {
	return append([]*NodeType(nil), c.types...)
}

// Lookup returns the type with the given name.
func (c *Catalog) Lookup(name string) (*NodeType, bool) {
	t, ok := c.byName[name]
	return t, ok
}

// LookupFold is like [Catalog.Lookup] but matches names case-insensitively
// when there is no exact match. Used for typed user input.
func (c *Catalog) LookupFold(name string) (*NodeType, bool) {
	if t, ok := c.byName[name]; ok {
		return t, true
	}
	for _, t := range c.types {
		if strings.EqualFold(t.name, name) {
			return t, true
		}
	}
	return nil, false
}

// Contains reports whether t is one of this catalog's types.
func (c *Catalog) Contains(t *NodeType) bool {
	if t == nil {
		return false
	}
	return c.byName[t.name] == t
}

// Entrance returns the first entrance type.
func (c *Catalog) Entrance() (*NodeType, bool) {
	return c.first(func(t *NodeType) bool { return t.entrance })
}

// None returns the first placeholder type.
func (c *Catalog) None() (*NodeType, bool) {
	return c.first(func(t *NodeType) bool { return t.none })
}

// Displayable returns the types editors offer for selection, in catalog order.
func (c *Catalog) Displayable() []*NodeType {
	var out []*NodeType
	for _, t := range c.types {
		if t.displayable {
			out = append(out, t)
		}
	}
	return out
}

func (c *Catalog) first(pred func(*NodeType) bool) (*NodeType, bool) {
	for _, t := range c.types {
		if pred(t) {
			return t, true
		}
	}
	return nil, false
}

// Lint returns advisory findings about the catalog's configuration.
// None of them prevent authoring, but each one means a graph built on this
// catalog may not behave the way the type names suggest.
func (c *Catalog) Lint() []string {
	var warnings []string
	entrances := 0
	hasNone := false
	for _, t := range c.types {
		if t.flagCount() > 1 {
			warnings = append(warnings, fmt.Sprintf("type %q combines entrance/corridor/boss/none flags; classified as %s", t.name, t.Kind()))
		}
		if (t.corridorNS || t.corridorEW) && !t.corridor {
			warnings = append(warnings, fmt.Sprintf("type %q has a corridor orientation but is not a corridor", t.name))
		}
		if t.entrance {
			entrances++
		}
		if t.none {
			hasNone = true
		}
	}
	switch {
	case entrances == 0:
		warnings = append(warnings, "catalog has no entrance type")
	case entrances > 1:
		warnings = append(warnings, fmt.Sprintf("catalog has %d entrance types, want 1", entrances))
	}
	if !hasNone {
		warnings = append(warnings, "catalog has no none type for unassigned nodes")
	}
	return warnings
}
