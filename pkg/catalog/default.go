package catalog

// Default returns the built-in catalog: the entrance, four ordinary rooms,
// the boss room, the corridor with its two orientation variants and the
// placeholder type.
func Default() *Catalog {
	hidden := false
	c, err := New([]Spec{
		{Name: "Entrance", Entrance: true},
		{Name: "Small Room"},
		{Name: "Medium Room"},
		{Name: "Large Room"},
		{Name: "Chest Room"},
		{Name: "Boss Room", BossRoom: true},
		{Name: "Corridor", Corridor: true},
		{Name: "CorridorNS", Corridor: true, CorridorNS: true, Displayable: &hidden},
		{Name: "CorridorEW", Corridor: true, CorridorEW: true, Displayable: &hidden},
		{Name: "None", None: true, Displayable: &hidden},
	})
	if err != nil {
		panic("catalog: invalid default catalog: " + err.Error())
	}
	return c
}
