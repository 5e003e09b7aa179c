// Package catalog holds the node-type catalog a room graph is authored against.
//
// A [Catalog] is an ordered, immutable set of [NodeType] descriptors. Each type
// carries capability flags that the room graph's validity rules read:
//
//   - entrance: the unique root of a dungeon; never a child
//   - corridor: a connector between two rooms; at most one child, never a
//     corridor child
//   - boss room: at most one boss room may be connected at a time
//   - none: the placeholder type new nodes start with; never connectable
//
// A type with none of these flags is an ordinary room. The catalog is built
// once, from [Default], from a TOML file or from an HCL file, and handed to
// the graph at construction. Nothing mutates it afterwards.
//
// # File Formats
//
// TOML:
//
//	[[type]]
//	name = "Corridor"
//	corridor = true
//
// HCL:
//
//	room_type "Corridor" {
//	  corridor = true
//	}
//
// Both formats accept displayable (default true), corridor, corridor_ns,
// corridor_ew, entrance, boss_room and none.
package catalog
