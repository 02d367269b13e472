package world

import (
	"overworld/pkg/engine/world"
)

// Gate offsets and constraints share one encoding: an offset along the edge
// (x for N/S, y for E/W), GateNone, or for constraints only, GateAny.
const (
	GateNone = -1
	GateAny  = -2
)

// Gates records where a map connects to its four neighbors
type Gates struct {
	N, S, E, W int
}

// NoGates is a map with no gates at all
var NoGates = Gates{N: GateNone, S: GateNone, E: GateNone, W: GateNone}

// Edge names a map edge by the direction it faces
type Edge = world.Direction

// Get returns the offset on the given edge
func (g Gates) Get(e Edge) int {
	switch e {
	case world.North:
		return g.N
	case world.South:
		return g.S
	case world.East:
		return g.E
	case world.West:
		return g.W
	default:
		return GateNone
	}
}

// Set stores the offset on the given edge
func (g *Gates) Set(e Edge, offset int) {
	switch e {
	case world.North:
		g.N = offset
	case world.South:
		g.S = offset
	case world.East:
		g.E = offset
	case world.West:
		g.W = offset
	}
}

// GateConstraints tells a generator which gate offsets are already decided.
// Each edge is a fixed offset, GateNone (world border) or GateAny.
type GateConstraints = Gates

// Unconstrained leaves every edge free
var Unconstrained = GateConstraints{N: GateAny, S: GateAny, E: GateAny, W: GateAny}

// GatePoint returns the cell of the gate on edge e of a cols x rows map
func GatePoint(e Edge, offset, cols, rows int) world.Point {
	switch e {
	case world.North:
		return world.Pt(offset, 0)
	case world.South:
		return world.Pt(offset, rows-1)
	case world.East:
		return world.Pt(cols-1, offset)
	default:
		return world.Pt(0, offset)
	}
}

// Inward returns the cell just inside the gate on edge e
func Inward(e Edge, gate world.Point) world.Point {
	return gate.Step(e.Opposite())
}

// GateEdges lists the edges in routing order: the west-east road is laid first
var GateEdges = []Edge{world.West, world.East, world.North, world.South}
