package generator

import (
	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"overworld/pkg/engine/world"
	"overworld/pkg/game/pathfind"
	"overworld/pkg/game/terrain"
	gameworld "overworld/pkg/game/world"
)

const (
	roughPenalty     = 4
	heightCostDivide = 32
	buildingAttempts = 200
)

// placeGates resolves every edge's offset and marks the gate cells
func (g *Overworld) placeGates(m *gameworld.Map, gc gameworld.GateConstraints) {
	for _, e := range gameworld.GateEdges {
		off := gc.Get(e)
		if off == gameworld.GateAny {
			span := m.Cols()
			if e == world.East || e == world.West {
				span = m.Rows()
			}
			off = 1 + g.rng.Intn(span-2)
		}
		m.Gates.Set(e, off)
		if off >= 0 {
			m.Terrain.Set(gameworld.GatePoint(e, off, m.Cols(), m.Rows()), terrain.Gate)
		}
	}
}

// routeCost prefers low, smooth ground and reuses existing path. Water and the
// cliff ring are never crossed.
func (g *Overworld) routeCost(m *gameworld.Map) pathfind.CostFunc {
	return func(p world.Point) int {
		if !g.interior(m, p) {
			return terrain.Infinity
		}
		t := m.Terrain.At(p)
		switch t {
		case terrain.Water:
			return terrain.Infinity
		case terrain.Path:
			return 1
		}
		c := 1 + int(m.Height.At(p))/heightCostDivide
		switch t {
		case terrain.Boulder, terrain.Tree, terrain.Mountain, terrain.Forest:
			c += roughPenalty
		}
		return c
	}
}

// layPaths joins the gates with a road skeleton. The first gate in routing
// order seeds the skeleton and each later gate is routed to its nearest
// skeleton cell. Returns the skeleton cells.
func (g *Overworld) layPaths(m *gameworld.Map) []world.Point {
	gates := m.GatePoints()
	if len(gates) == 0 {
		return nil
	}
	for _, gate := range gates {
		m.Terrain.Set(gameworld.Inward(gate.Edge, gate.Point), terrain.Path)
	}

	skeleton := []world.Point{gameworld.Inward(gates[0].Edge, gates[0].Point)}
	onSkeleton := mapset.New[world.Point]()
	onSkeleton.Put(skeleton[0])

	cost := g.routeCost(m)
	for _, gate := range gates[1:] {
		target := gameworld.Inward(gate.Edge, gate.Point)
		if onSkeleton.Has(target) {
			continue
		}
		f := pathfind.Dijkstra(m.Cols(), m.Rows(), skeleton, cost, world.FourWay, func(p world.Point) bool {
			return p == target
		})
		route := f.PathTo(target)
		if route == nil {
			g.log.Warn("gate route blocked, carving straight path",
				zap.Stringer("coord", m.Coord),
				zap.Stringer("gate", gate.Edge))
			route = g.carve(m, nearest(skeleton, target), target)
		}
		for _, p := range route {
			m.Terrain.Set(p, terrain.Path)
			if !onSkeleton.Has(p) {
				onSkeleton.Put(p)
				skeleton = append(skeleton, p)
			}
		}
	}
	return skeleton
}

// carve lays an L-shaped run of path from a to b, horizontal leg first, and
// returns the cells it covered. Both ends must be interior.
func (g *Overworld) carve(m *gameworld.Map, a, b world.Point) []world.Point {
	var cells []world.Point
	p := a
	cells = append(cells, p)
	for p.X != b.X {
		if p.X < b.X {
			p = p.Step(world.East)
		} else {
			p = p.Step(world.West)
		}
		cells = append(cells, p)
	}
	for p.Y != b.Y {
		if p.Y < b.Y {
			p = p.Step(world.South)
		} else {
			p = p.Step(world.North)
		}
		cells = append(cells, p)
	}
	for _, c := range cells {
		m.Terrain.Set(c, terrain.Path)
	}
	return cells
}

// nearest returns the point of pts closest to p
func nearest(pts []world.Point, p world.Point) world.Point {
	best := pts[0]
	for _, q := range pts[1:] {
		if q.Manhattan(p) < best.Manhattan(p) {
			best = q
		}
	}
	return best
}

// buildingChance is the percent chance of each building at coord. The
// starting map always has both; they grow rarer toward the world edge.
func (g *Overworld) buildingChance(coord gameworld.Coord) int {
	d := coord.DistanceFromOrigin()
	if d == 0 {
		return 100
	}
	chance := 50 - 45*d/g.radius
	if chance < 5 {
		chance = 5
	}
	return chance
}

// placeBuildings puts a mart and a center next to the road
func (g *Overworld) placeBuildings(m *gameworld.Map, skeleton []world.Point) {
	if len(skeleton) == 0 {
		return
	}
	chance := g.buildingChance(m.Coord)
	for _, t := range []terrain.Terrain{terrain.Mart, terrain.Center} {
		if !g.percent(chance) {
			continue
		}
		if !g.placeBuilding(m, skeleton, t) {
			g.log.Debug("no room for building",
				zap.Stringer("coord", m.Coord),
				zap.Stringer("building", t))
		}
	}
}

// placeBuilding puts a 2x2 block of t beside a road cell, joined to it by a
// connector cell.
func (g *Overworld) placeBuilding(m *gameworld.Map, skeleton []world.Point, t terrain.Terrain) bool {
	for attempt := 0; attempt < buildingAttempts; attempt++ {
		road := skeleton[g.rng.Intn(len(skeleton))]
		d := world.RandomDirection(g.rng, world.CardinalDirections())
		side := world.East
		if d == world.East || d == world.West {
			side = world.South
		}

		conn := road.Step(d)
		base := conn.Step(d)
		block := []world.Point{base, base.Step(side), base.Step(d), base.Step(d).Step(side)}
		if !g.buildable(m, conn) {
			continue
		}
		ok := true
		for _, p := range block {
			if !g.buildable(m, p) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		m.Terrain.Set(conn, terrain.Connector)
		for _, p := range block {
			m.Terrain.Set(p, t)
		}
		return true
	}
	return false
}

// buildable reports whether p can be covered by a building or connector
func (g *Overworld) buildable(m *gameworld.Map, p world.Point) bool {
	if !g.interior(m, p) {
		return false
	}
	switch m.Terrain.At(p) {
	case terrain.Path, terrain.Gate, terrain.Mart, terrain.Center, terrain.Connector:
		return false
	}
	return true
}

// connectGates checks that the player can walk between every pair of gates
// and carves a straight path to any gate that cannot be reached.
func (g *Overworld) connectGates(m *gameworld.Map) {
	gates := m.GatePoints()
	if len(gates) < 2 {
		return
	}
	pcCost := func(p world.Point) int {
		return g.costs.Cost(terrain.PC, m.Terrain.At(p))
	}
	f := pathfind.Dijkstra(m.Cols(), m.Rows(), []world.Point{gates[0].Point}, pcCost, world.FourWay, nil)
	hub := gameworld.Inward(gates[0].Edge, gates[0].Point)
	for _, gate := range gates[1:] {
		if f.Reachable(gate.Point) {
			continue
		}
		g.log.Warn("gate unreachable, carving fallback path",
			zap.Stringer("coord", m.Coord),
			zap.Stringer("gate", gate.Edge))
		g.carve(m, hub, gameworld.Inward(gate.Edge, gate.Point))
	}
}
