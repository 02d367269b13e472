package movement

import (
	"overworld/pkg/engine/world"
	"overworld/pkg/game/actor"
	"overworld/pkg/game/terrain"
)

// Pacer walks back and forth along its heading.
type Pacer struct{}

// Next keeps the heading while the way is open. When blocked it turns
// around and steps the other way in the same turn, or holds if boxed in.
func (Pacer) Next(v View, a *actor.Actor) world.Point {
	if q := a.Pos.Step(a.Heading); open(v, a, q) {
		return q
	}
	a.Heading = a.Heading.Opposite()
	if q := a.Pos.Step(a.Heading); open(v, a, q) {
		return q
	}
	return a.Pos
}

// Wanderer keeps its heading while it stays on the terrain it started the
// turn on, and picks a new random heading when it cannot.
type Wanderer struct{}

// Next continues or turns
func (Wanderer) Next(v View, a *actor.Actor) world.Point {
	home := v.Map.TerrainAt(a.Pos)
	return walk(v, a, 0, func(q world.Point) bool {
		return open(v, a, q) && v.Map.TerrainAt(q) == home
	})
}

// Explorer is a wanderer that ignores terrain boundaries and sometimes turns
// for no reason.
type Explorer struct{}

// Next continues, turns at random, or reroutes when blocked
func (Explorer) Next(v View, a *actor.Actor) world.Point {
	return walk(v, a, v.ExplorerTurnProb, func(q world.Point) bool {
		return open(v, a, q)
	})
}

// Swimmer is a wanderer that never leaves the water.
type Swimmer struct{}

// Next continues or turns among water cells
func (Swimmer) Next(v View, a *actor.Actor) world.Point {
	return walk(v, a, 0, func(q world.Point) bool {
		return open(v, a, q) && v.Map.TerrainAt(q) == terrain.Water
	})
}

// walk is the shared random walk. With turnProb percent chance it turns to a
// random acceptable heading; otherwise it keeps going and only reroutes when
// the cell ahead is not acceptable.
func walk(v View, a *actor.Actor, turnProb int, ok func(world.Point) bool) world.Point {
	if turnProb > 0 && v.Rand.Intn(100) < turnProb {
		return turn(v, a, ok)
	}
	if q := a.Pos.Step(a.Heading); ok(q) {
		return q
	}
	return turn(v, a, ok)
}

// turn picks a random acceptable heading and steps along it, or holds
func turn(v View, a *actor.Actor, ok func(world.Point) bool) world.Point {
	var choices []world.Direction
	for _, d := range v.Conn.Directions() {
		if ok(a.Pos.Step(d)) {
			choices = append(choices, d)
		}
	}
	if len(choices) == 0 {
		return a.Pos
	}
	a.Heading = world.RandomDirection(v.Rand, choices)
	return a.Pos.Step(a.Heading)
}
