// Package movement decides where trainers go on their turn. There is one
// Policy per archetype; the player has none.
package movement

import (
	"math/rand"

	"overworld/pkg/engine/world"
	"overworld/pkg/game/actor"
	"overworld/pkg/game/pathfind"
	"overworld/pkg/game/terrain"
	gameworld "overworld/pkg/game/world"
)

// View is what a policy may look at when choosing a move
type View struct {
	Map    *gameworld.Map
	Fields *pathfind.Fields
	Costs  *terrain.CostTable
	Conn   world.Connectivity
	Rand   *rand.Rand
	// ExplorerTurnProb is the percent chance an explorer turns while unblocked
	ExplorerTurnProb int
}

// Policy picks an actor's destination. Returning the actor's own position
// means it holds. Policies may update the actor's heading.
type Policy interface {
	Next(v View, a *actor.Actor) world.Point
}

// For returns the policy governing archetype arch, or nil for the player
func For(arch actor.Archetype) Policy {
	switch arch {
	case actor.Sentry:
		return Sentry{}
	case actor.Rival:
		return Pursuer{Field: RivalField}
	case actor.Hiker:
		return Pursuer{Field: HikerField}
	case actor.Pacer:
		return Pacer{}
	case actor.Wanderer:
		return Wanderer{}
	case actor.Explorer:
		return Explorer{}
	case actor.Swimmer:
		return Swimmer{}
	default:
		return nil
	}
}

// passable reports whether a's category can enter p
func passable(v View, a *actor.Actor, p world.Point) bool {
	return v.Map.InBounds(p) && v.Costs.Passable(a.Category, v.Map.TerrainAt(p))
}

// open reports whether a can walk onto p without meeting anyone
func open(v View, a *actor.Actor, p world.Point) bool {
	return passable(v, a, p) && v.Map.ActorAt(p) == nil
}

// Sentry never moves
type Sentry struct{}

// Next holds position
func (Sentry) Next(_ View, a *actor.Actor) world.Point {
	return a.Pos
}
