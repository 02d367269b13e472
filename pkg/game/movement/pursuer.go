package movement

import (
	"overworld/pkg/engine/world"
	"overworld/pkg/game/actor"
	"overworld/pkg/game/pathfind"
)

// FieldKind selects which of the world's distance fields a pursuer follows
type FieldKind uint8

const (
	// RivalField prefers paths
	RivalField FieldKind = iota
	// HikerField cuts through rough terrain
	HikerField
)

// Pursuer walks downhill on a distance field toward the player.
type Pursuer struct {
	Field FieldKind
}

func (p Pursuer) field(v View) *pathfind.Field {
	if v.Fields == nil {
		return nil
	}
	if p.Field == HikerField {
		return v.Fields.Hiker
	}
	return v.Fields.Rival
}

// Next picks the neighbor with the smallest field value strictly below the
// current cell's. Ties go to the first neighbor in scan order. The player's
// cell is a candidate unless a is defeated; other occupied cells are not.
func (p Pursuer) Next(v View, a *actor.Actor) world.Point {
	f := p.field(v)
	if f == nil {
		return a.Pos
	}
	best, bestDist := a.Pos, f.At(a.Pos)
	for _, d := range v.Conn.Directions() {
		q := a.Pos.Step(d)
		if !passable(v, a, q) {
			continue
		}
		if occ := v.Map.ActorAt(q); occ != nil && (a.Defeated || !occ.Opposes(a)) {
			continue
		}
		if dist := f.At(q); dist < bestDist {
			best, bestDist = q, dist
		}
	}
	return best
}
