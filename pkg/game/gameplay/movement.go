package gameplay

import (
	"overworld/pkg/engine/world"
	"overworld/pkg/game/actor"
	"overworld/pkg/game/state"
	"overworld/pkg/game/terrain"
)

// CanEnter checks whether a could walk onto dest of the active map, ignoring
// any actor standing there. It returns the entering cost.
func CanEnter(g *state.Game, a *actor.Actor, dest world.Point) (int, error) {
	m := g.Map()
	if !m.InBounds(dest) {
		return 0, ErrOutOfBounds
	}
	cost := g.Costs.Cost(a.Category, m.TerrainAt(dest))
	if cost >= terrain.Infinity {
		return 0, ErrImpassable
	}
	return max(cost, 1), nil
}

// Resolve carries out a's move to dest on the active map and returns the time
// it took. Holding costs the idle time. Running into an undefeated opponent
// starts a battle in place of the move. Refused moves return an error and
// leave everything unchanged.
func Resolve(g *state.Game, b Battle, a *actor.Actor, dest world.Point) (int, error) {
	if dest == a.Pos {
		return g.IdleCost(), nil
	}
	m := g.Map()
	if !m.InBounds(dest) {
		return 0, ErrOutOfBounds
	}
	if occ := m.ActorAt(dest); occ != nil {
		trainer := occ
		if !a.IsPlayer() {
			trainer = a
		}
		if !occ.Opposes(a) || trainer.Defeated {
			return 0, ErrOccupied
		}
		ResolveBattle(g, b, a, occ)
		return g.IdleCost(), nil
	}
	cost, err := CanEnter(g, a, dest)
	if err != nil {
		return 0, err
	}
	m.Move(a, dest)
	return cost, nil
}

// ApplyPlayer carries out the player's command and returns the time it took.
// The player may end up on another map; the caller requeues the player on
// whichever map is active afterwards.
func ApplyPlayer(g *state.Game, b Battle, cmd Command) (int, error) {
	p := g.Player
	switch c := cmd.(type) {
	case Rest:
		return g.IdleCost(), nil

	case Quit:
		g.Quit = true
		return g.IdleCost(), nil

	case MoveTo:
		if c.Dest != p.Pos && !p.Pos.IsNeighbor(c.Dest, g.Connectivity()) {
			return 0, ErrNotAdjacent
		}
		if e, ok := g.Map().GateEdgeAt(c.Dest); ok && g.Map().ActorAt(c.Dest) == nil {
			cost, err := CanEnter(g, p, c.Dest)
			if err != nil {
				return 0, err
			}
			if err := CrossGate(g, e); err != nil {
				return 0, err
			}
			return cost, nil
		}
		before := p.Pos
		cost, err := Resolve(g, b, p, c.Dest)
		if err != nil {
			return 0, err
		}
		if p.Pos != before && g.Map().TerrainAt(p.Pos) == terrain.TallGrass &&
			g.Rand.Intn(100) < g.Config.Movement.EncounterProb {
			logMessage(g, "A wild creature appears!")
			b.Encounter(p)
		}
		return cost, nil

	case Teleport:
		if err := JumpLocal(g, c.Dest, c.Random); err != nil {
			return 0, err
		}
		return g.IdleCost(), nil

	case TeleportWorld:
		if err := JumpWorld(g, c.Coord); err != nil {
			return 0, err
		}
		return g.IdleCost(), nil

	default:
		return 0, ErrMoveRefused
	}
}
