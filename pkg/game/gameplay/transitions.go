package gameplay

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"overworld/pkg/engine/world"
	"overworld/pkg/game/state"
	"overworld/pkg/game/terrain"
	gameworld "overworld/pkg/game/world"
)

// Start activates the map at coord and places the player on a random road
// cell, or any free cell the player can stand on. The player is queued.
func Start(g *state.Game, coord gameworld.Coord) error {
	m, err := g.World.SetActive(coord)
	if err != nil {
		return err
	}
	spot, ok := randomSpot(g, m, func(p world.Point) bool {
		return m.TerrainAt(p) == terrain.Path
	})
	if !ok {
		if spot, ok = randomSpot(g, m, nil); !ok {
			return fmt.Errorf("map %v: %w", coord, ErrOccupied)
		}
	}
	g.Player.Pos = spot
	if err := m.Place(g.Player); err != nil {
		return err
	}
	m.Turns.CatchUp(g.Player.NextTurn)
	m.Turns.Push(g.Player)
	g.Log.Info("player placed", zap.Stringer("coord", coord), zap.Stringer("pos", spot))
	return nil
}

// CrossGate moves the player through the gate on edge e of the active map.
// The player arrives just inside the matching gate of the neighbor, or at the
// nearest free cell if that one is taken.
func CrossGate(g *state.Game, e gameworld.Edge) error {
	coord := g.World.ActiveCoord().Neighbor(e)
	to, err := g.World.GetOrCreate(coord)
	if err != nil {
		if errors.Is(err, gameworld.ErrOutOfWorld) {
			return ErrOutOfWorld
		}
		return err
	}
	back := e.Opposite()
	off := to.Gates.Get(back)
	if off < 0 {
		return fmt.Errorf("map %v has no %v gate: %w", coord, back, gameworld.ErrInconsistent)
	}
	want := gameworld.Inward(back, gameworld.GatePoint(back, off, to.Cols(), to.Rows()))
	spot, ok := nearestFree(g, to, want)
	if !ok {
		return ErrOccupied
	}
	enterMap(g, coord, spot)
	logMessage(g, "You travel to %v.", coord)
	return nil
}

// JumpLocal teleports the player within the active map. A random jump picks
// any free cell the player could walk to from the rival field's source.
func JumpLocal(g *state.Game, dest world.Point, random bool) error {
	m := g.Map()
	if random {
		g.RefreshFields()
		rival := g.World.Fields().Rival
		spot, ok := randomSpot(g, m, func(p world.Point) bool {
			return rival == nil || rival.Reachable(p)
		})
		if !ok {
			return ErrImpassable
		}
		dest = spot
	} else {
		if _, err := CanEnter(g, g.Player, dest); err != nil {
			return err
		}
		if occ := m.ActorAt(dest); occ != nil && occ != g.Player {
			return ErrOccupied
		}
	}
	if dest != g.Player.Pos {
		m.Move(g.Player, dest)
	}
	return nil
}

// JumpWorld teleports the player to a random free cell of the map at coord
func JumpWorld(g *state.Game, coord gameworld.Coord) error {
	m, err := g.World.GetOrCreate(coord)
	if err != nil {
		if errors.Is(err, gameworld.ErrOutOfWorld) {
			return ErrOutOfWorld
		}
		return err
	}
	spot, ok := randomSpot(g, m, nil)
	if !ok {
		return ErrOccupied
	}
	if coord == g.World.ActiveCoord() {
		m.Move(g.Player, spot)
		return nil
	}
	enterMap(g, coord, spot)
	logMessage(g, "You teleport to %v.", coord)
	return nil
}

// enterMap takes the player off the active map and puts it at spot on the map
// at coord, which becomes active. Trainers frozen behind the player's clock
// are brought up to it. The player is not queued; it is mid-turn.
func enterMap(g *state.Game, coord gameworld.Coord, spot world.Point) {
	p := g.Player
	g.Map().Remove(p)

	m, err := g.World.SetActive(coord)
	if err != nil {
		panic(fmt.Errorf("%w: map %v vanished: %v", gameworld.ErrInconsistent, coord, err))
	}
	p.Pos = spot
	if err := m.Place(p); err != nil {
		panic(fmt.Errorf("%w: %v", gameworld.ErrInconsistent, err))
	}
	m.Turns.CatchUp(p.NextTurn)
	g.Log.Debug("entered map", zap.Stringer("coord", coord), zap.Stringer("pos", spot))
}

// standable reports whether the player may be put at p of m
func standable(g *state.Game, m *gameworld.Map, p world.Point) bool {
	if !m.Terrain.IsPlayablePosition(p) || m.ActorAt(p) != nil {
		return false
	}
	return g.Costs.Passable(g.Player.Category, m.TerrainAt(p))
}

// nearestFree finds the standable cell closest to want, searching outward in
// square rings.
func nearestFree(g *state.Game, m *gameworld.Map, want world.Point) (world.Point, bool) {
	limit := max(m.Cols(), m.Rows())
	for r := 0; r <= limit; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if max(abs(dx), abs(dy)) != r {
					continue
				}
				if p := want.Add(dx, dy); standable(g, m, p) {
					return p, true
				}
			}
		}
	}
	return world.Point{}, false
}

// randomSpot picks uniformly among the standable cells of m that satisfy
// extra (nil accepts all).
func randomSpot(g *state.Game, m *gameworld.Map, extra func(world.Point) bool) (world.Point, bool) {
	var spots []world.Point
	m.Terrain.ForEachPlayableCell(func(p world.Point, _ terrain.Terrain) {
		if standable(g, m, p) && (extra == nil || extra(p)) {
			spots = append(spots, p)
		}
	})
	if len(spots) == 0 {
		return world.Point{}, false
	}
	return spots[g.Rand.Intn(len(spots))], true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
