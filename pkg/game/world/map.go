// Package world holds generated maps and the sparse world grid that owns them.
package world

import (
	"errors"
	"fmt"

	"overworld/pkg/engine/world"
	"overworld/pkg/game/actor"
	"overworld/pkg/game/terrain"
)

var (
	// ErrInconsistent marks a broken occupancy/queue invariant. It is never recoverable.
	ErrInconsistent = errors.New("turn queue and occupancy disagree")
	// ErrCellTaken is returned when placing an actor on an occupied cell
	ErrCellTaken = errors.New("cell already occupied")
)

// Coord is a map's position in the world grid. (0,0) is the starting map;
// north is -Y.
type Coord struct {
	X, Y int
}

// Neighbor returns the coordinate across edge e
func (c Coord) Neighbor(e Edge) Coord {
	dx, dy := e.Delta()
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// DistanceFromOrigin is the Manhattan distance to the starting map
func (c Coord) DistanceFromOrigin() int {
	return world.Pt(c.X, c.Y).Manhattan(world.Pt(0, 0))
}

func (c Coord) String() string {
	ns, ew := 'N', 'E'
	y, x := -c.Y, c.X
	if y < 0 {
		ns, y = 'S', -y
	}
	if x < 0 {
		ew, x = 'W', -x
	}
	return fmt.Sprintf("%d%cx%d%c", x, ew, y, ns)
}

// GateAt is a gate's edge and cell
type GateAt struct {
	Edge  Edge
	Point world.Point
}

// Map is one generated screen of the world.
type Map struct {
	Coord       Coord
	Terrain     *world.Grid[terrain.Terrain]
	Height      *world.Grid[uint8]
	Gates       Gates
	NumTrainers int
	Turns       *TurnQueue

	occupants *world.Grid[*actor.Actor]
}

// NewMap creates an empty map of short grass with no gates and no actors
func NewMap(coord Coord, cols, rows int) *Map {
	m := &Map{
		Coord:     coord,
		Terrain:   world.NewGrid[terrain.Terrain](cols, rows),
		Height:    world.NewGrid[uint8](cols, rows),
		Gates:     NoGates,
		Turns:     NewTurnQueue(),
		occupants: world.NewGrid[*actor.Actor](cols, rows),
	}
	m.Terrain.Fill(terrain.ShortGrass)
	return m
}

// Cols returns the map width
func (m *Map) Cols() int {
	return m.Terrain.Cols()
}

// Rows returns the map height
func (m *Map) Rows() int {
	return m.Terrain.Rows()
}

// InBounds reports whether p lies on the map
func (m *Map) InBounds(p world.Point) bool {
	return m.Terrain.IsValidPosition(p)
}

// TerrainAt returns the terrain at p, or terrain.Debug off the map
func (m *Map) TerrainAt(p world.Point) terrain.Terrain {
	if !m.InBounds(p) {
		return terrain.Debug
	}
	return m.Terrain.At(p)
}

// ActorAt returns the actor standing on p, or nil
func (m *Map) ActorAt(p world.Point) *actor.Actor {
	return m.occupants.At(p)
}

// GatePoints lists the map's gates in routing order
func (m *Map) GatePoints() []GateAt {
	var gates []GateAt
	for _, e := range GateEdges {
		if off := m.Gates.Get(e); off >= 0 {
			gates = append(gates, GateAt{Edge: e, Point: GatePoint(e, off, m.Cols(), m.Rows())})
		}
	}
	return gates
}

// GateEdgeAt returns the edge whose gate is at p
func (m *Map) GateEdgeAt(p world.Point) (Edge, bool) {
	for _, g := range m.GatePoints() {
		if g.Point == p {
			return g.Edge, true
		}
	}
	return 0, false
}

// Place puts a on the occupancy grid at a.Pos without queuing it
func (m *Map) Place(a *actor.Actor) error {
	if !m.InBounds(a.Pos) {
		return fmt.Errorf("placing %v: position off the map", a)
	}
	if occ := m.ActorAt(a.Pos); occ != nil {
		return fmt.Errorf("placing %v: %w by %v", a, ErrCellTaken, occ)
	}
	m.occupants.Set(a.Pos, a)
	return nil
}

// Spawn places a and queues its turns. Trainers count toward NumTrainers.
func (m *Map) Spawn(a *actor.Actor) error {
	if err := m.Place(a); err != nil {
		return err
	}
	m.Turns.Push(a)
	if !a.IsPlayer() {
		m.NumTrainers++
	}
	return nil
}

// Move relocates a to an empty cell. The caller has validated the move.
func (m *Map) Move(a *actor.Actor, to world.Point) {
	if m.ActorAt(a.Pos) != a {
		panic(fmt.Errorf("%w: %v is not at its own position", ErrInconsistent, a))
	}
	if occ := m.ActorAt(to); occ != nil {
		panic(fmt.Errorf("%w: moving %v onto %v", ErrInconsistent, a, occ))
	}
	m.occupants.Set(a.Pos, nil)
	m.occupants.Set(to, a)
	a.Pos = to
}

// Remove takes a off the occupancy grid and out of the queue
func (m *Map) Remove(a *actor.Actor) {
	if m.ActorAt(a.Pos) == a {
		m.occupants.Set(a.Pos, nil)
	}
	m.Turns.Remove(a)
	if !a.IsPlayer() {
		m.NumTrainers--
	}
}

// Actors returns every actor on the map in row-major order
func (m *Map) Actors() []*actor.Actor {
	var out []*actor.Actor
	m.occupants.ForEachCell(func(_ world.Point, a *actor.Actor) {
		if a != nil {
			out = append(out, a)
		}
	})
	return out
}

// Trainers returns every non-player actor on the map in row-major order
func (m *Map) Trainers() []*actor.Actor {
	var out []*actor.Actor
	for _, a := range m.Actors() {
		if !a.IsPlayer() {
			out = append(out, a)
		}
	}
	return out
}

// Validate checks that the occupancy grid and the turn queue hold the same
// actors. dispatching is the actor currently out of the queue for its turn,
// or nil between turns.
func (m *Map) Validate(dispatching *actor.Actor) error {
	onGrid := 0
	var err error
	m.occupants.ForEachCell(func(p world.Point, a *actor.Actor) {
		if a == nil || err != nil {
			return
		}
		onGrid++
		switch {
		case a.Pos != p:
			err = fmt.Errorf("%w: %v recorded at %v", ErrInconsistent, a, p)
		case a != dispatching && !m.Turns.Has(a):
			err = fmt.Errorf("%w: %v on the map but not queued", ErrInconsistent, a)
		}
	})
	if err != nil {
		return err
	}

	queued := 0
	m.Turns.Each(func(a *actor.Actor) {
		queued++
		if err == nil && m.ActorAt(a.Pos) != a {
			err = fmt.Errorf("%w: %v queued but not on the map", ErrInconsistent, a)
		}
	})
	if err != nil {
		return err
	}
	if dispatching != nil && m.ActorAt(dispatching.Pos) == dispatching {
		queued++
	}
	if queued != onGrid {
		return fmt.Errorf("%w: %d actors on the map, %d scheduled", ErrInconsistent, onGrid, queued)
	}
	return nil
}
