package world

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"overworld/pkg/engine/world"
	"overworld/pkg/game/pathfind"
)

// ErrOutOfWorld is returned for coordinates beyond the world radius
var ErrOutOfWorld = errors.New("coordinate outside the world")

// Generator builds the map at coord, honoring the gate constraints
type Generator interface {
	Generate(coord Coord, gates GateConstraints) *Map
	Name() string
}

// World is the sparse grid of every map generated this session. Maps are
// created on first visit and never evicted.
type World struct {
	maps   map[Coord]*Map
	radius int
	gen    Generator
	fields *pathfind.Fields
	log    *zap.Logger

	cur    Coord
	active *Map
}

// New creates an empty world of the given radius: coordinates run from
// -radius to radius on both axes.
func New(gen Generator, radius int, fields *pathfind.Fields, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		maps:   make(map[Coord]*Map),
		radius: radius,
		gen:    gen,
		fields: fields,
		log:    log,
	}
}

// Radius returns the world radius
func (w *World) Radius() int {
	return w.radius
}

// Contains reports whether c lies inside the world
func (w *World) Contains(c Coord) bool {
	return c.X >= -w.radius && c.X <= w.radius && c.Y >= -w.radius && c.Y <= w.radius
}

// Lookup returns the map at c if it has been generated
func (w *World) Lookup(c Coord) (*Map, bool) {
	m, ok := w.maps[c]
	return m, ok
}

// Len returns the number of generated maps
func (w *World) Len() int {
	return len(w.maps)
}

// Coords returns every generated coordinate, sorted north to south then west to east
func (w *World) Coords() []Coord {
	coords := make([]Coord, 0, len(w.maps))
	for c := range w.maps {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})
	return coords
}

// Fields returns the world-scoped distance fields
func (w *World) Fields() *pathfind.Fields {
	return w.fields
}

// Constraints derives the gate constraints for c from its generated
// neighbors. Edges facing out of the world never get a gate.
func (w *World) Constraints(c Coord) GateConstraints {
	gc := Unconstrained
	for _, e := range GateEdges {
		n := c.Neighbor(e)
		switch {
		case !w.Contains(n):
			gc.Set(e, GateNone)
		default:
			if m, ok := w.maps[n]; ok {
				gc.Set(e, m.Gates.Get(e.Opposite()))
			}
		}
	}
	return gc
}

// GetOrCreate returns the map at c, generating it on first visit. Revisits
// return the stored map unchanged.
func (w *World) GetOrCreate(c Coord) (*Map, error) {
	if !w.Contains(c) {
		return nil, fmt.Errorf("map %v: %w", c, ErrOutOfWorld)
	}
	if m, ok := w.maps[c]; ok {
		return m, nil
	}

	gc := w.Constraints(c)
	m := w.gen.Generate(c, gc)
	m.Coord = c
	w.maps[c] = m

	w.log.Debug("generated map",
		zap.Stringer("coord", c),
		zap.String("generator", w.gen.Name()),
		zap.Int("gateN", m.Gates.N),
		zap.Int("gateS", m.Gates.S),
		zap.Int("gateE", m.Gates.E),
		zap.Int("gateW", m.Gates.W),
		zap.Int("trainers", m.NumTrainers),
	)
	return m, nil
}

// SetActive makes the map at c current, generating it if needed, and
// invalidates the distance fields.
func (w *World) SetActive(c Coord) (*Map, error) {
	m, err := w.GetOrCreate(c)
	if err != nil {
		return nil, err
	}
	w.cur = c
	w.active = m
	if w.fields != nil {
		w.fields.Invalidate()
	}
	return m, nil
}

// Active returns the current map, or nil before the first SetActive
func (w *World) Active() *Map {
	return w.active
}

// ActiveCoord returns the coordinate of the current map
func (w *World) ActiveCoord() Coord {
	return w.cur
}

// RefreshFields brings the distance fields up to date for the active map
// measured from ref.
func (w *World) RefreshFields(ref world.Point) {
	if w.fields == nil || w.active == nil {
		return
	}
	w.fields.Ensure(w.active.Terrain, ref)
}
