// Package generator builds overworld maps: terrain regions, clustered
// features, gate-to-gate paths, buildings and the initial trainers.
package generator

import (
	"math/rand"

	"go.uber.org/zap"

	"overworld/pkg/engine/world"
	"overworld/pkg/game/actor"
	"overworld/pkg/game/config"
	"overworld/pkg/game/terrain"
	gameworld "overworld/pkg/game/world"
)

// Overworld is the terrain generator for every map of the world.
type Overworld struct {
	cols, rows int
	radius     int
	features   config.GenerationConfig
	trainers   config.TrainerConfig
	costs      *terrain.CostTable
	rng        *rand.Rand
	seq        *actor.Sequence
	log        *zap.Logger
}

var _ gameworld.Generator = (*Overworld)(nil)

// New creates a generator drawing from rng and numbering trainers from seq.
// The generator shares both with the rest of the game.
func New(cfg config.Config, costs *terrain.CostTable, rng *rand.Rand, seq *actor.Sequence, log *zap.Logger) *Overworld {
	if log == nil {
		log = zap.NewNop()
	}
	return &Overworld{
		cols:     cfg.Map.Width,
		rows:     cfg.Map.Height,
		radius:   cfg.World.Radius,
		features: cfg.Generation,
		trainers: cfg.Trainers,
		costs:    costs,
		rng:      rng,
		seq:      seq,
		log:      log,
	}
}

// Name returns the name of this generator
func (g *Overworld) Name() string {
	return "overworld"
}

// Generate creates the map at coord. Constrained gates are copied as given,
// GateNone edges stay closed and GateAny edges get a fresh offset.
func (g *Overworld) Generate(coord gameworld.Coord, gates gameworld.GateConstraints) *gameworld.Map {
	m := gameworld.NewMap(coord, g.cols, g.rows)

	g.makeHeight(m)
	g.makeRegions(m)
	g.makeBorder(m)
	g.placeFeature(m, terrain.Boulder, g.features.MinBoulders, g.features.BoulderProb)
	g.placeFeature(m, terrain.Tree, g.features.MinTrees, g.features.TreeProb)
	g.placeGates(m, gates)
	skeleton := g.layPaths(m)
	g.placeBuildings(m, skeleton)
	g.connectGates(m)
	g.populate(m)

	return m
}

// interior reports whether p is inside the cliff ring
func (g *Overworld) interior(m *gameworld.Map, p world.Point) bool {
	return m.Terrain.IsPlayablePosition(p)
}

// randomInterior returns a uniformly chosen cell inside the cliff ring
func (g *Overworld) randomInterior(m *gameworld.Map) world.Point {
	return world.Pt(1+g.rng.Intn(m.Cols()-2), 1+g.rng.Intn(m.Rows()-2))
}

// percent rolls a d100 against p
func (g *Overworld) percent(p int) bool {
	return g.rng.Intn(100) < p
}
