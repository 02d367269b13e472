package generator

import (
	"go.uber.org/zap"

	"overworld/pkg/engine/world"
	"overworld/pkg/game/actor"
	"overworld/pkg/game/terrain"
	gameworld "overworld/pkg/game/world"
)

// nextArchetype picks the archetype of the n-th trainer on a map: a rival,
// then a hiker, then anything.
func (g *Overworld) nextArchetype(n int) actor.Archetype {
	switch n {
	case 0:
		return actor.Rival
	case 1:
		return actor.Hiker
	default:
		return actor.TrainerArchetypes[g.rng.Intn(len(actor.TrainerArchetypes))]
	}
}

// wantMore decides whether to add another trainer after count are placed
func (g *Overworld) wantMore(count int) bool {
	t := g.trainers
	if count >= t.Max {
		return false
	}
	if count < t.Min {
		return true
	}
	return g.percent(t.AddProb - t.ProbDecay*(count-t.Min))
}

// populate places the map's trainers
func (g *Overworld) populate(m *gameworld.Map) {
	for count := 0; g.wantMore(count); count++ {
		arch := g.nextArchetype(count)
		p, ok := g.findSpot(m, arch.Category())
		if !ok && arch == actor.Swimmer {
			arch = actor.Wanderer
			p, ok = g.findSpot(m, arch.Category())
		}
		if !ok {
			g.log.Debug("trainer placement budget exhausted",
				zap.Stringer("coord", m.Coord),
				zap.Int("placed", count))
			return
		}

		heading := world.RandomDirection(g.rng, world.CardinalDirections())
		t := actor.NewTrainer(arch, g.seq.Next(), p, heading)
		if err := m.Spawn(t); err != nil {
			panic(err)
		}
	}
}

// findSpot looks for a free interior cell a trainer of category c can stand on
func (g *Overworld) findSpot(m *gameworld.Map, c terrain.Category) (world.Point, bool) {
	for i := 0; i < g.trainers.PlacementAttempts; i++ {
		p := g.randomInterior(m)
		if m.ActorAt(p) != nil || !g.costs.Passable(c, m.Terrain.At(p)) {
			continue
		}
		return p, true
	}
	return world.Point{}, false
}
