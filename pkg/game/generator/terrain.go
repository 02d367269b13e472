package generator

import (
	"overworld/pkg/engine/world"
	"overworld/pkg/game/terrain"
	gameworld "overworld/pkg/game/world"
)

const (
	blurPasses   = 3
	maxExtraSeed = 3
)

// regionSeeds are the regions every map starts from
var regionSeeds = []terrain.Terrain{
	terrain.TallGrass, terrain.TallGrass,
	terrain.ShortGrass, terrain.ShortGrass,
	terrain.Mountain, terrain.Forest, terrain.Water,
}

// extraSeeds are drawn for the optional additional regions
var extraSeeds = []terrain.Terrain{
	terrain.TallGrass, terrain.ShortGrass, terrain.Mountain, terrain.Forest, terrain.Water,
}

// makeHeight fills the height grid with smoothed noise
func (g *Overworld) makeHeight(m *gameworld.Map) {
	h := m.Height
	for i := 0; i < h.Len(); i++ {
		h.Set(h.PointAt(i), uint8(g.rng.Intn(256)))
	}
	for pass := 0; pass < blurPasses; pass++ {
		src := h.Clone()
		h.ForEachCell(func(p world.Point, _ uint8) {
			sum, n := 0, 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					q := p.Add(dx, dy)
					if src.IsValidPosition(q) {
						sum += int(src.At(q))
						n++
					}
				}
			}
			h.Set(p, uint8(sum/n))
		})
	}
}

// makeRegions grows the seeded regions until they cover the interior
func (g *Overworld) makeRegions(m *gameworld.Map) {
	m.Terrain.Fill(terrain.Debug)

	seeds := append([]terrain.Terrain(nil), regionSeeds...)
	for i := g.rng.Intn(maxExtraSeed + 1); i > 0; i-- {
		seeds = append(seeds, extraSeeds[g.rng.Intn(len(extraSeeds))])
	}

	var frontier []world.Point
	for _, t := range seeds {
		p := g.randomInterior(m)
		if m.Terrain.At(p) != terrain.Debug {
			continue
		}
		m.Terrain.Set(p, t)
		frontier = append(frontier, p)
	}

	for len(frontier) > 0 {
		i := g.rng.Intn(len(frontier))
		p := frontier[i]
		frontier[i] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		t := m.Terrain.At(p)
		for _, d := range world.CardinalDirections() {
			q := p.Step(d)
			if !g.interior(m, q) || m.Terrain.At(q) != terrain.Debug {
				continue
			}
			m.Terrain.Set(q, t)
			frontier = append(frontier, q)
		}
	}
}

// makeBorder rings the map with cliffs
func (g *Overworld) makeBorder(m *gameworld.Map) {
	m.Terrain.ForEachCell(func(p world.Point, _ terrain.Terrain) {
		if m.Terrain.IsOnPerimeter(p) {
			m.Terrain.Set(p, terrain.Cliff)
		}
	})
}

// placeFeature scatters clusters of t over grass. Placement continues while
// fewer than min cells are placed, then with prob percent per step.
func (g *Overworld) placeFeature(m *gameworld.Map, t terrain.Terrain, min, prob int) {
	budget := 4 * m.Terrain.Len()
	cur := g.randomInterior(m)
	placed := 0
	for step := 0; step < budget && (placed < min || g.percent(prob)); step++ {
		if g.rng.Intn(4) == 0 {
			cur = g.randomInterior(m)
		} else if next := cur.Step(world.RandomDirection(g.rng, world.CardinalDirections())); g.interior(m, next) {
			cur = next
		} else {
			cur = g.randomInterior(m)
		}
		if m.Terrain.At(cur).IsGrass() {
			m.Terrain.Set(cur, t)
			placed++
		}
	}
}
