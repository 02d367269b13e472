package pathfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"
	"pgregory.net/rapid"

	"overworld/pkg/engine/world"
	"overworld/pkg/game/terrain"
)

func uniformGrid(cols, rows int, t terrain.Terrain) *world.Grid[terrain.Terrain] {
	g := world.NewGrid[terrain.Terrain](cols, rows)
	g.Fill(t)
	return g
}

func TestCompute_UniformGridIsScaledManhattan(t *testing.T) {
	g := uniformGrid(5, 5, terrain.ShortGrass)
	src := world.Pt(2, 2)
	f := Compute(g, src, terrain.Rival, terrain.DefaultCosts(), world.FourWay)

	g.ForEachCell(func(p world.Point, _ terrain.Terrain) {
		assert.Equal(t, 10*p.Manhattan(src), f.At(p), "cell %v", p)
	})
	assert.Equal(t, src, f.Source())
}

func TestCompute_EightWayUsesDiagonals(t *testing.T) {
	g := uniformGrid(5, 5, terrain.ShortGrass)
	f := Compute(g, world.Pt(0, 0), terrain.Rival, terrain.DefaultCosts(), world.EightWay)
	assert.Equal(t, 40, f.At(world.Pt(4, 4)))
}

func TestCompute_WallLeavesSentinel(t *testing.T) {
	// column 2 is solid rock: the right side is cut off
	g := uniformGrid(5, 3, terrain.ShortGrass)
	for y := 0; y < 3; y++ {
		g.Set(world.Pt(2, y), terrain.Boulder)
	}
	f := Compute(g, world.Pt(0, 1), terrain.PC, terrain.DefaultCosts(), world.EightWay)

	assert.True(t, f.Reachable(world.Pt(1, 1)))
	assert.Equal(t, terrain.Infinity, f.At(world.Pt(2, 1)))
	assert.Equal(t, terrain.Infinity, f.At(world.Pt(4, 2)))
	assert.Nil(t, f.PathTo(world.Pt(4, 2)))
	assert.Equal(t, terrain.Infinity, f.At(world.Pt(-1, 0)), "out of bounds reads as unreachable")
}

func TestCompute_SourceOnImpassableTerrainIsZero(t *testing.T) {
	g := uniformGrid(3, 3, terrain.ShortGrass)
	g.Set(world.Pt(1, 1), terrain.Gate)
	f := Compute(g, world.Pt(1, 1), terrain.Rival, terrain.DefaultCosts(), world.FourWay)
	assert.Equal(t, 0, f.At(world.Pt(1, 1)))
	assert.Equal(t, 10, f.At(world.Pt(1, 0)))
}

func TestCompute_SwimmerOnlyCrossesWater(t *testing.T) {
	g := uniformGrid(6, 1, terrain.Water)
	g.Set(world.Pt(3, 0), terrain.Path)
	f := Compute(g, world.Pt(0, 0), terrain.Swimmer, terrain.DefaultCosts(), world.FourWay)
	assert.Equal(t, 14, f.At(world.Pt(2, 0)))
	assert.False(t, f.Reachable(world.Pt(4, 0)))
}

func TestDijkstra_StopsAtTarget(t *testing.T) {
	g := uniformGrid(9, 9, terrain.ShortGrass)
	target := world.Pt(1, 0)
	cost := func(p world.Point) int { return 1 }
	f := Dijkstra(g.Cols(), g.Rows(), []world.Point{world.Pt(0, 0)}, cost, world.FourWay, func(p world.Point) bool {
		return p == target
	})
	assert.Equal(t, 1, f.At(target))
	assert.False(t, f.Reachable(world.Pt(8, 8)), "far cells are never touched after an early stop")
	assert.Equal(t, []world.Point{world.Pt(0, 0), target}, f.PathTo(target))
}

func TestDijkstra_MultiSourceTakesNearest(t *testing.T) {
	cost := func(p world.Point) int { return 1 }
	f := Dijkstra(7, 1, []world.Point{world.Pt(0, 0), world.Pt(6, 0)}, cost, world.FourWay, nil)
	assert.Equal(t, 3, f.At(world.Pt(3, 0)))
	assert.Equal(t, 1, f.At(world.Pt(5, 0)))
	path := f.PathTo(world.Pt(5, 0))
	require.Len(t, path, 2)
	assert.Equal(t, world.Pt(6, 0), path[0])
}

func TestDijkstra_DeterministicTies(t *testing.T) {
	g := uniformGrid(8, 8, terrain.ShortGrass)
	a := Compute(g, world.Pt(0, 0), terrain.PC, terrain.DefaultCosts(), world.EightWay)
	b := Compute(g, world.Pt(0, 0), terrain.PC, terrain.DefaultCosts(), world.EightWay)
	assert.Equal(t, a.PathTo(world.Pt(7, 3)), b.PathTo(world.Pt(7, 3)))
}

var sampleTerrain = []terrain.Terrain{
	terrain.ShortGrass, terrain.TallGrass, terrain.Path, terrain.Mountain,
	terrain.Forest, terrain.Water, terrain.Boulder, terrain.Mart,
}

// reachableFinite is a plain BFS over cells the category can enter.
func reachableFinite(g *world.Grid[terrain.Terrain], src world.Point, cat terrain.Category, costs *terrain.CostTable, conn world.Connectivity) mapset.Set[world.Point] {
	seen := mapset.New[world.Point]()
	seen.Put(src)
	queue := []world.Point{src}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range conn.Directions() {
			q := p.Step(d)
			if !g.IsValidPosition(q) || seen.Has(q) || !costs.Passable(cat, g.At(q)) {
				continue
			}
			seen.Put(q)
			queue = append(queue, q)
		}
	}
	return seen
}

func TestPropertyDistanceField(t *testing.T) {
	costs := terrain.DefaultCosts()
	rapid.Check(t, func(t *rapid.T) {
		cols := rapid.IntRange(1, 12).Draw(t, "cols")
		rows := rapid.IntRange(1, 12).Draw(t, "rows")
		g := world.NewGrid[terrain.Terrain](cols, rows)
		for i := 0; i < g.Len(); i++ {
			g.Set(g.PointAt(i), rapid.SampledFrom(sampleTerrain).Draw(t, "terrain"))
		}
		src := world.Pt(rapid.IntRange(0, cols-1).Draw(t, "sx"), rapid.IntRange(0, rows-1).Draw(t, "sy"))
		cat := rapid.SampledFrom([]terrain.Category{terrain.Rival, terrain.Hiker, terrain.Swimmer}).Draw(t, "cat")
		conn := rapid.SampledFrom([]world.Connectivity{world.FourWay, world.EightWay}).Draw(t, "conn")

		f := Compute(g, src, cat, costs, conn)
		reach := reachableFinite(g, src, cat, costs, conn)

		g.ForEachCell(func(p world.Point, ter terrain.Terrain) {
			d := f.At(p)
			if reach.Has(p) != (d < terrain.Infinity) {
				t.Fatalf("cell %v: reachable=%v but distance %d", p, reach.Has(p), d)
			}
			if d == terrain.Infinity || p == src {
				return
			}
			// every finite distance is realised by a neighbor plus the cost of entering p
			realised := false
			for _, dir := range conn.Directions() {
				u := p.Step(dir)
				du := f.At(u)
				if du == terrain.Infinity {
					continue
				}
				if du+costs.Cost(cat, ter) < d {
					t.Fatalf("cell %v: distance %d beaten via %v (%d)", p, d, u, du)
				}
				if du+costs.Cost(cat, ter) == d {
					realised = true
				}
			}
			if !realised {
				t.Fatalf("cell %v: distance %d has no predecessor", p, d)
			}
			// values never decrease along the shortest route from the source
			path := f.PathTo(p)
			if path[0] != src || path[len(path)-1] != p {
				t.Fatalf("path to %v does not run from the source: %v", p, path)
			}
			for i := 1; i < len(path); i++ {
				if f.At(path[i]) < f.At(path[i-1]) {
					t.Fatalf("distance decreases along route %v", path)
				}
			}
		})
	})
}

func TestFields_EnsureRecomputesOnlyWhenNeeded(t *testing.T) {
	g := uniformGrid(6, 6, terrain.ShortGrass)
	f := NewFields(terrain.DefaultCosts(), world.EightWay)
	require.False(t, f.Valid())

	f.Ensure(g, world.Pt(1, 1))
	require.True(t, f.Valid())
	assert.Equal(t, 1, f.Recomputes())
	assert.Equal(t, 0, f.Rival.At(world.Pt(1, 1)))
	assert.Equal(t, 0, f.Hiker.At(world.Pt(1, 1)))

	f.Ensure(g, world.Pt(1, 1))
	assert.Equal(t, 1, f.Recomputes(), "same reference and grid is a cache hit")

	f.Ensure(g, world.Pt(2, 1))
	assert.Equal(t, 2, f.Recomputes(), "moving the reference recomputes")

	f.Invalidate()
	f.Ensure(g, world.Pt(2, 1))
	assert.Equal(t, 3, f.Recomputes(), "invalidation recomputes")

	other := uniformGrid(6, 6, terrain.ShortGrass)
	f.Ensure(other, world.Pt(2, 1))
	assert.Equal(t, 4, f.Recomputes(), "a different map recomputes")
}

func TestFields_RivalAndHikerDiffer(t *testing.T) {
	// a forest strip separates the player from the right half
	g := uniformGrid(7, 3, terrain.ShortGrass)
	for y := 0; y < 3; y++ {
		g.Set(world.Pt(3, y), terrain.Forest)
	}
	f := NewFields(terrain.DefaultCosts(), world.FourWay)
	f.Ensure(g, world.Pt(0, 1))
	assert.False(t, f.Rival.Reachable(world.Pt(6, 1)), "rivals do not cross forest")
	assert.True(t, f.Hiker.Reachable(world.Pt(6, 1)), "hikers do")
}
