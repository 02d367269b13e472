package movement

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overworld/pkg/engine/world"
	"overworld/pkg/game/actor"
	"overworld/pkg/game/pathfind"
	"overworld/pkg/game/terrain"
	gameworld "overworld/pkg/game/world"
)

func newView(m *gameworld.Map, conn world.Connectivity) View {
	costs := terrain.DefaultCosts()
	return View{
		Map:    m,
		Fields: pathfind.NewFields(costs, conn),
		Costs:  costs,
		Conn:   conn,
		Rand:   rand.New(rand.NewSource(1)),
	}
}

// step applies a policy once and moves the actor if it chose to
func step(t *testing.T, v View, p Policy, a *actor.Actor) world.Point {
	t.Helper()
	next := p.Next(v, a)
	if next != a.Pos {
		require.True(t, a.Pos.IsNeighbor(next, v.Conn), "%v jumped to %v", a.Pos, next)
		v.Map.Move(a, next)
	}
	return next
}

func TestFor_CoversEveryTrainerArchetype(t *testing.T) {
	for _, arch := range actor.TrainerArchetypes {
		assert.NotNil(t, For(arch), "archetype %v", arch)
	}
	assert.Nil(t, For(actor.Controlled))
	assert.IsType(t, Pursuer{}, For(actor.Rival))
	assert.Equal(t, HikerField, For(actor.Hiker).(Pursuer).Field)
}

func TestSentry_Holds(t *testing.T) {
	m := gameworld.NewMap(gameworld.Coord{}, 5, 5)
	a := actor.NewTrainer(actor.Sentry, 1, world.Pt(2, 2), world.North)
	require.NoError(t, m.Spawn(a))
	v := newView(m, world.EightWay)
	for i := 0; i < 5; i++ {
		assert.Equal(t, world.Pt(2, 2), step(t, v, Sentry{}, a))
	}
}

func TestPacer_CorridorSequence(t *testing.T) {
	// row 1 is a corridor from x=1 to x=3, walled at x=0 and x=4
	m := gameworld.NewMap(gameworld.Coord{}, 6, 3)
	m.Terrain.Fill(terrain.Boulder)
	for x := 1; x <= 3; x++ {
		m.Terrain.Set(world.Pt(x, 1), terrain.Path)
	}
	a := actor.NewTrainer(actor.Pacer, 1, world.Pt(3, 1), world.West)
	require.NoError(t, m.Spawn(a))
	v := newView(m, world.FourWay)

	var xs []int
	for i := 0; i < 8; i++ {
		xs = append(xs, step(t, v, Pacer{}, a).X)
	}
	assert.Equal(t, []int{2, 1, 2, 3, 2, 1, 2, 3}, xs)
}

func TestPacer_BoxedInHolds(t *testing.T) {
	m := gameworld.NewMap(gameworld.Coord{}, 3, 3)
	m.Terrain.Fill(terrain.Water)
	m.Terrain.Set(world.Pt(1, 1), terrain.Path)
	a := actor.NewTrainer(actor.Pacer, 1, world.Pt(1, 1), world.East)
	require.NoError(t, m.Spawn(a))
	v := newView(m, world.FourWay)
	assert.Equal(t, world.Pt(1, 1), Pacer{}.Next(v, a))
	assert.Equal(t, world.West, a.Heading)
}

func TestRival_TrajectoryStrictlyDescends(t *testing.T) {
	m := gameworld.NewMap(gameworld.Coord{}, 5, 5)
	player := actor.NewPlayer(world.Pt(0, 0))
	rival := actor.NewTrainer(actor.Rival, 1, world.Pt(2, 2), world.North)
	require.NoError(t, m.Spawn(player))
	require.NoError(t, m.Spawn(rival))

	v := newView(m, world.FourWay)
	v.Fields.Ensure(m.Terrain, player.Pos)
	require.Equal(t, 40, v.Fields.Rival.At(rival.Pos))

	var trail []world.Point
	prev := v.Fields.Rival.At(rival.Pos)
	for i := 0; i < 10; i++ {
		next := Pursuer{Field: RivalField}.Next(v, rival)
		require.NotEqual(t, rival.Pos, next, "rival stalled at %v", rival.Pos)
		cur := v.Fields.Rival.At(next)
		require.Less(t, cur, prev)
		prev = cur
		trail = append(trail, next)
		if next == player.Pos {
			break
		}
		m.Move(rival, next)
	}
	assert.Equal(t, []world.Point{world.Pt(2, 1), world.Pt(2, 0), world.Pt(1, 0), world.Pt(0, 0)}, trail)
}

func TestPursuer_BlockedByOccupancy(t *testing.T) {
	m := gameworld.NewMap(gameworld.Coord{}, 5, 1)
	player := actor.NewPlayer(world.Pt(0, 0))
	blocker := actor.NewTrainer(actor.Sentry, 1, world.Pt(1, 0), world.North)
	hiker := actor.NewTrainer(actor.Hiker, 2, world.Pt(2, 0), world.North)
	for _, a := range []*actor.Actor{player, blocker, hiker} {
		require.NoError(t, m.Spawn(a))
	}
	v := newView(m, world.FourWay)
	v.Fields.Ensure(m.Terrain, player.Pos)
	assert.Equal(t, hiker.Pos, Pursuer{Field: HikerField}.Next(v, hiker))
}

func TestPursuer_DefeatedDoesNotAttack(t *testing.T) {
	m := gameworld.NewMap(gameworld.Coord{}, 3, 1)
	player := actor.NewPlayer(world.Pt(0, 0))
	rival := actor.NewTrainer(actor.Rival, 1, world.Pt(1, 0), world.North)
	require.NoError(t, m.Spawn(player))
	require.NoError(t, m.Spawn(rival))
	v := newView(m, world.FourWay)
	v.Fields.Ensure(m.Terrain, player.Pos)

	assert.Equal(t, player.Pos, Pursuer{}.Next(v, rival))
	rival.Defeated = true
	assert.Equal(t, rival.Pos, Pursuer{}.Next(v, rival))
}

func TestPursuer_PrefersScanOrderOnTies(t *testing.T) {
	m := gameworld.NewMap(gameworld.Coord{}, 5, 5)
	player := actor.NewPlayer(world.Pt(2, 0))
	rival := actor.NewTrainer(actor.Rival, 1, world.Pt(2, 2), world.North)
	require.NoError(t, m.Spawn(player))
	require.NoError(t, m.Spawn(rival))
	v := newView(m, world.EightWay)
	v.Fields.Ensure(m.Terrain, player.Pos)
	// N, NE and NW all sit one step from the player; N is scanned first
	assert.Equal(t, world.Pt(2, 1), Pursuer{}.Next(v, rival))
}

func TestWanderer_StaysOnHomeTerrain(t *testing.T) {
	m := gameworld.NewMap(gameworld.Coord{}, 9, 9)
	m.Terrain.ForEachCell(func(p world.Point, _ terrain.Terrain) {
		if p.X >= 5 {
			m.Terrain.Set(p, terrain.TallGrass)
		}
	})
	a := actor.NewTrainer(actor.Wanderer, 1, world.Pt(2, 4), world.East)
	require.NoError(t, m.Spawn(a))
	v := newView(m, world.EightWay)
	for i := 0; i < 200; i++ {
		step(t, v, Wanderer{}, a)
		require.Equal(t, terrain.ShortGrass, m.TerrainAt(a.Pos), "tick %d", i)
	}
}

func TestSwimmer_StaysInWater(t *testing.T) {
	m := gameworld.NewMap(gameworld.Coord{}, 8, 8)
	m.Terrain.ForEachCell(func(p world.Point, _ terrain.Terrain) {
		if p.X >= 2 && p.X <= 5 && p.Y >= 2 && p.Y <= 5 {
			m.Terrain.Set(p, terrain.Water)
		}
	})
	a := actor.NewTrainer(actor.Swimmer, 1, world.Pt(3, 3), world.South)
	require.NoError(t, m.Spawn(a))
	v := newView(m, world.FourWay)
	moved := false
	for i := 0; i < 100; i++ {
		if step(t, v, Swimmer{}, a) != world.Pt(3, 3) {
			moved = true
		}
		require.Equal(t, terrain.Water, m.TerrainAt(a.Pos))
	}
	assert.True(t, moved)
}

func TestExplorer_StraightWithoutTurns(t *testing.T) {
	m := gameworld.NewMap(gameworld.Coord{}, 10, 3)
	m.Terrain.Set(world.Pt(3, 1), terrain.Water)
	a := actor.NewTrainer(actor.Explorer, 1, world.Pt(0, 1), world.East)
	require.NoError(t, m.Spawn(a))
	v := newView(m, world.FourWay)

	assert.Equal(t, world.Pt(1, 1), step(t, v, Explorer{}, a))
	assert.Equal(t, world.Pt(2, 1), step(t, v, Explorer{}, a))
	m.Terrain.Set(world.Pt(1, 1), terrain.Boulder)
	// water ahead and rock behind: reroute north or south
	next := step(t, v, Explorer{}, a)
	assert.Contains(t, []world.Point{world.Pt(2, 0), world.Pt(2, 2)}, next)
	assert.Equal(t, 2, next.X)
}

func TestExplorer_AlwaysTurning(t *testing.T) {
	m := gameworld.NewMap(gameworld.Coord{}, 7, 7)
	a := actor.NewTrainer(actor.Explorer, 1, world.Pt(3, 3), world.East)
	require.NoError(t, m.Spawn(a))
	v := newView(m, world.FourWay)
	v.ExplorerTurnProb = 100
	headings := map[world.Direction]bool{}
	for i := 0; i < 60; i++ {
		step(t, v, Explorer{}, a)
		headings[a.Heading] = true
	}
	assert.Len(t, headings, 4)
}
