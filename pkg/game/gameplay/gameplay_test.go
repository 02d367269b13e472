package gameplay

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"overworld/pkg/engine/world"
	"overworld/pkg/game/actor"
	"overworld/pkg/game/config"
	"overworld/pkg/game/pathfind"
	"overworld/pkg/game/state"
	"overworld/pkg/game/terrain"
	gameworld "overworld/pkg/game/world"
)

// plainGenerator makes open short-grass maps whose gates sit at offset 2
// unless a neighbor decided otherwise.
type plainGenerator struct{}

func (plainGenerator) Name() string { return "plain" }

func (plainGenerator) Generate(coord gameworld.Coord, gc gameworld.GateConstraints) *gameworld.Map {
	m := gameworld.NewMap(coord, 8, 6)
	for _, e := range gameworld.GateEdges {
		off := gc.Get(e)
		if off == gameworld.GateAny {
			off = 2
		}
		m.Gates.Set(e, off)
		if off >= 0 {
			m.Terrain.Set(gameworld.GatePoint(e, off, m.Cols(), m.Rows()), terrain.Gate)
		}
	}
	return m
}

// recordingBattle remembers every fight and lets the player win or lose
type recordingBattle struct {
	win        bool
	fights     [][2]*actor.Actor
	encounters int
}

func (b *recordingBattle) Battle(aggressor, defender *actor.Actor) Outcome {
	b.fights = append(b.fights, [2]*actor.Actor{aggressor, defender})
	return Outcome{Defeated: b.win}
}

func (b *recordingBattle) Encounter(*actor.Actor) {
	b.encounters++
}

// newGame builds a game on a plain world with the player at pos of (0,0)
func newGame(t *testing.T, pos world.Point) *state.Game {
	t.Helper()
	cfg := config.Default()
	cfg.World.Radius = 1
	cfg.Movement.EncounterProb = 0
	costs := terrain.DefaultCosts()
	fields := pathfind.NewFields(costs, world.EightWay)
	w := gameworld.New(plainGenerator{}, cfg.World.Radius, fields, zap.NewNop())
	g := state.NewGame(cfg, w, costs, rand.New(rand.NewSource(1)), actor.NewSequence(), zap.NewNop())

	m, err := w.SetActive(gameworld.Coord{})
	require.NoError(t, err)
	g.Player.Pos = pos
	require.NoError(t, m.Place(g.Player))
	return g
}

func spawn(t *testing.T, g *state.Game, m *gameworld.Map, arch actor.Archetype, pos world.Point) *actor.Actor {
	t.Helper()
	a := actor.NewTrainer(arch, g.Seq.Next(), pos, world.North)
	require.NoError(t, m.Spawn(a))
	return a
}

func TestResolve_HoldCostsIdle(t *testing.T) {
	g := newGame(t, world.Pt(3, 3))
	cost, err := Resolve(g, &recordingBattle{}, g.Player, g.Player.Pos)
	require.NoError(t, err)
	assert.Equal(t, g.Config.Movement.IdleCost, cost)
}

func TestResolve_MoveCostsEnteredTerrain(t *testing.T) {
	g := newGame(t, world.Pt(3, 3))
	g.Map().Terrain.Set(world.Pt(4, 3), terrain.TallGrass)
	cost, err := Resolve(g, &recordingBattle{}, g.Player, world.Pt(4, 3))
	require.NoError(t, err)
	assert.Equal(t, 20, cost)
	assert.Equal(t, world.Pt(4, 3), g.Player.Pos)
	assert.Same(t, g.Player, g.Map().ActorAt(world.Pt(4, 3)))
}

func TestResolve_Refusals(t *testing.T) {
	g := newGame(t, world.Pt(3, 3))
	m := g.Map()
	m.Terrain.Set(world.Pt(2, 3), terrain.Water)
	friend := spawn(t, g, m, actor.Sentry, world.Pt(5, 3))
	other := spawn(t, g, m, actor.Sentry, world.Pt(5, 4))

	tests := []struct {
		name string
		a    *actor.Actor
		dest world.Point
		want error
	}{
		{"water", g.Player, world.Pt(2, 3), ErrImpassable},
		{"off the map", g.Player, world.Pt(-1, 3), ErrOutOfBounds},
		{"trainer onto gate", friend, world.Pt(7, 2), ErrImpassable},
		{"trainer onto trainer", friend, other.Pos, ErrOccupied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.a.Pos
			_, err := Resolve(g, &recordingBattle{}, tt.a, tt.dest)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrMoveRefused)
			assert.Equal(t, before, tt.a.Pos)
		})
	}
}

func TestResolve_BattleInPlaceOfMove(t *testing.T) {
	g := newGame(t, world.Pt(3, 3))
	m := g.Map()
	rival := spawn(t, g, m, actor.Rival, world.Pt(4, 3))
	b := &recordingBattle{win: true}

	cost, err := Resolve(g, b, rival, g.Player.Pos)
	require.NoError(t, err)
	assert.Equal(t, g.Config.Movement.IdleCost, cost)
	require.Len(t, b.fights, 1)
	assert.Same(t, rival, b.fights[0][0])
	assert.Same(t, g.Player, b.fights[0][1])
	assert.Equal(t, world.Pt(4, 3), rival.Pos)
	assert.True(t, rival.Defeated)
	assert.Equal(t, actor.Wanderer, rival.Archetype, "beaten pursuers stop chasing")
	assert.Equal(t, terrain.Rival, rival.Category)

	// a defeated trainer blocks without fighting
	_, err = Resolve(g, b, g.Player, rival.Pos)
	assert.ErrorIs(t, err, ErrOccupied)
	_, err = Resolve(g, b, rival, g.Player.Pos)
	assert.ErrorIs(t, err, ErrOccupied)
	assert.Len(t, b.fights, 1)
}

func TestResolve_LostBattleKeepsTrainerActive(t *testing.T) {
	g := newGame(t, world.Pt(3, 3))
	hiker := spawn(t, g, g.Map(), actor.Hiker, world.Pt(3, 4))
	b := &recordingBattle{win: false}
	_, err := Resolve(g, b, g.Player, hiker.Pos)
	require.NoError(t, err)
	assert.False(t, hiker.Defeated)
	assert.Equal(t, actor.Hiker, hiker.Archetype)
	assert.NotEmpty(t, g.Messages)
}

func TestApplyPlayer_NotAdjacent(t *testing.T) {
	g := newGame(t, world.Pt(3, 3))
	_, err := ApplyPlayer(g, &recordingBattle{}, MoveTo{Dest: world.Pt(5, 3)})
	assert.ErrorIs(t, err, ErrNotAdjacent)

	g.Config.Movement.Connectivity = 4
	_, err = ApplyPlayer(g, &recordingBattle{}, MoveTo{Dest: world.Pt(4, 4)})
	assert.ErrorIs(t, err, ErrNotAdjacent, "diagonals need 8-way movement")
}

func TestApplyPlayer_RestAndQuit(t *testing.T) {
	g := newGame(t, world.Pt(3, 3))
	cost, err := ApplyPlayer(g, &recordingBattle{}, Rest{})
	require.NoError(t, err)
	assert.Equal(t, g.IdleCost(), cost)
	assert.False(t, g.Quit)

	_, err = ApplyPlayer(g, &recordingBattle{}, Quit{})
	require.NoError(t, err)
	assert.True(t, g.Quit)
}

func TestApplyPlayer_TallGrassEncounter(t *testing.T) {
	g := newGame(t, world.Pt(3, 3))
	g.Config.Movement.EncounterProb = 100
	g.Map().Terrain.Set(world.Pt(3, 2), terrain.TallGrass)
	b := &recordingBattle{}

	_, err := ApplyPlayer(g, b, MoveTo{Dest: world.Pt(3, 2)})
	require.NoError(t, err)
	assert.Equal(t, 1, b.encounters)

	_, err = ApplyPlayer(g, b, MoveTo{Dest: world.Pt(4, 2)})
	require.NoError(t, err)
	assert.Equal(t, 1, b.encounters, "short grass is safe")
}

func TestApplyPlayer_CrossGate(t *testing.T) {
	g := newGame(t, world.Pt(6, 2))
	g.Player.NextTurn = 50

	east, err := g.World.GetOrCreate(gameworld.Coord{X: 1})
	require.NoError(t, err)
	waiting := spawn(t, g, east, actor.Sentry, world.Pt(4, 4))

	gate := gameworld.GatePoint(world.East, g.Map().Gates.E, 8, 6)
	require.Equal(t, world.Pt(7, 2), gate)

	cost, err := ApplyPlayer(g, &recordingBattle{}, MoveTo{Dest: gate})
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
	assert.Equal(t, gameworld.Coord{X: 1}, g.World.ActiveCoord())
	assert.Same(t, east, g.Map())
	assert.Equal(t, world.Pt(1, 2), g.Player.Pos, "arrive just inside the west gate")
	assert.Same(t, g.Player, east.ActorAt(g.Player.Pos))

	origin, _ := g.World.Lookup(gameworld.Coord{})
	assert.Nil(t, origin.ActorAt(world.Pt(6, 2)))
	assert.Equal(t, 50, waiting.NextTurn, "trainers catch up with the player's clock")
	assert.False(t, g.World.Fields().Valid())
	assert.NoError(t, east.Validate(g.Player))
}

func TestApplyPlayer_CrossGateArrivalTaken(t *testing.T) {
	g := newGame(t, world.Pt(6, 2))
	east, err := g.World.GetOrCreate(gameworld.Coord{X: 1})
	require.NoError(t, err)
	spawn(t, g, east, actor.Sentry, world.Pt(1, 2))

	_, err = ApplyPlayer(g, &recordingBattle{}, MoveTo{Dest: world.Pt(7, 2)})
	require.NoError(t, err)
	assert.Equal(t, 1, g.Player.Pos.Chebyshev(world.Pt(1, 2)))
}

func TestJump(t *testing.T) {
	g := newGame(t, world.Pt(3, 3))
	m := g.Map()
	m.Terrain.Set(world.Pt(5, 1), terrain.Water)
	blocker := spawn(t, g, m, actor.Sentry, world.Pt(2, 2))

	assert.ErrorIs(t, JumpLocal(g, world.Pt(5, 1), false), ErrImpassable)
	assert.ErrorIs(t, JumpLocal(g, blocker.Pos, false), ErrOccupied)
	require.NoError(t, JumpLocal(g, world.Pt(6, 4), false))
	assert.Equal(t, world.Pt(6, 4), g.Player.Pos)

	require.NoError(t, JumpLocal(g, world.Point{}, true))
	assert.True(t, m.Terrain.IsPlayablePosition(g.Player.Pos))
	assert.Same(t, g.Player, m.ActorAt(g.Player.Pos))

	err := JumpWorld(g, gameworld.Coord{X: 2})
	assert.ErrorIs(t, err, ErrOutOfWorld)
	assert.True(t, errors.Is(err, gameworld.ErrOutOfWorld))

	require.NoError(t, JumpWorld(g, gameworld.Coord{X: -1, Y: 1}))
	assert.Equal(t, gameworld.Coord{X: -1, Y: 1}, g.World.ActiveCoord())
	assert.Same(t, g.Player, g.Map().ActorAt(g.Player.Pos))
	assert.NotContains(t, m.Actors(), g.Player)
}

func TestStart_PlacesAndQueuesPlayer(t *testing.T) {
	cfg := config.Default()
	costs := terrain.DefaultCosts()
	w := gameworld.New(plainGenerator{}, 2, pathfind.NewFields(costs, world.EightWay), zap.NewNop())
	g := state.NewGame(cfg, w, costs, rand.New(rand.NewSource(3)), actor.NewSequence(), zap.NewNop())
	require.NoError(t, Start(g, gameworld.Coord{}))
	m := g.Map()
	assert.True(t, m.Turns.Has(g.Player))
	assert.Same(t, g.Player, m.ActorAt(g.Player.Pos))
	assert.NoError(t, m.Validate(nil))
}
