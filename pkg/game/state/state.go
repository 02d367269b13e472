// Package state holds the explicit game context passed to every turn.
package state

import (
	"math/rand"

	"go.uber.org/zap"

	"overworld/pkg/engine/world"
	"overworld/pkg/game/actor"
	"overworld/pkg/game/config"
	"overworld/pkg/game/movement"
	"overworld/pkg/game/terrain"
	gameworld "overworld/pkg/game/world"
)

const maxMessages = 5

// Game is everything a turn may read or change
type Game struct {
	World  *gameworld.World
	Player *actor.Actor
	Costs  *terrain.CostTable
	Rand   *rand.Rand
	Seq    *actor.Sequence
	Config config.Config
	Log    *zap.Logger

	Messages []string

	// Quit ends the scheduler loop before the next dispatch
	Quit bool
}

// NewGame creates a game whose player has not been placed yet
func NewGame(cfg config.Config, w *gameworld.World, costs *terrain.CostTable, rng *rand.Rand, seq *actor.Sequence, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		World:    w,
		Player:   actor.NewPlayer(world.Point{}),
		Costs:    costs,
		Rand:     rng,
		Seq:      seq,
		Config:   cfg,
		Log:      log,
		Messages: make([]string, 0),
	}
}

// Map returns the active map
func (g *Game) Map() *gameworld.Map {
	return g.World.Active()
}

// Connectivity returns the configured neighborhood
func (g *Game) Connectivity() world.Connectivity {
	return world.Connectivity(g.Config.Movement.Connectivity)
}

// IdleCost is the time a hold or a refused-but-consumed action takes
func (g *Game) IdleCost() int {
	return g.Config.Movement.IdleCost
}

// RefreshFields brings the distance fields up to date with the player's position
func (g *Game) RefreshFields() {
	g.World.RefreshFields(g.Player.Pos)
}

// MovementView is the read view trainer policies decide from
func (g *Game) MovementView() movement.View {
	return movement.View{
		Map:              g.Map(),
		Fields:           g.World.Fields(),
		Costs:            g.Costs,
		Conn:             g.Connectivity(),
		Rand:             g.Rand,
		ExplorerTurnProb: g.Config.Movement.ExplorerTurnProb,
	}
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	g.Messages = append(g.Messages, msg)

	// Keep only the last maxMessages
	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (g *Game) ClearMessages() {
	g.Messages = make([]string, 0)
}
