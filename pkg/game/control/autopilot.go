// Package control provides player controllers and battle collaborators for
// the turn scheduler: a keyboard controller for terminals, an autopilot for
// headless runs, and a dice-rolling battle.
package control

import (
	"context"

	"overworld/pkg/engine/world"
	"overworld/pkg/game/gameplay"
	"overworld/pkg/game/state"
	"overworld/pkg/game/turn"
	gameworld "overworld/pkg/game/world"
)

var _ turn.Controller = (*Autopilot)(nil)

// Autopilot wanders the player around at random, now and then resting or
// teleporting, and quits after Turns commands.
type Autopilot struct {
	Turns int

	issued int
}

// NewAutopilot creates an autopilot that quits after turns commands
func NewAutopilot(turns int) *Autopilot {
	return &Autopilot{Turns: turns}
}

// Issued returns the number of commands handed out so far
func (a *Autopilot) Issued() int {
	return a.issued
}

// PlayerTurn picks the next command. Refused moves are simply asked again,
// so the autopilot never has to check terrain itself.
func (a *Autopilot) PlayerTurn(ctx context.Context, g *state.Game) (gameplay.Command, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.issued++
	if a.issued > a.Turns {
		return gameplay.Quit{}, nil
	}
	switch r := g.Rand.Intn(40); {
	case r == 0:
		return gameplay.Teleport{Random: true}, nil
	case r == 1:
		c := g.World.ActiveCoord()
		return gameplay.TeleportWorld{Coord: gameworld.Coord{
			X: c.X + g.Rand.Intn(3) - 1,
			Y: c.Y + g.Rand.Intn(3) - 1,
		}}, nil
	case r < 5:
		return gameplay.Rest{}, nil
	}
	d := world.RandomDirection(g.Rand, g.Connectivity().Directions())
	return gameplay.MoveTo{Dest: g.Player.Pos.Step(d)}, nil
}
