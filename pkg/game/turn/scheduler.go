// Package turn runs the turn loop: the actor with the earliest action time
// on the active map acts next.
package turn

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"overworld/pkg/game/actor"
	"overworld/pkg/game/gameplay"
	"overworld/pkg/game/movement"
	"overworld/pkg/game/state"
	gameworld "overworld/pkg/game/world"
)

// ErrNoActors is returned when the active map has nobody to schedule
var ErrNoActors = errors.New("no actors on the active map")

// Controller supplies the player's commands. PlayerTurn blocks until the
// player has decided.
type Controller interface {
	PlayerTurn(ctx context.Context, g *state.Game) (gameplay.Command, error)
}

// ControllerFunc adapts a function to the Controller interface
type ControllerFunc func(ctx context.Context, g *state.Game) (gameplay.Command, error)

// PlayerTurn calls f
func (f ControllerFunc) PlayerTurn(ctx context.Context, g *state.Game) (gameplay.Command, error) {
	return f(ctx, g)
}

// Scheduler dispatches actors in (action time, creation sequence) order.
type Scheduler struct {
	game   *state.Game
	ctrl   Controller
	battle gameplay.Battle
	log    *zap.Logger

	// OnDispatch, if set, sees every actor just before it acts
	OnDispatch func(a *actor.Actor)

	check      bool
	clock      int
	dispatches int
}

// New creates a scheduler over g
func New(g *state.Game, ctrl Controller, battle gameplay.Battle) *Scheduler {
	return &Scheduler{
		game:   g,
		ctrl:   ctrl,
		battle: battle,
		log:    g.Log,
		check:  g.Config.Turn.CheckInvariants,
	}
}

// Clock returns the action time of the latest dispatch
func (s *Scheduler) Clock() int {
	return s.clock
}

// Dispatches returns the number of turns taken so far
func (s *Scheduler) Dispatches() int {
	return s.dispatches
}

// Run dispatches turns until the game quits, the context ends or the
// controller fails.
func (s *Scheduler) Run(ctx context.Context) error {
	for !s.game.Quit {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Step(ctx); err != nil {
			return err
		}
	}
	s.log.Info("scheduler stopped",
		zap.Int("dispatches", s.dispatches),
		zap.Int("clock", s.clock))
	return nil
}

// Step dispatches one actor
func (s *Scheduler) Step(ctx context.Context) error {
	m := s.game.Map()
	a, ok := m.Turns.Pop()
	if !ok {
		return ErrNoActors
	}
	if a.NextTurn < s.clock {
		s.log.Panic("turn clock went backwards",
			zap.Stringer("actor", a),
			zap.Int("at", a.NextTurn),
			zap.Int("clock", s.clock),
			zap.Error(gameworld.ErrInconsistent))
	}
	s.clock = a.NextTurn
	s.dispatches++
	if s.OnDispatch != nil {
		s.OnDispatch(a)
	}

	var cost int
	if a.IsPlayer() {
		var err error
		cost, err = s.playerTurn(ctx)
		if err != nil {
			m.Turns.Push(a)
			return err
		}
	} else {
		cost = s.npcTurn(a)
	}

	a.NextTurn += cost
	// the player may have changed maps
	s.game.Map().Turns.Push(a)

	if s.check {
		if err := s.game.Map().Validate(nil); err != nil {
			s.log.Panic("map invariant violated", zap.Error(err))
		}
	}
	return nil
}

// playerTurn asks the controller until it offers a command that is not refused
func (s *Scheduler) playerTurn(ctx context.Context) (int, error) {
	for {
		s.game.RefreshFields()
		cmd, err := s.ctrl.PlayerTurn(ctx, s.game)
		if err != nil {
			return 0, fmt.Errorf("player turn: %w", err)
		}
		cost, err := gameplay.ApplyPlayer(s.game, s.battle, cmd)
		if errors.Is(err, gameplay.ErrMoveRefused) {
			s.game.AddMessage(err.Error())
			s.log.Debug("move refused", zap.Error(err))
			continue
		}
		if err != nil {
			return 0, err
		}
		return cost, nil
	}
}

// npcTurn lets the trainer's policy move it. A destination the policy should
// not have offered is treated as a hold.
func (s *Scheduler) npcTurn(a *actor.Actor) int {
	policy := movement.For(a.Archetype)
	if policy == nil {
		return s.game.IdleCost()
	}
	s.game.RefreshFields()
	dest := policy.Next(s.game.MovementView(), a)
	cost, err := gameplay.Resolve(s.game, s.battle, a, dest)
	if err != nil {
		s.log.Debug("trainer move refused",
			zap.Stringer("actor", a),
			zap.Stringer("dest", dest),
			zap.Error(err))
		return s.game.IdleCost()
	}
	return cost
}
