package gameplay

import (
	"go.uber.org/zap"

	"overworld/pkg/game/actor"
	"overworld/pkg/game/state"
)

// Outcome is the result of a battle as far as movement is concerned
type Outcome struct {
	// Defeated is set when the trainer lost
	Defeated bool
}

// Battle is the combat collaborator. It runs the fight; the core only
// records the outcome.
type Battle interface {
	// Battle fights aggressor against defender. Exactly one of them is the player.
	Battle(aggressor, defender *actor.Actor) Outcome
	// Encounter runs a wild encounter in tall grass
	Encounter(player *actor.Actor)
}

// ResolveBattle runs a battle between two opposing actors and applies the
// outcome to the trainer. Beaten pursuers give up the chase and wander.
func ResolveBattle(g *state.Game, b Battle, aggressor, defender *actor.Actor) Outcome {
	trainer := defender
	if !aggressor.IsPlayer() {
		trainer = aggressor
		logMessage(g, "Trainer %c wants to battle!", trainer.Glyph)
	} else {
		logMessage(g, "You ask trainer %c to battle!", trainer.Glyph)
	}

	out := b.Battle(aggressor, defender)
	if out.Defeated {
		trainer.Defeated = true
		if trainer.Archetype.IsPursuer() {
			trainer.Archetype = actor.Wanderer
		}
		logMessage(g, "Trainer %c was defeated.", trainer.Glyph)
	}

	g.Log.Debug("battle",
		zap.Stringer("aggressor", aggressor),
		zap.Stringer("defender", defender),
		zap.Bool("defeated", out.Defeated))
	return out
}
