package control

import (
	"math/rand"

	"go.uber.org/zap"

	"overworld/pkg/game/actor"
	"overworld/pkg/game/gameplay"
)

var _ gameplay.Battle = (*Dice)(nil)

// Dice settles battles with a single roll. The player wins WinPercent of
// trainer battles; wild encounters are only logged.
type Dice struct {
	WinPercent int

	rng *rand.Rand
	log *zap.Logger

	battles, wins, encounters int
}

// NewDice creates a dice battle drawing from rng
func NewDice(rng *rand.Rand, winPercent int, log *zap.Logger) *Dice {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dice{WinPercent: winPercent, rng: rng, log: log}
}

// Battle rolls for the player
func (d *Dice) Battle(aggressor, defender *actor.Actor) gameplay.Outcome {
	d.battles++
	won := d.rng.Intn(100) < d.WinPercent
	if won {
		d.wins++
	}
	d.log.Debug("dice battle",
		zap.Stringer("aggressor", aggressor),
		zap.Stringer("defender", defender),
		zap.Bool("player_won", won))
	return gameplay.Outcome{Defeated: won}
}

// Encounter records a wild encounter
func (d *Dice) Encounter(player *actor.Actor) {
	d.encounters++
	d.log.Debug("wild encounter", zap.Stringer("pos", player.Pos))
}

// Stats returns the battles fought, battles won and wild encounters so far
func (d *Dice) Stats() (battles, wins, encounters int) {
	return d.battles, d.wins, d.encounters
}
