// Package actor defines the player and trainer actors that share a map.
package actor

import (
	"fmt"

	"overworld/pkg/engine/world"
	"overworld/pkg/game/terrain"
)

// Kind tags an actor as the player or a trainer.
type Kind uint8

const (
	Player Kind = iota
	Trainer
)

func (k Kind) String() string {
	if k == Player {
		return "player"
	}
	return "trainer"
}

// PlayerGlyph is drawn at the player's position
const PlayerGlyph = '@'

// PlayerSeq is the creation sequence number of the player
const PlayerSeq = 0

// Actor is anything that takes turns on a map.
type Actor struct {
	Kind      Kind
	Pos       world.Point
	Glyph     rune
	NextTurn  int
	Seq       int
	Archetype Archetype
	Category  terrain.Category
	// Defeated trainers stay on the map and keep moving, but no longer start battles
	Defeated bool
	// Heading is the remembered direction of pacers and walkers
	Heading world.Direction
}

// NewPlayer creates the player actor at pos
func NewPlayer(pos world.Point) *Actor {
	return &Actor{
		Kind:      Player,
		Pos:       pos,
		Glyph:     PlayerGlyph,
		Seq:       PlayerSeq,
		Archetype: Controlled,
		Category:  terrain.PC,
	}
}

// NewTrainer creates a trainer of the given archetype
func NewTrainer(arch Archetype, seq int, pos world.Point, heading world.Direction) *Actor {
	return &Actor{
		Kind:      Trainer,
		Pos:       pos,
		Glyph:     arch.Glyph(),
		Seq:       seq,
		Archetype: arch,
		Category:  arch.Category(),
		Heading:   heading,
	}
}

// IsPlayer reports whether the actor is the player
func (a *Actor) IsPlayer() bool {
	return a.Kind == Player
}

// Opposes reports whether a and b are on opposite sides: exactly one is the player
func (a *Actor) Opposes(b *Actor) bool {
	return a.IsPlayer() != b.IsPlayer()
}

// Less orders actors by action time, then creation sequence
func Less(a, b *Actor) bool {
	if a.NextTurn != b.NextTurn {
		return a.NextTurn < b.NextTurn
	}
	return a.Seq < b.Seq
}

func (a *Actor) String() string {
	return fmt.Sprintf("%c#%d@%v", a.Glyph, a.Seq, a.Pos)
}

// Sequence hands out monotonically increasing creation sequence numbers.
type Sequence struct {
	next int
}

// NewSequence starts a sequence after the player's number
func NewSequence() *Sequence {
	return &Sequence{next: PlayerSeq + 1}
}

// Next returns the next sequence number
func (s *Sequence) Next() int {
	n := s.next
	s.next++
	return n
}
