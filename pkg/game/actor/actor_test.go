package actor

import (
	"testing"

	"overworld/pkg/engine/world"
	"overworld/pkg/game/terrain"
)

func TestNewTrainer_TakesArchetypeTraits(t *testing.T) {
	a := NewTrainer(Swimmer, 3, world.Pt(2, 2), world.East)
	if a.IsPlayer() {
		t.Fatal("trainer reported as player")
	}
	if a.Glyph != 'm' || a.Category != terrain.Swimmer {
		t.Errorf("swimmer glyph/category = %q/%v", a.Glyph, a.Category)
	}
	if a.Seq != 3 || a.Heading != world.East {
		t.Errorf("seq/heading = %d/%v", a.Seq, a.Heading)
	}
}

func TestOpposes(t *testing.T) {
	pc := NewPlayer(world.Pt(1, 1))
	r := NewTrainer(Rival, 1, world.Pt(1, 2), world.North)
	h := NewTrainer(Hiker, 2, world.Pt(1, 3), world.North)
	if !pc.Opposes(r) || !r.Opposes(pc) {
		t.Error("player and trainer should oppose each other")
	}
	if r.Opposes(h) {
		t.Error("two trainers should not oppose each other")
	}
}

func TestLess_TimeThenSequence(t *testing.T) {
	a := &Actor{NextTurn: 10, Seq: 5}
	b := &Actor{NextTurn: 20, Seq: 1}
	c := &Actor{NextTurn: 10, Seq: 6}
	if !Less(a, b) || Less(b, a) {
		t.Error("earlier action time must come first")
	}
	if !Less(a, c) || Less(c, a) {
		t.Error("equal times must fall back to creation order")
	}
}

func TestSequence_StartsAfterPlayer(t *testing.T) {
	s := NewSequence()
	first := s.Next()
	if first <= PlayerSeq {
		t.Errorf("first trainer seq %d must follow the player's %d", first, PlayerSeq)
	}
	if s.Next() != first+1 {
		t.Error("sequence must increase by one")
	}
}

func TestArchetypes_AllHaveCategories(t *testing.T) {
	for _, arch := range TrainerArchetypes {
		if arch.Category() == terrain.PC {
			t.Errorf("trainer archetype %v uses the player's cost row", arch)
		}
		if arch.Glyph() == 0 || arch.String() == "unknown" {
			t.Errorf("archetype %d has no glyph or name", arch)
		}
	}
	if !Rival.IsPursuer() || !Hiker.IsPursuer() || Pacer.IsPursuer() {
		t.Error("only rivals and hikers pursue")
	}
}
