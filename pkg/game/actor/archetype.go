package actor

import "overworld/pkg/game/terrain"

// Archetype selects the movement policy and cost-table row of an actor
type Archetype uint8

// Archetypes
const (
	Hiker Archetype = iota
	Rival
	Pacer
	Wanderer
	Sentry
	Explorer
	Swimmer
	Controlled
)

// TrainerArchetypes is the set new trainers are drawn from
var TrainerArchetypes = []Archetype{Hiker, Rival, Pacer, Wanderer, Sentry, Explorer, Swimmer}

var archetypeInfo = map[Archetype]struct {
	name     string
	glyph    rune
	category terrain.Category
}{
	Hiker:      {"hiker", 'h', terrain.Hiker},
	Rival:      {"rival", 'r', terrain.Rival},
	Pacer:      {"pacer", 'p', terrain.Other},
	Wanderer:   {"wanderer", 'w', terrain.Other},
	Sentry:     {"sentry", 's', terrain.Other},
	Explorer:   {"explorer", 'e', terrain.Other},
	Swimmer:    {"swimmer", 'm', terrain.Swimmer},
	Controlled: {"player", PlayerGlyph, terrain.PC},
}

func (a Archetype) String() string {
	if info, ok := archetypeInfo[a]; ok {
		return info.name
	}
	return "unknown"
}

// Glyph returns the display glyph of the archetype
func (a Archetype) Glyph() rune {
	return archetypeInfo[a].glyph
}

// Category returns the cost-table row used by the archetype
func (a Archetype) Category() terrain.Category {
	return archetypeInfo[a].category
}

// IsPursuer reports whether the archetype chases the player along a distance field
func (a Archetype) IsPursuer() bool {
	return a == Hiker || a == Rival
}
