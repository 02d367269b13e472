package gameplay

import (
	"github.com/leonelquinteros/gotext"

	"overworld/pkg/game/state"
)

// logMessage adds a translated, formatted message to the game's message log
func logMessage(g *state.Game, msg string, a ...any) {
	g.AddMessage(gotext.Get(msg, a...))
}
