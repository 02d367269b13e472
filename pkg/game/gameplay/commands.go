package gameplay

import (
	"overworld/pkg/engine/world"
	gameworld "overworld/pkg/game/world"
)

// Command is what the player chose to do on their turn
type Command interface {
	command()
}

// MoveTo steps to an adjacent cell
type MoveTo struct {
	Dest world.Point
}

// Rest holds position for one idle turn
type Rest struct{}

// Teleport jumps within the active map, to Dest or to a random reachable cell
type Teleport struct {
	Dest   world.Point
	Random bool
}

// TeleportWorld jumps to a random cell of the map at Coord
type TeleportWorld struct {
	Coord gameworld.Coord
}

// Quit stops the scheduler
type Quit struct{}

func (MoveTo) command()        {}
func (Rest) command()          {}
func (Teleport) command()      {}
func (TeleportWorld) command() {}
func (Quit) command()          {}
