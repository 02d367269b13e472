// Package gameplay provides core game logic for actor movement, battles and map transitions.
package gameplay

import (
	"errors"
	"fmt"

	gameworld "overworld/pkg/game/world"
)

// ErrMoveRefused is wrapped by every rejected move. A refused move does not
// consume the actor's turn.
var ErrMoveRefused = errors.New("move refused")

var (
	ErrOutOfBounds = fmt.Errorf("%w: destination off the map", ErrMoveRefused)
	ErrImpassable  = fmt.Errorf("%w: impassable terrain", ErrMoveRefused)
	ErrOccupied    = fmt.Errorf("%w: destination occupied", ErrMoveRefused)
	ErrNotAdjacent = fmt.Errorf("%w: destination not adjacent", ErrMoveRefused)
	ErrOutOfWorld  = fmt.Errorf("%w: %w", ErrMoveRefused, gameworld.ErrOutOfWorld)
)
