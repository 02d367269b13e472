package world

import "math/rand"

// Direction represents one of the eight compass directions.
// The declaration order is the neighbor scan order: cardinals first, then diagonals.
type Direction int

// Direction constants
const (
	North Direction = iota
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

// NumDirections is the number of valid directions
const NumDirections = 8

// AllDirections returns all valid directions in scan order
func AllDirections() []Direction {
	return []Direction{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}
}

// CardinalDirections returns N, S, E, W in scan order
func CardinalDirections() []Direction {
	return []Direction{North, South, East, West}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case South:
		return "South"
	case East:
		return "East"
	case West:
		return "West"
	case NorthEast:
		return "NorthEast"
	case NorthWest:
		return "NorthWest"
	case SouthEast:
		return "SouthEast"
	case SouthWest:
		return "SouthWest"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is one of the eight compass directions
func (d Direction) IsValid() bool {
	return d >= North && d <= SouthWest
}

// IsDiagonal returns true for the four diagonal directions
func (d Direction) IsDiagonal() bool {
	return d >= NorthEast && d <= SouthWest
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case NorthEast:
		return SouthWest
	case SouthWest:
		return NorthEast
	case NorthWest:
		return SouthEast
	case SouthEast:
		return NorthWest
	default:
		return d
	}
}

// Delta returns the x and y offsets for this direction. North is -y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	case NorthEast:
		return 1, -1
	case NorthWest:
		return -1, -1
	case SouthEast:
		return 1, 1
	case SouthWest:
		return -1, 1
	default:
		return 0, 0
	}
}

// RandomDirection returns a uniformly chosen direction from dirs
func RandomDirection(rng *rand.Rand, dirs []Direction) Direction {
	return dirs[rng.Intn(len(dirs))]
}

// Connectivity selects which neighbors a cell has: 4 (cardinal) or 8 (with diagonals)
type Connectivity int

// Supported connectivities
const (
	FourWay  Connectivity = 4
	EightWay Connectivity = 8
)

// IsValid reports whether c is a supported connectivity
func (c Connectivity) IsValid() bool {
	return c == FourWay || c == EightWay
}

// Directions returns the neighbor directions for this connectivity, in scan order
func (c Connectivity) Directions() []Direction {
	if c == FourWay {
		return CardinalDirections()
	}
	return AllDirections()
}
