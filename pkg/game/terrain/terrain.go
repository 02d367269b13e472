// Package terrain defines terrain types, actor categories and the movement cost table.
package terrain

// Terrain is the type of a single map cell
type Terrain uint8

// Terrain types. The order is the column order of the cost table.
const (
	Boulder Terrain = iota
	Tree
	Path
	Mart
	Center
	TallGrass
	ShortGrass
	Mountain
	Forest
	Water
	Gate
	Connector
	Cliff

	// NumTerrain is the number of real terrain types
	NumTerrain int = iota
)

// Debug marks a cell that generation left in an impossible state.
// It never appears in a finished map and nothing can enter it.
const Debug Terrain = Terrain(NumTerrain)

var terrainNames = [...]string{
	Boulder:    "boulder",
	Tree:       "tree",
	Path:       "path",
	Mart:       "mart",
	Center:     "center",
	TallGrass:  "tall_grass",
	ShortGrass: "short_grass",
	Mountain:   "mountain",
	Forest:     "forest",
	Water:      "water",
	Gate:       "gate",
	Connector:  "connector",
	Cliff:      "cliff",
}

var terrainSymbols = [...]rune{
	Boulder:    '%',
	Tree:       '^',
	Path:       '#',
	Mart:       'M',
	Center:     'C',
	TallGrass:  ':',
	ShortGrass: '.',
	Mountain:   '%',
	Forest:     '^',
	Water:      '~',
	Gate:       '#',
	Connector:  '#',
	Cliff:      '%',
}

// String returns the cost-table name of the terrain
func (t Terrain) String() string {
	if int(t) < NumTerrain {
		return terrainNames[t]
	}
	return "debug"
}

// Symbol returns the glyph used to draw the terrain
func (t Terrain) Symbol() rune {
	if int(t) < NumTerrain {
		return terrainSymbols[t]
	}
	return '!'
}

// IsGrass reports whether t is one of the two grass types
func (t Terrain) IsGrass() bool {
	return t == TallGrass || t == ShortGrass
}

// IsBuilding reports whether t is a shop building
func (t Terrain) IsBuilding() bool {
	return t == Mart || t == Center
}

// ParseTerrain looks a terrain up by its cost-table name
func ParseTerrain(name string) (Terrain, bool) {
	for i, n := range terrainNames {
		if n == name {
			return Terrain(i), true
		}
	}
	return Debug, false
}

// Category selects an actor's row in the cost table
type Category uint8

// Actor categories
const (
	PC Category = iota
	Hiker
	Rival
	Swimmer
	Other

	// NumCategories is the number of actor categories
	NumCategories int = iota
)

var categoryNames = [...]string{
	PC:      "pc",
	Hiker:   "hiker",
	Rival:   "rival",
	Swimmer: "swimmer",
	Other:   "other",
}

func (c Category) String() string {
	if int(c) < NumCategories {
		return categoryNames[c]
	}
	return "unknown"
}

// ParseCategory looks a category up by its cost-table name
func ParseCategory(name string) (Category, bool) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return 0, false
}
