package pathfind

import (
	"overworld/pkg/engine/world"
	"overworld/pkg/game/terrain"
)

// Fields holds the two distance fields of the active map, both measured from
// the player. Rival uses the path-preferring cost row, Hiker the row that
// is indifferent to paths. Only one map's fields matter at a time, so they
// live at world scope and are recomputed rather than stored per map.
type Fields struct {
	Rival *Field
	Hiker *Field

	costs *terrain.CostTable
	conn  world.Connectivity

	valid      bool
	grid       *world.Grid[terrain.Terrain]
	ref        world.Point
	recomputes int
}

// NewFields creates an empty, invalid pair of fields
func NewFields(costs *terrain.CostTable, conn world.Connectivity) *Fields {
	return &Fields{costs: costs, conn: conn}
}

// Invalidate marks both fields stale
func (f *Fields) Invalidate() {
	f.valid = false
}

// Valid reports whether the fields match the last reference position
func (f *Fields) Valid() bool {
	return f.valid
}

// Reference returns the position the fields were last computed from
func (f *Fields) Reference() world.Point {
	return f.ref
}

// Recomputes counts full recomputations, for diagnostics
func (f *Fields) Recomputes() int {
	return f.recomputes
}

// Connectivity returns the neighborhood the fields are computed over
func (f *Fields) Connectivity() world.Connectivity {
	return f.conn
}

// Ensure recomputes both fields if they are stale, were computed on another
// grid, or ref has moved.
func (f *Fields) Ensure(grid *world.Grid[terrain.Terrain], ref world.Point) {
	if f.valid && f.grid == grid && f.ref == ref {
		return
	}
	f.Recompute(grid, ref)
}

// Recompute fully recomputes both fields from ref
func (f *Fields) Recompute(grid *world.Grid[terrain.Terrain], ref world.Point) {
	f.Rival = Compute(grid, ref, terrain.Rival, f.costs, f.conn)
	f.Hiker = Compute(grid, ref, terrain.Hiker, f.costs, f.conn)
	f.grid = grid
	f.ref = ref
	f.valid = true
	f.recomputes++
}
