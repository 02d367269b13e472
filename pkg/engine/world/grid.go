// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based game.
package world

// Grid is a fixed-size, dense 2D array of cells addressed by Point.
// Storage is row-major.
type Grid[T any] struct {
	cells []T
	rows  int
	cols  int
}

// NewGrid creates a new grid with the given dimensions, every cell set to the zero value
func NewGrid[T any](cols, rows int) *Grid[T] {
	g := &Grid[T]{}
	g.Build(cols, rows)
	return g
}

// Build initializes the grid with the given dimensions
func (g *Grid[T]) Build(cols, rows int) {
	if rows <= 0 || cols <= 0 {
		panic("Grid dimensions must be positive")
	}
	g.rows = rows
	g.cols = cols
	g.cells = make([]T, rows*cols)
}

// Rows returns the number of rows in the grid
func (g *Grid[T]) Rows() int {
	return g.rows
}

// Cols returns the number of columns in the grid
func (g *Grid[T]) Cols() int {
	return g.cols
}

// Len returns the number of cells in the grid
func (g *Grid[T]) Len() int {
	return len(g.cells)
}

// IsValidPosition checks if a position is within grid bounds
func (g *Grid[T]) IsValidPosition(p Point) bool {
	return p.Y >= 0 && p.Y < g.rows && p.X >= 0 && p.X < g.cols
}

// IsPlayablePosition checks if a position is within the playable area (not on the perimeter)
func (g *Grid[T]) IsPlayablePosition(p Point) bool {
	return p.Y >= 1 && p.Y < g.rows-1 && p.X >= 1 && p.X < g.cols-1
}

// IsOnPerimeter checks if a position is on the edge of the grid
func (g *Grid[T]) IsOnPerimeter(p Point) bool {
	return g.IsValidPosition(p) && !g.IsPlayablePosition(p)
}

// Index returns the flat index of p. The caller must check bounds.
func (g *Grid[T]) Index(p Point) int {
	return p.Y*g.cols + p.X
}

// PointAt is the inverse of Index
func (g *Grid[T]) PointAt(idx int) Point {
	return Point{X: idx % g.cols, Y: idx / g.cols}
}

// At returns the cell value at p, or the zero value if out of bounds
func (g *Grid[T]) At(p Point) T {
	if !g.IsValidPosition(p) {
		var zero T
		return zero
	}
	return g.cells[g.Index(p)]
}

// Set stores v at p. Returns false if out of bounds.
func (g *Grid[T]) Set(p Point, v T) bool {
	if !g.IsValidPosition(p) {
		return false
	}
	g.cells[g.Index(p)] = v
	return true
}

// Fill sets every cell to v
func (g *Grid[T]) Fill(v T) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

// CenterPosition returns the point at the grid center
func (g *Grid[T]) CenterPosition() Point {
	return Point{X: g.cols / 2, Y: g.rows / 2}
}

// Clone returns a deep copy of the grid
func (g *Grid[T]) Clone() *Grid[T] {
	c := &Grid[T]{rows: g.rows, cols: g.cols, cells: make([]T, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether two grids have the same dimensions and cells
func Equal[T comparable](a, b *Grid[T]) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	for i := range a.cells {
		if a.cells[i] != b.cells[i] {
			return false
		}
	}
	return true
}

// ForEachCell iterates over all cells in row-major order
func (g *Grid[T]) ForEachCell(fn func(p Point, v T)) {
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			fn(Point{X: x, Y: y}, g.cells[y*g.cols+x])
		}
	}
}

// ForEachPlayableCell iterates over the cells inside the perimeter in row-major order
func (g *Grid[T]) ForEachPlayableCell(fn func(p Point, v T)) {
	for y := 1; y < g.rows-1; y++ {
		for x := 1; x < g.cols-1; x++ {
			fn(Point{X: x, Y: y}, g.cells[y*g.cols+x])
		}
	}
}
