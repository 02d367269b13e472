// Package pathfind computes cost-weighted distance fields over a map.
package pathfind

import (
	"github.com/zyedidia/generic/heap"

	"overworld/pkg/engine/world"
	"overworld/pkg/game/terrain"
)

// CostFunc returns the cost of entering p, or terrain.Infinity if p cannot be entered.
type CostFunc func(p world.Point) int

// heapEntry is a queued cell. order breaks distance ties first-in first-out.
type heapEntry struct {
	idx   int
	dist  int
	order int
}

func entryLess(a, b heapEntry) bool {
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	return a.order < b.order
}

// Field stores the shortest distance from the nearest source to every cell.
type Field struct {
	cols, rows int
	dist       []int
	from       []int
	sources    []world.Point
}

// Cols returns the field width
func (f *Field) Cols() int {
	return f.cols
}

// Rows returns the field height
func (f *Field) Rows() int {
	return f.rows
}

// Source returns the first source the field was computed from
func (f *Field) Source() world.Point {
	if len(f.sources) == 0 {
		return world.Point{X: -1, Y: -1}
	}
	return f.sources[0]
}

func (f *Field) inBounds(p world.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < f.cols && p.Y < f.rows
}

// At returns the distance at p; terrain.Infinity if unreachable or out of bounds
func (f *Field) At(p world.Point) int {
	if !f.inBounds(p) {
		return terrain.Infinity
	}
	return f.dist[p.Y*f.cols+p.X]
}

// Reachable reports whether p has a finite distance
func (f *Field) Reachable(p world.Point) bool {
	return f.At(p) < terrain.Infinity
}

// PathTo returns the cells of a shortest route from the nearest source to p,
// both ends included. It returns nil if p is unreachable.
func (f *Field) PathTo(p world.Point) []world.Point {
	if !f.Reachable(p) {
		return nil
	}
	var rev []world.Point
	for idx := p.Y*f.cols + p.X; idx >= 0; idx = f.from[idx] {
		rev = append(rev, world.Point{X: idx % f.cols, Y: idx / f.cols})
	}
	path := make([]world.Point, len(rev))
	for i, q := range rev {
		path[len(rev)-1-i] = q
	}
	return path
}

// Dijkstra runs a multi-source shortest-path search over a cols x rows grid.
// The weight of an edge is the cost of entering its destination cell; sources
// start at zero whatever their own terrain. If stop is non-nil the search ends
// as soon as a cell satisfying it is settled, leaving unsettled cells with
// upper bounds only.
func Dijkstra(cols, rows int, sources []world.Point, cost CostFunc, conn world.Connectivity, stop func(world.Point) bool) *Field {
	n := cols * rows
	f := &Field{
		cols:    cols,
		rows:    rows,
		dist:    make([]int, n),
		from:    make([]int, n),
		sources: sources,
	}
	for i := range f.dist {
		f.dist[i] = terrain.Infinity
		f.from[i] = -1
	}

	h := heap.New[heapEntry](entryLess)
	order := 0
	for _, s := range sources {
		if !f.inBounds(s) {
			continue
		}
		idx := s.Y*cols + s.X
		if f.dist[idx] == 0 {
			continue
		}
		f.dist[idx] = 0
		h.Push(heapEntry{idx: idx, dist: 0, order: order})
		order++
	}

	dirs := conn.Directions()
	for h.Size() > 0 {
		e, _ := h.Pop()
		if e.dist > f.dist[e.idx] {
			continue // stale entry
		}
		p := world.Point{X: e.idx % cols, Y: e.idx / cols}
		if stop != nil && stop(p) {
			break
		}
		for _, d := range dirs {
			q := p.Step(d)
			if !f.inBounds(q) {
				continue
			}
			c := cost(q)
			if c >= terrain.Infinity {
				continue
			}
			qi := q.Y*cols + q.X
			if nd := e.dist + c; nd < f.dist[qi] {
				f.dist[qi] = nd
				f.from[qi] = e.idx
				h.Push(heapEntry{idx: qi, dist: nd, order: order})
				order++
			}
		}
	}
	return f
}

// Compute is the distance field of category cat from source across a terrain grid.
func Compute(grid *world.Grid[terrain.Terrain], source world.Point, cat terrain.Category, costs *terrain.CostTable, conn world.Connectivity) *Field {
	cost := func(p world.Point) int {
		return costs.Cost(cat, grid.At(p))
	}
	return Dijkstra(grid.Cols(), grid.Rows(), []world.Point{source}, cost, conn, nil)
}
