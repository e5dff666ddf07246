package slot

import (
	"slices"

	"slot-reservation/internal/domain/resource"
)

type Cell struct {
	Index int
	Row   int
	Col   int
	Taken bool
}

func (c Cell) Free() bool { return !c.Taken }

type Grid struct {
	Rows  int
	Cols  int
	Total int
	Cells []Cell
}

// Project lays out every slot of g in row-major order and marks the occupied
// indexes as taken. Indexes outside the geometry are ignored.
func Project(g resource.Geometry, occupied []int) Grid {
	taken := make([]bool, g.Total())
	for _, i := range occupied {
		if g.Contains(i) {
			taken[i] = true
		}
	}

	cells := make([]Cell, g.Total())
	for i := range cells {
		row, col := g.Position(i)
		cells[i] = Cell{Index: i, Row: row, Col: col, Taken: taken[i]}
	}

	return Grid{Rows: g.Rows(), Cols: g.Cols(), Total: g.Total(), Cells: cells}
}

// OccupiedCount counts cells marked taken.
func (g Grid) OccupiedCount() int {
	n := 0
	for _, c := range g.Cells {
		if c.Taken {
			n++
		}
	}
	return n
}

// Diff reports indexes present in only one of two occupancy sets.
func Diff(a, b []int) (onlyA, onlyB []int) {
	inA := make(map[int]struct{}, len(a))
	for _, i := range a {
		inA[i] = struct{}{}
	}
	inB := make(map[int]struct{}, len(b))
	for _, i := range b {
		inB[i] = struct{}{}
		if _, ok := inA[i]; !ok {
			onlyB = append(onlyB, i)
		}
	}
	for _, i := range a {
		if _, ok := inB[i]; !ok {
			onlyA = append(onlyA, i)
		}
	}
	slices.Sort(onlyA)
	slices.Sort(onlyB)
	return onlyA, onlyB
}
