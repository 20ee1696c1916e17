package ai

import "snake-pilot/game/types"

// occupancy counts body segments per cell over a flattened grid. Counts can
// exceed one while a simulated head overlaps the body.
type occupancy struct {
	grid  types.Grid
	cells []uint16
}

func newOccupancy(grid types.Grid, body []types.Point) *occupancy {
	o := &occupancy{grid: grid, cells: make([]uint16, grid.Cells())}
	for _, p := range body {
		o.add(p)
	}
	return o
}

func (o *occupancy) count(p types.Point) int {
	if !o.grid.Contains(p) {
		return 0
	}
	return int(o.cells[o.grid.Index(p)])
}

func (o *occupancy) has(p types.Point) bool {
	return o.count(p) > 0
}

func (o *occupancy) add(p types.Point) {
	if o.grid.Contains(p) {
		o.cells[o.grid.Index(p)]++
	}
}

func (o *occupancy) remove(p types.Point) {
	if o.grid.Contains(p) && o.cells[o.grid.Index(p)] > 0 {
		o.cells[o.grid.Index(p)]--
	}
}

func (o *occupancy) clone() *occupancy {
	cells := make([]uint16, len(o.cells))
	copy(cells, o.cells)
	return &occupancy{grid: o.grid, cells: cells}
}
