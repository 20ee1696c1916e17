package ai

import "snake-pilot/game/types"

const cornerWeight = 1.5

// freeSpace counts unoccupied cells in the (2r+1)² window around center.
// It is an occupancy count over a box, not a flood fill: cells walled off by
// body segments outside the window are still counted. Every free cell weighs
// 1.5 when the center is a board corner. Thresholds in the risk and trap
// checks are tuned against this measure.
func freeSpace(g types.Grid, center types.Point, occ *occupancy, radius int) float64 {
	if g.Toroidal() {
		center = g.Wrap(center)
	}
	weight := 1.0
	if g.IsCorner(center) {
		weight = cornerWeight
	}

	count := 0.0
	for x := center.X - radius; x <= center.X+radius; x++ {
		for y := center.Y - radius; y <= center.Y+radius; y++ {
			p, ok := g.Normalize(types.Point{X: x, Y: y})
			if !ok {
				continue
			}
			if !occ.has(p) {
				count += weight
			}
		}
	}
	return count
}

// defaultRadius is used when a caller passes no radius.
func defaultRadius(g types.Grid, snakeLen int) int {
	if g.Toroidal() {
		return 10
	}
	return min(7, snakeLen/4+3)
}

// freeSpace measures around center against occ, falling back to the default
// radius for the current snake length.
func (v *view) freeSpace(center types.Point, occ *occupancy, radius int) float64 {
	if radius <= 0 {
		radius = defaultRadius(v.grid, v.length())
	}
	return freeSpace(v.grid, center, occ, radius)
}
