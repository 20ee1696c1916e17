package ai

import (
	"math"

	"golang.org/x/exp/slices"

	"snake-pilot/game/types"
)

// explore chooses a direction when no food is worth chasing. Remembered
// successful directions come first, then cells the snake has not stood on
// recently, then whatever direction has the most room.
func (v *view) explore() []types.Direction {
	if v.starving {
		return nil
	}
	head := v.head()

	for _, p := range v.patterns {
		if p.Rate <= 0.7 || p.Dir.Reverses(v.heading) {
			continue
		}
		if _, ok := v.safeStep(head, p.Dir, false); ok {
			return []types.Direction{p.Dir}
		}
	}

	dirs := make([]types.Direction, 0, len(types.Cardinal))
	for _, d := range types.Cardinal {
		if !d.Reverses(v.heading) {
			dirs = append(dirs, d)
		}
	}
	if v.grid.Toroidal() {
		slices.SortStableFunc(dirs, func(a, b types.Direction) int {
			pa, _ := v.grid.Step(head, a)
			pb, _ := v.grid.Step(head, b)
			aFree, bFree := !v.occ.has(pa), !v.occ.has(pb)
			if aFree && !bFree {
				return -1
			}
			if !aFree && bFree {
				return 1
			}
			return v.grid.EdgeDistance(pa) - v.grid.EdgeDistance(pb)
		})
	}

	var fresh []types.Direction
	for _, d := range dirs {
		p, ok := v.safeStep(head, d, false)
		if !ok {
			continue
		}
		if _, seen := v.recent[p]; !seen {
			fresh = append(fresh, d)
		}
	}
	if len(fresh) > 0 {
		slices.SortStableFunc(fresh, func(a, b types.Direction) int {
			return compareFloat(v.boundaryScore(a), v.boundaryScore(b))
		})
		return []types.Direction{fresh[0]}
	}

	var open []types.Direction
	for _, d := range dirs {
		if _, ok := v.safeStep(head, d, false); ok {
			open = append(open, d)
		}
	}
	if len(open) == 0 {
		return []types.Direction{types.Right}
	}
	slices.SortStableFunc(open, func(a, b types.Direction) int {
		pa, _ := v.grid.Step(head, a)
		pb, _ := v.grid.Step(head, b)
		return compareFloat(freeSpace(v.grid, pb, v.occ, 3), freeSpace(v.grid, pa, v.occ, 3))
	})
	return []types.Direction{open[0]}
}

// boundaryScore ranks a move by how it places the head relative to the edges
// and the centre. Lower scores are explored first.
func (v *view) boundaryScore(d types.Direction) float64 {
	if v.starving {
		return 0
	}
	g := v.grid
	head := v.head()
	p := head.Add(d.ToPoint())
	if g.Toroidal() {
		p = g.Wrap(p)
	}
	n := v.length()

	var bw, cw float64
	switch {
	case g.Toroidal() && n > 25:
		bw, cw = 0.95, 0.05
	case g.Toroidal() && n > 15:
		bw, cw = 0.85, 0.15
	case g.Toroidal():
		bw, cw = 0.7, 0.3
	case n < 15:
		bw, cw = 0.5, 0.5
	default:
		bw, cw = 0.8, 0.2
	}

	edge := g.EdgeDistance(p)
	adjusted := float64(edge)
	if g.Toroidal() {
		adjusted = float64(6 - min(edge, 6))
	}
	centre := math.Abs(float64(p.X)-float64(g.Width)/2) + math.Abs(float64(p.Y)-float64(g.Height)/2)

	bonus := 0.0
	if g.Toroidal() && edge < 3 {
		if v.occ.has(p) {
			bonus = 10
		} else {
			bonus = [3]float64{15, 25, 35}[lengthTier(n)]
		}
	}
	if g.Toroidal() && g.EdgeDistance(head) < 2 && edge > 4 {
		bonus += 10
	}

	return adjusted*bw + centre*cw + bonus
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
