package ai

import (
	"math"

	"golang.org/x/exp/rand"

	"snake-pilot/game/types"
)

// view is the read-only board a single decision works on. Every search,
// simulation and score is a function of it.
type view struct {
	grid       types.Grid
	body       []types.Point
	heading    types.Direction
	next       types.Direction
	occ        *occupancy
	foods      []types.Point
	difficulty types.Difficulty
	starving   bool
	hungry     bool
	danger     map[types.Point]struct{}
	patterns   []Pattern
	recent     map[types.Point]struct{}
	inLoop     bool
	rng        *rand.Rand
}

func (v *view) head() types.Point {
	return v.body[0]
}

func (v *view) length() int {
	return len(v.body)
}

func (v *view) extreme() bool {
	return v.difficulty == types.Extreme
}

// safeCell resolves p for the grid mode and reports whether it is free of the
// body, and of remembered danger when checkDanger is set.
func (v *view) safeCell(p types.Point, checkDanger bool) (types.Point, bool) {
	q, ok := v.grid.Normalize(p)
	if !ok || v.occ.has(q) {
		return q, false
	}
	if checkDanger {
		if _, bad := v.danger[q]; bad {
			return q, false
		}
	}
	return q, true
}

// safeStep is safeCell for the neighbour of from in direction d.
func (v *view) safeStep(from types.Point, d types.Direction, checkDanger bool) (types.Point, bool) {
	return v.safeCell(from.Add(d.ToPoint()), checkDanger)
}

// safeDirections lists the non-reversing headings whose next cell is free.
func (v *view) safeDirections(checkDanger bool) []types.Direction {
	dirs := make([]types.Direction, 0, len(types.Cardinal))
	for _, d := range types.Cardinal {
		if d.Reverses(v.heading) {
			continue
		}
		if _, ok := v.safeStep(v.head(), d, checkDanger); ok {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// commit applies the no-reversal rule: a reversing choice leaves the queued
// move in place.
func (v *view) commit(d types.Direction) types.Direction {
	if d == types.None || d.Reverses(v.heading) {
		return v.next
	}
	return d
}

// validate checks that moving in d does not run into the body behind the head.
func (v *view) validate(d types.Direction) bool {
	p, ok := v.grid.Step(v.head(), d)
	if !ok {
		return false
	}
	for _, part := range v.body[1:] {
		if part == p {
			return false
		}
	}
	return true
}

// nearestFood returns the closest food by grid distance, or the board centre
// when there is none.
func (v *view) nearestFood(from types.Point) (types.Point, bool) {
	best := v.grid.Center()
	bestDist := math.MaxInt
	for _, f := range v.foods {
		if d := v.grid.Distance(from, f); d < bestDist {
			best, bestDist = f, d
		}
	}
	return best, bestDist != math.MaxInt
}

func (v *view) nearestFoodDistance() int {
	f, ok := v.nearestFood(v.head())
	if !ok {
		return math.MaxInt
	}
	return v.grid.Distance(v.head(), f)
}

// lengthTier buckets a snake length: 0 short, 1 long (>15), 2 very long (>25).
func lengthTier(n int) int {
	switch {
	case n > 25:
		return 2
	case n > 15:
		return 1
	}
	return 0
}
