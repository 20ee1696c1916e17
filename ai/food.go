package ai

import (
	"math"

	"golang.org/x/exp/slices"

	"snake-pilot/game/types"
)

const (
	wrapThreshold = 1.0
	wrapDiscount  = 0.3
	wrapBonus     = 15
)

// route is the path chosen towards one food together with what was learned
// choosing it.
type route struct {
	target         types.Point
	path           []types.Direction
	wrapped        bool
	directCollides bool
	risky          bool
}

// wrapBenefit weighs a boundary-crossing path against the direct one. Both
// paths must be non-empty for a wrap to be worth anything.
func (v *view) wrapBenefit(direct, wrapped []types.Direction, target types.Point) float64 {
	if len(direct) == 0 || len(wrapped) == 0 {
		return 0
	}

	ratio := float64(len(direct)) / float64(max(len(wrapped), 1))

	first, _ := v.grid.Step(v.head(), wrapped[0])
	postWrap := freeSpace(v.grid, first, v.occ, 4) / 10

	hunger := 0.0
	if v.starving {
		hunger = 3
	}

	risk := 0.0
	if v.isRiskyPath(wrapped, false, defaultHorizon) {
		risk = 0.8
	}

	future := v.predict(wrapped, 3)
	futureSpace := freeSpace(v.grid, future.head(), future.occ, 5) / 20

	edge := 0.0
	if v.grid.EdgeDistance(target) < 3 {
		edge = 0.5
	}

	factor := 1.0
	switch {
	case v.length() > 20:
		factor = 1.5
	case v.length() > 10:
		factor = 1.2
	}

	return (ratio + postWrap + hunger + futureSpace + edge - risk) * wrapDiscount * factor
}

// routeTo searches the direct path to food and, on a toroidal board, the
// wrapped one, and keeps the wrapped path when it pays off or the direct path
// runs into the body.
func (v *view) routeTo(food types.Point) route {
	r := route{target: food}
	direct, _ := v.findPath(v.head(), food, SearchOptions{Heading: v.heading})
	r.path = direct
	r.directCollides = v.isRiskyPath(direct, true, defaultHorizon)

	if v.grid.Toroidal() {
		wrapped, _ := v.findPath(v.head(), food, SearchOptions{Wrap: true, Heading: v.heading})
		if len(wrapped) > 0 && (r.directCollides || v.wrapBenefit(direct, wrapped, food) > wrapThreshold) {
			r.path = wrapped
			r.wrapped = true
		}
	}

	if len(r.path) > 0 {
		r.risky = v.isRiskyPath(r.path, false, defaultHorizon)
	}
	return r
}

// scoreFood rates a food reached along r. Higher is better.
func (v *view) scoreFood(r route) float64 {
	if len(r.path) == 0 {
		return -1
	}
	g := v.grid
	head := v.head()
	food := r.target

	distance := len(r.path)
	if g.Toroidal() {
		distance = g.Distance(head, food)
	}
	score := 100 / float64(distance+1)

	if r.wrapped {
		score += wrapBonus
		if r.directCollides {
			score += 8
		}
	}

	spaceWeight := 0.3
	if v.length() >= 15 {
		spaceWeight = 0.7
	}
	score += freeSpace(g, food, v.occ, 5) * spaceWeight

	switch {
	case g.Toroidal():
		nearEdge := head.X < 4 || head.X >= g.Width-4 || head.Y < 4 || head.Y >= g.Height-4
		near, far := [3]float64{15, 30, 40}, [3]float64{0, 5, 10}
		if nearEdge {
			score += near[lengthTier(v.length())]
		} else {
			score += far[lengthTier(v.length())]
		}
	case v.length() < 10:
		cx, cy := float64(g.Width)/2, float64(g.Height)/2
		if math.Abs(float64(food.X)-cx) < 5 && math.Abs(float64(food.Y)-cy) < 5 {
			score += 30
		} else {
			score -= 10
		}
	}

	switch {
	case r.risky && g.Toroidal():
		score -= 80
	case r.risky:
		score -= 200
	case r.wrapped && r.directCollides:
		score += 150
	default:
		score += 80
	}

	if g.Toroidal() && g.EdgeDistance(food) < 3 {
		score += 25
	}
	return score
}

// bestFood picks the path to follow towards food. A starving snake goes for
// the nearest food; otherwise the best scoring food with a safe path wins.
func (v *view) bestFood() (route, bool) {
	if len(v.foods) == 0 {
		return route{}, false
	}
	if v.starving {
		return v.starvingRoute(), true
	}

	var best route
	bestScore := math.Inf(-1)
	found := false
	for _, food := range v.foods {
		r := v.routeTo(food)
		if len(r.path) == 0 || r.risky {
			continue
		}
		if s := v.scoreFood(r); s > bestScore {
			best, bestScore, found = r, s, true
		}
	}
	return best, found
}

// starvingRoute takes the shortest search path to the nearest foods. When no
// path exists it steps straight at the first of them, or escapes if that step
// is unsafe.
func (v *view) starvingRoute() route {
	head := v.head()
	nearest := v.nearestFoods(head)

	var best route
	for _, food := range nearest {
		path, _ := v.findPath(head, food, SearchOptions{Wrap: true, Heading: v.heading})
		if len(path) == 0 {
			continue
		}
		if len(best.path) == 0 || len(path) < len(best.path) {
			best = route{target: food, path: path, wrapped: v.pathCrosses(path)}
		}
	}
	if len(best.path) > 0 {
		return best
	}

	target := nearest[0]
	d := v.stepToward(head, target)
	if _, ok := v.safeStep(head, d, true); !ok || d.Reverses(v.heading) {
		d = v.alternativeEscape(nearest)
	}
	return route{target: target, path: []types.Direction{d}}
}

// nearestFoods returns every food at the minimum grid distance from p.
func (v *view) nearestFoods(p types.Point) []types.Point {
	best := math.MaxInt
	var out []types.Point
	for _, f := range v.foods {
		switch d := v.grid.Distance(p, f); {
		case d < best:
			best = d
			out = append(out[:0], f)
		case d == best:
			out = append(out, f)
		}
	}
	return out
}

// stepToward moves horizontally towards target unless already aligned on x.
// On a toroidal board it goes round whichever side is shorter.
func (v *view) stepToward(from, target types.Point) types.Direction {
	g := v.grid
	if from.X != target.X {
		if g.Toroidal() {
			if dx := ((target.X-from.X)%g.Width + g.Width) % g.Width; dx > g.Width/2 {
				return types.Left
			}
			return types.Right
		}
		if target.X < from.X {
			return types.Left
		}
		return types.Right
	}
	if g.Toroidal() {
		if dy := ((target.Y-from.Y)%g.Height + g.Height) % g.Height; dy > g.Height/2 {
			return types.Up
		}
		return types.Down
	}
	if target.Y < from.Y {
		return types.Up
	}
	return types.Down
}

// alternativeEscape picks the safe direction, remembered danger included,
// whose next cell is closest to any of targets. It defaults to Right.
func (v *view) alternativeEscape(targets []types.Point) types.Direction {
	type option struct {
		dir  types.Direction
		dist int
	}
	var options []option
	for _, d := range types.Cardinal {
		if d.Reverses(v.heading) {
			continue
		}
		p, ok := v.safeStep(v.head(), d, true)
		if !ok {
			continue
		}
		dist := math.MaxInt
		for _, t := range targets {
			dist = min(dist, v.grid.Distance(p, t))
		}
		options = append(options, option{dir: d, dist: dist})
	}
	if len(options) == 0 {
		return types.Right
	}
	slices.SortStableFunc(options, func(a, b option) int {
		return a.dist - b.dist
	})
	return options[0].dir
}

// pathCrosses reports whether following path from the head crosses a board
// edge within its first five moves.
func (v *view) pathCrosses(path []types.Direction) bool {
	p := v.head()
	for i := 0; i < min(len(path), 5); i++ {
		if v.grid.Crosses(p, path[i]) {
			return true
		}
		p, _ = v.grid.Step(p, path[i])
	}
	return false
}
