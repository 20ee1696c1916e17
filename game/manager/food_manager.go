package manager

import (
	"math"

	"golang.org/x/exp/rand"

	"snake-pilot/game/types"
)

const (
	recentTail = 5 // tail cells kept free of food
	edgeBand   = 4 // toroidal edge band that is weighted up
	edgeWeight = 3
)

// DangerFunc reports whether a cell is remembered as dangerous.
type DangerFunc func(types.Point) bool

type FoodManager struct {
	grid         types.Grid
	foodList     []types.Point
	rng          *rand.Rand
	collisionMgr *CollisionManager
}

func NewFoodManager(grid types.Grid, collisionMgr *CollisionManager, rng *rand.Rand) *FoodManager {
	return &FoodManager{
		grid:         grid,
		foodList:     make([]types.Point, 0),
		rng:          rng,
		collisionMgr: collisionMgr,
	}
}

// FoodCount is the size of a food batch. Extreme difficulty scales with the
// score, otherwise the batch equals the difficulty.
func FoodCount(d types.Difficulty, score int) int {
	if d != types.Extreme {
		return int(d)
	}
	switch {
	case score >= 5000:
		return 10
	case score >= 2500:
		return 8
	case score >= 1000:
		return 6
	}
	return 4
}

// MinSeparation is the Euclidean distance two foods of a batch must exceed.
func MinSeparation(d types.Difficulty) float64 {
	if d == types.Extreme {
		return 5
	}
	return 3
}

// GenerateFood replaces the food list with a fresh batch. Candidate cells
// avoid the body, the last tail cells and danger; in toroidal mode cells near
// the edges are three times as likely. When the candidates run out before
// the batch is full, random cells off the body are tried for a bounded
// number of attempts.
func (fm *FoodManager) GenerateFood(body []types.Point, d types.Difficulty, score int, danger DangerFunc) []types.Point {
	count := FoodCount(d, score)
	minDist := MinSeparation(d)

	occupied := make(map[types.Point]bool, len(body))
	for _, p := range body {
		occupied[p] = true
	}
	recent := make(map[types.Point]bool, recentTail)
	for _, p := range body[max(0, len(body)-recentTail):] {
		recent[p] = true
	}

	var candidates []types.Point
	for x := 0; x < fm.grid.Width; x++ {
		for y := 0; y < fm.grid.Height; y++ {
			p := types.Point{X: x, Y: y}
			if occupied[p] || recent[p] || (danger != nil && danger(p)) {
				continue
			}
			weight := 1
			if fm.grid.Toroidal() && fm.nearEdge(p) {
				weight = edgeWeight
			}
			for i := 0; i < weight; i++ {
				candidates = append(candidates, p)
			}
		}
	}

	foods := make([]types.Point, 0, count)
	for len(foods) < count && len(candidates) > 0 {
		i := fm.rng.Intn(len(candidates))
		p := candidates[i]
		candidates[i] = candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]
		if separated(foods, p, minDist) {
			foods = append(foods, p)
		}
	}

	for attempts := fm.grid.Cells() * 4; len(foods) < count && attempts > 0; attempts-- {
		p := types.Point{X: fm.rng.Intn(fm.grid.Width), Y: fm.rng.Intn(fm.grid.Height)}
		if fm.collisionMgr.ValidateSpawnPosition(p, body) && separated(foods, p, minDist) {
			foods = append(foods, p)
		}
	}

	fm.foodList = foods
	return fm.GetFoodList()
}

func (fm *FoodManager) nearEdge(p types.Point) bool {
	return p.X < edgeBand || p.X >= fm.grid.Width-edgeBand ||
		p.Y < edgeBand || p.Y >= fm.grid.Height-edgeBand
}

// separated also rejects duplicates, since a distance of zero never exceeds
// the minimum.
func separated(foods []types.Point, p types.Point, minDist float64) bool {
	for _, f := range foods {
		if math.Hypot(float64(f.X-p.X), float64(f.Y-p.Y)) <= minDist {
			return false
		}
	}
	return true
}

// GetFoodList returns a copy of the current foods.
func (fm *FoodManager) GetFoodList() []types.Point {
	foods := make([]types.Point, len(fm.foodList))
	copy(foods, fm.foodList)
	return foods
}

func (fm *FoodManager) SetFoodList(foods []types.Point) {
	fm.foodList = append(fm.foodList[:0], foods...)
}

func (fm *FoodManager) Len() int {
	return len(fm.foodList)
}

// EatAt removes the food at p and reports whether there was one.
func (fm *FoodManager) EatAt(p types.Point) bool {
	i := fm.collisionMgr.CheckFoodCollisions(p, fm.foodList)
	if i < 0 {
		return false
	}
	fm.foodList = append(fm.foodList[:i], fm.foodList[i+1:]...)
	return true
}
