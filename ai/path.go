package ai

import (
	"container/heap"
	"math"

	"golang.org/x/exp/slices"

	"snake-pilot/game/types"
)

// SearchOptions tunes a single path search.
type SearchOptions struct {
	// Wrap allows edges that cross a toroidal boundary. Ignored on a
	// bounded board.
	Wrap bool
	// MaxSteps caps node expansions. Zero means four times the cell count.
	MaxSteps int
	// Heading is the direction the snake arrived at start with. The first
	// move never reverses it.
	Heading types.Direction
}

type searchNode struct {
	idx int
	g   float64
	f   float64
	seq uint64
}

type searchHeap []searchNode

func (h searchHeap) Len() int { return len(h) }

func (h searchHeap) Less(i, j int) bool {
	if h[i].f == h[j].f {
		return h[i].seq < h[j].seq
	}
	return h[i].f < h[j].f
}

func (h searchHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *searchHeap) Push(x any) { *h = append(*h, x.(searchNode)) }

func (h *searchHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// findPath runs A* from start to target over cells not occupied by the
// snake. The heuristic adds a scarcity penalty on bounded searches and wrap
// edges are cheaper than normal ones, so the result is biased, not optimal.
// found is true with an empty path when start equals target.
func (v *view) findPath(start, target types.Point, opts SearchOptions) ([]types.Direction, bool) {
	if start == target {
		return nil, true
	}

	g := v.grid
	wrap := g.Toroidal() && opts.Wrap
	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = 4 * g.Cells()
	}

	n := g.Cells()
	gScore := make([]float64, n)
	hCache := make([]float64, n)
	parent := make([]int, n)
	move := make([]types.Direction, n)
	closed := make([]bool, n)
	for i := range gScore {
		gScore[i] = math.Inf(1)
		hCache[i] = -1
		parent[i] = -1
	}

	h := func(p types.Point) float64 {
		i := g.Index(p)
		if hCache[i] < 0 {
			hCache[i] = v.heuristic(p, target, wrap)
		}
		return hCache[i]
	}

	startIdx := g.Index(start)
	targetIdx := g.Index(target)
	gScore[startIdx] = 0

	var seq uint64
	open := &searchHeap{}
	heap.Push(open, searchNode{idx: startIdx, g: 0, f: h(start), seq: seq})

	edgeCost := v.wrapEdgeCost(target)
	dirs := types.Cardinal
	steps := 0
	for open.Len() > 0 && steps < maxSteps {
		cur := heap.Pop(open).(searchNode)
		if cur.g != gScore[cur.idx] || closed[cur.idx] {
			continue
		}
		if cur.idx == targetIdx {
			return v.reconstruct(parent, move, startIdx, targetIdx), true
		}
		closed[cur.idx] = true
		steps++

		p := g.PointAt(cur.idx)
		if wrap {
			v.orderNeighbours(p, dirs[:])
		}
		for _, d := range dirs {
			if cur.idx == startIdx && d.Reverses(opts.Heading) {
				continue
			}
			crosses := g.Crosses(p, d)
			if crosses && !wrap {
				continue
			}
			q, ok := v.safeStep(p, d, false)
			if !ok {
				continue
			}
			qi := g.Index(q)
			if closed[qi] {
				continue
			}

			cost := 1.0
			if crosses {
				cost = edgeCost
			}
			tentative := cur.g + cost
			if tentative >= gScore[qi] {
				continue
			}
			gScore[qi] = tentative
			parent[qi] = cur.idx
			move[qi] = d
			seq++
			heap.Push(open, searchNode{idx: qi, g: tentative, f: tentative + h(q), seq: seq})
		}
		dirs = types.Cardinal
	}
	return nil, false
}

func (v *view) reconstruct(parent []int, move []types.Direction, startIdx, targetIdx int) []types.Direction {
	var path []types.Direction
	for cur := targetIdx; cur != startIdx && cur >= 0; cur = parent[cur] {
		path = append(path, move[cur])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// heuristic estimates the remaining cost from p. Wrap searches use the
// wrapped distance. Other searches use Manhattan distance, doubled when
// starving, plus 10/(free space within 3 cells + 1) to steer away from
// cramped regions.
func (v *view) heuristic(p, target types.Point, wrap bool) float64 {
	if wrap {
		return float64(v.grid.WrappedDistance(p, target))
	}
	d := float64(types.Manhattan(p, target))
	if v.starving {
		d *= 2
	}
	return d + 10/(freeSpace(v.grid, p, v.occ, 3)+1)
}

// wrapEdgeCost is the price of an edge that crosses the board boundary.
// Hungry or long snakes pay less, and everyone pays less when the target sits
// close to an edge.
func (v *view) wrapEdgeCost(target types.Point) float64 {
	cost := 0.8
	switch {
	case v.starving:
		cost = 0.3
	case v.length() > 25:
		cost = 0.4
	case v.length() > 15:
		cost = 0.6
	}
	if v.grid.EdgeDistance(target) < 3 {
		cost *= 0.7
	}
	return cost
}

// orderNeighbours biases expansion order on toroidal boards: long snakes on an
// edge try the crossing axis first, starving snakes try crossings last.
func (v *view) orderNeighbours(p types.Point, dirs []types.Direction) {
	g := v.grid
	edgeX := p.X == 0 || p.X == g.Width-1
	edgeY := p.Y == 0 || p.Y == g.Height-1
	long := v.length() > 15

	slices.SortStableFunc(dirs, func(a, b types.Direction) int {
		if (edgeX || edgeY) && long && !v.starving {
			ax, bx := abs(a.ToPoint().X), abs(b.ToPoint().X)
			ay, by := abs(a.ToPoint().Y), abs(b.ToPoint().Y)
			if edgeX && (ax != 0 || bx != 0) {
				return bx - ax
			}
			if edgeY && (ay != 0 || by != 0) {
				return by - ay
			}
		}
		if v.starving {
			ac, bc := g.Crosses(p, a), g.Crosses(p, b)
			if ac && !bc {
				return 1
			}
			if !ac && bc {
				return -1
			}
		}
		return 0
	})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
