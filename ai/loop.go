package ai

import "snake-pilot/game/types"

const (
	historyLength = 30
	loopThreshold = 8
)

// closedLoop reports whether head, already pushed onto the simulated body in
// occ, is nearly walled in by the snake with too little room left to turn
// around in.
func (v *view) closedLoop(head types.Point, occ *occupancy, length int) bool {
	blocked := 0
	for _, d := range types.Cardinal {
		q, ok := v.grid.Step(head, d)
		if !ok {
			blocked++
			continue
		}
		n := occ.count(q)
		if q == head {
			n--
		}
		if n > 0 {
			blocked++
		}
	}

	threshold := 3
	if !v.grid.Toroidal() && v.extreme() {
		threshold = 2
	}
	if blocked < threshold {
		return false
	}

	radius, fraction := 7, 0.7
	switch {
	case v.grid.Toroidal():
		radius, fraction = 8, 0.3
	case v.extreme():
		fraction = 0.5
	}
	return freeSpace(v.grid, head, occ, radius) < float64(length)*fraction
}

type visit struct {
	cell    types.Point
	heading types.Direction
}

// positionHistory is a ring of the last head positions with the heading the
// snake arrived with.
type positionHistory struct {
	visits []visit
}

func (h *positionHistory) push(p types.Point, heading types.Direction) {
	h.visits = append(h.visits, visit{cell: p, heading: heading})
	if len(h.visits) > historyLength {
		h.visits = h.visits[len(h.visits)-historyLength:]
	}
}

func (h *positionHistory) reset() {
	h.visits = h.visits[:0]
}

// looping reports whether the snake has stood on p facing heading at least
// loopThreshold times within the window.
func (h *positionHistory) looping(p types.Point, heading types.Direction) bool {
	n := 0
	for _, rec := range h.visits {
		if rec.cell == p && rec.heading == heading {
			n++
		}
	}
	return n >= loopThreshold
}

func (h *positionHistory) cells() map[types.Point]struct{} {
	out := make(map[types.Point]struct{}, len(h.visits))
	for _, rec := range h.visits {
		out[rec.cell] = struct{}{}
	}
	return out
}
