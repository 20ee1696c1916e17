package ai

import "snake-pilot/game/types"

// simulation is a detached copy of the snake that can be stepped forward
// without touching the snapshot.
type simulation struct {
	grid    types.Grid
	body    []types.Point
	occ     *occupancy
	heading types.Direction
}

func (v *view) simulate() *simulation {
	body := make([]types.Point, len(v.body))
	copy(body, v.body)
	return &simulation{
		grid:    v.grid,
		body:    body,
		occ:     v.occ.clone(),
		heading: v.heading,
	}
}

func (s *simulation) head() types.Point {
	return s.body[0]
}

// turn changes heading unless d would reverse it.
func (s *simulation) turn(d types.Direction) {
	if d != types.None && !d.Reverses(s.heading) {
		s.heading = d
	}
}

// nextHead is the cell the head would enter; ok is false when it leaves a
// bounded board.
func (s *simulation) nextHead() (types.Point, bool) {
	return s.grid.Step(s.head(), s.heading)
}

// push moves the head to p and drops the tail unless grow is set.
func (s *simulation) push(p types.Point, grow bool) {
	s.body = append(s.body, types.Point{})
	copy(s.body[1:], s.body)
	s.body[0] = p
	s.occ.add(p)
	if !grow {
		tail := s.body[len(s.body)-1]
		s.body = s.body[:len(s.body)-1]
		s.occ.remove(tail)
	}
}

// predict follows path for up to steps moves, eating food on the way.
func (v *view) predict(path []types.Direction, steps int) *simulation {
	sim := v.simulate()
	foods := make(map[types.Point]struct{}, len(v.foods))
	for _, f := range v.foods {
		foods[f] = struct{}{}
	}

	for i := 0; i < min(len(path), steps); i++ {
		sim.turn(path[i])
		head, ok := sim.nextHead()
		if !ok {
			break
		}
		_, eat := foods[head]
		if eat {
			delete(foods, head)
		}
		sim.push(head, eat)
	}
	return sim
}
