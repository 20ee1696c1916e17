package ai

import (
	"time"

	"snake-pilot/game/types"
)

// line returns n cells starting at head and running away from heading, so a
// snake built from it is moving in heading.
func line(head types.Point, heading types.Direction, n int) []types.Point {
	back := heading.Opposite().ToPoint()
	body := make([]types.Point, n)
	for i := range body {
		body[i] = types.Point{X: head.X + back.X*i, Y: head.Y + back.Y*i}
	}
	return body
}

func testState(g types.Grid, body []types.Point, heading types.Direction, foods ...types.Point) State {
	return State{
		Grid:       g,
		Snake:      body,
		Heading:    heading,
		Next:       heading,
		Foods:      foods,
		Difficulty: types.Easy,
	}
}

func starvingState(s State) State {
	s.SinceFed = 11 * time.Second
	return s
}

func testView(s State) *view {
	return New(WithSeed(7)).view(s)
}

// packedBlock fills x, y in [0, n) except the given holes.
func packedBlock(n int, holes ...types.Point) []types.Point {
	skip := make(map[types.Point]bool, len(holes))
	for _, h := range holes {
		skip[h] = true
	}
	var cells []types.Point
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if p := (types.Point{X: x, Y: y}); !skip[p] {
				cells = append(cells, p)
			}
		}
	}
	return cells
}

// corridorState is a snake packed into the top-left 15×15 block with a dead
// end corridor at y=7 from x=12 to x=14. The head waits at its mouth heading
// down with food at the far end.
func corridorState() State {
	head := types.Point{X: 15, Y: 7}
	neck := types.Point{X: 15, Y: 6}
	block := packedBlock(15,
		types.Point{X: 12, Y: 7},
		types.Point{X: 13, Y: 7},
		types.Point{X: 14, Y: 7},
	)
	// Keep the tail far from the corridor.
	for i, p := range block {
		if p == (types.Point{}) {
			block[i], block[len(block)-1] = block[len(block)-1], block[i]
			break
		}
	}
	body := append([]types.Point{head, neck}, block...)
	return testState(types.NewGrid(30, types.Bounded), body, types.Down, types.Point{X: 12, Y: 7})
}

// pocketState is a snake packed into the top-left 15×15 block, leaving a 2×2
// pocket at (6..7, 6..7). The head has just entered (6,6) heading right and
// the body still fills (7,6), so the head is walled in on three sides.
func pocketState() State {
	head := types.Point{X: 6, Y: 6}
	block := packedBlock(15, head, types.Point{X: 6, Y: 7}, types.Point{X: 7, Y: 7})
	body := append([]types.Point{head}, block...)
	return testState(types.NewGrid(30, types.Bounded), body, types.Right)
}

// roomState packs the snake into the top-left 17×17 block around a 3×3 room
// centred on the head at (8,8). The room leaves enough cells to avoid the
// cramped escape but every move ends short of the clearance a long snake
// needs.
func roomState() State {
	head := types.Point{X: 8, Y: 8}
	var room []types.Point
	for y := 7; y <= 9; y++ {
		for x := 7; x <= 9; x++ {
			room = append(room, types.Point{X: x, Y: y})
		}
	}
	body := append([]types.Point{head}, packedBlock(17, room...)...)
	return testState(types.NewGrid(30, types.Bounded), body, types.Right)
}
