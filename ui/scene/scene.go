// Package scene flattens a game into what a viewer draws: one kind per cell
// and the status panel lines. It has no rendering dependency so the GUI and
// the terminal viewer share it.
package scene

import (
	"fmt"
	"time"

	"snake-pilot/ai"
	"snake-pilot/game"
	"snake-pilot/game/types"
)

// Kind is what occupies a cell.
type Kind uint8

const (
	Empty Kind = iota
	Body
	Tail
	Head
	Food
	TargetFood // nearest food while starving
	DangerFood // food on a remembered danger cell
)

type Scene struct {
	Width    int
	Height   int
	Toroidal bool
	Cells    []Kind
	Head     types.Point
	Heading  types.Direction
	Status   game.Status
	Lines    []string
	History  []int
}

// At returns the kind of the cell at x, y.
func (s Scene) At(x, y int) Kind {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return Empty
	}
	return s.Cells[y*s.Width+x]
}

func Build(g *game.Game) Scene {
	grid := g.Grid
	s := Scene{
		Width:    grid.Width,
		Height:   grid.Height,
		Toroidal: grid.Toroidal(),
		Cells:    make([]Kind, grid.Cells()),
		Heading:  g.Snake.Direction,
		Status:   g.Status(),
		History:  g.Stats().GetScoreHistory(),
	}
	set := func(p types.Point, k Kind) {
		if grid.Contains(p) {
			s.Cells[grid.Index(p)] = k
		}
	}

	foods := g.Foods()
	now := g.Now()
	danger := g.Pilot().Danger()
	for _, f := range foods {
		if danger.Contains(f, now) {
			set(f, DangerFood)
		} else {
			set(f, Food)
		}
	}

	body := g.Snake.Body
	if len(body) > 0 {
		s.Head = body[0]
		if s.Status.Hunger == ai.Starving && len(foods) > 0 {
			set(nearest(grid, body[0], foods), TargetFood)
		}
		for i := len(body) - 1; i >= 1; i-- {
			if i == len(body)-1 {
				set(body[i], Tail)
			} else {
				set(body[i], Body)
			}
		}
		set(body[0], Head)
	}

	s.Lines = statusLines(g, s.Status)
	return s
}

func nearest(grid types.Grid, from types.Point, foods []types.Point) types.Point {
	best := foods[0]
	for _, f := range foods[1:] {
		if grid.Distance(from, f) < grid.Distance(from, best) {
			best = f
		}
	}
	return best
}

func statusLines(g *game.Game, st game.Status) []string {
	state := "paused"
	switch {
	case st.Over:
		state = "game over"
	case st.Running:
		state = "running"
	}
	pilot := "off"
	if st.Autopilot {
		pilot = "on (" + st.Reason.String() + ")"
	}
	return []string{
		"State: " + state,
		"Pilot: " + pilot,
		fmt.Sprintf("Mode: %s / %s", g.Grid.Mode, g.Difficulty),
		"Hunger: " + st.Hunger.String(),
		"Risk: " + st.Risk.String(),
		fmt.Sprintf("Score: %d (best %d)", st.Score, st.HighScore),
		fmt.Sprintf("Length: %d", st.Length),
		"Time: " + clock(st.Elapsed),
	}
}

func clock(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
}
