package ai

import (
	"testing"

	"snake-pilot/game/types"
)

// walk follows path from start and returns the cell it ends on.
func walk(g types.Grid, start types.Point, path []types.Direction) (types.Point, bool) {
	p := start
	for _, d := range path {
		var ok bool
		if p, ok = g.Step(p, d); !ok {
			return p, false
		}
	}
	return p, true
}

func TestFindPathShortestOnEmptyGrid(t *testing.T) {
	targets := []types.Point{
		{X: 0, Y: 0}, {X: 29, Y: 29}, {X: 29, Y: 0}, {X: 0, Y: 29},
		{X: 15, Y: 15}, {X: 3, Y: 27}, {X: 25, Y: 4}, {X: 11, Y: 10},
	}
	starts := []types.Point{{X: 10, Y: 10}, {X: 0, Y: 15}, {X: 28, Y: 1}, {X: 29, Y: 29}}

	for _, mode := range []types.Mode{types.Bounded, types.Toroidal} {
		g := types.NewGrid(30, mode)
		for _, start := range starts {
			v := testView(testState(g, []types.Point{start}, types.None))
			for _, target := range targets {
				if target == start {
					continue
				}
				path, found := v.findPath(start, target, SearchOptions{Wrap: true})
				if !found {
					t.Errorf("%v: no path from %v to %v", mode, start, target)
					continue
				}
				if want := g.Distance(start, target); len(path) != want {
					t.Errorf("%v: path from %v to %v has %d steps, want %d", mode, start, target, len(path), want)
				}
				if end, ok := walk(g, start, path); !ok || end != target {
					t.Errorf("%v: path from %v ends at %v, want %v", mode, start, end, target)
				}
			}
		}
	}
}

func TestFindPathNeverReversesFirst(t *testing.T) {
	testCases := []struct {
		name    string
		mode    types.Mode
		heading types.Direction
		start   types.Point
		target  types.Point
	}{
		{"target straight behind", types.Bounded, types.Right, types.Point{X: 10, Y: 10}, types.Point{X: 5, Y: 10}},
		{"target one cell behind", types.Bounded, types.Up, types.Point{X: 10, Y: 10}, types.Point{X: 10, Y: 11}},
		{"toroidal behind", types.Toroidal, types.Left, types.Point{X: 0, Y: 3}, types.Point{X: 2, Y: 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := types.NewGrid(30, tc.mode)
			v := testView(testState(g, []types.Point{tc.start}, tc.heading))
			path, found := v.findPath(tc.start, tc.target, SearchOptions{Wrap: true, Heading: tc.heading})
			if !found || len(path) == 0 {
				t.Fatalf("expected a path, got %v found=%v", path, found)
			}
			if path[0].Reverses(tc.heading) {
				t.Errorf("first move %v reverses heading %v", path[0], tc.heading)
			}
			if end, _ := walk(g, tc.start, path); end != tc.target {
				t.Errorf("path ends at %v, want %v", end, tc.target)
			}
		})
	}
}

func TestFindPathDegenerate(t *testing.T) {
	g := types.NewGrid(30, types.Bounded)
	start := types.Point{X: 4, Y: 4}
	v := testView(testState(g, []types.Point{start}, types.Right))

	path, found := v.findPath(start, start, SearchOptions{})
	if !found || len(path) != 0 {
		t.Errorf("start == target: got %v found=%v, want empty and found", path, found)
	}

	// A target walled in by the body is unreachable.
	walled := types.Point{X: 20, Y: 20}
	body := []types.Point{start, {X: 20, Y: 19}, {X: 21, Y: 20}, {X: 20, Y: 21}, {X: 19, Y: 20}}
	v = testView(testState(g, body, types.Right))
	if path, found := v.findPath(start, walled, SearchOptions{}); found || len(path) != 0 {
		t.Errorf("walled target: got %v found=%v, want nothing", path, found)
	}

	// A tiny budget gives up before reaching a distant target.
	if _, found := v.findPath(start, types.Point{X: 28, Y: 28}, SearchOptions{MaxSteps: 3}); found {
		t.Error("expected the step budget to stop the search")
	}
}

func TestFindPathAvoidsBody(t *testing.T) {
	g := types.NewGrid(30, types.Bounded)
	// A wall at x=12 from y=5 to y=15 sits between start and target.
	body := []types.Point{{X: 10, Y: 10}}
	for y := 5; y <= 15; y++ {
		body = append(body, types.Point{X: 12, Y: y})
	}
	v := testView(testState(g, body, types.Right))
	target := types.Point{X: 14, Y: 10}
	path, found := v.findPath(body[0], target, SearchOptions{Heading: types.Right})
	if !found {
		t.Fatal("expected a path around the wall")
	}
	occ := newOccupancy(g, body)
	p := body[0]
	for _, d := range path {
		p, _ = g.Step(p, d)
		if occ.has(p) {
			t.Fatalf("path steps onto the body at %v", p)
		}
	}
	if p != target {
		t.Errorf("path ends at %v, want %v", p, target)
	}
}

func TestFindPathWrapOnlyWhenAllowed(t *testing.T) {
	g := types.NewGrid(30, types.Toroidal)
	start, target := types.Point{X: 0, Y: 10}, types.Point{X: 29, Y: 10}
	v := testView(testState(g, []types.Point{start}, types.Left))

	wrapped, _ := v.findPath(start, target, SearchOptions{Wrap: true, Heading: types.Left})
	if len(wrapped) != 1 || wrapped[0] != types.Left {
		t.Errorf("wrap search = %v, want [left]", wrapped)
	}
	direct, _ := v.findPath(start, target, SearchOptions{})
	if len(direct) != 29 {
		t.Errorf("direct search has %d steps, want 29", len(direct))
	}
}

func TestWrapEdgeCost(t *testing.T) {
	g := types.NewGrid(30, types.Toroidal)
	interior := types.Point{X: 15, Y: 15}
	edge := types.Point{X: 1, Y: 15}

	testCases := []struct {
		name     string
		length   int
		starving bool
		target   types.Point
		want     float64
	}{
		{"short", 3, false, interior, 0.8},
		{"long", 16, false, interior, 0.6},
		{"very long", 26, false, interior, 0.4},
		{"starving", 26, true, interior, 0.3},
		{"target near edge", 3, false, edge, 0.8 * 0.7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := testState(g, line(types.Point{X: 10, Y: 28}, types.Down, tc.length), types.Down)
			if tc.starving {
				s = starvingState(s)
			}
			got := testView(s).wrapEdgeCost(tc.target)
			if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("wrapEdgeCost = %v, want %v", got, tc.want)
			}
		})
	}
}
