package ai

import (
	"testing"

	"snake-pilot/game/types"
)

// wrapState puts a twenty cell snake on row 10 with its head on the left
// edge, heading left, and food just across the edge at (29,10).
func wrapState() State {
	g := types.NewGrid(30, types.Toroidal)
	body := line(types.Point{X: 0, Y: 10}, types.Left, 20)
	return testState(g, body, types.Left, types.Point{X: 29, Y: 10})
}

func TestWrapBenefitPrefersShortcut(t *testing.T) {
	s := wrapState()
	v := testView(s)
	food := s.Foods[0]

	direct, _ := v.findPath(v.head(), food, SearchOptions{Heading: v.heading})
	wrapped, _ := v.findPath(v.head(), food, SearchOptions{Wrap: true, Heading: v.heading})
	if len(wrapped) != 1 || wrapped[0] != types.Left {
		t.Fatalf("wrapped path = %v, want [left]", wrapped)
	}
	if len(direct) <= len(wrapped) {
		t.Fatalf("direct path has %d steps, expected it to go the long way", len(direct))
	}
	if b := v.wrapBenefit(direct, wrapped, food); b <= wrapThreshold {
		t.Errorf("wrapBenefit = %v, want above %v", b, wrapThreshold)
	}

	r, ok := v.bestFood()
	if !ok {
		t.Fatal("expected a food route")
	}
	if !r.wrapped || len(r.path) != 1 || r.path[0] != types.Left {
		t.Errorf("bestFood = %+v, want the one step wrapped path", r)
	}
}

func TestWrapBenefitNeedsBothPaths(t *testing.T) {
	v := testView(wrapState())
	if b := v.wrapBenefit(nil, []types.Direction{types.Left}, types.Point{X: 29, Y: 10}); b != 0 {
		t.Errorf("missing direct path: benefit = %v, want 0", b)
	}
	if b := v.wrapBenefit([]types.Direction{types.Up}, nil, types.Point{X: 29, Y: 10}); b != 0 {
		t.Errorf("missing wrapped path: benefit = %v, want 0", b)
	}
}

func TestBestFoodBoundedNeverWraps(t *testing.T) {
	g := types.NewGrid(30, types.Bounded)
	s := testState(g, line(types.Point{X: 10, Y: 10}, types.Right, 3), types.Right,
		types.Point{X: 14, Y: 10}, types.Point{X: 25, Y: 25})
	r, ok := testView(s).bestFood()
	if !ok {
		t.Fatal("expected a food route")
	}
	if r.wrapped {
		t.Error("bounded boards have no wrapped routes")
	}
	if r.target != (types.Point{X: 14, Y: 10}) {
		t.Errorf("picked %v, want the close food at (14,10)", r.target)
	}
}

func TestBestFoodSkipsRiskyFood(t *testing.T) {
	r, ok := testView(corridorState()).bestFood()
	if ok {
		t.Errorf("expected the dead end food to be rejected, got %+v", r)
	}
}

func TestStarvingRouteTakesNearest(t *testing.T) {
	g := types.NewGrid(30, types.Bounded)
	s := starvingState(testState(g, line(types.Point{X: 10, Y: 10}, types.Right, 3), types.Right,
		types.Point{X: 20, Y: 10}, types.Point{X: 10, Y: 14}))
	r := testView(s).starvingRoute()
	if r.target != (types.Point{X: 10, Y: 14}) {
		t.Errorf("target = %v, want the nearest food", r.target)
	}
	if len(r.path) != 4 {
		t.Errorf("path %v, want 4 steps", r.path)
	}
}

func TestStepToward(t *testing.T) {
	testCases := []struct {
		name   string
		mode   types.Mode
		from   types.Point
		target types.Point
		want   types.Direction
	}{
		{"bounded right", types.Bounded, types.Point{X: 2, Y: 2}, types.Point{X: 9, Y: 0}, types.Right},
		{"bounded left", types.Bounded, types.Point{X: 9, Y: 2}, types.Point{X: 2, Y: 8}, types.Left},
		{"bounded aligned goes vertical", types.Bounded, types.Point{X: 4, Y: 9}, types.Point{X: 4, Y: 2}, types.Up},
		{"toroidal shorter way round", types.Toroidal, types.Point{X: 1, Y: 5}, types.Point{X: 28, Y: 5}, types.Left},
		{"toroidal aligned wraps down", types.Toroidal, types.Point{X: 3, Y: 28}, types.Point{X: 3, Y: 1}, types.Down},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := testView(testState(types.NewGrid(30, tc.mode), []types.Point{tc.from}, types.None))
			if got := v.stepToward(tc.from, tc.target); got != tc.want {
				t.Errorf("stepToward = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAlternativeEscapeAvoidsDanger(t *testing.T) {
	g := types.NewGrid(30, types.Bounded)
	s := testState(g, line(types.Point{X: 10, Y: 10}, types.Right, 3), types.Right)
	p := New(WithSeed(3))
	p.Danger().Add(types.Point{X: 11, Y: 10}, p.now())

	v := p.view(s)
	got := v.alternativeEscape([]types.Point{{X: 20, Y: 10}})
	if got == types.Right || got == types.Left {
		t.Errorf("alternativeEscape = %v, want a vertical move around the danger", got)
	}
}
