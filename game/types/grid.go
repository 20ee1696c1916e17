package types

// Grid describes the board dimensions and how its edges behave.
type Grid struct {
	Width  int
	Height int
	Mode   Mode
}

// NewGrid returns a square grid of side n.
func NewGrid(n int, mode Mode) Grid {
	return Grid{Width: n, Height: n, Mode: mode}
}

func (g Grid) Toroidal() bool {
	return g.Mode == Toroidal
}

// Cells is the number of cells on the board.
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Contains reports whether p lies inside the board without wrapping.
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Wrap maps p onto the board modulo its dimensions.
func (g Grid) Wrap(p Point) Point {
	return Point{X: mod(p.X, g.Width), Y: mod(p.Y, g.Height)}
}

// Normalize resolves p according to the grid mode. In bounded mode a point
// outside the board is rejected.
func (g Grid) Normalize(p Point) (Point, bool) {
	if g.Mode == Toroidal {
		return g.Wrap(p), true
	}
	return p, g.Contains(p)
}

// Step moves p one cell in d. The result is wrapped in toroidal mode; ok is
// false when the move leaves a bounded board.
func (g Grid) Step(p Point, d Direction) (Point, bool) {
	return g.Normalize(p.Add(d.ToPoint()))
}

// Crosses reports whether moving from p in d exits the board.
func (g Grid) Crosses(p Point, d Direction) bool {
	return !g.Contains(p.Add(d.ToPoint()))
}

// Index flattens an in-board point.
func (g Grid) Index(p Point) int {
	return p.Y*g.Width + p.X
}

// PointAt is the inverse of Index.
func (g Grid) PointAt(i int) Point {
	return Point{X: i % g.Width, Y: i / g.Width}
}

// EdgeDistance is the distance from p to the nearest board edge.
func (g Grid) EdgeDistance(p Point) int {
	return min(p.X, g.Width-1-p.X, p.Y, g.Height-1-p.Y)
}

// IsCorner reports whether p sits on one of the four board corners.
func (g Grid) IsCorner(p Point) bool {
	return (p.X == 0 || p.X == g.Width-1) && (p.Y == 0 || p.Y == g.Height-1)
}

// Center returns the middle cell of the board.
func (g Grid) Center() Point {
	return Point{X: g.Width / 2, Y: g.Height / 2}
}

// Distance is the metric every component compares with: Manhattan on a
// bounded board, wrapped Manhattan on a toroidal one.
func (g Grid) Distance(a, b Point) int {
	if g.Mode == Toroidal {
		return g.WrappedDistance(a, b)
	}
	return Manhattan(a, b)
}

// WrappedDistance sums min(|d|, N-|d|) over both axes.
func (g Grid) WrappedDistance(a, b Point) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	return min(dx, g.Width-dx) + min(dy, g.Height-dy)
}

// Manhattan is the unwrapped L1 distance.
func Manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func mod(a, n int) int {
	if n <= 0 {
		return a
	}
	return ((a % n) + n) % n
}
