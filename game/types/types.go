package types

// Point is a cell coordinate on the grid.
type Point struct {
	X, Y int
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Mode selects how the grid edges behave.
type Mode int

const (
	Bounded  Mode = iota // leaving the grid is a wall collision
	Toroidal             // leaving the grid re-enters from the opposite edge
)

func (m Mode) String() string {
	if m == Toroidal {
		return "toroidal"
	}
	return "bounded"
}

// ParseMode accepts "bounded"/"normal" and "toroidal"/"wrap".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "bounded", "normal":
		return Bounded, true
	case "toroidal", "wrap", "wallThrough":
		return Toroidal, true
	}
	return Bounded, false
}

// Difficulty ranges from 1 (easy) to 4 (extreme).
type Difficulty int

const (
	Easy Difficulty = iota + 1
	Medium
	Hard
	Extreme
)

func (d Difficulty) Valid() bool {
	return d >= Easy && d <= Extreme
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case Extreme:
		return "extreme"
	}
	return "unknown"
}

// Game constants
const (
	DefaultGridSize = 30
	FoodScoreUnit   = 10 // Score per food, multiplied by difficulty
)
