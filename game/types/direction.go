package types

import "fmt"

// Direction is a cardinal heading.
type Direction int

const (
	None Direction = iota
	Up
	Right
	Down
	Left
)

// Cardinal lists the four headings in the order they are scanned everywhere.
var Cardinal = [4]Direction{Up, Right, Down, Left}

// ToPoint converts a Direction into a movement vector.
func (d Direction) ToPoint() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Right:
		return Point{X: 1, Y: 0}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{}
	}
}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Right:
		return Left
	case Down:
		return Up
	case Left:
		return Right
	}
	return None
}

// Reverses reports whether moving in d would turn 180 degrees from heading.
func (d Direction) Reverses(heading Direction) bool {
	return d != None && heading != None && d == heading.Opposite()
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return "none"
}

// ParseDirection is the inverse of String.
func ParseDirection(s string) (Direction, bool) {
	for _, d := range Cardinal {
		if d.String() == s {
			return d, true
		}
	}
	return None, false
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, ok := ParseDirection(string(text))
	if !ok && string(text) != "none" {
		return fmt.Errorf("unknown direction %q", text)
	}
	*d = parsed
	return nil
}
