package entity

import (
	"snake-pilot/game/types"
)

type Color struct {
	R, G, B uint8
}

// Snake is the player body, head first. Direction is the heading of the last
// applied move and Next is the queued heading for the coming tick.
type Snake struct {
	Body      []types.Point
	Direction types.Direction
	Next      types.Direction
	Dead      bool
	Color     Color
}

func NewSnake(startPos types.Point, color Color) *Snake {
	return &Snake{
		Body:      []types.Point{startPos},
		Direction: types.Right, // Start moving right
		Next:      types.Right,
		Color:     color,
	}
}

func (s *Snake) Head() types.Point {
	return s.Body[0]
}

func (s *Snake) Tail() types.Point {
	return s.Body[len(s.Body)-1]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// SetDirection queues dir for the next move. A 180 degree turn against the
// current heading is ignored and the previous queue entry stays.
func (s *Snake) SetDirection(dir types.Direction) bool {
	if dir == types.None || dir.Reverses(s.Direction) {
		return false
	}
	s.Next = dir
	return true
}

// Advance applies the queued heading: the new head is prepended and, unless
// grow is set, the tail is dropped.
func (s *Snake) Advance(newHead types.Point, grow bool) {
	s.Direction = s.Next
	s.Body = append(s.Body, types.Point{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = newHead
	if !grow {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

// Copy returns a detached clone of the body.
func (s *Snake) Copy() []types.Point {
	body := make([]types.Point, len(s.Body))
	copy(body, s.Body)
	return body
}
