package ai

import (
	"time"

	"snake-pilot/game/types"
)

// State is the per-tick snapshot the pilot decides on. Snake is head first
// and is never modified by the pilot.
type State struct {
	Grid       types.Grid
	Snake      []types.Point
	Heading    types.Direction // heading of the last applied move
	Next       types.Direction // move currently queued for the coming tick
	Foods      []types.Point
	Difficulty types.Difficulty
	SinceFed   time.Duration
	Tick       uint64
}

// Head returns the first body cell.
func (s State) Head() types.Point {
	return s.Snake[0]
}

// Reason records which branch of the decision produced a move.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonCramped
	ReasonWrapDodge
	ReasonStarving
	ReasonStarvingDetour
	ReasonLoop
	ReasonFood
	ReasonExplore
	ReasonEscape
	ReasonSafetyValve
)

func (r Reason) String() string {
	switch r {
	case ReasonCramped:
		return "cramped"
	case ReasonWrapDodge:
		return "wrap-dodge"
	case ReasonStarving:
		return "starving"
	case ReasonStarvingDetour:
		return "starving-detour"
	case ReasonLoop:
		return "loop"
	case ReasonFood:
		return "food"
	case ReasonExplore:
		return "explore"
	case ReasonEscape:
		return "escape"
	case ReasonSafetyValve:
		return "safety-valve"
	}
	return "none"
}

// Decision is the outcome of one Decide call. Record and Failed are applied
// to the pilot's memory by OnMove once the host has moved the snake.
type Decision struct {
	Direction types.Direction
	Reason    Reason
	Path      []types.Direction
	Record    *Pattern
	Failed    bool
}

// RiskLevel is a coarse danger indicator for display.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
)

func (r RiskLevel) String() string {
	switch r {
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	}
	return "low"
}

// Hunger is the display level of the starvation timer.
type Hunger int

const (
	Fed Hunger = iota
	Hungry
	Starving
)

func (h Hunger) String() string {
	switch h {
	case Hungry:
		return "hungry"
	case Starving:
		return "starving"
	}
	return "normal"
}
