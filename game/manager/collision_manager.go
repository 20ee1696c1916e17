package manager

import (
	"snake-pilot/game/types"
)

// CollisionType tells what the head ran into.
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	}
	return "none"
}

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// CheckCollision inspects a body right after a move, head first. The tail has
// already been dropped, so moving into the old tail cell is legal.
func (cm *CollisionManager) CheckCollision(body []types.Point) CollisionType {
	if len(body) == 0 {
		return NoCollision
	}
	head := body[0]
	for _, part := range body[1:] {
		if part == head {
			return SelfCollision
		}
	}
	if cm.isWallCollision(head) {
		return WallCollision
	}
	return NoCollision
}

// isWallCollision checks if a position collides with walls
func (cm *CollisionManager) isWallCollision(pos types.Point) bool {
	return cm.grid.Mode == types.Bounded && !cm.grid.Contains(pos)
}

// ValidateSpawnPosition reports whether pos is on the board and off the body.
func (cm *CollisionManager) ValidateSpawnPosition(pos types.Point, body []types.Point) bool {
	if !cm.grid.Contains(pos) {
		return false
	}
	for _, part := range body {
		if pos == part {
			return false
		}
	}
	return true
}

// CheckFoodCollisions returns the index of the food under pos, or -1.
func (cm *CollisionManager) CheckFoodCollisions(pos types.Point, foodList []types.Point) int {
	if cm.grid.Toroidal() {
		pos = cm.grid.Wrap(pos)
	}
	for i, food := range foodList {
		if pos == food {
			return i
		}
	}
	return -1
}
