package manager

import (
	"speed-snake/game/types"
)

type cellSet map[types.Point]struct{}

func (s cellSet) has(p types.Point) bool {
	_, ok := s[p]
	return ok
}

// CollisionManager tracks the three spatial sets of a round: cells covered by
// the body, cells holding food, and the static ring just outside the grid.
// The body and food sets are maintained incrementally by the round.
type CollisionManager struct {
	grid     types.Grid
	occupied cellSet
	food     cellSet
	boundary cellSet
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	cm := &CollisionManager{
		grid:     grid,
		occupied: make(cellSet),
		food:     make(cellSet),
		boundary: make(cellSet),
	}
	for _, p := range grid.BoundaryRing() {
		cm.boundary[p] = struct{}{}
	}
	return cm
}

// Reset rebuilds the body and food sets. The boundary is kept.
func (cm *CollisionManager) Reset(body, food []types.Point) {
	cm.occupied = make(cellSet, len(body))
	for _, p := range body {
		cm.occupied[p] = struct{}{}
	}
	cm.food = make(cellSet, len(food))
	for _, p := range food {
		cm.food[p] = struct{}{}
	}
}

// OnTailRemoved must run before OnHeadAdded in the same step, so a head
// moving into the cell the tail just left is not a collision.
func (cm *CollisionManager) OnTailRemoved(p types.Point) {
	delete(cm.occupied, p)
}

func (cm *CollisionManager) OnHeadAdded(p types.Point) {
	cm.occupied[p] = struct{}{}
}

func (cm *CollisionManager) AddFood(p types.Point) {
	cm.food[p] = struct{}{}
}

func (cm *CollisionManager) RemoveFood(p types.Point) {
	delete(cm.food, p)
}

// IsBlocked reports a lethal cell: part of the body or the boundary.
func (cm *CollisionManager) IsBlocked(p types.Point) bool {
	return cm.occupied.has(p) || cm.boundary.has(p)
}

// IsExcluded reports whether food may not be placed at p.
func (cm *CollisionManager) IsExcluded(p types.Point) bool {
	return cm.IsBlocked(p) || cm.food.has(p)
}

func (cm *CollisionManager) IsFood(p types.Point) bool {
	return cm.food.has(p)
}

func (cm *CollisionManager) IsOccupied(p types.Point) bool {
	return cm.occupied.has(p)
}

func (cm *CollisionManager) IsBoundary(p types.Point) bool {
	return cm.boundary.has(p)
}

func (cm *CollisionManager) OccupiedCount() int {
	return len(cm.occupied)
}

func (cm *CollisionManager) FoodCount() int {
	return len(cm.food)
}

func (cm *CollisionManager) BoundaryCount() int {
	return len(cm.boundary)
}

func (cm *CollisionManager) Grid() types.Grid {
	return cm.grid
}
