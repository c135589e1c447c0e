package manager

import (
	"speed-snake/game/types"
)

// FoodManager owns the fixed-size set of active food items.
type FoodManager struct {
	grid     types.Grid
	rng      types.Rand
	foodList []types.Point
}

func NewFoodManager(grid types.Grid, rng types.Rand) *FoodManager {
	fm := &FoodManager{
		grid: grid,
		rng:  rng,
	}
	fm.Reset()
	return fm
}

// Reset restores the fixed initial layout.
func (fm *FoodManager) Reset() {
	fm.foodList = fm.grid.InitialFood()
}

// Set replaces the active food, e.g. to stage a known layout.
func (fm *FoodManager) Set(food []types.Point) {
	fm.foodList = make([]types.Point, len(food))
	copy(fm.foodList, food)
}

// Place draws interior cells, one away from every wall, until one is not
// excluded. There is no retry cap: on a board with no free interior cell this
// never returns.
func (fm *FoodManager) Place(excluded func(types.Point) bool) types.Point {
	for {
		food := types.Point{
			X: 1 + fm.rng.Intn(fm.grid.Width-2),
			Y: 1 + fm.rng.Intn(fm.grid.Height-2),
		}

		if !excluded(food) {
			return food
		}
	}
}

// OnEaten replaces the food at p with a freshly placed one in the same slot.
// ok is false when p held no food. The caller updates the spatial sets.
func (fm *FoodManager) OnEaten(p types.Point, excluded func(types.Point) bool) (types.Point, bool) {
	i := fm.IndexOf(p)
	if i < 0 {
		return types.Point{}, false
	}
	next := fm.Place(excluded)
	fm.foodList[i] = next
	return next, true
}

// IndexOf returns the slot holding p, or -1.
func (fm *FoodManager) IndexOf(p types.Point) int {
	for i, f := range fm.foodList {
		if f == p {
			return i
		}
	}
	return -1
}

// GetFoodList returns a copy of the active food positions.
func (fm *FoodManager) GetFoodList() []types.Point {
	out := make([]types.Point, len(fm.foodList))
	copy(out, fm.foodList)
	return out
}
