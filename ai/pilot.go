package ai

import (
	"speed-snake/game/types"
)

// View is what the pilot needs to see of a round. *game.Round satisfies it.
type View interface {
	Head() types.Point
	Direction() types.Direction
	Food() []types.Point
	IsBlocked(p types.Point) bool
}

// Driver is a View that also accepts input.
type Driver interface {
	View
	PlayerMove(dir types.Direction)
}

type State struct {
	Heading         types.Direction
	RelativeFoodDir [2]int  // Offset from head to the nearest food (x, y)
	FoodDistance    int     // Manhattan distance to that food, -1 without food
	DangerDirs      [4]bool // Lethal neighbour per direction, indexed by types.Direction
}

// Sense builds the pilot state from the current round.
func Sense(v View) State {
	head := v.Head()
	s := State{
		Heading:      v.Direction(),
		FoodDistance: -1,
	}

	for _, f := range v.Food() {
		dx, dy := f.X-head.X, f.Y-head.Y
		dist := abs(dx) + abs(dy)
		if s.FoodDistance < 0 || dist < s.FoodDistance {
			s.FoodDistance = dist
			s.RelativeFoodDir = [2]int{dx, dy}
		}
	}

	for _, d := range types.Directions {
		s.DangerDirs[d] = v.IsBlocked(d.Step(head))
	}
	return s
}

// Choose picks the safe heading that gets closest to the nearest food. Ties
// keep the current heading, then follow declaration order. With no safe
// heading it keeps going straight.
func Choose(s State) types.Direction {
	best := s.Heading
	bestDist := -1

	candidates := make([]types.Direction, 0, 4)
	candidates = append(candidates, s.Heading)
	for _, d := range types.Directions {
		if d != s.Heading {
			candidates = append(candidates, d)
		}
	}

	for _, d := range candidates {
		if s.Heading.IsOpposite(d) || s.DangerDirs[d] {
			continue
		}
		dist := 0
		if s.FoodDistance >= 0 {
			delta := d.Delta()
			dist = abs(s.RelativeFoodDir[0]-delta.X) + abs(s.RelativeFoodDir[1]-delta.Y)
		}
		if bestDist < 0 || dist < bestDist {
			best = d
			bestDist = dist
		}
	}
	return best
}

// Pilot steers a round on the player's behalf. It only issues moves through
// PlayerMove, so reversal rules still apply.
type Pilot struct {
	Enabled bool
}

func (p *Pilot) Toggle() {
	p.Enabled = !p.Enabled
}

// Drive issues one move if the pilot is enabled. Called once per frame.
func (p *Pilot) Drive(d Driver) {
	if !p.Enabled {
		return
	}
	d.PlayerMove(Choose(Sense(d)))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
