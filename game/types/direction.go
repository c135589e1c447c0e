package types

// Direction is a cardinal heading on the grid.
type Direction int

const (
	North Direction = iota // y-1
	West                   // x-1
	South                  // y+1
	East                   // x+1
)

// Delta converts a Direction into a one-cell displacement.
func (d Direction) Delta() Point {
	switch d {
	case North:
		return Point{X: 0, Y: -1}
	case West:
		return Point{X: -1, Y: 0}
	case South:
		return Point{X: 0, Y: 1}
	case East:
		return Point{X: 1, Y: 0}
	default:
		return Point{}
	}
}

// Opposite returns the reversing direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case West:
		return East
	case East:
		return West
	default:
		return d
	}
}

// IsOpposite reports whether d and o form a reversing pair.
func (d Direction) IsOpposite(o Direction) bool {
	return d.Valid() && o == d.Opposite()
}

// Step returns the cell one move away from p. No wrapping.
func (d Direction) Step(p Point) Point {
	return p.Add(d.Delta())
}

// TurnLeft returns the direction after a counter-clockwise quarter turn.
func (d Direction) TurnLeft() Direction {
	switch d {
	case North:
		return West
	case West:
		return South
	case South:
		return East
	case East:
		return North
	default:
		return d
	}
}

// TurnRight returns the direction after a clockwise quarter turn.
func (d Direction) TurnRight() Direction {
	return d.TurnLeft().Opposite()
}

func (d Direction) Valid() bool {
	return d >= North && d <= East
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case West:
		return "west"
	case South:
		return "south"
	case East:
		return "east"
	default:
		return "none"
	}
}

// Directions lists every heading in declaration order.
var Directions = [4]Direction{North, West, South, East}
