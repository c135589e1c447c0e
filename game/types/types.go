package types

// Point is a grid cell. Comparable, so it is used directly as a map key.
type Point struct {
	X, Y int
}

// Add returns p shifted by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// Game constants
const (
	GridSize      = 20 // Cells per side
	FoodCount     = 3  // Active food items per round
	DefaultLength = 3
	MinLength     = 2
	MaxLength     = 10
	SpawnMargin   = 3 // Minimum distance between spawn head and the wall
	DefaultSpeed  = 5 // Ticks per second at round start
	MaxSpeed      = 20
	RampEvery     = 5 // Score multiple that bumps the speed
)

// DefaultGrid is the square playfield every round uses.
var DefaultGrid = Grid{Width: GridSize, Height: GridSize}

// Contains reports whether p lies inside the playable area.
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// InGrid is Contains on the default grid.
func InGrid(p Point) bool {
	return DefaultGrid.Contains(p)
}

// BoundaryRing returns the cells just outside the grid: x in {-1, W} for every
// row and y in {-1, H} for every column. Corners are not part of the ring,
// a snake moving orthogonally can never reach them.
func (g Grid) BoundaryRing() []Point {
	ring := make([]Point, 0, 2*g.Width+2*g.Height)
	for y := 0; y < g.Height; y++ {
		ring = append(ring, Point{X: -1, Y: y}, Point{X: g.Width, Y: y})
	}
	for x := 0; x < g.Width; x++ {
		ring = append(ring, Point{X: x, Y: -1}, Point{X: x, Y: g.Height})
	}
	return ring
}

// InitialFood is the fixed food layout a round starts with.
func (g Grid) InitialFood() []Point {
	return []Point{
		{X: 0, Y: 0},
		{X: g.Width - 1, Y: 0},
		{X: 0, Y: g.Height - 1},
	}
}

// Rand is the random capability injected into placement code.
// *rand.Rand from golang.org/x/exp/rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// RandomDirection draws one of the four directions uniformly.
func RandomDirection(r Rand) Direction {
	return Direction(r.Intn(4))
}
