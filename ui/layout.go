package ui

import (
	"speed-snake/game/types"
)

// Rect is a pixel rectangle.
type Rect struct {
	X, Y, W, H float32
}

// Line is a pixel segment.
type Line struct {
	X1, Y1, X2, Y2 int32
}

// Layout maps grid cells to window pixels. It holds no raylib state, so it is
// usable and testable without a window.
type Layout struct {
	WindowWidth  int32
	WindowHeight int32
	GridX        int32 // Top-left corner of the playfield
	GridY        int32
	GridPixels   int32 // Side of the square playfield
	Cells        int   // Cells per side
	Gap          float32
	Frame        int32 // Frame thickness around the playfield
}

func DefaultLayout() Layout {
	const (
		windowWidth  = 480
		windowHeight = 640
		gridPixels   = 360
		centerX      = windowWidth / 2
		centerY      = windowHeight/2 + 60
	)
	return Layout{
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		GridX:        centerX - gridPixels/2,
		GridY:        centerY - gridPixels/2,
		GridPixels:   gridPixels,
		Cells:        types.GridSize,
		Gap:          4,
		Frame:        4,
	}
}

func (l Layout) CellSize() float32 {
	return float32(l.GridPixels) / float32(l.Cells)
}

// CellRect is the drawable area of a cell, inset by Gap on every side.
func (l Layout) CellRect(p types.Point) Rect {
	size := l.CellSize()
	return Rect{
		X: float32(l.GridX) + float32(p.X)*size + l.Gap,
		Y: float32(l.GridY) + float32(p.Y)*size + l.Gap,
		W: size - 2*l.Gap,
		H: size - 2*l.Gap,
	}
}

// Playfield is the full grid background.
func (l Layout) Playfield() Rect {
	return Rect{X: float32(l.GridX), Y: float32(l.GridY), W: float32(l.GridPixels), H: float32(l.GridPixels)}
}

// GridLines returns the horizontal then vertical cell separators, edges
// included.
func (l Layout) GridLines() []Line {
	lines := make([]Line, 0, 2*(l.Cells+1))
	size := l.CellSize()
	for i := 0; i <= l.Cells; i++ {
		y := l.GridY + int32(float32(i)*size)
		lines = append(lines, Line{X1: l.GridX, Y1: y, X2: l.GridX + l.GridPixels, Y2: y})
	}
	for i := 0; i <= l.Cells; i++ {
		x := l.GridX + int32(float32(i)*size)
		lines = append(lines, Line{X1: x, Y1: l.GridY, X2: x, Y2: l.GridY + l.GridPixels})
	}
	return lines
}

// FrameRects returns nested outlines, one per pixel of frame thickness.
func (l Layout) FrameRects() []Rect {
	rects := make([]Rect, 0, l.Frame)
	for i := int32(0); i < l.Frame; i++ {
		rects = append(rects, Rect{
			X: float32(l.GridX - i),
			Y: float32(l.GridY - i),
			W: float32(l.GridPixels + 2*i + 1),
			H: float32(l.GridPixels + 2*i + 1),
		})
	}
	return rects
}
