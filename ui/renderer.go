package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"speed-snake/game"
	"speed-snake/game/entity"
	"speed-snake/game/types"
)

var (
	colorBackground = rl.Color{R: 16, G: 0, B: 32, A: 255}
	colorGridBg     = rl.Color{R: 32, G: 0, B: 32, A: 255}
	colorGridLine   = rl.Color{R: 32, G: 32, B: 32, A: 255}
	colorFrame      = rl.Color{R: 188, G: 188, B: 188, A: 255}
	colorText       = rl.White
	colorHint       = rl.Color{R: 255, G: 255, B: 0, A: 255}
	colorAlert      = rl.Color{R: 255, G: 0, B: 0, A: 255}
	colorFood       = rl.Color{R: 230, G: 41, B: 55, A: 255}
	colorHead       = rl.Color{R: 0, G: 228, B: 48, A: 255}
	colorBody       = rl.Color{R: 0, G: 158, B: 47, A: 255}
	colorBodyAlt    = rl.Color{R: 0, G: 117, B: 44, A: 255}
)

type Renderer struct {
	layout      Layout
	snakeHidden bool
	foodHidden  bool
	gridHidden  bool
}

func NewRenderer(layout Layout) *Renderer {
	return &Renderer{layout: layout}
}

func (r *Renderer) Layout() Layout {
	return r.layout
}

func (r *Renderer) ToggleHideSnake() { r.snakeHidden = !r.snakeHidden }
func (r *Renderer) ToggleHideFood()  { r.foodHidden = !r.foodHidden }
func (r *Renderer) ToggleHideGrid()  { r.gridHidden = !r.gridHidden }

func toRl(rect Rect) rl.Rectangle {
	return rl.Rectangle{X: rect.X, Y: rect.Y, Width: rect.W, Height: rect.H}
}

// Draw renders one frame of the round. fps is shown in the corner.
func (r *Renderer) Draw(g *game.Round, fps int32, autopilot bool) {
	rl.BeginDrawing()
	rl.ClearBackground(colorBackground)

	r.drawCentered("Speed Snake", 50, 48, colorText)
	r.drawCentered(fmt.Sprintf("Score: %d", g.Score()), 150, 24, colorText)
	status := fmt.Sprintf("%s  Speed %d  Best %d", g.Name(), g.Speed(), g.HighScore())
	if autopilot {
		status += "  [auto]"
	}
	r.drawCentered(status, 180, 16, colorText)

	if !r.gridHidden {
		r.drawGrid()
	}
	if !r.foodHidden {
		for _, food := range g.Food() {
			rl.DrawRectangleRec(toRl(r.layout.CellRect(food)), colorFood)
		}
	}
	if !r.snakeHidden {
		r.drawSnake(g.Segments())
	}

	hintY := r.layout.WindowHeight/2 + 300
	r.drawCentered("Press R to restart", hintY-32, 24, colorAlert)
	if g.IsPaused() {
		r.drawCentered("Press P to continue", hintY, 24, colorHint)
	} else {
		r.drawCentered("Press P to pause", hintY, 24, colorHint)
	}

	center := r.layout.WindowHeight / 2
	if g.IsGameOver() {
		r.drawCentered("Game Over", center, 48, colorAlert)
	} else if g.IsPaused() {
		r.drawCentered("Game Pause", center, 48, colorHint)
	}

	rl.DrawText(fmt.Sprintf("FPS: %d", fps), r.layout.WindowWidth-110, 10, 16, colorText)
	rl.EndDrawing()
}

func (r *Renderer) drawGrid() {
	rl.DrawRectangleRec(toRl(r.layout.Playfield()), colorGridBg)
	for _, l := range r.layout.GridLines() {
		rl.DrawLine(l.X1, l.Y1, l.X2, l.Y2, colorGridLine)
	}
	for _, f := range r.layout.FrameRects() {
		rl.DrawRectangleLinesEx(toRl(f), 1, colorFrame)
	}
}

// drawSnake colours body segments by their id, so stripes travel with the
// body instead of flickering as it moves.
func (r *Renderer) drawSnake(segments []entity.Segment) {
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		rect := r.layout.CellRect(seg.Pos)
		if i == 0 {
			rl.DrawRectangleRec(toRl(rect), colorHead)
			r.drawHeading(rect, seg.Dir)
			continue
		}
		color := colorBody
		if seg.ID%2 == 1 {
			color = colorBodyAlt
		}
		rl.DrawRectangleRec(toRl(rect), color)
	}
}

// drawHeading draws a direction indicator on the head cell.
func (r *Renderer) drawHeading(rect Rect, dir types.Direction) {
	x, y, size := rect.X, rect.Y, rect.W
	half := size / 2
	switch dir {
	case types.East:
		rl.DrawTriangle(
			rl.Vector2{X: x + size, Y: y + half},
			rl.Vector2{X: x + half, Y: y},
			rl.Vector2{X: x + half, Y: y + size},
			rl.Yellow)
	case types.West:
		rl.DrawTriangle(
			rl.Vector2{X: x, Y: y + half},
			rl.Vector2{X: x + half, Y: y + size},
			rl.Vector2{X: x + half, Y: y},
			rl.Yellow)
	case types.South:
		rl.DrawTriangle(
			rl.Vector2{X: x + half, Y: y + size},
			rl.Vector2{X: x + size, Y: y + half},
			rl.Vector2{X: x, Y: y + half},
			rl.Yellow)
	default:
		rl.DrawTriangle(
			rl.Vector2{X: x + half, Y: y},
			rl.Vector2{X: x, Y: y + half},
			rl.Vector2{X: x + size, Y: y + half},
			rl.Yellow)
	}
}

func (r *Renderer) drawCentered(text string, centerY, fontSize int32, color rl.Color) {
	width := rl.MeasureText(text, fontSize)
	rl.DrawText(text, (r.layout.WindowWidth-width)/2, centerY-fontSize/2, fontSize, color)
}
