// Command snake-term plays Speed Snake in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"speed-snake/ai"
	"speed-snake/audio"
	"speed-snake/game"
	"speed-snake/game/clock"
	"speed-snake/game/manager"
	"speed-snake/game/types"
)

const frameInterval = 16 * time.Millisecond

var (
	styleDefault = tcell.StyleDefault
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHead    = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleBody    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleBodyAlt = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	styleFood    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleHint    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleAlert   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

var headGlyphs = map[types.Direction]rune{
	types.North: '^',
	types.West:  '<',
	types.South: 'v',
	types.East:  '>',
}

var runeMoves = map[rune]types.Direction{
	'w': types.North,
	'a': types.West,
	's': types.South,
	'd': types.East,
}

var keyMoves = map[tcell.Key]types.Direction{
	tcell.KeyUp:    types.North,
	tcell.KeyLeft:  types.West,
	tcell.KeyDown:  types.South,
	tcell.KeyRight: types.East,
}

type terminal struct {
	screen tcell.Screen
	round  *game.Round
	pilot  *ai.Pilot
	cues   *audio.Cues
}

func main() {
	speed := flag.Int("speed", types.DefaultSpeed, "Initial ticks per second (1-20)")
	length := flag.Int("length", types.DefaultLength, "Initial snake length (2-10)")
	seed := flag.Uint64("seed", 0, "Random seed, 0 picks one from the clock")
	autopilot := flag.Bool("autopilot", false, "Let the pilot steer (toggle with Tab)")
	statsFile := flag.String("stats", "data/stats.json", "Session record file, empty to disable")
	mute := flag.Bool("mute", false, "Disable sound")
	logFile := flag.String("log", "", "Write logs to this file instead of discarding them")
	flag.Parse()

	// The screen owns stdout, so logs go to a file or nowhere.
	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "snake-term: open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg := game.DefaultConfig()
	cfg.InitialSpeed = *speed
	cfg.InitialLength = *length
	cfg.Seed = *seed

	stats := manager.NewStateManager()
	if *statsFile != "" {
		if err := stats.Load(*statsFile); err != nil {
			log.Printf("Warning: could not load stats: %v", err)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "snake-term: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "snake-term: %v\n", err)
		os.Exit(1)
	}

	t := &terminal{
		screen: screen,
		round:  game.NewRound(cfg, game.NewRand(cfg.Seed), clock.System),
		pilot:  &ai.Pilot{Enabled: *autopilot},
		cues:   audio.NewCues(!*mute),
	}
	t.round.SetObserver(stats)

	t.run()

	t.cues.Close()
	screen.Fini()

	if *statsFile != "" {
		if err := stats.Save(*statsFile); err != nil {
			log.Printf("Warning: could not save stats: %v", err)
		}
	}
	fmt.Printf("Best score: %d over %d rounds\n", stats.HighScore(), stats.GamesPlayed())
}

func (t *terminal) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !t.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			t.pilot.Drive(t.round)
			t.cues.Play(t.round.Update())
			t.draw()
		}
	}
}

// handleEvent applies one input event. It returns false when the player quits.
func (t *terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if dir, ok := keyMoves[ev.Key()]; ok {
			t.round.PlayerMove(dir)
			return true
		}
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyTab:
			t.pilot.Toggle()
			return true
		case tcell.KeyRune:
		default:
			return true
		}

		r := ev.Rune()
		if dir, ok := runeMoves[r]; ok {
			t.round.PlayerMove(dir)
			return true
		}
		switch r {
		case 'q':
			return false
		case 'p', ' ':
			t.round.TogglePause()
		case 'r':
			t.round.ToggleRestart()
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

// Cells are two columns wide so the field looks square. The boundary ring
// sits one cell outside the grid.
func (t *terminal) setCell(p types.Point, glyph rune, style tcell.Style) {
	x, y := (p.X+1)*2, p.Y+2
	t.screen.SetContent(x, y, glyph, nil, style)
	t.screen.SetContent(x+1, y, ' ', nil, style)
}

func (t *terminal) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (t *terminal) draw() {
	t.screen.Clear()
	g := t.round
	grid := g.Grid()

	status := fmt.Sprintf("Speed Snake  %s  Score: %d  Best: %d  Speed: %d",
		g.Name(), g.Score(), g.HighScore(), g.Speed())
	if t.pilot.Enabled {
		status += "  [auto]"
	}
	t.drawText(0, 0, status, styleDefault)

	for _, p := range grid.BoundaryRing() {
		t.setCell(p, '#', styleWall)
	}
	for _, p := range []types.Point{
		{X: -1, Y: -1}, {X: grid.Width, Y: -1},
		{X: -1, Y: grid.Height}, {X: grid.Width, Y: grid.Height},
	} {
		t.setCell(p, '#', styleWall)
	}

	for _, f := range g.Food() {
		t.setCell(f, '@', styleFood)
	}

	segments := g.Segments()
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		switch {
		case i == 0:
			t.setCell(seg.Pos, headGlyphs[seg.Dir], styleHead)
		case seg.ID%2 == 1:
			t.setCell(seg.Pos, 'o', styleBodyAlt)
		default:
			t.setCell(seg.Pos, 'o', styleBody)
		}
	}

	bottom := grid.Height + 4
	switch {
	case g.IsGameOver():
		t.drawText(0, bottom, "Game Over  (R to restart)", styleAlert)
	case g.IsPaused():
		t.drawText(0, bottom, "Game Pause  (P to continue)", styleHint)
	}
	t.drawText(0, bottom+1, "Arrows/WASD move  P pause  R restart  Tab autopilot  Q quit", styleHint)

	t.screen.Show()
}
