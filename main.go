package main

import (
	"flag"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"speed-snake/ai"
	"speed-snake/audio"
	"speed-snake/game"
	"speed-snake/game/clock"
	"speed-snake/game/manager"
	"speed-snake/game/types"
	"speed-snake/ui"
)

const targetFPS = 60

var moveKeys = map[int32]types.Direction{
	rl.KeyUp:    types.North,
	rl.KeyW:     types.North,
	rl.KeyDown:  types.South,
	rl.KeyS:     types.South,
	rl.KeyLeft:  types.West,
	rl.KeyA:     types.West,
	rl.KeyRight: types.East,
	rl.KeyD:     types.East,
}

func main() {
	speed := flag.Int("speed", types.DefaultSpeed, "Initial ticks per second (1-20)")
	length := flag.Int("length", types.DefaultLength, "Initial snake length (2-10)")
	seed := flag.Uint64("seed", 0, "Random seed, 0 picks one from the clock")
	autopilot := flag.Bool("autopilot", false, "Let the pilot steer (toggle with Tab)")
	statsFile := flag.String("stats", "data/stats.json", "Session record file, empty to disable")
	mute := flag.Bool("mute", false, "Disable sound")
	flag.Parse()

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

	round := game.NewRound(cfg, game.NewRand(cfg.Seed), clock.System)
	round.SetObserver(stats)

	layout := ui.DefaultLayout()
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(layout.WindowWidth, layout.WindowHeight, "Speed Snake")
	defer rl.CloseWindow()
	rl.SetExitKey(rl.KeyEscape)
	rl.SetTargetFPS(targetFPS)

	renderer := ui.NewRenderer(layout)
	pilot := &ai.Pilot{Enabled: *autopilot}
	cues := audio.NewCues(!*mute)
	defer cues.Close()

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			break
		}
		handleInput(round, renderer, pilot)
		pilot.Drive(round)

		cues.Play(round.Update())
		renderer.Draw(round, rl.GetFPS(), pilot.Enabled)
	}

	if *statsFile != "" {
		if err := stats.Save(*statsFile); err != nil {
			log.Printf("Warning: could not save stats: %v", err)
		}
	}
}

func handleInput(round *game.Round, renderer *ui.Renderer, pilot *ai.Pilot) {
	for key, dir := range moveKeys {
		if rl.IsKeyPressed(key) {
			round.PlayerMove(dir)
		}
	}

	switch {
	case rl.IsKeyPressed(rl.KeyP), rl.IsKeyPressed(rl.KeySpace):
		round.TogglePause()
	case rl.IsKeyPressed(rl.KeyR):
		round.ToggleRestart()
	case rl.IsKeyPressed(rl.KeyTab):
		pilot.Toggle()
	case rl.IsKeyPressed(rl.KeyH):
		renderer.ToggleHideSnake()
	case rl.IsKeyPressed(rl.KeyJ):
		renderer.ToggleHideFood()
	case rl.IsKeyPressed(rl.KeyK):
		renderer.ToggleHideGrid()
	}
}
