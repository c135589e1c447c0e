package game

import (
	"testing"
	"time"

	"speed-snake/game/clock"
	"speed-snake/game/entity"
	"speed-snake/game/manager"
	"speed-snake/game/types"
)

func pt(x, y int) types.Point { return types.Point{X: x, Y: y} }

func newTestRound(t *testing.T, seed uint64) (*Round, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(time.Unix(1000, 0))
	cfg := DefaultConfig()
	cfg.Seed = seed
	return NewRound(cfg, NewRand(seed), clk), clk
}

// stage replaces the random opening with a known body and food layout.
func stage(r *Round, head types.Point, length int, dir types.Direction, food ...types.Point) {
	r.snake = entity.NewSnake(head, length, dir)
	r.foodMgr.Set(food)
	r.collisionMgr.Reset(r.snake.Positions(), food)
}

// tick advances the clock by one interval and updates.
func tick(r *Round, clk *clock.Manual) Events {
	clk.Advance(r.Interval())
	return r.Update()
}

func checkInvariants(t *testing.T, r *Round) {
	t.Helper()
	body := r.snake.Positions()
	if r.collisionMgr.OccupiedCount() != len(body) {
		t.Fatalf("occupied %d cells, body has %d", r.collisionMgr.OccupiedCount(), len(body))
	}
	seen := make(map[types.Point]bool)
	for _, p := range body {
		if seen[p] {
			t.Fatalf("body overlaps itself at %v", p)
		}
		seen[p] = true
		if !r.collisionMgr.IsOccupied(p) {
			t.Fatalf("body cell %v missing from occupied set", p)
		}
	}
	food := r.Food()
	if r.collisionMgr.FoodCount() != len(food) || len(food) != types.FoodCount {
		t.Fatalf("food set has %d cells, spawner %d", r.collisionMgr.FoodCount(), len(food))
	}
	for _, f := range food {
		if seen[f] {
			t.Fatalf("food %v inside body", f)
		}
		if r.collisionMgr.IsBoundary(f) {
			t.Fatalf("food %v on boundary", f)
		}
		if !r.collisionMgr.IsFood(f) {
			t.Fatalf("food %v missing from food set", f)
		}
		seen[f] = true
	}
}

func TestNewRoundStartsPaused(t *testing.T) {
	r, clk := newTestRound(t, 1)

	if !r.IsPaused() || r.IsGameOver() {
		t.Fatalf("expected paused and alive, got paused=%v over=%v", r.IsPaused(), r.IsGameOver())
	}
	if r.Score() != 0 || r.Speed() != types.DefaultSpeed || r.Length() != types.DefaultLength {
		t.Errorf("unexpected opening: score=%d speed=%d length=%d", r.Score(), r.Speed(), r.Length())
	}
	checkInvariants(t, r)

	before := r.Segments()
	clk.Advance(10 * time.Second)
	if ev := r.Update(); ev != 0 {
		t.Errorf("paused round stepped: %v", ev)
	}
	if r.Segments()[0] != before[0] {
		t.Error("paused round moved")
	}
}

func TestSpawnKeepsBodyInsideGrid(t *testing.T) {
	for seed := uint64(1); seed <= 200; seed++ {
		r, _ := newTestRound(t, seed)
		for _, s := range r.Segments() {
			if !types.InGrid(s.Pos) {
				t.Fatalf("seed %d: segment %v outside grid", seed, s.Pos)
			}
			if s.Pos.X < 1 || s.Pos.X > types.GridSize-2 || s.Pos.Y < 1 || s.Pos.Y > types.GridSize-2 {
				t.Fatalf("seed %d: segment %v touches the wall", seed, s.Pos)
			}
		}
		checkInvariants(t, r)
	}
}

func TestEatingScenario(t *testing.T) {
	r, clk := newTestRound(t, 1)
	stage(r, pt(10, 10), 3, types.North, pt(10, 8), pt(0, 0), pt(types.GridSize-1, 0))
	r.TogglePause()

	ev := tick(r, clk)
	if !ev.Has(EventStepped) || ev.Has(EventAte) {
		t.Fatalf("step 1 events = %b", ev)
	}
	if r.Head() != pt(10, 9) || r.Length() != 3 {
		t.Fatalf("step 1: head %v length %d", r.Head(), r.Length())
	}

	ev = tick(r, clk)
	if !ev.Has(EventAte) {
		t.Fatalf("step 2 should eat, events = %b", ev)
	}
	if r.Head() != pt(10, 8) || r.Score() != 1 {
		t.Fatalf("step 2: head %v score %d", r.Head(), r.Score())
	}
	if r.Length() != 3 {
		t.Errorf("length must not change on the eating step, got %d", r.Length())
	}
	checkInvariants(t, r)

	tick(r, clk)
	if r.Length() != 4 {
		t.Errorf("step 3: length = %d, want 4", r.Length())
	}
	if r.Score() != 1 {
		t.Errorf("score changed to %d", r.Score())
	}
	checkInvariants(t, r)

	tick(r, clk)
	if r.Length() != 4 {
		t.Errorf("step 4: length = %d, want 4", r.Length())
	}
}

func TestEatenFoodIsReplaced(t *testing.T) {
	r, clk := newTestRound(t, 7)
	stage(r, pt(10, 10), 3, types.North, pt(10, 9), pt(0, 0), pt(types.GridSize-1, 0))
	r.TogglePause()

	tick(r, clk)
	food := r.Food()
	if food[0] == pt(10, 9) {
		t.Fatal("eaten food still active")
	}
	if food[1] != pt(0, 0) || food[2] != pt(types.GridSize-1, 0) {
		t.Errorf("other food moved: %v", food)
	}
	checkInvariants(t, r)
}

func TestSubTickFramesDoNothing(t *testing.T) {
	r, clk := newTestRound(t, 1)
	stage(r, pt(10, 10), 3, types.North, pt(0, 0), pt(1, 0), pt(2, 0))
	r.TogglePause()

	clk.Advance(r.Interval() - time.Millisecond)
	if ev := r.Update(); ev != 0 {
		t.Fatalf("stepped before the interval elapsed: %b", ev)
	}
	clk.Advance(time.Millisecond)
	if ev := r.Update(); !ev.Has(EventStepped) {
		t.Fatal("expected a step once the interval elapsed")
	}
}

func TestNoCatchUpAfterLongFrame(t *testing.T) {
	r, clk := newTestRound(t, 1)
	stage(r, pt(10, 10), 3, types.North, pt(0, 0), pt(1, 0), pt(2, 0))
	r.TogglePause()

	clk.Advance(5 * r.Interval())
	r.Update()
	if ev := r.Update(); ev != 0 {
		t.Errorf("missed ticks were caught up: %b", ev)
	}
	if r.Head() != pt(10, 9) {
		t.Errorf("expected one step, head at %v", r.Head())
	}
}

func TestPauseKeepsRemainingTime(t *testing.T) {
	r, clk := newTestRound(t, 1)
	stage(r, pt(10, 10), 3, types.North, pt(0, 0), pt(1, 0), pt(2, 0))
	r.TogglePause()

	interval := r.Interval()
	clk.Advance(interval / 2)
	r.TogglePause()
	clk.Advance(time.Minute)
	if ev := r.Update(); ev != 0 {
		t.Fatal("paused round stepped")
	}
	r.TogglePause()

	clk.Advance(interval/2 - time.Millisecond)
	if ev := r.Update(); ev != 0 {
		t.Fatal("pause shortened the remaining time")
	}
	clk.Advance(time.Millisecond)
	if ev := r.Update(); !ev.Has(EventStepped) {
		t.Fatal("pause extended the remaining time")
	}
}

func TestReversalWithinTickIsIgnored(t *testing.T) {
	r, clk := newTestRound(t, 1)
	stage(r, pt(10, 10), 3, types.East, pt(0, 0), pt(1, 0), pt(2, 0))
	r.TogglePause()

	r.PlayerMove(types.West)
	tick(r, clk)
	if r.Head() != pt(11, 10) || r.Direction() != types.East {
		t.Fatalf("reversal applied: head %v facing %v", r.Head(), r.Direction())
	}
	if r.IsGameOver() {
		t.Fatal("reversal killed the snake")
	}

	// Only the last input of a tick counts; here it is a reversal again.
	r.PlayerMove(types.North)
	r.PlayerMove(types.West)
	tick(r, clk)
	if r.Head() != pt(12, 10) {
		t.Errorf("head = %v, want (12,10)", r.Head())
	}

	r.PlayerMove(types.West)
	r.PlayerMove(types.South)
	tick(r, clk)
	if r.Head() != pt(12, 11) || r.Direction() != types.South {
		t.Errorf("head = %v facing %v, want (12,11) south", r.Head(), r.Direction())
	}
}

func TestPlayerMoveWhilePausedAppliesOnResume(t *testing.T) {
	r, clk := newTestRound(t, 1)
	stage(r, pt(10, 10), 3, types.East, pt(0, 0), pt(1, 0), pt(2, 0))

	r.PlayerMove(types.South)
	clk.Advance(time.Second)
	r.Update()
	if r.Head() != pt(10, 10) {
		t.Fatal("paused round moved")
	}

	r.TogglePause()
	tick(r, clk)
	if r.Head() != pt(10, 11) {
		t.Errorf("head = %v, want (10,11)", r.Head())
	}
}

func TestBoundaryCollisionEndsRound(t *testing.T) {
	r, clk := newTestRound(t, 1)
	stage(r, pt(0, 5), 3, types.West, pt(5, 5), pt(6, 6), pt(7, 7))
	r.TogglePause()

	ev := tick(r, clk)
	if !ev.Has(EventGameOver) || !r.IsGameOver() {
		t.Fatalf("expected game over, events = %b", ev)
	}
	if r.Head() != pt(-1, 5) {
		t.Errorf("lethal head should stay in the body, head %v", r.Head())
	}

	frozen := r.Segments()
	for i := 0; i < 5; i++ {
		if ev := tick(r, clk); ev != 0 {
			t.Fatalf("update after game over returned %b", ev)
		}
	}
	after := r.Segments()
	if len(after) != len(frozen) || after[0] != frozen[0] || after[len(after)-1] != frozen[len(frozen)-1] {
		t.Error("body mutated after game over")
	}
	if r.Score() != 0 {
		t.Errorf("score = %d", r.Score())
	}
}

func TestSelfCollisionEndsRound(t *testing.T) {
	r, clk := newTestRound(t, 1)
	stage(r, pt(10, 10), 5, types.East, pt(0, 0), pt(1, 0), pt(2, 0))
	r.TogglePause()

	// Body (10,10)..(6,10). Turning south, west, then north hits (9,10).
	r.PlayerMove(types.South)
	tick(r, clk)
	r.PlayerMove(types.West)
	tick(r, clk)
	if r.IsGameOver() {
		t.Fatal("died too early")
	}
	r.PlayerMove(types.North)
	ev := tick(r, clk)
	if !ev.Has(EventGameOver) {
		t.Fatalf("expected self collision at %v", r.Head())
	}
}

func TestHeadMayFollowVacatingTail(t *testing.T) {
	r, clk := newTestRound(t, 1)
	// A 4-long body in a 2x2 square: the head moves into the tail cell.
	stage(r, pt(10, 10), 2, types.East, pt(0, 0), pt(1, 0), pt(2, 0))
	r.TogglePause()
	r.snake.MarkGrowing()
	r.PlayerMove(types.South)
	tick(r, clk)
	r.snake.MarkGrowing()
	r.PlayerMove(types.West)
	tick(r, clk)
	if r.Length() != 4 {
		t.Fatalf("setup failed, length %d", r.Length())
	}

	r.PlayerMove(types.North)
	ev := tick(r, clk)
	if ev.Has(EventGameOver) {
		t.Fatalf("head chasing the tail must survive, body %v", r.snake.Positions())
	}
	checkInvariants(t, r)
}

func TestSpeedRamp(t *testing.T) {
	tests := []struct {
		name      string
		score     int
		speed     int
		wantSpeed int
		wantEvent bool
	}{
		{"fifth food", 4, 5, 6, true},
		{"not a multiple", 5, 6, 6, false},
		{"tenth food", 9, 7, 8, true},
		{"capped", 9, types.MaxSpeed, types.MaxSpeed, false},
		{"just below cap", 14, types.MaxSpeed - 1, types.MaxSpeed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, clk := newTestRound(t, 1)
			stage(r, pt(10, 10), 3, types.North, pt(10, 9), pt(0, 0), pt(1, 0))
			r.score = tt.score
			r.speed = tt.speed
			r.TogglePause()

			ev := tick(r, clk)
			if !ev.Has(EventAte) {
				t.Fatal("expected to eat")
			}
			if r.Speed() != tt.wantSpeed {
				t.Errorf("speed = %d, want %d", r.Speed(), tt.wantSpeed)
			}
			if ev.Has(EventSpeedUp) != tt.wantEvent {
				t.Errorf("speed-up event = %v, want %v", ev.Has(EventSpeedUp), tt.wantEvent)
			}
		})
	}
}

func TestSpeedDoesNotRampWithoutEating(t *testing.T) {
	r, clk := newTestRound(t, 1)
	stage(r, pt(10, 10), 3, types.North, pt(0, 0), pt(1, 0), pt(2, 0))
	r.score = 5
	r.TogglePause()

	tick(r, clk)
	if r.Speed() != types.DefaultSpeed {
		t.Errorf("speed changed to %d without eating", r.Speed())
	}
}

func TestIntervalFollowsSpeed(t *testing.T) {
	r, _ := newTestRound(t, 1)
	if r.Interval() != 200*time.Millisecond {
		t.Errorf("Interval() = %v at speed 5", r.Interval())
	}
	r.speed = types.MaxSpeed
	if r.Interval() != 50*time.Millisecond {
		t.Errorf("Interval() = %v at speed 20", r.Interval())
	}
}

func TestRestartResetsRound(t *testing.T) {
	r, clk := newTestRound(t, 3)
	stats := manager.NewStateManager()
	r.SetObserver(stats)

	stage(r, pt(1, 5), 3, types.West, pt(0, 5), pt(6, 6), pt(7, 7))
	r.speed = 9
	r.TogglePause()
	tick(r, clk) // eats at (0,5)
	tick(r, clk) // into the west wall
	if !r.IsGameOver() || r.Score() != 1 {
		t.Fatalf("setup failed: over=%v score=%d", r.IsGameOver(), r.Score())
	}
	oldID := r.ID()

	r.ToggleRestart()
	if r.IsGameOver() || !r.IsPaused() || r.Score() != 0 || r.Speed() != types.DefaultSpeed {
		t.Fatalf("restart state: over=%v paused=%v score=%d speed=%d",
			r.IsGameOver(), r.IsPaused(), r.Score(), r.Speed())
	}
	if r.ID() == oldID {
		t.Error("restart should start a new round id")
	}
	if r.HighScore() != 1 {
		t.Errorf("high score = %d, want 1", r.HighScore())
	}
	food := r.Food()
	initial := types.DefaultGrid.InitialFood()
	for i := range initial {
		if food[i] != initial[i] {
			t.Errorf("food %d = %v, want %v", i, food[i], initial[i])
		}
	}
	if r.collisionMgr.BoundaryCount() != 4*types.GridSize {
		t.Error("boundary set lost on restart")
	}
	checkInvariants(t, r)

	if stats.GamesPlayed() != 1 {
		t.Fatalf("expected one recorded round, got %d", stats.GamesPlayed())
	}
	rec := stats.History()[0]
	if rec.ID != oldID || rec.Score != 1 || rec.Speed != 9 {
		t.Errorf("unexpected record %+v", rec)
	}

	// A fresh round with zero score is not recorded on restart.
	r.ToggleRestart()
	if stats.GamesPlayed() != 1 {
		t.Errorf("empty round recorded, games = %d", stats.GamesPlayed())
	}
}

func TestRestartFromRunningRoundPauses(t *testing.T) {
	r, clk := newTestRound(t, 5)
	r.TogglePause()
	tick(r, clk)

	r.ToggleRestart()
	if !r.IsPaused() {
		t.Fatal("restart should pause")
	}
	clk.Advance(time.Second)
	if ev := r.Update(); ev != 0 {
		t.Error("restarted round stepped while paused")
	}
}

func TestSameSeedSameRound(t *testing.T) {
	a, clkA := newTestRound(t, 99)
	b, clkB := newTestRound(t, 99)
	a.TogglePause()
	b.TogglePause()

	moves := []types.Direction{types.North, types.West, types.South, types.East}
	for i := 0; i < 300; i++ {
		if i%7 == 0 {
			a.PlayerMove(moves[(i/7)%4])
			b.PlayerMove(moves[(i/7)%4])
		}
		tick(a, clkA)
		tick(b, clkB)
		if a.IsGameOver() {
			a.ToggleRestart()
			b.ToggleRestart()
			a.TogglePause()
			b.TogglePause()
		}
	}

	sa, sb := a.Segments(), b.Segments()
	if len(sa) != len(sb) {
		t.Fatalf("lengths differ: %d vs %d", len(sa), len(sb))
	}
	for i := range sa {
		if sa[i].Pos != sb[i].Pos {
			t.Fatalf("segment %d differs: %v vs %v", i, sa[i].Pos, sb[i].Pos)
		}
	}
	fa, fb := a.Food(), b.Food()
	for i := range fa {
		if fa[i] != fb[i] {
			t.Fatalf("food %d differs: %v vs %v", i, fa[i], fb[i])
		}
	}
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	r, clk := newTestRound(t, 2024)
	rng := NewRand(7)
	r.TogglePause()

	lastSpeed := r.Speed()
	for i := 0; i < 5000; i++ {
		if rng.Intn(3) == 0 {
			r.PlayerMove(types.RandomDirection(rng))
		}
		scoreBefore := r.Score()
		ev := tick(r, clk)

		if ev.Has(EventGameOver) {
			r.ToggleRestart()
			r.TogglePause()
			lastSpeed = r.Speed()
			checkInvariants(t, r)
			continue
		}
		checkInvariants(t, r)

		if r.Speed() < lastSpeed || r.Speed() > types.MaxSpeed {
			t.Fatalf("speed went from %d to %d", lastSpeed, r.Speed())
		}
		lastSpeed = r.Speed()
		if d := r.Score() - scoreBefore; d != 0 && d != 1 {
			t.Fatalf("score jumped by %d", d)
		}
	}
}

func TestConfigNormalize(t *testing.T) {
	cfg := Config{Level: 0, InitialSpeed: 0}.Normalize()
	if cfg.Level != 1 || cfg.Name != "Level 1" || cfg.InitialSpeed != types.DefaultSpeed {
		t.Errorf("unexpected normalized config %+v", cfg)
	}

	cfg = Config{Name: "custom", Level: 3, InitialSpeed: types.MaxSpeed + 1}.Normalize()
	if cfg.Name != "custom" || cfg.InitialSpeed != types.DefaultSpeed {
		t.Errorf("unexpected normalized config %+v", cfg)
	}

	cfg = Config{Level: 2, InitialSpeed: 12}.Normalize()
	if cfg.Name != "Level 2" || cfg.InitialSpeed != 12 {
		t.Errorf("valid speed changed: %+v", cfg)
	}
}

func TestInvalidLengthIsClamped(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	cfg := DefaultConfig()
	cfg.InitialLength = 42
	r := NewRound(cfg, NewRand(1), clk)
	if r.Length() != types.DefaultLength {
		t.Errorf("length = %d, want %d", r.Length(), types.DefaultLength)
	}
	checkInvariants(t, r)
}

func TestLongBodySpawnsInsideGrid(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		clk := clock.NewManual(time.Unix(0, 0))
		cfg := DefaultConfig()
		cfg.InitialLength = types.MaxLength
		r := NewRound(cfg, NewRand(seed), clk)
		for _, s := range r.Segments() {
			if !types.InGrid(s.Pos) {
				t.Fatalf("seed %d: segment %v outside grid", seed, s.Pos)
			}
		}
		checkInvariants(t, r)
	}
}
