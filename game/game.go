package game

import (
	"log"
	"time"

	"github.com/google/uuid"

	"speed-snake/game/clock"
	"speed-snake/game/entity"
	"speed-snake/game/manager"
	"speed-snake/game/types"
)

// Events reports what happened during one Update.
type Events uint8

const (
	EventStepped Events = 1 << iota
	EventAte
	EventSpeedUp
	EventGameOver
)

func (e Events) Has(flag Events) bool {
	return e&flag != 0
}

// RoundObserver receives a record each time a round finishes.
// *manager.StateManager satisfies it.
type RoundObserver interface {
	AddRound(rec manager.RoundRecord)
}

// Round is one game: a snake, its food and the tick clock that drives them.
// It is not safe for concurrent use; frontends call it from one goroutine.
type Round struct {
	id    uuid.UUID
	cfg   Config
	grid  types.Grid
	rng   types.Rand
	clock clock.Clock
	timer *clock.Timer

	snake        *entity.Snake
	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager
	observer     RoundObserver

	score     int
	speed     int
	highScore int
	paused    bool
	gameOver  bool
	recorded  bool
	startTime time.Time
}

// NewRound creates a round in the paused state. rng is shared by snake
// spawning and food placement.
func NewRound(cfg Config, rng types.Rand, clk clock.Clock) *Round {
	r := &Round{
		cfg:          cfg.Normalize(),
		grid:         types.DefaultGrid,
		rng:          rng,
		clock:        clk,
		timer:        clock.NewTimer(clk),
		collisionMgr: manager.NewCollisionManager(types.DefaultGrid),
		foodMgr:      manager.NewFoodManager(types.DefaultGrid, rng),
	}
	r.reset()
	return r
}

// SetObserver installs the hook that receives finished rounds.
func (r *Round) SetObserver(o RoundObserver) {
	r.observer = o
}

func (r *Round) reset() {
	r.id = uuid.New()
	r.score = 0
	r.speed = r.cfg.InitialSpeed
	r.paused = true
	r.gameOver = false
	r.recorded = false
	r.startTime = r.clock.Now()

	r.snake = r.spawnSnake()
	r.foodMgr.Reset()
	r.collisionMgr.Reset(r.snake.Positions(), r.foodMgr.GetFoodList())

	r.timer.Reset()
	r.timer.Pause()
}

// spawnSnake places a straight body far enough from the walls that it fits
// inside the grid whatever its random heading.
func (r *Round) spawnSnake() *entity.Snake {
	margin := types.SpawnMargin
	if l := r.cfg.InitialLength; l <= types.MaxLength && l-1 > margin {
		margin = l - 1
	}
	span := r.grid.Width - 2*margin
	start := types.Point{
		X: margin + r.rng.Intn(span),
		Y: margin + r.rng.Intn(span),
	}
	return entity.NewSnake(start, r.cfg.InitialLength, types.RandomDirection(r.rng))
}

// Interval is the time between two steps at the current speed.
func (r *Round) Interval() time.Duration {
	return time.Second / time.Duration(r.speed)
}

// Update runs at most one simulation step. It is meant to be called once per
// frame; frames that fall inside the current tick interval do nothing, and
// missed ticks are not caught up.
func (r *Round) Update() Events {
	if r.paused || r.gameOver {
		return 0
	}
	if r.timer.Elapsed() < r.Interval() {
		return 0
	}
	r.timer.Reset()
	return r.step()
}

func (r *Round) step() Events {
	events := EventStepped

	head, tail, removed := r.snake.Step()
	if removed {
		r.collisionMgr.OnTailRemoved(tail)
	}

	// The lethal head stays in the body so the last frame shows it.
	if r.collisionMgr.IsBlocked(head) {
		r.gameOver = true
		log.Printf("round %s: game over at (%d,%d), score %d", r.cfg.Name, head.X, head.Y, r.score)
		r.record()
		return events | EventGameOver
	}
	r.collisionMgr.OnHeadAdded(head)

	if !r.collisionMgr.IsFood(head) {
		return events
	}

	r.score++
	if r.score > r.highScore {
		r.highScore = r.score
	}
	r.snake.MarkGrowing()
	r.collisionMgr.RemoveFood(head)
	next, _ := r.foodMgr.OnEaten(head, r.collisionMgr.IsExcluded)
	r.collisionMgr.AddFood(next)
	events |= EventAte

	if r.score%types.RampEvery == 0 && r.speed < types.MaxSpeed {
		r.speed++
		events |= EventSpeedUp
		log.Printf("round %s: speed up to %d", r.cfg.Name, r.speed)
	}
	return events
}

func (r *Round) record() {
	if r.recorded || r.observer == nil {
		return
	}
	r.recorded = true
	r.observer.AddRound(manager.RoundRecord{
		ID:        r.id.String(),
		Name:      r.cfg.Name,
		Score:     r.score,
		Speed:     r.speed,
		Length:    r.snake.Len(),
		StartTime: r.startTime,
		EndTime:   r.clock.Now(),
	})
}

// TogglePause switches between running and paused. The tick timer is frozen
// while paused and resumes with the same remaining time.
func (r *Round) TogglePause() {
	r.paused = !r.paused
	if r.paused {
		r.timer.Pause()
		log.Printf("round %s: paused", r.cfg.Name)
	} else {
		r.timer.Resume()
		log.Printf("round %s: resumed", r.cfg.Name)
	}
}

// ToggleRestart starts a fresh round in the paused state. A round abandoned
// with a non-zero score is recorded first.
func (r *Round) ToggleRestart() {
	if r.score > 0 {
		r.record()
	}
	r.reset()
	log.Printf("round %s: restarted", r.cfg.Name)
}

// Restart is an alias of ToggleRestart.
func (r *Round) Restart() {
	r.ToggleRestart()
}

// PlayerMove queues a heading for the next step. Legal in every state.
func (r *Round) PlayerMove(dir types.Direction) {
	r.snake.SetDirection(dir)
}

// Segments returns the body head to tail.
func (r *Round) Segments() []entity.Segment {
	return r.snake.Segments()
}

func (r *Round) Head() types.Point {
	return r.snake.Head()
}

func (r *Round) Direction() types.Direction {
	return r.snake.Direction()
}

// Food returns the active food positions.
func (r *Round) Food() []types.Point {
	return r.foodMgr.GetFoodList()
}

// IsBlocked reports whether moving into p would end the round.
func (r *Round) IsBlocked(p types.Point) bool {
	return r.collisionMgr.IsBlocked(p)
}

func (r *Round) Grid() types.Grid {
	return r.grid
}

func (r *Round) ID() string {
	return r.id.String()
}

func (r *Round) Name() string {
	return r.cfg.Name
}

func (r *Round) Level() int {
	return r.cfg.Level
}

func (r *Round) Score() int {
	return r.score
}

// HighScore is the best score of this process, across restarts.
func (r *Round) HighScore() int {
	return r.highScore
}

func (r *Round) Speed() int {
	return r.speed
}

func (r *Round) Length() int {
	return r.snake.Len()
}

func (r *Round) IsPaused() bool {
	return r.paused
}

func (r *Round) IsGameOver() bool {
	return r.gameOver
}
