package game

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/exp/rand"

	"speed-snake/game/types"
)

// Config describes how a round starts. Restart returns to these values.
type Config struct {
	Name          string
	Level         int
	InitialSpeed  int    // Ticks per second at round start
	InitialLength int    // Body segments at round start
	Seed          uint64 // 0 seeds from the wall clock
}

func DefaultConfig() Config {
	return Config{
		Name:          "Level 1",
		Level:         1,
		InitialSpeed:  types.DefaultSpeed,
		InitialLength: types.DefaultLength,
	}
}

// Normalize fills blanks and clamps the speed into [1, MaxSpeed]. Invalid
// values are replaced with a warning, never rejected. Body length is clamped
// by the snake itself.
func (c Config) Normalize() Config {
	if c.Level < 1 {
		c.Level = 1
	}
	if c.Name == "" {
		c.Name = fmt.Sprintf("Level %d", c.Level)
	}
	if c.InitialSpeed < 1 || c.InitialSpeed > types.MaxSpeed {
		log.Printf("config: invalid initial speed %d, using %d", c.InitialSpeed, types.DefaultSpeed)
		c.InitialSpeed = types.DefaultSpeed
	}
	return c
}

// NewRand returns the seeded PCG source shared by snake spawning and food
// placement. A zero seed is replaced by the current time.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}
