package audio

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"speed-snake/game"
)

const sampleRate = beep.SampleRate(44100)

const (
	eatDuration      = 50 * time.Millisecond
	speedUpDuration  = 60 * time.Millisecond
	gameOverDuration = 300 * time.Millisecond
)

// Tone is a sine wave of freq Hz lasting d. Invalid frequencies give silence.
func Tone(rate beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return beep.Silence(rate.N(d))
	}
	return beep.Take(rate.N(d), sine)
}

// Sound returns the cue for a step, or nil when the step is silent. Game over
// wins over speed-up, which wins over eating.
func Sound(rate beep.SampleRate, ev game.Events) beep.Streamer {
	var s beep.Streamer
	switch {
	case ev.Has(game.EventGameOver):
		s = beep.Seq(
			Tone(rate, 330, gameOverDuration/2),
			Tone(rate, 220, gameOverDuration/2),
		)
	case ev.Has(game.EventSpeedUp):
		s = beep.Seq(
			Tone(rate, 880, speedUpDuration),
			Tone(rate, 1320, speedUpDuration),
		)
	case ev.Has(game.EventAte):
		s = Tone(rate, 880, eatDuration)
	default:
		return nil
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: -2}
}

// Cues plays step sounds on the speaker. A failed speaker init is logged and
// leaves the cues silent.
type Cues struct {
	enabled bool
}

func NewCues(enabled bool) *Cues {
	c := &Cues{}
	if !enabled {
		return c
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("audio: speaker init failed, sound disabled: %v", err)
		return c
	}
	c.enabled = true
	return c
}

func (c *Cues) Enabled() bool {
	return c.enabled
}

func (c *Cues) Play(ev game.Events) {
	if !c.enabled {
		return
	}
	if s := Sound(sampleRate, ev); s != nil {
		speaker.Play(s)
	}
}

func (c *Cues) Close() {
	if c.enabled {
		speaker.Close()
		c.enabled = false
	}
}
