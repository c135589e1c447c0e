package manager

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const maxHistory = 200 // Rounds kept in the session history

// RoundRecord summarizes one finished round.
type RoundRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	Speed     int       `json:"speed"`
	Length    int       `json:"length"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// Duration is the wall time between round start and end.
func (r RoundRecord) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// GameStats is the on-disk form of the session records.
type GameStats struct {
	HighScore int           `json:"highScore"`
	Rounds    []RoundRecord `json:"rounds"`
}

// StateManager collects finished rounds. It is a scoreboard only: nothing in
// it is fed back into a running round.
type StateManager struct {
	highScore int
	rounds    []RoundRecord
}

func NewStateManager() *StateManager {
	return &StateManager{
		rounds: make([]RoundRecord, 0),
	}
}

// AddRound records a finished round. It satisfies the round observer hook.
func (sm *StateManager) AddRound(rec RoundRecord) {
	if rec.Score > sm.highScore {
		sm.highScore = rec.Score
	}
	if len(sm.rounds) >= maxHistory {
		sm.rounds = sm.rounds[1:]
	}
	sm.rounds = append(sm.rounds, rec)
}

func (sm *StateManager) HighScore() int {
	return sm.highScore
}

// History returns a copy of the recorded rounds, oldest first.
func (sm *StateManager) History() []RoundRecord {
	out := make([]RoundRecord, len(sm.rounds))
	copy(out, sm.rounds)
	return out
}

func (sm *StateManager) GamesPlayed() int {
	return len(sm.rounds)
}

func (sm *StateManager) AverageScore() float64 {
	if len(sm.rounds) == 0 {
		return 0
	}
	total := 0
	for _, r := range sm.rounds {
		total += r.Score
	}
	return float64(total) / float64(len(sm.rounds))
}

func (sm *StateManager) MedianScore() float64 {
	if len(sm.rounds) == 0 {
		return 0
	}
	scores := make([]int, len(sm.rounds))
	for i, r := range sm.rounds {
		scores[i] = r.Score
	}
	sort.Ints(scores)
	mid := len(scores) / 2
	if len(scores)%2 == 0 {
		return float64(scores[mid-1]+scores[mid]) / 2
	}
	return float64(scores[mid])
}

// Save writes the records as indented JSON, creating the directory if needed.
func (sm *StateManager) Save(filename string) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create stats directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(GameStats{
		HighScore: sm.highScore,
		Rounds:    sm.rounds,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("write stats file: %w", err)
	}
	return nil
}

// Load replaces the records with the content of filename. A missing file
// leaves the manager empty and is not an error.
func (sm *StateManager) Load(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read stats file: %w", err)
	}

	var stats GameStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return fmt.Errorf("parse stats file %s: %w", filename, err)
	}

	sm.highScore = stats.HighScore
	sm.rounds = stats.Rounds
	if sm.rounds == nil {
		sm.rounds = make([]RoundRecord, 0)
	}
	return nil
}
