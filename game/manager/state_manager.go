package manager

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"snake-pilot/game/types"
)

// maxScoreHistory bounds the persisted score list.
const maxScoreHistory = 100

type GameStats struct {
	HighScore    int   `json:"highScore"`
	ScoreHistory []int `json:"scoreHistory"`
}

// StateManager owns the score of the running game, the starvation clock and
// the high score across games.
type StateManager struct {
	difficulty   types.Difficulty
	now          func() time.Time
	score        int
	lastFed      time.Time
	highScore    int
	scoreHistory []int
}

func NewStateManager(difficulty types.Difficulty, now func() time.Time) *StateManager {
	if now == nil {
		now = time.Now
	}
	return &StateManager{
		difficulty:   difficulty,
		now:          now,
		lastFed:      now(),
		scoreHistory: make([]int, 0),
	}
}

// Feed adds the food reward and restarts the starvation clock.
func (sm *StateManager) Feed() int {
	sm.score += types.FoodScoreUnit * int(sm.difficulty)
	sm.lastFed = sm.now()
	if sm.score > sm.highScore {
		sm.highScore = sm.score
	}
	return sm.score
}

func (sm *StateManager) SinceFed() time.Duration {
	return sm.now().Sub(sm.lastFed)
}

func (sm *StateManager) Score() int {
	return sm.score
}

// EndGame records the final score. The score stays readable until Restart.
func (sm *StateManager) EndGame() {
	sm.AddToHistory(sm.score)
}

// Restart clears the score and the starvation clock without recording.
func (sm *StateManager) Restart() {
	sm.score = 0
	sm.lastFed = sm.now()
}

func (sm *StateManager) AddToHistory(score int) {
	if score > sm.highScore {
		sm.highScore = score
	}
	sm.scoreHistory = append(sm.scoreHistory, score)
	if len(sm.scoreHistory) > maxScoreHistory {
		sm.scoreHistory = sm.scoreHistory[len(sm.scoreHistory)-maxScoreHistory:]
	}
}

func (sm *StateManager) GetHighScore() int {
	return sm.highScore
}

func (sm *StateManager) GetScoreHistory() []int {
	return sm.scoreHistory
}

func (sm *StateManager) SaveStats(filename string) error {
	stats := GameStats{
		HighScore:    sm.highScore,
		ScoreHistory: sm.scoreHistory,
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return errors.Wrap(err, "create stats directory")
	}
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode game stats")
	}
	return errors.Wrapf(os.WriteFile(filename, data, 0644), "write %s", filename)
}

func (sm *StateManager) LoadStats(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "read %s", filename)
	}

	var stats GameStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return errors.Wrapf(err, "decode %s", filename)
	}

	sm.highScore = stats.HighScore
	sm.scoreHistory = stats.ScoreHistory
	return nil
}
