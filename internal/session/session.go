// Package session implements the real-time maze engine: per-frame control
// resolution, motion integration, collision accounting, level progression
// and the metrics records the statistics pipeline consumes afterward.
package session

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/neurogrip/gripmaze/internal/config"
	"github.com/neurogrip/gripmaze/internal/level"
	"github.com/neurogrip/gripmaze/internal/monitoring"
)

// UserType distinguishes the two player cohorts. Normal sessions feed the
// population baseline; rehabilitation sessions are compared against it.
type UserType string

const (
	UserNormal UserType = "normal"
	UserRehab  UserType = "rehab"
)

// Player identifies who is playing this session.
type Player struct {
	Name   string
	Gender string
	Age    int
	Type   UserType
}

// Outcome is what should happen after a level completes.
type Outcome int

const (
	// OutcomeAskContinue pauses for the continue/end decision.
	OutcomeAskContinue Outcome = iota
	// OutcomeReport means the final level finished; the session always goes
	// straight to report generation, never back to the continue prompt.
	OutcomeReport
)

// Session is one playthrough: a player, the fixed level progression and the
// ordered records of completed levels. Starting a new game resets it.
type Session struct {
	ID     string
	Player Player

	cfg    *config.GameConfig
	levels []level.Layout
	rng    *rand.Rand

	index     int
	completed []LevelMetrics
}

// New creates a session over the built-in level progression.
func New(cfg *config.GameConfig, player Player, rng *rand.Rand) *Session {
	return &Session{
		ID:     uuid.NewString(),
		Player: player,
		cfg:    cfg,
		levels: level.Sequence,
		rng:    rng,
	}
}

// CurrentLevelName returns the layout name the next StartLevel will play.
func (s *Session) CurrentLevelName() string {
	if s.index >= len(s.levels) {
		return ""
	}
	return s.levels[s.index].Name
}

// StartLevel constructs the level session for the current progression index.
// Configuration errors are logged and returned; the caller falls back to the
// menu rather than crashing.
func (s *Session) StartLevel() (*LevelSession, error) {
	lay := s.levels[s.index]
	ls, err := NewLevelSession(s.cfg, lay, s.rng)
	if err != nil {
		monitoring.Logf("level %s: %v", lay.Name, err)
		return nil, err
	}
	return ls, nil
}

// CompleteLevel accepts a finished level's metrics, advances the
// progression, and says whether to ask about continuing or generate the
// report.
func (s *Session) CompleteLevel(m *LevelMetrics) Outcome {
	s.completed = append(s.completed, *m)
	s.index++
	if s.index >= len(s.levels) {
		return OutcomeReport
	}
	return OutcomeAskContinue
}

// Completed returns the ordered metrics of all finished levels.
func (s *Session) Completed() []LevelMetrics {
	return s.completed
}

// Reset restarts the progression for a new game, discarding prior metrics.
func (s *Session) Reset() {
	s.index = 0
	s.completed = nil
	s.ID = uuid.NewString()
}
