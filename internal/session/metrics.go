package session

import (
	"github.com/neurogrip/gripmaze/internal/geom"
)

// LevelMetrics accumulates one level attempt's performance record. Force
// samples are taken only on frames with intent to move; path points are
// appended every frame with the first entry being the start position.
type LevelMetrics struct {
	LevelName       string
	DurationSeconds float64
	CollisionCount  int

	// MaxForce and MinForceDuringMotion are running extrema over motion
	// frames. MinForceDuringMotion starts at the sensor's maximum
	// representable value and only decreases; if no motion ever occurs it
	// stays at that sentinel and must be read as "no data", not a minimum.
	MaxForce             float64
	MinForceDuringMotion float64

	ForceSamples []float64
	PathPoints   []geom.Vec2

	// ShortestPathLength is the straight-line start-to-goal distance times a
	// fixed slack factor. It is a heuristic, not a maze-solved distance, so
	// path efficiencies above 100% are possible.
	ShortestPathLength float64
}

// NewLevelMetrics starts a fresh record. maxForceValue seeds the min-force
// sentinel; start becomes the first path point.
func NewLevelMetrics(levelName string, start, goal geom.Vec2, maxForceValue, slackFactor float64) *LevelMetrics {
	return &LevelMetrics{
		LevelName:            levelName,
		MinForceDuringMotion: maxForceValue,
		PathPoints:           []geom.Vec2{start},
		ShortestPathLength:   start.Distance(goal) * slackFactor,
	}
}

// RecordForce appends a motion-frame force sample and updates the extrema.
func (m *LevelMetrics) RecordForce(force float64) {
	m.ForceSamples = append(m.ForceSamples, force)
	if force > m.MaxForce {
		m.MaxForce = force
	}
	if force < m.MinForceDuringMotion {
		m.MinForceDuringMotion = force
	}
}

// RecordPathPoint appends the ball center for the current frame.
func (m *LevelMetrics) RecordPathPoint(p geom.Vec2) {
	m.PathPoints = append(m.PathPoints, p)
}

// HasMotionData reports whether any motion frame was ever recorded. When
// false the min-force field is still the sentinel.
func (m *LevelMetrics) HasMotionData() bool {
	return len(m.ForceSamples) > 0
}
