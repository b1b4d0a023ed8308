package session

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/neurogrip/gripmaze/internal/config"
	"github.com/neurogrip/gripmaze/internal/geom"
	"github.com/neurogrip/gripmaze/internal/level"
)

// FrameInput carries one frame's elapsed time and input. Sensor is nil when
// no new hardware sample arrived this frame, in which case the keyboard
// state drives the ball.
type FrameInput struct {
	DT     float64
	Sensor *SensorSample
	Keys   KeyState
}

// FrameResult reports what one frame did, for the HUD and effects layer.
type FrameResult struct {
	Completed bool
	Collision CollisionResult
	Force     float64
	Velocity  geom.Vec2
	Position  geom.Vec2
}

// LevelSession owns one level attempt: the live ball, parsed geometry and
// the metrics record under accumulation. It is created fresh per attempt and
// discarded after completion or abandonment. States are running and
// completed; once completed no further frames are processed.
type LevelSession struct {
	cfg      *config.GameConfig
	geometry *level.Geometry

	resolver   *ControlResolver
	integrator Integrator
	collider   Collider

	pos       geom.Vec2
	vel       geom.Vec2
	metrics   *LevelMetrics
	startTime time.Time
	now       func() time.Time
	completed bool
}

// NewLevelSession parses the layout and prepares a running session. A layout
// without a start or goal tile is a configuration error reported before any
// frame runs.
func NewLevelSession(cfg *config.GameConfig, lay level.Layout, rng *rand.Rand) (*LevelSession, error) {
	g, err := lay.Parse(cfg.GetTileSize(), cfg.GetCaptureRadius())
	if err != nil {
		return nil, fmt.Errorf("constructing level: %w", err)
	}

	return &LevelSession{
		cfg:      cfg,
		geometry: g,
		resolver: NewControlResolver(cfg, rng),
		integrator: Integrator{
			Smoothing:  cfg.GetPlayerAcceleration(),
			MaxFrameDT: cfg.GetMaxFrameSeconds(),
		},
		collider: Collider{
			Obstacles:  g.Obstacles,
			Bounciness: cfg.GetPlayerBounciness(),
			BallSize:   cfg.GetBallSize(),
		},
		pos:       g.Start,
		metrics:   NewLevelMetrics(lay.Name, g.Start, g.Goal.Center, cfg.GetMaxFSRValue(), cfg.GetPathSlackFactor()),
		now:       time.Now,
		startTime: time.Now(),
	}, nil
}

// SetClock replaces the wall clock used for the duration measurement.
func (s *LevelSession) SetClock(now func() time.Time) {
	s.now = now
	s.startTime = now()
}

// Frame advances the session by one frame: resolve control, sample force on
// motion intent, smooth velocity, move with axis-separated collision, record
// the path point, then test goal capture. Calling Frame after completion is
// a no-op.
func (s *LevelSession) Frame(in FrameInput) FrameResult {
	if s.completed {
		return FrameResult{Completed: true, Position: s.pos}
	}

	var sig ControlSignal
	if in.Sensor != nil {
		sig = s.resolver.ResolveSensor(*in.Sensor)
	} else {
		sig = s.resolver.ResolveKeyboard(in.Keys)
	}
	if sig.Sampled {
		s.metrics.RecordForce(sig.Force)
	}

	dt := s.integrator.ClampDT(in.DT)
	s.vel = s.integrator.Smooth(s.vel, sig.Target)

	var res CollisionResult
	s.pos, s.vel, res = s.collider.Move(s.pos, s.vel, dt)
	s.metrics.CollisionCount += res.Events()

	s.metrics.RecordPathPoint(s.pos)

	// strict comparison: at exactly the capture radius the level is not done
	if s.pos.Distance(s.geometry.Goal.Center) < s.geometry.Goal.Radius {
		s.completed = true
		s.metrics.DurationSeconds = s.now().Sub(s.startTime).Seconds()
	}

	return FrameResult{
		Completed: s.completed,
		Collision: res,
		Force:     sig.Force,
		Velocity:  s.vel,
		Position:  s.pos,
	}
}

// Completed reports whether the goal has been captured.
func (s *LevelSession) Completed() bool {
	return s.completed
}

// Metrics returns the accumulating record. After completion it is final.
func (s *LevelSession) Metrics() *LevelMetrics {
	return s.metrics
}

// Ball returns the current ball center and velocity for rendering.
func (s *LevelSession) Ball() (pos, vel geom.Vec2) {
	return s.pos, s.vel
}

// Geometry exposes the parsed level for rendering collaborators.
func (s *LevelSession) Geometry() *level.Geometry {
	return s.geometry
}
