package session

import (
	"math/rand"

	"github.com/neurogrip/gripmaze/internal/config"
	"github.com/neurogrip/gripmaze/internal/geom"
)

// SensorSample is one reading from the grip-ball device: a force value plus
// three-axis accelerometer and gyro counts.
type SensorSample struct {
	Force float64
	Accel geom.Vec3
	Gyro  geom.Vec3
}

// KeyState is the keyboard fallback input for one frame.
type KeyState struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
}

// ControlSignal is the resolved per-frame control output: the velocity the
// ball should steer toward, the force sample for metrics, and whether that
// sample should be recorded (motion intent this frame).
type ControlSignal struct {
	Target  geom.Vec2
	Force   float64
	Sampled bool
}

// ControlResolver converts raw sensor or keyboard input into a control
// signal. The hardware path applies the grip-gating rule: without grip force
// above the threshold the ball does not move regardless of tilt.
type ControlResolver struct {
	cfg *config.GameConfig
	rng *rand.Rand
}

// NewControlResolver builds a resolver. rng drives the synthetic force
// samples on the keyboard path and may be seeded for deterministic tests.
func NewControlResolver(cfg *config.GameConfig, rng *rand.Rand) *ControlResolver {
	return &ControlResolver{cfg: cfg, rng: rng}
}

// ResolveSensor maps a hardware sample to a control signal. Tilt counts are
// scaled by the sensitivity constant and clamped to [-1, 1]; the result is
// zeroed unless the force reading exceeds the grip threshold.
func (r *ControlResolver) ResolveSensor(s SensorSample) ControlSignal {
	out := ControlSignal{Force: s.Force}
	if s.Force <= r.cfg.GetFSRThreshold() {
		return out
	}

	sens := r.cfg.GetTiltSensitivity()
	speed := r.cfg.GetPlayerSpeed()
	out.Target = geom.Vec2{
		X: geom.Clamp(s.Accel.X/sens, -1, 1) * speed,
		Y: geom.Clamp(s.Accel.Y/sens, -1, 1) * speed,
	}
	// Sampling is conditioned on intent to move, not displacement: it fires
	// even when a wall blocks the ball the same frame.
	out.Sampled = out.Target.Length() > 0
	return out
}

// ResolveKeyboard maps held direction keys to a control signal. Whenever any
// key is held, a synthetic force sample is drawn uniformly from a band
// comfortably inside the grip range so downstream statistics stay plausible.
func (r *ControlResolver) ResolveKeyboard(keys KeyState) ControlSignal {
	speed := r.cfg.GetPlayerSpeed()
	var out ControlSignal
	if keys.Right {
		out.Target.X += speed
	}
	if keys.Left {
		out.Target.X -= speed
	}
	if keys.Down {
		out.Target.Y += speed
	}
	if keys.Up {
		out.Target.Y -= speed
	}

	if out.Target.Length() > 0 {
		lo := r.cfg.GetFSRThreshold() + 200
		hi := r.cfg.GetMaxFSRValue() - 500
		out.Force = lo + r.rng.Float64()*(hi-lo)
		out.Sampled = true
	}
	return out
}
