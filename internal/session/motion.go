package session

import (
	"github.com/neurogrip/gripmaze/internal/geom"
)

// Integrator advances ball velocity toward a target with fixed exponential
// smoothing. The smoothing factor is applied per frame and is deliberately
// not scaled by dt, so perceived acceleration tracks the frame rate; dt is
// clamped against frame-time spikes such as window-drag stalls. Position
// integration happens axis by axis inside Collider.Move.
type Integrator struct {
	Smoothing  float64
	MaxFrameDT float64
}

// Smooth returns the new velocity after one smoothing step toward target.
func (g Integrator) Smooth(vel, target geom.Vec2) geom.Vec2 {
	return vel.Lerp(target, g.Smoothing)
}

// ClampDT bounds a measured frame time to the configured maximum.
func (g Integrator) ClampDT(dt float64) float64 {
	if dt > g.MaxFrameDT {
		return g.MaxFrameDT
	}
	return dt
}

// Collider resolves ball movement against the static obstacle set with
// axis-separated accounting: the x displacement is applied and tested first,
// then y, independently. A diagonal hit into a corner therefore counts two
// collision events in one frame.
type Collider struct {
	Obstacles  []geom.Rect
	Bounciness float64
	BallSize   float64
}

// CollisionResult reports the per-axis outcome of one frame's movement.
type CollisionResult struct {
	HitX bool
	HitY bool
}

// Events returns how many collision events the frame produced (0, 1 or 2).
func (c CollisionResult) Events() int {
	n := 0
	if c.HitX {
		n++
	}
	if c.HitY {
		n++
	}
	return n
}

// Move applies vel over dt one axis at a time. On overlap the axis position
// reverts to its pre-frame value and that axis's velocity reflects scaled by
// the bounciness coefficient.
func (c Collider) Move(pos, vel geom.Vec2, dt float64) (geom.Vec2, geom.Vec2, CollisionResult) {
	var res CollisionResult

	// x axis first; order is fixed
	next := geom.Vec2{X: pos.X + vel.X*dt, Y: pos.Y}
	if c.overlapsAny(next) {
		vel.X *= -c.Bounciness
		res.HitX = true
	} else {
		pos.X = next.X
	}

	next = geom.Vec2{X: pos.X, Y: pos.Y + vel.Y*dt}
	if c.overlapsAny(next) {
		vel.Y *= -c.Bounciness
		res.HitY = true
	} else {
		pos.Y = next.Y
	}

	return pos, vel, res
}

func (c Collider) overlapsAny(center geom.Vec2) bool {
	ball := geom.RectCentered(center, c.BallSize, c.BallSize)
	for _, ob := range c.Obstacles {
		if ball.Overlaps(ob) {
			return true
		}
	}
	return false
}
