package session

import (
	"math"
	"testing"

	"github.com/neurogrip/gripmaze/internal/geom"
)

func TestIntegratorSmooth(t *testing.T) {
	g := Integrator{Smoothing: 0.1, MaxFrameDT: 0.1}

	vel := g.Smooth(geom.Vec2{}, geom.Vec2{X: 100, Y: 0})
	if math.Abs(vel.X-10) > 1e-9 {
		t.Errorf("first step vel.X = %v, want 10", vel.X)
	}

	// repeated smoothing converges toward the target
	vel = geom.Vec2{}
	target := geom.Vec2{X: 100, Y: -50}
	for i := 0; i < 200; i++ {
		vel = g.Smooth(vel, target)
	}
	if math.Abs(vel.X-100) > 1e-3 || math.Abs(vel.Y+50) > 1e-3 {
		t.Errorf("converged vel = %v, want near %v", vel, target)
	}
}

func TestIntegratorClampDT(t *testing.T) {
	g := Integrator{Smoothing: 0.1, MaxFrameDT: 0.1}

	if got := g.ClampDT(0.016); got != 0.016 {
		t.Errorf("ClampDT(0.016) = %v", got)
	}
	// window-drag stall: a multi-second frame must not teleport the ball
	if got := g.ClampDT(2.5); got != 0.1 {
		t.Errorf("ClampDT(2.5) = %v, want 0.1", got)
	}
}

func TestColliderFreeMovement(t *testing.T) {
	c := Collider{Bounciness: 0.4, BallSize: 20}

	pos, vel, res := c.Move(geom.Vec2{X: 100, Y: 100}, geom.Vec2{X: 50, Y: -30}, 0.1)
	if res.Events() != 0 {
		t.Errorf("events = %d, want 0", res.Events())
	}
	if math.Abs(pos.X-105) > 1e-9 || math.Abs(pos.Y-97) > 1e-9 {
		t.Errorf("pos = %v, want {105 97}", pos)
	}
	if vel != (geom.Vec2{X: 50, Y: -30}) {
		t.Errorf("vel changed without collision: %v", vel)
	}
}

func TestColliderSingleAxisRebound(t *testing.T) {
	// wall to the right of the ball
	c := Collider{
		Obstacles:  []geom.Rect{geom.RectAt(120, 0, 40, 200)},
		Bounciness: 0.4,
		BallSize:   20,
	}

	pos, vel, res := c.Move(geom.Vec2{X: 105, Y: 100}, geom.Vec2{X: 200, Y: 0}, 0.1)
	if !res.HitX || res.HitY {
		t.Fatalf("result = %+v, want x-only hit", res)
	}
	// x reverted, x velocity reflected with energy loss
	if pos.X != 105 {
		t.Errorf("pos.X = %v, want reverted 105", pos.X)
	}
	if math.Abs(vel.X+80) > 1e-9 {
		t.Errorf("vel.X = %v, want -80", vel.X)
	}
	if vel.Y != 0 || pos.Y != 100 {
		t.Errorf("y axis disturbed: pos=%v vel=%v", pos, vel)
	}
}

// A diagonal move into a corner where both the x-only and y-only proposed
// displacements overlap counts two distinct collision events in the same
// frame, and the position holds on both axes. This is intended accounting.
func TestColliderCornerCountsTwoEvents(t *testing.T) {
	c := Collider{
		Obstacles: []geom.Rect{
			geom.RectAt(120, 0, 40, 200), // wall to the right
			geom.RectAt(0, 120, 200, 40), // wall below
		},
		Bounciness: 0.4,
		BallSize:   20,
	}

	start := geom.Vec2{X: 105, Y: 105}
	pos, vel, res := c.Move(start, geom.Vec2{X: 100, Y: 100}, 0.1)

	if res.Events() != 2 {
		t.Fatalf("events = %d, want 2", res.Events())
	}
	if pos != start {
		t.Errorf("pos = %v, want unchanged %v", pos, start)
	}
	if math.Abs(vel.X+40) > 1e-9 || math.Abs(vel.Y+40) > 1e-9 {
		t.Errorf("vel = %v, want {-40 -40}", vel)
	}
}

func TestColliderZeroBouncinessStops(t *testing.T) {
	c := Collider{
		Obstacles:  []geom.Rect{geom.RectAt(120, 0, 40, 200)},
		Bounciness: 0,
		BallSize:   20,
	}

	_, vel, res := c.Move(geom.Vec2{X: 105, Y: 100}, geom.Vec2{X: 200, Y: 0}, 0.1)
	if !res.HitX {
		t.Fatal("expected x hit")
	}
	if vel.X != 0 {
		t.Errorf("vel.X = %v, want 0 with zero bounciness", vel.X)
	}
}
