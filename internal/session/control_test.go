package session

import (
	"math/rand"
	"testing"

	"github.com/neurogrip/gripmaze/internal/config"
	"github.com/neurogrip/gripmaze/internal/geom"
)

func newTestResolver() *ControlResolver {
	return NewControlResolver(config.DefaultGameConfig(), rand.New(rand.NewSource(1)))
}

func TestResolveSensorGripGating(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name       string
		sample     SensorSample
		wantMoving bool
	}{
		{"force below threshold blocks tilt", SensorSample{Force: 100, Accel: geom.Vec3{X: 5000, Y: 5000}}, false},
		{"force at threshold blocks tilt", SensorSample{Force: 500, Accel: geom.Vec3{X: 5000, Y: 5000}}, false},
		{"force above threshold allows tilt", SensorSample{Force: 501, Accel: geom.Vec3{X: 5000, Y: 0}}, true},
		{"grip without tilt stays still", SensorSample{Force: 2000, Accel: geom.Vec3{}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := r.ResolveSensor(tt.sample)
			moving := sig.Target.Length() > 0
			if moving != tt.wantMoving {
				t.Errorf("target = %v, moving = %v, want %v", sig.Target, moving, tt.wantMoving)
			}
			// samples are recorded exactly when there is motion intent
			if sig.Sampled != tt.wantMoving {
				t.Errorf("Sampled = %v, want %v", sig.Sampled, tt.wantMoving)
			}
		})
	}
}

func TestResolveSensorTiltScaling(t *testing.T) {
	r := newTestResolver()

	// full deflection: 5000 counts / 5000 sensitivity = 1.0
	sig := r.ResolveSensor(SensorSample{Force: 1000, Accel: geom.Vec3{X: 5000, Y: -2500}})
	if sig.Target.X != 260 {
		t.Errorf("target.X = %v, want 260", sig.Target.X)
	}
	if sig.Target.Y != -130 {
		t.Errorf("target.Y = %v, want -130", sig.Target.Y)
	}

	// tilt clamps at one full deflection
	sig = r.ResolveSensor(SensorSample{Force: 1000, Accel: geom.Vec3{X: 20000, Y: 0}})
	if sig.Target.X != 260 {
		t.Errorf("clamped target.X = %v, want 260", sig.Target.X)
	}
}

func TestResolveKeyboard(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name string
		keys KeyState
		want geom.Vec2
	}{
		{"idle", KeyState{}, geom.Vec2{}},
		{"right", KeyState{Right: true}, geom.Vec2{X: 260}},
		{"up-left diagonal", KeyState{Up: true, Left: true}, geom.Vec2{X: -260, Y: -260}},
		{"opposing keys cancel", KeyState{Left: true, Right: true}, geom.Vec2{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := r.ResolveKeyboard(tt.keys)
			if sig.Target != tt.want {
				t.Errorf("target = %v, want %v", sig.Target, tt.want)
			}
		})
	}
}

func TestResolveKeyboardSyntheticForce(t *testing.T) {
	cfg := config.DefaultGameConfig()
	r := NewControlResolver(cfg, rand.New(rand.NewSource(42)))

	lo := cfg.GetFSRThreshold() + 200
	hi := cfg.GetMaxFSRValue() - 500

	for i := 0; i < 100; i++ {
		sig := r.ResolveKeyboard(KeyState{Down: true})
		if !sig.Sampled {
			t.Fatal("held key must produce a sample")
		}
		if sig.Force < lo || sig.Force > hi {
			t.Fatalf("synthetic force %v outside [%v, %v]", sig.Force, lo, hi)
		}
	}

	// no keys held, force is zero and not sampled
	sig := r.ResolveKeyboard(KeyState{})
	if sig.Sampled || sig.Force != 0 {
		t.Errorf("idle keyboard = %+v, want zero unsampled force", sig)
	}
}
