package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/bouncelab/internal/dynamo"
)

func TestVerletDriftPreserved(t *testing.T) {
	integ := NewVerlet()
	pos := dynamo.Vec2{X: 2.0, Y: 1.5}
	old := dynamo.Vec2{X: 1.99, Y: 1.52}
	drift := integ.Drift(pos, old)

	for i := 0; i < 50; i++ {
		next := integ.Step(pos, old, dynamo.Vec2{}, 0.002)
		got := next.Sub(pos)
		if math.Abs(got.X-drift.X) > 1e-12 || math.Abs(got.Y-drift.Y) > 1e-12 {
			t.Fatalf("step %d: displacement %v, want %v", i, got, drift)
		}
		pos, old = next, pos
	}
}

func TestVerletFreeFall(t *testing.T) {
	integ := NewVerlet()
	g := 9.81
	dt := 0.001
	pos, old := dynamo.Vec2{}, dynamo.Vec2{}

	steps := 1000
	for i := 0; i < steps; i++ {
		// force accumulated pre-scaled by dt, as the engine does
		acc := dynamo.Vec2{Y: g * dt}
		pos, old = integ.Step(pos, old, acc, dt), pos
	}

	elapsed := float64(steps) * dt
	expected := 0.5 * g * elapsed * elapsed
	if math.Abs(pos.Y-expected)/expected > 0.01 {
		t.Errorf("fall distance %.4f, expected ~%.4f", pos.Y, expected)
	}
	if pos.X != 0 {
		t.Errorf("x drifted to %v", pos.X)
	}
}

func TestVerletVelocity(t *testing.T) {
	integ := NewVerlet()
	v := integ.Velocity(dynamo.Vec2{X: 1, Y: 2}, dynamo.Vec2{X: 0.5, Y: 2}, 0.5)
	if v.X != 1 || v.Y != 0 {
		t.Errorf("Velocity = %v, want {1 0}", v)
	}
	if z := integ.Velocity(dynamo.Vec2{X: 1}, dynamo.Vec2{}, 0); z != (dynamo.Vec2{}) {
		t.Errorf("zero dt velocity = %v", z)
	}
}

func TestKinematicClamp(t *testing.T) {
	tests := []struct {
		name string
		pos  dynamo.Vec2
		vel  dynamo.Vec2
		want dynamo.Vec2
	}{
		{"inside", dynamo.Vec2{X: 100, Y: 100}, dynamo.Vec2{X: -5, Y: 0}, dynamo.Vec2{X: 95, Y: 100}},
		{"left wall", dynamo.Vec2{X: 42, Y: 100}, dynamo.Vec2{X: -5, Y: 0}, dynamo.Vec2{X: 40, Y: 100}},
		{"bottom right", dynamo.Vec2{X: 758, Y: 559}, dynamo.Vec2{X: 5, Y: 5}, dynamo.Vec2{X: 760, Y: 560}},
	}

	integ := NewKinematic()
	lo, hi := dynamo.Vec2{X: 40, Y: 40}, dynamo.Vec2{X: 760, Y: 560}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(integ.Step(tt.pos, tt.vel), lo, hi)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
