package integrators

import (
	"testing"

	"github.com/san-kum/bouncelab/internal/dynamo"
)

func BenchmarkVerlet(b *testing.B) {
	integrator := NewVerlet()
	pos, old := dynamo.Vec2{X: 1, Y: 1}, dynamo.Vec2{X: 1, Y: 1}
	acc := dynamo.Vec2{Y: 9.81 * 0.002}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pos, old = integrator.Step(pos, old, acc, 0.002), pos
	}
}

func BenchmarkKinematic(b *testing.B) {
	integrator := NewKinematic()
	pos, vel := dynamo.Vec2{X: 100, Y: 100}, dynamo.Vec2{X: -5, Y: 2}
	lo, hi := dynamo.Vec2{X: 40, Y: 40}, dynamo.Vec2{X: 760, Y: 560}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pos = Clamp(integrator.Step(pos, vel), lo, hi)
	}
}
