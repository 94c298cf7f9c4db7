package integrators

import "github.com/san-kum/bouncelab/internal/dynamo"

// Verlet is a position verlet stepper. It carries no velocity: the motion of a
// body is implied by the difference between its current and previous position.
//
// The acceleration term is scaled by dt, not dt². Forces are applied to the
// accumulator already multiplied by the sub-step (see physics.Engine), so the
// product is the usual a·dt² displacement.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

// Step returns 2·pos − old + acc·dt.
func (v *Verlet) Step(pos, old, acc dynamo.Vec2, dt float64) dynamo.Vec2 {
	return pos.Scale(2).Sub(old).Add(acc.Scale(dt))
}

// Drift is the per-step displacement a body would keep with no acceleration.
func (v *Verlet) Drift(pos, old dynamo.Vec2) dynamo.Vec2 {
	return pos.Sub(old)
}

// Velocity converts the drift to a rate over dt. A zero dt yields zero.
func (v *Verlet) Velocity(pos, old dynamo.Vec2, dt float64) dynamo.Vec2 {
	if dt == 0 {
		return dynamo.Vec2{}
	}
	return pos.Sub(old).Scale(1 / dt)
}
