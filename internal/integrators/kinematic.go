package integrators

import "github.com/san-kum/bouncelab/internal/dynamo"

// Kinematic moves a body by a fixed velocity per frame. It is the stepper of
// the simple bouncing variant where velocity is in pixels/frame and there are
// no forces.
type Kinematic struct{}

func NewKinematic() *Kinematic {
	return &Kinematic{}
}

func (k *Kinematic) Step(pos, vel dynamo.Vec2) dynamo.Vec2 {
	return pos.Add(vel)
}

// Clamp keeps p inside [lo, hi] on both axes.
func Clamp(p, lo, hi dynamo.Vec2) dynamo.Vec2 {
	return dynamo.Vec2{X: clamp(p.X, lo.X, hi.X), Y: clamp(p.Y, lo.Y, hi.Y)}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
