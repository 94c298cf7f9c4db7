package physics

import (
	"math/rand"

	"github.com/san-kum/bouncelab/internal/dynamo"
)

const (
	MinRadius     = 30.0
	MaxRadius     = 55.0
	MassPerRadius = 0.1

	// per-frame color reveal after a contact flash
	valueRamp = 0.04
	hueRamp   = 0.1

	// kinematic spawn speed range, pixels/frame
	minSpeed = -5.34
	maxSpeed = 5.02
)

// Body is a circle. Pos is the render-facing center in pixels; OldPos and Acc
// are in meters and only used by the verlet engine. Vel is pixels/frame and
// only used by the kinematic engine.
type Body struct {
	Pos    dynamo.Vec2
	OldPos dynamo.Vec2
	Acc    dynamo.Vec2
	Vel    dynamo.Vec2
	Color  HSV

	radius float64
	mass   float64
}

// BodyOptions mirrors the optional construction arguments. Zero fields are
// sampled.
type BodyOptions struct {
	Position *dynamo.Vec2
	Radius   float64
	Velocity *dynamo.Vec2
}

func newBody(pos dynamo.Vec2, radius float64) *Body {
	return &Body{
		Pos:    pos,
		radius: radius,
		mass:   radius * MassPerRadius,
	}
}

func (b *Body) Radius() float64 { return b.radius }
func (b *Body) Mass() float64   { return b.mass }

// Accelerate adds to the accumulated acceleration.
func (b *Body) Accelerate(a dynamo.Vec2) {
	b.Acc = b.Acc.Add(a)
}

func (b *Body) ResetAcceleration() {
	b.Acc = dynamo.Vec2{}
}

// Intersects reports whether the two circles overlap. Touching circles do
// not.
func (b *Body) Intersects(o *Body) bool {
	return b.Pos.Distance(o.Pos) < b.radius+o.radius
}

// Contains reports whether p (pixels) lies on or inside the circle.
func (b *Body) Contains(p dynamo.Vec2) bool {
	return b.Pos.Distance(p) <= b.radius
}

// ReflectVelocity removes the verlet velocity component pointing into the
// surface with inward normal n, scaled by (1 + restitution). The result is
// stored back in OldPos; Pos is left alone.
func (b *Body) ReflectVelocity(u dynamo.Units, n dynamo.Vec2, restitution float64) {
	pos := u.ToMeters(b.Pos)
	v := pos.Sub(b.OldPos)
	vn := v.Dot(n)
	if vn >= 0 {
		return
	}
	v = v.Sub(n.Scale((1 + restitution) * vn))
	b.OldPos = pos.Sub(v)
}

// ResolveIntersection is the kinematic collision response: both circles are
// pushed apart by half the overlap and their velocities are swapped.
// Coincident centers separate along +X.
func (b *Body) ResolveIntersection(o *Body) {
	delta := o.Pos.Sub(b.Pos)
	dist := delta.Length()
	overlap := b.radius + o.radius - dist
	dir := dynamo.Vec2{X: 1}
	if dist > 0 {
		dir = delta.Scale(1 / dist)
	}
	half := dir.Scale(overlap / 2)
	b.Pos = b.Pos.Sub(half)
	o.Pos = o.Pos.Add(half)
	b.Vel, o.Vel = o.Vel, b.Vel
}

// RandomizeColor picks a fresh hue and drops the value to zero, so the body
// goes dark and UpdateColor reveals the new color over the next frames.
func (b *Body) RandomizeColor(rng *rand.Rand) {
	b.Color.H = float64(rng.Intn(360))
	b.Color.V = 0
}

// UpdateColor advances the reveal ramp by one frame.
func (b *Body) UpdateColor() {
	b.Color.V += valueRamp
	if b.Color.V > 1 {
		b.Color.V = 1
	}
	b.Color.H += hueRamp
	if b.Color.H >= 360 {
		b.Color.H -= 360
	}
}

func randomRadius(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func randomSpeed(rng *rand.Rand) dynamo.Vec2 {
	return dynamo.Vec2{
		X: minSpeed + rng.Float64()*(maxSpeed-minSpeed),
		Y: minSpeed + rng.Float64()*(maxSpeed-minSpeed),
	}
}

// randomAxis samples uniformly in [r, extent-r]; a window narrower than the
// circle centers it.
func randomAxis(rng *rand.Rand, r, extent float64) float64 {
	span := extent - 2*r
	if span <= 0 {
		return extent / 2
	}
	return r + rng.Float64()*span
}
