package physics

import (
	"math"
	"math/rand"

	"github.com/san-kum/bouncelab/internal/dynamo"
	"github.com/san-kum/bouncelab/internal/integrators"
)

const (
	DefaultSubSteps     = 8
	DefaultSpringFactor = 0.1
	DefaultRestitution  = 0.0
	DefaultGravity      = 9.81

	textBounciness = 1.0
)

// Mode selects the body model.
type Mode int

const (
	// ModeVerlet runs sub-stepped verlet integration under gravity.
	ModeVerlet Mode = iota
	// ModeKinematic moves bodies by a constant velocity per frame and bounces
	// them off the walls. Gravity has no effect.
	ModeKinematic
)

func (m Mode) String() string {
	if m == ModeKinematic {
		return "kinematic"
	}
	return "verlet"
}

// Settings configures an Engine. Lengths are in pixels unless noted.
type Settings struct {
	Units          dynamo.Units
	Width, Height  float64 // pixels
	Gravity        dynamo.Vec2
	GravityEnabled bool
	SubSteps       int
	Restitution    float64
	SpringFactor   float64
	Mode           Mode

	// random radius range for spawned bodies, pixels
	MinRadius, MaxRadius float64
}

// DefaultSettings returns the verlet setup for a window of width by height pixels.
func DefaultSettings(width, height float64) Settings {
	return Settings{
		Units:          dynamo.DefaultUnits,
		Width:          width,
		Height:         height,
		Gravity:        dynamo.Vec2{Y: DefaultGravity},
		GravityEnabled: true,
		SubSteps:       DefaultSubSteps,
		Restitution:    DefaultRestitution,
		SpringFactor:   DefaultSpringFactor,
		Mode:           ModeVerlet,
		MinRadius:      MinRadius,
		MaxRadius:      MaxRadius,
	}
}

// Contacts counts collision events since the last ResetContacts.
type Contacts struct {
	Bodies int
	Walls  int
	Labels int
}

// Engine advances bodies and resolves their collisions. All spatial math is
// done in meters; body positions are converted on every read and write.
type Engine struct {
	units       dynamo.Units
	size        dynamo.Vec2 // pixels
	bounds      dynamo.Vec2 // meters
	gravity     dynamo.Vec2
	gravityOn   bool
	subSteps    int
	restitution float64
	spring      float64
	mode        Mode
	minR, maxR  float64

	verlet    *integrators.Verlet
	kinematic *integrators.Kinematic
	rng       *rand.Rand
	contacts  Contacts

	// IntroActive is consulted on every boundary check; while it returns true
	// the top wall is open.
	IntroActive func() bool
}

// NewEngine builds an engine from s, filling unset fields with defaults.
func NewEngine(s Settings, rng *rand.Rand) *Engine {
	if s.Units <= 0 {
		s.Units = dynamo.DefaultUnits
	}
	if s.SubSteps < 1 {
		s.SubSteps = DefaultSubSteps
	}
	if s.MinRadius <= 0 || s.MaxRadius < s.MinRadius {
		s.MinRadius, s.MaxRadius = MinRadius, MaxRadius
	}
	size := dynamo.Vec2{X: s.Width, Y: s.Height}
	return &Engine{
		units:       s.Units,
		size:        size,
		bounds:      s.Units.ToMeters(size),
		gravity:     s.Gravity,
		gravityOn:   s.GravityEnabled,
		subSteps:    s.SubSteps,
		restitution: s.Restitution,
		spring:      s.SpringFactor,
		mode:        s.Mode,
		minR:        s.MinRadius,
		maxR:        s.MaxRadius,
		verlet:      integrators.NewVerlet(),
		kinematic:   integrators.NewKinematic(),
		rng:         rng,
	}
}

func (e *Engine) Units() dynamo.Units { return e.units }
func (e *Engine) Mode() Mode          { return e.mode }
func (e *Engine) SubSteps() int       { return e.subSteps }

// Size is the window extent in pixels.
func (e *Engine) Size() dynamo.Vec2 { return e.size }

// Bounds is the window extent in meters.
func (e *Engine) Bounds() dynamo.Vec2 { return e.bounds }

func (e *Engine) ToggleGravity()       { e.gravityOn = !e.gravityOn }
func (e *Engine) GravityEnabled() bool { return e.gravityOn }

func (e *Engine) Contacts() Contacts { return e.contacts }
func (e *Engine) ResetContacts()     { e.contacts = Contacts{} }

// NewBody builds a body, sampling whatever opts leaves unset. The body starts
// at rest for the verlet model; kinematic bodies get a random speed unless
// one is given.
func (e *Engine) NewBody(opts BodyOptions) *Body {
	r := opts.Radius
	if r <= 0 {
		r = randomRadius(e.rng, e.minR, e.maxR)
	}
	var pos dynamo.Vec2
	if opts.Position != nil {
		pos = *opts.Position
	} else {
		pos = dynamo.Vec2{X: randomAxis(e.rng, r, e.size.X), Y: randomAxis(e.rng, r, e.size.Y)}
	}
	b := newBody(pos, r)
	b.OldPos = e.units.ToMeters(pos)
	b.Color = HSV{H: float64(e.rng.Intn(360)), S: 1, V: 0}
	switch {
	case opts.Velocity != nil:
		b.Vel = *opts.Velocity
	case e.mode == ModeKinematic:
		b.Vel = randomSpeed(e.rng)
	}
	return b
}

// ApplyPhysics advances b by one frame of dt seconds, split into sub-steps
// of gravity, boundary check and integration.
//
// Only subSteps-1 of the sub-steps run; the last one is skipped and the
// frame covers 7/8 of dt at the default of 8.
func (e *Engine) ApplyPhysics(b *Body, dt float64) {
	subDt := dt / float64(e.subSteps)
	for i := 0; i < e.subSteps-1; i++ {
		if e.gravityOn {
			e.applyGravity(b, subDt)
		}
		e.CheckBounds(b)
		e.UpdatePosition(b, subDt)
	}
	e.Contain(b)
}

// Contain moves b's center back inside the window without touching its
// velocity. Collision responses can push a body past a wall; the world
// calls this after resolving them.
func (e *Engine) Contain(b *Body) {
	b.Pos = e.clampPixels(b.Pos, b.radius)
}

func (e *Engine) applyGravity(b *Body, subDt float64) {
	b.Accelerate(e.gravity.Scale(subDt))
}

// UpdatePosition is one verlet step; the acceleration is consumed.
func (e *Engine) UpdatePosition(b *Body, subDt float64) {
	pos := e.units.ToMeters(b.Pos)
	next := e.verlet.Step(pos, b.OldPos, b.Acc, subDt)
	b.OldPos = pos
	b.Pos = e.units.ToPixels(next)
	b.ResetAcceleration()
}

// CheckBounds clamps b inside the window and reflects its velocity off any
// wall it crossed.
func (e *Engine) CheckBounds(b *Body) {
	pos := e.units.ToMeters(b.Pos)
	r := e.units.Meters(b.radius)
	var normals [2]dynamo.Vec2
	hits := 0

	if pos.X >= e.bounds.X-r {
		pos.X = e.bounds.X - r
		normals[hits] = dynamo.Vec2{X: -1}
		hits++
	} else if pos.X <= r {
		pos.X = r
		normals[hits] = dynamo.Vec2{X: 1}
		hits++
	}

	if pos.Y >= e.bounds.Y-r {
		pos.Y = e.bounds.Y - r
		normals[hits] = dynamo.Vec2{Y: -1}
		hits++
	} else if !e.introActive() && pos.Y <= r {
		pos.Y = r
		normals[hits] = dynamo.Vec2{Y: 1}
		hits++
	}

	if hits == 0 {
		return
	}
	b.Pos = e.units.ToPixels(pos)
	for _, n := range normals[:hits] {
		b.ReflectVelocity(e.units, n, e.restitution)
	}
	e.contacts.Walls++
	e.flash(b)
}

// clampPixels keeps a center of radius r inside the window, leaving the top
// open during the intro.
func (e *Engine) clampPixels(p dynamo.Vec2, r float64) dynamo.Vec2 {
	lo := dynamo.Vec2{X: r, Y: r}
	hi := e.size.Sub(lo)
	if e.introActive() {
		lo.Y = math.Inf(-1)
	}
	return integrators.Clamp(p, lo, hi)
}

func (e *Engine) introActive() bool {
	return e.IntroActive != nil && e.IntroActive()
}

// ResolveIntersections pushes two overlapping bodies apart. Each gets a
// spring acceleration of overlap·spring along the contact normal and is
// moved by the same amount, then the two accumulated accelerations are
// swapped. Reports whether the bodies overlapped.
func (e *Engine) ResolveIntersections(a, b *Body) bool {
	pa, pb := e.units.ToMeters(a.Pos), e.units.ToMeters(b.Pos)
	delta := pb.Sub(pa)
	dist := delta.Length()
	sum := e.units.Meters(a.radius + b.radius)
	if dist >= sum {
		return false
	}

	overlap := sum - dist
	n := dynamo.Vec2{X: 1}
	if dist > 0 {
		n = delta.Scale(1 / dist)
	}
	k := n.Scale(overlap * e.spring)

	a.Accelerate(k)
	b.Accelerate(k.Neg())
	a.Pos = e.units.ToPixels(pa.Sub(k))
	b.Pos = e.units.ToPixels(pb.Add(k))
	a.Acc, b.Acc = b.Acc, a.Acc

	e.contacts.Bodies++
	e.flash(a)
	e.flash(b)
	return true
}

// ResolveTextIntersections bounces b off a collidable label's box. The body
// is pushed out by its overlap, then projected forward along its verlet
// history and left at rest there. Reports whether a contact happened.
func (e *Engine) ResolveTextIntersections(b *Body, l *Label) bool {
	if !l.collidable {
		return false
	}
	center := e.units.ToMeters(b.Pos)
	loPx, hiPx := l.Bounds()
	lo, hi := e.units.ToMeters(loPx), e.units.ToMeters(hiPx)
	r := e.units.Meters(b.radius)

	closest := dynamo.Vec2{X: clampf(center.X, lo.X, hi.X), Y: clampf(center.Y, lo.Y, hi.Y)}
	disp := center.Sub(closest)
	dist := disp.Length()
	if dist >= r {
		return false
	}

	var correction dynamo.Vec2
	if dist > 0 {
		correction = disp.Scale((r - dist) / dist)
	} else {
		n, depth := shallowestExit(center, lo, hi)
		correction = n.Scale(depth + r)
	}

	center = center.Add(correction)
	next := center.Add(center.Sub(b.OldPos).Scale(textBounciness))
	b.Pos = e.units.ToPixels(next)
	b.OldPos = next

	e.contacts.Labels++
	return true
}

// shallowestExit returns the outward axis normal of the box side nearest to
// p, which lies inside the box, and the distance to that side.
func shallowestExit(p, lo, hi dynamo.Vec2) (dynamo.Vec2, float64) {
	n, depth := dynamo.Vec2{X: -1}, p.X-lo.X
	if d := hi.X - p.X; d < depth {
		n, depth = dynamo.Vec2{X: 1}, d
	}
	if d := p.Y - lo.Y; d < depth {
		n, depth = dynamo.Vec2{Y: -1}, d
	}
	if d := hi.Y - p.Y; d < depth {
		n, depth = dynamo.Vec2{Y: 1}, d
	}
	return n, depth
}

// MoveKinematic is one frame of the kinematic model: bounce off any wall the
// body is on, then move by its velocity and clamp into the window.
func (e *Engine) MoveKinematic(b *Body) {
	r := b.radius
	hit := false
	if b.Pos.X >= e.size.X-r || b.Pos.X <= r {
		b.Vel.X = -b.Vel.X
		hit = true
	}
	top := b.Pos.Y <= r && !e.introActive()
	if b.Pos.Y >= e.size.Y-r || top {
		b.Vel.Y = -b.Vel.Y
		hit = true
	}
	if hit {
		e.contacts.Walls++
		e.flash(b)
	}
	b.Pos = e.clampPixels(e.kinematic.Step(b.Pos, b.Vel), r)
}

// ResolveKinematic separates two overlapping kinematic bodies completely and
// swaps their velocities.
func (e *Engine) ResolveKinematic(a, b *Body) bool {
	if !a.Intersects(b) {
		return false
	}
	a.ResolveIntersection(b)
	e.contacts.Bodies++
	e.flash(a)
	e.flash(b)
	return true
}

// flash starts a contact color change. Under gravity in the verlet model
// bodies rest against each other and the floor constantly, so flashes are
// suppressed there.
func (e *Engine) flash(b *Body) {
	if e.mode == ModeVerlet && e.gravityOn {
		return
	}
	b.RandomizeColor(e.rng)
}
