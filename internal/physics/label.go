package physics

import (
	"github.com/san-kum/bouncelab/internal/dynamo"
)

type LabelID int

type FadeState int

const (
	Idle FadeState = iota
	FadingIn
	FadingOut
)

func (s FadeState) String() string {
	switch s {
	case FadingIn:
		return "fading-in"
	case FadingOut:
		return "fading-out"
	default:
		return "idle"
	}
}

// Label is a floating piece of text. Its position is the center of its
// bounding box, in pixels, fixed at creation.
type Label struct {
	id       LabelID
	text     string
	pos      dynamo.Vec2
	size     dynamo.Vec2
	charSize int

	color      HSV
	state      FadeState
	ready      bool
	autoColor  bool
	collidable bool
}

func (l *Label) ID() LabelID           { return l.id }
func (l *Label) Text() string          { return l.text }
func (l *Label) Position() dynamo.Vec2 { return l.pos }
func (l *Label) Size() dynamo.Vec2     { return l.size }
func (l *Label) CharSize() int         { return l.charSize }
func (l *Label) Color() HSV            { return l.color }
func (l *Label) State() FadeState      { return l.state }
func (l *Label) AutoColor() bool       { return l.autoColor }

// Collidable reports whether bodies bounce off this label. Only labels built
// with an explicit color collide, and only until they start fading out.
func (l *Label) Collidable() bool { return l.collidable }

// ReadyForRemoval is set once the fade-out completes.
func (l *Label) ReadyForRemoval() bool { return l.ready }

// Alpha is the label's opacity, which tracks its HSV value.
func (l *Label) Alpha() float64 { return l.color.V }

// Bounds returns the top-left and bottom-right corners in pixels.
func (l *Label) Bounds() (lo, hi dynamo.Vec2) {
	half := l.size.Scale(0.5)
	return l.pos.Sub(half), l.pos.Add(half)
}

// Intersects reports whether b touches the label's box.
func (l *Label) Intersects(b *Body) bool {
	lo, hi := l.Bounds()
	closest := dynamo.Vec2{X: clampf(b.Pos.X, lo.X, hi.X), Y: clampf(b.Pos.Y, lo.Y, hi.Y)}
	return b.Pos.Sub(closest).LengthSquared() <= b.radius*b.radius
}

func (l *Label) cycleHue(rate, dt float64) {
	l.color.H += rate * dt
	if l.color.H >= 360 {
		l.color.H -= 360
	}
}

// fadeInStep raises the value and reports whether the fade completed.
func (l *Label) fadeInStep(speed, dt float64) bool {
	l.color.V += speed * dt
	if l.color.V >= 1 {
		l.color.V = 1
		l.state = Idle
		return true
	}
	return false
}

func (l *Label) fadeOutStep(speed, dt float64) bool {
	l.color.V -= speed * dt
	if l.color.V <= 0 {
		l.color.V = 0
		l.state = Idle
		l.ready = true
		return true
	}
	return false
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
