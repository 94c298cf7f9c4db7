package physics

import (
	"image/color"
	"math/rand"
	"unicode/utf8"

	"github.com/san-kum/bouncelab/internal/dynamo"
)

const (
	DefaultFadeInSpeed   = 0.45
	DefaultFadeOutSpeed  = 0.45
	DefaultHueRate       = 25.0
	DefaultHueStep       = 30.0
	DefaultCharSize      = 30
	DefaultSolidCharSize = 35

	autoSaturation = 0.6
	glyphAspect    = 0.6
)

// Measurer returns the pixel size of text rendered at charSize. Front ends
// with real fonts install their own.
type Measurer func(text string, charSize int) (w, h float64)

// MonospaceMeasurer estimates the box of a monospace font.
func MonospaceMeasurer(text string, charSize int) (float64, float64) {
	n := utf8.RuneCountInString(text)
	return float64(n) * float64(charSize) * glyphAspect, float64(charSize)
}

// FadeQueue is a FIFO of label ids. Only the front is animated.
type FadeQueue struct {
	ids []LabelID
}

func (q *FadeQueue) Push(id LabelID) { q.ids = append(q.ids, id) }
func (q *FadeQueue) Len() int        { return len(q.ids) }

func (q *FadeQueue) Front() (LabelID, bool) {
	if len(q.ids) == 0 {
		return 0, false
	}
	return q.ids[0], true
}

func (q *FadeQueue) Pop() {
	if len(q.ids) > 0 {
		q.ids = q.ids[1:]
	}
}

// Remove drops id wherever it is queued.
func (q *FadeQueue) Remove(id LabelID) bool {
	for i, v := range q.ids {
		if v == id {
			q.ids = append(q.ids[:i], q.ids[i+1:]...)
			return true
		}
	}
	return false
}

func (q *FadeQueue) Contains(id LabelID) bool {
	for _, v := range q.ids {
		if v == id {
			return true
		}
	}
	return false
}

type FaderOptions struct {
	FadeInSpeed   float64
	FadeOutSpeed  float64
	HueRate       float64
	HueStep       float64
	CharSize      int
	SolidCharSize int
}

func DefaultFaderOptions() FaderOptions {
	return FaderOptions{
		FadeInSpeed:   DefaultFadeInSpeed,
		FadeOutSpeed:  DefaultFadeOutSpeed,
		HueRate:       DefaultHueRate,
		HueStep:       DefaultHueStep,
		CharSize:      DefaultCharSize,
		SolidCharSize: DefaultSolidCharSize,
	}
}

// Fader creates labels and serializes their fade animations: labels fade in
// one at a time in creation order, then fade out one at a time in request
// order. It also hands out label ids and the sequential base hue.
type Fader struct {
	opts    FaderOptions
	nextID  LabelID
	baseHue float64
	fadeIn  FadeQueue
	fadeOut FadeQueue

	// Measure sizes new labels. Defaults to MonospaceMeasurer.
	Measure Measurer
}

func NewFader(opts FaderOptions, rng *rand.Rand) *Fader {
	return &Fader{
		opts:    opts,
		baseHue: float64(rng.Intn(360)),
		Measure: MonospaceMeasurer,
	}
}

// BaseHue is the hue the next auto-color label starts with.
func (f *Fader) BaseHue() float64 { return f.baseHue }

func (f *Fader) FadeInQueue() *FadeQueue  { return &f.fadeIn }
func (f *Fader) FadeOutQueue() *FadeQueue { return &f.fadeOut }

// NewLabel creates a hue-cycling label. It does not collide.
func (f *Fader) NewLabel(text string, pos dynamo.Vec2) *Label {
	l := f.build(text, pos, f.opts.CharSize)
	l.color = HSV{H: f.baseHue, S: autoSaturation}
	l.autoColor = true
	f.baseHue = wrapHue(f.baseHue - f.opts.HueStep)
	f.enqueue(l)
	return l
}

// NewSolidLabel creates a label with a fixed hue and saturation taken from c.
// Solid labels are collidable.
func (f *Fader) NewSolidLabel(text string, pos dynamo.Vec2, c color.Color) *Label {
	l := f.build(text, pos, f.opts.SolidCharSize)
	hsv := HSVFromColor(c)
	l.color = HSV{H: hsv.H, S: hsv.S}
	l.collidable = true
	f.enqueue(l)
	return l
}

func (f *Fader) build(text string, pos dynamo.Vec2, charSize int) *Label {
	measure := f.Measure
	if measure == nil {
		measure = MonospaceMeasurer
	}
	w, h := measure(text, charSize)
	l := &Label{
		id:       f.nextID,
		text:     text,
		pos:      pos,
		size:     dynamo.Vec2{X: w, Y: h},
		charSize: charSize,
	}
	f.nextID++
	return l
}

func (f *Fader) enqueue(l *Label) {
	l.state = FadingIn
	f.fadeIn.Push(l.id)
}

// FadeOut moves l to the fade-out queue and stops it colliding. A label
// still waiting to fade in leaves that queue and fades out from its current
// value. Repeated requests are ignored.
func (f *Fader) FadeOut(l *Label) {
	if l.state == FadingOut || l.ready {
		return
	}
	f.fadeIn.Remove(l.id)
	l.state = FadingOut
	l.collidable = false
	f.fadeOut.Push(l.id)
}

// Forget drops a removed label from both queues.
func (f *Fader) Forget(id LabelID) {
	f.fadeIn.Remove(id)
	f.fadeOut.Remove(id)
}

// Update runs one frame of label animation: hue cycling on every auto-color
// label, then one fade step for the front of each queue. Ids that lookup no
// longer resolves are discarded.
func (f *Fader) Update(dt float64, labels []*Label, lookup func(LabelID) *Label) {
	for _, l := range labels {
		if l.autoColor {
			l.cycleHue(f.opts.HueRate, dt)
		}
	}
	advance(&f.fadeIn, lookup, func(l *Label) bool { return l.fadeInStep(f.opts.FadeInSpeed, dt) })
	advance(&f.fadeOut, lookup, func(l *Label) bool { return l.fadeOutStep(f.opts.FadeOutSpeed, dt) })
}

func advance(q *FadeQueue, lookup func(LabelID) *Label, step func(*Label) bool) {
	for {
		id, ok := q.Front()
		if !ok {
			return
		}
		l := lookup(id)
		if l == nil {
			q.Pop()
			continue
		}
		if step(l) {
			q.Pop()
		}
		return
	}
}
