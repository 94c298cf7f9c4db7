package physics

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/bouncelab/internal/dynamo"
)

type labelSet struct {
	fader  *Fader
	labels []*Label
}

func newLabelSet() *labelSet {
	return &labelSet{fader: NewFader(DefaultFaderOptions(), rand.New(rand.NewSource(11)))}
}

func (s *labelSet) add(text string) *Label {
	l := s.fader.NewLabel(text, dynamo.Vec2{X: 100, Y: 100})
	s.labels = append(s.labels, l)
	return l
}

func (s *labelSet) lookup(id LabelID) *Label {
	for _, l := range s.labels {
		if l.ID() == id {
			return l
		}
	}
	return nil
}

func (s *labelSet) update(dt float64) {
	s.fader.Update(dt, s.labels, s.lookup)
}

func TestFadeInFIFO(t *testing.T) {
	s := newLabelSet()
	a := s.add("first")
	b := s.add("second")

	if a.State() != FadingIn || b.State() != FadingIn {
		t.Fatalf("new labels should be fading in: %v %v", a.State(), b.State())
	}

	frames := 0
	for a.State() == FadingIn {
		s.update(0.5)
		frames++
		if b.Alpha() != 0 {
			t.Fatalf("frame %d: second label advanced before the first finished", frames)
		}
		if frames > 100 {
			t.Fatal("first label never finished fading in")
		}
	}
	if a.Alpha() != 1 {
		t.Errorf("alpha after fade in = %v, want 1", a.Alpha())
	}
	if frames != 5 {
		t.Errorf("fade in took %d frames, want 5", frames)
	}

	s.update(0.5)
	if b.Alpha() <= 0 {
		t.Error("second label did not start after the first completed")
	}
	if a.Alpha() != 1 {
		t.Error("finished label changed value")
	}
}

func TestFadeOutCompletes(t *testing.T) {
	s := newLabelSet()
	f := s.fader
	l := f.NewSolidLabel("solid", dynamo.Vec2{X: 50, Y: 50}, color.RGBA{R: 255, A: 255})
	s.labels = append(s.labels, l)
	for i := 0; i < 10; i++ {
		s.update(0.5)
	}
	if !l.Collidable() {
		t.Fatal("solid label should collide before fading out")
	}

	f.FadeOut(l)
	if l.Collidable() {
		t.Error("label still collidable after fade out request")
	}
	if l.State() != FadingOut {
		t.Errorf("state = %v, want fading-out", l.State())
	}

	for i := 0; i < 10 && !l.ReadyForRemoval(); i++ {
		s.update(0.5)
		if v := l.Alpha(); v < 0 || v > 1 {
			t.Fatalf("alpha out of range: %v", v)
		}
	}
	if !l.ReadyForRemoval() {
		t.Fatal("label never became ready for removal")
	}
	if l.Alpha() != 0 || l.State() != Idle {
		t.Errorf("after fade out: alpha %v state %v", l.Alpha(), l.State())
	}
	if f.FadeOutQueue().Len() != 0 {
		t.Errorf("fade-out queue still holds %d ids", f.FadeOutQueue().Len())
	}
}

func TestFadeOutFIFO(t *testing.T) {
	s := newLabelSet()
	a := s.add("first")
	b := s.add("second")
	for i := 0; i < 20; i++ {
		s.update(0.5)
	}
	if a.State() != Idle || b.State() != Idle {
		t.Fatalf("labels should be fully shown: %v %v", a.State(), b.State())
	}

	s.fader.FadeOut(a)
	s.fader.FadeOut(b)

	frames := 0
	for !a.ReadyForRemoval() {
		s.update(0.1)
		frames++
		if b.Alpha() != 1 {
			t.Fatalf("frame %d: second label ramped before the first was ready", frames)
		}
		if frames > 100 {
			t.Fatal("first label never finished fading out")
		}
	}
	if b.ReadyForRemoval() || b.State() != FadingOut {
		t.Fatalf("second label finished early: state %v", b.State())
	}

	s.update(0.1)
	if b.Alpha() >= 1 {
		t.Error("second label did not start once the first was ready")
	}
	for i := 0; i < 100 && !b.ReadyForRemoval(); i++ {
		s.update(0.1)
	}
	if !b.ReadyForRemoval() || b.Alpha() != 0 {
		t.Errorf("second label did not finish: alpha %v", b.Alpha())
	}
	if n := s.fader.FadeOutQueue().Len(); n != 0 {
		t.Errorf("fade-out queue still holds %d ids", n)
	}
}

func TestFadeOutWhileFadingIn(t *testing.T) {
	s := newLabelSet()
	a := s.add("a")
	b := s.add("b")
	s.update(0.5)

	s.fader.FadeOut(a)
	if s.fader.FadeInQueue().Contains(a.ID()) {
		t.Error("label left in fade-in queue")
	}
	s.fader.FadeOut(a)
	if n := s.fader.FadeOutQueue().Len(); n != 1 {
		t.Errorf("fade-out queue len = %d, want 1 after repeated requests", n)
	}

	before := a.Alpha()
	s.update(0.1)
	if a.Alpha() >= before {
		t.Errorf("alpha did not drop: %v -> %v", before, a.Alpha())
	}
	if b.Alpha() <= 0 {
		t.Error("next label should take over the fade-in queue")
	}
}

func TestUpdateDropsUnknownIDs(t *testing.T) {
	s := newLabelSet()
	gone := s.add("gone")
	kept := s.add("kept")
	s.labels = s.labels[1:]

	s.update(0.5)
	if s.fader.FadeInQueue().Contains(gone.ID()) {
		t.Error("removed label still queued")
	}
	if kept.Alpha() <= 0 {
		t.Error("next label should advance in the same frame")
	}
}

func TestBaseHueSequence(t *testing.T) {
	s := newLabelSet()
	start := s.fader.BaseHue()

	for i := 0; i < 15; i++ {
		want := math.Mod(start-30*float64(i)+3600, 360)
		l := s.add("x")
		if math.Abs(l.Color().H-want) > 1e-9 {
			t.Fatalf("label %d hue = %v, want %v", i, l.Color().H, want)
		}
		if l.Color().S != autoSaturation || !l.AutoColor() || l.Collidable() {
			t.Fatalf("label %d: unexpected auto-color setup %+v", i, l.Color())
		}
	}
	if h := s.fader.BaseHue(); h < 0 || h >= 360 {
		t.Errorf("base hue out of range: %v", h)
	}
}

func TestAutoHueCycles(t *testing.T) {
	s := newLabelSet()
	l := s.add("spin")
	h0 := l.Color().H

	s.update(1)
	want := math.Mod(h0+DefaultHueRate, 360)
	if math.Abs(l.Color().H-want) > 1e-9 {
		t.Errorf("hue = %v, want %v", l.Color().H, want)
	}
}

func TestSolidLabel(t *testing.T) {
	f := NewFader(DefaultFaderOptions(), rand.New(rand.NewSource(1)))
	base := f.BaseHue()
	l := f.NewSolidLabel("red", dynamo.Vec2{}, color.RGBA{R: 255, A: 255})

	c := l.Color()
	if c.H != 0 || c.S != 1 || c.V != 0 {
		t.Errorf("color = %+v, want red hue at zero value", c)
	}
	if l.CharSize() != DefaultSolidCharSize || l.AutoColor() || !l.Collidable() {
		t.Errorf("unexpected solid label %+v", l)
	}
	if f.BaseHue() != base {
		t.Error("solid label consumed a palette hue")
	}
}

func TestLabelIDsIncrease(t *testing.T) {
	s := newLabelSet()
	prev := s.add("a").ID()
	for i := 0; i < 5; i++ {
		id := s.add("b").ID()
		if id <= prev {
			t.Fatalf("id %d not above %d", id, prev)
		}
		prev = id
	}
}

func TestMonospaceMeasurer(t *testing.T) {
	tests := []struct {
		text string
		size int
		w, h float64
	}{
		{"hello", 30, 90, 30},
		{"", 35, 0, 35},
		{"héllo", 10, 30, 10},
	}
	for _, tt := range tests {
		w, h := MonospaceMeasurer(tt.text, tt.size)
		if math.Abs(w-tt.w) > 1e-9 || h != tt.h {
			t.Errorf("MonospaceMeasurer(%q, %d) = %v, %v; want %v, %v", tt.text, tt.size, w, h, tt.w, tt.h)
		}
	}
}

func TestLabelBounds(t *testing.T) {
	f := NewFader(DefaultFaderOptions(), rand.New(rand.NewSource(1)))
	f.Measure = func(string, int) (float64, float64) { return 120, 40 }
	l := f.NewLabel("box", dynamo.Vec2{X: 200, Y: 100})

	lo, hi := l.Bounds()
	if lo != (dynamo.Vec2{X: 140, Y: 80}) || hi != (dynamo.Vec2{X: 260, Y: 120}) {
		t.Errorf("bounds = %v %v", lo, hi)
	}
}

func TestFadeQueue(t *testing.T) {
	var q FadeQueue
	if _, ok := q.Front(); ok {
		t.Fatal("empty queue has a front")
	}
	q.Push(1)
	q.Push(2)
	q.Push(3)
	if !q.Remove(2) || q.Remove(9) {
		t.Error("unexpected Remove result")
	}
	if id, _ := q.Front(); id != 1 {
		t.Errorf("front = %d, want 1", id)
	}
	q.Pop()
	if id, _ := q.Front(); id != 3 || q.Len() != 1 {
		t.Errorf("front = %d len = %d", id, q.Len())
	}
	q.Pop()
	q.Pop()
	if q.Len() != 0 {
		t.Error("Pop on empty queue changed length")
	}
}
