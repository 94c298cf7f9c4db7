package sim

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/bouncelab/internal/dynamo"
	"github.com/san-kum/bouncelab/internal/integrators"
	"github.com/san-kum/bouncelab/internal/physics"
)

type introPhase int

const (
	introOff introPhase = iota
	introShowing
	introLeaving
)

// World owns the bodies and labels of one simulation together with the
// engine and fader that animate them. A World is not safe for concurrent
// use; drive it from a single goroutine.
type World struct {
	cfg    Config
	rng    *rand.Rand
	log    *log.Logger
	engine *physics.Engine
	fader  *physics.Fader
	verlet *integrators.Verlet

	bodies []*physics.Body
	labels []*physics.Label

	intro    introPhase
	introIDs map[physics.LabelID]struct{}

	frame  int
	time   float64
	totals physics.Contacts

	observers []Observer
	metrics   []Metric
}

// New builds a world and populates it with cfg.Bodies random bodies.
func New(cfg Config) *World {
	rng := cfg.Rand
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	w := &World{
		cfg:      cfg,
		rng:      rng,
		log:      logger,
		engine:   physics.NewEngine(cfg.Physics, rng),
		fader:    physics.NewFader(cfg.Labels, rng),
		verlet:   integrators.NewVerlet(),
		introIDs: make(map[physics.LabelID]struct{}),
	}
	if cfg.Measure != nil {
		w.fader.Measure = cfg.Measure
	}
	w.engine.IntroActive = w.IntroActive

	for i := 0; i < cfg.Bodies; i++ {
		w.bodies = append(w.bodies, w.engine.NewBody(physics.BodyOptions{}))
	}
	return w
}

func (w *World) Engine() *physics.Engine { return w.engine }
func (w *World) Fader() *physics.Fader   { return w.fader }
func (w *World) FrameIndex() int         { return w.frame }
func (w *World) Time() float64           { return w.time }
func (w *World) NumBodies() int          { return len(w.bodies) }

// Labels returns the live labels in creation order. The slice must not be
// modified.
func (w *World) Labels() []*physics.Label { return w.labels }

// IntroActive reports whether the intro sequence is running. The top wall is
// open while it is.
func (w *World) IntroActive() bool { return w.intro != introOff }

func (w *World) AddObserver(o Observer) { w.observers = append(w.observers, o) }
func (w *World) AddMetric(m Metric)     { w.metrics = append(w.metrics, m) }

func (w *World) Body(h BodyHandle) (*physics.Body, error) {
	if h < 0 || int(h) >= len(w.bodies) {
		return nil, fmt.Errorf("body %d: %w", h, dynamo.ErrUnknownBody)
	}
	return w.bodies[h], nil
}

func (w *World) Label(id physics.LabelID) (*physics.Label, error) {
	if l := w.lookupLabel(id); l != nil {
		return l, nil
	}
	return nil, fmt.Errorf("label %d: %w", id, dynamo.ErrUnknownLabel)
}

func (w *World) lookupLabel(id physics.LabelID) *physics.Label {
	for _, l := range w.labels {
		if l.ID() == id {
			return l
		}
	}
	return nil
}

// BodyAt returns the most recently spawned body containing p.
func (w *World) BodyAt(p dynamo.Vec2) (BodyHandle, bool) {
	for i := len(w.bodies) - 1; i >= 0; i-- {
		if w.bodies[i].Contains(p) {
			return BodyHandle(i), true
		}
	}
	return 0, false
}

// LabelAt returns the newest label whose box contains p.
func (w *World) LabelAt(p dynamo.Vec2) (physics.LabelID, bool) {
	for i := len(w.labels) - 1; i >= 0; i-- {
		lo, hi := w.labels[i].Bounds()
		if p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y {
			return w.labels[i].ID(), true
		}
	}
	return 0, false
}

// OldestLabel returns the oldest label that is not already fading out.
func (w *World) OldestLabel() (physics.LabelID, bool) {
	for _, l := range w.labels {
		if l.State() != physics.FadingOut {
			return l.ID(), true
		}
	}
	return 0, false
}

// Spawn adds a body and returns its handle.
func (w *World) Spawn(opts physics.BodyOptions) BodyHandle {
	b := w.engine.NewBody(opts)
	w.bodies = append(w.bodies, b)
	h := BodyHandle(len(w.bodies) - 1)
	w.log.Printf("[World] spawned body %d at (%.0f, %.0f) r=%.1f", h, b.Pos.X, b.Pos.Y, b.Radius())
	return h
}

// AddLabel creates a label centered at pos. A nil c makes an auto-color
// label.
func (w *World) AddLabel(text string, pos dynamo.Vec2, c color.Color) *physics.Label {
	var l *physics.Label
	if c == nil {
		l = w.fader.NewLabel(text, pos)
	} else {
		l = w.fader.NewSolidLabel(text, pos, c)
	}
	w.labels = append(w.labels, l)
	return l
}

// FadeOut starts the fade out of a label.
func (w *World) FadeOut(id physics.LabelID) error {
	l, err := w.Label(id)
	if err != nil {
		return err
	}
	w.fader.FadeOut(l)
	return nil
}

// Dispatch applies one input event.
func (w *World) Dispatch(ev Event) error {
	switch e := ev.(type) {
	case ToggleGravity:
		w.engine.ToggleGravity()
		w.log.Printf("[World] gravity %s", onOff(w.engine.GravityEnabled()))
	case Spawn:
		pos := e.Pos
		if e.Scatter {
			pos.X = w.rng.Float64() * w.engine.Size().X
		}
		w.Spawn(physics.BodyOptions{Position: &pos, Radius: e.Radius})
	case Flash:
		b, err := w.Body(e.Handle)
		if err != nil {
			return err
		}
		b.RandomizeColor(w.rng)
	case Intro:
		w.toggleIntro()
	case FadeOutLabel:
		return w.FadeOut(e.ID)
	case AddLabel:
		pos := w.engine.Size().Scale(0.5)
		if e.Pos != nil {
			pos = *e.Pos
		}
		w.AddLabel(e.Text, pos, e.Color)
	default:
		return fmt.Errorf("unsupported event %T", ev)
	}
	return nil
}

func (w *World) toggleIntro() {
	switch w.intro {
	case introOff:
		w.intro = introShowing
		w.showIntroText()
		w.log.Printf("[World] intro started with %d labels", len(w.introIDs))
	case introShowing:
		w.intro = introLeaving
		for _, l := range w.labels {
			if _, ok := w.introIDs[l.ID()]; ok {
				w.fader.FadeOut(l)
			}
		}
		w.log.Printf("[World] intro dismissed")
	}
}

// showIntroText stacks the intro lines around the window center.
func (w *World) showIntroText() {
	texts := w.cfg.IntroTexts
	if len(texts) == 0 {
		return
	}
	center := w.engine.Size().Scale(0.5)
	line := float64(w.cfg.Labels.CharSize) * 1.5
	y := center.Y - line*float64(len(texts)-1)/2
	for _, text := range texts {
		l := w.AddLabel(text, dynamo.Vec2{X: center.X, Y: y}, nil)
		w.introIDs[l.ID()] = struct{}{}
		y += line
	}
}

// Step advances the world by one frame of dt seconds.
func (w *World) Step(dt float64) error {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return &dynamo.StepError{
			Frame:   w.frame,
			Time:    w.time,
			Wrapped: fmt.Errorf("dt=%v: %w", dt, dynamo.ErrInvalidStep),
		}
	}
	if w.cfg.MaxFrameDt > 0 && dt > w.cfg.MaxFrameDt {
		dt = w.cfg.MaxFrameDt
	}

	e := w.engine
	e.ResetContacts()
	kinematic := e.Mode() == physics.ModeKinematic

	for _, b := range w.bodies {
		if kinematic {
			e.MoveKinematic(b)
		} else {
			e.ApplyPhysics(b, dt)
		}
	}

	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			if kinematic {
				e.ResolveKinematic(w.bodies[i], w.bodies[j])
			} else {
				e.ResolveIntersections(w.bodies[i], w.bodies[j])
			}
		}
	}

	// Label bounces work on the verlet history, which kinematic bodies
	// lack.
	for _, b := range w.bodies {
		for _, l := range w.labels {
			if !kinematic && l.Collidable() {
				e.ResolveTextIntersections(b, l)
			}
		}
		e.Contain(b)
	}

	w.fader.Update(dt, w.labels, w.lookupLabel)
	for _, b := range w.bodies {
		b.UpdateColor()
	}
	w.sweepLabels()

	w.frame++
	w.time += dt
	c := e.Contacts()
	w.totals.Bodies += c.Bodies
	w.totals.Walls += c.Walls
	w.totals.Labels += c.Labels

	if len(w.observers) == 0 && len(w.metrics) == 0 {
		return nil
	}
	f := w.snapshot(dt)
	for _, m := range w.metrics {
		m.Observe(f)
	}
	for _, o := range w.observers {
		o.OnFrame(f)
	}
	return nil
}

// sweepLabels drops labels whose fade out finished and ends the intro once
// all of its labels are gone.
func (w *World) sweepLabels() {
	kept := w.labels[:0]
	for _, l := range w.labels {
		if !l.ReadyForRemoval() {
			kept = append(kept, l)
			continue
		}
		w.fader.Forget(l.ID())
		delete(w.introIDs, l.ID())
	}
	for i := len(kept); i < len(w.labels); i++ {
		w.labels[i] = nil
	}
	w.labels = kept

	if w.intro != introOff && len(w.introIDs) == 0 {
		w.intro = introOff
		w.log.Printf("[World] intro finished")
	}
}

// Snapshot captures the current state for rendering.
func (w *World) Snapshot() *Frame {
	return w.snapshot(0)
}

func (w *World) snapshot(dt float64) *Frame {
	e := w.engine
	u := e.Units()
	f := &Frame{
		Index:    w.frame,
		Time:     w.time,
		Dt:       dt,
		Mode:     e.Mode(),
		Gravity:  e.GravityEnabled(),
		Intro:    w.IntroActive(),
		Units:    u,
		Size:     e.Size(),
		Bodies:   make([]BodySnapshot, len(w.bodies)),
		Labels:   make([]LabelSnapshot, len(w.labels)),
		Contacts: e.Contacts(),
	}
	for i, b := range w.bodies {
		f.Bodies[i] = BodySnapshot{
			Handle:   BodyHandle(i),
			Pos:      b.Pos,
			Radius:   b.Radius(),
			Mass:     b.Mass(),
			Velocity: w.velocity(b, dt),
			Color:    b.Color.RGBA(),
		}
	}
	for i, l := range w.labels {
		f.Labels[i] = LabelSnapshot{
			ID:         l.ID(),
			Text:       l.Text(),
			Pos:        l.Position(),
			Size:       l.Size(),
			CharSize:   l.CharSize(),
			Color:      l.Color().RGBA(),
			Alpha:      l.Alpha(),
			State:      l.State(),
			Collidable: l.Collidable(),
		}
	}
	return f
}

// velocity estimates a body's speed in meters/second.
func (w *World) velocity(b *physics.Body, dt float64) dynamo.Vec2 {
	if dt <= 0 {
		return dynamo.Vec2{}
	}
	u := w.engine.Units()
	if w.engine.Mode() == physics.ModeKinematic {
		return u.ToMeters(b.Vel).Scale(1 / dt)
	}
	subDt := dt / float64(w.engine.SubSteps())
	return w.verlet.Velocity(u.ToMeters(b.Pos), b.OldPos, subDt)
}

// Run steps the world headlessly for frames frames of dt each.
func (w *World) Run(ctx context.Context, frames int, dt float64) (*Result, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("frames must be positive, got %d: %w", frames, dynamo.ErrInvalidConfig)
	}
	for _, m := range w.metrics {
		m.Reset()
	}
	start := w.totals

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return w.result(start), ctx.Err()
		default:
		}
		if err := w.Step(dt); err != nil {
			return w.result(start), err
		}
	}
	return w.result(start), nil
}

func (w *World) result(start physics.Contacts) *Result {
	r := &Result{
		Frames:  w.frame,
		Time:    w.time,
		Metrics: make(map[string]float64, len(w.metrics)),
		Contacts: physics.Contacts{
			Bodies: w.totals.Bodies - start.Bodies,
			Walls:  w.totals.Walls - start.Walls,
			Labels: w.totals.Labels - start.Labels,
		},
	}
	for _, m := range w.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
	return r
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
