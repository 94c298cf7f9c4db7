package sim_test

import (
	"image/color"
	"io"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bouncelab/internal/dynamo"
	"github.com/san-kum/bouncelab/internal/physics"
	"github.com/san-kum/bouncelab/internal/sim"
)

const frameDt = 1.0 / 60

func newWorld(mutate func(*sim.Config)) *sim.World {
	cfg := sim.DefaultConfig(800, 600)
	cfg.Bodies = 0
	cfg.Seed = 3
	cfg.Logger = log.New(io.Discard, "", 0)
	if mutate != nil {
		mutate(&cfg)
	}
	return sim.New(cfg)
}

func stepN(w *sim.World, n int) {
	for i := 0; i < n; i++ {
		Expect(w.Step(frameDt)).To(Succeed())
	}
}

func at(x, y float64) *dynamo.Vec2 {
	return &dynamo.Vec2{X: x, Y: y}
}

var _ = Describe("World", func() {
	Describe("input events", func() {
		It("spawns a body where the user clicked", func() {
			w := newWorld(nil)
			Expect(w.Dispatch(sim.Spawn{Pos: dynamo.Vec2{X: 120, Y: 340}, Radius: 35})).To(Succeed())
			Expect(w.NumBodies()).To(Equal(1))

			b, err := w.Body(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Pos).To(Equal(dynamo.Vec2{X: 120, Y: 340}))
			Expect(b.Radius()).To(Equal(35.0))
		})

		It("toggles gravity on the engine", func() {
			w := newWorld(nil)
			Expect(w.Engine().GravityEnabled()).To(BeTrue())
			Expect(w.Dispatch(sim.ToggleGravity{})).To(Succeed())
			Expect(w.Engine().GravityEnabled()).To(BeFalse())
		})

		It("adds centered labels by default", func() {
			w := newWorld(nil)
			Expect(w.Dispatch(sim.AddLabel{Text: "hi"})).To(Succeed())
			Expect(w.Labels()).To(HaveLen(1))
			Expect(w.Labels()[0].Position()).To(Equal(dynamo.Vec2{X: 400, Y: 300}))
			Expect(w.Labels()[0].Collidable()).To(BeFalse())
		})

		It("flashes a picked body", func() {
			w := newWorld(nil)
			h := w.Spawn(physics.BodyOptions{Position: at(300, 300), Radius: 40})
			b, _ := w.Body(h)
			b.Color.V = 1

			Expect(w.Dispatch(sim.Flash{Handle: h})).To(Succeed())
			Expect(b.Color.V).To(BeZero())
		})

		It("reports unknown labels", func() {
			w := newWorld(nil)
			Expect(w.Dispatch(sim.FadeOutLabel{ID: 7})).To(MatchError(dynamo.ErrUnknownLabel))
		})
	})

	Describe("the intro sequence", func() {
		var w *sim.World

		BeforeEach(func() {
			w = newWorld(func(c *sim.Config) {
				c.IntroTexts = []string{"bounce", "lab"}
			})
		})

		It("opens the top wall while showing", func() {
			Expect(w.Dispatch(sim.Intro{})).To(Succeed())
			Expect(w.IntroActive()).To(BeTrue())
			Expect(w.Labels()).To(HaveLen(2))

			w.Dispatch(sim.ToggleGravity{})
			h := w.Spawn(physics.BodyOptions{Position: at(400, -80), Radius: 30})
			stepN(w, 5)

			b, _ := w.Body(h)
			Expect(b.Pos.Y).To(BeNumerically("~", -80, 1e-6))
		})

		It("fades out its labels and ends once they are gone", func() {
			w.Dispatch(sim.Intro{})
			stepN(w, 30)
			w.Dispatch(sim.Intro{})

			for _, l := range w.Labels() {
				Expect(l.State()).To(Equal(physics.FadingOut))
			}

			for i := 0; i < 2000 && w.IntroActive(); i++ {
				stepN(w, 1)
			}
			Expect(w.IntroActive()).To(BeFalse())
			Expect(w.Labels()).To(BeEmpty())
		})

		It("closes the top wall afterwards", func() {
			w.Dispatch(sim.Intro{})
			w.Dispatch(sim.Intro{})
			for i := 0; i < 2000 && w.IntroActive(); i++ {
				stepN(w, 1)
			}

			w.Dispatch(sim.ToggleGravity{})
			h := w.Spawn(physics.BodyOptions{Position: at(400, -80), Radius: 30})
			stepN(w, 1)
			b, _ := w.Body(h)
			Expect(b.Pos.Y).To(BeNumerically(">=", 30-1e-9))
		})
	})

	Describe("labels", func() {
		It("keep alpha within [0, 1] while animating", func() {
			w := newWorld(nil)
			for _, text := range []string{"a", "b", "c"} {
				w.AddLabel(text, dynamo.Vec2{X: 400, Y: 300}, nil)
			}
			w.AddObserver(sim.ObserverFunc(func(f *sim.Frame) {
				for _, l := range f.Labels {
					Expect(l.Alpha).To(BeNumerically(">=", 0))
					Expect(l.Alpha).To(BeNumerically("<=", 1))
				}
			}))

			stepN(w, 200)
			for _, l := range w.Labels() {
				Expect(w.FadeOut(l.ID())).To(Succeed())
			}
			stepN(w, 400)
			Expect(w.Labels()).To(BeEmpty())
		})

		It("hold up a falling body when solid", func() {
			w := newWorld(nil)
			l := w.AddLabel("floor", dynamo.Vec2{X: 400, Y: 400}, color.RGBA{R: 30, G: 200, B: 90, A: 255})
			lo, _ := l.Bounds()
			h := w.Spawn(physics.BodyOptions{Position: at(400, 250), Radius: 30})
			b, _ := w.Body(h)

			touched := false
			for i := 0; i < 240; i++ {
				stepN(w, 1)
				Expect(b.Pos.Y).To(BeNumerically("<", lo.Y), "frame %d", i)
				if w.Engine().Contacts().Labels > 0 {
					touched = true
				}
			}
			Expect(touched).To(BeTrue())
		})
	})

	Describe("kinematic mode", func() {
		It("leaves no overlap after a head-on contact", func() {
			w := newWorld(func(c *sim.Config) { c.Physics.Mode = physics.ModeKinematic })
			ha := w.Spawn(physics.BodyOptions{Position: at(300, 300), Radius: 30, Velocity: at(1, 0)})
			hb := w.Spawn(physics.BodyOptions{Position: at(350, 300), Radius: 30, Velocity: at(-1, 0)})

			stepN(w, 1)

			a, _ := w.Body(ha)
			b, _ := w.Body(hb)
			Expect(a.Pos.Distance(b.Pos)).To(BeNumerically(">=", 60-1e-9))
			Expect(a.Vel.X).To(Equal(-1.0))
			Expect(b.Vel.X).To(Equal(1.0))
			Expect(a.Intersects(b)).To(BeFalse())
		})

		It("reports speeds in meters per second", func() {
			w := newWorld(func(c *sim.Config) { c.Physics.Mode = physics.ModeKinematic })
			w.Spawn(physics.BodyOptions{Position: at(400, 300), Radius: 30, Velocity: at(2, 0)})

			var frame *sim.Frame
			w.AddObserver(sim.ObserverFunc(func(f *sim.Frame) { frame = f }))
			stepN(w, 1)

			Expect(frame).NotTo(BeNil())
			Expect(frame.Bodies[0].Velocity.X).To(BeNumerically("~", 2.0/200*60, 1e-9))
		})
	})
})
