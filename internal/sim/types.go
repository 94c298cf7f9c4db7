package sim

import (
	"image/color"
	"log"
	"math/rand"

	"github.com/san-kum/bouncelab/internal/dynamo"
	"github.com/san-kum/bouncelab/internal/physics"
)

// BodyHandle indexes the world's body arena. Bodies are never removed, so a
// handle stays valid for the life of the world.
type BodyHandle int

// BodySnapshot is the render-facing view of one body.
type BodySnapshot struct {
	Handle   BodyHandle
	Pos      dynamo.Vec2 // pixels
	Radius   float64     // pixels
	Mass     float64
	Velocity dynamo.Vec2 // meters/second
	Color    color.RGBA
}

// LabelSnapshot is the render-facing view of one label.
type LabelSnapshot struct {
	ID         physics.LabelID
	Text       string
	Pos        dynamo.Vec2 // center, pixels
	Size       dynamo.Vec2
	CharSize   int
	Color      color.RGBA
	Alpha      float64
	State      physics.FadeState
	Collidable bool
}

// Frame is what observers see after each step.
type Frame struct {
	Index    int
	Time     float64
	Dt       float64
	Mode     physics.Mode
	Gravity  bool
	Intro    bool
	Units    dynamo.Units
	Size     dynamo.Vec2 // pixels
	Bodies   []BodySnapshot
	Labels   []LabelSnapshot
	Contacts physics.Contacts
}

type Observer interface {
	OnFrame(f *Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(f *Frame)

func (fn ObserverFunc) OnFrame(f *Frame) { fn(f) }

type Metric interface {
	Name() string
	Observe(f *Frame)
	Value() float64
	Reset()
}

// Config is everything a World needs at construction.
type Config struct {
	Physics    physics.Settings
	Labels     physics.FaderOptions
	Bodies     int
	IntroTexts []string
	// MaxFrameDt caps a single step's dt. Zero disables the cap.
	MaxFrameDt float64
	Seed       int64

	// Rand overrides Seed when set.
	Rand *rand.Rand
	// Measure sizes labels; nil uses physics.MonospaceMeasurer.
	Measure physics.Measurer
	// Logger defaults to log.Default().
	Logger *log.Logger
}

func DefaultConfig(width, height float64) Config {
	return Config{
		Physics:    physics.DefaultSettings(width, height),
		Labels:     physics.DefaultFaderOptions(),
		Bodies:     20,
		MaxFrameDt: 0.05,
	}
}

// Result summarizes a headless run.
type Result struct {
	Frames   int
	Time     float64
	Metrics  map[string]float64
	Contacts physics.Contacts
}
