package sim

import (
	"image/color"

	"github.com/san-kum/bouncelab/internal/dynamo"
	"github.com/san-kum/bouncelab/internal/physics"
)

// Event is an input the front end feeds to World.Dispatch.
type Event interface {
	isEvent()
}

// ToggleGravity flips the engine's gravity flag.
type ToggleGravity struct{}

// Spawn adds a body at Pos. A zero Radius is sampled. Scatter ignores Pos.X
// and draws it from the world's generator.
type Spawn struct {
	Pos     dynamo.Vec2
	Radius  float64
	Scatter bool
}

// Flash restarts the contact color animation on one body.
type Flash struct {
	Handle BodyHandle
}

// Intro starts the intro sequence, or dismisses it when it is showing.
type Intro struct{}

// FadeOutLabel starts the fade out of one label.
type FadeOutLabel struct {
	ID physics.LabelID
}

// AddLabel creates a label. A nil Pos centers it in the window; a nil Color
// makes a hue-cycling, non-colliding label.
type AddLabel struct {
	Text  string
	Pos   *dynamo.Vec2
	Color color.Color
}

func (ToggleGravity) isEvent() {}
func (Spawn) isEvent()         {}
func (Flash) isEvent()         {}
func (Intro) isEvent()         {}
func (FadeOutLabel) isEvent()  {}
func (AddLabel) isEvent()      {}
