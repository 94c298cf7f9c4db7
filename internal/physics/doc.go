// Package physics holds the bodies, labels and the engine that moves them.
//
// Two kinds of entity live here:
//
//   - [Body]: a circle with mass, verlet position history and an HSV color
//   - [Label]: floating text with a fade state machine, driven by a [Fader]
//
// [Engine] advances bodies one frame at a time. In [ModeVerlet] a frame is
// split into sub-steps of gravity, boundary check and verlet integration;
// body-body contacts use a spring correction followed by an acceleration
// swap. In [ModeKinematic] bodies keep a constant pixels/frame velocity and
// exchange velocities on contact.
//
// # Units
//
// Body.Pos is in pixels because that is what the render surface reads.
// OldPos and Acc are in meters. The engine converts with its [dynamo.Units]
// on every access:
//
//	eng := physics.NewEngine(physics.DefaultSettings(1920, 1080), rng)
//	b := eng.NewBody(physics.BodyOptions{Radius: 40})
//	eng.ApplyPhysics(b, 1.0/60)
//
// # Color
//
// Bodies flash on contact: a random hue at zero value, revealed again by
// [Body.UpdateColor] a little every frame. Flashes are suppressed while
// gravity is on in the verlet model.
package physics
