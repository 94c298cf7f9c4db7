// Package dynamo provides the shared primitives of the bouncelab simulation.
//
// The package defines the small value types every other package speaks:
//
//   - [Vec2]: 2D vector with the arithmetic used by the integrators
//   - [Units]: pixel <-> meter conversion fixed at engine construction
//   - the domain errors returned by config and world operations
//
// # Units
//
// Bodies keep their render-facing position in pixels while the physics runs in
// meters. Every read or write across that boundary goes through [Units]:
//
//	u := dynamo.Units(200)
//	m := u.ToMeters(dynamo.Vec2{X: 400, Y: 300}) // {2, 1.5}
//
// # Thread Safety
//
// All types are plain values and safe to copy. Nothing here holds state.
package dynamo
