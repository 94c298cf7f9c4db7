// Package viz is the terminal front end.
//
// A [Model] steps a sim.World on bubbletea ticks and draws it on a braille
// [Canvas]: bodies as filled dots in their current color, labels as text
// faded by their alpha, solid labels with an outline. The stats panel shows
// mode, gravity, intro state, FPS, an asciigraph plot of kinetic energy and
// a contact sparkline. [App] is a preset picker in front of the Model.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	G     - Toggle gravity
//	I     - Show or dismiss the intro
//	S     - Spawn a body
//	L / W - Add a label / a solid label
//	F     - Fade out the oldest label
//	T     - Cycle panel themes
//	?     - Show help overlay
//
// Left click spawns a body, or flashes the body under the cursor. Right
// click fades out the label under it.
package viz
