// Package viz renders a cloth world in the terminal and lets the mouse tear
// it.
//
// The live view is a Bubble Tea program:
//
//   - [Model]: steps a [cloth.World] at a fixed frame rate and draws it
//   - [Canvas]: braille pixel canvas, 2x4 dots per terminal cell
//   - [Viewport]: world to dot mapping, and cell back to world for clicks
//   - [Theme]: palettes keyed by what they colour on screen
//
// A mouse press over the canvas becomes one [cloth.PointerEvent] delivered
// on the next tick. Dragging with the button held does not repeat it.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Rebuild the cloth
//	T     - Cycle color themes
//	Q     - Quit
package viz
