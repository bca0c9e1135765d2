// Package viz is the interactive terminal viewer for Braille canvases.
//
// The viewer is a Bubble Tea program:
//
//   - [Model]: redraws the active scene into a [braille.Canvas] every tick
//   - Scenes: wave, rings, life, plus an optional image
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume animation
//	S     - Next scene
//	+/-   - Raise/lower the lightness threshold
//	I     - Invert
//	D     - Toggle dithering
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// Frames captured with G are written to braillegrid.gif in the current
// directory when recording stops.
package viz
