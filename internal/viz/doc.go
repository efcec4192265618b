// Package viz draws growing trees in the terminal.
//
// The package implements the viewer using the Bubble Tea framework:
//
//   - [Model]: grows one tree, a frame per tick, above a status footer
//   - [Picker]: menu of presets and saved trees that launches a [Model]
//   - [Canvas]: grid of coloured cells that a tree draws into
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume growth
//	Enter - Finish the tree at once
//	R     - Regrow the current seed
//	N     - Grow a new random tree
//	S     - Save the seed to the garden
//	T     - Cycle color themes
//	+/-   - Grow faster or slower
//	?     - Show help overlay
//
// The tree is planted when the first window size arrives and keeps its
// screen for life. Resizing redraws the recorded frames onto a canvas of
// the new size.
package viz
