// Package viz provides the terminal view of the predator-prey model.
//
// [App] is a Bubble Tea program with six sliders laid out in two rows:
// initial prey, α and β on top, initial predators, δ and γ below. Every
// slider change recomputes the full trajectory synchronously and redraws
// the prey and predator charts.
//
// # Key Bindings
//
//	Tab, ↑/↓  - Move focus between sliders
//	←/→, h/l  - Adjust the focused slider by one step
//	R         - Reset all sliders
//	P         - Toggle the phase portrait
//	Space     - Play/pause the orbit marker (phase view)
//	[ ]       - Scrub along the trajectory (phase view)
//	T         - Cycle color themes
//	Q         - Quit
//
// [Canvas] is a Braille pixel canvas used for the phase portrait.
package viz
