// Package viz provides the terminal ventilator monitor.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live monitor stepping a mode and drawing pressure, flow and
//     volume waveforms, the pressure/volume loop and breath measurements
//   - [NewInteractiveApp]: preset picker in front of the monitor
//   - [Canvas]: Braille-based pixel canvas for the loop view
//   - Theme selection with 3 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume ventilation
//	Tab   - Select the next setting
//	Up/K  - Raise the selected setting
//	Down/J- Lower the selected setting
//	L     - Toggle the pressure/volume loop
//	R     - Restart from the configured settings
//	T     - Cycle color themes
//	?     - Show help overlay
//
// Setting changes go through the mode setters, so they follow the same
// retargeting rules as a scripted protocol.
package viz
