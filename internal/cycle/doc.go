// Package cycle implements the respiratory phase timer.
//
// A Cycle is an ordered list of intervals covering one breath: Inspiration,
// an optional InspiratoryPause, Expiration and an optional ExpiratoryPause.
// Step advances the clock and reports a Mark when the breath enters
// inspiration or expiration; modes use the Mark, not the phase, to detect
// edges. Durations are time.Duration so phase boundaries are exact.
package cycle
