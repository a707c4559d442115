// Package modes implements the two ventilator modes.
//
// [PCV] drives airway pressure toward a peak during inspiration and toward
// PEEP during expiration. [VCV] delivers a tidal volume during inspiration
// and holds PEEP during expiration. Both advance a [cycle.Cycle], react to
// its marks by retargeting their controllers, clamp the commanded flow to a
// ceiling, integrate volume and evaluate the lung for pressure.
//
// [Mode] is a closed union of the two; the package-level Step and setter
// functions dispatch on it. Setters that do not apply to a mode (Peak on
// VCV, Tidal on PCV) are no-ops.
package modes
