// Package quantity provides the dimensioned scalars used throughout the
// ventilation model: Flow (L/s), Pressure (cmH2O), Volume (L), Resistance
// (cmH2O·s/L), Elastance (cmH2O/L), Compliance (L/cmH2O) and the
// dimensionless Gain.
//
// By default every quantity is stored as a 64-bit integer holding the value
// scaled by 1e6. Construction rounds to the nearest unit; products use a
// 128-bit intermediate and truncating division, so a run is reproducible
// bit for bit on any platform. Building with the floatquantity tag stores a
// float64 instead, behind the same API.
//
// The fixed encoding resolves 1e-6 and holds magnitudes up to about 9.2e12.
// Constructors refuse values beyond that range, and sums saturate at the
// bounds rather than wrapping. Gains and scale factors share the 1e-6
// resolution: a nonzero factor that would round to zero is refused.
//
// Equality and ordering are tolerance based: two values of the same kind
// closer than the kind's tolerance compare equal. The resulting relation is
// not a total order and must not be used for sorting.
package quantity

//go:generate go run gen.go
