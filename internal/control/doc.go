// Package control provides the feedback laws that turn a tracking error into
// a flow command.
//
//   - [Proportional]: command = gain × (target − current)
//   - [Integral]: command = gain × Σ(target − current), accumulated without bound
//   - [PI]: the sum of both terms
//
// Every controller is generic over the airway quantity it tracks, so the
// same law drives pressure targets in PCV and volume targets in VCV.
//
// # Usage
//
//	pi := control.NewPI(kp, ki, quantity.MustPressure(20))
//	flow := pi.Evaluate(packet.Pressure) // called once per step
//	pi.Set(quantity.MustPressure(5))     // retarget, history cleared
//
// [PI] exposes Params and SetParam for live tuning.
package control
