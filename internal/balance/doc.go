// Package balance computes the static torque balance of a seesaw bar.
//
// Every object resting on the bar contributes a torque of
// |position| * weight to the side it sits on. Objects left of the pivot
// (position < 0) load the left arm; everything else, including an object
// exactly on the pivot, loads the right arm. The bar tilt follows the
// clamped balance formula:
//
//	angle = clamp(-MaxAngle, MaxAngle, (rightTorque - leftTorque) / TorqueSensitivity)
//
// A positive angle lowers the right arm.
package balance
