package balance

import "math"

const (
	MinPosition       = -200.0
	MaxPosition       = 200.0
	MinWeight         = 1
	MaxWeight         = 10
	MaxAngle          = 30.0
	TorqueSensitivity = 10.0
)

// Object is the part of a dropped object the balance depends on.
type Object struct {
	Weight   int
	Position float64
}

type Totals struct {
	LeftWeight  float64
	RightWeight float64
	LeftTorque  float64
	RightTorque float64
	Angle       float64
}

func IsLeft(position float64) bool { return position < 0 }

func Torque(o Object) float64 {
	return math.Abs(o.Position) * float64(o.Weight)
}

// Angle maps the torque difference onto the bar tilt in degrees.
func Angle(leftTorque, rightTorque float64) float64 {
	return Clamp((rightTorque-leftTorque)/TorqueSensitivity, -MaxAngle, MaxAngle)
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Recalculate sums weights and torques per side and derives the angle.
func Recalculate(objects []Object) Totals {
	var t Totals
	for _, o := range objects {
		torque := Torque(o)
		if IsLeft(o.Position) {
			t.LeftTorque += torque
			t.LeftWeight += float64(o.Weight)
		} else {
			t.RightTorque += torque
			t.RightWeight += float64(o.Weight)
		}
	}
	t.Angle = Angle(t.LeftTorque, t.RightTorque)
	return t
}

func InRange(position float64) bool {
	return position >= MinPosition && position <= MaxPosition
}

func ValidWeight(w int) bool {
	return w >= MinWeight && w <= MaxWeight
}
