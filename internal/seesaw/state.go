package seesaw

import (
	"github.com/san-kum/seesaw/internal/balance"
)

// WeightedObject is a dropped object. Attached is false while it falls.
type WeightedObject struct {
	ID       int
	Weight   int
	Position float64
	Attached bool
}

func (o WeightedObject) Balance() balance.Object {
	return balance.Object{Weight: o.Weight, Position: o.Position}
}

// State is the full seesaw state. The weight and torque fields are a cache
// of balance.Recalculate over the attached objects.
type State struct {
	Objects     []WeightedObject
	Angle       float64
	LeftWeight  float64
	RightWeight float64
	LeftTorque  float64
	RightTorque float64
	NextWeight  int
}

// DefaultState is an empty, flat seesaw with a fresh next weight.
func DefaultState(src WeightSource) State {
	return State{NextWeight: NextWeight(src)}
}

func (s State) Clone() State {
	c := s
	c.Objects = make([]WeightedObject, len(s.Objects))
	copy(c.Objects, s.Objects)
	return c
}

// Attached returns the balance view of the objects resting on the bar.
func (s State) Attached() []balance.Object {
	out := make([]balance.Object, 0, len(s.Objects))
	for _, o := range s.Objects {
		if o.Attached {
			out = append(out, o.Balance())
		}
	}
	return out
}

// Pending counts objects still falling.
func (s State) Pending() int {
	n := 0
	for _, o := range s.Objects {
		if !o.Attached {
			n++
		}
	}
	return n
}

func (s *State) apply(t balance.Totals) {
	s.LeftWeight = t.LeftWeight
	s.RightWeight = t.RightWeight
	s.LeftTorque = t.LeftTorque
	s.RightTorque = t.RightTorque
	s.Angle = t.Angle
}

// Recompute refreshes the cached aggregates from the attached objects.
func (s *State) Recompute() {
	s.apply(balance.Recalculate(s.Attached()))
}

func (s State) index(id int) int {
	for i, o := range s.Objects {
		if o.ID == id {
			return i
		}
	}
	return -1
}
