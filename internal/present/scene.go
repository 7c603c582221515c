package present

import (
	"math"
	"sort"
	"time"

	"github.com/san-kum/seesaw/internal/seesaw"
)

const DefaultMaxLog = 200

type Falling struct {
	Object seesaw.WeightedObject
	Start  time.Time
}

// Scene is the render model shared by the terminal and window front ends.
type Scene struct {
	Geometry     seesaw.Geometry
	TiltDuration time.Duration
	MaxLog       int

	State   seesaw.State
	Log     []string
	falling map[int]Falling

	tiltFrom  float64
	tiltTo    float64
	tiltStart time.Time
}

func NewScene(g seesaw.Geometry, tilt time.Duration) *Scene {
	return &Scene{
		Geometry:     g,
		TiltDuration: tilt,
		MaxLog:       DefaultMaxLog,
		falling:      make(map[int]Falling),
	}
}

// Sync jumps straight to st with no tilt animation.
func (s *Scene) Sync(st seesaw.State) {
	s.State = st
	s.tiltFrom, s.tiltTo = st.Angle, st.Angle
	s.tiltStart = time.Time{}
}

func (s *Scene) Apply(e Event, now time.Time) {
	switch e.Kind {
	case StateEvent:
		s.State = e.State
	case FallEvent:
		s.falling[e.Object.ID] = Falling{Object: e.Object, Start: e.Start}
	case AttachEvent:
		delete(s.falling, e.Object.ID)
	case TiltEvent:
		s.startTilt(e.Angle, now)
	case ResetEvent:
		s.State = e.State
		s.falling = make(map[int]Falling)
		s.Log = nil
		s.startTilt(0, now)
	case LogEvent:
		s.Log = append(s.Log, e.Line)
		if s.MaxLog > 0 && len(s.Log) > s.MaxLog {
			s.Log = s.Log[len(s.Log)-s.MaxLog:]
		}
	}
}

func (s *Scene) startTilt(angle float64, now time.Time) {
	s.tiltFrom = s.DisplayAngle(now)
	s.tiltTo = angle
	s.tiltStart = now
}

// DisplayAngle is the bar angle to draw at now, easing out toward the
// last tilt target.
func (s *Scene) DisplayAngle(now time.Time) float64 {
	if s.TiltDuration <= 0 || s.tiltStart.IsZero() {
		return s.tiltTo
	}
	t := float64(now.Sub(s.tiltStart)) / float64(s.TiltDuration)
	if t >= 1 {
		return s.tiltTo
	}
	if t < 0 {
		t = 0
	}
	eased := 1 - math.Pow(1-t, 3)
	return s.tiltFrom + (s.tiltTo-s.tiltFrom)*eased
}

// Resting lists the objects on the bar.
func (s *Scene) Resting() []seesaw.WeightedObject {
	out := make([]seesaw.WeightedObject, 0, len(s.State.Objects))
	for _, o := range s.State.Objects {
		if o.Attached {
			out = append(out, o)
		}
	}
	return out
}

// Falling lists objects in the air, oldest first.
func (s *Scene) Falling() []Falling {
	out := make([]Falling, 0, len(s.falling))
	for _, f := range s.falling {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Object.ID < out[j].Object.ID })
	return out
}

// FallBounds is where f should be drawn at now.
func (s *Scene) FallBounds(f Falling, now time.Time) seesaw.Rect {
	return s.Geometry.ObjectBounds(f.Object.Position, now.Sub(f.Start))
}
