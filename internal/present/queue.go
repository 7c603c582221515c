package present

import (
	"sync/atomic"
	"time"

	"github.com/san-kum/seesaw/internal/seesaw"
)

type Kind int

const (
	StateEvent Kind = iota
	FallEvent
	AttachEvent
	TiltEvent
	ResetEvent
	LogEvent
)

func (k Kind) String() string {
	switch k {
	case StateEvent:
		return "state"
	case FallEvent:
		return "fall"
	case AttachEvent:
		return "attach"
	case TiltEvent:
		return "tilt"
	case ResetEvent:
		return "reset"
	case LogEvent:
		return "log"
	}
	return "unknown"
}

type Event struct {
	Kind   Kind
	State  seesaw.State
	Object seesaw.WeightedObject
	Start  time.Time
	Angle  float64
	Line   string
}

const DefaultQueueSize = 1024

// Queue is a non-blocking seesaw.Presenter. When the buffer is full new
// events are counted and discarded.
type Queue struct {
	ch      chan Event
	dropped atomic.Int64
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{ch: make(chan Event, size)}
}

func (q *Queue) C() <-chan Event { return q.ch }

func (q *Queue) Dropped() int64 { return q.dropped.Load() }

// Drain returns every buffered event without waiting.
func (q *Queue) Drain() []Event {
	var out []Event
	for {
		select {
		case e := <-q.ch:
			out = append(out, e)
		default:
			return out
		}
	}
}

func (q *Queue) push(e Event) {
	select {
	case q.ch <- e:
	default:
		q.dropped.Add(1)
	}
}

func (q *Queue) RenderState(st seesaw.State) {
	q.push(Event{Kind: StateEvent, State: st})
}

func (q *Queue) RenderFall(obj seesaw.WeightedObject, start time.Time) {
	q.push(Event{Kind: FallEvent, Object: obj, Start: start})
}

func (q *Queue) RenderAttach(obj seesaw.WeightedObject) {
	q.push(Event{Kind: AttachEvent, Object: obj})
}

func (q *Queue) RenderTilt(angle float64) {
	q.push(Event{Kind: TiltEvent, Angle: angle})
}

func (q *Queue) RenderReset(st seesaw.State) {
	q.push(Event{Kind: ResetEvent, State: st})
}

func (q *Queue) RenderLog(line string) {
	q.push(Event{Kind: LogEvent, Line: line})
}
