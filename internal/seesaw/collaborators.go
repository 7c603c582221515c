package seesaw

import "time"

// Store persists the seesaw state as a single blob.
type Store interface {
	// Load returns ok=false when nothing has been saved yet.
	Load() (st State, ok bool, err error)
	Save(st State) error
	Clear() error
}

// Presenter receives everything a front end needs to draw the seesaw.
// Implementations must not call back into the controller synchronously.
type Presenter interface {
	RenderState(st State)
	RenderFall(obj WeightedObject, start time.Time)
	RenderAttach(obj WeightedObject)
	RenderTilt(angle float64)
	RenderReset(st State)
	RenderLog(line string)
}

// Cue plays the drop sound.
type Cue interface {
	Play() error
}

type NopPresenter struct{}

func (NopPresenter) RenderState(State)                    {}
func (NopPresenter) RenderFall(WeightedObject, time.Time) {}
func (NopPresenter) RenderAttach(WeightedObject)          {}
func (NopPresenter) RenderTilt(float64)                   {}
func (NopPresenter) RenderReset(State)                    {}
func (NopPresenter) RenderLog(string)                     {}

type NopCue struct{}

func (NopCue) Play() error { return nil }

// MemoryStore keeps the state in process. It is what a controller uses
// when no store is configured.
type MemoryStore struct {
	st    State
	saved bool
}

func (m *MemoryStore) Load() (State, bool, error) {
	if !m.saved {
		return State{}, false, nil
	}
	return m.st.Clone(), true, nil
}

func (m *MemoryStore) Save(st State) error {
	m.st, m.saved = st.Clone(), true
	return nil
}

func (m *MemoryStore) Clear() error {
	m.st, m.saved = State{}, false
	return nil
}
