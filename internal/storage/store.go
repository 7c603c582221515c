package storage

import (
	"encoding/json"
	"fmt"

	"github.com/san-kum/seesaw/internal/balance"
	"github.com/san-kum/seesaw/internal/seesaw"
)

// StateKey is the blob key the seesaw state lives under.
const StateKey = "seesawState"

type wireObject struct {
	Weight   int     `json:"weight"`
	Position float64 `json:"position"`
}

type wireState struct {
	Objects     []wireObject `json:"objects"`
	Angle       float64      `json:"angle"`
	LeftTorque  float64      `json:"leftTorque"`
	RightTorque float64      `json:"rightTorque"`
	LeftWeight  float64      `json:"leftWeight"`
	RightWeight float64      `json:"rightWeight"`
	NextWeight  int          `json:"nextWeight"`
}

// Store implements seesaw.Store on top of a Blob.
type Store struct {
	blob Blob
	key  string
}

func NewStore(blob Blob) *Store {
	return &Store{blob: blob, key: StateKey}
}

// Encode renders the persisted form of st. Falling objects are left out.
func Encode(st seesaw.State) ([]byte, error) {
	w := wireState{
		Objects:     make([]wireObject, 0, len(st.Objects)),
		Angle:       st.Angle,
		LeftTorque:  st.LeftTorque,
		RightTorque: st.RightTorque,
		LeftWeight:  st.LeftWeight,
		RightWeight: st.RightWeight,
		NextWeight:  st.NextWeight,
	}
	for _, o := range st.Objects {
		if !o.Attached {
			continue
		}
		w.Objects = append(w.Objects, wireObject{Weight: o.Weight, Position: o.Position})
	}
	return json.Marshal(w)
}

// Decode parses a persisted blob. Objects come back attached with IDs
// numbered from 1 and the aggregates recomputed from them. A missing or
// invalid nextWeight decodes as 0.
func Decode(data []byte) (seesaw.State, error) {
	var w wireState
	if err := json.Unmarshal(data, &w); err != nil {
		return seesaw.State{}, fmt.Errorf("%w: %v", seesaw.ErrPersistenceRead, err)
	}

	st := seesaw.State{Objects: make([]seesaw.WeightedObject, 0, len(w.Objects))}
	for i, o := range w.Objects {
		if !balance.ValidWeight(o.Weight) || !balance.InRange(o.Position) {
			return seesaw.State{}, fmt.Errorf("%w: object %d has weight %d at %v",
				seesaw.ErrPersistenceRead, i, o.Weight, o.Position)
		}
		st.Objects = append(st.Objects, seesaw.WeightedObject{
			ID:       i + 1,
			Weight:   o.Weight,
			Position: o.Position,
			Attached: true,
		})
	}
	st.Recompute()
	if balance.ValidWeight(w.NextWeight) {
		st.NextWeight = w.NextWeight
	}
	return st, nil
}

func (s *Store) Load() (seesaw.State, bool, error) {
	data, ok, err := s.blob.Get(s.key)
	if err != nil {
		return seesaw.State{}, false, fmt.Errorf("%w: %v", seesaw.ErrPersistenceRead, err)
	}
	if !ok {
		return seesaw.State{}, false, nil
	}
	st, err := Decode(data)
	if err != nil {
		return seesaw.State{}, false, err
	}
	return st, true, nil
}

func (s *Store) Save(st seesaw.State) error {
	data, err := Encode(st)
	if err != nil {
		return fmt.Errorf("storage: encode state: %w", err)
	}
	return s.blob.Put(s.key, data)
}

func (s *Store) Clear() error {
	return s.blob.Delete(s.key)
}

// Raw returns the stored blob bytes as they are.
func (s *Store) Raw() ([]byte, bool, error) {
	return s.blob.Get(s.key)
}
