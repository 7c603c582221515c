package seesaw_test

import (
	"errors"
	"sync"
	"time"

	"github.com/san-kum/seesaw/internal/seesaw"
)

// cycleWeights returns the configured weights in order, then repeats.
type cycleWeights struct {
	mu      sync.Mutex
	weights []int
	i       int
}

func (c *cycleWeights) Intn(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	w := c.weights[c.i%len(c.weights)]
	c.i++
	return w - 1
}

type recorder struct {
	mu      sync.Mutex
	falls   []seesaw.WeightedObject
	attachs []seesaw.WeightedObject
	tilts   []float64
	resets  int
	lines   []string
	last    seesaw.State
}

func (r *recorder) RenderState(st seesaw.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = st
}

func (r *recorder) RenderFall(obj seesaw.WeightedObject, _ time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.falls = append(r.falls, obj)
}

func (r *recorder) RenderAttach(obj seesaw.WeightedObject) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attachs = append(r.attachs, obj)
}

func (r *recorder) RenderTilt(angle float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tilts = append(r.tilts, angle)
}

func (r *recorder) RenderReset(st seesaw.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resets++
	r.last = st
}

func (r *recorder) RenderLog(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
}

func (r *recorder) Attached() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.attachs)
}

func (r *recorder) Tilts() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float64(nil), r.tilts...)
}

func (r *recorder) Last() seesaw.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// resetOnAttach resets the controller from inside the first RenderAttach.
type resetOnAttach struct {
	*recorder
	ctrl *seesaw.Controller
	once sync.Once
}

func (p *resetOnAttach) RenderAttach(obj seesaw.WeightedObject) {
	p.recorder.RenderAttach(obj)
	p.once.Do(p.ctrl.Reset)
}

var errDisk = errors.New("disk full")

type brokenStore struct {
	loadErr error
	saveErr error
	cleared int
}

func (b *brokenStore) Load() (seesaw.State, bool, error) {
	if b.loadErr != nil {
		return seesaw.State{}, false, b.loadErr
	}
	return seesaw.State{}, false, nil
}

func (b *brokenStore) Save(seesaw.State) error { return b.saveErr }

func (b *brokenStore) Clear() error {
	b.cleared++
	return nil
}

type brokenCue struct{ calls int }

func (b *brokenCue) Play() error {
	b.calls++
	return errors.New("no output device")
}

// hookCue runs hook on every play, standing in for a cue that takes long
// enough for a fall to land meanwhile.
type hookCue struct{ hook func() }

func (h *hookCue) Play() error {
	if h.hook != nil {
		h.hook()
	}
	return nil
}

// neverLands keeps the bar out of reach so only the fallback timer attaches.
func neverLands(fall time.Duration) seesaw.Geometry {
	g := seesaw.DefaultGeometry()
	g.BarTop = 10000
	g.FallDuration = fall
	return g
}

// landsAtOnce puts the bar at the top so the first frame check attaches.
func landsAtOnce(fall time.Duration) seesaw.Geometry {
	g := seesaw.DefaultGeometry()
	g.BarTop = 0
	g.FallDuration = fall
	return g
}
