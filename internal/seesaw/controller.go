package seesaw

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"sync"
	"time"

	"github.com/san-kum/seesaw/internal/balance"
)

const (
	DefaultCooldown      = time.Second
	DefaultFrameInterval = time.Second / 60
	DefaultTiltTolerance = 0.1
)

type Options struct {
	Geometry      Geometry
	Cooldown      time.Duration
	FrameInterval time.Duration
	TiltTolerance float64
	Weights       WeightSource
	Store         Store
	Presenter     Presenter
	Cue           Cue
	Logger        *log.Logger
}

func (o *Options) setDefaults() {
	if o.Geometry == (Geometry{}) {
		o.Geometry = DefaultGeometry()
	}
	if o.Cooldown < 0 {
		o.Cooldown = 0
	}
	if o.FrameInterval <= 0 {
		o.FrameInterval = DefaultFrameInterval
	}
	if o.TiltTolerance <= 0 {
		o.TiltTolerance = DefaultTiltTolerance
	}
	if o.Weights == nil {
		o.Weights = NewWeightSource(0)
	}
	if o.Store == nil {
		o.Store = &MemoryStore{}
	}
	if o.Presenter == nil {
		o.Presenter = NopPresenter{}
	}
	if o.Cue == nil {
		o.Cue = NopCue{}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard, "", 0)
	}
}

// Controller runs the drop → fall → attach lifecycle over one State.
//
// Presenter and logger calls are queued while mu is held and delivered
// after it is released, so they observe state changes in order and may
// call back into the controller.
type Controller struct {
	opts Options

	mu       sync.Mutex
	state    State
	nextID   int
	cooling  bool
	cooldown *time.Timer
	falls    map[int]context.CancelFunc
	idle     chan struct{} // closed when falls empties
	events   []string
	closed   bool

	out dispatcher

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New builds a controller and restores the persisted state. A missing or
// unreadable blob yields a fresh default state.
func New(opts Options) *Controller {
	opts.setDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		opts:   opts,
		falls:  make(map[int]context.CancelFunc),
		ctx:    ctx,
		cancel: cancel,
	}
	c.emit("Initializing seesaw...")
	c.restore()
	c.emit("Ready! Click above the bar to add objects!")
	if opts.Cooldown > 0 {
		c.emit(fmt.Sprintf("Click cooldown: %s (prevents spam)", waitText(opts.Cooldown)))
	}
	return c
}

func (c *Controller) restore() {
	c.mu.Lock()
	st, ok, err := c.opts.Store.Load()
	switch {
	case err != nil:
		c.state = DefaultState(c.opts.Weights)
		if clearErr := c.opts.Store.Clear(); clearErr != nil {
			c.opts.Logger.Printf("clear after load error: %v", clearErr)
		}
		c.logLocked(fmt.Sprintf("Load error: %v", err))
	case !ok:
		c.state = DefaultState(c.opts.Weights)
		c.logLocked("New seesaw started")
	default:
		for i := range st.Objects {
			c.nextID++
			st.Objects[i].ID = c.nextID
			st.Objects[i].Attached = true
		}
		st.Recompute()
		if !balance.ValidWeight(st.NextWeight) {
			st.NextWeight = NextWeight(c.opts.Weights)
		}
		c.state = st
		c.logLocked(fmt.Sprintf("Previous state loaded: %d objects found", len(st.Objects)))
	}
	snap := c.state.Clone()
	c.out.post(func() { c.opts.Presenter.RenderState(snap) })
	c.mu.Unlock()
	c.out.run()
}

// Drop drops the current next weight at position and draws a new one.
func (c *Controller) Drop(position float64) (WeightedObject, error) {
	return c.drop(position, 0, true)
}

// DropWeighted drops an object of the given weight at position.
func (c *Controller) DropWeighted(position float64, weight int) (WeightedObject, error) {
	return c.drop(position, weight, false)
}

func (c *Controller) drop(position float64, weight int, useNext bool) (WeightedObject, error) {
	c.mu.Lock()
	if useNext {
		weight = c.state.NextWeight
	}
	if err := c.admit(position, weight); err != nil {
		c.mu.Unlock()
		c.out.run()
		return WeightedObject{}, err
	}

	c.nextID++
	obj := WeightedObject{ID: c.nextID, Weight: weight, Position: position}
	c.state.Objects = append(c.state.Objects, obj)
	c.startCooldown()
	if useNext {
		c.state.NextWeight = NextWeight(c.opts.Weights)
	}
	start := time.Now()
	c.startFall(obj, start)
	snap := c.state.Clone()
	c.out.post(
		func() { c.opts.Presenter.RenderFall(obj, start) },
		func() { c.opts.Presenter.RenderState(snap) },
	)
	c.logLocked(fmt.Sprintf("%dkg object dropped (position: %.1f)", weight, position))
	c.mu.Unlock()

	c.playCue()
	c.out.run()
	return obj, nil
}

// admit checks a drop in order: closed, cooldown, range, weight. Callers
// hold mu.
func (c *Controller) admit(position float64, weight int) error {
	var err error
	switch {
	case c.closed:
		err = ErrClosed
	case c.cooling:
		c.logLocked(fmt.Sprintf("Clicking too fast! Wait %s.", waitText(c.opts.Cooldown)))
		err = ErrCooldownActive
	case !balance.InRange(position):
		c.logLocked("Click outside allowed area!")
		err = ErrOutOfRange
	case !balance.ValidWeight(weight):
		err = ErrInvalidWeight
	default:
		return nil
	}
	return &DropError{Position: position, Weight: weight, Wrapped: err}
}

func (c *Controller) startCooldown() {
	if c.opts.Cooldown <= 0 {
		return
	}
	c.cooling = true
	c.cooldown = time.AfterFunc(c.opts.Cooldown, func() {
		c.mu.Lock()
		c.cooling = false
		c.logLocked("You can click again!")
		c.mu.Unlock()
		c.out.run()
	})
}

// startFall launches the two tasks that race to land obj. Callers hold mu.
func (c *Controller) startFall(obj WeightedObject, start time.Time) {
	ctx, cancel := context.WithCancel(c.ctx)
	if len(c.falls) == 0 {
		c.idle = make(chan struct{})
	}
	c.falls[obj.ID] = cancel
	c.wg.Add(2)
	go c.watchCollision(ctx, obj, start)
	go c.fallback(ctx, obj.ID)
}

// endFall stops the tasks for id. Callers hold mu.
func (c *Controller) endFall(id int) {
	if cancel, ok := c.falls[id]; ok {
		cancel()
		delete(c.falls, id)
	}
	if len(c.falls) == 0 && c.idle != nil {
		close(c.idle)
		c.idle = nil
	}
}

func (c *Controller) endAllFalls() {
	for id := range c.falls {
		c.endFall(id)
	}
}

func (c *Controller) watchCollision(ctx context.Context, obj WeightedObject, start time.Time) {
	defer c.wg.Done()
	ticker := time.NewTicker(c.opts.FrameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if c.opts.Geometry.Landed(obj.Position, now.Sub(start), c.Angle()) {
				c.Attach(obj.ID)
				return
			}
		}
	}
}

func (c *Controller) fallback(ctx context.Context, id int) {
	defer c.wg.Done()
	timer := time.NewTimer(c.opts.Geometry.FallDuration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
		c.Attach(id)
	}
}

// Attach lands a falling object. It returns false when the object is
// unknown, was removed by a reset, or has already landed.
func (c *Controller) Attach(id int) bool {
	c.mu.Lock()
	i := c.state.index(id)
	if i < 0 || c.state.Objects[i].Attached {
		c.mu.Unlock()
		return false
	}
	c.state.Objects[i].Attached = true
	obj := c.state.Objects[i]
	c.endFall(id)

	prev := c.state.Angle
	c.state.Recompute()
	tilted := math.Abs(c.state.Angle-prev) > c.opts.TiltTolerance

	lines := []string{
		fmt.Sprintf("Left: %.0fkg (torque: %.0f)", c.state.LeftWeight, c.state.LeftTorque),
		fmt.Sprintf("Right: %.0fkg (torque: %.0f)", c.state.RightWeight, c.state.RightTorque),
	}
	if tilted {
		lines = append(lines, fmt.Sprintf("Seesaw tilted %.1f°", c.state.Angle))
	}
	if err := c.opts.Store.Save(c.state.Clone()); err != nil {
		lines = append(lines, fmt.Sprintf("Save error: %v", fmt.Errorf("%w: %v", ErrPersistenceWrite, err)))
	} else {
		lines = append(lines, "State saved!")
	}
	lines = append(lines, "Object hit the bar and attached!")

	snap := c.state.Clone()
	c.out.post(func() { c.opts.Presenter.RenderAttach(obj) })
	if tilted {
		c.out.post(func() { c.opts.Presenter.RenderTilt(snap.Angle) })
	}
	c.out.post(func() { c.opts.Presenter.RenderState(snap) })
	c.logLocked(lines...)
	c.mu.Unlock()

	c.out.run()
	return true
}

// Reset clears the bar, the saved blob and the event log.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.endAllFalls()
	c.state = DefaultState(c.opts.Weights)
	c.events = nil
	if err := c.opts.Store.Clear(); err != nil {
		c.logLocked(fmt.Sprintf("Clear error: %v", err))
	}
	snap := c.state.Clone()
	c.out.post(func() { c.opts.Presenter.RenderReset(snap) })
	c.logLocked("Seesaw reset!")
	c.mu.Unlock()

	c.out.run()
}

func (c *Controller) playCue() {
	if err := c.opts.Cue.Play(); err != nil {
		c.opts.Logger.Printf("%v: %v", ErrPlayback, err)
	}
}

// logLocked records lines in the event log and queues them for the
// logger and presenter. Callers hold mu.
func (c *Controller) logLocked(lines ...string) {
	c.events = append(c.events, lines...)
	for _, line := range lines {
		c.out.post(func() {
			c.opts.Logger.Print(line)
			c.opts.Presenter.RenderLog(line)
		})
	}
}

func (c *Controller) emit(lines ...string) {
	c.mu.Lock()
	c.logLocked(lines...)
	c.mu.Unlock()
	c.out.run()
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

func (c *Controller) Angle() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Angle
}

// CoolingDown reports whether drops are currently rejected.
func (c *Controller) CoolingDown() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cooling
}

// Events returns the event log since the last reset.
func (c *Controller) Events() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.events))
	copy(out, c.events)
	return out
}

func (c *Controller) Geometry() Geometry { return c.opts.Geometry }

// Settle blocks until every falling object has landed and the presenter
// has seen it, or ctx is done. Drops made while waiting extend the wait.
func (c *Controller) Settle(ctx context.Context) error {
	for {
		c.mu.Lock()
		idle := c.idle
		c.mu.Unlock()
		if idle == nil {
			return c.out.wait(ctx)
		}
		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close cancels in-flight falls and stops the cooldown timer. Drops after
// Close fail with ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	if c.cooldown != nil {
		c.cooldown.Stop()
	}
	c.endAllFalls()
	c.mu.Unlock()
	c.cancel()
	c.wg.Wait()
}

// waitText renders whole seconds the way the event log phrases them.
func waitText(d time.Duration) string {
	if d > 0 && d%time.Second == 0 {
		if n := int(d / time.Second); n != 1 {
			return fmt.Sprintf("%d seconds", n)
		}
		return "1 second"
	}
	return d.String()
}
