// Package engine drives a grid from a frame clock and serializes access
// to it between the frame loop and UI goroutines.
package engine

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/SeamusWaldron/cubegrid"
)

// DefaultInterval is the frame interval used when none is configured.
const DefaultInterval = time.Second / 60

// Clock supplies frame timestamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Driver ticks a grid with snapshots of a settings store.
type Driver struct {
	mu     sync.Mutex
	grid   *cubegrid.Grid
	store  *cubegrid.SettingsStore
	frames uint64
	last   time.Time

	interval time.Duration
	clock    Clock
	logger   *log.Logger
	onFrame  func(*cubegrid.Grid, cubegrid.Settings)
}

// Option configures a Driver.
type Option func(*Driver)

// WithInterval sets the frame interval used by Run.
func WithInterval(d time.Duration) Option {
	return func(dr *Driver) {
		if d > 0 {
			dr.interval = d
		}
	}
}

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(dr *Driver) {
		if c != nil {
			dr.clock = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(dr *Driver) {
		if l != nil {
			dr.logger = l
		}
	}
}

// WithFrameHook registers fn to run under the lock after every frame.
func WithFrameHook(fn func(*cubegrid.Grid, cubegrid.Settings)) Option {
	return func(dr *Driver) {
		dr.onFrame = fn
	}
}

// New creates a driver for grid reading settings from store.
func New(grid *cubegrid.Grid, store *cubegrid.SettingsStore, opts ...Option) *Driver {
	d := &Driver{
		grid:     grid,
		store:    store,
		interval: DefaultInterval,
		clock:    systemClock{},
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Store returns the settings store the driver reads.
func (d *Driver) Store() *cubegrid.SettingsStore {
	return d.store
}

// Step runs one frame at now. A pending solve request is applied before
// the tick so the first solve move starts on this frame.
func (d *Driver) Step(now time.Time) {
	s := d.store.Snapshot()
	solve := d.store.TakeSolveRequest()

	d.mu.Lock()
	defer d.mu.Unlock()

	if solve {
		n := d.grid.Solve()
		d.logger.Debug("solve applied", "instances", n)
	}
	d.grid.Tick(now, s)
	d.frames++
	d.last = now
	if d.onFrame != nil {
		d.onFrame(d.grid, s)
	}
}

// Run steps the grid every interval until ctx is done.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.Info("frame loop started", "interval", d.interval)
	d.Step(d.clock.Now())
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("frame loop stopped", "frames", d.Frames())
			return ctx.Err()
		case <-ticker.C:
			d.Step(d.clock.Now())
		}
	}
}

// Do runs fn with exclusive access to the grid.
func (d *Driver) Do(fn func(g *cubegrid.Grid)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.grid)
}

// Resize changes the grid's viewport.
func (d *Driver) Resize(v cubegrid.Viewport) {
	s := d.store.Snapshot()
	d.Do(func(g *cubegrid.Grid) { g.Resize(v, s) })
}

// TriggerMove starts m on every idle instance.
func (d *Driver) TriggerMove(m cubegrid.Move) int {
	var n int
	d.Do(func(g *cubegrid.Grid) { n = g.TriggerMove(m) })
	return n
}

// Frames returns how many frames have run.
func (d *Driver) Frames() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// LastFrame returns the time of the latest frame, zero before the first.
func (d *Driver) LastFrame() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}
