package cubegrid

import (
	"time"
)

type layoutKey struct {
	viewport Viewport
	gridSize int
}

// Grid owns every cube instance of the tiling along with the shared
// materials and the synchronized-mode schedule. It is not safe for
// concurrent use.
type Grid struct {
	cfg    *config
	layout Layout

	viewport     Viewport
	key          layoutKey
	laidOut      bool
	halfW, halfH float64
	rebuilds     int

	instances []*Instance

	materials  *Materials
	scheme     string
	transition *paletteTransition
	ticked     bool

	picker   picker
	nextSync time.Time
}

// NewGrid creates an empty grid. Instances are created by the first Tick
// or Resize.
func NewGrid(opts ...Option) *Grid {
	cfg := newConfig(opts)
	p, _ := Scheme(DefaultScheme)
	return &Grid{
		cfg:       cfg,
		layout:    NewLayout(CubeSide, CubieGap),
		viewport:  DefaultViewport,
		materials: NewMaterials(p),
		scheme:    DefaultScheme,
		picker:    picker{rng: cfg.rng},
	}
}

// Layout returns the tiling metrics.
func (g *Grid) Layout() Layout { return g.layout }

// Viewport returns the current viewport.
func (g *Grid) Viewport() Viewport { return g.viewport }

// Frustum returns the half extents of the visible area.
func (g *Grid) Frustum() (halfW, halfH float64) { return g.halfW, g.halfH }

// Materials returns the shared material cache.
func (g *Grid) Materials() *Materials { return g.materials }

// Rebuilds counts how many times the instance set was rebuilt.
func (g *Grid) Rebuilds() int { return g.rebuilds }

// NextSyncAt returns the synchronized-mode deadline, zero if unscheduled.
func (g *Grid) NextSyncAt() time.Time { return g.nextSync }

// Instances returns the current instances in row-major slot order.
func (g *Grid) Instances() []*Instance {
	out := make([]*Instance, len(g.instances))
	copy(out, g.instances)
	return out
}

// Instance looks up an instance by ID.
func (g *Grid) Instance(id string) *Instance {
	for _, inst := range g.instances {
		if inst.id == id {
			return inst
		}
	}
	return nil
}

// Palette returns the colors currently shown, mid-blend during a scheme
// transition.
func (g *Grid) Palette() Palette {
	if g.transition != nil {
		return g.transition.current()
	}
	return g.materials.Palette()
}

// AllIdle reports whether no instance is rotating or solving.
func (g *Grid) AllIdle() bool {
	for _, inst := range g.instances {
		if inst.State() != StateIdle {
			return false
		}
	}
	return true
}

// Resize changes the viewport and rebuilds the tiling if needed.
// Non-positive sizes are ignored.
func (g *Grid) Resize(v Viewport, s Settings) {
	if !v.Valid() {
		return
	}
	g.viewport = v
	g.relayout(s.GridSize)
}

// Tick advances the whole grid to now.
func (g *Grid) Tick(now time.Time, s Settings) {
	g.relayout(s.GridSize)
	g.updatePalette(now, s.ColorScheme)
	g.ticked = true

	for _, inst := range g.instances {
		inst.Update(now, s)
	}

	if !s.Sync {
		g.nextSync = time.Time{}
		return
	}
	g.scheduleSync(now, s)
}

func (g *Grid) scheduleSync(now time.Time, s Settings) {
	if !g.AllIdle() {
		return
	}
	if g.nextSync.IsZero() {
		freq, _ := Frequency(s.Frequency)
		g.nextSync = now.Add(randomDelay(g.cfg.rng, freq))
		return
	}
	if now.Before(g.nextSync) || s.Playback != PlaybackPlay {
		return
	}
	g.TriggerMove(g.picker.next())
}

// TriggerMove starts m, recorded, on every idle instance and returns how
// many started.
func (g *Grid) TriggerMove(m Move) int {
	if !m.Valid() {
		return 0
	}
	g.nextSync = time.Time{}
	g.picker.remember(m)

	started := 0
	for _, inst := range g.instances {
		if inst.StartMove(m, true) {
			started++
		}
	}
	g.cfg.logger.Debug("move triggered", "move", m.Notation(), "instances", started)
	return started
}

// Solve starts a solve on every instance with history and returns how
// many started. Callers stop playback separately.
func (g *Grid) Solve() int {
	g.nextSync = time.Time{}
	g.picker.reset()

	started := 0
	for _, inst := range g.instances {
		if inst.StartSolve() {
			started++
		}
	}
	g.cfg.logger.Info("solve requested", "instances", started)
	return started
}

// Close disposes every instance and the shared materials.
func (g *Grid) Close() {
	g.dispose()
	g.laidOut = false
}

func (g *Grid) dispose() {
	for _, inst := range g.instances {
		inst.Dispose()
	}
	g.instances = nil
	g.materials.Invalidate()
}

func (g *Grid) relayout(gridSize int) {
	if gridSize < 1 {
		gridSize = DefaultGridSize
	}
	if gridSize > MaxGridSize {
		gridSize = MaxGridSize
	}
	key := layoutKey{viewport: g.viewport, gridSize: gridSize}
	if g.laidOut && key == g.key {
		return
	}

	g.dispose()
	g.halfW, g.halfH = g.layout.Frustum(g.viewport, gridSize)
	slots := g.layout.Slots(g.halfW, g.halfH)
	g.instances = make([]*Instance, 0, len(slots))
	for _, slot := range slots {
		g.instances = append(g.instances, newInstance(slot, g.cfg))
	}

	g.key = key
	g.laidOut = true
	g.nextSync = time.Time{}
	g.rebuilds++
	g.cfg.logger.Debug("grid laid out",
		"viewport", g.viewport, "gridSize", gridSize, "instances", len(g.instances))
}

func (g *Grid) updatePalette(now time.Time, scheme string) {
	if scheme == "" {
		scheme = DefaultScheme
	}
	if scheme != g.scheme {
		to, ok := Scheme(scheme)
		switch {
		case !ok:
			g.cfg.logger.Warn("unknown color scheme", "scheme", scheme)
		case !g.ticked:
			g.materials.SetPalette(to)
		default:
			g.transition = &paletteTransition{from: g.Palette(), to: to}
		}
		g.scheme = scheme
	}

	if g.transition == nil {
		return
	}
	g.transition.advance(now)
	if g.transition.done() {
		g.materials.SetPalette(g.transition.to)
		g.transition = nil
	}
}
