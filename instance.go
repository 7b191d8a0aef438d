package cubegrid

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/cubegrid/pkg/scene"
)

// State is the coarse state of a cube instance.
type State int

const (
	StateIdle State = iota
	StateRotating
	StateSolving
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRotating:
		return "rotating"
	case StateSolving:
		return "solving"
	default:
		return "unknown"
	}
}

// MoveObserver is notified as instances start moves and solves.
// Calls happen on the goroutine driving Update.
type MoveObserver interface {
	MoveStarted(instanceID string, m Move, solving bool, at time.Time)
	SolveStarted(instanceID string, moves int, at time.Time)
	SolveFinished(instanceID string, at time.Time)
}

// Slot is the place of an instance in the tiling.
type Slot struct {
	Row, Col int
	X, Y     float64 // World position of the cube center
}

// rotation is the in-flight layer turn. Its presence is what makes an
// instance ROTATING.
type rotation struct {
	move     Move
	solving  bool
	pivot    *scene.Node
	cubies   []*Cubie
	armed    bool // waiting for the first tick to fix start/last
	start    time.Time
	last     time.Time
	progress float64
	paused   bool
}

// solveRun holds the remaining reversed history. Its presence is what
// makes an instance SOLVING.
type solveRun struct {
	queue []Move
	total int
}

// Instance is one animated cube: 27 cubies under a root group, plus its
// rotation state machine, move history and solve queue.
type Instance struct {
	id     string
	slot   Slot
	cfg    *config
	root   *scene.Node
	cubies []*Cubie

	history []Move
	rot     *rotation
	solve   *solveRun
	picker  picker

	now      time.Time // time of the last Update
	nextMove time.Time // independent-mode deadline, zero when unscheduled
}

// NewInstance creates a solved cube placed at slot.
func NewInstance(slot Slot, opts ...Option) *Instance {
	return newInstance(slot, newConfig(opts))
}

func newInstance(slot Slot, cfg *config) *Instance {
	i := &Instance{
		id:     uuid.New().String(),
		slot:   slot,
		cfg:    cfg,
		root:   scene.NewNode("cube"),
		picker: picker{rng: cfg.rng},
	}
	i.root.Position = scene.Vec3{X: slot.X, Y: slot.Y}
	i.root.Rotation = IsoRotation()

	for _, home := range Lattice() {
		c := newCubie(home)
		i.root.Add(c.Node)
		i.cubies = append(i.cubies, c)
	}
	return i
}

// ID returns the instance's unique identifier.
func (i *Instance) ID() string { return i.id }

// Slot returns where the instance sits in the tiling.
func (i *Instance) Slot() Slot { return i.slot }

// Root returns the instance's root group node.
func (i *Instance) Root() *scene.Node { return i.root }

// Cubies returns the instance's cubies.
func (i *Instance) Cubies() []*Cubie {
	out := make([]*Cubie, len(i.cubies))
	copy(out, i.cubies)
	return out
}

// CubieAt returns the cubie currently occupying coord, or nil.
func (i *Instance) CubieAt(coord Coord) *Cubie {
	for _, c := range i.cubies {
		if c.Coord == coord {
			return c
		}
	}
	return nil
}

// State returns the current state.
func (i *Instance) State() State {
	switch {
	case i.solve != nil:
		return StateSolving
	case i.rot != nil:
		return StateRotating
	default:
		return StateIdle
	}
}

// Progress returns the un-eased progress of the active rotation in [0,1),
// or 0 when idle.
func (i *Instance) Progress() float64 {
	if i.rot == nil {
		return 0
	}
	return i.rot.progress
}

// ActiveMove returns the move being animated.
func (i *Instance) ActiveMove() (Move, bool) {
	if i.rot == nil {
		return Move{}, false
	}
	return i.rot.move, true
}

// RotationStart returns when the active rotation started, adjusted for
// pauses. Zero when idle or not yet ticked.
func (i *Instance) RotationStart() time.Time {
	if i.rot == nil {
		return time.Time{}
	}
	return i.rot.start
}

// Pivot returns the temporary pivot node of the active rotation, or nil.
func (i *Instance) Pivot() *scene.Node {
	if i.rot == nil {
		return nil
	}
	return i.rot.pivot
}

// History returns a copy of the recorded moves, oldest first.
func (i *Instance) History() []Move {
	out := make([]Move, len(i.history))
	copy(out, i.history)
	return out
}

// SolveQueue returns a copy of the moves still to play in the running solve.
func (i *Instance) SolveQueue() []Move {
	if i.solve == nil {
		return nil
	}
	out := make([]Move, len(i.solve.queue))
	copy(out, i.solve.queue)
	return out
}

// NextMoveAt returns the independent-mode deadline, zero if unscheduled.
func (i *Instance) NextMoveAt() time.Time { return i.nextMove }

// IsSolved reports whether every cubie is back in its home cell with its
// home orientation.
func (i *Instance) IsSolved() bool {
	if i.rot != nil {
		return false
	}
	for _, c := range i.cubies {
		if c.Coord != c.Home || c.Node.Rotation.AngleTo(scene.Identity()) > 1e-6 {
			return false
		}
	}
	return true
}

// MoveDuration returns how long m takes at speed. Half turns take
// HalfTurnMultiplier times longer; solve moves SolveSpeedFactor as long.
func MoveDuration(base time.Duration, m Move, speed float64, solving bool) time.Duration {
	if speed <= 0 || math.IsNaN(speed) {
		speed = DefaultSpeed
	}
	mult := 1.0
	if m.Turns == 2 {
		mult = HalfTurnMultiplier
	}
	if solving {
		mult *= SolveSpeedFactor
	}
	return time.Duration(float64(base) * mult / speed)
}

// StartMove begins animating m. It returns false without changing anything
// if a rotation is already in progress or m is out of range. The move is
// appended to history when record is true and no solve is running.
func (i *Instance) StartMove(m Move, record bool) bool {
	if i.rot != nil || i.root == nil || !m.Valid() {
		return false
	}

	pivot := scene.NewNode("pivot")
	i.root.Add(pivot)

	r := &rotation{move: m, solving: i.solve != nil, pivot: pivot}
	for _, c := range i.cubies {
		if c.Coord.On(m.Axis) == m.Layer {
			pivot.Attach(c.Node)
			r.cubies = append(r.cubies, c)
		}
	}
	if i.now.IsZero() {
		r.armed = true
	} else {
		r.start, r.last = i.now, i.now
	}
	i.rot = r

	if record && i.solve == nil {
		i.record(m)
	}
	i.picker.remember(m)

	if i.cfg.observer != nil {
		i.cfg.observer.MoveStarted(i.id, m, r.solving, i.now)
	}
	return true
}

func (i *Instance) record(m Move) {
	i.history = append(i.history, m)
	if over := len(i.history) - i.cfg.historyCap; over > 0 {
		n := copy(i.history, i.history[over:])
		i.history = i.history[:n]
	}
}

// Update advances the instance to now under settings s. It continues,
// finishes or starts rotations and drives a running solve.
func (i *Instance) Update(now time.Time, s Settings) {
	i.now = now
	if i.rot != nil {
		i.advance(now, s)
	}
	if i.rot != nil || i.solve != nil {
		return
	}
	if s.Sync {
		i.nextMove = time.Time{}
		return
	}
	i.scheduleIndependent(now, s)
}

func (i *Instance) advance(now time.Time, s Settings) {
	r := i.rot
	if r.armed {
		r.start, r.last, r.armed = now, now, false
		return
	}
	if s.Playback == PlaybackPause {
		r.paused = true
		return
	}

	dur := MoveDuration(i.cfg.baseDuration, r.move, s.Speed, r.solving)
	if r.paused {
		// Shift start back by what already elapsed so progress resumes
		// where it froze.
		r.paused = false
		r.last = now
		r.start = now.Add(-time.Duration(r.progress * float64(dur)))
	}
	if dt := now.Sub(r.last); dt > 0 {
		r.progress += float64(dt) / float64(dur)
	}
	r.last = now

	if r.progress >= 1 {
		i.finishRotation()
		return
	}
	r.pivot.Rotation = scene.AxisAngle(r.move.Axis.Vector(), radians(r.move.Angle()*i.cfg.easing(r.progress)))
}

// finishRotation snaps the active rotation to completion and returns its
// cubies to the root group.
func (i *Instance) finishRotation() {
	r := i.rot
	r.pivot.Rotation = scene.AxisAngle(r.move.Axis.Vector(), radians(r.move.Angle()))
	for _, c := range r.cubies {
		i.root.Attach(c.Node)
		c.snap()
	}
	r.pivot.Dispose()
	i.rot = nil

	if i.solve != nil {
		i.continueSolve()
	}
}

// StartSolve replays the recorded history in reverse. It returns false
// when there is nothing to undo or a solve is already running. A rotation
// in flight is completed immediately first.
func (i *Instance) StartSolve() bool {
	if i.solve != nil || len(i.history) == 0 {
		return false
	}
	if i.rot != nil {
		i.finishRotation()
	}

	queue := InverseSequence(i.history)
	i.history = i.history[:0]
	i.solve = &solveRun{queue: queue, total: len(queue)}
	i.nextMove = time.Time{}

	i.cfg.logger.Debug("solve started", "instance", i.id, "moves", len(queue))
	if i.cfg.observer != nil {
		i.cfg.observer.SolveStarted(i.id, len(queue), i.now)
	}
	i.continueSolve()
	return true
}

func (i *Instance) continueSolve() {
	if len(i.solve.queue) == 0 {
		i.solve = nil
		i.picker.reset()
		i.cfg.logger.Debug("solve finished", "instance", i.id)
		if i.cfg.observer != nil {
			i.cfg.observer.SolveFinished(i.id, i.now)
		}
		return
	}
	next := i.solve.queue[0]
	i.solve.queue = i.solve.queue[1:]
	i.StartMove(next, false)
}

func (i *Instance) scheduleIndependent(now time.Time, s Settings) {
	if s.Playback != PlaybackPlay {
		return
	}
	freq, _ := Frequency(s.Frequency)
	if i.nextMove.IsZero() {
		i.nextMove = now.Add(randomDelay(i.cfg.rng, freq))
		return
	}
	if now.Before(i.nextMove) {
		return
	}
	i.nextMove = time.Time{}
	i.StartMove(i.picker.next(), true)
}

// Dispose tears the instance down and releases its scene nodes.
func (i *Instance) Dispose() {
	i.rot = nil
	i.solve = nil
	if i.root != nil {
		i.root.Dispose()
		i.root = nil
	}
	i.cubies = nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
