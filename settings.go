package cubegrid

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// Playback is the global animation playback state.
type Playback string

const (
	PlaybackPlay  Playback = "play"  // Moves are scheduled and animated
	PlaybackPause Playback = "pause" // In-flight rotations freeze, nothing new starts
	PlaybackStop  Playback = "stop"  // Nothing new starts, in-flight rotations finish
)

// Valid reports whether p is a known playback state.
func (p Playback) Valid() bool {
	switch p {
	case PlaybackPlay, PlaybackPause, PlaybackStop:
		return true
	default:
		return false
	}
}

// Settings is the configuration every tick reads. The core only ever
// receives copies of it and never mutates it.
type Settings struct {
	Speed       float64  `json:"speed" toml:"speed"`
	GridSize    int      `json:"gridSize" toml:"grid_size"`
	Frequency   int      `json:"frequency" toml:"frequency"`
	Sync        bool     `json:"sync" toml:"sync"`
	Playback    Playback `json:"playback" toml:"playback"`
	ColorScheme string   `json:"colorScheme" toml:"color_scheme"`
}

const (
	DefaultSpeed     = 1.0
	DefaultGridSize  = 5
	DefaultFrequency = 3
	MaxGridSize      = 40
	MaxSpeed         = 10.0
)

// DefaultSettings returns the settings used when nothing else is configured.
func DefaultSettings() Settings {
	return Settings{
		Speed:       DefaultSpeed,
		GridSize:    DefaultGridSize,
		Frequency:   DefaultFrequency,
		Sync:        false,
		Playback:    PlaybackPlay,
		ColorScheme: DefaultScheme,
	}
}

// Validate checks every field against its closed range.
func (s Settings) Validate() error {
	if s.Speed <= 0 || s.Speed > MaxSpeed || math.IsNaN(s.Speed) {
		return fmt.Errorf("%w: speed %v", ErrInvalidSetting, s.Speed)
	}
	if s.GridSize < 1 || s.GridSize > MaxGridSize {
		return fmt.Errorf("%w: grid size %d", ErrInvalidSetting, s.GridSize)
	}
	if _, ok := frequencyTiers[s.Frequency]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownFrequency, s.Frequency)
	}
	if !s.Playback.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPlayback, s.Playback)
	}
	if _, ok := schemes[s.ColorScheme]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScheme, s.ColorScheme)
	}
	return nil
}

// FrequencyRange is the [Min, Max] delay between moves for one tier.
type FrequencyRange struct {
	Min, Max time.Duration
}

var frequencyTiers = map[int]FrequencyRange{
	1: {4000 * time.Millisecond, 8000 * time.Millisecond},
	2: {2000 * time.Millisecond, 5000 * time.Millisecond},
	3: {1000 * time.Millisecond, 3000 * time.Millisecond},
	4: {500 * time.Millisecond, 1500 * time.Millisecond},
	5: {150 * time.Millisecond, 600 * time.Millisecond},
}

// Frequency returns the delay range for tier. Unknown tiers fall back to
// DefaultFrequency and report ok=false.
func Frequency(tier int) (r FrequencyRange, ok bool) {
	r, ok = frequencyTiers[tier]
	if !ok {
		r = frequencyTiers[DefaultFrequency]
	}
	return r, ok
}

// SettingsStore is the hand-off point between the UI collaborator and the
// frame loop. UI code mutates it; the frame loop reads snapshots.
// Safe for concurrent use.
type SettingsStore struct {
	mu           sync.RWMutex
	s            Settings
	solvePending bool
	version      uint64
}

// NewSettingsStore creates a store holding s. Invalid settings are replaced
// by DefaultSettings.
func NewSettingsStore(s Settings) *SettingsStore {
	if s.Validate() != nil {
		s = DefaultSettings()
	}
	return &SettingsStore{s: s}
}

// Snapshot returns a copy of the current settings.
func (st *SettingsStore) Snapshot() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.s
}

// Version increments on every accepted change.
func (st *SettingsStore) Version() uint64 {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.version
}

// Update applies fn to a copy of the settings and commits it only if the
// result validates. On error the previous settings are retained.
func (st *SettingsStore) Update(fn func(*Settings)) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	next := st.s
	fn(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	st.s = next
	st.version++
	return nil
}

// Set replaces the settings wholesale if s validates.
func (st *SettingsStore) Set(s Settings) error {
	return st.Update(func(cur *Settings) { *cur = s })
}

// RequestSolve sets playback to stop and flags a pending solve for the
// frame loop to pick up with TakeSolveRequest.
func (st *SettingsStore) RequestSolve() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.Playback = PlaybackStop
	st.solvePending = true
	st.version++
}

// TakeSolveRequest reports and clears a pending solve request.
func (st *SettingsStore) TakeSolveRequest() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	pending := st.solvePending
	st.solvePending = false
	return pending
}
