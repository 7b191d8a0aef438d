package cubegrid

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"
)

func TestDefaultSettingsValid(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
		want   error
	}{
		{"zero speed", func(s *Settings) { s.Speed = 0 }, ErrInvalidSetting},
		{"negative speed", func(s *Settings) { s.Speed = -1 }, ErrInvalidSetting},
		{"nan speed", func(s *Settings) { s.Speed = math.NaN() }, ErrInvalidSetting},
		{"speed too high", func(s *Settings) { s.Speed = MaxSpeed + 1 }, ErrInvalidSetting},
		{"grid size zero", func(s *Settings) { s.GridSize = 0 }, ErrInvalidSetting},
		{"grid size too large", func(s *Settings) { s.GridSize = MaxGridSize + 1 }, ErrInvalidSetting},
		{"frequency zero", func(s *Settings) { s.Frequency = 0 }, ErrUnknownFrequency},
		{"frequency six", func(s *Settings) { s.Frequency = 6 }, ErrUnknownFrequency},
		{"playback", func(s *Settings) { s.Playback = "rewind" }, ErrUnknownPlayback},
		{"scheme", func(s *Settings) { s.ColorScheme = "plaid" }, ErrUnknownScheme},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			if err := s.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFrequencyTiers(t *testing.T) {
	tests := []struct {
		tier     int
		min, max time.Duration
	}{
		{1, 4000 * time.Millisecond, 8000 * time.Millisecond},
		{2, 2000 * time.Millisecond, 5000 * time.Millisecond},
		{3, 1000 * time.Millisecond, 3000 * time.Millisecond},
		{4, 500 * time.Millisecond, 1500 * time.Millisecond},
		{5, 150 * time.Millisecond, 600 * time.Millisecond},
	}
	for _, tt := range tests {
		r, ok := Frequency(tt.tier)
		if !ok || r.Min != tt.min || r.Max != tt.max {
			t.Errorf("Frequency(%d) = %v, %v", tt.tier, r, ok)
		}
	}

	r, ok := Frequency(9)
	def, _ := Frequency(DefaultFrequency)
	if ok || r != def {
		t.Errorf("Frequency(9) = %v, %v, want default tier", r, ok)
	}
}

func TestSettingsStoreRejectsInvalid(t *testing.T) {
	st := NewSettingsStore(DefaultSettings())

	if err := st.Update(func(s *Settings) { s.Speed = 2 }); err != nil {
		t.Fatal(err)
	}
	if st.Version() != 1 {
		t.Errorf("version = %d, want 1", st.Version())
	}

	err := st.Update(func(s *Settings) {
		s.GridSize = 10
		s.ColorScheme = "nope"
	})
	if !errors.Is(err, ErrUnknownScheme) {
		t.Errorf("Update error = %v", err)
	}

	got := st.Snapshot()
	if got.Speed != 2 || got.GridSize != DefaultGridSize {
		t.Errorf("rejected update leaked: %+v", got)
	}
	if st.Version() != 1 {
		t.Errorf("version = %d after rejected update, want 1", st.Version())
	}
}

func TestNewSettingsStoreFallsBackToDefaults(t *testing.T) {
	st := NewSettingsStore(Settings{})
	if st.Snapshot() != DefaultSettings() {
		t.Errorf("Snapshot() = %+v", st.Snapshot())
	}
}

func TestSettingsStoreSolveRequest(t *testing.T) {
	st := NewSettingsStore(DefaultSettings())
	if st.TakeSolveRequest() {
		t.Error("no solve should be pending")
	}

	st.RequestSolve()
	if st.Snapshot().Playback != PlaybackStop {
		t.Errorf("playback = %v, want stop", st.Snapshot().Playback)
	}
	if !st.TakeSolveRequest() {
		t.Error("solve should be pending")
	}
	if st.TakeSolveRequest() {
		t.Error("solve request should be consumed")
	}
}

func TestSettingsStoreConcurrent(t *testing.T) {
	st := NewSettingsStore(DefaultSettings())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = st.Update(func(s *Settings) { s.Frequency = 1 + (i+j)%5 })
				_ = st.Snapshot()
			}
		}(i)
	}
	wg.Wait()

	if st.Version() != 800 {
		t.Errorf("version = %d, want 800", st.Version())
	}
}
