package cubegrid

import (
	"math"
	"testing"
)

func TestEasingEndpoints(t *testing.T) {
	for name, ease := range Easings {
		t.Run(name, func(t *testing.T) {
			if got := ease(0); math.Abs(got) > 1e-12 {
				t.Errorf("ease(0) = %v, want 0", got)
			}
			if got := ease(1); math.Abs(got-1) > 1e-12 {
				t.Errorf("ease(1) = %v, want 1", got)
			}
			if got := ease(-0.5); math.Abs(got) > 1e-12 {
				t.Errorf("ease(-0.5) = %v, want clamped 0", got)
			}
			if got := ease(2); math.Abs(got-1) > 1e-12 {
				t.Errorf("ease(2) = %v, want clamped 1", got)
			}
		})
	}
}

func TestFingerFlickOvershoots(t *testing.T) {
	peak := 0.0
	for i := 0; i <= 100; i++ {
		peak = math.Max(peak, FingerFlick(float64(i)/100))
	}
	if peak <= 1 {
		t.Errorf("FingerFlick peak = %v, want overshoot past 1", peak)
	}
	if peak > 1.2 {
		t.Errorf("FingerFlick peak = %v, overshoot too large", peak)
	}

	// Most of the turn happens early.
	if FingerFlick(0.3) < 0.7 {
		t.Errorf("FingerFlick(0.3) = %v, want a fast start", FingerFlick(0.3))
	}
}

func TestEaseInOutCubicSymmetric(t *testing.T) {
	for _, x := range []float64{0.1, 0.25, 0.4} {
		a := EaseInOutCubic(x)
		b := 1 - EaseInOutCubic(1-x)
		if math.Abs(a-b) > 1e-12 {
			t.Errorf("EaseInOutCubic not symmetric at %v: %v vs %v", x, a, b)
		}
	}
	if got := EaseInOutCubic(0.5); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("EaseInOutCubic(0.5) = %v", got)
	}
}
