package cubegrid

import "math"

// Easing maps normalized time t in [0,1] to normalized progress.
// Every easing returns 0 at t=0 and 1 at t=1; values in between may
// overshoot.
type Easing func(t float64) float64

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Linear is the identity easing.
func Linear(t float64) float64 {
	return clamp01(t)
}

// EaseInOutCubic accelerates through the first half and decelerates
// through the second.
func EaseInOutCubic(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutQuart starts fast and settles slowly.
func EaseOutQuart(t float64) float64 {
	t = clamp01(t)
	return 1 - math.Pow(1-t, 4)
}

// flickOvershoot controls how far FingerFlick swings past the target.
const flickOvershoot = 1.2

// FingerFlick snaps toward the target almost immediately, swings slightly
// past it and settles back, like a layer flicked with one finger.
func FingerFlick(t float64) float64 {
	t = clamp01(t)
	const c3 = flickOvershoot + 1
	u := t - 1
	return 1 + c3*u*u*u + flickOvershoot*u*u
}

// Easings lists the named easing curves.
var Easings = map[string]Easing{
	"linear": Linear,
	"cubic":  EaseInOutCubic,
	"quart":  EaseOutQuart,
	"flick":  FingerFlick,
}
