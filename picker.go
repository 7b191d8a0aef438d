package cubegrid

import (
	"math/rand/v2"
	"time"
)

const (
	maxPickAttempts = 10
	halfTurnChance  = 0.25
)

// Redundant reports whether cand, played right after last, would read as
// visually static: an exact repeat on the same layer, or a quarter turn
// that exactly cancels a quarter turn.
func Redundant(last, cand Move) bool {
	if last.Axis != cand.Axis || last.Layer != cand.Layer {
		return false
	}
	if last.Direction == cand.Direction && last.Turns == cand.Turns {
		return true
	}
	return last.Direction == -cand.Direction && last.Turns == 1 && cand.Turns == 1
}

// RandomMove draws a uniformly random layer and direction; a quarter of
// the moves are half turns.
func RandomMove(rng *rand.Rand) Move {
	m := Move{
		Axis:      Axis(rng.IntN(3)),
		Layer:     rng.IntN(3),
		Direction: 1,
		Turns:     1,
	}
	if rng.IntN(2) == 0 {
		m.Direction = -1
	}
	if rng.Float64() < halfTurnChance {
		m.Turns = 2
	}
	return m
}

// picker draws random moves, skipping ones that are redundant with the
// previous move.
type picker struct {
	rng     *rand.Rand
	last    Move
	hasLast bool
}

func (p *picker) next() Move {
	var m Move
	for attempt := 0; attempt < maxPickAttempts; attempt++ {
		m = RandomMove(p.rng)
		if !p.hasLast || !Redundant(p.last, m) {
			break
		}
	}
	return m
}

func (p *picker) remember(m Move) {
	p.last = m
	p.hasLast = true
}

func (p *picker) reset() {
	p.last = Move{}
	p.hasLast = false
}

// randomDelay draws a uniform delay in [r.Min, r.Max].
func randomDelay(rng *rand.Rand, r FrequencyRange) time.Duration {
	span := r.Max - r.Min
	if span <= 0 {
		return r.Min
	}
	return r.Min + time.Duration(rng.Int64N(int64(span)+1))
}
