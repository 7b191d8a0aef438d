package cubegrid

import (
	"math/rand/v2"
	"testing"
	"time"
)

func TestRedundant(t *testing.T) {
	tests := []struct {
		name       string
		last, cand Move
		want       bool
	}{
		{"exact repeat", R, R, true},
		{"quarter cancel", R, RPrime, true},
		{"half repeat", R2, R2, true},
		{"half opposite direction", R2, Move{AxisX, 2, 1, 2}, false},
		{"quarter then half", R, R2, false},
		{"half then quarter", R2, RPrime, false},
		{"other layer same axis", R, L, false},
		{"slice", R, M, false},
		{"other axis", R, U, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Redundant(tt.last, tt.cand); got != tt.want {
				t.Errorf("Redundant(%#v, %#v) = %v, want %v", tt.last, tt.cand, got, tt.want)
			}
		})
	}
}

func TestRandomMoveValid(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	halves := 0
	const n = 4000
	for i := 0; i < n; i++ {
		m := RandomMove(rng)
		if !m.Valid() {
			t.Fatalf("invalid random move %#v", m)
		}
		if m.Turns == 2 {
			halves++
		}
	}
	ratio := float64(halves) / n
	if ratio < 0.2 || ratio > 0.3 {
		t.Errorf("half-turn ratio = %v, want about %v", ratio, halfTurnChance)
	}
}

func TestPickerAvoidsRedundantMoves(t *testing.T) {
	p := picker{rng: rand.New(rand.NewPCG(7, 7))}
	last := p.next()
	p.remember(last)
	for i := 0; i < 1000; i++ {
		m := p.next()
		if Redundant(last, m) {
			t.Fatalf("move %d: %v after %v is redundant", i, m, last)
		}
		p.remember(m)
		last = m
	}
}

func TestPickerReset(t *testing.T) {
	p := picker{rng: rand.New(rand.NewPCG(1, 1))}
	p.remember(R)
	p.reset()
	if p.hasLast {
		t.Error("reset should forget the last move")
	}
}

func TestRandomDelayWithinRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	r, _ := Frequency(5)
	for i := 0; i < 1000; i++ {
		d := randomDelay(rng, r)
		if d < r.Min || d > r.Max {
			t.Fatalf("delay %v outside [%v, %v]", d, r.Min, r.Max)
		}
	}
	if d := randomDelay(rng, FrequencyRange{Min: time.Second, Max: time.Second}); d != time.Second {
		t.Errorf("degenerate range delay = %v", d)
	}
}
