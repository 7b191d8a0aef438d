package analysis

import "github.com/SeamusWaldron/cubegrid"

// moveToken packs a move into a small integer: 3 axes x 3 layers x
// 2 directions x 2 turn counts.
func moveToken(m cubegrid.Move) uint8 {
	t := uint8(m.Axis)*12 + uint8(m.Layer)*4
	if m.Direction < 0 {
		t += 2
	}
	if m.Turns == 2 {
		t++
	}
	return t
}

func moveFromToken(t uint8) cubegrid.Move {
	m := cubegrid.Move{
		Axis:      cubegrid.Axis(t / 12),
		Layer:     int(t%12) / 4,
		Direction: 1,
		Turns:     1,
	}
	if t%4 >= 2 {
		m.Direction = -1
	}
	if t%2 == 1 {
		m.Turns = 2
	}
	return m
}
