package analysis

import "github.com/SeamusWaldron/cubegrid"

// normalizeQuarters reduces a net number of positive quarter turns to
// [-1, 2]: 3 -> -1, -2 -> 2, 4 -> 0.
func normalizeQuarters(q int) int {
	q = ((q % 4) + 4) % 4
	if q == 3 {
		return -1
	}
	return q
}

// Simplify merges runs of consecutive turns of the same layer into their
// net turn, dropping runs that cancel out. Merging repeats until no two
// neighbours share a layer, so "R U U' R'" simplifies to nothing.
func Simplify(moves []cubegrid.Move) []cubegrid.Move {
	out := make([]cubegrid.Move, 0, len(moves))
	for _, m := range moves {
		if !m.Valid() {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Axis == m.Axis && out[n-1].Layer == m.Layer {
			prev := out[n-1]
			q := normalizeQuarters(prev.Direction*prev.Turns + m.Direction*m.Turns)
			out = out[:n-1]
			if q == 0 {
				continue
			}
			merged := cubegrid.Move{Axis: m.Axis, Layer: m.Layer, Direction: 1, Turns: 1}
			switch q {
			case -1:
				merged.Direction = -1
			case 2:
				merged.Direction, merged.Turns = prev.Direction, 2
			}
			out = append(out, merged)
			continue
		}
		out = append(out, m)
	}
	return out
}
