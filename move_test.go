package cubegrid

import (
	"errors"
	"testing"
)

func allMoves() []Move {
	var moves []Move
	for axis := AxisX; axis <= AxisZ; axis++ {
		for layer := 0; layer < 3; layer++ {
			for _, dir := range []int{1, -1} {
				for turns := 1; turns <= 2; turns++ {
					moves = append(moves, Move{Axis: axis, Layer: layer, Direction: dir, Turns: turns})
				}
			}
		}
	}
	return moves
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in   string
		want Move
	}{
		{"R", R},
		{"R'", RPrime},
		{"R2", R2},
		{"L", L},
		{"U'", UPrime},
		{"D2", D2},
		{"F", F},
		{"B'", BPrime},
		{"M", M},
		{"E'", EPrime},
		{"S", S},
		{"r", R},
		{"R`", RPrime},
		{" U ", U},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMove(tt.in)
			if err != nil {
				t.Fatalf("ParseMove(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMove(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseMoveInvalid(t *testing.T) {
	for _, in := range []string{"", "X", "R3", "R''", "Q2"} {
		if _, err := ParseMove(in); !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ParseMove(%q) error = %v, want ErrInvalidNotation", in, err)
		}
	}
}

func TestParseMoves(t *testing.T) {
	moves, err := ParseMoves("R U R' U'")
	if err != nil {
		t.Fatal(err)
	}
	if len(moves) != 4 {
		t.Fatalf("got %d moves, want 4", len(moves))
	}
	if got := FormatMoves(moves); got != "R U R' U'" {
		t.Errorf("FormatMoves = %q", got)
	}

	if _, err := ParseMoves("R U Z"); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("ParseMoves with bad token error = %v", err)
	}
}

func TestNotationRoundTrip(t *testing.T) {
	for _, m := range allMoves() {
		parsed, err := ParseMove(m.Notation())
		if err != nil {
			t.Errorf("%#v: %v", m, err)
			continue
		}
		if m.Turns == 2 {
			// Half turns print the same in both directions.
			if parsed.Axis != m.Axis || parsed.Layer != m.Layer || parsed.Turns != 2 {
				t.Errorf("%#v parsed back as %#v", m, parsed)
			}
			continue
		}
		if parsed != m {
			t.Errorf("%#v parsed back as %#v", m, parsed)
		}
	}
}

func TestInverse(t *testing.T) {
	tests := []struct {
		m, want Move
	}{
		{R, RPrime},
		{RPrime, R},
		{R2, R2},
		{Move{AxisY, 1, 1, 2}, Move{AxisY, 1, 1, 2}},
		{M, MPrime},
	}
	for _, tt := range tests {
		if got := tt.m.Inverse(); got != tt.want {
			t.Errorf("%v.Inverse() = %#v, want %#v", tt.m, got, tt.want)
		}
	}
}

func TestInverseSequence(t *testing.T) {
	seq := []Move{R, U2, FPrime}
	want := []Move{F, U2, RPrime}
	got := InverseSequence(seq)
	if FormatMoves(got) != FormatMoves(want) {
		t.Errorf("InverseSequence = %s, want %s", FormatMoves(got), FormatMoves(want))
	}
	if len(InverseSequence(nil)) != 0 {
		t.Error("InverseSequence(nil) should be empty")
	}
}

func TestMoveValid(t *testing.T) {
	invalid := []Move{
		{Axis: 3, Layer: 0, Direction: 1, Turns: 1},
		{Axis: AxisX, Layer: 3, Direction: 1, Turns: 1},
		{Axis: AxisX, Layer: 0, Direction: 0, Turns: 1},
		{Axis: AxisX, Layer: 0, Direction: 1, Turns: 3},
		{},
	}
	for _, m := range invalid {
		if m.Valid() {
			t.Errorf("%#v should be invalid", m)
		}
		if m.Notation() == "" {
			t.Errorf("%#v notation should not be empty", m)
		}
	}
	for _, m := range allMoves() {
		if !m.Valid() {
			t.Errorf("%#v should be valid", m)
		}
	}
}

func TestMoveAngle(t *testing.T) {
	if R.Angle() != -90 {
		t.Errorf("R angle = %v", R.Angle())
	}
	if L2.Angle() != 180 {
		t.Errorf("L2 angle = %v", L2.Angle())
	}
}
