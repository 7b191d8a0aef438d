package cubegrid

import (
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cubegrid/pkg/scene"
)

// Axis is one of the three lattice axes a layer can turn about.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Vector returns the unit vector of the positive axis direction.
func (a Axis) Vector() scene.Vec3 {
	switch a {
	case AxisX:
		return scene.Vec3{X: 1}
	case AxisY:
		return scene.Vec3{Y: 1}
	default:
		return scene.Vec3{Z: 1}
	}
}

// Face is the letter used for a layer in standard notation.
type Face string

const (
	FaceR Face = "R" // x, layer 2
	FaceL Face = "L" // x, layer 0
	FaceM Face = "M" // x, layer 1 (follows L)
	FaceU Face = "U" // y, layer 2
	FaceD Face = "D" // y, layer 0
	FaceE Face = "E" // y, layer 1 (follows D)
	FaceF Face = "F" // z, layer 2
	FaceB Face = "B" // z, layer 0
	FaceS Face = "S" // z, layer 1 (follows F)
)

var faceLayers = map[Face]struct {
	axis  Axis
	layer int
}{
	FaceL: {AxisX, 0}, FaceM: {AxisX, 1}, FaceR: {AxisX, 2},
	FaceD: {AxisY, 0}, FaceE: {AxisY, 1}, FaceU: {AxisY, 2},
	FaceB: {AxisZ, 0}, FaceS: {AxisZ, 1}, FaceF: {AxisZ, 2},
}

var layerFaces = [3][3]Face{
	AxisX: {FaceL, FaceM, FaceR},
	AxisY: {FaceD, FaceE, FaceU},
	AxisZ: {FaceB, FaceS, FaceF},
}

// Move is a quarter or half turn of one layer.
// Direction +1 is a right-handed +90° rotation about the positive axis.
type Move struct {
	Axis      Axis
	Layer     int // 0, 1 or 2 along Axis
	Direction int // +1 or -1
	Turns     int // 1 = quarter turn, 2 = half turn
}

// Valid reports whether every field is in range.
func (m Move) Valid() bool {
	return m.Axis >= AxisX && m.Axis <= AxisZ &&
		m.Layer >= 0 && m.Layer <= 2 &&
		(m.Direction == 1 || m.Direction == -1) &&
		(m.Turns == 1 || m.Turns == 2)
}

// Face returns the notation letter of the move's layer.
func (m Move) Face() Face {
	if m.Axis < AxisX || m.Axis > AxisZ || m.Layer < 0 || m.Layer > 2 {
		return ""
	}
	return layerFaces[m.Axis][m.Layer]
}

// Inverse returns the move that undoes m.
// Quarter turns flip direction; a half turn is its own inverse and keeps
// its recorded direction.
func (m Move) Inverse() Move {
	inv := m
	if m.Turns != 2 {
		inv.Direction = -m.Direction
	}
	return inv
}

// Angle returns the signed rotation of the full move in degrees.
func (m Move) Angle() float64 {
	return 90 * float64(m.Turns) * float64(m.Direction)
}

// clockwise returns the direction that reads as a clockwise turn when
// looking at the move's face (or the face a slice follows).
func clockwise(axis Axis, layer int) int {
	switch layer {
	case 2:
		return -1
	case 0:
		return 1
	}
	if axis == AxisZ {
		return -1 // S follows F
	}
	return 1 // M follows L, E follows D
}

// Notation returns the standard notation string for this move.
// Examples: R, R', R2, M, E', S2
func (m Move) Notation() string {
	face := string(m.Face())
	if face == "" {
		return "?"
	}
	switch {
	case m.Turns == 2:
		return face + "2"
	case m.Direction == clockwise(m.Axis, m.Layer):
		return face
	default:
		return face + "'"
	}
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// GoString renders the raw fields, which keeps half-turn direction visible.
func (m Move) GoString() string {
	return fmt.Sprintf("Move{%s,%d,%+d,%d}", m.Axis, m.Layer, m.Direction, m.Turns)
}

// ParseMove parses a standard notation string into a Move.
// Examples: R, R', R2, M, E', S2
// Returns an error if the notation is invalid.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, ErrInvalidNotation
	}

	fl, ok := faceLayers[Face(strings.ToUpper(s[:1]))]
	if !ok {
		return Move{}, ErrInvalidNotation
	}
	cw := clockwise(fl.axis, fl.layer)
	m := Move{Axis: fl.axis, Layer: fl.layer, Direction: cw, Turns: 1}

	if len(s) > 1 {
		switch s[1:] {
		case "'", "`":
			m.Direction = -cw
		case "2":
			m.Turns = 2
		case "2'", "2`":
			m.Turns = 2
			m.Direction = -cw
		default:
			return Move{}, ErrInvalidNotation
		}
	}

	return m, nil
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U'"
// Unlike ParseMove it fails on the first invalid token.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", part, err)
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// InverseSequence returns the moves that undo seq: reversed, each inverted.
func InverseSequence(seq []Move) []Move {
	out := make([]Move, len(seq))
	for i, m := range seq {
		out[len(seq)-1-i] = m.Inverse()
	}
	return out
}
