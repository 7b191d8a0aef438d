package cubegrid

import "github.com/SeamusWaldron/cubegrid/pkg/scene"

// Color represents a face color.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Green  Color = 2 // Front face when solved
	Blue   Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Orange Color = 5 // Left face when solved
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// CubeFace identifies one of the six faces of a cubie in its own frame.
// This is distinct from Face which is used for move notation.
type CubeFace int

const (
	CubeFaceU CubeFace = 0 // +y
	CubeFaceD CubeFace = 1 // -y
	CubeFaceF CubeFace = 2 // +z
	CubeFaceB CubeFace = 3 // -z
	CubeFaceR CubeFace = 4 // +x
	CubeFaceL CubeFace = 5 // -x
)

// CubeFaces lists the faces in index order.
var CubeFaces = [6]CubeFace{CubeFaceU, CubeFaceD, CubeFaceF, CubeFaceB, CubeFaceR, CubeFaceL}

func (f CubeFace) String() string {
	switch f {
	case CubeFaceU:
		return "U"
	case CubeFaceD:
		return "D"
	case CubeFaceF:
		return "F"
	case CubeFaceB:
		return "B"
	case CubeFaceR:
		return "R"
	case CubeFaceL:
		return "L"
	default:
		return "?"
	}
}

// Normal returns the outward unit normal of the face in the cubie frame.
func (f CubeFace) Normal() scene.Vec3 {
	switch f {
	case CubeFaceU:
		return scene.Vec3{Y: 1}
	case CubeFaceD:
		return scene.Vec3{Y: -1}
	case CubeFaceF:
		return scene.Vec3{Z: 1}
	case CubeFaceB:
		return scene.Vec3{Z: -1}
	case CubeFaceR:
		return scene.Vec3{X: 1}
	default:
		return scene.Vec3{X: -1}
	}
}

// SolvedColor returns the sticker color a face carries on a solved cube.
func (f CubeFace) SolvedColor() Color {
	return Color(f)
}

// Stickered reports which faces of the cubie whose home cell is home carry
// a sticker: exactly those lying on the outside of the solved cube.
func Stickered(home Coord) [6]bool {
	var s [6]bool
	s[CubeFaceU] = home.Y == 2
	s[CubeFaceD] = home.Y == 0
	s[CubeFaceF] = home.Z == 2
	s[CubeFaceB] = home.Z == 0
	s[CubeFaceR] = home.X == 2
	s[CubeFaceL] = home.X == 0
	return s
}
