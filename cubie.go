package cubegrid

import (
	"fmt"
	"math"

	"github.com/SeamusWaldron/cubegrid/pkg/scene"
)

const (
	// CubieSpacing is the distance between neighbouring lattice cells.
	CubieSpacing = 1.0
	// CubieGap is the visible gap between neighbouring cubies.
	CubieGap = 0.05
	// CubieSize is the edge length of one cubie.
	CubieSize = CubieSpacing - CubieGap
	// CubeSide is the outer edge length of a whole cube.
	CubeSide = 3*CubieSpacing - CubieGap
)

// Coord is a cell of the 3x3x3 lattice, each component in {0,1,2}.
type Coord struct {
	X, Y, Z int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// On returns the component of c along axis.
func (c Coord) On(axis Axis) int {
	switch axis {
	case AxisX:
		return c.X
	case AxisY:
		return c.Y
	default:
		return c.Z
	}
}

// Valid reports whether every component is in {0,1,2}.
func (c Coord) Valid() bool {
	return c.X >= 0 && c.X <= 2 && c.Y >= 0 && c.Y <= 2 && c.Z >= 0 && c.Z <= 2
}

// LocalPosition returns the center of the cell in cube-local space.
func (c Coord) LocalPosition() scene.Vec3 {
	return scene.Vec3{
		X: float64(c.X-1) * CubieSpacing,
		Y: float64(c.Y-1) * CubieSpacing,
		Z: float64(c.Z-1) * CubieSpacing,
	}
}

// Lattice returns every cell in x-major order.
func Lattice() []Coord {
	cells := make([]Coord, 0, 27)
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			for z := 0; z < 3; z++ {
				cells = append(cells, Coord{x, y, z})
			}
		}
	}
	return cells
}

// SnapToLattice rounds a cube-local position to the nearest lattice cell.
func SnapToLattice(p scene.Vec3) Coord {
	return Coord{
		X: snapComponent(p.X),
		Y: snapComponent(p.Y),
		Z: snapComponent(p.Z),
	}
}

func snapComponent(v float64) int {
	i := int(math.Round(v/CubieSpacing)) + 1
	if i < 0 {
		return 0
	}
	if i > 2 {
		return 2
	}
	return i
}

// Cubie is one of the 27 sub-units of a cube.
type Cubie struct {
	Coord Coord       // Current lattice cell
	Home  Coord       // Cell on a solved cube; selects the shared material
	Node  *scene.Node // Transform owned by the cubie
}

func newCubie(home Coord) *Cubie {
	n := scene.NewNode("cubie" + home.String())
	n.Position = home.LocalPosition()
	return &Cubie{Coord: home, Home: home, Node: n}
}

// snap re-aligns the node exactly to the nearest lattice cell and right-angle
// orientation, removing float drift left by the rotation.
func (c *Cubie) snap() {
	c.Coord = SnapToLattice(c.Node.Position)
	c.Node.Position = c.Coord.LocalPosition()
	c.Node.Rotation = c.Node.Rotation.SnapRightAngles()
}
