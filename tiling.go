package cubegrid

import (
	"math"

	"github.com/SeamusWaldron/cubegrid/pkg/scene"
)

const (
	isoYaw  = 45.0 // degrees about Y
	isoTilt = 30.0 // degrees about X, applied after the yaw

	// slotPadding is how many cube widths beyond the visible area are
	// still filled, so partially visible cubes at the edges are drawn.
	slotPadding = 1.5
)

// IsoRotation returns the fixed orientation every cube root is given.
func IsoRotation() scene.Quat {
	yaw := scene.AxisAngle(scene.Vec3{Y: 1}, radians(isoYaw))
	tilt := scene.AxisAngle(scene.Vec3{X: 1}, radians(isoTilt))
	return tilt.Mul(yaw).Normalize()
}

// Viewport is the output surface size in pixels.
type Viewport struct {
	Width, Height int
}

// DefaultViewport is used until the grid is resized.
var DefaultViewport = Viewport{Width: 1280, Height: 720}

// Valid reports whether both dimensions are positive.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// Aspect returns width over height.
func (v Viewport) Aspect() float64 {
	if v.Height <= 0 {
		return 1
	}
	return float64(v.Width) / float64(v.Height)
}

// Layout holds the projected metrics of one tiling cell. Cubes interlock
// like pointy-top hexagons: each row is shifted half a top face sideways
// and overlaps the previous row by half a top face.
type Layout struct {
	Width     float64 // Projected width of a cell cube
	Height    float64 // Projected height of a cell cube
	TopWidth  float64 // Projected width of the top face
	TopHeight float64 // Projected height of the top face

	ShiftX   float64
	SpacingX float64
	SpacingY float64
}

// NewLayout measures a cell cube of edge side plus gap under IsoRotation.
// Adding the gap makes neighbouring cubes sit as far apart as neighbouring
// cubies.
func NewLayout(side, gap float64) Layout {
	h := (side + gap) / 2
	rot := IsoRotation()

	var all, top bounds
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			for _, sz := range []float64{-1, 1} {
				p := rot.Rotate(scene.Vec3{X: sx * h, Y: sy * h, Z: sz * h})
				all.add(p.X, p.Y)
				if sy > 0 {
					top.add(p.X, p.Y)
				}
			}
		}
	}

	l := Layout{
		Width:     all.width(),
		Height:    all.height(),
		TopWidth:  top.width(),
		TopHeight: top.height(),
	}
	l.ShiftX = l.TopWidth / 2
	l.SpacingX = l.Width
	l.SpacingY = l.Height - l.TopHeight/2
	return l
}

// Position returns the world center of the cube at row, col.
func (l Layout) Position(row, col int) (x, y float64) {
	return float64(col)*l.SpacingX + float64(row)*l.ShiftX, -float64(row) * l.SpacingY
}

// Frustum returns the orthographic half extents that show gridSize rows
// of cubes vertically in viewport.
func (l Layout) Frustum(v Viewport, gridSize int) (halfW, halfH float64) {
	if gridSize < 1 {
		gridSize = 1
	}
	halfH = float64(gridSize) * l.SpacingY / 2
	halfW = halfH * v.Aspect()
	return halfW, halfH
}

// Slots enumerates every tile position inside the visible half extents
// plus padding, in row-major order.
func (l Layout) Slots(halfW, halfH float64) []Slot {
	padW := halfW + slotPadding*l.Width
	padH := halfH + slotPadding*l.Width

	rows := int(math.Ceil(padH / l.SpacingY))
	cols := int(math.Ceil((padW + float64(rows)*l.ShiftX) / l.SpacingX))

	var slots []Slot
	for r := -rows; r <= rows; r++ {
		for c := -cols; c <= cols; c++ {
			x, y := l.Position(r, c)
			if math.Abs(x) > padW || math.Abs(y) > padH {
				continue
			}
			slots = append(slots, Slot{Row: r, Col: c, X: x, Y: y})
		}
	}
	return slots
}

type bounds struct {
	minX, maxX, minY, maxY float64
	set                    bool
}

func (b *bounds) add(x, y float64) {
	if !b.set {
		b.minX, b.maxX, b.minY, b.maxY, b.set = x, x, y, y, true
		return
	}
	b.minX = math.Min(b.minX, x)
	b.maxX = math.Max(b.maxX, x)
	b.minY = math.Min(b.minY, y)
	b.maxY = math.Max(b.maxY, y)
}

func (b bounds) width() float64  { return b.maxX - b.minX }
func (b bounds) height() float64 { return b.maxY - b.minY }
