// Package render draws a grid snapshot as a PNG image or a terminal
// status board.
package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/gogpu/gg"

	"github.com/SeamusWaldron/cubegrid"
	"github.com/SeamusWaldron/cubegrid/pkg/scene"
)

// Quad is one visible cubie face projected to pixel space.
type Quad struct {
	Instance  string
	Home      cubegrid.Coord
	Face      cubegrid.CubeFace
	Stickered bool
	Points    [4][2]float64
	Depth     float64 // Larger is nearer the camera
	Normal    scene.Vec3
	Color     gg.RGBA
}

// Light is the direction faces are shaded against.
var Light = scene.Vec3{X: -0.35, Y: 0.8, Z: 0.5}

// PNG renders grids with an orthographic camera looking down -Z.
type PNG struct {
	Width, Height int
	Background    gg.RGBA
	Outline       gg.RGBA
	LineWidth     float64
}

// NewPNG creates a renderer for width x height images.
func NewPNG(width, height int) *PNG {
	return &PNG{
		Width:      width,
		Height:     height,
		Background: gg.Hex("#1E1E24"),
		Outline:    gg.Hex("#0B0B0E"),
		LineWidth:  1,
	}
}

// Quads projects every camera-facing cubie face of g into a width x height
// image and returns them back to front.
func Quads(g *cubegrid.Grid, width, height int) []Quad {
	halfW, halfH := g.Frustum()
	if halfW <= 0 || halfH <= 0 || width <= 0 || height <= 0 {
		return nil
	}
	scale := math.Min(float64(width)/(2*halfW), float64(height)/(2*halfH))
	cx, cy := float64(width)/2, float64(height)/2
	project := func(p scene.Vec3) [2]float64 {
		return [2]float64{cx + p.X*scale, cy - p.Y*scale}
	}

	materials := g.Materials()
	palette := g.Palette()
	blending := palette != materials.Palette()

	var quads []Quad
	for _, inst := range g.Instances() {
		for _, c := range inst.Cubies() {
			rot := c.Node.WorldRotation()
			def := materials.Definition(c.Home)
			for _, f := range cubegrid.CubeFaces {
				n := rot.Rotate(f.Normal())
				if n.Z <= 1e-9 {
					continue
				}
				q := Quad{
					Instance:  inst.ID(),
					Home:      c.Home,
					Face:      f,
					Stickered: def.Stickered[f],
					Normal:    n,
					Color:     def.Faces[f],
				}
				if blending {
					q.Color = palette.Body
					if q.Stickered {
						q.Color = palette.Sticker[f.SolvedColor()]
					}
				}
				var depth float64
				for k, corner := range faceCorners(f) {
					w := c.Node.LocalToWorld(corner)
					q.Points[k] = project(w)
					depth += w.Z
				}
				q.Depth = depth / 4
				quads = append(quads, q)
			}
		}
	}

	sort.SliceStable(quads, func(i, j int) bool {
		return quads[i].Depth < quads[j].Depth
	})
	return quads
}

// faceCorners returns the corners of face f of a cubie in its local frame,
// in winding order.
func faceCorners(f cubegrid.CubeFace) [4]scene.Vec3 {
	n := f.Normal()
	var u, v scene.Vec3
	switch {
	case n.X != 0:
		u, v = scene.Vec3{Y: 1}, scene.Vec3{Z: 1}
	case n.Y != 0:
		u, v = scene.Vec3{Z: 1}, scene.Vec3{X: 1}
	default:
		u, v = scene.Vec3{X: 1}, scene.Vec3{Y: 1}
	}
	h := cubegrid.CubieSize / 2
	c := n.Scale(h)
	u, v = u.Scale(h), v.Scale(h)
	return [4]scene.Vec3{
		c.Add(u).Add(v),
		c.Sub(u).Add(v),
		c.Sub(u).Sub(v),
		c.Add(u).Sub(v),
	}
}

// Shade darkens c by how far the face turns away from Light.
func Shade(c gg.RGBA, normal scene.Vec3) gg.RGBA {
	l := Light.Scale(1 / Light.Len())
	k := 0.55 + 0.45*math.Max(0, normal.Dot(l))
	return gg.RGBA{R: c.R * k, G: c.G * k, B: c.B * k, A: c.A}
}

// Draw paints g onto a new context. The caller closes it.
func (r *PNG) Draw(g *cubegrid.Grid) (*gg.Context, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", r.Width, r.Height)
	}
	dc := gg.NewContext(r.Width, r.Height)
	dc.ClearWithColor(r.Background)

	for _, q := range Quads(g, r.Width, r.Height) {
		dc.MoveTo(q.Points[0][0], q.Points[0][1])
		for _, p := range q.Points[1:] {
			dc.LineTo(p[0], p[1])
		}
		dc.ClosePath()
		dc.SetColor(Shade(q.Color, q.Normal).Color())
		if err := dc.FillPreserve(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("failed to fill face: %w", err)
		}
		dc.SetColor(r.Outline.Color())
		dc.SetLineWidth(r.LineWidth)
		if err := dc.Stroke(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("failed to outline face: %w", err)
		}
	}
	return dc, nil
}

// Encode writes g as a PNG to w.
func (r *PNG) Encode(w io.Writer, g *cubegrid.Grid) error {
	dc, err := r.Draw(g)
	if err != nil {
		return err
	}
	defer dc.Close()

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// Save writes g as a PNG file at path.
func (r *PNG) Save(path string, g *cubegrid.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := r.Encode(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
