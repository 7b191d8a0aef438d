package cubegrid

import (
	"sort"
	"time"

	"github.com/gogpu/gg"
)

// DefaultScheme is the color scheme used when none is configured.
const DefaultScheme = "classic"

// PaletteTransitionDuration is how long a color scheme change blends.
const PaletteTransitionDuration = 600 * time.Millisecond

// Palette maps the six sticker colors plus the plastic body to RGBA values.
type Palette struct {
	Name    string
	Sticker [6]gg.RGBA // Indexed by Color
	Body    gg.RGBA
}

var schemes = map[string]Palette{
	"classic": {
		Name: "classic",
		Sticker: [6]gg.RGBA{
			White:  gg.Hex("#F5F5F5"),
			Yellow: gg.Hex("#FFD500"),
			Green:  gg.Hex("#009B48"),
			Blue:   gg.Hex("#0046AD"),
			Red:    gg.Hex("#B71234"),
			Orange: gg.Hex("#FF5800"),
		},
		Body: gg.Hex("#111111"),
	},
	"pastel": {
		Name: "pastel",
		Sticker: [6]gg.RGBA{
			White:  gg.Hex("#FFFDF7"),
			Yellow: gg.Hex("#FDF1A8"),
			Green:  gg.Hex("#B5E8C3"),
			Blue:   gg.Hex("#AFC8F0"),
			Red:    gg.Hex("#F4A7B1"),
			Orange: gg.Hex("#F9C99B"),
		},
		Body: gg.Hex("#3A3A46"),
	},
	"neon": {
		Name: "neon",
		Sticker: [6]gg.RGBA{
			White:  gg.Hex("#E0FFFF"),
			Yellow: gg.Hex("#F3FF00"),
			Green:  gg.Hex("#39FF14"),
			Blue:   gg.Hex("#1F51FF"),
			Red:    gg.Hex("#FF073A"),
			Orange: gg.Hex("#FF6EC7"),
		},
		Body: gg.Hex("#050510"),
	},
	"mono": {
		Name: "mono",
		Sticker: [6]gg.RGBA{
			White:  gg.Hex("#FFFFFF"),
			Yellow: gg.Hex("#D6D6D6"),
			Green:  gg.Hex("#ADADAD"),
			Blue:   gg.Hex("#858585"),
			Red:    gg.Hex("#5C5C5C"),
			Orange: gg.Hex("#333333"),
		},
		Body: gg.Hex("#000000"),
	},
}

// Scheme looks up a palette by name.
func Scheme(name string) (Palette, bool) {
	p, ok := schemes[name]
	return p, ok
}

// SchemeNames returns the known scheme names in sorted order.
func SchemeNames() []string {
	names := make([]string, 0, len(schemes))
	for n := range schemes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Blend returns the palette t of the way from p to to.
func (p Palette) Blend(to Palette, t float64) Palette {
	t = clamp01(t)
	if t == 1 {
		return to
	}
	out := Palette{Name: to.Name, Body: p.Body.Lerp(to.Body, t)}
	for i := range p.Sticker {
		out.Sticker[i] = p.Sticker[i].Lerp(to.Sticker[i], t)
	}
	return out
}

// CubieMaterial is the visual definition shared by every cubie with the
// same home cell. It is read-only once built.
type CubieMaterial struct {
	Home      Coord
	Stickered [6]bool
	Faces     [6]gg.RGBA // Indexed by CubeFace; body color where unstickered
}

// Materials caches one CubieMaterial per home lattice cell, shared across
// all instances. Definitions bake in palette colors, so they are dropped
// whenever the grid is rebuilt or a palette transition completes.
type Materials struct {
	palette    Palette
	defs       map[Coord]*CubieMaterial
	generation int
}

// NewMaterials creates an empty cache for palette p.
func NewMaterials(p Palette) *Materials {
	return &Materials{palette: p, defs: make(map[Coord]*CubieMaterial)}
}

// Palette returns the palette definitions are built from.
func (m *Materials) Palette() Palette {
	return m.palette
}

// Definition returns the shared material for home, building it on first use.
func (m *Materials) Definition(home Coord) *CubieMaterial {
	if def, ok := m.defs[home]; ok {
		return def
	}
	def := &CubieMaterial{Home: home, Stickered: Stickered(home)}
	for _, f := range CubeFaces {
		if def.Stickered[f] {
			def.Faces[f] = m.palette.Sticker[f.SolvedColor()]
		} else {
			def.Faces[f] = m.palette.Body
		}
	}
	m.defs[home] = def
	return def
}

// Invalidate disposes every cached definition.
func (m *Materials) Invalidate() {
	clear(m.defs)
	m.generation++
}

// SetPalette switches palettes and invalidates the cache.
func (m *Materials) SetPalette(p Palette) {
	m.palette = p
	m.Invalidate()
}

// Generation counts invalidations.
func (m *Materials) Generation() int {
	return m.generation
}

// Len returns the number of cached definitions.
func (m *Materials) Len() int {
	return len(m.defs)
}

// paletteTransition blends from one palette to another over
// PaletteTransitionDuration. The grid owns its timing gate.
type paletteTransition struct {
	from, to Palette
	start    time.Time
	progress float64
}

func (t *paletteTransition) advance(now time.Time) {
	if t.start.IsZero() {
		t.start = now
	}
	t.progress = clamp01(float64(now.Sub(t.start)) / float64(PaletteTransitionDuration))
}

func (t *paletteTransition) done() bool {
	return t.progress >= 1
}

func (t *paletteTransition) current() Palette {
	return t.from.Blend(t.to, t.progress)
}
