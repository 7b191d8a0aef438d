package cubegrid

import (
	"math"
	"reflect"
	"testing"
)

func TestNewLayoutMetrics(t *testing.T) {
	l := NewLayout(CubeSide, CubieGap)

	// The 45 degree yaw makes the outline exactly a cell diagonal wide.
	if want := 3 * math.Sqrt2; math.Abs(l.Width-want) > 1e-9 {
		t.Errorf("Width = %v, want %v", l.Width, want)
	}
	if math.Abs(l.TopWidth-l.Width) > 1e-9 {
		t.Errorf("TopWidth = %v, want Width %v", l.TopWidth, l.Width)
	}
	if l.SpacingX != l.Width {
		t.Errorf("SpacingX = %v, want %v", l.SpacingX, l.Width)
	}
	if l.ShiftX != l.TopWidth/2 {
		t.Errorf("ShiftX = %v, want %v", l.ShiftX, l.TopWidth/2)
	}
	if l.SpacingY != l.Height-l.TopHeight/2 {
		t.Errorf("SpacingY = %v, want %v", l.SpacingY, l.Height-l.TopHeight/2)
	}
	if l.TopHeight <= 0 || l.TopHeight >= l.Height {
		t.Errorf("TopHeight = %v out of range (Height %v)", l.TopHeight, l.Height)
	}
}

func TestLayoutPosition(t *testing.T) {
	l := NewLayout(CubeSide, CubieGap)
	tests := []struct {
		row, col int
		x, y     float64
	}{
		{0, 0, 0, 0},
		{0, 1, l.SpacingX, 0},
		{1, 0, l.ShiftX, -l.SpacingY},
		{-2, 3, 3*l.SpacingX - 2*l.ShiftX, 2 * l.SpacingY},
	}
	for _, tt := range tests {
		x, y := l.Position(tt.row, tt.col)
		if math.Abs(x-tt.x) > 1e-9 || math.Abs(y-tt.y) > 1e-9 {
			t.Errorf("Position(%d,%d) = (%v,%v), want (%v,%v)", tt.row, tt.col, x, y, tt.x, tt.y)
		}
	}
}

func TestFrustum(t *testing.T) {
	l := NewLayout(CubeSide, CubieGap)
	halfW, halfH := l.Frustum(Viewport{Width: 1600, Height: 800}, 4)
	if math.Abs(halfH-2*l.SpacingY) > 1e-9 {
		t.Errorf("halfH = %v, want %v", halfH, 2*l.SpacingY)
	}
	if math.Abs(halfW-2*halfH) > 1e-9 {
		t.Errorf("halfW = %v, want %v", halfW, 2*halfH)
	}
}

func TestSlotsCoverVisibleArea(t *testing.T) {
	l := NewLayout(CubeSide, CubieGap)
	for _, gridSize := range []int{1, 3, 5, 12} {
		halfW, halfH := l.Frustum(Viewport{Width: 1920, Height: 1080}, gridSize)
		slots := l.Slots(halfW, halfH)
		if len(slots) == 0 {
			t.Fatalf("gridSize %d: no slots", gridSize)
		}

		padW := halfW + slotPadding*l.Width
		padH := halfH + slotPadding*l.Width
		for _, s := range slots {
			if math.Abs(s.X) > padW || math.Abs(s.Y) > padH {
				t.Errorf("gridSize %d: slot %+v outside padded bounds", gridSize, s)
			}
		}

		// Every visible point lies within half a cell of some slot center.
		const steps = 40
		for i := 0; i <= steps; i++ {
			for j := 0; j <= steps; j++ {
				x := -halfW + 2*halfW*float64(i)/steps
				y := -halfH + 2*halfH*float64(j)/steps
				if !covered(l, slots, x, y) {
					t.Fatalf("gridSize %d: point (%v,%v) not covered", gridSize, x, y)
				}
			}
		}
	}
}

func covered(l Layout, slots []Slot, x, y float64) bool {
	for _, s := range slots {
		if math.Abs(s.X-x) <= l.SpacingX/2+1e-9 && math.Abs(s.Y-y) <= l.SpacingY/2+1e-9 {
			return true
		}
	}
	return false
}

func TestSlotsRowMajorAndDeterministic(t *testing.T) {
	l := NewLayout(CubeSide, CubieGap)
	halfW, halfH := l.Frustum(DefaultViewport, DefaultGridSize)

	a := l.Slots(halfW, halfH)
	b := l.Slots(halfW, halfH)
	if !reflect.DeepEqual(a, b) {
		t.Error("Slots should be deterministic")
	}

	for i := 1; i < len(a); i++ {
		prev, cur := a[i-1], a[i]
		if cur.Row < prev.Row || (cur.Row == prev.Row && cur.Col <= prev.Col) {
			t.Fatalf("slots out of row-major order at %d: %+v then %+v", i, prev, cur)
		}
	}
}

func TestSlotsGrowWithGridSize(t *testing.T) {
	l := NewLayout(CubeSide, CubieGap)
	count := func(n int) int {
		return len(l.Slots(l.Frustum(DefaultViewport, n)))
	}
	if count(10) <= count(3) {
		t.Errorf("grid size 10 gives %d slots, grid size 3 gives %d", count(10), count(3))
	}
}

func TestIsoRotationShowsThreeFaces(t *testing.T) {
	q := IsoRotation()
	visible := 0
	for _, f := range CubeFaces {
		if q.Rotate(f.Normal()).Z > 1e-9 {
			visible++
		}
	}
	if visible != 3 {
		t.Errorf("%d faces face the camera, want 3", visible)
	}
	if q.Rotate(CubeFaceU.Normal()).Z <= 0 {
		t.Error("top face should face the camera")
	}
}
