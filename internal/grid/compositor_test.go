package grid

import (
	"image"
	"image/color"
	"testing"
)

// fill creates a uniform NRGBA image of the given size.
func fill(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestComposite_FullContainment(t *testing.T) {
	l := Plan(4, 2, 50, 50)
	canvas := NewCanvas(l, nil)
	src := fill(10, 10, color.NRGBA{R: 200, G: 50, B: 25, A: 255})

	// Cell index 1: origin (50, 0); image fully inside the cell.
	origin := l.CellOrigin(1)
	if err := Composite(canvas, src, image.Pt(20, 20), origin, 50, 50); err != nil {
		t.Fatalf("Composite failed: %v", err)
	}

	// Every source pixel lands at cell origin + offset, opaque.
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			got := canvas.NRGBAAt(origin.X+20+x, origin.Y+20+y)
			want := color.NRGBA{R: 200, G: 50, B: 25, A: 255}
			if got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}

	// Pixels in the cell but outside the image keep their transparency.
	for _, pt := range []image.Point{{50, 0}, {69, 19}, {80, 40}, {99, 49}} {
		if px := canvas.NRGBAAt(pt.X, pt.Y); px.A != 0 {
			t.Errorf("untouched pixel %v alpha = %d, want 0", pt, px.A)
		}
	}
}

func TestComposite_ForcesOpaqueAlpha(t *testing.T) {
	l := Plan(1, 0, 20, 20)
	canvas := NewCanvas(l, nil)
	src := fill(5, 5, color.NRGBA{R: 10, G: 20, B: 30, A: 128})

	if err := Composite(canvas, src, image.Pt(0, 0), image.Pt(0, 0), 20, 20); err != nil {
		t.Fatalf("Composite failed: %v", err)
	}

	got := canvas.NRGBAAt(2, 2)
	want := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	if got != want {
		t.Errorf("pixel (2,2) = %v, want %v (alpha forced opaque)", got, want)
	}
}

func TestComposite_PartialOverlap(t *testing.T) {
	tests := []struct {
		name    string
		offset  image.Point
		inside  image.Point // cell-local pixel that must be painted
		outside image.Point // cell-local pixel that must stay transparent
	}{
		{"hangs off top-left", image.Pt(-5, -5), image.Pt(0, 0), image.Pt(6, 6)},
		{"hangs off bottom-right", image.Pt(16, 16), image.Pt(19, 19), image.Pt(15, 15)},
		{"hangs off left only", image.Pt(-8, 5), image.Pt(1, 9), image.Pt(3, 9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Plan(1, 0, 20, 20)
			canvas := NewCanvas(l, nil)
			src := fill(10, 10, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

			if err := Composite(canvas, src, tt.offset, image.Pt(0, 0), 20, 20); err != nil {
				t.Fatalf("Composite failed: %v", err)
			}

			if px := canvas.NRGBAAt(tt.inside.X, tt.inside.Y); px.A != 255 {
				t.Errorf("pixel %v alpha = %d, want 255", tt.inside, px.A)
			}
			if px := canvas.NRGBAAt(tt.outside.X, tt.outside.Y); px.A != 0 {
				t.Errorf("pixel %v alpha = %d, want 0", tt.outside, px.A)
			}
		})
	}
}

func TestComposite_NoOverlapIsError(t *testing.T) {
	tests := []struct {
		name   string
		offset image.Point
	}{
		{"fully beyond far corner", image.Pt(60, 60)},
		{"fully above", image.Pt(0, -10)},
		{"touching edge only", image.Pt(20, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Plan(1, 0, 20, 20)
			canvas := NewCanvas(l, nil)
			src := fill(10, 10, color.NRGBA{R: 9, G: 9, B: 9, A: 255})

			if err := Composite(canvas, src, tt.offset, image.Pt(0, 0), 20, 20); err == nil {
				t.Error("expected error for empty intersection, got nil")
			}
		})
	}
}

func TestComposite_AdjacentCellsStayDisjoint(t *testing.T) {
	l := Plan(2, 2, 30, 30)
	canvas := NewCanvas(l, nil)

	left := fill(30, 30, color.NRGBA{R: 100, G: 0, B: 0, A: 255})
	right := fill(30, 30, color.NRGBA{R: 0, G: 100, B: 0, A: 255})

	if err := Composite(canvas, left, image.Pt(0, 0), l.CellOrigin(0), 30, 30); err != nil {
		t.Fatalf("left Composite failed: %v", err)
	}
	if err := Composite(canvas, right, image.Pt(0, 0), l.CellOrigin(1), 30, 30); err != nil {
		t.Fatalf("right Composite failed: %v", err)
	}

	if px := canvas.NRGBAAt(29, 15); px.R != 100 {
		t.Errorf("last column of cell 0 = %v, want red", px)
	}
	if px := canvas.NRGBAAt(30, 15); px.G != 100 {
		t.Errorf("first column of cell 1 = %v, want green", px)
	}
}

func TestComposite_ImageLargerThanCell(t *testing.T) {
	l := Plan(1, 0, 20, 20)
	canvas := NewCanvas(l, nil)
	src := fill(40, 40, color.NRGBA{R: 77, G: 77, B: 77, A: 255})

	// Centered over the cell: 10px sticks out on every side.
	if err := Composite(canvas, src, image.Pt(-10, -10), image.Pt(0, 0), 20, 20); err != nil {
		t.Fatalf("Composite failed: %v", err)
	}

	// The whole cell must be painted, and nothing outside it.
	for _, pt := range []image.Point{{0, 0}, {19, 19}, {10, 10}} {
		if px := canvas.NRGBAAt(pt.X, pt.Y); px.A != 255 {
			t.Errorf("cell pixel %v alpha = %d, want 255", pt, px.A)
		}
	}
}
