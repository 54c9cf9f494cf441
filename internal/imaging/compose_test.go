package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestLayout_OverlayOffset(t *testing.T) {
	l := DefaultLayout()

	tests := []struct {
		name          string
		width, height int
		want          image.Point
	}{
		{"portrait canvas", 400, 600, image.Pt(115, 96)},
		{"odd size", 401, 601, image.Pt(115, 96)},
		{"small canvas", 100, 100, image.Pt(-35, -154)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.OverlayOffset(tt.width, tt.height); got != tt.want {
				t.Errorf("offset: got %v, want %v", got, tt.want)
			}
		})
	}
}

func colorClose(a, b color.NRGBA, tol int) bool {
	diff := func(x, y uint8) int {
		d := int(x) - int(y)
		if d < 0 {
			return -d
		}
		return d
	}
	return diff(a.R, b.R) <= tol && diff(a.G, b.G) <= tol && diff(a.B, b.B) <= tol && diff(a.A, b.A) <= tol
}

func TestCompose(t *testing.T) {
	// Transparent base with an opaque red square in the top-left corner
	base := image.NewNRGBA(image.Rect(0, 0, 400, 600))
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			base.SetNRGBA(x, y, color.NRGBA{255, 0, 0, 255})
		}
	}
	overlay := fillImage(20, 60, color.RGBA{0, 0, 255, 255})

	out := Compose(base, overlay, DefaultLayout())

	if out.Bounds().Dx() != 400 || out.Bounds().Dy() != 600 {
		t.Fatalf("dimensions: got %v, want 400x600", out.Bounds())
	}

	tests := []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{"base drawn on top", 10, 10, color.NRGBA{255, 0, 0, 255}},
		{"overlay centre", 200, 300, color.NRGBA{0, 0, 255, 255}},
		{"background left of overlay", 50, 300, color.NRGBA{255, 255, 255, 255}},
		{"background above overlay", 200, 60, color.NRGBA{255, 255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := out.NRGBAAt(tt.x, tt.y)
			if !colorClose(got, tt.want, 2) {
				t.Errorf("pixel (%d,%d): got %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestCompose_OpaqueBaseHidesOverlay(t *testing.T) {
	base := fillImage(300, 300, color.RGBA{0, 255, 0, 255})
	overlay := fillImage(10, 10, color.RGBA{0, 0, 255, 255})

	out := Compose(base, overlay, DefaultLayout())

	if got := out.NRGBAAt(150, 150); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("pixel: got %v, want base green", got)
	}
}

func TestCompose_CustomLayout(t *testing.T) {
	base := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	overlay := fillImage(5, 5, color.RGBA{0, 0, 255, 255})

	l := Layout{OverlayWidth: 20, OverlayHeight: 20, Background: color.Black}
	out := Compose(base, overlay, l)

	// Offset: x = 50-10 = 40, y = floor(50 - 8) = 42
	if got := out.NRGBAAt(45, 50); !colorClose(got, color.NRGBA{0, 0, 255, 255}, 2) {
		t.Errorf("overlay pixel: got %v, want blue", got)
	}
	if got := out.NRGBAAt(5, 5); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("background pixel: got %v, want black", got)
	}
}
