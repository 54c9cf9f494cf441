package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Layout controls how Compose places the secondary image.
type Layout struct {
	// OverlayWidth and OverlayHeight are the size the secondary image is
	// scaled to before drawing.
	OverlayWidth  int
	OverlayHeight int

	// Background fills the canvas before anything is drawn.
	Background color.Color
}

// DefaultLayout returns the 170x510 white-background layout.
func DefaultLayout() Layout {
	return Layout{
		OverlayWidth:  170,
		OverlayHeight: 510,
		Background:    color.White,
	}
}

// OverlayOffset returns where the scaled secondary image's top-left corner
// lands on a canvas of the given size: centred horizontally, and shifted up
// from centre by the overlay height divided by 2.5.
func (l Layout) OverlayOffset(canvasWidth, canvasHeight int) image.Point {
	x := canvasWidth/2 - l.OverlayWidth/2
	y := math.Floor(float64(canvasHeight/2) - float64(l.OverlayHeight)/2.5)
	return image.Pt(x, int(y))
}

// Compose draws overlay, scaled per the layout, onto a canvas the size of
// base, then draws base over it at the origin.
//
// base is alpha-composited, so the secondary image shows through wherever
// base is transparent. The result always has base's dimensions.
func Compose(base, overlay image.Image, l Layout) *image.NRGBA {
	bg := l.Background
	if bg == nil {
		bg = color.White
	}

	b := base.Bounds()
	canvas := imaging.New(b.Dx(), b.Dy(), bg)

	if l.OverlayWidth > 0 && l.OverlayHeight > 0 {
		scaled := imaging.Resize(overlay, l.OverlayWidth, l.OverlayHeight, imaging.Linear)
		canvas = imaging.Overlay(canvas, scaled, l.OverlayOffset(b.Dx(), b.Dy()), 1.0)
	}

	return imaging.Overlay(canvas, base, image.Pt(0, 0), 1.0)
}
