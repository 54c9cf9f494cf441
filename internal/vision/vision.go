package vision

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/effect"
)

var (
	// ErrKernelSize is returned when a blur kernel is not a positive odd number.
	ErrKernelSize = errors.New("gaussian kernel size must be positive and odd")

	// ErrThreshold is returned for negative Canny thresholds.
	ErrThreshold = errors.New("canny thresholds must be non-negative")

	// ErrSizeMismatch is returned when the blurred image and the original
	// passed to Edges differ in size.
	ErrSizeMismatch = errors.New("blurred image size does not match original")
)

// DefaultFill is the color contours are filled with when Params.Fill is nil.
var DefaultFill = color.NRGBA{R: 0, G: 255, B: 0, A: 255}

// Params configures the Canny stage and the overlay.
type Params struct {
	// Low and High are the hysteresis thresholds, in gradient magnitude
	// units of an 8-bit image.
	Low  float64
	High float64

	// Fill colors the filled contours. Nil means DefaultFill.
	Fill color.Color
}

// Result holds the two images an edge overlay produces.
type Result struct {
	// Overlay is a copy of the source with every contour filled.
	Overlay *image.NRGBA

	// Canny is the binary-inverted edge map: edges 0, background 255.
	Canny *image.Gray

	// Contours is the number of contours found in the edge map. The pure-Go
	// backend counts 8-connected edge components; the gocv backend counts
	// RETR_CCOMP contours, holes included, so the two may differ for the
	// same input.
	Contours int
}

// ValidateKernel checks that ksize is usable as a Gaussian kernel size.
func ValidateKernel(ksize int) error {
	if ksize <= 0 || ksize%2 == 0 {
		return fmt.Errorf("%w: %d", ErrKernelSize, ksize)
	}
	return nil
}

// SigmaForKernel returns the Gaussian sigma OpenCV derives for a kernel of
// size ksize when sigma is passed as 0.
func SigmaForKernel(ksize int) float64 {
	return 0.3*(float64(ksize-1)*0.5-1) + 0.8
}

// EdgeOverlay runs the whole pipeline on src: grayscale, blur with a
// ksize x ksize kernel, Canny, inversion and contour fill.
func EdgeOverlay(src *image.NRGBA, ksize int, p Params) (*Result, error) {
	blurred, err := Blur(src, ksize)
	if err != nil {
		return nil, err
	}
	return Edges(src, blurred, p)
}

// AsGray returns img as a single-channel image. An *image.Gray anchored at
// the origin is returned unchanged.
func AsGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) {
		return g
	}
	return toGray(effect.Grayscale(img))
}

// toGray copies img into an origin-anchored single-channel image.
func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Bounds(), img, b.Min, draw.Src)
	return g
}

func (p Params) validate() error {
	if p.Low < 0 || p.High < 0 {
		return fmt.Errorf("%w: low=%g high=%g", ErrThreshold, p.Low, p.High)
	}
	return nil
}

func (p Params) fill() color.Color {
	if p.Fill == nil {
		return DefaultFill
	}
	return p.Fill
}

func checkSameSize(original, blurred image.Image) error {
	if original.Bounds().Size() != blurred.Bounds().Size() {
		return fmt.Errorf("%w: %v vs %v", ErrSizeMismatch,
			original.Bounds().Size(), blurred.Bounds().Size())
	}
	return nil
}
