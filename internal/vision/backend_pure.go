//go:build !gocv

package vision

import (
	"image"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"

	"github.com/ironsheep/cvbridge/internal/contours"
)

// Backend names the compiled-in implementation.
const Backend = "pure-go"

// Blur converts src to grayscale and applies a ksize x ksize Gaussian blur.
//
// The kernel is separable with sigma from SigmaForKernel, applied
// horizontally then vertically. ksize 1 leaves the grayscale image
// unchanged.
func Blur(src image.Image, ksize int) (*image.Gray, error) {
	if err := ValidateKernel(ksize); err != nil {
		return nil, err
	}

	gray := effect.Grayscale(src)
	if ksize == 1 {
		return toGray(gray), nil
	}

	k := gaussianKernel(ksize)
	// Bias 0.5 rounds each pass instead of truncating
	opts := &convolution.Options{Bias: 0.5, KeepAlpha: true}
	blurred := convolution.Convolve(gray, k, opts)
	blurred = convolution.Convolve(blurred, k.Transposed(), opts)
	return toGray(blurred), nil
}

// gaussianKernel returns the normalized 1-D kernel of ksize taps.
func gaussianKernel(ksize int) convolution.Matrix {
	sigma := SigmaForKernel(ksize)
	k := convolution.NewKernel(ksize, 1)
	center := ksize / 2
	for i := range k.Matrix {
		x := float64(i - center)
		k.Matrix[i] = math.Exp(-x * x / (2 * sigma * sigma))
	}
	return k.Normalized()
}

// Edges runs Canny on blurred and fills the resulting contours on a copy of
// original.
func Edges(original *image.NRGBA, blurred *image.Gray, p Params) (*Result, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := checkSameSize(original, blurred); err != nil {
		return nil, err
	}

	edges := canny(blurred, p.Low, p.High)

	// Binary-inverted edge map: edges black on white
	inverted := segment.Threshold(effect.Invert(edges), 128)

	mask := contours.FillMask(edges)
	b := original.Bounds()
	overlay := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(overlay, overlay.Bounds(), original, b.Min, draw.Src)
	draw.DrawMask(overlay, overlay.Bounds(), image.NewUniform(p.fill()), image.Point{}, mask, image.Point{}, draw.Over)

	return &Result{
		Overlay:  overlay,
		Canny:    inverted,
		Contours: len(contours.Find(edges, 1)),
	}, nil
}
