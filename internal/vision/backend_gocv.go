//go:build gocv

package vision

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ironsheep/cvbridge/internal/imaging"
)

// Backend names the compiled-in implementation.
const Backend = "gocv"

// Blur converts src to grayscale and applies a ksize x ksize Gaussian blur
// with OpenCV, sigma derived from the kernel size.
func Blur(src image.Image, ksize int) (*image.Gray, error) {
	if err := ValidateKernel(ksize); err != nil {
		return nil, err
	}

	mat, err := gocv.ImageToMatRGBA(src)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image to Mat: %w", err)
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRAToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Pt(ksize, ksize), 0, 0, gocv.BorderDefault)

	return matToGray(blurred)
}

// Edges runs OpenCV Canny on blurred, finds contours with RETR_CCOMP and
// fills each of them on a copy of original.
func Edges(original *image.NRGBA, blurred *image.Gray, p Params) (*Result, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := checkSameSize(original, blurred); err != nil {
		return nil, err
	}

	src, err := gocv.ImageGrayToMatGray(blurred)
	if err != nil {
		return nil, fmt.Errorf("failed to convert blurred image to Mat: %w", err)
	}
	defer src.Close()

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(src, &edges, float32(p.Low), float32(p.High))

	inverted := gocv.NewMat()
	defer inverted.Close()
	gocv.Threshold(edges, &inverted, 1, 255, gocv.ThresholdBinaryInv)

	canvas, err := gocv.ImageToMatRGBA(original)
	if err != nil {
		return nil, fmt.Errorf("failed to convert original to Mat: %w", err)
	}
	defer canvas.Close()

	hierarchy := gocv.NewMat()
	defer hierarchy.Close()
	found := gocv.FindContoursWithParams(edges, &hierarchy, gocv.RetrievalCComp, gocv.ChainApproxSimple)
	defer found.Close()

	fill := color.RGBAModel.Convert(p.fill()).(color.RGBA)
	for i := 0; i < found.Size(); i++ {
		gocv.DrawContoursWithParams(&canvas, found, i, fill, -1, gocv.Line8, hierarchy, 0, image.Pt(0, 0))
	}

	overlayImg, err := canvas.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert overlay Mat: %w", err)
	}
	cannyImg, err := matToGray(inverted)
	if err != nil {
		return nil, err
	}

	return &Result{
		Overlay:  imaging.ToNRGBA(overlayImg),
		Canny:    cannyImg,
		Contours: found.Size(),
	}, nil
}

// matToGray converts a single-channel 8-bit Mat into an *image.Gray.
func matToGray(m gocv.Mat) (*image.Gray, error) {
	img, err := m.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert Mat to image: %w", err)
	}
	if g, ok := img.(*image.Gray); ok {
		return g, nil
	}
	b := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			g.Set(x, y, img.At(x+b.Min.X, y+b.Min.Y))
		}
	}
	return g, nil
}
