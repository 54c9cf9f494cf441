// Package vision implements the edge-detection overlay used by the bridge.
//
// The pipeline mirrors the classic OpenCV sequence:
//
//  1. Grayscale conversion
//  2. Gaussian blur with a square, odd kernel (sigma derived from the kernel
//     size the way OpenCV does when sigma is 0)
//  3. Canny edge detection, 3x3 Sobel aperture, L1 gradient magnitude
//  4. A "canny image": the edge map binary-inverted, edges black on white
//  5. Contours of the edge map filled with a solid color on a copy of the
//     source image
//
// # Backends
//
// Two implementations share this API. The default build is pure Go, using
// github.com/anthonynsimon/bild for color conversion, blur and inversion and
// an in-package Canny. Building with the gocv tag switches to OpenCV through
// gocv.io/x/gocv:
//
//	go build -tags gocv ./...
//
// Backend reports which one was compiled in.
//
// The backends agree on the images they produce but not on Result.Contours:
// the pure-Go backend counts 8-connected edge components, while gocv counts
// RETR_CCOMP contours, which include holes.
//
// # Ownership
//
// Functions never modify their inputs. Every result is a freshly allocated
// image.
package vision
