//go:build !gocv

package vision

import (
	"image"
	"image/color"
	"math"
)

// canny detects edges in an already-smoothed grayscale image.
//
// The output has the same size as gray, anchored at the origin, with edge
// pixels set to 255 and everything else 0.
//
// # Algorithm
//
//  1. Gradient computation: 3x3 Sobel operators for X and Y on 0-255
//     intensities. Magnitude is |Gx| + |Gy| (the L1 norm OpenCV uses by
//     default), direction is atan2(Gy, Gx).
//
//  2. Non-maximum suppression: keep only pixels that are local maxima along
//     the gradient direction, quantised to 0, 45, 90 or 135 degrees.
//
//  3. Hysteresis: pixels above high seed edges; pixels above low join an
//     edge when they are 8-connected to a seed, directly or through other
//     such pixels.
//
// Border pixels never become edges.
func canny(gray *image.Gray, low, high float64) *image.Gray {
	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	result := image.NewGray(image.Rect(0, 0, width, height))
	if width < 3 || height < 3 {
		return result
	}

	if low > high {
		low, high = high, low
	}

	at := func(x, y int) float64 {
		x = clamp(x, 0, width-1)
		y = clamp(y, 0, height-1)
		return float64(gray.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y)
	}

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	magnitude := make([]float64, width*height)
	direction := make([]float64, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := at(x+kx, y+ky)
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y*width+x] = math.Abs(gx) + math.Abs(gy)
			direction[y*width+x] = math.Atan2(gy, gx)
		}
	}

	mag := func(x, y int) float64 { return magnitude[y*width+x] }

	// Non-maximum suppression
	suppressed := make([]float64, width*height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			angle := direction[y*width+x]
			m := mag(x, y)

			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1, n2 = mag(x-1, y), mag(x+1, y)
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1, n2 = mag(x-1, y-1), mag(x+1, y+1)
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1, n2 = mag(x, y-1), mag(x, y+1)
			default:
				n1, n2 = mag(x+1, y-1), mag(x-1, y+1)
			}

			if m >= n1 && m >= n2 {
				suppressed[y*width+x] = m
			}
		}
	}

	// Hysteresis: grow strong edges through weak ones
	stack := make([]image.Point, 0)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			if suppressed[y*width+x] > high {
				result.SetGray(x, y, color.Gray{Y: 255})
				stack = append(stack, image.Point{X: x, Y: y})
			}
		}
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p.X+dx, p.Y+dy
				if nx < 1 || nx >= width-1 || ny < 1 || ny >= height-1 {
					continue
				}
				if result.GrayAt(nx, ny).Y != 0 || suppressed[ny*width+nx] <= low {
					continue
				}
				result.SetGray(nx, ny, color.Gray{Y: 255})
				stack = append(stack, image.Point{X: nx, Y: ny})
			}
		}
	}

	return result
}

// clamp constrains an integer value to the range [lo, hi].
// Used for replicated-border handling in the Sobel convolution.
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
