//go:build !gocv

package vision

import (
	"image"
	"image/color"
	"testing"
)

// stepImage returns a gray image that is black left of column step and
// white from it onwards.
func stepImage(width, height, step int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := step; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	return img
}

func countEdges(edges *image.Gray) int {
	n := 0
	for _, v := range edges.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

func TestCanny_FlatImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 30, 30))
	if n := countEdges(canny(img, 50, 150)); n != 0 {
		t.Errorf("flat image: got %d edge pixels, want 0", n)
	}
}

func TestCanny_VerticalStep(t *testing.T) {
	img := stepImage(40, 20, 20)
	edges := canny(img, 50, 150)

	if edges.Bounds() != image.Rect(0, 0, 40, 20) {
		t.Fatalf("bounds: got %v", edges.Bounds())
	}

	// Every interior row has an edge at the step, nowhere far from it
	for y := 1; y < 19; y++ {
		found := false
		for x := 0; x < 40; x++ {
			if edges.GrayAt(x, y).Y == 0 {
				continue
			}
			if x < 18 || x > 21 {
				t.Fatalf("row %d: edge at x=%d, too far from step", y, x)
			}
			found = true
		}
		if !found {
			t.Errorf("row %d: no edge found at step", y)
		}
	}
}

func TestCanny_BorderNeverEdge(t *testing.T) {
	img := stepImage(10, 10, 5)
	edges := canny(img, 10, 20)

	for x := 0; x < 10; x++ {
		if edges.GrayAt(x, 0).Y != 0 || edges.GrayAt(x, 9).Y != 0 {
			t.Fatalf("border row has an edge at x=%d", x)
		}
	}
}

func TestCanny_HighThresholdSuppresses(t *testing.T) {
	img := stepImage(40, 20, 20)

	// Sobel L1 magnitude of a 0-255 step is at most 4*255
	if n := countEdges(canny(img, 2000, 3000)); n != 0 {
		t.Errorf("thresholds above max gradient: got %d edge pixels, want 0", n)
	}
}

func TestCanny_SwappedThresholds(t *testing.T) {
	img := stepImage(40, 20, 20)

	a := countEdges(canny(img, 50, 150))
	b := countEdges(canny(img, 150, 50))
	if a != b {
		t.Errorf("swapped thresholds: got %d vs %d edge pixels", a, b)
	}
}

func TestCanny_TinyImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	if got := canny(img, 1, 2); got.Bounds().Dx() != 2 {
		t.Errorf("tiny image bounds: got %v", got.Bounds())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := clamp(tt.val, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clamp(%d,%d,%d): got %d, want %d", tt.val, tt.lo, tt.hi, got, tt.want)
		}
	}
}
