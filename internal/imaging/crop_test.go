package imaging

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

// quadrantImage creates an image with red top-left, green top-right,
// blue bottom-left and white bottom-right quadrants.
func quadrantImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.RGBA
			switch {
			case x < width/2 && y < height/2:
				c = color.RGBA{255, 0, 0, 255}
			case y < height/2:
				c = color.RGBA{0, 255, 0, 255}
			case x < width/2:
				c = color.RGBA{0, 0, 255, 255}
			default:
				c = color.RGBA{255, 255, 255, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestCropRect(t *testing.T) {
	img := quadrantImage(100, 100)

	cropped, err := CropRect(img, 50, 0, 50, 50)
	if err != nil {
		t.Fatalf("CropRect failed: %v", err)
	}

	if cropped.Bounds().Dx() != 50 || cropped.Bounds().Dy() != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", cropped.Bounds().Dx(), cropped.Bounds().Dy())
	}

	// Top-right quadrant is green
	if got := cropped.NRGBAAt(10, 10); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("pixel: got %v, want green", got)
	}
}

func TestCropRect_FullImage(t *testing.T) {
	img := fillImage(64, 48, color.RGBA{255, 0, 0, 255})

	cropped, err := CropRect(img, 0, 0, 64, 48)
	if err != nil {
		t.Fatalf("CropRect full image failed: %v", err)
	}
	if cropped.Bounds().Dx() != 64 || cropped.Bounds().Dy() != 48 {
		t.Errorf("dimensions: got %v, want 64x48", cropped.Bounds())
	}
}

func TestCropRect_OffsetBounds(t *testing.T) {
	base := quadrantImage(100, 100)
	sub := base.SubImage(image.Rect(50, 50, 100, 100)) // white quadrant, origin (50,50)

	cropped, err := CropRect(sub, 0, 0, 10, 10)
	if err != nil {
		t.Fatalf("CropRect failed: %v", err)
	}
	if got := cropped.NRGBAAt(0, 0); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("pixel: got %v, want white (coordinates are relative to bounds)", got)
	}
}

func TestCropRect_Invalid(t *testing.T) {
	img := fillImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name                string
		x, y, width, height int
		param               string
		outOfBounds         bool
	}{
		{"x negative", -1, 0, 10, 10, "x", false},
		{"y negative", 0, -1, 10, 10, "y", false},
		{"zero width", 0, 0, 0, 10, "width", false},
		{"negative height", 0, 0, 10, -5, "height", false},
		{"too wide", 50, 0, 51, 10, "width", true},
		{"too tall", 0, 95, 10, 6, "height", true},
		{"origin outside", 100, 100, 1, 1, "width", true},
		{"huge x", math.MaxInt, 0, 1, 1, "width", true},
		{"huge y", 0, math.MaxInt, 1, 1, "height", true},
		{"huge width", 1, 0, math.MaxInt, 1, "width", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CropRect(img, tt.x, tt.y, tt.width, tt.height)
			var re *RegionError
			if !errors.As(err, &re) {
				t.Fatalf("error: got %v, want *RegionError", err)
			}
			if re.Param != tt.param {
				t.Errorf("Param: got %s, want %s", re.Param, tt.param)
			}
			if re.OutOfBounds != tt.outOfBounds {
				t.Errorf("OutOfBounds: got %v, want %v", re.OutOfBounds, tt.outOfBounds)
			}
		})
	}
}
