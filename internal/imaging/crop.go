package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// RegionError describes a crop rectangle that cannot be applied.
//
// Param names the offending argument ("x", "y", "width" or "height").
// OutOfBounds distinguishes a well-formed rectangle that does not fit the
// image from a malformed one (negative origin, non-positive size).
type RegionError struct {
	Param       string
	OutOfBounds bool
	Message     string
}

func (e *RegionError) Error() string {
	return e.Message
}

// CropRect extracts the width x height region whose top-left corner is (x, y).
//
// The rectangle must lie entirely inside the image: x, y >= 0, width and
// height > 0, x+width <= image width and y+height <= image height.
func CropRect(img image.Image, x, y, width, height int) (*image.NRGBA, error) {
	if err := ValidateRect(img.Bounds(), x, y, width, height); err != nil {
		return nil, err
	}

	min := img.Bounds().Min
	rect := image.Rect(x, y, x+width, y+height).Add(min)
	return imaging.Crop(img, rect), nil
}

// ValidateRect checks a crop rectangle against image bounds. Comparisons are
// written so that huge offsets cannot overflow.
func ValidateRect(bounds image.Rectangle, x, y, width, height int) error {
	switch {
	case x < 0:
		return &RegionError{Param: "x", Message: "x must be >= 0"}
	case y < 0:
		return &RegionError{Param: "y", Message: "y must be >= 0"}
	case width <= 0:
		return &RegionError{Param: "width", Message: "width must be > 0"}
	case height <= 0:
		return &RegionError{Param: "height", Message: "height must be > 0"}
	case x > bounds.Dx()-width:
		return &RegionError{
			Param:       "width",
			OutOfBounds: true,
			Message:     fmt.Sprintf("x + width must be <= bitmap.width() (%d + %d > %d)", x, width, bounds.Dx()),
		}
	case y > bounds.Dy()-height:
		return &RegionError{
			Param:       "height",
			OutOfBounds: true,
			Message:     fmt.Sprintf("y + height must be <= bitmap.height() (%d + %d > %d)", y, height, bounds.Dy()),
		}
	}
	return nil
}
