package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif" // Register GIF format decoder
	"os"

	"github.com/disintegration/imaging"
)

// ErrDecode is returned when a file exists but cannot be decoded as an image.
var ErrDecode = errors.New("unable to decode image")

// Decode reads and decodes the image file at path.
//
// JPEG EXIF orientation is applied, so a photo taken in portrait is returned
// upright regardless of how the camera stored it.
//
// # Errors
//
//   - Filesystem errors from opening the file are wrapped unchanged, so
//     errors.Is(err, fs.ErrNotExist) works for missing files.
//   - ErrDecode (wrapped) when the contents are not a supported image.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrDecode, path, err)
	}
	return img, nil
}

// DecodeNRGBA decodes the file at path into an origin-anchored NRGBA image.
func DecodeNRGBA(path string) (*image.NRGBA, error) {
	img, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return ToNRGBA(img), nil
}

// ToNRGBA returns img as an origin-anchored *image.NRGBA, copying only when
// the input is not already in that form.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}
