package imaging

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Format is an output encoding supported by the bridge.
type Format int

const (
	PNG Format = iota
	JPEG
)

// Default JPEG qualities used by the bridge operations.
const (
	// MatJPEGQuality is used when exporting registered matrices.
	MatJPEGQuality = 80

	// FileJPEGQuality is used for crop and combine results.
	FileJPEGQuality = 100
)

var (
	// ErrNoExtension is returned when an output path has no file extension.
	ErrNoExtension = errors.New("output path has no file extension")

	// ErrUnsupportedFormat is returned for extensions other than png, jpg and jpeg.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// String returns the lowercase format name.
func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	default:
		return "unknown"
	}
}

// Extension returns the canonical file extension for f, without the dot.
func (f Format) Extension() string {
	if f == JPEG {
		return "jpg"
	}
	return "png"
}

// MimeType returns the MIME type for f.
func (f Format) MimeType() string {
	if f == JPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// FormatFromPath picks the output format from the extension of path.
// Matching is case-insensitive; only png, jpg and jpeg are accepted.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return PNG, fmt.Errorf("%w: %s", ErrNoExtension, path)
	}

	switch strings.ToLower(ext) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	default:
		return PNG, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// Encode writes img to w in the given format. quality applies to JPEG only
// and is clamped to 1-100 by the encoder.
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	var err error
	switch f {
	case JPEG:
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	default:
		err = imaging.Encode(w, img, imaging.PNG)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", f, err)
	}
	return nil
}

// Save encodes img into a newly created (or truncated) file at path.
//
// Filesystem errors from creating the file are wrapped unchanged so callers
// can test them with errors.Is.
func Save(path string, img image.Image, f Format, quality int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}

	if err := Encode(file, img, f, quality); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	return nil
}
