package bridge

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"

	"github.com/ironsheep/cvbridge/internal/imaging"
	"github.com/ironsheep/cvbridge/internal/vision"
)

// Options configures a Bridge.
type Options struct {
	// OutputDir, when set, is where output files are created for calls that
	// pass an empty output path. Empty means such calls are rejected.
	OutputDir string

	// Fill is the contour fill color used by EdgeOverlay and Canny.
	Fill color.Color

	// Layout controls Combine.
	Layout imaging.Layout

	// Logger receives one entry per operation outcome.
	Logger zerolog.Logger
}

// DefaultOptions returns green contour fill, the 170x510 combine layout and
// a no-op logger.
func DefaultOptions() Options {
	return Options{
		Fill:   vision.DefaultFill,
		Layout: imaging.DefaultLayout(),
		Logger: zerolog.Nop(),
	}
}

// ParseColor parses a "#RRGGBB" or "#RGB" hex color.
func ParseColor(hex string) (color.Color, error) {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// ParseSize parses a "WxH" size such as "170x510".
func ParseSize(s string) (width, height int, err error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q: want WxH", s)
	}
	width, err = strconv.Atoi(parts[0])
	if err != nil || width <= 0 {
		return 0, 0, fmt.Errorf("invalid width in %q", s)
	}
	height, err = strconv.Atoi(parts[1])
	if err != nil || height <= 0 {
		return 0, 0, fmt.Errorf("invalid height in %q", s)
	}
	return width, height, nil
}
