// Package config resolves cvbridge settings from flags and CVBRIDGE_*
// environment variables. Flags win over the environment.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ironsheep/cvbridge/internal/bridge"
	"github.com/ironsheep/cvbridge/internal/imaging"
	"github.com/ironsheep/cvbridge/internal/logging"
)

// Config holds the process settings.
type Config struct {
	Log logging.Config

	// HTTPAddr enables the HTTP API when non-empty.
	HTTPAddr string

	// OutputDir receives generated output files for calls with empty paths.
	OutputDir string

	// OverlayColor is the contour fill as #RRGGBB.
	OverlayColor string

	// CombineSize is the WxH the second combine image is scaled to.
	CombineSize string

	ShowVersion bool
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Log:          logging.Config{Level: "info", Format: "json"},
		OverlayColor: "#00FF00",
		CombineSize:  "170x510",
	}
}

// Parse reads flags from args, falling back to the environment and then to
// Default for anything not set.
func Parse(args []string, output io.Writer) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("cvbridge", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {}

	var (
		logLevel  = fs.String("log.level", envOr("CVBRIDGE_LOG_LEVEL", cfg.Log.Level), "Log level: debug|info|warn|error")
		logFormat = fs.String("log.format", envOr("CVBRIDGE_LOG_FORMAT", cfg.Log.Format), "Log format: json|console")
		httpAddr  = fs.String("http", envOr("CVBRIDGE_HTTP_ADDR", ""), "Serve the HTTP API on this address (e.g. :8080)")
		outputDir = fs.String("output.dir", envOr("CVBRIDGE_OUTPUT_DIR", ""), "Directory for generated output files when a call passes an empty path")
		overlay   = fs.String("overlay.color", envOr("CVBRIDGE_OVERLAY_COLOR", cfg.OverlayColor), "Contour fill color (#RRGGBB)")
		combine   = fs.String("combine.size", envOr("CVBRIDGE_COMBINE_SIZE", cfg.CombineSize), "Size the second combine image is scaled to (WxH)")
		version   = fs.Bool("version", false, "Print version information")
	)
	fs.BoolVar(version, "v", false, "Print version information")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.Log.Level = strings.TrimSpace(*logLevel)
	cfg.Log.Format = strings.TrimSpace(*logFormat)
	cfg.HTTPAddr = strings.TrimSpace(*httpAddr)
	cfg.OutputDir = strings.TrimSpace(*outputDir)
	cfg.OverlayColor = strings.TrimSpace(*overlay)
	cfg.CombineSize = strings.TrimSpace(*combine)
	cfg.ShowVersion = *version

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log.level: %q", cfg.Log.Level)
	}

	switch strings.ToLower(cfg.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log.format: %q", cfg.Log.Format)
	}

	if _, err := bridge.ParseColor(cfg.OverlayColor); err != nil {
		return err
	}
	if _, _, err := bridge.ParseSize(cfg.CombineSize); err != nil {
		return err
	}

	if cfg.OutputDir != "" {
		info, err := os.Stat(cfg.OutputDir)
		if err != nil {
			return fmt.Errorf("output.dir: %w", err)
		}
		if !info.IsDir() {
			return errors.New("output.dir must be a directory")
		}
	}
	return nil
}

// BridgeOptions builds bridge options from cfg. cfg must have passed Parse.
func (cfg Config) BridgeOptions(log zerolog.Logger) (bridge.Options, error) {
	opts := bridge.DefaultOptions()
	opts.OutputDir = cfg.OutputDir
	opts.Logger = log

	fill, err := bridge.ParseColor(cfg.OverlayColor)
	if err != nil {
		return bridge.Options{}, err
	}
	opts.Fill = fill

	w, h, err := bridge.ParseSize(cfg.CombineSize)
	if err != nil {
		return bridge.Options{}, err
	}
	opts.Layout = imaging.Layout{
		OverlayWidth:  w,
		OverlayHeight: h,
		Background:    opts.Layout.Background,
	}
	return opts, nil
}

func envOr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
