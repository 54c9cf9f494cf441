package config

import (
	"bytes"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestParse_Defaults(t *testing.T) {
	for _, key := range []string{"CVBRIDGE_LOG_LEVEL", "CVBRIDGE_LOG_FORMAT", "CVBRIDGE_HTTP_ADDR", "CVBRIDGE_OUTPUT_DIR", "CVBRIDGE_OVERLAY_COLOR", "CVBRIDGE_COMBINE_SIZE"} {
		t.Setenv(key, "")
	}

	cfg, err := Parse(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestParse_EnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CVBRIDGE_LOG_LEVEL", "debug")
	t.Setenv("CVBRIDGE_OUTPUT_DIR", dir)
	t.Setenv("CVBRIDGE_OVERLAY_COLOR", "#ff0000")
	t.Setenv("CVBRIDGE_COMBINE_SIZE", "10x20")

	cfg, err := Parse([]string{"-http", ":9090", "-log.level", "warn"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("flag should win over env: level %q", cfg.Log.Level)
	}
	if cfg.HTTPAddr != ":9090" || cfg.OutputDir != dir || cfg.OverlayColor != "#ff0000" || cfg.CombineSize != "10x20" {
		t.Errorf("got %+v", cfg)
	}
}

func TestParse_Version(t *testing.T) {
	for _, args := range [][]string{{"--version"}, {"-v"}} {
		cfg, err := Parse(args, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("Parse(%v) failed: %v", args, err)
		}
		if !cfg.ShowVersion {
			t.Errorf("Parse(%v): ShowVersion not set", args)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	tests := []struct {
		name string
		args []string
	}{
		{"log level", []string{"-log.level", "loud"}},
		{"log format", []string{"-log.format", "xml"}},
		{"color", []string{"-overlay.color", "greenish"}},
		{"size", []string{"-combine.size", "big"}},
		{"missing output dir", []string{"-output.dir", file}},
		{"unknown flag", []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.args, &bytes.Buffer{}); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestBridgeOptions(t *testing.T) {
	cfg := Default()
	cfg.OverlayColor = "#0000ff"
	cfg.CombineSize = "30x40"
	cfg.OutputDir = "/tmp/out"

	opts, err := cfg.BridgeOptions(zerolog.Nop())
	if err != nil {
		t.Fatalf("BridgeOptions failed: %v", err)
	}
	if opts.Fill != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("fill: got %v", opts.Fill)
	}
	if opts.Layout.OverlayWidth != 30 || opts.Layout.OverlayHeight != 40 || opts.Layout.Background == nil {
		t.Errorf("layout: got %+v", opts.Layout)
	}
	if opts.OutputDir != "/tmp/out" {
		t.Errorf("output dir: got %q", opts.OutputDir)
	}
}
