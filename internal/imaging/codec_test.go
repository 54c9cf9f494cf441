package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr error
	}{
		{"/tmp/out.png", PNG, nil},
		{"/tmp/out.PNG", PNG, nil},
		{"/tmp/out.jpg", JPEG, nil},
		{"/tmp/out.jpeg", JPEG, nil},
		{"/tmp/out.JpEg", JPEG, nil},
		{"/tmp/out", PNG, ErrNoExtension},
		{"/tmp/out.", PNG, ErrNoExtension},
		{"/tmp/out.gif", PNG, ErrUnsupportedFormat},
		{"/tmp/out.webp", PNG, ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error: got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("format: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFormat_Metadata(t *testing.T) {
	if PNG.Extension() != "png" || PNG.MimeType() != "image/png" || PNG.String() != "png" {
		t.Errorf("PNG metadata: %s %s %s", PNG.Extension(), PNG.MimeType(), PNG)
	}
	if JPEG.Extension() != "jpg" || JPEG.MimeType() != "image/jpeg" || JPEG.String() != "jpeg" {
		t.Errorf("JPEG metadata: %s %s %s", JPEG.Extension(), JPEG.MimeType(), JPEG)
	}
}

func TestEncode(t *testing.T) {
	img := fillImage(16, 8, color.RGBA{10, 200, 30, 255})

	t.Run("png", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Encode(&buf, img, PNG, 0); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		decoded, err := png.Decode(&buf)
		if err != nil {
			t.Fatalf("output is not PNG: %v", err)
		}
		if decoded.Bounds().Dx() != 16 || decoded.Bounds().Dy() != 8 {
			t.Errorf("dimensions: got %v", decoded.Bounds())
		}
	})

	t.Run("jpeg", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Encode(&buf, img, JPEG, MatJPEGQuality); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if _, err := jpeg.Decode(&buf); err != nil {
			t.Fatalf("output is not JPEG: %v", err)
		}
	})
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	img := fillImage(30, 20, color.RGBA{255, 255, 0, 255})

	path := filepath.Join(dir, "out.jpg")
	if err := Save(path, img, JPEG, FileJPEGQuality); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	decoded, err := Decode(path)
	if err != nil {
		t.Fatalf("saved file does not decode: %v", err)
	}
	if decoded.Bounds().Dx() != 30 || decoded.Bounds().Dy() != 20 {
		t.Errorf("dimensions: got %v, want 30x20", decoded.Bounds())
	}
}

func TestSave_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "out.png")

	err := Save(path, image.NewNRGBA(image.Rect(0, 0, 2, 2)), PNG, 0)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error should wrap fs.ErrNotExist, got %v", err)
	}
	if _, statErr := os.Stat(path); statErr == nil {
		t.Error("no file should have been written")
	}
}
