package bridge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
	"testing"

	"github.com/ironsheep/cvbridge/internal/imaging"
	"github.com/ironsheep/cvbridge/internal/mats"
	"github.com/ironsheep/cvbridge/internal/vision"
)

func TestClassify(t *testing.T) {
	const path = "/tmp/photo.png"

	tests := []struct {
		name     string
		err      error
		wantCode string
		wantMsg  string
	}{
		{
			name:     "not exist",
			err:      fmt.Errorf("failed to open image: %w", &fs.PathError{Op: "open", Path: path, Err: syscall.ENOENT}),
			wantCode: CodeNotFound,
			wantMsg:  "ENOENT: no such file or directory, open '/tmp/photo.png'",
		},
		{
			name:     "is directory",
			err:      fmt.Errorf("failed to create output: %w", &fs.PathError{Op: "open", Path: path, Err: syscall.EISDIR}),
			wantCode: CodeIsDirectory,
			wantMsg:  "EISDIR: illegal operation on a directory, open '/tmp/photo.png'",
		},
		{
			name:     "decode",
			err:      fmt.Errorf("%w %s: bad header", imaging.ErrDecode, path),
			wantCode: CodeGeneric,
			wantMsg:  "Decoding error unable to decode: /tmp/photo.png",
		},
		{
			name:     "unsupported format",
			err:      fmt.Errorf("%w: gif", imaging.ErrUnsupportedFormat),
			wantCode: CodeInvalid,
			wantMsg:  "EINVAL: invalid parameter, read '/tmp/photo.png'",
		},
		{
			name:     "no extension",
			err:      imaging.ErrNoExtension,
			wantCode: CodeInvalid,
			wantMsg:  "EINVAL: invalid parameter, read '/tmp/photo.png'",
		},
		{
			name:     "unknown handle",
			err:      fmt.Errorf("mat 9: %w", mats.ErrUnknownHandle),
			wantCode: CodeInvalid,
			wantMsg:  "EINVAL: invalid parameter, read 'matIndex'",
		},
		{
			name:     "kernel size",
			err:      fmt.Errorf("%w: 4", vision.ErrKernelSize),
			wantCode: CodeInvalid,
			wantMsg:  "EINVAL: invalid parameter, read 'gaussian'",
		},
		{
			name:     "size mismatch",
			err:      vision.ErrSizeMismatch,
			wantCode: CodeInvalid,
			wantMsg:  "EINVAL: invalid parameter, read 'blurredIndex'",
		},
		{
			name:     "malformed region",
			err:      &imaging.RegionError{Param: "x", Message: "x must be >= 0"},
			wantCode: CodeInvalid,
			wantMsg:  "EINVAL: invalid parameter, read 'x'",
		},
		{
			name:     "region out of bounds",
			err:      &imaging.RegionError{Param: "width", OutOfBounds: true, Message: "x + width must be <= bitmap.width()"},
			wantCode: CodeGeneric,
			wantMsg:  "x + width must be <= bitmap.width()",
		},
		{
			name:     "already coded",
			err:      fmt.Errorf("wrapped: %w", errInvalidParam("outPath")),
			wantCode: CodeInvalid,
			wantMsg:  "EINVAL: invalid parameter, read 'outPath'",
		},
		{
			name:     "generic",
			err:      errors.New("disk on fire"),
			wantCode: CodeGeneric,
			wantMsg:  "disk on fire",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(path, tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("code: got %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMsg {
				t.Errorf("message: got %q, want %q", got.Message, tt.wantMsg)
			}
		})
	}
}

func TestClassify_RealFilesystemErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := os.Open(dir + "/missing.png")
	if got := classify("missing.png", err); got.Code != CodeNotFound {
		t.Errorf("missing file: got %q", got.Code)
	}

	_, err = os.Create(dir)
	if got := classify(dir, err); got.Code != CodeIsDirectory {
		t.Errorf("create on directory: got %q (%v)", got.Code, err)
	}
}

func TestError_Error(t *testing.T) {
	e := errNotFound("a.png")
	if e.Error() != e.Message {
		t.Errorf("Error() should return the message, got %q", e.Error())
	}
}
