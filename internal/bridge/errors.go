package bridge

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"

	"github.com/ironsheep/cvbridge/internal/imaging"
	"github.com/ironsheep/cvbridge/internal/mats"
	"github.com/ironsheep/cvbridge/internal/vision"
)

// Rejection codes.
const (
	CodeNotFound    = "ENOENT"
	CodeIsDirectory = "EISDIR"
	CodeInvalid     = "EINVAL"
	CodeGeneric     = "EGENERIC"
)

// Error is a coded rejection.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func errNotFound(path string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("ENOENT: no such file or directory, open '%s'", path),
	}
}

func errIsDirectory(path string) *Error {
	return &Error{
		Code:    CodeIsDirectory,
		Message: fmt.Sprintf("EISDIR: illegal operation on a directory, open '%s'", path),
	}
}

func errInvalidParam(param string) *Error {
	return &Error{
		Code:    CodeInvalid,
		Message: fmt.Sprintf("EINVAL: invalid parameter, read '%s'", param),
	}
}

func errGeneric(message string) *Error {
	return &Error{Code: CodeGeneric, Message: message}
}

// classify maps an error raised while working on path to a rejection.
func classify(path string, err error) *Error {
	var coded *Error
	var region *imaging.RegionError

	switch {
	case errors.As(err, &coded):
		return coded
	case errors.Is(err, fs.ErrNotExist):
		return errNotFound(path)
	case errors.Is(err, syscall.EISDIR):
		return errIsDirectory(path)
	case errors.Is(err, imaging.ErrDecode):
		return errGeneric("Decoding error unable to decode: " + path)
	case errors.Is(err, imaging.ErrNoExtension), errors.Is(err, imaging.ErrUnsupportedFormat):
		return errInvalidParam(path)
	case errors.Is(err, mats.ErrUnknownHandle):
		return errInvalidParam("matIndex")
	case errors.Is(err, vision.ErrKernelSize):
		return errInvalidParam("gaussian")
	case errors.Is(err, vision.ErrThreshold):
		return errInvalidParam("min")
	case errors.Is(err, vision.ErrSizeMismatch):
		return errInvalidParam("blurredIndex")
	case errors.As(err, &region) && !region.OutOfBounds:
		return errInvalidParam(region.Param)
	default:
		return errGeneric(err.Error())
	}
}
