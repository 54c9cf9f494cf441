package bridge

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ironsheep/cvbridge/internal/imaging"
	"github.com/ironsheep/cvbridge/internal/logging"
	"github.com/ironsheep/cvbridge/internal/mats"
)

// Bridge runs image operations against its own matrix registry.
type Bridge struct {
	opts Options
	mats *mats.Registry
	log  zerolog.Logger
}

// New creates a Bridge. Zero-valued Fill and Layout fields fall back to
// DefaultOptions.
func New(opts Options) *Bridge {
	def := DefaultOptions()
	if opts.Fill == nil {
		opts.Fill = def.Fill
	}
	if opts.Layout.OverlayWidth == 0 && opts.Layout.OverlayHeight == 0 && opts.Layout.Background == nil {
		opts.Layout = def.Layout
	}

	return &Bridge{
		opts: opts,
		mats: mats.NewRegistry(),
		log:  logging.Component(opts.Logger, "bridge"),
	}
}

// Stats reports registry usage.
func (b *Bridge) Stats() mats.Stats {
	return b.mats.Stats()
}

// Close releases every registered matrix.
func (b *Bridge) Close() {
	b.mats.Clear()
}

// run settles p with the outcome of fn. A cancelled ctx or a panic inside fn
// rejects with EGENERIC.
func (b *Bridge) run(ctx context.Context, op string, p Promise, fn func() (Result, error)) {
	log := b.log.With().Str("op", op).Logger()

	if err := ctx.Err(); err != nil {
		b.reject(log, p, errGeneric(err.Error()))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("operation panicked")
			b.reject(log, p, errGeneric(fmt.Sprint(r)))
		}
	}()

	log.Debug().Msg("start")
	result, err := fn()
	if err != nil {
		var coded *Error
		if !errors.As(err, &coded) {
			coded = errGeneric(err.Error())
		}
		b.reject(log, p, coded)
		return
	}

	log.Info().Fields(map[string]interface{}(result)).Msg("resolved")
	p.Resolve(result)
}

func (b *Bridge) reject(log zerolog.Logger, p Promise, e *Error) {
	log.Warn().Str("code", e.Code).Str("reason", e.Message).Msg("rejected")
	p.Reject(e.Code, e.Message)
}

// checkInput validates a path the operation reads from.
func checkInput(path string) error {
	if path == "" {
		return errInvalidParam(path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return classify(path, err)
	}
	if info.IsDir() {
		return errIsDirectory(path)
	}
	return nil
}

// decodeInput validates and decodes an input image file.
func decodeInput(path string) (*image.NRGBA, error) {
	if err := checkInput(path); err != nil {
		return nil, err
	}
	img, err := imaging.DecodeNRGBA(path)
	if err != nil {
		return nil, classify(path, err)
	}
	return img, nil
}

// outputPath resolves the path an operation writes to. An empty path is
// replaced with a generated name under OutputDir when one is configured.
func (b *Bridge) outputPath(path string, f imaging.Format) (string, error) {
	if path == "" {
		if b.opts.OutputDir == "" {
			return "", errInvalidParam(path)
		}
		path = filepath.Join(b.opts.OutputDir, uuid.NewString()+"."+f.Extension())
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return "", errIsDirectory(path)
	}
	return path, nil
}

// matOutput resolves a matrix export path and the format its extension
// selects.
func (b *Bridge) matOutput(path string) (string, imaging.Format, error) {
	resolved, err := b.outputPath(path, imaging.PNG)
	if err != nil {
		return "", 0, err
	}
	f, err := imaging.FormatFromPath(resolved)
	if err != nil {
		return "", 0, classify(resolved, err)
	}
	return resolved, f, nil
}

// save writes img to path, mapping write failures to rejections.
func save(path string, img image.Image, f imaging.Format, quality int) error {
	if err := imaging.Save(path, img, f, quality); err != nil {
		return classify(path, err)
	}
	return nil
}
