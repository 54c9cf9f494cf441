package bridge

import (
	"context"

	"github.com/ironsheep/cvbridge/internal/imaging"
)

// channels is the channel count of every registered matrix (8-bit RGBA).
const channels = 4

// ImageToMat decodes the image at inPath and registers it as a matrix.
//
// Resolves {cols, rows, matIndex}.
func (b *Bridge) ImageToMat(ctx context.Context, inPath string, p Promise) {
	b.run(ctx, "image_to_mat", p, func() (Result, error) {
		img, err := decodeInput(inPath)
		if err != nil {
			return nil, err
		}

		h := b.mats.Add(img)
		return Result{
			"cols":     img.Bounds().Dx(),
			"rows":     img.Bounds().Dy(),
			"matIndex": h,
		}, nil
	})
}

// MatToImage writes a registered matrix to outPath. The extension selects
// PNG or JPEG.
//
// Resolves {width, height, uri}.
func (b *Bridge) MatToImage(ctx context.Context, matIndex int, outPath string, p Promise) {
	b.run(ctx, "mat_to_image", p, func() (Result, error) {
		path, format, err := b.matOutput(outPath)
		if err != nil {
			return nil, err
		}

		mat, err := b.mats.Get(matIndex)
		if err != nil {
			return nil, classify(path, err)
		}

		if err := save(path, mat, format, imaging.MatJPEGQuality); err != nil {
			return nil, err
		}

		return Result{
			"width":  mat.Bounds().Dx(),
			"height": mat.Bounds().Dy(),
			"uri":    path,
		}, nil
	})
}

// MatInfo describes a registered matrix.
//
// Resolves {cols, rows, matIndex, channels}.
func (b *Bridge) MatInfo(ctx context.Context, matIndex int, p Promise) {
	b.run(ctx, "mat_info", p, func() (Result, error) {
		mat, err := b.mats.Get(matIndex)
		if err != nil {
			return nil, classify("", err)
		}
		return Result{
			"cols":     mat.Bounds().Dx(),
			"rows":     mat.Bounds().Dy(),
			"matIndex": matIndex,
			"channels": channels,
		}, nil
	})
}

// ReleaseMat drops a registered matrix. The handle is not reused.
//
// Resolves {matIndex, released}.
func (b *Bridge) ReleaseMat(ctx context.Context, matIndex int, p Promise) {
	b.run(ctx, "mat_release", p, func() (Result, error) {
		if err := b.mats.Release(matIndex); err != nil {
			return nil, classify("", err)
		}
		return Result{
			"matIndex": matIndex,
			"released": true,
		}, nil
	})
}
