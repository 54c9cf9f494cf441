package bridge

import (
	"context"

	"github.com/ironsheep/cvbridge/internal/imaging"
)

// Crop cuts the width x height rectangle at (x, y) out of the image at
// imagePath and writes it to outPath as a quality-100 JPEG, whatever the
// extension.
//
// Resolves {uri, width, height}.
func (b *Bridge) Crop(ctx context.Context, imagePath, outPath string, x, y, width, height int, p Promise) {
	b.run(ctx, "crop", p, func() (Result, error) {
		path, err := b.outputPath(outPath, imaging.JPEG)
		if err != nil {
			return nil, err
		}

		img, err := decodeInput(imagePath)
		if err != nil {
			return nil, err
		}

		cropped, err := imaging.CropRect(img, x, y, width, height)
		if err != nil {
			return nil, classify(imagePath, err)
		}
		if err := save(path, cropped, imaging.JPEG, imaging.FileJPEGQuality); err != nil {
			return nil, err
		}

		return Result{
			"uri":    path,
			"width":  cropped.Bounds().Dx(),
			"height": cropped.Bounds().Dy(),
		}, nil
	})
}

// Combine draws secondImage, scaled per the configured layout, on a white
// canvas the size of firstImage, then draws firstImage over it. The result
// is written to outPath as a quality-100 JPEG.
//
// Resolves {uri, width, height}.
func (b *Bridge) Combine(ctx context.Context, firstImage, secondImage, outPath string, p Promise) {
	b.run(ctx, "combine", p, func() (Result, error) {
		path, err := b.outputPath(outPath, imaging.JPEG)
		if err != nil {
			return nil, err
		}

		first, err := decodeInput(firstImage)
		if err != nil {
			return nil, err
		}
		second, err := decodeInput(secondImage)
		if err != nil {
			return nil, err
		}

		combined := imaging.Compose(first, second, b.opts.Layout)
		if err := save(path, combined, imaging.JPEG, imaging.FileJPEGQuality); err != nil {
			return nil, err
		}

		return Result{
			"uri":    path,
			"width":  combined.Bounds().Dx(),
			"height": combined.Bounds().Dy(),
		}, nil
	})
}
