package bridge

import (
	"context"
	"image"

	"github.com/ironsheep/cvbridge/internal/imaging"
	"github.com/ironsheep/cvbridge/internal/vision"
)

// EdgeOverlay runs grayscale, Gaussian blur, Canny and contour fill on a
// copy of a registered matrix. The filled copy is written to outPath and
// the inverted edge map to cannyPath. The registered matrix is unchanged.
//
// Each output is encoded in the format of its own extension, so cannyPath
// needs a .png, .jpg or .jpeg extension just like outPath; a cannyPath
// without one is rejected with EINVAL rather than written in outPath's
// format.
//
// Resolves {width, height, uri, cannyUri, contours}.
func (b *Bridge) EdgeOverlay(ctx context.Context, matIndex int, outPath, cannyPath string, gaussian int, min, max float64, p Promise) {
	b.run(ctx, "edge_overlay", p, func() (Result, error) {
		out, err := b.resolveEdgeOutputs(outPath, cannyPath)
		if err != nil {
			return nil, err
		}

		mat, err := b.mats.Get(matIndex)
		if err != nil {
			return nil, classify(out.path, err)
		}
		if err := vision.ValidateKernel(gaussian); err != nil {
			return nil, errInvalidParam("gaussian")
		}
		if err := checkThresholds(min, max); err != nil {
			return nil, err
		}

		res, err := vision.EdgeOverlay(mat, gaussian, b.params(min, max))
		if err != nil {
			return nil, classify(out.path, err)
		}
		return out.write(res)
	})
}

// GaussianBlur converts a registered matrix to grayscale, blurs it with a
// gaussian x gaussian kernel, registers the result and writes it to outPath.
//
// Resolves {width, height, uri, matIndex}.
func (b *Bridge) GaussianBlur(ctx context.Context, matIndex int, outPath string, gaussian int, p Promise) {
	b.run(ctx, "gaussian_blur", p, func() (Result, error) {
		path, format, err := b.matOutput(outPath)
		if err != nil {
			return nil, err
		}

		mat, err := b.mats.Get(matIndex)
		if err != nil {
			return nil, classify(path, err)
		}
		if err := vision.ValidateKernel(gaussian); err != nil {
			return nil, errInvalidParam("gaussian")
		}

		blurred, err := vision.Blur(mat, gaussian)
		if err != nil {
			return nil, classify(path, err)
		}
		if err := save(path, blurred, format, imaging.MatJPEGQuality); err != nil {
			return nil, err
		}

		h := b.mats.Add(blurred)
		return Result{
			"width":    blurred.Bounds().Dx(),
			"height":   blurred.Bounds().Dy(),
			"uri":      path,
			"matIndex": h,
		}, nil
	})
}

// Canny detects edges on an already blurred matrix and fills the resulting
// contours on a copy of the original matrix.
//
// Resolves {width, height, uri, cannyUri, contours}.
func (b *Bridge) Canny(ctx context.Context, originalIndex, blurredIndex int, outPath, cannyPath string, min, max float64, p Promise) {
	b.run(ctx, "canny", p, func() (Result, error) {
		out, err := b.resolveEdgeOutputs(outPath, cannyPath)
		if err != nil {
			return nil, err
		}

		original, err := b.mats.Get(originalIndex)
		if err != nil {
			return nil, errInvalidParam("originalIndex")
		}
		blurred, err := b.mats.Get(blurredIndex)
		if err != nil {
			return nil, errInvalidParam("blurredIndex")
		}
		if original.Bounds().Size() != blurred.Bounds().Size() {
			return nil, errInvalidParam("blurredIndex")
		}
		if err := checkThresholds(min, max); err != nil {
			return nil, err
		}

		res, err := vision.Edges(original, vision.AsGray(blurred), b.params(min, max))
		if err != nil {
			return nil, classify(out.path, err)
		}
		return out.write(res)
	})
}

func (b *Bridge) params(min, max float64) vision.Params {
	return vision.Params{Low: min, High: max, Fill: b.opts.Fill}
}

func checkThresholds(min, max float64) error {
	if min < 0 {
		return errInvalidParam("min")
	}
	if max < 0 {
		return errInvalidParam("max")
	}
	return nil
}

// edgeOutputs holds the two resolved destinations of an edge operation.
type edgeOutputs struct {
	path        string
	format      imaging.Format
	cannyPath   string
	cannyFormat imaging.Format
}

func (b *Bridge) resolveEdgeOutputs(outPath, cannyPath string) (*edgeOutputs, error) {
	path, format, err := b.matOutput(outPath)
	if err != nil {
		return nil, err
	}
	cpath, cformat, err := b.matOutput(cannyPath)
	if err != nil {
		return nil, err
	}
	return &edgeOutputs{
		path:        path,
		format:      format,
		cannyPath:   cpath,
		cannyFormat: cformat,
	}, nil
}

func (o *edgeOutputs) write(res *vision.Result) (Result, error) {
	if err := save(o.path, res.Overlay, o.format, imaging.MatJPEGQuality); err != nil {
		return nil, err
	}
	if err := save(o.cannyPath, res.Canny, o.cannyFormat, imaging.MatJPEGQuality); err != nil {
		return nil, err
	}

	size := res.Overlay.Bounds().Size()
	return edgeResult(size, o.path, o.cannyPath, res.Contours), nil
}

func edgeResult(size image.Point, uri, cannyURI string, contours int) Result {
	return Result{
		"width":    size.X,
		"height":   size.Y,
		"uri":      uri,
		"cannyUri": cannyURI,
		"contours": contours,
	}
}
