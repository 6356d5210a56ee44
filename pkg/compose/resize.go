package compose

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/filemerge/filemerge/pkg/errors"
)

// Resize scales one raster according to the resize mode.
//
//   - none: returns the raster unchanged, target ignored
//   - fit: preserves aspect ratio so the result fits inside width x height;
//     one dimension may come out smaller than the target
//   - fill: preserves aspect ratio to cover width x height, then center-crops
//     to exactly the target
//   - stretch: resamples to exactly width x height, aspect ratio ignored
//
// Resampling is bilinear. Fit and fill also scale small sources up; fit never
// produces a dimension larger than its target.
func Resize(img *image.NRGBA, mode ResizeMode, width, height int) (*image.NRGBA, error) {
	if mode == ResizeNone {
		return img, nil
	}
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidTarget,
			"target size %dx%d must have positive dimensions", width, height)
	}
	src := img.Bounds().Size()
	if src.X <= 0 || src.Y <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidSource,
			"cannot resize a %dx%d source", src.X, src.Y)
	}

	switch mode {
	case ResizeFit:
		w, h := fitSize(src.X, src.Y, width, height)
		return imaging.Resize(img, w, h, imaging.Linear), nil
	case ResizeFill:
		return imaging.Fill(img, width, height, imaging.Center, imaging.Linear), nil
	case ResizeStretch:
		return imaging.Resize(img, width, height, imaging.Linear), nil
	default:
		return nil, errors.New(errors.ErrCodeInternal, "unhandled resize mode %q", mode)
	}
}

// fitSize scales (w, h) by min(tw/w, th/h). Results are rounded, clamped to
// the target on the high side and to 1 on the low side.
func fitSize(w, h, tw, th int) (int, int) {
	scale := math.Min(float64(tw)/float64(w), float64(th)/float64(h))
	fw := int(math.Round(float64(w) * scale))
	fh := int(math.Round(float64(h) * scale))
	if fw > tw {
		fw = tw
	}
	if fh > th {
		fh = th
	}
	if fw < 1 {
		fw = 1
	}
	if fh < 1 {
		fh = 1
	}
	return fw, fh
}
