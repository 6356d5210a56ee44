package compose

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/filemerge/filemerge/pkg/errors"
)

// Fixed kernel parameters. Filters take no tuning knobs; these match the
// look of the desktop application.
const (
	blurSigma    = 2.0
	sharpenSigma = 1.0
)

// ApplyFilter applies a single pixel transform to the raster. Dimensions are
// preserved. FilterNone returns the raster unchanged without any conversion.
//
// Grayscale uses BT.601 luma weights (0.299 R + 0.587 G + 0.114 B). Blur is
// a Gaussian with clamp-to-edge extension. Sepia and sharpen clamp channel
// values to [0, 255].
func ApplyFilter(img *image.NRGBA, filter Filter) (*image.NRGBA, error) {
	switch filter {
	case FilterNone:
		return img, nil
	case FilterGrayscale:
		return imaging.Grayscale(img), nil
	case FilterSepia:
		return imaging.AdjustFunc(img, sepia), nil
	case FilterBlur:
		return imaging.Blur(img, blurSigma), nil
	case FilterSharpen:
		return imaging.Sharpen(img, sharpenSigma), nil
	default:
		return nil, errors.New(errors.ErrCodeInternal, "unhandled filter %q", filter)
	}
}

// sepia is the classic sepia 3x3 color matrix, applied per pixel.
func sepia(c color.NRGBA) color.NRGBA {
	r := float64(c.R)
	g := float64(c.G)
	b := float64(c.B)
	return color.NRGBA{
		R: clamp8(0.393*r + 0.769*g + 0.189*b),
		G: clamp8(0.349*r + 0.686*g + 0.168*b),
		B: clamp8(0.272*r + 0.534*g + 0.131*b),
		A: c.A,
	}
}

func clamp8(v float64) uint8 {
	if v >= 255 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(v + 0.5)
}
