package compose

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/filemerge/filemerge/pkg/errors"
	"github.com/filemerge/filemerge/pkg/fonts"
)

// Watermark appearance. The text is anchored to the bottom-right corner with
// a fixed margin; the fill is semi-transparent black so it stays readable
// over light and dark content alike.
const (
	WatermarkFontSize = 24.0
	watermarkMargin   = 16.0
	watermarkAlpha    = 0.55
)

// Watermark draws a single line of text near the bottom-right corner of the
// canvas and returns the result as a new raster. Empty text is a no-op that
// returns the canvas unchanged. A nil face uses the embedded typeface at
// WatermarkFontSize.
func Watermark(canvas *image.NRGBA, text string, face font.Face) (*image.NRGBA, error) {
	if text == "" {
		return canvas, nil
	}
	if face == nil {
		f, err := fonts.Embedded()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "load embedded typeface")
		}
		face = fonts.Face(f, WatermarkFontSize)
	}

	size := canvas.Bounds().Size()
	dc := gg.NewContextForImage(canvas)
	dc.SetFontFace(face)
	dc.SetRGBA(0, 0, 0, watermarkAlpha)
	// Anchor the right edge of the baseline at (W-margin, H-margin).
	dc.DrawStringAnchored(text, float64(size.X)-watermarkMargin, float64(size.Y)-watermarkMargin, 1, 0)
	return imaging.Clone(dc.Image()), nil
}
