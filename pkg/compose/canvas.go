package compose

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/filemerge/filemerge/pkg/errors"
)

// DefaultBackground is the canvas fill used when no background is configured.
var DefaultBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Compose allocates the canvas, fills it with the background color and pastes
// every asset at its planned placement. Assets are copied opaquely in input
// order with no blending. A nil background means DefaultBackground.
//
// Placements are trusted but verified: a placement whose size does not match
// its asset or that extends past the canvas reports LAYOUT_OVERFLOW, which
// marks a planner bug rather than bad user input.
func Compose(plan Plan, assets []*image.NRGBA, background color.Color) (*image.NRGBA, error) {
	if len(assets) != len(plan.Placements) {
		return nil, errors.New(errors.ErrCodeInternal,
			"plan has %d placements for %d assets", len(plan.Placements), len(assets))
	}
	if background == nil {
		background = DefaultBackground
	}

	canvas := imaging.New(plan.Width, plan.Height, background)
	for i, asset := range assets {
		p := plan.Placements[i]
		size := asset.Bounds().Size()
		if size.X != p.W || size.Y != p.H {
			return nil, errors.New(errors.ErrCodeLayoutOverflow,
				"asset %d is %dx%d but planned as %dx%d", i, size.X, size.Y, p.W, p.H)
		}
		if p.X < 0 || p.Y < 0 || p.X+p.W > plan.Width || p.Y+p.H > plan.Height {
			return nil, errors.New(errors.ErrCodeLayoutOverflow,
				"asset %d placement (%d,%d)+%dx%d exceeds the %dx%d canvas",
				i, p.X, p.Y, p.W, p.H, plan.Width, plan.Height)
		}
		canvas = imaging.Paste(canvas, asset, image.Pt(p.X, p.Y))
	}
	return canvas, nil
}
