package compose

import (
	"image"
	"math"

	"github.com/filemerge/filemerge/pkg/errors"
)

// Placement is the computed position and size of one asset on the canvas.
type Placement struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Plan is the canvas geometry for one merge: the canvas size plus one
// placement per asset, in input order.
type Plan struct {
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Placements []Placement `json:"placements"`
}

// PlanLayout computes the canvas size and per-asset placements from asset
// dimensions alone; no pixel data is touched. Sizes must be post-resize
// dimensions, expressed as image.Point (X is width, Y is height, matching
// Bounds().Size()).
//
// Columns applies to grid layout only: 0 picks ceil(sqrt(n)) columns, a
// positive value is used as given. Spacing separates adjacent cells and is
// not applied around the outer border.
func PlanLayout(sizes []image.Point, layout Layout, columns, spacing int) (Plan, error) {
	if len(sizes) == 0 {
		return Plan{}, errors.New(errors.ErrCodeEmptyInput, "no assets to lay out")
	}
	if spacing < 0 {
		return Plan{}, errors.New(errors.ErrCodeInvalidConfig, "spacing must be >= 0, got %d", spacing)
	}

	switch layout {
	case LayoutVertical:
		return planVertical(sizes, spacing), nil
	case LayoutHorizontal:
		return planHorizontal(sizes, spacing), nil
	case LayoutGrid:
		if columns < 0 {
			return Plan{}, errors.New(errors.ErrCodeUnsupportedLayout,
				"grid layout needs a positive column count, got %d", columns)
		}
		if columns == 0 {
			columns = autoColumns(len(sizes))
		}
		return planGrid(sizes, columns, spacing), nil
	default:
		return Plan{}, errors.New(errors.ErrCodeUnsupportedLayout, "unsupported layout %q", layout)
	}
}

// autoColumns picks ceil(sqrt(n)) columns, the squarest arrangement that is
// at least as wide as it is tall.
func autoColumns(n int) int {
	return int(math.Ceil(math.Sqrt(float64(n))))
}

// planVertical stacks assets top to bottom, each centered horizontally.
func planVertical(sizes []image.Point, spacing int) Plan {
	width, height := 0, 0
	for _, s := range sizes {
		if s.X > width {
			width = s.X
		}
		height += s.Y
	}
	height += spacing * (len(sizes) - 1)

	placements := make([]Placement, len(sizes))
	y := 0
	for i, s := range sizes {
		placements[i] = Placement{X: (width - s.X) / 2, Y: y, W: s.X, H: s.Y}
		y += s.Y + spacing
	}
	return Plan{Width: width, Height: height, Placements: placements}
}

// planHorizontal lines assets up left to right, each centered vertically.
func planHorizontal(sizes []image.Point, spacing int) Plan {
	width, height := 0, 0
	for _, s := range sizes {
		if s.Y > height {
			height = s.Y
		}
		width += s.X
	}
	width += spacing * (len(sizes) - 1)

	placements := make([]Placement, len(sizes))
	x := 0
	for i, s := range sizes {
		placements[i] = Placement{X: x, Y: (height - s.Y) / 2, W: s.X, H: s.Y}
		x += s.X + spacing
	}
	return Plan{Width: width, Height: height, Placements: placements}
}

// planGrid places assets row-major into uniform cells sized to the largest
// asset. Each asset is centered both ways inside its cell; trailing cells in
// the last row stay empty.
func planGrid(sizes []image.Point, columns, spacing int) Plan {
	n := len(sizes)
	rows := (n + columns - 1) / columns

	cellW, cellH := 0, 0
	for _, s := range sizes {
		if s.X > cellW {
			cellW = s.X
		}
		if s.Y > cellH {
			cellH = s.Y
		}
	}

	placements := make([]Placement, n)
	for i, s := range sizes {
		row, col := i/columns, i%columns
		placements[i] = Placement{
			X: col*(cellW+spacing) + (cellW-s.X)/2,
			Y: row*(cellH+spacing) + (cellH-s.Y)/2,
			W: s.X,
			H: s.Y,
		}
	}
	return Plan{
		Width:      columns*cellW + spacing*(columns-1),
		Height:     rows*cellH + spacing*(rows-1),
		Placements: placements,
	}
}
