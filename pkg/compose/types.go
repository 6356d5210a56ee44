package compose

import (
	"strings"

	"github.com/filemerge/filemerge/pkg/errors"
)

// =============================================================================
// Layout, Resize and Filter Kinds - Single Source of Truth for CLI and API
// =============================================================================

// Layout selects how assets are arranged on the canvas.
type Layout string

// Layout kinds.
const (
	LayoutVertical   Layout = "vertical"
	LayoutHorizontal Layout = "horizontal"
	LayoutGrid       Layout = "grid"
)

// ValidLayouts is the set of supported layout kinds.
var ValidLayouts = map[Layout]bool{
	LayoutVertical:   true,
	LayoutHorizontal: true,
	LayoutGrid:       true,
}

// ParseLayout converts a user-supplied layout name to a Layout.
func ParseLayout(s string) (Layout, error) {
	l := Layout(strings.ToLower(strings.TrimSpace(s)))
	if !ValidLayouts[l] {
		return "", errors.New(errors.ErrCodeUnsupportedLayout,
			"unsupported layout %q (must be one of: vertical, horizontal, grid)", s)
	}
	return l, nil
}

// ResizeMode selects how each asset is scaled before layout planning.
type ResizeMode string

// Resize modes. Fit, fill and stretch require a positive target size; none
// ignores the target entirely.
const (
	ResizeNone    ResizeMode = "none"
	ResizeFit     ResizeMode = "fit"
	ResizeFill    ResizeMode = "fill"
	ResizeStretch ResizeMode = "stretch"
)

// ValidResizeModes is the set of supported resize modes.
var ValidResizeModes = map[ResizeMode]bool{
	ResizeNone:    true,
	ResizeFit:     true,
	ResizeFill:    true,
	ResizeStretch: true,
}

// ParseResizeMode converts a user-supplied resize mode name to a ResizeMode.
func ParseResizeMode(s string) (ResizeMode, error) {
	m := ResizeMode(strings.ToLower(strings.TrimSpace(s)))
	if !ValidResizeModes[m] {
		return "", errors.New(errors.ErrCodeInvalidConfig,
			"invalid resize mode %q (must be one of: none, fit, fill, stretch)", s)
	}
	return m, nil
}

// Filter names a single pixel transform applied to each asset.
type Filter string

// Filters.
const (
	FilterNone      Filter = "none"
	FilterGrayscale Filter = "grayscale"
	FilterSepia     Filter = "sepia"
	FilterBlur      Filter = "blur"
	FilterSharpen   Filter = "sharpen"
)

// ValidFilters is the set of supported filters.
var ValidFilters = map[Filter]bool{
	FilterNone:      true,
	FilterGrayscale: true,
	FilterSepia:     true,
	FilterBlur:      true,
	FilterSharpen:   true,
}

// ParseFilter converts a user-supplied filter name to a Filter.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if !ValidFilters[f] {
		return "", errors.New(errors.ErrCodeInvalidConfig,
			"invalid filter %q (must be one of: none, grayscale, sepia, blur, sharpen)", s)
	}
	return f, nil
}
