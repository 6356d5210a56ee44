package compose

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/filemerge/filemerge/pkg/errors"
)

// namedColors are the background names accepted beside hex notation.
var namedColors = map[string]color.NRGBA{
	"white": {R: 255, G: 255, B: 255, A: 255},
	"black": {A: 255},
	"gray":  {R: 128, G: 128, B: 128, A: 255},
}

// ParseColor parses a background color: a name from namedColors, "#rgb" or
// "#rrggbb" hex notation. The empty string is the default background.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultBackground, nil
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidConfig,
			"invalid background %q (use a color name or #rrggbb)", s)
	}

	switch len(hex) {
	case 3:
		v, err := strconv.ParseUint(hex, 16, 16)
		if err != nil {
			return color.NRGBA{}, errors.New(errors.ErrCodeInvalidConfig, "invalid background %q", s)
		}
		r := uint8(v >> 8 & 0xf)
		g := uint8(v >> 4 & 0xf)
		b := uint8(v & 0xf)
		return color.NRGBA{R: r * 17, G: g * 17, B: b * 17, A: 255}, nil
	case 6:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, errors.New(errors.ErrCodeInvalidConfig, "invalid background %q", s)
		}
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	default:
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidConfig,
			"invalid background %q (use #rgb or #rrggbb)", s)
	}
}
