package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/filemerge/filemerge/pkg/errors"
	"github.com/filemerge/filemerge/pkg/fileops"
)

// Format identifies an output encoding.
type Format string

// Supported output formats.
const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// DefaultJPEGQuality is used when no quality option is given.
const DefaultJPEGQuality = 90

// formatByExt maps lowercased output extensions to formats.
var formatByExt = map[string]Format{
	".png":  FormatPNG,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".gif":  FormatGIF,
	".bmp":  FormatBMP,
	".tiff": FormatTIFF,
	".tif":  FormatTIFF,
}

// FormatFromPath selects the output format from a path's extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formatByExt[ext]; ok {
		return f, nil
	}
	if ext == ".webp" {
		return "", errors.New(errors.ErrCodeUnsupportedFormat, "webp is decode-only, cannot encode %s", path)
	}
	return "", errors.New(errors.ErrCodeUnsupportedFormat, "unsupported output format %q", ext)
}

// encodeConfig collects optional encoder settings.
type encodeConfig struct {
	jpegQuality int
}

// EncodeOption customizes encoder behavior.
type EncodeOption func(*encodeConfig)

// WithJPEGQuality sets the JPEG quality (1-100).
func WithJPEGQuality(q int) EncodeOption {
	return func(c *encodeConfig) {
		c.jpegQuality = q
	}
}

// Encode writes img to w in the given format.
// JPEG output flattens any transparency onto white first, since JPEG has no
// alpha channel.
func Encode(w io.Writer, img *image.NRGBA, format Format, opts ...EncodeOption) error {
	cfg := encodeConfig{jpegQuality: DefaultJPEGQuality}
	for _, opt := range opts {
		opt(&cfg)
	}

	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, flattenOnWhite(img), &jpeg.Options{Quality: cfg.jpegQuality})
	case FormatGIF:
		err = gif.Encode(w, img, &gif.Options{NumColors: 256})
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, nil)
	default:
		return errors.New(errors.ErrCodeUnsupportedFormat, "unsupported output format %q", format)
	}

	if err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "encode %s", format)
	}
	return nil
}

// EncodeBytes renders the encoded image into memory.
func EncodeBytes(img *image.NRGBA, format Format, opts ...EncodeOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save encodes img to path, choosing the codec from the extension.
// The file is written atomically: either the complete image lands at path
// or the previous state is left untouched.
func Save(path string, img *image.NRGBA, opts ...EncodeOption) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := EncodeBytes(img, format, opts...)
	if err != nil {
		return err
	}
	if err := fileops.AtomicWrite(path, data); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "write %s", path)
	}
	return nil
}

// flattenOnWhite composites img over an opaque white background.
func flattenOnWhite(img *image.NRGBA) *image.NRGBA {
	bounds := img.Bounds()
	flat := image.NewNRGBA(bounds)
	draw.Draw(flat, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, bounds, img, bounds.Min, draw.Over)
	return flat
}
