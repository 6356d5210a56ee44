package compose

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/filemerge/filemerge/pkg/errors"
)

func colorful(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 37 % 256),
				G: uint8(y * 91 % 256),
				B: uint8((x + y) * 53 % 256),
				A: 255,
			})
		}
	}
	return img
}

func TestFilterNoneIsIdentity(t *testing.T) {
	img := colorful(16, 16)
	before := append([]byte(nil), img.Pix...)

	out, err := ApplyFilter(img, FilterNone)
	if err != nil {
		t.Fatalf("ApplyFilter: %v", err)
	}
	if out != img {
		t.Error("none filter should return the input raster itself")
	}
	if !bytes.Equal(out.Pix, before) {
		t.Error("none filter touched pixel data")
	}
}

func TestFiltersPreserveDimensions(t *testing.T) {
	img := colorful(31, 17)
	for _, f := range []Filter{FilterGrayscale, FilterSepia, FilterBlur, FilterSharpen} {
		out, err := ApplyFilter(img, f)
		if err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if got := out.Bounds().Size(); got.X != 31 || got.Y != 17 {
			t.Errorf("%s changed dimensions to %dx%d", f, got.X, got.Y)
		}
	}
}

func TestGrayscaleEqualizesChannels(t *testing.T) {
	out, err := ApplyFilter(colorful(8, 8), FilterGrayscale)
	if err != nil {
		t.Fatalf("ApplyFilter: %v", err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := out.NRGBAAt(x, y)
			if c.R != c.G || c.G != c.B {
				t.Fatalf("pixel (%d,%d) = %v, want equal channels", x, y, c)
			}
		}
	}
}

func TestGrayscaleLuma(t *testing.T) {
	// Pure green maps to the BT.601 green weight: 0.587 * 255 ≈ 150.
	img := solid(2, 2, color.NRGBA{G: 255, A: 255})
	out, err := ApplyFilter(img, FilterGrayscale)
	if err != nil {
		t.Fatalf("ApplyFilter: %v", err)
	}
	got := out.NRGBAAt(0, 0).R
	if got < 148 || got > 151 {
		t.Errorf("green luma = %d, want ~150", got)
	}
}

func TestSepiaClampsChannels(t *testing.T) {
	out, err := ApplyFilter(solid(2, 2, color.NRGBA{R: 255, G: 255, B: 255, A: 255}), FilterSepia)
	if err != nil {
		t.Fatalf("ApplyFilter: %v", err)
	}
	c := out.NRGBAAt(1, 1)
	// White input overflows the red and green rows of the matrix.
	if c.R != 255 || c.G != 255 {
		t.Errorf("sepia white = %v, want R and G clamped to 255", c)
	}
	if c.B != 239 {
		t.Errorf("sepia white B = %d, want 239", c.B)
	}
	if c.A != 255 {
		t.Errorf("sepia changed alpha to %d", c.A)
	}
}

func TestSepiaWarmsMidtones(t *testing.T) {
	out, err := ApplyFilter(solid(2, 2, color.NRGBA{R: 128, G: 128, B: 128, A: 255}), FilterSepia)
	if err != nil {
		t.Fatalf("ApplyFilter: %v", err)
	}
	c := out.NRGBAAt(0, 0)
	if !(c.R > c.G && c.G > c.B) {
		t.Errorf("sepia gray = %v, want R > G > B", c)
	}
}

func TestBlurSpreadsImpulse(t *testing.T) {
	img := solid(9, 9, color.NRGBA{A: 255})
	img.SetNRGBA(4, 4, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	out, err := ApplyFilter(img, FilterBlur)
	if err != nil {
		t.Fatalf("ApplyFilter: %v", err)
	}
	center := out.NRGBAAt(4, 4)
	neighbor := out.NRGBAAt(4, 5)
	if center.R >= 255 {
		t.Error("blur left the impulse at full intensity")
	}
	if neighbor.R == 0 {
		t.Error("blur did not spread into neighboring pixels")
	}
}

func TestApplyFilterUnknown(t *testing.T) {
	_, err := ApplyFilter(colorful(4, 4), Filter("posterize"))
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("error = %v, want INTERNAL_ERROR", err)
	}
}

func TestParseFilter(t *testing.T) {
	if f, err := ParseFilter("Sepia"); err != nil || f != FilterSepia {
		t.Errorf("ParseFilter(Sepia) = %q, %v", f, err)
	}
	if _, err := ParseFilter("invert"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("ParseFilter(invert) error = %v, want INVALID_CONFIG", err)
	}
}
