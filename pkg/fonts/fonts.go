// Package fonts provides typefaces for watermark rendering.
//
// The Go Regular typeface ships with the binary so watermarking works
// without any fonts installed. A system font can be requested by name and
// is located with go-findfont; when it is missing or unparsable the
// embedded face is used instead.
package fonts

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Parsed embedded font (computed once on first access).
var (
	embedded     *truetype.Font
	embeddedErr  error
	embeddedOnce sync.Once
)

// Embedded returns the built-in Go Regular typeface.
func Embedded() (*truetype.Font, error) {
	embeddedOnce.Do(func() {
		embedded, embeddedErr = truetype.Parse(goregular.TTF)
	})
	return embedded, embeddedErr
}

// Discover locates a system font by name (e.g. "DejaVuSans.ttf" or "Arial")
// and parses it. Discovery walks the platform font directories.
func Discover(name string) (*truetype.Font, error) {
	path, err := findfont.Find(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return truetype.Parse(data)
}

// Resolve returns the typeface for the given font name.
// An empty name or a failed discovery resolves to the embedded face, so the
// caller always gets a usable font when the embedded face parses.
func Resolve(name string) (*truetype.Font, error) {
	if name == "" {
		return Embedded()
	}
	if f, err := Discover(name); err == nil {
		return f, nil
	}
	return Embedded()
}

// Face builds a rendering face at the given point size.
func Face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size})
}
