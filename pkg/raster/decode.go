package raster

import (
	"bytes"
	"image"
	"io"
	"os"

	// Registered decoders. GIF decoding yields the first frame only.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"

	"github.com/filemerge/filemerge/pkg/errors"
)

// decodeNRGBA sniffs and decodes an image, normalized to NRGBA.
func decodeNRGBA(r io.Reader) (*image.NRGBA, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	return imaging.Clone(img), format, nil
}

// Decode reads one image from r and normalizes it to NRGBA.
// It also reports the sniffed source format name ("png", "jpeg", ...).
func Decode(r io.Reader) (*image.NRGBA, string, error) {
	img, format, err := decodeNRGBA(r)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeDecode, err, "decode image data")
	}
	return img, format, nil
}

// DecodeBytes decodes an in-memory image.
func DecodeBytes(data []byte) (*image.NRGBA, string, error) {
	return Decode(bytes.NewReader(data))
}

// DecodeFile decodes the image stored at path.
func DecodeFile(path string) (*image.NRGBA, string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, "", errors.Wrap(errors.ErrCodeDecode, err, "open %s", path)
	}
	defer f.Close()

	img, format, err := decodeNRGBA(f)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeDecode, err, "decode %s", path)
	}
	return img, format, nil
}

// DecodeConfigBytes reads only the dimensions and format of an in-memory
// image, without decoding pixel data.
func DecodeConfigBytes(data []byte) (width, height int, format string, err error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, "", errors.Wrap(errors.ErrCodeDecode, err, "read image header")
	}
	return cfg.Width, cfg.Height, format, nil
}

// DecodeConfigFile reads only the dimensions of the image at path.
func DecodeConfigFile(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return 0, 0, errors.Wrap(errors.ErrCodeDecode, err, "open %s", path)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeDecode, err, "read image header %s", path)
	}
	return cfg.Width, cfg.Height, nil
}
