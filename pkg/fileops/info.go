package fileops

import (
	"image"
	"os"
	"time"

	// Header-only decoding for image dimensions.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/filemerge/filemerge/pkg/errors"
)

// FileInfo describes one file for display and validation.
type FileInfo struct {
	Path     string    `json:"path"`
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	ModTime  time.Time `json:"mod_time"`
	Category Category  `json:"category"`

	// Width and Height are set for decodable images, zero otherwise.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// Info collects metadata about the file at path.
// For image files the pixel dimensions are read from the header; an image
// whose header cannot be parsed still yields its basic file info.
func Info(path string) (FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileInfo{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s does not exist", path)
		}
		return FileInfo{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", path)
	}
	if stat.IsDir() {
		return FileInfo{}, errors.New(errors.ErrCodeInvalidPath, "%s is a directory", path)
	}

	info := FileInfo{
		Path:     path,
		Name:     stat.Name(),
		Size:     stat.Size(),
		ModTime:  stat.ModTime(),
		Category: CategoryOf(path),
	}

	if info.Category == CategoryImage {
		if w, h, err := imageSize(path); err == nil {
			info.Width = w
			info.Height = h
		}
	}

	return info, nil
}

// imageSize reads a raster's dimensions from its header.
func imageSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
