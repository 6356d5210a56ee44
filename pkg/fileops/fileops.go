// Package fileops provides the local-file plumbing around merges: input
// validation, category detection, metadata, backups, collection into
// folders, and atomic writes.
//
// Files are classified by extension into the two mergeable categories,
// images and text. A single merge operates on exactly one category.
package fileops

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/filemerge/filemerge/pkg/errors"
)

// Category classifies mergeable files.
type Category string

// File categories.
const (
	CategoryImage Category = "image"
	CategoryText  Category = "text"
	CategoryOther Category = "other"
)

// timestampLayout is used in backup and collection folder names.
const timestampLayout = "20060102_150405"

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
	".webp": true,
}

var textExts = map[string]bool{
	".txt":  true,
	".md":   true,
	".log":  true,
	".csv":  true,
	".json": true,
	".xml":  true,
	".html": true,
	".htm":  true,
	".yaml": true,
	".yml":  true,
}

// ParseCategory converts a user-supplied category name to a Category.
// Only the two mergeable categories are accepted.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryImage, CategoryText:
		return c, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unknown category %q (must be image or text)", s)
}

// CategoryOf classifies a file by its extension.
func CategoryOf(path string) Category {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case imageExts[ext]:
		return CategoryImage
	case textExts[ext]:
		return CategoryText
	default:
		return CategoryOther
	}
}

// DetectCategory returns the single category shared by all paths.
// Mixing images and text in one merge is rejected, as is a file of neither
// category.
func DetectCategory(paths []string) (Category, error) {
	if len(paths) == 0 {
		return "", errors.New(errors.ErrCodeEmptyInput, "no input files given")
	}

	category := CategoryOf(paths[0])
	if category == CategoryOther {
		return "", errors.New(errors.ErrCodeMixedCategory, "%s is neither an image nor a text file", paths[0])
	}

	for _, p := range paths[1:] {
		c := CategoryOf(p)
		if c == CategoryOther {
			return "", errors.New(errors.ErrCodeMixedCategory, "%s is neither an image nor a text file", p)
		}
		if c != category {
			return "", errors.New(errors.ErrCodeMixedCategory, "cannot merge %s files with %s files", c, category)
		}
	}

	return category, nil
}

// Validate checks that every path names an existing regular file.
func Validate(paths []string) error {
	for _, p := range paths {
		if err := errors.ValidatePath(p); err != nil {
			return err
		}
		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				return errors.Wrap(errors.ErrCodeFileNotFound, err, "%s does not exist", p)
			}
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", p)
		}
		if info.IsDir() {
			return errors.New(errors.ErrCodeInvalidPath, "%s is a directory, not a file", p)
		}
	}
	return nil
}

// UniquePath returns path if it is free, otherwise the first variant
// "name_1.ext", "name_2.ext", ... that does not exist yet.
func UniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)

	for i := 1; ; i++ {
		candidate := filepath.Join(dir, stem+"_"+strconv.Itoa(i)+ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// ScanDir lists the mergeable files of the given category directly inside
// dir, sorted by name. It does not recurse.
func ScanDir(dir string, category Category) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s does not exist", dir)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read directory %s", dir)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if CategoryOf(p) == category {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// timestamp returns the current time formatted for file names.
// Overridable in tests.
var timestamp = func() string {
	return time.Now().Format(timestampLayout)
}
