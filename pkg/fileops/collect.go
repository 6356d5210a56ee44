package fileops

import (
	"os"
	"path/filepath"

	"github.com/filemerge/filemerge/pkg/errors"
)

// Collect gathers the given files into a fresh folder under destRoot named
// "collected_<category>_<timestamp>". With move set the originals are
// relocated, otherwise copied. All inputs must share one category.
//
// It returns the created folder and the new path of every file, in input
// order. Name collisions inside the folder get the usual "_1" suffixes.
func Collect(paths []string, destRoot string, move bool) (string, []string, error) {
	if err := Validate(paths); err != nil {
		return "", nil, err
	}
	category, err := DetectCategory(paths)
	if err != nil {
		return "", nil, err
	}

	dir := filepath.Join(destRoot, "collected_"+string(category)+"_"+timestamp())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create folder %s", dir)
	}

	collected := make([]string, 0, len(paths))
	for _, src := range paths {
		dst := UniquePath(filepath.Join(dir, filepath.Base(src)))

		if move {
			err = moveFile(src, dst)
		} else {
			err = copyFile(src, dst)
		}
		if err != nil {
			return "", nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "collect %s", src)
		}
		collected = append(collected, dst)
	}

	return dir, collected, nil
}

// moveFile renames src to dst, falling back to copy+remove across devices.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}
