package fileops

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/filemerge/filemerge/pkg/errors"
)

// Backup copies path to a timestamped sibling and returns the copy's path.
// The copy is named "<stem>_backup_<yyyymmdd_hhmmss><ext>"; if that name is
// taken the usual "_1", "_2" suffixes apply.
func Backup(path string) (string, error) {
	if err := Validate([]string{path}); err != nil {
		return "", err
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	target := filepath.Join(filepath.Dir(path), stem+"_backup_"+timestamp()+ext)
	target = UniquePath(target)

	if err := copyFile(path, target); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "back up %s", path)
	}
	return target, nil
}

// copyFile copies src to dst, preserving the source's permission bits.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}
