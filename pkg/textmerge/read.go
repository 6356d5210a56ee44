package textmerge

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/filemerge/filemerge/pkg/errors"
)

// Encoding names reported in FileStat.
const (
	encodingUTF8        = "utf-8"
	encodingWindows1252 = "windows-1252"
	encodingLatin1      = "iso-8859-1"
)

// sourceFile is one decoded input, ready for rendering.
type sourceFile struct {
	name     string
	content  string
	encoding string
	modTime  time.Time
}

// loadFile reads and decodes one input file.
func loadFile(path string) (sourceFile, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return sourceFile{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open input")
		}
		return sourceFile{}, errors.Wrap(errors.ErrCodeDecode, err, "open input")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return sourceFile{}, errors.Wrap(errors.ErrCodeDecode, err, "stat input")
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return sourceFile{}, errors.Wrap(errors.ErrCodeDecode, err, "read input")
	}

	content, encoding, err := decodeText(data)
	if err != nil {
		return sourceFile{}, err
	}

	return sourceFile{
		name:     filepath.Base(path),
		content:  content,
		encoding: encoding,
		modTime:  info.ModTime(),
	}, nil
}

// decodeText converts raw file bytes into a string. UTF-8 input is taken
// as-is; anything else goes through Windows-1252 and finally Latin-1,
// which accepts every byte value, so legacy files never fail to decode.
func decodeText(data []byte) (string, string, error) {
	if utf8.Valid(data) {
		return normalizeNewlines(string(data)), encodingUTF8, nil
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err == nil && !bytes.ContainsRune(decoded, utf8.RuneError) {
		return normalizeNewlines(string(decoded)), encodingWindows1252, nil
	}

	decoded, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", errors.Wrap(errors.ErrCodeDecode, err, "decode text")
	}
	return normalizeNewlines(string(decoded)), encodingLatin1, nil
}

// normalizeNewlines rewrites Windows and classic Mac line endings to \n.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// countLines counts content lines the way a text editor numbers them. A
// trailing newline does not open a new line, and empty content has none.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
