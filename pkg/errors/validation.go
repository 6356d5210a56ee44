package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidatePath validates a user-supplied file path for basic safety.
// It rejects values that cannot name a local file on any platform.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No null bytes or other control characters
//   - Maximum length of 4096 characters
//
// Existence and readability are checked separately by the file layer.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || (unicode.IsControl(r) && r != '\t') {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	return nil
}

// ValidateOutputPath validates a merge output path.
// On top of the generic path rules, the output must carry a file extension
// because the encoder selects its codec from it.
func ValidateOutputPath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	ext := filepath.Ext(path)
	if ext == "" || ext == "." {
		return New(ErrCodeInvalidPath, "output path %q has no file extension", path)
	}

	base := filepath.Base(path)
	if base == ext {
		// A bare ".png" style name is an extension without a stem.
		return New(ErrCodeInvalidPath, "output path %q has no file name", path)
	}

	return nil
}

// ValidateWatermarkText validates watermark overlay text.
// The overlay renders a single line, so line breaks are rejected; an empty
// string is valid and means "no watermark".
func ValidateWatermarkText(text string) error {
	if strings.ContainsAny(text, "\n\r") {
		return New(ErrCodeInvalidConfig, "watermark text cannot contain line breaks")
	}

	const maxWatermarkLength = 200
	if len(text) > maxWatermarkLength {
		return New(ErrCodeInvalidConfig, "watermark text too long (max %d characters)", maxWatermarkLength)
	}

	for _, r := range text {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "watermark text contains invalid control characters")
		}
	}

	return nil
}
