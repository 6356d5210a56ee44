package errors

import (
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"simple relative", "photos/cat.png", false},
		{"absolute", "/home/user/cat.png", false},
		{"with spaces", "my photos/cat 2.png", false},
		{"empty", "", true},
		{"null byte", "cat\x00.png", true},
		{"newline", "cat\n.png", true},
		{"too long", strings.Repeat("a", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("error code = %q, want INVALID_PATH", GetCode(err))
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"png output", "merged.png", false},
		{"nested output", "out/dir/merged.jpg", false},
		{"uppercase extension", "MERGED.PNG", false},
		{"no extension", "merged", true},
		{"trailing dot", "merged.", true},
		{"extension only", ".png", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateWatermarkText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"empty means no watermark", "", false},
		{"plain text", "© 2025 Demo Corp", false},
		{"unicode", "合成 filemerge", false},
		{"newline", "line one\nline two", true},
		{"carriage return", "text\r", true},
		{"control character", "text\x07", true},
		{"too long", strings.Repeat("x", 201), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWatermarkText(tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWatermarkText(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("error code = %q, want INVALID_CONFIG", GetCode(err))
			}
		})
	}
}
