package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidTarget, "target size %dx%d is not positive", 0, 100)

	if err.Code != ErrCodeInvalidTarget {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidTarget)
	}
	if err.Message != "target size 0x100 is not positive" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("Cause should be nil, got %v", err.Cause)
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeEmptyInput, "no assets could be loaded"),
			want: "EMPTY_INPUT: no assets could be loaded",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeDecode, fmt.Errorf("unexpected EOF"), "decode photo.png"),
			want: "DECODE_FAILURE: decode photo.png: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(ErrCodeEncode, cause, "write output")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{
			name: "matching code",
			err:  New(ErrCodeUnsupportedLayout, "unknown layout"),
			code: ErrCodeUnsupportedLayout,
			want: true,
		},
		{
			name: "different code",
			err:  New(ErrCodeUnsupportedLayout, "unknown layout"),
			code: ErrCodeEmptyInput,
			want: false,
		},
		{
			name: "plain error",
			err:  fmt.Errorf("plain"),
			code: ErrCodeEmptyInput,
			want: false,
		},
		{
			name: "wrapped in fmt.Errorf",
			err:  fmt.Errorf("context: %w", New(ErrCodeFileNotFound, "missing")),
			code: ErrCodeFileNotFound,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if code := GetCode(New(ErrCodeCache, "redis down")); code != ErrCodeCache {
		t.Errorf("GetCode = %q, want %q", code, ErrCodeCache)
	}
	if code := GetCode(fmt.Errorf("plain")); code != "" {
		t.Errorf("GetCode for plain error = %q, want empty", code)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidSource, "source image has zero width")
	if msg := UserMessage(err); msg != "source image has zero width" {
		t.Errorf("UserMessage = %q", msg)
	}
	if strings.Contains(UserMessage(err), string(ErrCodeInvalidSource)) {
		t.Error("UserMessage should not contain the code prefix")
	}

	plain := fmt.Errorf("plain failure")
	if msg := UserMessage(plain); msg != "plain failure" {
		t.Errorf("UserMessage for plain error = %q", msg)
	}
}

func TestIsDefect(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"layout overflow", New(ErrCodeLayoutOverflow, "placement escapes canvas"), true},
		{"internal", New(ErrCodeInternal, "unhandled filter"), true},
		{"user error", New(ErrCodeInvalidTarget, "bad target"), false},
		{"plain error", fmt.Errorf("plain"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDefect(tt.err); got != tt.want {
				t.Errorf("IsDefect() = %v, want %v", got, tt.want)
			}
		})
	}
}
