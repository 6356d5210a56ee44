package api

import (
	"encoding/json"
	"net/http"

	"github.com/filemerge/filemerge/pkg/errors"
)

// errorBody is the JSON envelope for error responses.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to its HTTP status and writes the JSON envelope.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), errorBody{Error: errorDetail{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

// statusFor maps error codes onto HTTP status codes. Codes describing the
// request are client errors; defects and infrastructure failures are
// server errors.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidTarget,
		errors.ErrCodeInvalidSource,
		errors.ErrCodeInvalidPath,
		errors.ErrCodeEmptyInput,
		errors.ErrCodeMixedCategory,
		errors.ErrCodeFileNotFound,
		errors.ErrCodeDecode,
		errors.ErrCodeUnsupportedFormat,
		errors.ErrCodeUnsupportedLayout:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
