package httputil

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/galdraw/pkg/errors"
	"github.com/matzehuels/galdraw/pkg/observability"
)

// StatusFor maps an error to an HTTP status code.
func StatusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.IsValidation(err) {
		return http.StatusBadRequest
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeToolUnavailable, errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeCompileFailed:
		return http.StatusBadGateway
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// ErrorBody is the JSON body of an error response.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteJSON writes v as JSON with the given status. Encoding failures are
// logged to the request logger; the status line has already been sent.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		LoggerFrom(r.Context()).Error("encode response",
			"path", r.URL.Path,
			"status", status,
			"err", err,
			"request_id", RequestIDFrom(r.Context()))
	}
}

// WriteError reports err to the HTTP hooks and writes an [ErrorBody] with the
// status from [StatusFor]. Internal errors hide their message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)

	status := StatusFor(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	WriteJSON(w, r, status, ErrorBody{Code: code, Message: msg, RequestID: RequestIDFrom(r.Context())})
}
