package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/galdraw/pkg/errors"
	"github.com/matzehuels/galdraw/pkg/observability"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{errors.New(errors.ErrCodeInvalidInput, "bad"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeInvalidFormat, "bad"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeToolUnavailable, "no pdflatex"), http.StatusNotImplemented},
		{errors.New(errors.ErrCodeCompileFailed, "failed"), http.StatusBadGateway},
		{fmt.Errorf("render pdf: %w", errors.New(errors.ErrCodeCompileFailed, "failed")), http.StatusBadGateway},
		{errors.New(errors.ErrCodeTimeout, "slow"), http.StatusGatewayTimeout},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	id := rec.Header().Get(HeaderRequestID)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("X-Request-ID %q is not a uuid", id)
	}
	if seen != id {
		t.Errorf("context id %q != header id %q", seen, id)
	}

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, incoming)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get(HeaderRequestID) != incoming {
		t.Error("incoming request id not reused")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "not-a-uuid")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get(HeaderRequestID) == "not-a-uuid" {
		t.Error("malformed request id echoed")
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	requests, responses, errs int
	status                    int
}

func (h *recordingHooks) OnRequest(context.Context, string, string) { h.requests++ }
func (h *recordingHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.responses++
	h.status = status
}
func (h *recordingHooks) OnError(context.Context, string, string, error) { h.errs++ }

func TestObserve(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	var logs bytes.Buffer
	logger := log.NewWithOptions(&logs, log.Options{})
	h := RequestID(Observe(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, errors.New(errors.ErrCodeInvalidInput, "taps must be binary"))
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/lfsr.svg", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
	if hooks.requests != 1 || hooks.responses != 1 || hooks.errs != 1 || hooks.status != http.StatusBadRequest {
		t.Errorf("hooks = %+v", hooks)
	}
	if !strings.Contains(logs.String(), "status=400") {
		t.Errorf("log line missing status:\n%s", logs.String())
	}

	var body ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Code != "INVALID_INPUT" || body.Message != "taps must be binary" {
		t.Errorf("body = %+v", body)
	}
	if body.RequestID != rec.Header().Get(HeaderRequestID) {
		t.Error("body request id differs from header")
	}
}

func TestWriteErrorHidesInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), fmt.Errorf("secret path /etc"))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "secret") {
		t.Error("internal error message leaked")
	}
}

func TestWriteJSONLogsEncodeFailure(t *testing.T) {
	var logs bytes.Buffer
	logger := log.NewWithOptions(&logs, log.Options{})
	h := Observe(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, r, http.StatusOK, map[string]any{"stream": make(chan int)})
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/layout", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if out := logs.String(); !strings.Contains(out, "encode response") || !strings.Contains(out, "path=/v1/layout") {
		t.Errorf("encode failure not logged:\n%s", out)
	}
}

func TestLoggerFromDefault(t *testing.T) {
	if LoggerFrom(context.Background()) != log.Default() {
		t.Error("LoggerFrom without Observe should return log.Default()")
	}
	l := log.New(&bytes.Buffer{})
	if LoggerFrom(WithLogger(context.Background(), l)) != l {
		t.Error("LoggerFrom lost the attached logger")
	}
}
