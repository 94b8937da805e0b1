// Package httputil provides HTTP server utilities for "galdraw serve".
//
// # Overview
//
//   - [RequestID]: middleware that tags every request and response with an
//     X-Request-ID
//   - [Observe]: middleware that reports requests to the observability HTTP
//     hooks and logs one line per request
//   - [StatusFor]: maps coded errors to HTTP status codes
//   - [WriteJSON], [WriteError]: response helpers
//
// # Status Mapping
//
// Validation errors (INVALID_*) are 400, TOOL_UNAVAILABLE and UNSUPPORTED are
// 501, COMPILE_FAILED is 502, TIMEOUT is 504, NOT_FOUND is 404. Anything else
// is 500.
//
// Usage:
//
//	r := chi.NewRouter()
//	r.Use(httputil.RequestID, httputil.Observe(logger))
//	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
//	    httputil.WriteJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
//	})
package httputil
