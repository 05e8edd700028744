// Package httpx provides HTTP middleware helpers for the capture service.
package httpx

import (
	"context"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/louisbranch/countrycapture/internal/platform/requestctx"
	apperrors "github.com/louisbranch/countrycapture/internal/services/capture/platform/errors"
)

const (
	htmxHeader      = "HX-Request"
	htmxTrigger     = "HX-Trigger"
	htmxRetarget    = "HX-Retarget"
	htmxReswap      = "HX-Reswap"
	requestIDHeader = "X-Request-ID"
)

// Middleware wraps an HTTP handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middleware in declaration order.
func Chain(handler http.Handler, middleware ...Middleware) http.Handler {
	if handler == nil {
		handler = http.NotFoundHandler()
	}
	wrapped := handler
	for idx := len(middleware) - 1; idx >= 0; idx-- {
		if middleware[idx] == nil {
			continue
		}
		wrapped = middleware[idx](wrapped)
	}
	return wrapped
}

// RequestID injects and echoes a request id for correlation.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
			if requestID == "" {
				requestID = uuid.NewString()
				r.Header.Set(requestIDHeader, requestID)
			}
			w.Header().Set(requestIDHeader, requestID)
			next.ServeHTTP(w, r.WithContext(requestctx.WithRequestID(r.Context(), requestID)))
		})
	}
}

// RequestIDFrom returns the correlation id set by RequestID.
func RequestIDFrom(r *http.Request) string {
	if r == nil {
		return ""
	}
	if requestID := requestctx.RequestIDFromContext(r.Context()); requestID != "" {
		return requestID
	}
	return strings.TrimSpace(r.Header.Get(requestIDHeader))
}

// RecoverPanic converts panics into HTTP 500 responses. A handler that
// already started its response keeps the status it wrote.
func RecoverPanic(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &headerRecorder{ResponseWriter: w}
			defer func() {
				if recovered := recover(); recovered != nil {
					logger.Error("panic recovered",
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.String("request_id", RequestIDFrom(r)),
						zap.Any("panic", recovered),
						zap.String("stack", strings.TrimSpace(string(debug.Stack()))),
						zap.Bool("headers_written", rec.wroteHeader),
					)
					if !rec.wroteHeader {
						w.WriteHeader(http.StatusInternalServerError)
					}
				}
			}()
			next.ServeHTTP(rec, r)
		})
	}
}

type headerRecorder struct {
	http.ResponseWriter
	wroteHeader bool
}

func (r *headerRecorder) WriteHeader(status int) {
	r.wroteHeader = true
	r.ResponseWriter.WriteHeader(status)
}

func (r *headerRecorder) Write(body []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(body)
}

// IsHTMXRequest reports whether the request was initiated by htmx.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(r.Header.Get(htmxHeader)), "true")
}

// SetTrigger asks htmx to dispatch event on the client after the swap.
func SetTrigger(w http.ResponseWriter, event string) {
	if w == nil || strings.TrimSpace(event) == "" {
		return
	}
	w.Header().Set(htmxTrigger, strings.TrimSpace(event))
}

// SetRetarget asks htmx to swap the response into target with swap instead
// of the element that issued the request.
func SetRetarget(w http.ResponseWriter, target, swap string) {
	if w == nil || strings.TrimSpace(target) == "" {
		return
	}
	w.Header().Set(htmxRetarget, strings.TrimSpace(target))
	if swap = strings.TrimSpace(swap); swap != "" {
		w.Header().Set(htmxReswap, swap)
	}
}

// WriteError writes a plain error response using typed status mapping.
func WriteError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Error(w, err.Error(), apperrors.HTTPStatus(err))
}

// RequestContext returns r.Context() with a nil-safe fallback.
func RequestContext(r *http.Request) context.Context {
	if r == nil {
		return context.Background()
	}
	return r.Context()
}
