package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

const (
	// RequestIDKey is the context key for the request id.
	RequestIDKey contextKey = "request_id"

	// csrfTokenKey is the context key for the CSRF token.
	csrfTokenKey contextKey = "csrf_token"

	// RequestIDHeader is echoed on every response and accepted from a
	// trusted proxy on the way in.
	RequestIDHeader = "X-Request-ID"
)

// maxRequestIDLength bounds ids accepted from upstream proxies.
const maxRequestIDLength = 64

// RequestID assigns every request an id, reusing a sane upstream
// X-Request-ID when present, and exposes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromCtx returns the request id, or "" outside RequestID.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
