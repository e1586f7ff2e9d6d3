package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/cloudshelf/internal/server/auth"
)

// contextKey is a private type so context keys cannot collide across packages.
type contextKey string

const userIDContextKey = contextKey("userID")

// userIDFromContext returns the authenticated user's id placed there by
// AuthMiddleware.
func userIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDContextKey).(string)
	return id, ok
}

// AuthMiddleware guards the authenticated routes with a bearer access token.
// Missing, malformed, badly signed and expired tokens are indistinguishable
// to the caller.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.ExtractBearerToken(r.Header)
		if token == "" {
			h.respondWithError(w, http.StatusUnauthorized, "invalid access token")
			return
		}

		userID, err := auth.GetUserIDFromToken(token, h.jwtSecret)
		if err != nil {
			h.respondWithError(w, http.StatusUnauthorized, "invalid access token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// responseWriter wraps http.ResponseWriter to capture status and size.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// RequestLogger logs each request: method, path, status, duration, size.
// Tokens and request bodies are never logged.
func (h *Handler) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		log := h.logger.Info
		switch {
		case wrapped.statusCode >= 500:
			log = h.logger.Error
		case wrapped.statusCode >= 400:
			log = h.logger.Warn
		}
		log(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"bytes_written", wrapped.written,
		)
	})
}
