package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type contextKey string

const fingerprintContextKey contextKey = "fingerprint"

// Fingerprint creates middleware that derives a creator fingerprint from the
// client address. Behind a proxy the first X-Forwarded-For hop wins,
// otherwise the connection's remote address is used.
func Fingerprint() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), fingerprintContextKey, clientAddr(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func clientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// GetFingerprint returns the creator fingerprint from the request context
func GetFingerprint(ctx context.Context) string {
	fp, _ := ctx.Value(fingerprintContextKey).(string)
	return fp
}
