package middleware

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"shaadi/pkg/requestcontext"
)

// ClientMetadata extracts the client IP, raw User-Agent and a parsed device
// description from the request and adds them to the context for audit events.
// Apply early in the chain.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithClientMetadata(r.Context(), clientIP(r), r.Header.Get("User-Agent"))
		ctx = requestcontext.WithDevice(ctx, deviceDescription(r.Header.Get("User-Agent")))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// deviceDescription reduces a User-Agent string to "browser/os" for audit
// records. Unknown agents come back as "unknown".
func deviceDescription(rawUA string) string {
	if rawUA == "" {
		return "unknown"
	}
	ua := useragent.New(rawUA)
	name, _ := ua.Browser()
	os := ua.OS()
	if name == "" && os == "" {
		return "unknown"
	}
	if name == "" {
		name = "unknown"
	}
	if os == "" {
		os = "unknown"
	}
	return name + "/" + os
}

// clientIP extracts the real client IP, handling proxies and load balancers.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// X-Forwarded-For can contain multiple IPs; the first is the client.
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	// RemoteAddr is "ip:port" (or "[::1]:port" for IPv6).
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return addr[:idx]
		}
		return addr
	}
	return ""
}
