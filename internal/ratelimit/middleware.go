package ratelimit

import (
	"log/slog"
	"net/http"

	"shaadi/pkg/platform/httputil"
	"shaadi/pkg/requestcontext"
)

// Middleware rejects requests over budget with 429. The limiter fails open:
// when the backing store is unreachable, requests pass and the failure is
// logged, so Redis downtime never takes token issuance down with it.
func Middleware(limiter *Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := requestcontext.ClientIP(ctx)
			if key == "" {
				key = r.RemoteAddr
			}

			allowed, err := limiter.Allow(ctx, key)
			if err != nil {
				logger.ErrorContext(ctx, "rate limit check failed, failing open",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				logger.WarnContext(ctx, "rate limit exceeded",
					"client_ip", key,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteJSON(w, http.StatusTooManyRequests, httputil.ErrorBody{Message: "too many requests"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
