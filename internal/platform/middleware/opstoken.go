package middleware

import (
	"log/slog"
	"net/http"

	dErrors "shaadi/pkg/domain-errors"
	"shaadi/pkg/platform/httputil"
	"shaadi/pkg/platform/secrets"
	"shaadi/pkg/requestcontext"
)

// RequireOpsToken guards operational endpoints with a pre-shared token,
// verified against a bcrypt hash from config. An empty hash disables the
// guarded endpoints entirely.
func RequireOpsToken(tokenHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if tokenHash == "" || !secrets.Verify(r.Header.Get("X-Ops-Token"), tokenHash) {
				logger.WarnContext(ctx, "ops token mismatch",
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "forbidden access"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
