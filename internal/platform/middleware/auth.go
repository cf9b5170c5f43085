// Package middleware holds the guard chain applied in front of protected
// operations. Guards are composable http middleware so each route declares its
// required trust level instead of re-implementing checks per handler.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	dErrors "shaadi/pkg/domain-errors"
	"shaadi/pkg/platform/httputil"
	"shaadi/pkg/requestcontext"

	"shaadi/internal/token"
)

// TokenVerifier validates bearer tokens and returns the embedded claim.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

// VerificationObserver is notified of verification outcomes, for metrics.
type VerificationObserver func(result string)

// RequireAuth rejects requests without a valid bearer token and attaches the
// decoded identity to the request context for downstream guards and handlers.
func RequireAuth(verifier TokenVerifier, logger *slog.Logger, observe VerificationObserver) func(http.Handler) http.Handler {
	if observe == nil {
		observe = func(string) {}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing bearer token",
					"request_id", requestcontext.RequestID(ctx),
				)
				observe("missing")
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "unauthorized access"))
				return
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				observe("invalid")
				httputil.WriteError(w, err)
				return
			}

			observe("ok")
			ctx = requestcontext.WithIdentity(ctx, requestcontext.Identity{
				Email:  claims.Email,
				Claims: claims.Payload,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
