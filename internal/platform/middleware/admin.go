package middleware

import (
	"context"
	"log/slog"
	"net/http"

	dErrors "shaadi/pkg/domain-errors"
	"shaadi/pkg/platform/httputil"
	"shaadi/pkg/requestcontext"
)

// RoleChecker reports whether the given email belongs to an admin. A missing
// user record is (false, nil), not an error.
type RoleChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// RequireAdmin short-circuits with forbidden unless the authenticated caller's
// user record carries the admin role. Always compose after RequireAuth.
func RequireAdmin(roles RoleChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			email := requestcontext.Email(ctx)

			isAdmin, err := roles.IsAdmin(ctx, email)
			if err != nil {
				logger.ErrorContext(ctx, "admin role lookup failed",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "could not verify role"))
				return
			}
			if !isAdmin {
				logger.WarnContext(ctx, "forbidden access - admin role required",
					"email", email,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "forbidden access"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
