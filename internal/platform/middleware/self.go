package middleware

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "shaadi/pkg/domain-errors"
	"shaadi/pkg/platform/httputil"
	"shaadi/pkg/requestcontext"
)

// EmailExtractor pulls a caller-supplied email out of the request. An empty
// return means the request did not scope itself to any identity.
type EmailExtractor func(r *http.Request) string

// SelfFromPath extracts the email from a chi URL parameter.
func SelfFromPath(param string) EmailExtractor {
	return func(r *http.Request) string {
		return chi.URLParam(r, param)
	}
}

// SelfFromQuery extracts the email from a query parameter.
func SelfFromQuery(param string) EmailExtractor {
	return func(r *http.Request) string {
		return r.URL.Query().Get(param)
	}
}

// RequireSelf short-circuits with forbidden when the request names an identity
// other than the authenticated caller's. The comparison is exact and
// case-sensitive. Requests that name no identity pass through; the handler then
// scopes to the caller itself. Always compose after RequireAuth.
func RequireSelf(extract EmailExtractor, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			supplied := extract(r)
			if supplied != "" && supplied != requestcontext.Email(ctx) {
				logger.WarnContext(ctx, "forbidden access - identity mismatch",
					"supplied", supplied,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "forbidden access"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
