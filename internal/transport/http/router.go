package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shaadi/internal/biodata"
	"shaadi/internal/favourites"
	"shaadi/internal/platform/metrics"
	"shaadi/internal/platform/middleware"
	"shaadi/internal/ratelimit"
	"shaadi/internal/token"
	"shaadi/internal/users"
)

// Deps collects everything the router needs. Handlers own their services; the
// router only decides which guards sit in front of which route.
type Deps struct {
	Tokens     *token.Handler
	Users      *users.Handler
	Biodatas   *biodata.Handler
	Favourites *favourites.Handler

	Verifier    middleware.TokenVerifier
	Roles       middleware.RoleChecker
	IssueLimit  *ratelimit.Limiter
	OpsHash     string
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
}

// NewRouter wires the full route table. Guard order is fixed: request identity
// first, then role and ownership checks, so every rejection carries a
// request_id and client metadata in the logs.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	if d.Metrics != nil {
		r.Use(middleware.Instrument(d.Metrics))
	}

	requireAuth := middleware.RequireAuth(d.Verifier, d.Logger, d.observeVerification())
	requireAdmin := middleware.RequireAdmin(d.Roles, d.Logger)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("shaadi server running"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if d.IssueLimit != nil {
			r.Use(ratelimit.Middleware(d.IssueLimit, d.Logger))
		}
		r.Post("/jwt", d.Tokens.HandleIssue)
	})

	r.Post("/users", d.Users.HandleRegister)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth, requireAdmin)
		r.Get("/users", d.Users.HandleList)
		r.Patch("/users/admin/{id}", d.Users.HandlePromote)
		r.Delete("/users/{id}", d.Users.HandleDelete)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth, middleware.RequireSelf(middleware.SelfFromPath("email"), d.Logger))
		r.Get("/users/admin/{email}", d.Users.HandleIsAdmin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireOpsToken(d.OpsHash, d.Logger))
		r.Post("/users/admin/bootstrap", d.Users.HandleBootstrap)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/biodatas", d.Biodatas.HandleCreate)
		r.Get("/allBiodatas/{id}", d.Biodatas.HandleGet)
		r.Put("/biodatas/{id}", d.Biodatas.HandleReplace)

		r.Post("/favourites", d.Favourites.HandleAdd)
		r.Get("/favourites", d.Favourites.HandleListOwn)
		r.Delete("/favourites/{id}", d.Favourites.HandleRemove)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth, middleware.RequireSelf(middleware.SelfFromQuery("email"), d.Logger))
		r.Get("/biodatas", d.Biodatas.HandleListOwn)
	})

	// Unauthenticated listing mirrors the public browsing surface of the
	// original product. See HandleListPublic for the exposure caveat.
	r.Get("/allBiodatas", d.Biodatas.HandleListPublic)

	return r
}

func (d Deps) observeVerification() middleware.VerificationObserver {
	if d.Metrics == nil {
		return func(string) {}
	}
	return func(result string) {
		d.Metrics.TokenVerifications.WithLabelValues(result).Inc()
	}
}
