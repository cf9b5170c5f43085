package token

import (
	"log/slog"
	"net/http"

	"shaadi/internal/audit"
	"shaadi/internal/platform/metrics"
	"shaadi/pkg/platform/httputil"
	"shaadi/pkg/requestcontext"
)

// Handler exposes token issuance over HTTP.
type Handler struct {
	service *Service
	audit   *audit.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewHandler(service *Service, publisher *audit.Publisher, m *metrics.Metrics, logger *slog.Logger) *Handler {
	return &Handler{service: service, audit: publisher, metrics: m, logger: logger}
}

type issueResponse struct {
	Token string `json:"token"`
}

// HandleIssue handles POST /jwt. The request body becomes the token payload
// verbatim, so clients get back whatever identity shape they sent in.
func (h *Handler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload, ok := httputil.Decode[map[string]any](w, r, h.logger)
	if !ok {
		return
	}

	signed, err := h.service.Issue(payload)
	if err != nil {
		h.logger.ErrorContext(ctx, "token issuance failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	subject, _ := payload["email"].(string)
	if h.audit != nil {
		h.audit.Emit(ctx, audit.EventTokenIssued, subject)
	}
	if h.metrics != nil {
		h.metrics.TokensIssued.Inc()
	}
	httputil.WriteJSON(w, http.StatusOK, issueResponse{Token: signed})
}
