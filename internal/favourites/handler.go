package favourites

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	dErrors "shaadi/pkg/domain-errors"
	"shaadi/pkg/platform/httputil"
	"shaadi/pkg/requestcontext"
)

// Handler wires the favourite endpoints to the service.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type addRequest struct {
	BiodataID int64 `json:"biodataUserBiodataId"`
}

type addResponse struct {
	InsertedID uuid.UUID `json:"insertedId"`
}

// HandleAdd handles POST /favourites. The user half of the composite key is
// always the authenticated caller.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[addRequest](w, r, h.logger)
	if !ok {
		return
	}

	record, err := h.service.Add(ctx, requestcontext.Email(ctx), req.BiodataID)
	if err != nil {
		h.logger.WarnContext(ctx, "favourite creation rejected",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, addResponse{InsertedID: record.ID})
}

// HandleListOwn handles GET /favourites.
func (h *Handler) HandleListOwn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	out, err := h.service.ListOwn(ctx, requestcontext.Email(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "favourite listing failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	if out == nil {
		out = []Favourite{}
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleRemove handles DELETE /favourites/{id}.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid identifier"))
		return
	}

	if err := h.service.Remove(ctx, id); err != nil {
		h.logger.ErrorContext(ctx, "favourite deletion failed",
			"error", err,
			"favourite_id", id,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int{"deletedCount": 1})
}
