package biodata

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	dErrors "shaadi/pkg/domain-errors"
	"shaadi/pkg/platform/httputil"
	"shaadi/pkg/requestcontext"
)

// Handler wires the biodata endpoints to the service.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type createResponse struct {
	InsertedID uuid.UUID `json:"insertedId"`
	BiodataID  int64     `json:"biodataId"`
}

// HandleCreate handles POST /biodatas. The body is the profile document and is
// stored without validation; the owner comes from the authenticated claim.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, ok := readProfile(w, r)
	if !ok {
		return
	}

	record, err := h.service.Create(ctx, requestcontext.Email(ctx), profile)
	if err != nil {
		h.logger.ErrorContext(ctx, "biodata creation failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, createResponse{
		InsertedID: record.ID,
		BiodataID:  record.BiodataID,
	})
}

// HandleListOwn handles GET /biodatas. The self guard pinned any email query
// to the caller; absent the query, the caller's own records are returned.
func (h *Handler) HandleListOwn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email := r.URL.Query().Get("email")
	if email == "" {
		email = requestcontext.Email(ctx)
	}
	h.list(w, r, email)
}

// HandleListPublic handles GET /allBiodatas, the unauthenticated listing. The
// email filter is optional.
//
// Listing every profile without authentication mirrors the upstream product
// decision; flagged to stakeholders as a possible unintended exposure.
func (h *Handler) HandleListPublic(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, r.URL.Query().Get("email"))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, email string) {
	ctx := r.Context()

	out, err := h.service.List(ctx, email)
	if err != nil {
		h.logger.ErrorContext(ctx, "biodata listing failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	if out == nil {
		out = []Biodata{}
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /allBiodatas/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid identifier"))
		return
	}

	record, err := h.service.Get(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "biodata fetch failed",
			"error", err,
			"biodata_id", id,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

// HandleReplace handles PUT /biodatas/{id}: full replacement of the profile
// document. Identifier and owner are immutable.
func (h *Handler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid identifier"))
		return
	}

	profile, ok := readProfile(w, r)
	if !ok {
		return
	}

	if err := h.service.ReplaceProfile(ctx, id, profile); err != nil {
		h.logger.ErrorContext(ctx, "biodata update failed",
			"error", err,
			"biodata_id", id,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int{"modifiedCount": 1})
}

// readProfile reads the raw body and checks it is well-formed JSON. Shape is
// deliberately not validated.
func readProfile(w http.ResponseWriter, r *http.Request) (json.RawMessage, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "could not read request body"))
		return nil, false
	}
	if len(body) == 0 {
		return json.RawMessage("{}"), true
	}
	if !json.Valid(body) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "malformed request body"))
		return nil, false
	}
	return body, true
}
