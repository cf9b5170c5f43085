package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	dErrors "shaadi/pkg/domain-errors"
	"shaadi/pkg/platform/httputil"
	"shaadi/pkg/requestcontext"
)

// Handler wires the user endpoints to the service. Guards are composed in the
// transport router; handlers assume the chain already ran.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type registerRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type registerResponse struct {
	InsertedID *uuid.UUID `json:"insertedId"`
	Message    string     `json:"message,omitempty"`
}

// HandleRegister handles POST /users.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[registerRequest](w, r, h.logger)
	if !ok {
		return
	}

	insertedID, err := h.service.Register(ctx, req.Email, req.Name)
	if err != nil {
		h.logger.ErrorContext(ctx, "user registration failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	if insertedID == nil {
		httputil.WriteJSON(w, http.StatusOK, registerResponse{Message: "User already exists"})
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, registerResponse{InsertedID: insertedID})
}

// HandleList handles GET /users.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	out, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "user listing failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	if out == nil {
		out = []User{}
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleIsAdmin handles GET /users/admin/{email}. The self guard already
// pinned the email to the caller's own.
func (h *Handler) HandleIsAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email := chi.URLParam(r, "email")

	isAdmin, err := h.service.IsAdmin(ctx, email)
	if err != nil {
		h.logger.ErrorContext(ctx, "admin check failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"admin": isAdmin})
}

// HandlePromote handles PATCH /users/admin/{id}.
func (h *Handler) HandlePromote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid identifier"))
		return
	}

	if err := h.service.Promote(ctx, id); err != nil {
		h.logger.ErrorContext(ctx, "user promotion failed",
			"error", err,
			"user_id", id,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int{"modifiedCount": 1})
}

// HandleDelete handles DELETE /users/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid identifier"))
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.logger.ErrorContext(ctx, "user deletion failed",
			"error", err,
			"user_id", id,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int{"deletedCount": 1})
}

type bootstrapRequest struct {
	Email string `json:"email"`
}

// HandleBootstrap handles POST /users/admin/bootstrap, guarded by the ops
// token. Promotes the first admin while none exists.
func (h *Handler) HandleBootstrap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[bootstrapRequest](w, r, h.logger)
	if !ok {
		return
	}
	if req.Email == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "email is required"))
		return
	}

	if err := h.service.Bootstrap(ctx, req.Email); err != nil {
		h.logger.ErrorContext(ctx, "admin bootstrap failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int{"modifiedCount": 1})
}
