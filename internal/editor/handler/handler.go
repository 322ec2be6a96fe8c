package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"wordsrecord/internal/editor/models"
	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
	"wordsrecord/pkg/platform/httputil"
	"wordsrecord/pkg/requestcontext"
)

type Service interface {
	Create(ctx context.Context, req *models.CreateEditorRequest) (*models.Editor, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Get(ctx context.Context, editorID id.EditorID) (*models.Editor, error)
	Deactivate(ctx context.Context, editorID id.EditorID) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the login route, which must sit outside the auth
// middleware.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/admin/login", h.HandleLogin)
}

// Register mounts editor management routes behind the auth middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/editors", h.HandleCreate)
	r.Get("/admin/editors/me", h.HandleMe)
	r.Delete("/admin/editors/{id}", h.HandleDeactivate)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	resp, err := h.service.Login(ctx, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateEditorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	ed, err := h.service.Create(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "create editor failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ed)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	editorID := requestcontext.EditorID(ctx)
	if editorID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "not authenticated"))
		return
	}

	ed, err := h.service.Get(ctx, editorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ed)
}

func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	editorID, err := id.ParseEditorID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid editor id"))
		return
	}

	if err := h.service.Deactivate(ctx, editorID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
