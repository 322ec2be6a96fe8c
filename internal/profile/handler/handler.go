package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"wordsrecord/internal/profile/service"
	"wordsrecord/pkg/platform/httputil"
)

type Service interface {
	GetBySlug(ctx context.Context, slug string) (*service.Profile, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// RegisterPublic mounts the read-only profile route.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/profiles/{slug}", h.HandleGet)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, err := h.service.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}
