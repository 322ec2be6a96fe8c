package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"wordsrecord/internal/source/models"
	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
	"wordsrecord/pkg/platform/httputil"
	"wordsrecord/pkg/requestcontext"
)

type Service interface {
	Create(ctx context.Context, req *models.CreateSourceRequest) (*models.Source, error)
	Get(ctx context.Context, sourceID id.SourceID) (*models.Source, error)
	List(ctx context.Context, limit, offset int) ([]*models.Source, error)
	Update(ctx context.Context, sourceID id.SourceID, req *models.UpdateSourceRequest) (*models.Source, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/sources", h.HandleCreate)
	r.Get("/admin/sources", h.HandleList)
	r.Get("/admin/sources/{id}", h.HandleGet)
	r.Put("/admin/sources/{id}", h.HandleUpdate)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateSourceRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	src, err := h.service.Create(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "create source failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, src)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sourceID, err := id.ParseSourceID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid source id"))
		return
	}

	src, err := h.service.Get(ctx, sourceID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, src)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	sources, err := h.service.List(ctx, limit, offset)
	if err != nil {
		h.logger.ErrorContext(ctx, "list sources failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"sources": sources,
		"count":   len(sources),
	})
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	sourceID, err := id.ParseSourceID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid source id"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.UpdateSourceRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	src, err := h.service.Update(ctx, sourceID, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "update source failed", "error", err, "request_id", requestID, "source_id", sourceID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, src)
}
