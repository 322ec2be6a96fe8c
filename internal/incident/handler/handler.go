package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"wordsrecord/internal/incident/models"
	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
	"wordsrecord/pkg/platform/httputil"
	"wordsrecord/pkg/requestcontext"
)

type Service interface {
	Create(ctx context.Context, req *models.CreateIncidentRequest) (*models.Incident, error)
	Get(ctx context.Context, incidentID id.IncidentID) (*models.Incident, error)
	GetBySlug(ctx context.Context, slug string) (*models.Incident, error)
	List(ctx context.Context, limit, offset int) ([]*models.Incident, error)
	Update(ctx context.Context, incidentID id.IncidentID, req *models.UpdateIncidentRequest) (*models.Incident, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/incidents", h.HandleCreate)
	r.Get("/admin/incidents", h.HandleList)
	r.Get("/admin/incidents/{id}", h.HandleGet)
	r.Put("/admin/incidents/{id}", h.HandleUpdate)
}

// RegisterPublic mounts read-only incident routes.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/incidents", h.HandleList)
	r.Get("/incidents/{slug}", h.HandleGetBySlug)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateIncidentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	in, err := h.service.Create(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "create incident failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, in)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	incidentID, err := id.ParseIncidentID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid incident id"))
		return
	}

	in, err := h.service.Get(ctx, incidentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, in)
}

func (h *Handler) HandleGetBySlug(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	in, err := h.service.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, in)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	incidents, err := h.service.List(ctx, limit, offset)
	if err != nil {
		h.logger.ErrorContext(ctx, "list incidents failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"incidents": incidents,
		"count":     len(incidents),
	})
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	incidentID, err := id.ParseIncidentID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid incident id"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.UpdateIncidentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	in, err := h.service.Update(ctx, incidentID, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "update incident failed", "error", err, "request_id", requestID, "incident_id", incidentID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, in)
}
