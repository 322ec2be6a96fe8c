package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"wordsrecord/internal/person/models"
	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
	"wordsrecord/pkg/platform/httputil"
	"wordsrecord/pkg/requestcontext"
)

// Service defines the interface for person operations.
// Returns domain objects, not HTTP response DTOs.
type Service interface {
	Create(ctx context.Context, req *models.CreatePersonRequest) (*models.Person, error)
	Get(ctx context.Context, personID id.PersonID) (*models.Person, error)
	GetBySlug(ctx context.Context, slug string) (*models.Person, error)
	List(ctx context.Context, limit, offset int) ([]*models.Person, error)
	Update(ctx context.Context, personID id.PersonID, req *models.UpdatePersonRequest) (*models.Person, error)
	Delete(ctx context.Context, personID id.PersonID) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the admin person routes. Public read access goes
// through the profile module instead.
func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/persons", h.HandleCreate)
	r.Get("/admin/persons", h.HandleList)
	r.Get("/admin/persons/{id}", h.HandleGet)
	r.Put("/admin/persons/{id}", h.HandleUpdate)
	r.Delete("/admin/persons/{id}", h.HandleDelete)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreatePersonRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	p, err := h.service.Create(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "create person failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toPersonResponse(p))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personID, err := id.ParsePersonID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid person id"))
		return
	}

	p, err := h.service.Get(ctx, personID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toPersonResponse(p))
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	persons, err := h.service.List(ctx, limit, offset)
	if err != nil {
		h.logger.ErrorContext(ctx, "list persons failed", "error", err)
		httputil.WriteError(w, err)
		return
	}

	out := make([]*PersonResponse, 0, len(persons))
	for _, p := range persons {
		out = append(out, toPersonResponse(p))
	}
	httputil.WriteJSON(w, http.StatusOK, &PersonListResponse{Persons: out, Count: len(out)})
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	personID, err := id.ParsePersonID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid person id"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.UpdatePersonRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	p, err := h.service.Update(ctx, personID, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "update person failed", "error", err, "request_id", requestID, "person_id", personID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toPersonResponse(p))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personID, err := id.ParsePersonID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid person id"))
		return
	}

	if err := h.service.Delete(ctx, personID); err != nil {
		h.logger.ErrorContext(ctx, "delete person failed", "error", err, "person_id", personID)
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
