package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"wordsrecord/internal/nationality/models"
	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
	"wordsrecord/pkg/platform/httputil"
	"wordsrecord/pkg/requestcontext"
)

// Service defines the interface for nationality fact operations.
type Service interface {
	Upsert(ctx context.Context, req *models.UpsertFactRequest) (*models.UpsertResult, error)
	Close(ctx context.Context, factID id.FactID, endDate *time.Time) (*models.Fact, error)
	GetFact(ctx context.Context, factID id.FactID) (*models.Fact, error)
	ListForPerson(ctx context.Context, personID id.PersonID) ([]*models.Fact, error)
	ListActiveForPerson(ctx context.Context, personID id.PersonID) ([]*models.Fact, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/nationality-facts", h.HandleUpsert)
	r.Get("/admin/nationality-facts/{id}", h.HandleGet)
	r.Post("/admin/nationality-facts/{id}/close", h.HandleClose)
	r.Get("/admin/persons/{id}/nationality-facts", h.HandleListForPerson)
}

// HandleUpsert creates or updates a fact. Validation failures come back
// as a 400 with the full violation list.
func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.UpsertFactRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Upsert(ctx, req)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeValidation) {
			h.logger.ErrorContext(ctx, "upsert fact failed", "error", err, "request_id", requestID)
		}
		httputil.WriteError(w, err)
		return
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	httputil.WriteJSON(w, status, toFactResponse(res.Fact))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	factID, err := id.ParseFactID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid fact id"))
		return
	}

	fact, err := h.service.GetFact(ctx, factID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toFactResponse(fact))
}

func (h *Handler) HandleClose(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	factID, err := id.ParseFactID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid fact id"))
		return
	}

	req, ok := httputil.DecodeJSON[models.CloseFactRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	fact, err := h.service.Close(ctx, factID, req.EndDate)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "close fact failed", "error", err, "request_id", requestID, "fact_id", factID)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toFactResponse(fact))
}

func (h *Handler) HandleListForPerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personID, err := id.ParsePersonID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid person id"))
		return
	}

	var facts []*models.Fact
	if r.URL.Query().Get("active") == "true" {
		facts, err = h.service.ListActiveForPerson(ctx, personID)
	} else {
		facts, err = h.service.ListForPerson(ctx, personID)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "list facts failed", "error", err, "person_id", personID)
		httputil.WriteError(w, err)
		return
	}

	out := make([]*FactResponse, 0, len(facts))
	for _, f := range facts {
		out = append(out, toFactResponse(f))
	}
	httputil.WriteJSON(w, http.StatusOK, &FactListResponse{Facts: out, Count: len(out)})
}
