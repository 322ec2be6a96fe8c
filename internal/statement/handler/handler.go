package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"wordsrecord/internal/statement/models"
	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
	"wordsrecord/pkg/platform/httputil"
	"wordsrecord/pkg/requestcontext"
)

type Service interface {
	Create(ctx context.Context, req *models.CreateStatementRequest) (*models.Statement, error)
	Get(ctx context.Context, statementID id.StatementID) (*models.Statement, error)
	Update(ctx context.Context, statementID id.StatementID, req *models.UpdateStatementRequest) (*models.Statement, error)
	Delete(ctx context.Context, statementID id.StatementID) error
	ListByPerson(ctx context.Context, personID id.PersonID) ([]*models.Statement, error)
	ListByIncident(ctx context.Context, incidentID id.IncidentID) ([]*models.Statement, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/statements", h.HandleCreate)
	r.Get("/admin/statements/{id}", h.HandleGet)
	r.Put("/admin/statements/{id}", h.HandleUpdate)
	r.Delete("/admin/statements/{id}", h.HandleDelete)
	r.Get("/admin/persons/{id}/statements", h.HandleListByPerson)
	r.Get("/admin/incidents/{id}/statements", h.HandleListByIncident)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateStatementRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	st, err := h.service.Create(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "create statement failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, st)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	statementID, err := id.ParseStatementID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid statement id"))
		return
	}

	st, err := h.service.Get(ctx, statementID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, st)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	statementID, err := id.ParseStatementID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid statement id"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.UpdateStatementRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	st, err := h.service.Update(ctx, statementID, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "update statement failed", "error", err, "request_id", requestID, "statement_id", statementID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, st)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	statementID, err := id.ParseStatementID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid statement id"))
		return
	}

	if err := h.service.Delete(ctx, statementID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleListByPerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personID, err := id.ParsePersonID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid person id"))
		return
	}

	statements, err := h.service.ListByPerson(ctx, personID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"statements": statements,
		"count":      len(statements),
	})
}

func (h *Handler) HandleListByIncident(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	incidentID, err := id.ParseIncidentID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid incident id"))
		return
	}

	statements, err := h.service.ListByIncident(ctx, incidentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"statements": statements,
		"count":      len(statements),
	})
}
