package service

import (
	"context"
	"errors"
	"log/slog"

	"wordsrecord/internal/audit"
	"wordsrecord/internal/statement/models"
	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
	"wordsrecord/pkg/platform/sentinel"
	"wordsrecord/pkg/requestcontext"
)

type StatementStore interface {
	Create(ctx context.Context, statement *models.Statement) error
	Update(ctx context.Context, statement *models.Statement) error
	Delete(ctx context.Context, statementID id.StatementID) error
	FindByID(ctx context.Context, statementID id.StatementID) (*models.Statement, error)
	ListByPerson(ctx context.Context, personID id.PersonID) ([]*models.Statement, error)
	ListByIncident(ctx context.Context, incidentID id.IncidentID) ([]*models.Statement, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	statements StatementStore
	logger     *slog.Logger
	publisher  AuditPublisher
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func New(statements StatementStore, opts ...Option) *Service {
	s := &Service{statements: statements}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Create(ctx context.Context, req *models.CreateStatementRequest) (*models.Statement, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	personID, err := id.ParsePersonID(req.PersonID)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	st := &models.Statement{
		ID:        id.NewStatementID(),
		PersonID:  personID,
		Type:      models.Type(req.Type),
		Body:      req.Body,
		SaidAt:    req.SaidAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.IncidentID != "" {
		parsed, err := id.ParseIncidentID(req.IncidentID)
		if err != nil {
			return nil, err
		}
		st.IncidentID = &parsed
	}
	if req.SourceID != "" {
		parsed, err := id.ParseSourceID(req.SourceID)
		if err != nil {
			return nil, err
		}
		st.SourceID = &parsed
	}
	if req.ResponseTo != "" {
		parsed, err := id.ParseStatementID(req.ResponseTo)
		if err != nil {
			return nil, err
		}
		st.ResponseTo = &parsed
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}

	if st.ResponseTo != nil {
		if _, err := s.statements.FindByID(ctx, *st.ResponseTo); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil, dErrors.New(dErrors.CodeValidation, "referenced statement does not exist")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load referenced statement")
		}
	}

	if err := s.statements.Create(ctx, st); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create statement")
	}

	s.emitAudit(ctx, audit.EventStatementCreated, st)
	return st, nil
}

func (s *Service) Get(ctx context.Context, statementID id.StatementID) (*models.Statement, error) {
	if statementID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "statement ID required")
	}
	st, err := s.statements.FindByID(ctx, statementID)
	if err != nil {
		return nil, wrapStatementErr(err, "failed to load statement")
	}
	return st, nil
}

func (s *Service) ListByPerson(ctx context.Context, personID id.PersonID) ([]*models.Statement, error) {
	if personID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "person ID required")
	}
	statements, err := s.statements.ListByPerson(ctx, personID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list statements")
	}
	return statements, nil
}

func (s *Service) ListByIncident(ctx context.Context, incidentID id.IncidentID) ([]*models.Statement, error) {
	if incidentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "incident ID required")
	}
	statements, err := s.statements.ListByIncident(ctx, incidentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list statements")
	}
	return statements, nil
}

func (s *Service) Update(ctx context.Context, statementID id.StatementID, req *models.UpdateStatementRequest) (*models.Statement, error) {
	if statementID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "statement ID required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	st, err := s.statements.FindByID(ctx, statementID)
	if err != nil {
		return nil, wrapStatementErr(err, "failed to load statement")
	}

	if req.Body != nil {
		st.Body = *req.Body
	}
	if req.SaidAt != nil {
		st.SaidAt = req.SaidAt
	}
	st.UpdatedAt = requestcontext.Now(ctx)

	if err := s.statements.Update(ctx, st); err != nil {
		return nil, wrapStatementErr(err, "failed to update statement")
	}

	s.emitAudit(ctx, audit.EventStatementUpdated, st)
	return st, nil
}

func (s *Service) Delete(ctx context.Context, statementID id.StatementID) error {
	if statementID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "statement ID required")
	}
	st, err := s.statements.FindByID(ctx, statementID)
	if err != nil {
		return wrapStatementErr(err, "failed to load statement")
	}
	if err := s.statements.Delete(ctx, statementID); err != nil {
		return wrapStatementErr(err, "failed to delete statement")
	}
	s.emitAudit(ctx, audit.EventStatementDeleted, st)
	return nil
}

func (s *Service) emitAudit(ctx context.Context, action audit.Action, st *models.Statement) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(action),
			"statement_id", st.ID,
			"person_id", st.PersonID,
			"log_type", "audit",
		)
	}
	if s.publisher == nil {
		return
	}
	err := s.publisher.Emit(ctx, audit.Event{
		Action:     action,
		EntityType: "statement",
		EntityID:   st.ID.String(),
		Detail:     map[string]string{"person_id": st.PersonID.String()},
	})
	if err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", action,
			"error", err,
		)
	}
}

func wrapStatementErr(err error, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "statement not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}
