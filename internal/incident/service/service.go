package service

import (
	"context"
	"errors"
	"log/slog"

	"wordsrecord/internal/audit"
	"wordsrecord/internal/incident/models"
	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
	"wordsrecord/pkg/platform/sentinel"
	"wordsrecord/pkg/requestcontext"
)

type IncidentStore interface {
	Create(ctx context.Context, incident *models.Incident) error
	Update(ctx context.Context, incident *models.Incident) error
	FindByID(ctx context.Context, incidentID id.IncidentID) (*models.Incident, error)
	FindBySlug(ctx context.Context, slug string) (*models.Incident, error)
	List(ctx context.Context, limit, offset int) ([]*models.Incident, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	incidents IncidentStore
	logger    *slog.Logger
	publisher AuditPublisher
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

func New(incidents IncidentStore, opts ...Option) *Service {
	s := &Service{incidents: incidents}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Create(ctx context.Context, req *models.CreateIncidentRequest) (*models.Incident, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	in, err := models.NewIncident(id.NewIncidentID(), req.Slug, req.Title, req.Summary,
		models.Status(req.Status), requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.incidents.Create(ctx, in); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "slug already in use")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create incident")
	}

	s.emitAudit(ctx, audit.EventIncidentCreated, in)
	return in, nil
}

func (s *Service) Get(ctx context.Context, incidentID id.IncidentID) (*models.Incident, error) {
	if incidentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "incident ID required")
	}
	in, err := s.incidents.FindByID(ctx, incidentID)
	if err != nil {
		return nil, wrapIncidentErr(err, "failed to load incident")
	}
	return in, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.Incident, error) {
	if slug == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "slug required")
	}
	in, err := s.incidents.FindBySlug(ctx, slug)
	if err != nil {
		return nil, wrapIncidentErr(err, "failed to load incident")
	}
	return in, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Incident, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	incidents, err := s.incidents.List(ctx, limit, offset)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list incidents")
	}
	return incidents, nil
}

func (s *Service) Update(ctx context.Context, incidentID id.IncidentID, req *models.UpdateIncidentRequest) (*models.Incident, error) {
	if incidentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "incident ID required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	in, err := s.incidents.FindByID(ctx, incidentID)
	if err != nil {
		return nil, wrapIncidentErr(err, "failed to load incident")
	}

	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Summary != nil {
		in.Summary = *req.Summary
	}
	if req.Status != nil {
		in.Status = models.Status(*req.Status)
	}
	if req.Started != nil {
		in.StartedAt = req.Started
	}
	if req.Ended != nil {
		in.EndedAt = req.Ended
	}
	in.UpdatedAt = requestcontext.Now(ctx)

	if err := s.incidents.Update(ctx, in); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "slug already in use")
		}
		return nil, wrapIncidentErr(err, "failed to update incident")
	}

	s.emitAudit(ctx, audit.EventIncidentUpdated, in)
	return in, nil
}

func (s *Service) emitAudit(ctx context.Context, action audit.Action, in *models.Incident) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(action),
			"incident_id", in.ID,
			"slug", in.Slug,
			"log_type", "audit",
		)
	}
	if s.publisher == nil {
		return
	}
	err := s.publisher.Emit(ctx, audit.Event{
		Action:     action,
		EntityType: "incident",
		EntityID:   in.ID.String(),
		Detail:     map[string]string{"slug": in.Slug},
	})
	if err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", action,
			"error", err,
		)
	}
}

func wrapIncidentErr(err error, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "incident not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}
