package service

import (
	"context"
	"errors"
	"log/slog"

	"wordsrecord/internal/audit"
	"wordsrecord/internal/source/models"
	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
	"wordsrecord/pkg/platform/sentinel"
	"wordsrecord/pkg/requestcontext"
)

type SourceStore interface {
	Create(ctx context.Context, source *models.Source) error
	Update(ctx context.Context, source *models.Source) error
	FindByID(ctx context.Context, sourceID id.SourceID) (*models.Source, error)
	List(ctx context.Context, limit, offset int) ([]*models.Source, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	sources   SourceStore
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

func New(sources SourceStore, opts ...Option) *Service {
	s := &Service{sources: sources}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const defaultReliability = 50

func (s *Service) Create(ctx context.Context, req *models.CreateSourceRequest) (*models.Source, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	reliability := defaultReliability
	if req.Reliability != nil {
		reliability = *req.Reliability
	}
	src, err := models.NewSource(id.NewSourceID(), req.Title, req.URL, req.Publication,
		req.PublishedAt, reliability, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.sources.Create(ctx, src); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create source")
	}

	s.emitAudit(ctx, audit.EventSourceCreated, src)
	return src, nil
}

func (s *Service) Get(ctx context.Context, sourceID id.SourceID) (*models.Source, error) {
	if sourceID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "source ID required")
	}
	src, err := s.sources.FindByID(ctx, sourceID)
	if err != nil {
		return nil, wrapSourceErr(err, "failed to load source")
	}
	return src, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Source, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	sources, err := s.sources.List(ctx, limit, offset)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list sources")
	}
	return sources, nil
}

func (s *Service) Update(ctx context.Context, sourceID id.SourceID, req *models.UpdateSourceRequest) (*models.Source, error) {
	if sourceID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "source ID required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	src, err := s.sources.FindByID(ctx, sourceID)
	if err != nil {
		return nil, wrapSourceErr(err, "failed to load source")
	}

	if req.Title != nil {
		src.Title = *req.Title
	}
	if req.URL != nil {
		src.URL = *req.URL
	}
	if req.Publication != nil {
		src.Publication = *req.Publication
	}
	if req.PublishedAt != nil {
		src.PublishedAt = req.PublishedAt
	}
	if req.Reliability != nil {
		src.Reliability = *req.Reliability
	}
	src.UpdatedAt = requestcontext.Now(ctx)

	if err := s.sources.Update(ctx, src); err != nil {
		return nil, wrapSourceErr(err, "failed to update source")
	}

	s.emitAudit(ctx, audit.EventSourceUpdated, src)
	return src, nil
}

func (s *Service) emitAudit(ctx context.Context, action audit.Action, src *models.Source) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(action),
			"source_id", src.ID,
			"log_type", "audit",
		)
	}
	if s.publisher == nil {
		return
	}
	err := s.publisher.Emit(ctx, audit.Event{
		Action:     action,
		EntityType: "source",
		EntityID:   src.ID.String(),
		Detail:     map[string]string{"title": src.Title},
	})
	if err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", action,
			"error", err,
		)
	}
}

func wrapSourceErr(err error, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "source not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}
