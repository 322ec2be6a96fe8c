package service

import (
	"context"
	"errors"
	"log/slog"

	"wordsrecord/internal/audit"
	"wordsrecord/internal/person/models"
	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
	"wordsrecord/pkg/platform/sentinel"
	"wordsrecord/pkg/requestcontext"
)

// PersonStore defines the persistence contract the service depends on.
type PersonStore interface {
	Create(ctx context.Context, person *models.Person) error
	Update(ctx context.Context, person *models.Person) error
	FindByID(ctx context.Context, personID id.PersonID) (*models.Person, error)
	FindBySlug(ctx context.Context, slug string) (*models.Person, error)
	List(ctx context.Context, limit, offset int) ([]*models.Person, error)
	Delete(ctx context.Context, personID id.PersonID) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates person record management.
type Service struct {
	persons   PersonStore
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

func New(persons PersonStore, opts ...Option) *Service {
	s := &Service{persons: persons}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Create(ctx context.Context, req *models.CreatePersonRequest) (*models.Person, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := models.NewPerson(id.NewPersonID(), req.Slug, req.FullName, req.Bio, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.persons.Create(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "slug already in use")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create person")
	}

	s.emitAudit(ctx, audit.EventPersonCreated, p.ID, map[string]string{"slug": p.Slug})
	return p, nil
}

func (s *Service) Get(ctx context.Context, personID id.PersonID) (*models.Person, error) {
	if personID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "person ID required")
	}
	p, err := s.persons.FindByID(ctx, personID)
	if err != nil {
		return nil, wrapPersonErr(err, "failed to load person")
	}
	return p, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.Person, error) {
	if slug == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "slug required")
	}
	p, err := s.persons.FindBySlug(ctx, slug)
	if err != nil {
		return nil, wrapPersonErr(err, "failed to load person")
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Person, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	persons, err := s.persons.List(ctx, limit, offset)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list persons")
	}
	return persons, nil
}

// Update applies partial updates to the editable person fields. The
// nationality cache columns never pass through here.
func (s *Service) Update(ctx context.Context, personID id.PersonID, req *models.UpdatePersonRequest) (*models.Person, error) {
	if personID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "person ID required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.persons.FindByID(ctx, personID)
	if err != nil {
		return nil, wrapPersonErr(err, "failed to load person")
	}

	if req.FullName != nil {
		p.FullName = *req.FullName
	}
	if req.Slug != nil {
		p.Slug = *req.Slug
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.UpdatedAt = requestcontext.Now(ctx)

	if err := s.persons.Update(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "slug already in use")
		}
		return nil, wrapPersonErr(err, "failed to update person")
	}

	s.emitAudit(ctx, audit.EventPersonUpdated, p.ID, map[string]string{"slug": p.Slug})
	return p, nil
}

func (s *Service) Delete(ctx context.Context, personID id.PersonID) error {
	if personID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "person ID required")
	}
	if err := s.persons.Delete(ctx, personID); err != nil {
		return wrapPersonErr(err, "failed to delete person")
	}
	s.emitAudit(ctx, audit.EventPersonDeleted, personID, nil)
	return nil
}

func (s *Service) emitAudit(ctx context.Context, action audit.Action, personID id.PersonID, detail map[string]string) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(action),
			"person_id", personID,
			"log_type", "audit",
		)
	}
	if s.publisher == nil {
		return
	}
	err := s.publisher.Emit(ctx, audit.Event{
		Action:     action,
		EntityType: "person",
		EntityID:   personID.String(),
		Detail:     detail,
	})
	if err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", action,
			"error", err,
		)
	}
}

func wrapPersonErr(err error, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "person not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}
