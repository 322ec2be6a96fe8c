package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"wordsrecord/internal/audit"
	"wordsrecord/internal/editor/models"
	"wordsrecord/internal/editor/token"
	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
	"wordsrecord/pkg/platform/sentinel"
	"wordsrecord/pkg/requestcontext"
	"wordsrecord/pkg/secrets"
)

const defaultTokenTTL = time.Hour

type EditorStore interface {
	Create(ctx context.Context, ed *models.Editor) error
	Update(ctx context.Context, ed *models.Editor) error
	FindByID(ctx context.Context, editorID id.EditorID) (*models.Editor, error)
	FindByEmail(ctx context.Context, email string) (*models.Editor, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	editors   EditorStore
	tokens    *token.Service
	tokenTTL  time.Duration
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

func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.tokenTTL = ttl
	}
}

func New(editors EditorStore, tokens *token.Service, opts ...Option) *Service {
	s := &Service{
		editors:  editors,
		tokens:   tokens,
		tokenTTL: defaultTokenTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new editor account with a bcrypt-hashed password.
func (s *Service) Create(ctx context.Context, req *models.CreateEditorRequest) (*models.Editor, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := secrets.Hash(req.Password)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	now := requestcontext.Now(ctx)
	ed := &models.Editor{
		ID:           id.NewEditorID(),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.Role(req.Role),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.editors.Create(ctx, ed); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "email already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create editor")
	}
	return ed, nil
}

// Login verifies credentials and returns a signed access token. Failures
// are deliberately indistinct so callers cannot probe which emails exist.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ed, err := s.editors.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load editor")
	}
	if !ed.Active {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}
	if err := secrets.Verify(req.Password, ed.PasswordHash); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "failed login attempt",
				"editor_id", ed.ID,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	accessToken, err := s.tokens.GenerateAccessToken(ed.ID, string(ed.Role), s.tokenTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}

	s.emitLoginAudit(ctx, ed)
	return &models.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokenTTL.Seconds()),
	}, nil
}

func (s *Service) Get(ctx context.Context, editorID id.EditorID) (*models.Editor, error) {
	ed, err := s.editors.FindByID(ctx, editorID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "editor not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load editor")
	}
	return ed, nil
}

// Deactivate disables an editor account. Existing tokens expire naturally.
func (s *Service) Deactivate(ctx context.Context, editorID id.EditorID) error {
	ed, err := s.editors.FindByID(ctx, editorID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "editor not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load editor")
	}
	ed.Active = false
	ed.UpdatedAt = requestcontext.Now(ctx)
	if err := s.editors.Update(ctx, ed); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to deactivate editor")
	}
	return nil
}

func (s *Service) emitLoginAudit(ctx context.Context, ed *models.Editor) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(audit.EventEditorLogin),
			"editor_id", ed.ID,
			"log_type", "audit",
		)
	}
	if s.publisher == nil {
		return
	}
	err := s.publisher.Emit(ctx, audit.Event{
		Action:     audit.EventEditorLogin,
		EntityType: "editor",
		EntityID:   ed.ID.String(),
		Detail:     map[string]string{"role": string(ed.Role)},
	})
	if err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", audit.EventEditorLogin,
			"error", err,
		)
	}
}
