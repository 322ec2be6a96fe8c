package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"wordsrecord/internal/audit"
	natmetrics "wordsrecord/internal/nationality/metrics"
	"wordsrecord/internal/nationality/models"
	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
)

// FactStore defines the persistence contract for nationality facts.
type FactStore interface {
	Create(ctx context.Context, fact *models.Fact) error
	Update(ctx context.Context, fact *models.Fact) error
	FindByID(ctx context.Context, factID id.FactID) (*models.Fact, error)
	ListActiveByPerson(ctx context.Context, personID id.PersonID) ([]*models.Fact, error)
	ListByPerson(ctx context.Context, personID id.PersonID) ([]*models.Fact, error)
}

// PersonCacheStore is the slice of the person store this service needs:
// the person row lock that serializes fact writes, and the single write
// path for the derived nationality columns.
type PersonCacheStore interface {
	LockForUpdate(ctx context.Context, personID id.PersonID) error
	UpdateNationalityCache(ctx context.Context, personID id.PersonID, primary *string, codes []string) error
}

// TxStores bundles the stores bound to one transaction.
type TxStores struct {
	Facts   FactStore
	Persons PersonCacheStore
}

// StoreTx provides the atomic boundary around validate, write and cache
// recompute. Implementations wrap a database transaction or an
// in-memory lock.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, stores TxStores) error) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service owns all mutations of nationality facts and the person cache
// columns derived from them.
type Service struct {
	tx      StoreTx
	facts   FactStore
	persons PersonCacheStore

	logger    *slog.Logger
	publisher AuditPublisher
	metrics   *natmetrics.Metrics
	tracer    trace.Tracer
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

func WithMetrics(m *natmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

func New(tx StoreTx, facts FactStore, persons PersonCacheStore, opts ...Option) *Service {
	s := &Service{tx: tx, facts: facts, persons: persons}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer("wordsrecord/nationality")
	}
	return s
}

const defaultTxTimeout = 5 * time.Second

// memoryStoreTx serializes mutations for in-memory stores.
type memoryStoreTx struct {
	mu      sync.Mutex
	stores  TxStores
	timeout time.Duration
}

// NewMemoryStoreTx wraps in-memory stores in a mutex-backed transaction
// boundary for tests and local development.
func NewMemoryStoreTx(facts FactStore, persons PersonCacheStore) StoreTx {
	return &memoryStoreTx{stores: TxStores{Facts: facts, Persons: persons}}
}

func (t *memoryStoreTx) RunInTx(ctx context.Context, fn func(ctx context.Context, stores TxStores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	return fn(ctx, t.stores)
}
