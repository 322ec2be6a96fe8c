package audit

import (
	"context"
	"log/slog"
	"sync"

	dErrors "wordsrecord/pkg/domain-errors"
	"wordsrecord/pkg/requestcontext"
)

// Sink receives audit events for durable delivery. Implementations: Kafka
// (production), slog (no broker configured), in-memory (tests).
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Publisher captures structured audit events and hands them to a sink,
// optionally through a bounded async buffer. When the buffer is full the
// event is dropped with a warning: editorial availability wins over audit
// completeness.
type Publisher struct {
	sink   Sink
	events chan Event
	wg     sync.WaitGroup
	logger *slog.Logger
	async  bool
}

// PublisherOption configures the Publisher.
type PublisherOption func(*Publisher)

// WithAsyncBuffer enables async processing with the specified buffer size.
// Events are queued and delivered in a background goroutine.
func WithAsyncBuffer(size int) PublisherOption {
	return func(p *Publisher) {
		if size > 0 {
			p.events = make(chan Event, size)
			p.async = true
		}
	}
}

// WithLogger sets a logger for async error reporting.
func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(sink Sink, opts ...PublisherOption) *Publisher {
	p := &Publisher{sink: sink}
	for _, opt := range opts {
		opt(p)
	}
	if p.async {
		p.wg.Add(1)
		go p.processEvents()
	}
	return p
}

// processEvents runs in a goroutine and delivers events from the channel.
func (p *Publisher) processEvents() {
	defer p.wg.Done()
	for event := range p.events {
		if err := p.sink.Append(context.Background(), event); err != nil {
			if p.logger != nil {
				p.logger.Error("failed to deliver audit event",
					"error", err,
					"action", event.Action,
					"entity_type", event.EntityType,
					"entity_id", event.EntityID,
				)
			}
		}
	}
}

// Close shuts down the async publisher and waits for pending events to drain.
func (p *Publisher) Close() {
	if p.async && p.events != nil {
		close(p.events)
		p.wg.Wait()
	}
}

// Emit records one audit event. Request-scoped metadata (timestamp, request
// ID, editor, device fingerprint) is filled from the context when the caller
// left it empty.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.EditorID.IsNil() {
		event.EditorID = requestcontext.EditorID(ctx)
	}
	if event.DeviceFingerprint == "" {
		event.DeviceFingerprint = requestcontext.DeviceFingerprint(ctx)
	}

	if p.async {
		// Non-blocking send with context cancellation support
		select {
		case p.events <- event:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
			if p.logger != nil {
				p.logger.Warn("audit buffer full, event dropped",
					"action", event.Action,
					"entity_id", event.EntityID,
				)
			}
			return dErrors.New(dErrors.CodeInternal, "audit buffer full")
		}
	}
	return p.sink.Append(ctx, event)
}
