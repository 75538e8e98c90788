// Package publisher emits audit events into an audit.Store, either inline or
// through a bounded buffer drained by a background worker.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	audit "ocdm/pkg/platform/audit"
	"ocdm/pkg/platform/audit/worker"
)

// ErrBufferFull is returned in async mode when the buffer cannot take the event.
var ErrBufferFull = errors.New("audit buffer full")

// ErrClosed is returned by Emit after Close.
var ErrClosed = errors.New("audit publisher closed")

type Publisher struct {
	store  audit.Store
	sinks  []audit.Sink
	logger *slog.Logger

	bufferSize int
	inbox      chan audit.Event
	done       chan struct{}

	mu     sync.RWMutex
	closed bool
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to async mode with a buffer of n events.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) {
		p.bufferSize = n
	}
}

// WithSink forwards every persisted event to sink as well.
func WithSink(sink audit.Sink) Option {
	return func(p *Publisher) {
		if sink != nil {
			p.sinks = append(p.sinks, sink)
		}
	}
}

// WithLogger sets a logger for background persistence failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if len(p.sinks) > 0 {
		p.store = &teeStore{Store: store, sinks: p.sinks, logger: p.logger}
	}

	if p.bufferSize > 0 {
		p.inbox = make(chan audit.Event, p.bufferSize)
		p.done = make(chan struct{})
		w := worker.NewWorker(p.store, p.inbox, func(event audit.Event, err error) {
			p.logger.Error("audit event dropped", "action", event.Action, "event_id", event.ID, "error", err)
		})
		go func() {
			defer close(p.done)
			if err := w.Run(context.Background()); err != nil {
				p.logger.Error("audit worker stopped", "error", err)
			}
		}()
	}
	return p
}

// Emit fills in the id, timestamp and category when missing, then persists the
// event (sync mode) or enqueues it (async mode).
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}

	if p.inbox == nil {
		return p.store.Append(ctx, event)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}

	select {
	case p.inbox <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrBufferFull
	}
}

// List returns the events recorded for a session.
func (p *Publisher) List(ctx context.Context, sessionID string) ([]audit.Event, error) {
	return p.store.ListBySession(ctx, sessionID)
}

// Close stops accepting events and, in async mode, waits for the buffer to drain.
func (p *Publisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.inbox != nil {
		close(p.inbox)
	}
	p.mu.Unlock()

	if p.done != nil {
		<-p.done
	}
}

// teeStore appends to the wrapped store and then forwards to every sink.
type teeStore struct {
	audit.Store
	sinks  []audit.Sink
	logger *slog.Logger
}

func (t *teeStore) Append(ctx context.Context, event audit.Event) error {
	if err := t.Store.Append(ctx, event); err != nil {
		return err
	}
	for _, sink := range t.sinks {
		if err := sink.Publish(ctx, event); err != nil {
			t.logger.WarnContext(ctx, "audit sink publish failed",
				"action", event.Action,
				"event_id", event.ID,
				"error", err,
			)
		}
	}
	return nil
}
