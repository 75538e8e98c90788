// Package kafka streams audit events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	audit "ocdm/pkg/platform/audit"
	"ocdm/pkg/platform/sentinel"
)

// ErrCircuitOpen is returned while produces are suspended after failures.
var ErrCircuitOpen = errors.New("kafka audit sink circuit open")

// Producer is the subset of *kgo.Client the sink needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Sink publishes audit events as JSON records keyed by session id, so all
// events of one session land on the same partition in order.
type Sink struct {
	producer Producer
	topic    string
	breaker  *circuitBreaker
	metrics  *Metrics
	logger   *slog.Logger
}

type Option func(*Sink)

func WithMetrics(m *Metrics) Option {
	return func(s *Sink) { s.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Sink) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCircuitBreaker sets how many consecutive failures open the circuit and
// how long it stays open.
func WithCircuitBreaker(threshold int, cooldown time.Duration) Option {
	return func(s *Sink) { s.breaker = newCircuitBreaker(threshold, cooldown) }
}

func NewSink(producer Producer, topic string, opts ...Option) *Sink {
	s := &Sink{
		producer: producer,
		topic:    topic,
		breaker:  newCircuitBreaker(0, 0),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish produces event synchronously.
func (s *Sink) Publish(ctx context.Context, event audit.Event) error {
	if !s.breaker.allow() {
		s.metrics.incDropped()
		return ErrCircuitOpen
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.SessionID),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "action", Value: []byte(event.Action)},
			{Key: "category", Value: []byte(event.Category)},
		},
	}

	if err := s.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		s.metrics.incFailures()
		if s.breaker.recordFailure() {
			s.metrics.setCircuitOpen(true)
			s.logger.WarnContext(ctx, "kafka audit sink circuit opened", "topic", s.topic, "error", err)
		}
		return fmt.Errorf("produce audit event: %w", errors.Join(sentinel.ErrUnavailable, err))
	}

	s.breaker.recordSuccess()
	s.metrics.setCircuitOpen(false)
	s.metrics.incPublished()
	return nil
}
