package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategorySecurity covers events that point at misuse of the coordination
	// layer or a misbehaving adapter (duplicate session ids, systems destroyed
	// while sessions are still alive).
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine lifecycle activity. These can be
	// sampled or aggregated with shorter retention.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from the coordination layer to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string        `json:"id"`
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	Action    string        `json:"action"`
	SessionID string        `json:"session_id,omitempty"`
	KeySystem string        `json:"key_system,omitempty"`
	Reason    string        `json:"reason,omitempty"`
	// Count carries a cardinality for aggregate events, e.g. how many sessions
	// were still alive when their system was destructed.
	Count int `json:"count,omitempty"`
}

type AuditEvent string

const (
	EventSessionRegistered            AuditEvent = "session_registered"
	EventSessionDuplicate             AuditEvent = "session_duplicate"
	EventSessionDestroyed             AuditEvent = "session_destroyed"
	EventSystemDestructedWithSessions AuditEvent = "system_destructed_with_sessions"
	EventServerCertificateSet         AuditEvent = "server_certificate_set"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventSessionDuplicate:             CategorySecurity,
	EventSystemDestructedWithSessions: CategorySecurity,
	EventServerCertificateSet:         CategorySecurity,

	EventSessionRegistered: CategoryOperations,
	EventSessionDestroyed:  CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListBySession(ctx context.Context, sessionID string) ([]Event, error)
	ListAll(ctx context.Context) ([]Event, error)
}

// Sink forwards persisted events to an external system, e.g. a message broker.
// Sink failures never fail the emitting operation.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}
