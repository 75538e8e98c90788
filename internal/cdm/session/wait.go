package session

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"ocdm/internal/cdm/metrics"
	"ocdm/internal/cdm/models"
)

// WaitRequest describes a key status to wait for.
type WaitRequest struct {
	KeyID  models.KeyID
	Status models.KeyStatus
	// Scope restricts the search to sessions of one system. Nil searches all.
	Scope   Owner
	Timeout time.Duration
}

// WaitForKey blocks until a registered session in scope reports req.Status
// for req.KeyID, the timeout elapses or ctx is done. It returns the id of the
// matching session.
//
// The deadline is fixed on entry; spurious wakes do not extend it. A zero
// timeout performs a single scan. The registry lock is never held while
// parked.
func (r *Registry) WaitForKey(ctx context.Context, req WaitRequest) (string, bool) {
	ctx, span := r.tracer.Start(ctx, "registry.WaitForKey", trace.WithAttributes(
		attribute.String("key_id", req.KeyID.String()),
		attribute.String("status", req.Status.String()),
		attribute.Int64("timeout_ms", req.Timeout.Milliseconds()),
	))
	defer span.End()

	start := time.Now()
	deadline := start.Add(req.Timeout)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		r.mu.Lock()
		id, found := r.scanLocked(req)
		if found {
			r.mu.Unlock()
			r.finishWait(span, metrics.WaitFound, start)
			span.SetAttributes(attribute.String("session_id", id))
			return id, true
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			r.mu.Unlock()
			r.finishWait(span, metrics.WaitTimeout, start)
			return "", false
		}

		// Captured under the same lock as the scan: any write after the scan
		// closes this channel.
		wake := r.wake
		r.waiters.Add(1)
		r.mu.Unlock()
		r.metrics.IncWaiters()

		if timer == nil {
			timer = time.NewTimer(remaining)
		} else {
			timer.Reset(remaining)
		}

		select {
		case <-wake:
		case <-timer.C:
		case <-ctx.Done():
		}

		r.waiters.Add(-1)
		r.metrics.DecWaiters()

		if ctx.Err() != nil {
			r.finishWait(span, metrics.WaitCancelled, start)
			return "", false
		}
	}
}

// scanLocked looks for a session in scope whose known status for the key
// equals the target. Sessions released to zero are skipped.
func (r *Registry) scanLocked(req WaitRequest) (string, bool) {
	for id, s := range r.sessions {
		if s.refs.Load() <= 0 {
			continue
		}
		if req.Scope != nil && !s.BelongsTo(req.Scope) {
			continue
		}
		if status, known := s.lookup(req.KeyID); known && status == req.Status {
			return id, true
		}
	}
	return "", false
}

func (r *Registry) finishWait(span trace.Span, outcome string, start time.Time) {
	span.SetAttributes(attribute.String("outcome", outcome))
	r.metrics.ObserveWait(outcome, time.Since(start))
}
