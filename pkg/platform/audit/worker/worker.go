package worker

import (
	"context"

	audit "ocdm/pkg/platform/audit"
)

// ErrorHandler receives events the store refused. The worker keeps draining.
type ErrorHandler func(event audit.Event, err error)

// Worker drains a channel of audit events into a store.
type Worker struct {
	store   audit.Store
	inbox   <-chan audit.Event
	onError ErrorHandler
}

func NewWorker(store audit.Store, inbox <-chan audit.Event, onError ErrorHandler) *Worker {
	if onError == nil {
		onError = func(audit.Event, error) {}
	}
	return &Worker{store: store, inbox: inbox, onError: onError}
}

// Run persists events until the inbox is closed or ctx is cancelled.
// A closed inbox is a clean shutdown and returns nil once the buffer is empty.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if err := w.store.Append(ctx, event); err != nil {
				w.onError(event, err)
			}
		}
	}
}
