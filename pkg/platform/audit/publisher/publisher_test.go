package publisher

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "ocdm/pkg/platform/audit"
	"ocdm/pkg/platform/audit/store/memory"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	event := audit.Event{
		SessionID: "session-1",
		Action:    string(audit.EventSessionRegistered),
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	events, err := pub.List(context.Background(), "session-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventSessionRegistered), events[0].Action)
	assert.NotEmpty(t, events[0].ID)
	assert.Equal(t, audit.CategoryOperations, events[0].Category)
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	for range 10 {
		err := pub.Emit(context.Background(), audit.Event{
			SessionID: "session-1",
			Action:    string(audit.EventSessionRegistered),
		})
		require.NoError(t, err)
	}

	pub.Close()

	events, err := store.ListBySession(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Len(t, events, 10, "all events should be drained on close")
}

func TestPublisher_EmitAfterClose(t *testing.T) {
	pub := NewPublisher(memory.NewInMemoryStore(), WithAsyncBuffer(1))
	pub.Close()
	pub.Close()

	err := pub.Emit(context.Background(), audit.Event{Action: string(audit.EventSessionDestroyed)})
	require.ErrorIs(t, err, ErrClosed)
}

func TestPublisher_BufferFull_NoPanic(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(1))
	defer pub.Close()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := pub.Emit(context.Background(), audit.Event{Action: string(audit.EventSessionRegistered)})
			if err != nil {
				assert.ErrorIs(t, err, ErrBufferFull)
			}
		}()
	}
	wg.Wait()
}

func TestPublisher_SetsTimestampAndCategory(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	before := time.Now()
	err := pub.Emit(context.Background(), audit.Event{
		SessionID: "dup",
		Action:    string(audit.EventSessionDuplicate),
	})
	require.NoError(t, err)
	after := time.Now()

	events, err := pub.List(context.Background(), "dup")
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.False(t, events[0].Timestamp.Before(before))
	assert.False(t, events[0].Timestamp.After(after))
	assert.Equal(t, audit.CategorySecurity, events[0].Category)
}

func TestPublisher_PreservesExistingTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	customTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	err := pub.Emit(context.Background(), audit.Event{
		SessionID: "s",
		Action:    string(audit.EventSessionDestroyed),
		Timestamp: customTime,
	})
	require.NoError(t, err)

	events, err := pub.List(context.Background(), "s")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, customTime, events[0].Timestamp)
}

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
	err    error
}

func (s *recordingSink) Publish(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestPublisher_ForwardsToSinks(t *testing.T) {
	t.Run("sync", func(t *testing.T) {
		sink := &recordingSink{}
		pub := NewPublisher(memory.NewInMemoryStore(), WithSink(sink))
		defer pub.Close()

		require.NoError(t, pub.Emit(context.Background(), audit.Event{Action: string(audit.EventSessionDuplicate), SessionID: "s"}))

		require.Equal(t, 1, sink.count())
		assert.NotEmpty(t, sink.events[0].ID, "sinks see the filled in event")
		assert.Equal(t, audit.CategorySecurity, sink.events[0].Category)
	})

	t.Run("async", func(t *testing.T) {
		sink := &recordingSink{}
		pub := NewPublisher(memory.NewInMemoryStore(), WithAsyncBuffer(4), WithSink(sink))

		require.NoError(t, pub.Emit(context.Background(), audit.Event{Action: string(audit.EventSessionRegistered)}))
		pub.Close()

		assert.Equal(t, 1, sink.count())
	})

	t.Run("sink failure does not fail the emit", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		sink := &recordingSink{err: assert.AnError}
		pub := NewPublisher(store, WithSink(sink))
		defer pub.Close()

		require.NoError(t, pub.Emit(context.Background(), audit.Event{Action: string(audit.EventSessionDestroyed), SessionID: "s"}))

		events, err := store.ListAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})
}
