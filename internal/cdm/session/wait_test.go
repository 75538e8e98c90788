package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"ocdm/internal/cdm/metrics"
	"ocdm/internal/cdm/models"
	"ocdm/internal/cdm/ports"
	"ocdm/internal/cdm/ports/mocks"
)

var (
	kid      = models.KeyID{1, 2, 3, 4}
	otherKid = models.KeyID{5, 6, 7, 8}
)

type waitResult struct {
	id      string
	found   bool
	elapsed time.Duration
}

func (s *SessionSuite) waitAsync(ctx context.Context, req WaitRequest) <-chan waitResult {
	out := make(chan waitResult, 1)
	go func() {
		start := time.Now()
		id, found := s.registry.WaitForKey(ctx, req)
		out <- waitResult{id: id, found: found, elapsed: time.Since(start)}
	}()
	return out
}

func (s *SessionSuite) awaitWaiters(n int) {
	s.Require().Eventually(func() bool {
		return s.registry.Interested() == n
	}, 2*time.Second, time.Millisecond)
}

func (s *SessionSuite) TestWaitForKey_ZeroTimeout() {
	s.Run("no match fails immediately", func() {
		start := time.Now()
		id, found := s.registry.WaitForKey(s.ctx, WaitRequest{KeyID: kid, Status: models.KeyStatusUsable})

		s.False(found)
		s.Empty(id)
		s.Less(time.Since(start), 50*time.Millisecond)
		s.Equal(float64(1), testutil.ToFloat64(s.metrics.WaitOutcomes.WithLabelValues(metrics.WaitTimeout)))
	})

	s.Run("existing match succeeds", func() {
		_, events, _ := s.newSession("ready", s.ownerA)
		events.OnKeyStatusUpdate(kid, models.KeyStatusUsable)

		id, found := s.registry.WaitForKey(s.ctx, WaitRequest{KeyID: kid.Reversed(), Status: models.KeyStatusUsable})

		s.True(found)
		s.Equal("ready", id)
	})

	s.Run("pending never matches an unannounced key", func() {
		s.newSession("empty", s.ownerA)

		_, found := s.registry.WaitForKey(s.ctx, WaitRequest{KeyID: otherKid, Status: models.KeyStatusPending})

		s.False(found)
	})
}

func (s *SessionSuite) TestWaitForKey_WokenByStatusUpdate() {
	_, events, _ := s.newSession("late", s.ownerA)

	result := s.waitAsync(s.ctx, WaitRequest{KeyID: kid, Status: models.KeyStatusUsable, Timeout: 5 * time.Second})
	s.awaitWaiters(1)

	events.OnKeyStatusUpdate(otherKid, models.KeyStatusUsable)
	events.OnKeyStatusUpdate(kid, models.KeyStatusUsable)

	r := <-result
	s.True(r.found)
	s.Equal("late", r.id)
	s.Less(r.elapsed, 2*time.Second)
	s.Equal(0, s.registry.Interested())
}

func (s *SessionSuite) TestWaitForKey_WokenByAdd() {
	result := s.waitAsync(s.ctx, WaitRequest{KeyID: kid, Status: models.KeyStatusUsable, Timeout: 5 * time.Second})
	s.awaitWaiters(1)

	adapter := mocks.NewMockAdapterSession(s.ctrl)
	adapter.EXPECT().SessionID().Return("arrives").AnyTimes()
	adapter.EXPECT().BufferID().Return("").AnyTimes()
	_, err := New(s.ctx, s.registry, s.ownerA, func(ev ports.SessionEvents) (ports.AdapterSession, error) {
		// Reported before registration: only the Add broadcast can wake the waiter.
		ev.OnKeyStatusUpdate(kid, models.KeyStatusUsable)
		return adapter, nil
	})
	s.Require().NoError(err)

	r := <-result
	s.True(r.found)
	s.Equal("arrives", r.id)
}

func (s *SessionSuite) TestWaitForKey_Scope() {
	_, events, _ := s.newSession("scoped", s.ownerB)
	events.OnKeyStatusUpdate(kid, models.KeyStatusUsable)

	_, found := s.registry.WaitForKey(s.ctx, WaitRequest{KeyID: kid, Status: models.KeyStatusUsable, Scope: s.ownerA, Timeout: 20 * time.Millisecond})
	s.False(found)

	id, found := s.registry.WaitForKey(s.ctx, WaitRequest{KeyID: kid, Status: models.KeyStatusUsable, Scope: s.ownerB})
	s.True(found)
	s.Equal("scoped", id)
}

func (s *SessionSuite) TestWaitForKey_TimeoutIsAbsolute() {
	_, events, _ := s.newSession("noisy", s.ownerA)
	timeout := 80 * time.Millisecond

	result := s.waitAsync(s.ctx, WaitRequest{KeyID: kid, Status: models.KeyStatusUsable, Timeout: timeout})
	s.awaitWaiters(1)

	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
				events.OnKeyStatusUpdate(otherKid, models.KeyStatusExpired)
				time.Sleep(5 * time.Millisecond)
			}
		}
	}()

	r := <-result
	close(stop)

	s.False(r.found)
	s.GreaterOrEqual(r.elapsed, timeout)
	s.Less(r.elapsed, 2*time.Second, "unrelated wakes must not extend the deadline")
}

func (s *SessionSuite) TestWaitForKey_ContextCancel() {
	ctx, cancel := context.WithCancel(s.ctx)
	result := s.waitAsync(ctx, WaitRequest{KeyID: kid, Status: models.KeyStatusUsable, Timeout: time.Minute})
	s.awaitWaiters(1)

	cancel()

	r := <-result
	s.False(r.found)
	s.Less(r.elapsed, 5*time.Second)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.WaitOutcomes.WithLabelValues(metrics.WaitCancelled)))
	s.Equal(float64(0), testutil.ToFloat64(s.metrics.Waiters))
}

// A status update racing the waiter between its scan and its sleep must still
// wake it well before the deadline.
func (s *SessionSuite) TestWaitForKey_NoLostWakeup() {
	for i := range 200 {
		id := fmt.Sprintf("race-%d", i)
		key := models.KeyID{byte(i), byte(i >> 8), 0xfe}
		_, events, _ := s.newSession(id, s.ownerA)

		result := s.waitAsync(s.ctx, WaitRequest{KeyID: key, Status: models.KeyStatusUsable, Timeout: 10 * time.Second})
		events.OnKeyStatusUpdate(key, models.KeyStatusUsable)

		r := <-result
		s.Require().True(r.found, "iteration %d", i)
		s.Require().Equal(id, r.id)
		s.Require().Less(r.elapsed, 5*time.Second, "iteration %d slept to the deadline", i)
	}
}

func (s *SessionSuite) TestWaitForKey_ManyWaiters() {
	const n = 20
	events := make([]ports.SessionEvents, n)
	for i := range n {
		_, events[i], _ = s.newSession(fmt.Sprintf("multi-%d", i), s.ownerA)
	}

	var wg sync.WaitGroup
	found := make([]bool, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, found[i] = s.registry.WaitForKey(s.ctx, WaitRequest{
				KeyID:   models.KeyID{byte(i), 0xaa},
				Status:  models.KeyStatusUsable,
				Timeout: 10 * time.Second,
			})
		}()
	}
	for i := range n {
		go events[i].OnKeyStatusUpdate([]byte{byte(i), 0xaa}, models.KeyStatusUsable)
	}
	wg.Wait()

	for i, ok := range found {
		s.True(ok, "waiter %d", i)
	}
}

func (s *SessionSuite) TestWaitForKey_IgnoresReleasedSessions() {
	sess, events, adapter := s.newSession("gone", s.ownerA)
	adapter.EXPECT().Release().Times(1)
	events.OnKeyStatusUpdate(kid, models.KeyStatusUsable)
	s.Require().NoError(sess.Release())

	_, found := s.registry.WaitForKey(s.ctx, WaitRequest{KeyID: kid, Status: models.KeyStatusUsable})

	s.False(found)
}
