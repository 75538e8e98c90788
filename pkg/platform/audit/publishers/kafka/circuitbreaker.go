package kafka

import (
	"sync"
	"time"
)

// circuitBreaker stops produce attempts after repeated broker failures and
// lets a single probe through once the cooldown has passed.
type circuitBreaker struct {
	mu sync.Mutex

	threshold int
	cooldown  time.Duration
	now       func() time.Time

	failures  int
	openUntil time.Time
	open      bool
}

func newCircuitBreaker(threshold int, cooldown time.Duration) *circuitBreaker {
	if threshold <= 0 {
		threshold = 5
	}
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	return &circuitBreaker{threshold: threshold, cooldown: cooldown, now: time.Now}
}

// allow reports whether a produce may be attempted. An expired open circuit
// moves to half-open: the next failure reopens it immediately.
func (cb *circuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if !cb.open {
		return true
	}
	if cb.now().Before(cb.openUntil) {
		return false
	}
	cb.open = false
	cb.failures = cb.threshold - 1
	return true
}

func (cb *circuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures = 0
	cb.open = false
}

// recordFailure returns true when this failure opened the circuit.
func (cb *circuitBreaker) recordFailure() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures++
	if cb.open || cb.failures < cb.threshold {
		return false
	}
	cb.open = true
	cb.openUntil = cb.now().Add(cb.cooldown)
	return true
}

func (cb *circuitBreaker) isOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.open
}
