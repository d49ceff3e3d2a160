package importer

// limiter.go serializes import execution. The engine processes one batch at a
// time: slug probing and index snapshots assume no sibling import is mutating
// the catalog concurrently. The limiter is a semaphore with a bounded wait,
// defaulting to a single slot.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrBusy is returned when another import holds the slot and the wait
// timeout expires. Clients should retry after a short delay.
var ErrBusy = errors.New("another import is in progress, please try again later")

// DefaultMaxConcurrent allows one import at a time.
const DefaultMaxConcurrent = 1

// DefaultMaxWait is how long Acquire waits for a slot before rejecting.
const DefaultMaxWait = 10 * time.Second

// Limiter controls concurrent import execution.
type Limiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

// NewLimiter creates a limiter allowing at most maxConcurrent simultaneous
// imports. Requests that cannot acquire a slot within maxWait receive ErrBusy.
func NewLimiter(maxConcurrent int, maxWait time.Duration) *Limiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWait
	}

	return &Limiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// Acquire blocks until a slot is free or the wait expires.
// The caller must call Release exactly once on success (use defer).
func (l *Limiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil

	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrBusy
	}
}

// Release frees a previously acquired slot.
func (l *Limiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()

	<-l.semaphore
}

// ActiveCount returns the number of imports currently running.
func (l *Limiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// WaitForDrain blocks until all active imports complete or ctx is cancelled.
// Used during graceful shutdown so a committed transaction is never cut off.
func (l *Limiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if l.ActiveCount() == 0 {
				return nil
			}
		}
	}
}
