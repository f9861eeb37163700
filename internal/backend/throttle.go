package backend

import (
	"context"
	"sync"
	"time"
)

// throttle spaces reloads at least interval apart.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval <= 0 {
		return &throttle{}
	}
	return &throttle{interval: interval}
}

// wait blocks until the next reload slot is free. It returns false when ctx
// ends first, in which case no slot is taken.
func (t *throttle) wait(ctx context.Context) bool {
	if t == nil || t.interval <= 0 {
		return ctx.Err() == nil
	}
	t.mu.Lock()
	now := time.Now()
	delay := t.next.Sub(now)
	if delay <= 0 {
		t.next = now.Add(t.interval)
		t.mu.Unlock()
		return true
	}
	t.mu.Unlock()

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
	}
	t.mu.Lock()
	t.next = time.Now().Add(t.interval)
	t.mu.Unlock()
	return true
}
