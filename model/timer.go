package model

import (
	"sync"
	"time"
)

const DefaultTurnTime = 30 * time.Second

// TurnTimer is a single-shot per turn countdown. Restart cancels the
// pending expiry before arming a new one, and every arming gets a new
// generation number; onExpire receives the generation it was armed with,
// so a callback that lost the race against Restart can be recognised as
// stale by comparing it with Generation.
type TurnTimer struct {
	mu       sync.Mutex
	d        time.Duration
	t        *time.Timer
	gen      uint64
	deadline time.Time
	onExpire func(gen uint64)
}

func NewTurnTimer(d time.Duration, onExpire func(gen uint64)) *TurnTimer {
	if d <= 0 {
		d = DefaultTurnTime
	}
	return &TurnTimer{d: d, onExpire: onExpire}
}

func (t *TurnTimer) Restart() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.gen++
	gen := t.gen
	t.deadline = time.Now().Add(t.d)
	t.t = time.AfterFunc(t.d, func() {
		t.onExpire(gen)
	})
	return gen
}

func (t *TurnTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.gen++
}

func (t *TurnTimer) stopLocked() {
	if t.t != nil {
		t.t.Stop()
		t.t = nil
	}
	t.deadline = time.Time{}
}

// Generation is the number of the currently armed countdown.
func (t *TurnTimer) Generation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gen
}

// Deadline is zero while the timer is stopped.
func (t *TurnTimer) Deadline() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deadline
}

func (t *TurnTimer) Duration() time.Duration {
	return t.d
}
