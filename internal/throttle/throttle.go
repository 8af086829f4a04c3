// Package throttle provides a small rate limiter that coalesces bursts
// of calls: the first call in a quiet period fires immediately, calls
// arriving during the cooldown are collapsed into one guaranteed
// trailing call. It exists so rapid interactive edits don't flood a
// rendering backend, while the final state is never dropped.
package throttle

import (
	"sync"
	"time"
)

// Limiter coalesces calls to a single function. The zero value is not
// usable; construct with New.
type Limiter struct {
	mu       sync.Mutex
	cooldown time.Duration
	fn       func()
	last     time.Time
	armed    bool // a trailing call is scheduled
	stopped  bool
}

// New returns a Limiter around fn with the given cooldown. A
// non-positive cooldown disables coalescing and every Trigger calls fn
// synchronously.
func New(cooldown time.Duration, fn func()) *Limiter {
	return &Limiter{cooldown: cooldown, fn: fn}
}

// Trigger requests a call to the wrapped function. Outside the
// cooldown window the call happens synchronously (leading edge).
// During the window it is deferred to a single trailing call at the
// end of the window, no matter how many triggers arrive in between.
func (l *Limiter) Trigger() {
	if l.cooldown <= 0 {
		l.fn()
		return
	}

	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	now := time.Now()
	if since := now.Sub(l.last); since >= l.cooldown {
		l.last = now
		l.mu.Unlock()
		l.fn()
		return
	} else if !l.armed {
		l.armed = true
		wait := l.cooldown - since
		time.AfterFunc(wait, l.trailing)
	}
	l.mu.Unlock()
}

func (l *Limiter) trailing() {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.armed = false
	l.last = time.Now()
	l.mu.Unlock()
	l.fn()
}

// Flush runs any pending trailing call right away.
func (l *Limiter) Flush() {
	l.mu.Lock()
	pending := l.armed && !l.stopped
	l.armed = false
	if pending {
		l.last = time.Now()
	}
	l.mu.Unlock()
	if pending {
		l.fn()
	}
}

// Stop cancels any pending trailing call and makes further triggers
// no-ops.
func (l *Limiter) Stop() {
	l.mu.Lock()
	l.stopped = true
	l.armed = false
	l.mu.Unlock()
}
