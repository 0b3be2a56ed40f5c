package anim

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrLoopStopped is returned by [Loop.Do] once the loop has exited.
var ErrLoopStopped = errors.New("anim: loop stopped")

// ErrLoopReused is returned by a second call to [Loop.Run].
var ErrLoopReused = errors.New("anim: loop already ran")

// Loop is a single-goroutine host. Frame callbacks and work posted through
// Do all run on the goroutine that called Run, so the visualization it hosts
// never sees concurrent access.
//
// RequestFrame and CancelFrame must be called from the loop goroutine (or
// before Run starts). One frame is pending at a time; a new request replaces
// the previous one.
type Loop struct {
	interval time.Duration
	work     chan func()
	done     chan struct{}
	started  atomic.Bool

	next FrameID
	id   FrameID
	fn   func()
}

// NewLoop returns a loop that fires the pending frame every interval.
func NewLoop(interval time.Duration) *Loop {
	return &Loop{
		interval: interval,
		work:     make(chan func()),
		done:     make(chan struct{}),
	}
}

func (l *Loop) RequestFrame(fn func()) FrameID {
	l.next++
	l.id, l.fn = l.next, fn
	return l.id
}

func (l *Loop) CancelFrame(id FrameID) {
	if l.id == id {
		l.fn = nil
	}
}

// Run executes frames and posted work until ctx is done. A loop runs once.
func (l *Loop) Run(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return ErrLoopReused
	}
	defer close(l.done)
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.work:
			fn()
		case <-ticker.C:
			if fn := l.fn; fn != nil {
				l.fn = nil
				fn()
			}
		}
	}
}

// Do runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		fn()
	}

	select {
	case l.work <- task:
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
