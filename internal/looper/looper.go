// Package looper runs posted functions one at a time on a single goroutine,
// the way a UI thread's message queue does.
package looper

import (
	"context"
	"sync/atomic"
)

// Looper is a serial message queue.
//
// Functions posted with Post run in order on the goroutine that called Run.
// Everything that must happen on the UI goroutine (surface notifications,
// frame callbacks, pointer events) is posted here.
//
// Thread safety: Post, Quit and Pending are safe for concurrent use.
type Looper struct {
	// queue holds posted work.
	queue chan func()

	// done signals Run to stop.
	done chan struct{}

	// running indicates whether the looper is accepting work.
	running atomic.Bool
}

// New creates a looper whose queue buffers size functions.
// If size is less than 1, 64 is used.
func New(size int) *Looper {
	if size < 1 {
		size = 64
	}
	l := &Looper{
		queue: make(chan func(), size),
		done:  make(chan struct{}),
	}
	l.running.Store(true)
	return l
}

// Post queues fn. It blocks while the queue is full and reports false if
// the looper has quit.
func (l *Looper) Post(fn func()) bool {
	if fn == nil || !l.running.Load() {
		return false
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Run executes posted functions until Quit is called or ctx is done.
// Work queued before Quit still runs. Run returns ctx.Err() when the
// context ends the loop and nil otherwise.
func (l *Looper) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.Quit()
			l.drain()
			return ctx.Err()

		case <-l.done:
			l.drain()
			return nil

		case fn := <-l.queue:
			fn()
		}
	}
}

// drain executes the remaining queued work.
func (l *Looper) drain() {
	for {
		select {
		case fn := <-l.queue:
			fn()
		default:
			return
		}
	}
}

// Quit stops accepting work and makes Run return once the queue is drained.
// Quit is safe to call multiple times.
func (l *Looper) Quit() {
	if !l.running.CompareAndSwap(true, false) {
		return
	}
	close(l.done)
}

// IsRunning returns true if the looper is still accepting work.
func (l *Looper) IsRunning() bool {
	return l.running.Load()
}

// Pending returns the number of queued functions.
func (l *Looper) Pending() int {
	return len(l.queue)
}
