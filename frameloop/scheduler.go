// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frameloop

import (
	"slices"
	"sync"
	"time"
)

// FrameFunc receives the vsync timestamp in monotonic nanoseconds.
type FrameFunc func(frameTimeNanos int64)

// Handle identifies one posted frame callback.
type Handle interface {
	// Cancel removes the callback. Once Cancel returns, the callback is
	// not delivered. Canceling twice or after delivery does nothing.
	Cancel()
}

// Scheduler delivers one-shot frame callbacks at the next vsync.
//
// Callbacks posted while a frame is being delivered run on the following
// frame, never the current one.
type Scheduler interface {
	PostFrameCallback(fn FrameFunc) Handle
}

// frameCallback is a pending callback shared by both schedulers.
type frameCallback struct {
	fn       FrameFunc
	canceled bool
}

func (c *frameCallback) Cancel() {
	c.canceled = true
}

// ManualScheduler delivers frames only when Fire is called. It is meant for
// tests and for hosts that receive vsync from elsewhere.
//
// ManualScheduler is NOT safe for concurrent use.
type ManualScheduler struct {
	pending []*frameCallback
}

var _ Scheduler = (*ManualScheduler)(nil)

// PostFrameCallback queues fn for the next Fire.
func (s *ManualScheduler) PostFrameCallback(fn FrameFunc) Handle {
	c := &frameCallback{fn: fn}
	s.pending = append(s.pending, c)
	return c
}

// Fire delivers one vsync at frameTimeNanos to every callback pending
// when Fire is called.
func (s *ManualScheduler) Fire(frameTimeNanos int64) {
	batch := s.pending
	s.pending = nil
	for _, c := range batch {
		if !c.canceled {
			c.canceled = true
			c.fn(frameTimeNanos)
		}
	}
}

// Pending returns the number of callbacks waiting for the next Fire.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, c := range s.pending {
		if !c.canceled {
			n++
		}
	}
	return n
}

// Poster runs functions on the UI goroutine.
type Poster interface {
	// Post queues fn and reports false if it will never run.
	Post(fn func()) bool
}

// TickerScheduler emulates a display's vsync with a time.Ticker. Each tick
// is posted to a Poster; callbacks run there, so PostFrameCallback and
// Cancel must be called from the Poster's goroutine too.
type TickerScheduler struct {
	poster   Poster
	interval time.Duration
	start    time.Time

	// pending is only touched on the Poster's goroutine.
	pending []*frameCallback

	mu     sync.Mutex
	ticker *time.Ticker
	stop   chan struct{}
}

var _ Scheduler = (*TickerScheduler)(nil)

// NewTickerScheduler creates a scheduler ticking every interval.
// If interval is not positive, 16ms is used.
func NewTickerScheduler(poster Poster, interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &TickerScheduler{poster: poster, interval: interval, start: time.Now()}
}

// Interval returns the vsync period.
func (s *TickerScheduler) Interval() time.Duration {
	return s.interval
}

// PostFrameCallback queues fn for the next tick.
func (s *TickerScheduler) PostFrameCallback(fn FrameFunc) Handle {
	c := &frameCallback{fn: fn}
	s.pending = append(s.pending, c)
	return c
}

// Start begins ticking. It does nothing if already started.
func (s *TickerScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ticker != nil {
		return
	}
	s.ticker = time.NewTicker(s.interval)
	s.stop = make(chan struct{})
	go s.run(s.ticker, s.stop)
}

// Stop ends ticking. Ticks already posted are still delivered. Stop is
// safe to call multiple times.
func (s *TickerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	close(s.stop)
	s.ticker = nil
}

func (s *TickerScheduler) run(ticker *time.Ticker, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			t := now.Sub(s.start).Nanoseconds()
			if !s.poster.Post(func() { s.deliver(t) }) {
				return
			}
		}
	}
}

// deliver runs on the Poster's goroutine.
func (s *TickerScheduler) deliver(frameTimeNanos int64) {
	batch := s.pending
	s.pending = nil
	for _, c := range batch {
		if !c.canceled {
			c.canceled = true
			c.fn(frameTimeNanos)
		}
	}
	s.pending = slices.DeleteFunc(s.pending, func(c *frameCallback) bool { return c.canceled })
}
