package looper

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"
)

// =============================================================================
// Looper Tests
// =============================================================================

func TestLooper_Create(t *testing.T) {
	l := New(0)
	if !l.IsRunning() {
		t.Error("Looper should be running after creation")
	}
	if cap(l.queue) != 64 {
		t.Errorf("queue capacity = %d, want 64", cap(l.queue))
	}
}

func TestLooper_RunsInOrder(t *testing.T) {
	l := New(16)

	var got []int
	for i := range 10 {
		if !l.Post(func() { got = append(got, i) }) {
			t.Fatalf("Post(%d) = false", i)
		}
	}
	l.Post(l.Quit)

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	want := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestLooper_SingleGoroutine(t *testing.T) {
	l := New(8)
	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background()) }()

	// Concurrent posters; the counter is only touched on the looper goroutine.
	counter := 0
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				l.Post(func() { counter++ })
			}
		}()
	}
	wg.Wait()

	result := make(chan int, 1)
	l.Post(func() { result <- counter })
	if got := <-result; got != 200 {
		t.Errorf("counter = %d, want 200", got)
	}

	l.Quit()
	if err := <-done; err != nil {
		t.Errorf("Run() = %v", err)
	}
}

func TestLooper_QuitDrains(t *testing.T) {
	l := New(8)
	ran := 0
	for range 3 {
		l.Post(func() { ran++ })
	}
	l.Quit()

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if ran != 3 {
		t.Errorf("ran = %d, want 3", ran)
	}
	if l.Post(func() {}) {
		t.Error("Post() after Quit = true, want false")
	}
	if l.IsRunning() {
		t.Error("IsRunning() = true after Quit")
	}

	// Quit is idempotent.
	l.Quit()
}

func TestLooper_ContextCancel(t *testing.T) {
	l := New(8)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := l.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() = %v, want DeadlineExceeded", err)
	}
	if l.IsRunning() {
		t.Error("IsRunning() = true after context ended the loop")
	}
}

func TestLooper_PostNil(t *testing.T) {
	l := New(1)
	if l.Post(nil) {
		t.Error("Post(nil) = true, want false")
	}
	if l.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", l.Pending())
	}
}
