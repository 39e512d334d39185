// Package delay runs the journey's simulated waits: a one-shot callback
// after a fixed delay, cancellable by its owner before it fires.
package delay

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/skiphire/internal/logger"
)

// Option configures the scheduler.
type Option func(*Scheduler)

// WithClock replaces time.AfterFunc-style waiting, for tests.
func WithClock(after func(time.Duration) <-chan time.Time) Option {
	return func(s *Scheduler) {
		s.after = after
	}
}

// Scheduler owns every pending task it created. Stop cancels them all.
type Scheduler struct {
	log   *logger.Logger
	after func(time.Duration) <-chan time.Time

	mu      sync.Mutex
	tasks   map[*Task]struct{}
	stopped bool
}

// Task is one scheduled callback.
type Task struct {
	Label string

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
	fired  bool
	mu     sync.Mutex
}

// New creates a scheduler.
func New(log *logger.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		log:   log,
		after: time.After,
		tasks: make(map[*Task]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// After runs fn once d has elapsed, unless ctx is cancelled, the task is
// cancelled, or the scheduler is stopped first. fn runs on its own goroutine.
func (s *Scheduler) After(ctx context.Context, label string, d time.Duration, fn func()) *Task {
	childCtx, cancel := context.WithCancel(ctx)
	t := &Task{
		Label:  label,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		cancel()
		t.finish()
		s.log.Debug("delay: scheduler stopped, dropping task %s", label)
		return t
	}
	s.tasks[t] = struct{}{}
	s.mu.Unlock()

	wait := s.after(d)
	s.log.Debug("delay: scheduled %s in %s", label, d)

	go func() {
		defer t.finish()
		defer s.forget(t)

		select {
		case <-childCtx.Done():
			s.log.Debug("delay: task %s cancelled", label)
			return
		case <-wait:
		}

		// Cancel may race the timer; the context is the tie-breaker.
		t.mu.Lock()
		if childCtx.Err() != nil {
			t.mu.Unlock()
			s.log.Debug("delay: task %s cancelled at expiry", label)
			return
		}
		t.fired = true
		t.mu.Unlock()

		s.log.Debug("delay: task %s fired", label)
		fn()
	}()
	return t
}

// Pending returns the number of tasks that have neither fired nor been
// cancelled.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Stop cancels every pending task and refuses new ones.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	tasks := make([]*Task, 0, len(s.tasks))
	for t := range s.tasks {
		tasks = append(tasks, t)
	}
	s.mu.Unlock()

	for _, t := range tasks {
		t.Cancel()
	}
	s.log.Debug("delay: scheduler stopped, cancelled %d task(s)", len(tasks))
}

func (s *Scheduler) forget(t *Task) {
	s.mu.Lock()
	delete(s.tasks, t)
	s.mu.Unlock()
}

// Cancel prevents the callback from running if it has not started yet.
// Safe to call more than once and on a nil task.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.cancel()
	t.mu.Unlock()
}

// Done is closed once the task has fired or been cancelled.
func (t *Task) Done() <-chan struct{} { return t.done }

// Fired reports whether the callback ran (or is running).
func (t *Task) Fired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fired
}

func (t *Task) finish() {
	t.once.Do(func() { close(t.done) })
}
