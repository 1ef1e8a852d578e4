package schedule

import (
	"sync"
	"time"

	"github.com/altgrove/searchgate/logging"
)

// Scheduler serializes admission to a rate-limited downstream API. It owns a
// FIFO queue of pending admissions and the timestamp of the last dispatch;
// at most one drain loop is ever active. It is safe for concurrent use.
type Scheduler struct {
	mu           sync.Mutex
	minDelay     time.Duration
	pending      []*Admission
	lastDispatch time.Time
	draining     bool
	closed       bool
	nextSeq      uint64

	nowFunc func() time.Time
	logger  *logging.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for drain loop events.
func WithLogger(l *logging.Logger) Option {
	return func(s *Scheduler) {
		s.logger = l
	}
}

// WithClock overrides the time source. For testing.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.nowFunc = now
	}
}

// New creates a Scheduler that keeps consecutive dispatches at least minDelay
// apart. A zero minDelay degenerates to unthrottled FIFO passthrough; a
// negative one is rejected.
func New(minDelay time.Duration, opts ...Option) (*Scheduler, error) {
	if minDelay < 0 {
		return nil, ErrInvalidDelay
	}
	s := &Scheduler{
		minDelay: minDelay,
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// MinDelay returns the configured floor between consecutive dispatches.
func (s *Scheduler) MinDelay() time.Duration {
	return s.minDelay
}

// Depth returns the number of admissions currently queued.
func (s *Scheduler) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Submit enqueues a new admission and returns it immediately. The caller
// waits on the admission for its turn. If the scheduler is closed, the
// returned admission is already resolved with ErrClosed.
func (s *Scheduler) Submit() *Admission {
	s.mu.Lock()

	a := &Admission{
		s:         s,
		submitted: s.nowFunc(),
		done:      make(chan struct{}),
	}

	if s.closed {
		a.state = stateCancelled
		a.err = ErrClosed
		close(a.done)
		s.mu.Unlock()
		return a
	}

	s.nextSeq++
	a.seq = s.nextSeq
	s.pending = append(s.pending, a)

	start := !s.draining
	if start {
		s.draining = true
	}
	s.mu.Unlock()

	if start {
		go s.drain()
	}
	return a
}

// Close cancels all queued admissions and rejects future submissions. It
// does not wait for a dispatched caller to finish its downstream call.
func (s *Scheduler) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.closed = true

	for _, a := range s.pending {
		if a.state == stateQueued {
			a.state = stateCancelled
			a.err = ErrClosed
			close(a.done)
		}
	}
	s.pending = nil
	return nil
}

// drain releases queued admissions in sequence order, spacing dispatches by
// at least minDelay. Exactly one instance runs at a time; it exits when the
// queue empties. The timed wait happens with the mutex released so
// submitters are never blocked by an in-progress wait.
func (s *Scheduler) drain() {
	for {
		s.mu.Lock()
		if s.closed || len(s.pending) == 0 {
			s.draining = false
			s.mu.Unlock()
			return
		}

		a := s.pending[0]
		s.pending = s.pending[1:]

		// A cancelled entry consumes no dispatch slot and no timing.
		if a.state != stateQueued {
			s.mu.Unlock()
			continue
		}

		var wait time.Duration
		if !s.lastDispatch.IsZero() {
			if elapsed := s.nowFunc().Sub(s.lastDispatch); elapsed < s.minDelay {
				wait = s.minDelay - elapsed
			}
		}
		depth := len(s.pending) + 1
		s.mu.Unlock()

		if wait > 0 {
			if s.logger != nil {
				s.logger.SchedulerWait(wait, depth)
			}
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-a.done:
				// Cancelled (or closed) mid-wait. lastDispatch is untouched,
				// so the next entry is not pushed later than the interval
				// rule requires.
				timer.Stop()
				continue
			}
		}

		s.mu.Lock()
		if a.state != stateQueued {
			s.mu.Unlock()
			continue
		}
		if s.closed {
			a.state = stateCancelled
			a.err = ErrClosed
			close(a.done)
			s.mu.Unlock()
			continue
		}

		s.lastDispatch = s.nowFunc()
		a.state = stateDispatched
		close(a.done)
		waited := s.lastDispatch.Sub(a.submitted)
		seq := a.seq
		s.mu.Unlock()

		if s.logger != nil {
			s.logger.Dispatch(seq, waited)
		}
	}
}
