package schedule

import (
	"context"
	"errors"
	"time"
)

// Common errors.
var (
	ErrCancelled    = errors.New("admission cancelled before dispatch")
	ErrClosed       = errors.New("scheduler closed")
	ErrInvalidDelay = errors.New("minimum delay must be non-negative")
)

// admissionState tracks an admission through its lifetime.
type admissionState int

const (
	stateQueued admissionState = iota
	stateDispatched
	stateCancelled
)

// Admission is a pending request for permission to perform one downstream
// call. It is created by Scheduler.Submit and resolves exactly once: with
// success when the drain loop dispatches it, or with an error when it is
// cancelled while still queued.
type Admission struct {
	s         *Scheduler
	seq       uint64
	submitted time.Time

	// state and err are guarded by s.mu. err is set before done is closed
	// and never written again, so readers that observe done closed may read
	// err without the lock.
	state admissionState
	err   error
	done  chan struct{}
}

// Seq returns the admission's sequence number. Sequence numbers are assigned
// at submission time and define dispatch order.
func (a *Admission) Seq() uint64 {
	return a.seq
}

// Done returns a channel that is closed when the admission resolves.
func (a *Admission) Done() <-chan struct{} {
	return a.done
}

// Err returns the admission's outcome. It must only be called after the Done
// channel is closed. A nil result means the admission was dispatched.
func (a *Admission) Err() error {
	return a.err
}

// Wait blocks until the admission is dispatched or cancelled. It returns nil
// once the caller may proceed to the downstream call. If ctx ends first, the
// admission is withdrawn (when still queued) and the context error returned.
func (a *Admission) Wait(ctx context.Context) error {
	select {
	case <-a.done:
		return a.err
	case <-ctx.Done():
		a.Cancel()
		return ctx.Err()
	}
}

// Cancel withdraws a still-queued admission. It reports whether the
// cancellation won: false means the admission was already resolved (either
// dispatched or cancelled earlier), in which case Cancel changes nothing.
func (a *Admission) Cancel() bool {
	s := a.s

	s.mu.Lock()
	if a.state != stateQueued {
		s.mu.Unlock()
		return false
	}
	a.state = stateCancelled
	a.err = ErrCancelled
	close(a.done)
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.AdmissionCanceled(a.seq)
	}
	return true
}
