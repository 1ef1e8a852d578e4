// Package schedule provides the admission scheduler that spaces calls to a
// quota-limited downstream API.
//
// Arbitrarily many goroutines may submit admission requests concurrently.
// A single drain loop releases them in strict submission order, never closer
// together than the scheduler's configured minimum delay. The scheduler is an
// admission gate only: it never performs the downstream call itself, and a
// quota rejection from the API does not feed back into its timing.
//
// # Usage
//
// Construct a scheduler per downstream quota and share it among callers:
//
//	sched, err := schedule.New(time.Second)
//	if err != nil {
//	    return err
//	}
//	defer sched.Close()
//
//	adm := sched.Submit()
//	if err := adm.Wait(ctx); err != nil {
//	    return err // canceled before dispatch
//	}
//	// safe to call the API now
//
// A caller that loses interest withdraws its place in line:
//
//	adm := sched.Submit()
//	...
//	adm.Cancel() // no-op if already dispatched
//
// Cancellation never consumes a dispatch slot: a withdrawn admission does not
// delay the entries behind it beyond what the minimum-interval rule requires.
//
// # Guarantees
//
//   - Dispatches occur in submission order among non-canceled admissions.
//   - Consecutive dispatches are at least the minimum delay apart.
//   - Every admission resolves exactly once, to success or cancellation.
//   - Submitting while the drain loop is mid-wait never blocks.
//
// Multiple independent Scheduler instances coexist; there is no package-level
// state.
package schedule
