// Package errors provides a structured error taxonomy for searchgate. It
// defines the codes and categories used to classify failures at the boundary
// between the admission scheduler and the downstream search APIs.
//
// # Error Categories
//
// Errors are classified into four categories:
//
//   - Transient: Temporary failures where retry may succeed (network issues, etc.)
//   - Permanent: Failures where retry will not help (invalid input, cancellation, etc.)
//   - Resource: Resource exhaustion issues (rate limits, quotas)
//   - Internal: Unexpected errors indicating bugs or system failures
//
// # Error Codes
//
// Each error has a specific code that identifies the type of failure:
//
//   - RATE_LIMITED: Downstream quota rejection (HTTP 429)
//   - UPSTREAM: Other non-success upstream response, carrying status and body
//   - NETWORK_ERR: Transport/connection-level failure
//   - CANCELED: Admission withdrawn before dispatch
//   - And more...
//
// # Usage
//
// Create a new error:
//
//	err := errors.New(errors.CodeRateLimited, "brave rejected request",
//	    errors.WithProvider("brave"), errors.WithHTTPStatus(429))
//
// Wrap an existing error with context:
//
//	wrapped := errors.Wrap(err, "searching web")
//
// Check classification:
//
//	if errors.IsRateLimited(err) {
//	    // surface to caller; the scheduler's floor is static, no feedback
//	}
//
// # JSON Serialization
//
// Errors support JSON serialization so tool results can carry them:
//
//	data, err := json.Marshal(classifiedErr)
package errors
