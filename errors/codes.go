package errors

// Category classifies errors by their nature and retry semantics.
type Category string

// Error categories define how errors should be handled.
const (
	// CategoryTransient indicates temporary failures where retry may succeed.
	// Examples: network timeouts, temporary upstream unavailability.
	CategoryTransient Category = "transient"

	// CategoryPermanent indicates failures where retry will not help.
	// Examples: invalid query, authentication failure, cancellation.
	CategoryPermanent Category = "permanent"

	// CategoryResource indicates resource exhaustion or quota issues.
	// Examples: rate limiting by the downstream API, quota exceeded.
	CategoryResource Category = "resource"

	// CategoryInternal indicates unexpected errors, bugs, or system failures.
	CategoryInternal Category = "internal"
)

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// IsRetryable returns true if errors in this category may succeed on retry.
func (c Category) IsRetryable() bool {
	switch c {
	case CategoryTransient, CategoryResource:
		return true
	default:
		return false
	}
}

// Code identifies specific error types within categories.
type Code string

// Error codes for the failure scenarios a search proxy encounters.
const (
	// Transient errors
	CodeTimeout  Code = "TIMEOUT"     // Operation timed out
	CodeNetwork  Code = "NETWORK_ERR" // Transport/connection-level failure
	CodeUpstream Code = "UPSTREAM"    // Downstream API returned a non-success response

	// Permanent errors
	CodeCanceled      Code = "CANCELED"       // Admission withdrawn before dispatch
	CodeInvalidInput  Code = "INVALID_INPUT"  // Malformed query or arguments
	CodeUnauthorized  Code = "UNAUTHORIZED"   // API key missing or rejected
	CodeNotFound      Code = "NOT_FOUND"      // Resource does not exist
	CodeUnsupported   Code = "UNSUPPORTED"    // Operation not supported
	CodeInvalidConfig Code = "INVALID_CONFIG" // Configuration rejected at construction

	// Resource errors
	CodeRateLimited   Code = "RATE_LIMITED"   // Downstream quota rejection (HTTP 429)
	CodeQuotaExceeded Code = "QUOTA_EXCEEDED" // Billing/daily quota exhausted

	// Internal errors
	CodeInternal Code = "INTERNAL" // Unexpected internal error
)

// String returns the string representation of the error code.
func (c Code) String() string {
	return string(c)
}

// DefaultCategory returns the default category for an error code.
func (c Code) DefaultCategory() Category {
	switch c {
	case CodeTimeout, CodeNetwork, CodeUpstream:
		return CategoryTransient

	case CodeCanceled, CodeInvalidInput, CodeUnauthorized, CodeNotFound,
		CodeUnsupported, CodeInvalidConfig:
		return CategoryPermanent

	case CodeRateLimited, CodeQuotaExceeded:
		return CategoryResource

	default:
		return CategoryInternal
	}
}

// DefaultRetryable returns whether this error code is typically retryable.
func (c Code) DefaultRetryable() bool {
	return c.DefaultCategory().IsRetryable()
}

// codeDescriptions provides human-readable descriptions for error codes.
var codeDescriptions = map[Code]string{
	CodeTimeout:       "operation timed out",
	CodeNetwork:       "network connectivity error",
	CodeUpstream:      "upstream API error",
	CodeCanceled:      "request canceled before dispatch",
	CodeInvalidInput:  "invalid input provided",
	CodeUnauthorized:  "authentication required",
	CodeNotFound:      "resource not found",
	CodeUnsupported:   "operation not supported",
	CodeInvalidConfig: "invalid configuration",
	CodeRateLimited:   "rate limit exceeded",
	CodeQuotaExceeded: "quota exceeded",
	CodeInternal:      "internal error",
}

// Description returns a human-readable description for the error code.
func (c Code) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}
