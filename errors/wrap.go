package errors

import (
	"context"
	"errors"
	"fmt"
)

// Wrap wraps an error with additional context while preserving the error chain.
// If err is nil, Wrap returns nil.
// If err is already a classified Error, it wraps it with the new message.
// Otherwise, it creates a new Internal error wrapping the original.
func Wrap(err error, message string, opts ...Option) *Error {
	if err == nil {
		return nil
	}

	// If it's already classified, preserve its properties
	var classified *Error
	if errors.As(err, &classified) {
		wrapped := &Error{
			code:      classified.code,
			category:  classified.category,
			message:   message,
			cause:     err,
			metadata:  classified.Metadata(),
			retryable: classified.retryable,
			provider:  classified.provider,
			status:    classified.status,
		}
		for _, opt := range opts {
			opt(wrapped)
		}
		return wrapped
	}

	// Check for context errors
	if errors.Is(err, context.DeadlineExceeded) {
		return New(CodeTimeout, message, append(opts, WithCause(err))...)
	}
	if errors.Is(err, context.Canceled) {
		return New(CodeCanceled, message, append(opts, WithCause(err))...)
	}

	// Default to internal error for unknown errors
	return New(CodeInternal, message, append(opts, WithCause(err))...)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific error code.
func WrapWithCode(err error, code Code, message string, opts ...Option) *Error {
	if err == nil {
		return nil
	}
	opts = append(opts, WithCause(err))
	return New(code, message, opts...)
}

// AsClassified attempts to extract a ClassifiedError from an error chain.
// Returns nil if no classified error is found.
func AsClassified(err error) ClassifiedError {
	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}
	return nil
}

// Is checks if any error in the chain has the given error code.
func Is(err error, code Code) bool {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.code == code
	}
	return false
}

// IsCategory checks if any error in the chain has the given category.
func IsCategory(err error, category Category) bool {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.category == category
	}
	return false
}

// IsRetryable checks if the error is retryable.
func IsRetryable(err error) bool {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Retryable()
	}
	// Default to not retryable for unclassified errors
	return false
}

// IsRateLimited reports whether the error is a downstream quota rejection.
func IsRateLimited(err error) bool {
	return Is(err, CodeRateLimited)
}

// IsCanceled reports whether the error is a cancellation.
func IsCanceled(err error) bool {
	return Is(err, CodeCanceled)
}

// ErrCode extracts the error code from an error, if available.
// Returns empty string if err is not classified.
func ErrCode(err error) Code {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.code
	}
	return ""
}

// ErrCategory extracts the error category from an error, if available.
// Returns empty string if err is not classified.
func ErrCategory(err error) Category {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.category
	}
	return ""
}
