package search

import (
	"context"
	goerrors "errors"
	"fmt"
	"net/http"

	"github.com/altgrove/searchgate/errors"
)

// maxErrorBody caps how much of an upstream error body is carried in metadata.
const maxErrorBody = 512

// classifyStatus maps a non-success upstream response to a classified error.
// The classification is surfaced to the caller unchanged; it never feeds back
// into the scheduler's timing.
func classifyStatus(provider string, status int, body []byte) *errors.Error {
	opts := []errors.Option{
		errors.WithProvider(provider),
		errors.WithHTTPStatus(status),
		errors.WithMetadata("body", truncate(string(body), maxErrorBody)),
	}

	switch {
	case status == http.StatusTooManyRequests:
		return errors.New(errors.CodeRateLimited,
			fmt.Sprintf("%s rejected request: rate limit exceeded", provider), opts...)
	case status == http.StatusPaymentRequired:
		return errors.New(errors.CodeQuotaExceeded,
			fmt.Sprintf("%s rejected request: quota exhausted", provider), opts...)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errors.New(errors.CodeUnauthorized,
			fmt.Sprintf("%s rejected API key (%d)", provider, status), opts...)
	default:
		return errors.New(errors.CodeUpstream,
			fmt.Sprintf("%s returned %d", provider, status), opts...)
	}
}

// classifyTransport maps a connection-level failure to a classified error.
func classifyTransport(provider string, err error) *errors.Error {
	if goerrors.Is(err, context.DeadlineExceeded) {
		return errors.WrapWithCode(err, errors.CodeTimeout,
			fmt.Sprintf("%s request timed out", provider),
			errors.WithProvider(provider))
	}
	if goerrors.Is(err, context.Canceled) {
		return errors.WrapWithCode(err, errors.CodeCanceled,
			fmt.Sprintf("%s request canceled", provider),
			errors.WithProvider(provider))
	}
	return errors.WrapWithCode(err, errors.CodeNetwork,
		fmt.Sprintf("%s request failed", provider),
		errors.WithProvider(provider))
}

// classifyDecode maps a malformed upstream payload to a classified error.
func classifyDecode(provider string, err error) *errors.Error {
	return errors.WrapWithCode(err, errors.CodeUpstream,
		fmt.Sprintf("failed to parse %s response", provider),
		errors.WithProvider(provider))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
