package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name         string
		code         Code
		message      string
		wantCategory Category
	}{
		{"timeout", CodeTimeout, "operation timed out", CategoryTransient},
		{"network", CodeNetwork, "connection refused", CategoryTransient},
		{"upstream", CodeUpstream, "bad gateway", CategoryTransient},
		{"canceled", CodeCanceled, "withdrawn before dispatch", CategoryPermanent},
		{"rate_limited", CodeRateLimited, "too many requests", CategoryResource},
		{"invalid_config", CodeInvalidConfig, "negative min delay", CategoryPermanent},
		{"internal", CodeInternal, "internal error", CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message)
			if err.Code() != tt.code {
				t.Errorf("Code() = %v, want %v", err.Code(), tt.code)
			}
			if err.Category() != tt.wantCategory {
				t.Errorf("Category() = %v, want %v", err.Category(), tt.wantCategory)
			}
			if err.Error() != tt.message {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.message)
			}
			if err.Timestamp().IsZero() {
				t.Error("Timestamp() should not be zero")
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CodeInvalidInput, "query %q is empty", "")
	want := `query "" is empty`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestFromCode(t *testing.T) {
	err := FromCode(CodeRateLimited)
	if err.Code() != CodeRateLimited {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeRateLimited)
	}
	if err.Error() != "rate limit exceeded" {
		t.Errorf("Error() = %v, want default description", err.Error())
	}
}

func TestRetryable(t *testing.T) {
	if !New(CodeRateLimited, "quota").Retryable() {
		t.Error("rate limited errors should be retryable by default")
	}
	if New(CodeCanceled, "gone").Retryable() {
		t.Error("cancellations should not be retryable")
	}

	// Explicit override beats the category default.
	err := New(CodeUpstream, "404 from brave", WithRetryable(false), WithHTTPStatus(404))
	if err.Retryable() {
		t.Error("explicit WithRetryable(false) should win")
	}
}

func TestOptions(t *testing.T) {
	err := New(CodeUpstream, "server error",
		WithProvider("tavily"),
		WithHTTPStatus(503),
		WithMetadata("body", "service unavailable"))

	if err.Provider() != "tavily" {
		t.Errorf("Provider() = %q, want tavily", err.Provider())
	}
	if err.HTTPStatus() != 503 {
		t.Errorf("HTTPStatus() = %d, want 503", err.HTTPStatus())
	}
	if err.Metadata()["body"] != "service unavailable" {
		t.Errorf("Metadata()[body] = %q", err.Metadata()["body"])
	}
}

func TestWrap(t *testing.T) {
	base := New(CodeRateLimited, "429 from brave", WithProvider("brave"), WithHTTPStatus(429))
	wrapped := Wrap(base, "searching web")

	if wrapped.Code() != CodeRateLimited {
		t.Errorf("wrapped Code() = %v, want RATE_LIMITED", wrapped.Code())
	}
	if wrapped.Provider() != "brave" {
		t.Errorf("wrapped Provider() = %q, want brave", wrapped.Provider())
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should match base via errors.Is")
	}
	if wrapped.Error() != "searching web: 429 from brave" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestWrapContextErrors(t *testing.T) {
	if got := Wrap(context.DeadlineExceeded, "waiting").Code(); got != CodeTimeout {
		t.Errorf("DeadlineExceeded wrapped to %v, want TIMEOUT", got)
	}
	if got := Wrap(context.Canceled, "waiting").Code(); got != CodeCanceled {
		t.Errorf("Canceled wrapped to %v, want CANCELED", got)
	}
}

func TestWrapUnknown(t *testing.T) {
	err := Wrap(fmt.Errorf("something odd"), "doing work")
	if err.Code() != CodeInternal {
		t.Errorf("unknown error wrapped to %v, want INTERNAL", err.Code())
	}
}

func TestPredicates(t *testing.T) {
	rl := New(CodeRateLimited, "quota")
	if !IsRateLimited(rl) {
		t.Error("IsRateLimited should match")
	}
	if !IsRetryable(rl) {
		t.Error("IsRetryable should match resource errors")
	}
	if IsCanceled(rl) {
		t.Error("IsCanceled should not match a rate limit")
	}
	if IsRetryable(fmt.Errorf("plain")) {
		t.Error("unclassified errors default to not retryable")
	}
	if ErrCode(fmt.Errorf("plain")) != "" {
		t.Error("ErrCode of unclassified error should be empty")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	orig := New(CodeUpstream, "bad gateway",
		WithProvider("google"), WithHTTPStatus(502), WithMetadata("body", "<html>"))

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded Error
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Code() != CodeUpstream {
		t.Errorf("decoded Code() = %v", decoded.Code())
	}
	if decoded.Provider() != "google" || decoded.HTTPStatus() != 502 {
		t.Errorf("decoded provider/status = %q/%d", decoded.Provider(), decoded.HTTPStatus())
	}
	if decoded.Metadata()["body"] != "<html>" {
		t.Errorf("decoded metadata = %v", decoded.Metadata())
	}
}
