// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ResolveError is a provider or transport failure surfaced to the
// caller. It is never retried by this package.
type ResolveError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// ErrorKind classifies resolver failures.
type ErrorKind int

const (
	// ErrorKindUnknown is an unclassified failure.
	ErrorKindUnknown ErrorKind = iota
	// ErrorKindRateLimit means the provider throttled us.
	ErrorKindRateLimit
	// ErrorKindQuotaExceeded means the daily quota is spent or the key
	// was rejected.
	ErrorKindQuotaExceeded
	// ErrorKindTimeout is a connection or deadline timeout.
	ErrorKindTimeout
	// ErrorKindNotFound means the provider had nothing for the query.
	ErrorKindNotFound
	// ErrorKindInvalidRequest means the request itself was malformed.
	ErrorKindInvalidRequest
	// ErrorKindNetwork is a transport-level failure.
	ErrorKindNetwork
)

func (e *ResolveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// IndexError reports catalog access with an out-of-bounds index. It is
// caller misuse, fatal to the operation but not to the process.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of bounds for catalog of %d entries", e.Index, e.Len)
}

// IsRateLimitError checks whether the error is a provider throttle.
func IsRateLimitError(err error) bool {
	var rerr *ResolveError
	if errors.As(err, &rerr) {
		return rerr.Kind == ErrorKindRateLimit
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429")
}

// IsQuotaExceededError checks whether the error is a spent quota.
func IsQuotaExceededError(err error) bool {
	var rerr *ResolveError
	if errors.As(err, &rerr) {
		return rerr.Kind == ErrorKindQuotaExceeded
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "over_query_limit") ||
		strings.Contains(errStr, "quota exceeded")
}

// IsTimeoutError checks whether the error is a timeout.
func IsTimeoutError(err error) bool {
	var rerr *ResolveError
	if errors.As(err, &rerr) {
		return rerr.Kind == ErrorKindTimeout
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// ClassifyHTTPError maps an HTTP status code to a ResolveError.
func ClassifyHTTPError(statusCode int) *ResolveError {
	switch statusCode {
	case http.StatusTooManyRequests: // 429
		return &ResolveError{
			Kind:    ErrorKindRateLimit,
			Message: "rate limit reached",
		}
	case http.StatusForbidden: // 403
		return &ResolveError{
			Kind:    ErrorKindQuotaExceeded,
			Message: "quota exceeded or access denied",
		}
	case http.StatusBadRequest: // 400
		return &ResolveError{
			Kind:    ErrorKindInvalidRequest,
			Message: "invalid request",
		}
	case http.StatusNotFound: // 404
		return &ResolveError{
			Kind:    ErrorKindNotFound,
			Message: "place not found",
		}
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return &ResolveError{
			Kind:    ErrorKindNetwork,
			Message: fmt.Sprintf("service unavailable (status %d)", statusCode),
		}
	default:
		return &ResolveError{
			Kind:    ErrorKindUnknown,
			Message: fmt.Sprintf("HTTP error %d", statusCode),
		}
	}
}

// ClassifyProviderStatus maps the status strings of the legacy Places
// API ("OK", "ZERO_RESULTS", "OVER_QUERY_LIMIT", …) to a ResolveError.
// "OK" and "ZERO_RESULTS" are not errors and yield nil.
func ClassifyProviderStatus(status string) *ResolveError {
	switch status {
	case "OK", "ZERO_RESULTS":
		return nil
	case "OVER_QUERY_LIMIT":
		return &ResolveError{
			Kind:    ErrorKindQuotaExceeded,
			Message: "provider status OVER_QUERY_LIMIT",
		}
	case "REQUEST_DENIED":
		return &ResolveError{
			Kind:    ErrorKindQuotaExceeded,
			Message: "provider status REQUEST_DENIED",
		}
	case "INVALID_REQUEST":
		return &ResolveError{
			Kind:    ErrorKindInvalidRequest,
			Message: "provider status INVALID_REQUEST",
		}
	case "NOT_FOUND":
		return &ResolveError{
			Kind:    ErrorKindNotFound,
			Message: "provider status NOT_FOUND",
		}
	default:
		return &ResolveError{
			Kind:    ErrorKindUnknown,
			Message: fmt.Sprintf("provider status %s", status),
		}
	}
}
