package core

import "errors"

// ErrorKind classifies an upstream gateway failure.
type ErrorKind string

const (
	ErrRateLimited       ErrorKind = "rate_limited"
	ErrQuotaExceeded     ErrorKind = "quota_exceeded"
	ErrUpstreamFailure   ErrorKind = "upstream_failure"
	ErrMalformedResponse ErrorKind = "malformed_response"
	ErrConfigMissing     ErrorKind = "configuration_missing"
)

// Error is a classified gateway failure. The message is safe to surface to
// callers; it never carries partial response bodies.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError builds a classified error.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the classification from err, or ErrUpstreamFailure when
// err is not a classified gateway error.
func KindOf(err error) ErrorKind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ErrUpstreamFailure
}

// ClassifyStatus maps an HTTP status from the gateway to an error kind.
func ClassifyStatus(status int) ErrorKind {
	switch status {
	case 429:
		return ErrRateLimited
	case 402:
		return ErrQuotaExceeded
	default:
		return ErrUpstreamFailure
	}
}
