package session

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEmptyInput   = errors.New("input is empty")
	ErrInputTooLong = errors.New("input is too long")
	ErrInvalidEnum  = errors.New("value is not allowed")
	ErrThrottled    = errors.New("submitting too quickly")

	ErrSessionNotFound = errors.New("session: not found")
	ErrEmpty           = errors.New("session: table is empty")
)

// ValidationError reports a rejected field. Err is one of ErrEmptyInput,
// ErrInputTooLong or ErrInvalidEnum.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %v: %q", e.Field, e.Err, e.Value)
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ThrottledError is returned by appends only when the store enforces the
// throttle window.
type ThrottledError struct {
	Remaining time.Duration
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("%v: wait %ds", ErrThrottled, ceilSeconds(e.Remaining))
}

func (e *ThrottledError) Unwrap() error { return ErrThrottled }

// InternalError wraps an unexpected failure during an append. The record
// that caused it is never stored.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return "session: internal error: " + e.Message
}
