package service

import (
	"fmt"
	"time"
)

// RateLimitedError rejects a submission whose source address exceeded
// the allowed count within the current window
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return "too many submissions, try again later"
}

// DispatchError wraps a mail relay failure. The underlying relay error
// is logged for operator diagnosis but must never reach the caller.
type DispatchError struct {
	Err error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("mail dispatch failed: %v", e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
