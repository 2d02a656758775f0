package services

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrCodeNotFound    = errors.New("no code outstanding")
	ErrCodeExpired     = errors.New("code expired")
	ErrCodeMismatch    = errors.New("code invalid")
	ErrTooManyAttempts = errors.New("too many attempts")
	ErrResendThrottled = errors.New("resend throttled")
	ErrAlreadyVerified = errors.New("already verified")

	ErrEmailTaken           = errors.New("email already registered")
	ErrAccountNotFound      = errors.New("account not found")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrConfirmationRequired = errors.New("confirmation required")
)

// ThrottledError carries the remaining wait so callers can tell the user when
// a resend becomes possible. errors.Is(err, ErrResendThrottled) matches it.
type ThrottledError struct {
	RetryAfter time.Duration
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("resend throttled, retry in %s", e.RetryAfter.Truncate(time.Second))
}

func (e *ThrottledError) Is(target error) bool {
	return target == ErrResendThrottled
}
