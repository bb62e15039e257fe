package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when a requested status change is
	// not permitted for the actor from the order's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrUnauthorized is returned when the actor does not own the order
	// in the required role.
	ErrUnauthorized = errors.New("actor does not own this order in the required role")
	// ErrTimeout is returned when a remote call exceeds its deadline.
	ErrTimeout = errors.New("remote call timed out")
	// ErrNotAuthenticated is returned when an operation requires an
	// active session and none exists.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// TransitionError reports a rejected status transition. It identifies
// the current status, the requested status and the actor role, and
// unwraps to ErrInvalidTransition.
type TransitionError struct {
	Role Role
	From OrderStatus
	To   OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s may not move order from %s to %s", e.Role, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// RemoteError reports a non-success response from the backend API,
// carrying the server-reported message when one was present.
type RemoteError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "remote API request failed"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	return msg
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// ValidationError reports client-side rejection of malformed input,
// e.g. placing an order with zero items or a rating outside 1-5.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "validation failed"
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
