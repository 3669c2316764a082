package service

import "errors"

var (
	// ErrNotFound reports an absent item, order, cart line or notification.
	ErrNotFound = errors.New("not found")

	// ErrForbidden reports a role that lacks permission for the requested
	// transition.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition reports a status change the state machine does
	// not allow.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidState reports an operation whose precondition state does
	// not hold.
	ErrInvalidState = errors.New("invalid state")
)
