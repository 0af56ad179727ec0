package delivery

import (
	"errors"
	"fmt"

	"campusporter/models"
)

var (
	ErrNotFound          = errors.New("delivery request not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("delivery request was modified by someone else")
	ErrDuplicateID       = errors.New("delivery request id already exists")
)

// ValidationError rejects malformed input before anything is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// TransitionError names the action that the request's current status does not allow.
type TransitionError struct {
	RequestID string
	Action    string
	From      models.DeliveryStatus
	To        models.DeliveryStatus
	Reason    string // set when the actor, not the status, blocks the action
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot %s request %s: %s", e.Action, e.RequestID, e.Reason)
	}
	if e.To != "" {
		return fmt.Sprintf("cannot %s request %s: %s -> %s is not allowed", e.Action, e.RequestID, e.From, e.To)
	}
	return fmt.Sprintf("cannot %s request %s while it is %s", e.Action, e.RequestID, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
