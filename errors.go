package post

import (
	"errors"
	"fmt"
)

// ErrorCode represents specific error conditions of the event interface
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// Event name is not part of the workflow
	ErrCodeInvalidEvent
	// Event data does not match what the event expects
	ErrCodeInvalidEventData
)

// String returns a readable name for the code
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeNone:
		return "none"
	case ErrCodeInvalidEvent:
		return "invalid_event"
	case ErrCodeInvalidEventData:
		return "invalid_event_data"
	default:
		return fmt.Sprintf("error_code(%d)", int(c))
	}
}

// ErrInvalidEvent is matched by every *EventError via errors.Is
var ErrInvalidEvent = errors.New("post: invalid event")

// EventError describes an event that could not be applied to a Post.
//
// The direct operations (AddText, RequestReview, Approve, Reject) never
// produce it; only HandleEvent and SendEvent do.
type EventError struct {
	Code    ErrorCode
	Event   string
	State   string
	Message string
}

func (e *EventError) Error() string {
	return fmt.Sprintf("event error [%s in %s]: %s", e.Event, e.State, e.Message)
}

// Is lets errors.Is match any EventError against ErrInvalidEvent
func (e *EventError) Is(target error) bool {
	return target == ErrInvalidEvent
}

// NewEventError creates a new event error with custom values
func NewEventError(code ErrorCode, event, state, message string) *EventError {
	return &EventError{
		Code:    code,
		Event:   event,
		State:   state,
		Message: message,
	}
}

// NewUnknownEventError creates an error for an event name the workflow does not define
func NewUnknownEventError(event, state string) *EventError {
	return &EventError{
		Code:    ErrCodeInvalidEvent,
		Event:   event,
		State:   state,
		Message: fmt.Sprintf("unknown event '%s'", event),
	}
}

// ObserverError wraps a panic recovered from an observer callback
type ObserverError struct {
	Callback string
	Value    any
}

func (e *ObserverError) Error() string {
	return fmt.Sprintf("observer panic in %s: %v", e.Callback, e.Value)
}

// IsEventError checks if an error is an EventError
func IsEventError(err error) bool {
	var target *EventError
	return errors.As(err, &target)
}

// IsObserverError checks if an error is an ObserverError
func IsObserverError(err error) bool {
	var target *ObserverError
	return errors.As(err, &target)
}

// GetErrorCode returns the error code for known error types
func GetErrorCode(err error) ErrorCode {
	var eventErr *EventError
	if errors.As(err, &eventErr) {
		return eventErr.Code
	}
	return ErrCodeNone
}
