package post

import (
	"time"
)

// Workflow event names
const (
	EventAddText       = "add_text"
	EventRequestReview = "request_review"
	EventApprove       = "approve"
	EventReject        = "reject"
)

// EventNames returns every event name the workflow understands
func EventNames() []string {
	return []string{EventAddText, EventRequestReview, EventApprove, EventReject}
}

// Event represents an operation applied to a Post
type Event interface {
	GetName() string
	GetData() any
	GetTimestamp() time.Time
	GetMetadata() map[string]any
}

// BaseEvent provides a basic implementation of the Event interface
type BaseEvent struct {
	name      string
	data      any
	timestamp time.Time
	metadata  map[string]any
}

// NewEvent creates a new basic event
func NewEvent(name string, data any) Event {
	return NewEventAt(name, data, time.Now())
}

// NewEventAt creates a new event stamped with the given time
func NewEventAt(name string, data any, at time.Time) Event {
	return &BaseEvent{
		name:      name,
		data:      data,
		timestamp: at,
		metadata:  make(map[string]any),
	}
}

// NewEventWithMetadata creates a new event with metadata
func NewEventWithMetadata(name string, data any, metadata map[string]any) Event {
	return &BaseEvent{
		name:      name,
		data:      data,
		timestamp: time.Now(),
		metadata:  metadata,
	}
}

// GetName returns the event name
func (e *BaseEvent) GetName() string {
	return e.name
}

// GetData returns the event data
func (e *BaseEvent) GetData() any {
	return e.data
}

// GetTimestamp returns the event timestamp
func (e *BaseEvent) GetTimestamp() time.Time {
	return e.timestamp
}

// GetMetadata returns a copy of the event metadata
func (e *BaseEvent) GetMetadata() map[string]any {
	result := make(map[string]any, len(e.metadata))
	for k, v := range e.metadata {
		result[k] = v
	}
	return result
}

// EventResult represents the outcome of applying an event.
//
// Processed is false when the operation had no effect, in which case
// RejectionReason says why. Error is set only for events the workflow does
// not understand.
type EventResult struct {
	Processed       bool
	StateChanged    bool
	PreviousState   string
	CurrentState    string
	Error           error
	RejectionReason string
}

// NewEventResult creates a new event result
func NewEventResult(processed, stateChanged bool, prevState, currentState string) *EventResult {
	return &EventResult{
		Processed:     processed,
		StateChanged:  stateChanged,
		PreviousState: prevState,
		CurrentState:  currentState,
	}
}

// WithError adds an error to the event result
func (r *EventResult) WithError(err error) *EventResult {
	r.Error = err
	return r
}

// WithRejection adds a rejection reason to the event result
func (r *EventResult) WithRejection(reason string) *EventResult {
	r.RejectionReason = reason
	r.Processed = false
	return r
}

// Success returns true if the event was processed successfully
func (r *EventResult) Success() bool {
	return r.Processed && r.Error == nil
}

// Rejected returns true if the event was understood but had no effect
func (r *EventResult) Rejected() bool {
	return r.RejectionReason != "" && r.Error == nil
}
