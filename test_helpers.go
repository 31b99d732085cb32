package post

import (
	"sync"
	"testing"
)

// TestObserver is a mock observer for testing that captures all observer events
type TestObserver struct {
	mutex        sync.RWMutex
	Transitions  []TransitionEvent
	StateEnters  []StateEvent
	StateExits   []StateEvent
	EventRejects []EventRejectEvent
	TextAdds     []string
	Errors       []error
}

type TransitionEvent struct {
	From  string
	To    string
	Event Event
}

type StateEvent struct {
	State string
}

type EventRejectEvent struct {
	Event  Event
	Reason string
}

// NewTestObserver creates a new test observer
func NewTestObserver() *TestObserver {
	return &TestObserver{
		Transitions:  make([]TransitionEvent, 0),
		StateEnters:  make([]StateEvent, 0),
		StateExits:   make([]StateEvent, 0),
		EventRejects: make([]EventRejectEvent, 0),
		TextAdds:     make([]string, 0),
		Errors:       make([]error, 0),
	}
}

// Observer interface implementations
func (o *TestObserver) OnTransition(p *Post, from string, to string, event Event) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Transitions = append(o.Transitions, TransitionEvent{From: from, To: to, Event: event})
}

func (o *TestObserver) OnStateEnter(p *Post, state string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.StateEnters = append(o.StateEnters, StateEvent{State: state})
}

// ExtendedObserver interface implementations
func (o *TestObserver) OnStateExit(p *Post, state string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.StateExits = append(o.StateExits, StateEvent{State: state})
}

func (o *TestObserver) OnEventRejected(p *Post, event Event, reason string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.EventRejects = append(o.EventRejects, EventRejectEvent{Event: event, Reason: reason})
}

func (o *TestObserver) OnTextAdded(p *Post, text string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.TextAdds = append(o.TextAdds, text)
}

func (o *TestObserver) OnError(p *Post, err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Errors = append(o.Errors, err)
}

// Helper methods for test assertions
func (o *TestObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.Transitions = make([]TransitionEvent, 0)
	o.StateEnters = make([]StateEvent, 0)
	o.StateExits = make([]StateEvent, 0)
	o.EventRejects = make([]EventRejectEvent, 0)
	o.TextAdds = make([]string, 0)
	o.Errors = make([]error, 0)
}

func (o *TestObserver) TransitionCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Transitions)
}

func (o *TestObserver) RejectCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.EventRejects)
}

func (o *TestObserver) LastTransition() *TransitionEvent {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	if len(o.Transitions) == 0 {
		return nil
	}
	return &o.Transitions[len(o.Transitions)-1]
}

// VisitedStates returns the entered states in order
func (o *TestObserver) VisitedStates() []string {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	states := make([]string, len(o.StateEnters))
	for i, e := range o.StateEnters {
		states[i] = e.State
	}
	return states
}

// Test post builders

// CreatePostInState drives a new post along the shortest path to the given state.
// Text passed in is added while the post is still a draft.
func CreatePostInState(state string, text ...string) *Post {
	p := New()
	for _, fragment := range text {
		p.AddText(fragment)
	}

	switch state {
	case StatePendingReview:
		p.RequestReview()
	case StatePendingSecondReview:
		p.RequestReview()
		p.Approve()
	case StatePublished:
		p.RequestReview()
		p.Approve()
		p.Approve()
	}
	return p
}

// Test assertions and utilities

// AssertState checks if the post is in the expected state
func AssertState(t *testing.T, p *Post, expectedState string) {
	t.Helper()
	if p.StateName() != expectedState {
		t.Errorf("Expected state '%s', got '%s'", expectedState, p.StateName())
	}
}

// AssertContent checks the visible content of the post
func AssertContent(t *testing.T, p *Post, expected string) {
	t.Helper()
	if got := p.Content(); got != expected {
		t.Errorf("Expected content %q, got %q", expected, got)
	}
}

// AssertStateChanged checks if state transition occurred
func AssertStateChanged(t *testing.T, result *EventResult, expectedPrevious, expectedCurrent string) {
	t.Helper()
	if !result.StateChanged {
		t.Errorf("Expected state change from '%s' to '%s'", expectedPrevious, expectedCurrent)
		return
	}
	if result.PreviousState != expectedPrevious {
		t.Errorf("Expected previous state '%s', got '%s'", expectedPrevious, result.PreviousState)
	}
	if result.CurrentState != expectedCurrent {
		t.Errorf("Expected current state '%s', got '%s'", expectedCurrent, result.CurrentState)
	}
}

// AssertEventProcessed checks if event was processed successfully
func AssertEventProcessed(t *testing.T, result *EventResult, shouldProcess bool) {
	t.Helper()
	if result.Processed != shouldProcess {
		t.Errorf("Expected Processed=%v, got %v (reason: %q, error: %v)",
			shouldProcess, result.Processed, result.RejectionReason, result.Error)
	}
}
