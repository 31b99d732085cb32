package observers

import (
	"fmt"
	"sync"

	"github.com/anggasct/post"
)

// ValidationObserver checks observed transitions against the post workflow
// table and records every violation it sees.
type ValidationObserver struct {
	post.BaseObserver

	allowedTransitions map[string]map[string]string
	visitedStates      map[string]bool
	violations         []string
	mutex              sync.RWMutex
}

// NewValidationObserver creates a validation observer for post.Workflow
func NewValidationObserver() *ValidationObserver {
	o := &ValidationObserver{
		allowedTransitions: make(map[string]map[string]string),
		visitedStates:      make(map[string]bool),
		violations:         make([]string, 0),
	}
	for _, t := range post.Workflow() {
		if _, exists := o.allowedTransitions[t.SourceState]; !exists {
			o.allowedTransitions[t.SourceState] = make(map[string]string)
		}
		o.allowedTransitions[t.SourceState][t.EventName] = t.TargetState
	}
	return o
}

// OnStateEnter marks the state as visited
func (o *ValidationObserver) OnStateEnter(p *post.Post, state string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.visitedStates[state] = true
}

// OnTransition validates transitions
func (o *ValidationObserver) OnTransition(p *post.Post, from, to string, event post.Event) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	target, ok := o.allowedTransitions[from][event.GetName()]
	switch {
	case !ok:
		o.violations = append(o.violations, fmt.Sprintf(
			"Unknown transition from '%s' on event '%s'", from, event.GetName()))
	case target != to:
		o.violations = append(o.violations, fmt.Sprintf(
			"Invalid transition from '%s' to '%s' on event '%s', expected '%s'",
			from, to, event.GetName(), target))
	}
}

// OnEventRejected validates that an ignored operation really is a self-loop
func (o *ValidationObserver) OnEventRejected(p *post.Post, event post.Event, reason string) {
	if event.GetName() == post.EventAddText {
		if p.StateName() == post.StateDraft {
			o.addViolation("Text dropped while in draft")
		}
		return
	}

	if target, ok := post.Target(p.StateName(), event.GetName()); ok && target != p.StateName() {
		o.addViolation(fmt.Sprintf(
			"Event '%s' ignored in state '%s' but should lead to '%s'",
			event.GetName(), p.StateName(), target))
	}
}

// OnError records errors as violations
func (o *ValidationObserver) OnError(p *post.Post, err error) {
	o.addViolation(fmt.Sprintf("Error occurred: %v", err))
}

func (o *ValidationObserver) addViolation(message string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.violations = append(o.violations, message)
}

// GetViolations returns all validation violations
func (o *ValidationObserver) GetViolations() []string {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make([]string, len(o.violations))
	copy(result, o.violations)
	return result
}

// GetUnvisitedStates returns workflow states never entered, the initial state excepted
func (o *ValidationObserver) GetUnvisitedStates() []string {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	var unvisited []string
	for _, state := range post.StateNames() {
		if state != post.InitialState() && !o.visitedStates[state] {
			unvisited = append(unvisited, state)
		}
	}
	return unvisited
}

// HasViolations returns whether any violations occurred
func (o *ValidationObserver) HasViolations() bool {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.violations) > 0
}

// Reset resets the validation state
func (o *ValidationObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.visitedStates = make(map[string]bool)
	o.violations = make([]string, 0)
}
