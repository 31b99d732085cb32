package post

import (
	"fmt"
	"reflect"
	"strings"
)

// HandleEvent applies a workflow operation by event name.
//
// The recognised names are EventAddText (data must be a string),
// EventRequestReview, EventApprove and EventReject. An operation that has no
// effect in the current state yields a result with a rejection reason. An
// unknown name or malformed data yields a result carrying an *EventError and
// leaves the post untouched.
func (p *Post) HandleEvent(eventName string, eventData any) *EventResult {
	return p.SendEvent(NewEventAt(eventName, eventData, p.now()))
}

// SendEvent is HandleEvent for a prebuilt event
func (p *Post) SendEvent(event Event) *EventResult {
	current := p.state.Name()

	if isNilEvent(event) {
		err := NewEventError(ErrCodeInvalidEvent, "", current, "event is nil")
		p.observers.NotifyError(p, err)
		return NewEventResult(false, false, current, current).WithError(err)
	}

	switch name := strings.TrimSpace(event.GetName()); name {
	case EventAddText:
		if _, ok := event.GetData().(string); !ok {
			err := NewEventError(ErrCodeInvalidEventData, name, current,
				fmt.Sprintf("expected string data, got %T", event.GetData()))
			p.observers.NotifyError(p, err)
			return NewEventResult(false, false, current, current).WithError(err)
		}
		return p.addText(event)
	case EventRequestReview, EventApprove, EventReject:
		return p.fire(event)
	default:
		err := NewUnknownEventError(name, current)
		p.observers.NotifyError(p, err)
		return NewEventResult(false, false, current, current).WithError(err)
	}
}

// isNilEvent also catches typed nil pointers wrapped in the interface
func isNilEvent(event Event) bool {
	if event == nil {
		return true
	}
	v := reflect.ValueOf(event)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// addText appends the event's text if the current state accepts authoring
func (p *Post) addText(event Event) *EventResult {
	current := p.state.Name()
	text, _ := event.GetData().(string)

	appended, ok := p.state.addText(text)
	if !ok {
		reason := fmt.Sprintf("text dropped in state '%s'", current)
		p.observers.NotifyEventRejected(p, event, reason)
		return NewEventResult(false, false, current, current).WithRejection(reason)
	}

	p.content.WriteString(appended)
	p.observers.NotifyTextAdded(p, appended)
	return NewEventResult(true, false, current, current)
}

// fire runs a state transition and notifies observers once it is complete
func (p *Post) fire(event Event) *EventResult {
	name := strings.TrimSpace(event.GetName())
	from, to := p.transition(name)

	if from.Name() == to.Name() {
		reason := fmt.Sprintf("no transition from state '%s' on event '%s'", from.Name(), name)
		p.observers.NotifyEventRejected(p, event, reason)
		return NewEventResult(false, false, from.Name(), to.Name()).WithRejection(reason)
	}

	p.observers.NotifyStateExit(p, from.Name())
	p.enteredAt = p.now()
	p.observers.NotifyTransition(p, from.Name(), to.Name(), event)
	p.observers.NotifyStateEnter(p, to.Name())

	return NewEventResult(true, true, from.Name(), to.Name())
}

// transition takes the current state out of its slot, derives the successor
// from it and stores the successor back. The slot is refilled by the deferred
// assignment on every path, so callers never see it empty.
func (p *Post) transition(eventName string) (from, to State) {
	from, p.state = p.state, nil
	to = from
	defer func() { p.state = to }()

	switch eventName {
	case EventRequestReview:
		to = from.requestReview()
	case EventApprove:
		to = from.approve()
	case EventReject:
		to = from.reject()
	}

	return from, to
}
