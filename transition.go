package post

// Transition represents one edge of the workflow
type Transition struct {
	SourceState string
	TargetState string
	EventName   string
}

// NewTransition creates a new transition
func NewTransition(sourceState, targetState, eventName string) Transition {
	return Transition{
		SourceState: sourceState,
		TargetState: targetState,
		EventName:   eventName,
	}
}

// IsSelfLoop reports whether the transition leaves the state unchanged
func (t Transition) IsSelfLoop() bool {
	return t.SourceState == t.TargetState
}

// Workflow returns the full transition table of the Post workflow: one entry
// per state and state-changing event, self-loops included. add_text never
// changes the state and is not listed.
func Workflow() []Transition {
	return []Transition{
		NewTransition(StateDraft, StatePendingReview, EventRequestReview),
		NewTransition(StateDraft, StateDraft, EventApprove),
		NewTransition(StateDraft, StateDraft, EventReject),

		NewTransition(StatePendingReview, StatePendingReview, EventRequestReview),
		NewTransition(StatePendingReview, StatePendingSecondReview, EventApprove),
		NewTransition(StatePendingReview, StateDraft, EventReject),

		NewTransition(StatePendingSecondReview, StatePendingSecondReview, EventRequestReview),
		NewTransition(StatePendingSecondReview, StatePublished, EventApprove),
		NewTransition(StatePendingSecondReview, StateDraft, EventReject),

		NewTransition(StatePublished, StatePublished, EventRequestReview),
		NewTransition(StatePublished, StatePublished, EventApprove),
		NewTransition(StatePublished, StatePublished, EventReject),
	}
}

// TransitionsFrom returns the workflow edges leaving the given state
func TransitionsFrom(state string) []Transition {
	var result []Transition
	for _, t := range Workflow() {
		if t.SourceState == state {
			result = append(result, t)
		}
	}
	return result
}

// Target returns where the given event leads from the given state
func Target(state, eventName string) (string, bool) {
	for _, t := range Workflow() {
		if t.SourceState == state && t.EventName == eventName {
			return t.TargetState, true
		}
	}
	return "", false
}
