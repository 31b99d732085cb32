package post

// State names reported by State.Name and used as event endpoints
const (
	StateDraft               = "draft"
	StatePendingReview       = "pending_review"
	StatePendingSecondReview = "pending_second_review"
	StatePublished           = "published"
)

// State represents the workflow position of a Post.
//
// The interface is sealed: the transition methods are unexported, so only the
// four states of this package can implement it. Each transition takes the
// receiver by value and returns its successor, which may be the receiver
// itself when the operation has no effect in that state.
type State interface {
	Name() string

	requestReview() State
	approve() State
	reject() State

	// addText reports the text to append, or false when authoring is closed
	addText(text string) (string, bool)
	// content reports the visible content of the post
	content(p *Post) string
}

// baseState supplies the behaviour shared by every state that does not
// override it: text is dropped and content is hidden.
type baseState struct{}

func (baseState) addText(string) (string, bool) { return "", false }

func (baseState) content(*Post) string { return "" }

// draft is the initial state and the only one accepting text
type draft struct{ baseState }

func (draft) Name() string { return StateDraft }

func (draft) requestReview() State { return pendingReview{} }

// approving a draft that was never submitted has no effect
func (s draft) approve() State { return s }

func (s draft) reject() State { return s }

func (draft) addText(text string) (string, bool) { return text, true }

// pendingReview waits for the first of two approvals
type pendingReview struct{ baseState }

func (pendingReview) Name() string { return StatePendingReview }

func (s pendingReview) requestReview() State { return s }

func (pendingReview) approve() State { return pendingSecondReview{} }

func (pendingReview) reject() State { return draft{} }

// pendingSecondReview waits for the last approval before publication
type pendingSecondReview struct{ baseState }

func (pendingSecondReview) Name() string { return StatePendingSecondReview }

func (s pendingSecondReview) requestReview() State { return s }

func (pendingSecondReview) approve() State { return published{} }

func (pendingSecondReview) reject() State { return draft{} }

// published is terminal. Nothing moves it and it alone exposes content.
type published struct{ baseState }

func (published) Name() string { return StatePublished }

func (s published) requestReview() State { return s }

func (s published) approve() State { return s }

func (s published) reject() State { return s }

func (published) content(p *Post) string { return p.content.String() }

// StateNames returns the names of all workflow states in happy-path order
func StateNames() []string {
	return []string{StateDraft, StatePendingReview, StatePendingSecondReview, StatePublished}
}

// InitialState returns the name of the state every new Post starts in
func InitialState() string {
	return StateDraft
}

// FinalState returns the name of the terminal state
func FinalState() string {
	return StatePublished
}

// IsFinal reports whether a state name denotes the terminal state
func IsFinal(name string) bool {
	return name == StatePublished
}
