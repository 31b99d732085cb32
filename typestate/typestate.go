// Package typestate encodes the publishing workflow with one type per state.
//
// Each type only has the methods that are valid in its state, so calling
// Approve on a *Draft or Content on a *PendingReview does not compile:
//
//	d := typestate.New()
//	d.AddText("hello")
//	p := d.RequestReview().Approve().Approve()
//	fmt.Println(p.Content())
//
// Transitions consume their receiver. Go cannot forbid reuse of a variable
// after a move, so every handle records when it has been consumed and panics
// with a *ConsumedError if it is used again. That check happens at run time,
// which is weaker than a compile-time move check; hold only the handle
// returned by the latest transition.
package typestate

import (
	"strings"

	"github.com/google/uuid"
)

// State names reported by Name
const (
	StateDraft               = "draft"
	StatePendingReview       = "pending_review"
	StatePendingSecondReview = "pending_second_review"
	StatePublished           = "published"
)

// document is the payload moved from handle to handle
type document struct {
	id      uuid.UUID
	content strings.Builder
}

// handle carries the document and the consumed flag shared by every state type
type handle struct {
	doc   *document
	state string
}

// use returns the document or panics if the handle was already consumed
func (h *handle) use(op string) *document {
	if h.doc == nil {
		panic(&ConsumedError{State: h.state, Operation: op})
	}
	return h.doc
}

// take moves the document out of the handle, leaving it consumed
func (h *handle) take(op string) *document {
	doc := h.use(op)
	h.doc = nil
	return doc
}

// ID returns the document identifier, stable across transitions
func (h *handle) ID() uuid.UUID {
	return h.use("ID").id
}

// Name returns the state name of the handle
func (h *handle) Name() string {
	return h.state
}

// Consumed reports whether a transition already moved the document out
func (h *handle) Consumed() bool {
	return h.doc == nil
}

// Draft is a document being authored
type Draft struct{ handle }

// PendingReview is a submitted document waiting for its first approval
type PendingReview struct{ handle }

// PendingSecondReview is a document waiting for its last approval
type PendingSecondReview struct{ handle }

// Published is a document whose content is visible
type Published struct{ handle }

// New creates an empty draft
func New() *Draft {
	return NewWithID(uuid.New())
}

// NewWithID creates an empty draft with a caller supplied identifier
func NewWithID(id uuid.UUID) *Draft {
	return &Draft{handle{doc: &document{id: id}, state: StateDraft}}
}

// AddText appends text to the draft
func (d *Draft) AddText(text string) {
	d.use("AddText").content.WriteString(text)
}

// RequestReview consumes the draft and submits it for review
func (d *Draft) RequestReview() *PendingReview {
	return &PendingReview{handle{doc: d.take("RequestReview"), state: StatePendingReview}}
}

// Approve consumes the review and records the first approval
func (r *PendingReview) Approve() *PendingSecondReview {
	return &PendingSecondReview{handle{doc: r.take("Approve"), state: StatePendingSecondReview}}
}

// Reject consumes the review and returns the document to draft
func (r *PendingReview) Reject() *Draft {
	return &Draft{handle{doc: r.take("Reject"), state: StateDraft}}
}

// Approve consumes the review and publishes the document
func (r *PendingSecondReview) Approve() *Published {
	return &Published{handle{doc: r.take("Approve"), state: StatePublished}}
}

// Reject consumes the review and returns the document to draft
func (r *PendingSecondReview) Reject() *Draft {
	return &Draft{handle{doc: r.take("Reject"), state: StateDraft}}
}

// Content returns the published text
func (p *Published) Content() string {
	return p.use("Content").content.String()
}
