// Package post provides a two-approval publishing workflow for a single
// document. A Post starts as a draft, is submitted for review, needs two
// approvals to be published and can be rejected back to draft from either
// review stage.
//
// The Post holds a runtime state value and every operation dispatches through
// it. Operations that are not valid in the current state are silent no-ops,
// so none of them can fail. The typestate subpackage encodes the same
// workflow with one Go type per state instead.
package post

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Post is a document moving through the publishing workflow.
//
// A Post is owned by a single caller; it is not safe for concurrent mutation.
type Post struct {
	id        uuid.UUID
	state     State
	content   strings.Builder
	observers *ObserverManager
	now       func() time.Time
	enteredAt time.Time
}

// Option configures a Post
type Option func(*Post)

// WithID overrides the generated document identifier
func WithID(id uuid.UUID) Option {
	return func(p *Post) {
		if id != uuid.Nil {
			p.id = id
		}
	}
}

// WithObserver registers an observer at construction time
func WithObserver(observer Observer) Option {
	return func(p *Post) {
		if observer != nil {
			p.observers.AddObserver(observer)
		}
	}
}

// WithClock overrides the clock used to stamp events (primarily for testing)
func WithClock(clock func() time.Time) Option {
	return func(p *Post) {
		if clock != nil {
			p.now = clock
		}
	}
}

// New creates an empty Post in the draft state
func New(opts ...Option) *Post {
	p := &Post{
		id:        uuid.New(),
		state:     draft{},
		observers: NewObserverManager(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.enteredAt = p.now()
	return p
}

// ID returns the document identifier
func (p *Post) ID() uuid.UUID {
	return p.id
}

// State returns the current workflow state
func (p *Post) State() State {
	return p.state
}

// StateName returns the name of the current workflow state
func (p *Post) StateName() string {
	return p.state.Name()
}

// StateEnteredAt returns when the post entered its current state. For the
// initial draft this is the creation time.
func (p *Post) StateEnteredAt() time.Time {
	return p.enteredAt
}

// IsPublished reports whether the post reached the terminal state
func (p *Post) IsPublished() bool {
	return IsFinal(p.state.Name())
}

// AddObserver registers an observer. Observers are compared on removal, so
// register pointers rather than struct values.
func (p *Post) AddObserver(observer Observer) {
	p.observers.AddObserver(observer)
}

// RemoveObserver unregisters an observer
func (p *Post) RemoveObserver(observer Observer) {
	p.observers.RemoveObserver(observer)
}

// AddText appends text to the content while the post is a draft.
// In any other state the text is dropped.
func (p *Post) AddText(text string) {
	p.addText(NewEventAt(EventAddText, text, p.now()))
}

// RequestReview submits a draft for its first review
func (p *Post) RequestReview() {
	p.fire(NewEventAt(EventRequestReview, nil, p.now()))
}

// Approve grants one approval. The second approval publishes the post.
func (p *Post) Approve() {
	p.fire(NewEventAt(EventApprove, nil, p.now()))
}

// Reject sends a post under review back to draft, keeping its content
func (p *Post) Reject() {
	p.fire(NewEventAt(EventReject, nil, p.now()))
}

// Content returns the accumulated text once published, or an empty string
func (p *Post) Content() string {
	return p.state.content(p)
}
