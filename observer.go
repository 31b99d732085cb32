package post

// Observer represents an entity that observes a Post's workflow
type Observer interface {
	// Required methods

	// OnTransition is called after the post moved to a different state
	OnTransition(p *Post, from string, to string, event Event)

	// OnStateEnter is called after the post entered a new state
	OnStateEnter(p *Post, state string)
}

// ExtendedObserver provides additional optional observation methods
type ExtendedObserver interface {
	Observer

	// OnStateExit is called when the post leaves a state
	OnStateExit(p *Post, state string)

	// OnEventRejected is called when an operation has no effect in the current state
	OnEventRejected(p *Post, event Event, reason string)

	// OnTextAdded is called after text was appended to a draft
	OnTextAdded(p *Post, text string)

	// OnError is called for malformed events and for panicking observers
	OnError(p *Post, err error)
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnTransition implements the required Observer method
func (o *BaseObserver) OnTransition(p *Post, from string, to string, event Event) {}

// OnStateEnter implements the required Observer method
func (o *BaseObserver) OnStateEnter(p *Post, state string) {}

// OnStateExit implements the optional ExtendedObserver method
func (o *BaseObserver) OnStateExit(p *Post, state string) {}

// OnEventRejected implements the optional ExtendedObserver method
func (o *BaseObserver) OnEventRejected(p *Post, event Event, reason string) {}

// OnTextAdded implements the optional ExtendedObserver method
func (o *BaseObserver) OnTextAdded(p *Post, text string) {}

// OnError implements the optional ExtendedObserver method
func (o *BaseObserver) OnError(p *Post, err error) {}

// ObserverManager manages a collection of observers.
//
// Observers are matched with == on removal and must be comparable; use
// pointer receivers as BaseObserver does.
//
// A panicking observer never reaches the caller: the panic is recovered and
// reported to the observer's OnError when it implements ExtendedObserver.
type ObserverManager struct {
	observers []Observer
}

// NewObserverManager creates a new observer manager
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		observers: make([]Observer, 0),
	}
}

// AddObserver adds an observer to the manager
func (om *ObserverManager) AddObserver(observer Observer) {
	om.observers = append(om.observers, observer)
}

// RemoveObserver removes an observer from the manager
func (om *ObserverManager) RemoveObserver(observer Observer) {
	for i, obs := range om.observers {
		if obs == observer {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			break
		}
	}
}

// Len returns the number of registered observers
func (om *ObserverManager) Len() int {
	return len(om.observers)
}

// snapshot copies the observer list so callbacks may add or remove observers
func (om *ObserverManager) snapshot() []Observer {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)
	return observers
}

// safeNotify runs a callback and turns a panic into an OnError notification
func safeNotify(p *Post, observer Observer, callback string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if extObs, ok := observer.(ExtendedObserver); ok {
				func() {
					defer func() { _ = recover() }()
					extObs.OnError(p, &ObserverError{Callback: callback, Value: r})
				}()
			}
		}
	}()
	fn()
}

// NotifyTransition notifies all observers of a state transition
func (om *ObserverManager) NotifyTransition(p *Post, from string, to string, event Event) {
	for _, observer := range om.snapshot() {
		observer := observer
		safeNotify(p, observer, "OnTransition", func() {
			observer.OnTransition(p, from, to, event)
		})
	}
}

// NotifyStateEnter notifies all observers of state entry
func (om *ObserverManager) NotifyStateEnter(p *Post, state string) {
	for _, observer := range om.snapshot() {
		observer := observer
		safeNotify(p, observer, "OnStateEnter", func() {
			observer.OnStateEnter(p, state)
		})
	}
}

// NotifyStateExit notifies all observers of state exit
func (om *ObserverManager) NotifyStateExit(p *Post, state string) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			safeNotify(p, observer, "OnStateExit", func() {
				extObs.OnStateExit(p, state)
			})
		}
	}
}

// NotifyEventRejected notifies all observers of an operation without effect
func (om *ObserverManager) NotifyEventRejected(p *Post, event Event, reason string) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			safeNotify(p, observer, "OnEventRejected", func() {
				extObs.OnEventRejected(p, event, reason)
			})
		}
	}
}

// NotifyTextAdded notifies all observers of appended text
func (om *ObserverManager) NotifyTextAdded(p *Post, text string) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			safeNotify(p, observer, "OnTextAdded", func() {
				extObs.OnTextAdded(p, text)
			})
		}
	}
}

// NotifyError notifies all observers of errors
func (om *ObserverManager) NotifyError(p *Post, err error) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			func() {
				defer func() { _ = recover() }()
				extObs.OnError(p, err)
			}()
		}
	}
}
