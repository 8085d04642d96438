// Package model holds the observable movie and filter state the presenters
// read from. Observers are notified synchronously, in registration order, on
// the UI loop.
package model

import "fmt"

// UpdateKind classifies a change notification and decides how much of the UI
// is re-rendered.
type UpdateKind int

const (
	// Patch means a single movie changed in place.
	Patch UpdateKind = iota
	// Minor means list membership or order may have changed; keep pagination.
	Minor
	// Major means the filter or sort criteria changed; reset pagination.
	Major
	// Init means the initial load completed.
	Init
)

func (k UpdateKind) String() string {
	switch k {
	case Patch:
		return "PATCH"
	case Minor:
		return "MINOR"
	case Major:
		return "MAJOR"
	case Init:
		return "INIT"
	default:
		return fmt.Sprintf("UpdateKind(%d)", int(k))
	}
}

// Observer receives change notifications. The payload type depends on the
// emitter: movie.Movie for patches, nil for list level events.
type Observer func(kind UpdateKind, payload any)

// Observable fans notifications out to registered observers.
type Observable struct {
	observers []Observer
}

// AddObserver registers fn.
func (o *Observable) AddObserver(fn Observer) {
	if fn != nil {
		o.observers = append(o.observers, fn)
	}
}

func (o *Observable) notify(kind UpdateKind, payload any) {
	// Copy so observers registering during dispatch see the next event only.
	observers := append([]Observer(nil), o.observers...)
	for _, fn := range observers {
		fn(kind, payload)
	}
}
