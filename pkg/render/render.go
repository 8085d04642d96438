package render

import (
	"errors"
	"fmt"
	"reflect"
)

// Position selects where Render places an element relative to the container.
type Position int

const (
	// BeforeEnd appends as the container's last child.
	BeforeEnd Position = iota
	// AfterBegin prepends as the container's first child.
	AfterBegin
	// BeforeBegin inserts as the container's previous sibling.
	BeforeBegin
	// AfterEnd inserts as the container's next sibling.
	AfterEnd
)

// View is anything that can hand out its element.
type View interface {
	Element() *Element
}

// removable views drop their element on Remove so the next Element call
// builds a fresh one.
type removable interface {
	View
	RemoveElement()
	HasElement() bool
}

// Event is a user interaction routed into the document.
type Event struct {
	Type   string
	Target string
	// Value carries text input, Key the key name for keydown events.
	Value string
	Key   string

	prevented bool
}

// PreventDefault marks the event as handled.
func (e *Event) PreventDefault() {
	e.prevented = true
}

func (e *Event) DefaultPrevented() bool {
	return e.prevented
}

// Document is the root of a rendered UI.
type Document struct {
	Body *Element
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{Body: NewElement("body", "")}
}

// Render mounts v's element into container at pos.
func Render(v View, container View, pos Position) error {
	if v == nil || container == nil {
		return errors.New("render: view and container are required")
	}
	el, parent := v.Element(), container.Element()
	if el.Contains(parent) {
		return errors.New("render: can't mount an element inside itself")
	}
	el.detach()
	switch pos {
	case BeforeEnd:
		parent.insert(len(parent.children), el)
	case AfterBegin:
		parent.insert(0, el)
	case BeforeBegin, AfterEnd:
		grand := parent.parent
		if grand == nil {
			return fmt.Errorf("render: %q has no parent to insert beside", parent.name)
		}
		at := grand.indexOf(parent)
		if pos == AfterEnd {
			at++
		}
		grand.insert(at, el)
	default:
		return fmt.Errorf("render: unknown position %d", pos)
	}
	return nil
}

// Replace swaps old's element for next's in place.
func Replace(next, old View) error {
	if next == nil || old == nil {
		return errors.New("render: can't replace unexisting elements")
	}
	newEl, oldEl := next.Element(), old.Element()
	parent := oldEl.parent
	if parent == nil {
		return errors.New("render: parent element doesn't exist")
	}
	if newEl == oldEl {
		return nil
	}
	newEl.detach()
	at := parent.indexOf(oldEl)
	oldEl.detach()
	parent.insert(at, newEl)
	return nil
}

// Remove detaches v's element and, for views, drops it. Removing a nil view or
// an already removed one does nothing.
func Remove(v View) {
	if isNil(v) {
		return
	}
	if r, ok := v.(removable); ok {
		if !r.HasElement() {
			return
		}
		r.Element().detach()
		r.RemoveElement()
		return
	}
	v.Element().detach()
}

// isNil also catches typed nil pointers such as a view that was never built.
func isNil(v View) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
