// Package view holds the renderable units the presenters drive. A view turns
// data into markup through its template, lazily builds a document element
// for it and routes element events to the handlers set through its Set*
// methods. Handlers outlive the element: a rebuilt element is bound to the
// same callbacks.
package view

import (
	"tableflip.dev/filmdeck/pkg/render"
	"tableflip.dev/filmdeck/pkg/tui/theme"
)

// Event types routed into views.
const (
	EventClick   = "click"
	EventInput   = "input"
	EventKeydown = "keydown"
)

var styles = theme.Default()

// abstract carries the element bookkeeping shared by every view.
type abstract struct {
	name     string
	element  *render.Element
	template func() string
	bind     func(*render.Element)
}

// Element builds the element on first use.
func (a *abstract) Element() *render.Element {
	if a.element == nil {
		a.element = render.NewElement(a.name, a.template())
		if a.bind != nil {
			a.bind(a.element)
		}
	}
	return a.element
}

// HasElement reports whether an element has been built and not removed.
func (a *abstract) HasElement() bool {
	return a.element != nil
}

// RemoveElement drops the element; the next Element call builds a new one.
func (a *abstract) RemoveElement() {
	a.element = nil
}

// Template renders the view's markup.
func (a *abstract) Template() string {
	return a.template()
}

// updateElement re-renders the markup in place so the element keeps its
// position in the document.
func (a *abstract) updateElement() {
	if a.element != nil {
		a.element.SetBody(a.template())
	}
}

// handle registers fn for typ/target and prevents the default action before
// calling it.
func handle(el *render.Element, typ, target string, fn func(*render.Event)) {
	el.On(typ, target, func(ev *render.Event) {
		ev.PreventDefault()
		fn(ev)
	})
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
