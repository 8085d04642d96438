// Package render is a small document tree the views draw into. Elements hold
// pre-rendered terminal markup and a list of children; the TUI lays the tree
// out into lines and routes key presses back in as events.
package render

import (
	"strings"
)

// ClassHideOverflow on the document body locks board scrolling while a popup
// is mounted.
const ClassHideOverflow = "hide-overflow"

// Element is one node of the document.
type Element struct {
	name     string
	body     string
	parent   *Element
	children []*Element
	classes  map[string]struct{}

	listeners []listener
}

type listener struct {
	typ    string
	target string
	fn     func(*Event)
}

// NewElement creates a detached element.
func NewElement(name, body string) *Element {
	return &Element{name: name, body: body}
}

// Element lets an *Element be passed wherever a View is expected.
func (e *Element) Element() *Element {
	return e
}

func (e *Element) Name() string {
	return e.name
}

// Body is the element's own markup, drawn before its children.
func (e *Element) Body() string {
	return e.body
}

// SetBody replaces the element's own markup without touching children.
func (e *Element) SetBody(body string) {
	e.body = body
}

func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	return append([]*Element(nil), e.children...)
}

// Attached reports whether the element is mounted under some parent.
func (e *Element) Attached() bool {
	return e.parent != nil
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// Find returns the first descendant (depth first) with the given name.
func (e *Element) Find(name string) *Element {
	for _, c := range e.children {
		if c.name == name {
			return c
		}
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant with the given name in document order.
func (e *Element) FindAll(name string) []*Element {
	var out []*Element
	for _, c := range e.children {
		if c.name == name {
			out = append(out, c)
		}
		out = append(out, c.FindAll(name)...)
	}
	return out
}

func (e *Element) AddClass(class string) {
	if e.classes == nil {
		e.classes = make(map[string]struct{})
	}
	e.classes[class] = struct{}{}
}

func (e *Element) RemoveClass(class string) {
	delete(e.classes, class)
}

func (e *Element) HasClass(class string) bool {
	_, ok := e.classes[class]
	return ok
}

// On registers fn for events of typ aimed at target. An empty target matches
// events aimed at the element itself.
func (e *Element) On(typ, target string, fn func(*Event)) {
	e.listeners = append(e.listeners, listener{typ: typ, target: target, fn: fn})
}

// Dispatch delivers ev to matching listeners in registration order and
// reports whether any of them prevented the default action.
func (e *Element) Dispatch(ev *Event) bool {
	for _, l := range e.listeners {
		if l.typ == ev.Type && l.target == ev.Target {
			l.fn(ev)
		}
	}
	return ev.DefaultPrevented()
}

// Handles reports whether a listener is registered for typ and target.
func (e *Element) Handles(typ, target string) bool {
	for _, l := range e.listeners {
		if l.typ == typ && l.target == target {
			return true
		}
	}
	return false
}

func (e *Element) indexOf(child *Element) int {
	for i, c := range e.children {
		if c == child {
			return i
		}
	}
	return -1
}

// insert expects child to be detached already.
func (e *Element) insert(at int, child *Element) {
	if at > len(e.children) {
		at = len(e.children)
	}
	child.parent = e
	e.children = append(e.children, nil)
	copy(e.children[at+1:], e.children[at:])
	e.children[at] = child
}

func (e *Element) detach() {
	if e.parent == nil {
		return
	}
	p := e.parent
	if i := p.indexOf(e); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	e.parent = nil
}

// String lays the subtree out without decoration.
func (e *Element) String() string {
	return e.Layout(nil).Text()
}

// Decorator may restyle an element's own body during layout. It must not
// change the number of lines.
type Decorator func(e *Element, body string) string

// Span is the half open line range [Start, End) an element occupies.
type Span struct {
	Start int
	End   int
}

// Layout is a laid out subtree.
type Layout struct {
	Lines []string
	Spans map[*Element]Span
}

// Text joins the laid out lines.
func (l Layout) Text() string {
	return strings.Join(l.Lines, "\n")
}

// Layout renders the element's body followed by its children, depth first.
func (e *Element) Layout(dec Decorator) Layout {
	l := Layout{Spans: make(map[*Element]Span)}
	e.layout(dec, &l)
	return l
}

func (e *Element) layout(dec Decorator, l *Layout) {
	start := len(l.Lines)
	if e.body != "" {
		body := e.body
		if dec != nil {
			body = dec(e, body)
		}
		l.Lines = append(l.Lines, strings.Split(body, "\n")...)
	}
	for _, c := range e.children {
		c.layout(dec, l)
	}
	l.Spans[e] = Span{Start: start, End: len(l.Lines)}
}
