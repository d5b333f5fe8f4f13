package controls

import "slices"

// Handler receives raw physical events from an EventSource.
type Handler interface {
	KeyDown(code KeyCode)
	KeyUp(code KeyCode)
	ButtonDown(button Button)
	ButtonUp(button Button)
	// PointerMove carries the pointer offset from the surface's top-left corner.
	PointerMove(x, y float64)
	FocusLost()
	// ContextMenu is asked before the platform opens its context menu and
	// returns true when the menu should be suppressed.
	ContextMenu() (suppress bool)
}

// EventSource delivers physical events to subscribed handlers. The returned
// func detaches exactly the handler that was subscribed.
type EventSource interface {
	Subscribe(h Handler) (unsubscribe func())
}

// Surface is the render target the pointer offset is measured against.
type Surface interface {
	Size() (width, height int)
}

// SurfaceFunc adapts a plain function to Surface.
type SurfaceFunc func() (width, height int)

func (f SurfaceFunc) Size() (int, int) { return f() }

type subscriber struct {
	id int
	h  Handler
}

// FeedSource is an in-memory EventSource. Events pushed into it are
// delivered synchronously to every subscriber in subscription order.
type FeedSource struct {
	subs   []subscriber
	nextID int
}

// NewFeedSource returns an empty feed.
func NewFeedSource() *FeedSource {
	return &FeedSource{}
}

func (f *FeedSource) Subscribe(h Handler) func() {
	f.nextID++
	id := f.nextID
	f.subs = append(f.subs, subscriber{id: id, h: h})
	return func() {
		f.subs = slices.DeleteFunc(f.subs, func(s subscriber) bool { return s.id == id })
	}
}

// Subscribers returns the number of attached handlers.
func (f *FeedSource) Subscribers() int {
	return len(f.subs)
}

func (f *FeedSource) each(fn func(h Handler)) {
	for _, s := range slices.Clone(f.subs) {
		fn(s.h)
	}
}

func (f *FeedSource) KeyDown(code KeyCode) { f.each(func(h Handler) { h.KeyDown(code) }) }

func (f *FeedSource) KeyUp(code KeyCode) { f.each(func(h Handler) { h.KeyUp(code) }) }

func (f *FeedSource) ButtonDown(button Button) { f.each(func(h Handler) { h.ButtonDown(button) }) }

func (f *FeedSource) ButtonUp(button Button) { f.each(func(h Handler) { h.ButtonUp(button) }) }

func (f *FeedSource) PointerMove(x, y float64) { f.each(func(h Handler) { h.PointerMove(x, y) }) }

func (f *FeedSource) FocusLost() { f.each(func(h Handler) { h.FocusLost() }) }

// ContextMenu reports whether any subscriber asked for suppression.
func (f *FeedSource) ContextMenu() bool {
	suppress := false
	f.each(func(h Handler) {
		if h.ContextMenu() {
			suppress = true
		}
	})
	return suppress
}
