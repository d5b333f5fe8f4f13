// Package controls turns raw keyboard and pointer events into logical
// binding state.
//
// A Controls instance owns the set of held keys and buttons, reports which
// bindings are active, and notifies listeners exactly once when a binding
// flips between inactive and active. It also derives a pointing direction
// from the last pointer position relative to the surface center.
//
// Controls is not safe for concurrent use. Events, queries and listener
// registration all belong on the goroutine that drives the game loop.
package controls

import (
	"io"
	"math"
	"slices"

	"github.com/charmbracelet/log"
)

// PointerMoveFunc receives the current pointing direction in radians, or
// ok == false when no pointer position has been seen yet.
type PointerMoveFunc func(dir float64, ok bool)

type listener[F any] struct {
	id int
	fn F
}

type listeners[F any] []listener[F]

func (l *listeners[F]) add(id int, fn F) {
	*l = append(*l, listener[F]{id: id, fn: fn})
}

func (l *listeners[F]) remove(id int) {
	*l = slices.DeleteFunc(*l, func(x listener[F]) bool { return x.id == id })
}

// snapshot copies the list so dispatch is unaffected by listeners that
// subscribe or unsubscribe while it runs.
func (l listeners[F]) snapshot() []F {
	out := make([]F, len(l))
	for i, x := range l {
		out[i] = x.fn
	}
	return out
}

// Handle identifies a registered listener.
type Handle struct {
	remove func()
}

// Remove unregisters the listener. Calling it more than once, or on the zero
// Handle, does nothing.
func (h Handle) Remove() {
	if h.remove != nil {
		h.remove()
	}
}

// Option configures a Controls.
type Option func(*Controls)

// WithLogger sets the logger used for debug output about transitions.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controls) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controls is the input binding and dispatch core.
type Controls struct {
	table   *Table
	surface Surface
	logger  *log.Logger

	state *deviceState

	becameActive   map[string]*listeners[func()]
	becameInactive map[string]*listeners[func()]
	pointerMove    listeners[PointerMoveFunc]
	clear          listeners[func()]
	nextID         int

	unsubscribe func()
	closed      bool
}

// New creates a Controls bound to table and subscribes it to src.
// surface is queried for its current size whenever a direction is computed.
func New(src EventSource, surface Surface, table *Table, opts ...Option) *Controls {
	if table == nil {
		table = DefaultTable()
	}
	c := &Controls{
		table:          table,
		surface:        surface,
		logger:         log.New(io.Discard),
		state:          newDeviceState(),
		becameActive:   make(map[string]*listeners[func()], table.Len()),
		becameInactive: make(map[string]*listeners[func()], table.Len()),
	}
	for _, opt := range opts {
		opt(c)
	}
	for _, b := range table.bindings {
		c.becameActive[b.ID] = &listeners[func()]{}
		c.becameInactive[b.ID] = &listeners[func()]{}
	}
	if src != nil {
		c.unsubscribe = src.Subscribe(&dispatcher{c: c})
	}
	return c
}

// Table returns the binding table this instance was built with.
func (c *Controls) Table() *Table {
	return c.table
}

// IsActive reports whether any key or button of the binding is held.
// It panics if id is not in the table.
func (c *Controls) IsActive(id string) bool {
	return wouldBeActive(c.table.mustLookup(id), c.state)
}

// PointingDir returns the angle in radians from the surface center to the
// last pointer position, using the surface size at the time of the call.
// ok is false until the first pointer move.
func (c *Controls) PointingDir() (dir float64, ok bool) {
	if !c.state.hasPointer {
		return 0, false
	}
	var w, h int
	if c.surface != nil {
		w, h = c.surface.Size()
	}
	return math.Atan2(c.state.pointerY-float64(h)/2, c.state.pointerX-float64(w)/2), true
}

// SuppressesContextMenu reports whether the platform context menu should be
// blocked, which is the case when some binding uses the secondary button.
func (c *Controls) SuppressesContextMenu() bool {
	return c.table.UsesButton(ButtonSecondary)
}

func (c *Controls) register(l *listeners[func()], fn func()) Handle {
	c.nextID++
	id := c.nextID
	l.add(id, fn)
	return Handle{remove: func() { l.remove(id) }}
}

// OnBecameActive registers fn to run when the binding goes from inactive to
// active. It panics if id is not in the table.
func (c *Controls) OnBecameActive(id string, fn func()) Handle {
	c.table.mustLookup(id)
	return c.register(c.becameActive[id], fn)
}

// OnBecameInactive registers fn to run when a release leaves the binding with
// no key or button held. It panics if id is not in the table.
func (c *Controls) OnBecameInactive(id string, fn func()) Handle {
	c.table.mustLookup(id)
	return c.register(c.becameInactive[id], fn)
}

// OnPointerMove registers fn to run on every pointer move and after a focus
// reset.
func (c *Controls) OnPointerMove(fn PointerMoveFunc) Handle {
	c.nextID++
	id := c.nextID
	c.pointerMove.add(id, fn)
	return Handle{remove: func() { c.pointerMove.remove(id) }}
}

// OnClear registers fn to run after focus loss has reset the held inputs.
func (c *Controls) OnClear(fn func()) Handle {
	return c.register(&c.clear, fn)
}

// Close detaches from the event source. No listener runs after Close.
func (c *Controls) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// Closed reports whether Close has been called.
func (c *Controls) Closed() bool {
	return c.closed
}

// press records a held input and returns the bindings it newly activated.
// matches selects the bindings the input belongs to; apply mutates state.
func (c *Controls) press(matches func(Binding) bool, apply func()) []string {
	var fresh []string
	for _, b := range c.table.bindings {
		if matches(b) && !wouldBeActive(b, c.state) {
			fresh = append(fresh, b.ID)
		}
	}
	apply()
	return fresh
}

// release drops a held input and returns every binding the input belongs to
// that has nothing else held. A binding need not have been active before, so
// releasing a key swallowed by a focus reset still reports its edge.
func (c *Controls) release(matches func(Binding) bool, apply func()) []string {
	apply()
	var gone []string
	for _, b := range c.table.bindings {
		if matches(b) && !wouldBeActive(b, c.state) {
			gone = append(gone, b.ID)
		}
	}
	return gone
}

func (c *Controls) fire(set map[string]*listeners[func()], ids []string, edge string) {
	for _, id := range ids {
		c.logger.Debug("binding transition", "binding", id, "edge", edge)
		for _, fn := range set[id].snapshot() {
			fn()
		}
	}
}

func (c *Controls) keyDown(code KeyCode) {
	fresh := c.press(
		func(b Binding) bool { return b.hasKey(code) },
		func() { c.state.keys[code] = struct{}{} },
	)
	c.fire(c.becameActive, fresh, "active")
}

func (c *Controls) keyUp(code KeyCode) {
	gone := c.release(
		func(b Binding) bool { return b.hasKey(code) },
		func() { delete(c.state.keys, code) },
	)
	c.fire(c.becameInactive, gone, "inactive")
}

func (c *Controls) buttonDown(button Button) {
	fresh := c.press(
		func(b Binding) bool { return b.hasButton(button) },
		func() { c.state.buttons[button] = struct{}{} },
	)
	c.fire(c.becameActive, fresh, "active")
}

func (c *Controls) buttonUp(button Button) {
	gone := c.release(
		func(b Binding) bool { return b.hasButton(button) },
		func() { delete(c.state.buttons, button) },
	)
	c.fire(c.becameInactive, gone, "inactive")
}

func (c *Controls) notifyPointer() {
	dir, ok := c.PointingDir()
	for _, fn := range c.pointerMove.snapshot() {
		fn(dir, ok)
	}
}

func (c *Controls) pointerMoved(x, y float64) {
	c.state.pointerX, c.state.pointerY = x, y
	c.state.hasPointer = true
	c.notifyPointer()
}

func (c *Controls) focusLost() {
	c.state.reset()
	c.logger.Debug("focus lost, held inputs cleared")
	c.notifyPointer()
	for _, fn := range c.clear.snapshot() {
		fn()
	}
}

// dispatcher is the Handler subscribed to the event source. Once the
// Controls is closed every event is dropped.
type dispatcher struct {
	c *Controls
}

func (d *dispatcher) KeyDown(code KeyCode) {
	if !d.c.closed {
		d.c.keyDown(code)
	}
}

func (d *dispatcher) KeyUp(code KeyCode) {
	if !d.c.closed {
		d.c.keyUp(code)
	}
}

func (d *dispatcher) ButtonDown(button Button) {
	if !d.c.closed {
		d.c.buttonDown(button)
	}
}

func (d *dispatcher) ButtonUp(button Button) {
	if !d.c.closed {
		d.c.buttonUp(button)
	}
}

func (d *dispatcher) PointerMove(x, y float64) {
	if !d.c.closed {
		d.c.pointerMoved(x, y)
	}
}

func (d *dispatcher) FocusLost() {
	if !d.c.closed {
		d.c.focusLost()
	}
}

func (d *dispatcher) ContextMenu() bool {
	return !d.c.closed && d.c.SuppressesContextMenu()
}
