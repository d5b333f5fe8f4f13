package controls

import (
	"errors"
	"fmt"
	"slices"
)

// KeyCode is a physical key code in DOM "code" form, e.g. "KeyW" or "ArrowUp".
// It names the key's position on the keyboard, not the character it types.
type KeyCode string

// Button is a pointer button code. Values follow the DOM numbering so that
// bindings read the same regardless of the host.
type Button int

const (
	ButtonPrimary   Button = 0
	ButtonAuxiliary Button = 1
	ButtonSecondary Button = 2
)

// Binding ids of the default table.
const (
	North       = "north"
	South       = "south"
	West        = "west"
	East        = "east"
	Sprint      = "sprint"
	Shoot       = "shoot"
	TurnCompass = "turn_compass"
)

var (
	// ErrUnknownBinding is wrapped by the panic raised when a binding id is not
	// present in the table.
	ErrUnknownBinding = errors.New("unknown binding")
	// ErrInvalidTable is wrapped by NewTable validation errors.
	ErrInvalidTable = errors.New("invalid binding table")
)

// Binding maps one logical action to the physical signals that trigger it.
// Keys and Buttons are alternatives: any one of them held keeps the binding active.
type Binding struct {
	ID      string
	Keys    []KeyCode
	Buttons []Button
}

func (b Binding) hasKey(code KeyCode) bool {
	return slices.Contains(b.Keys, code)
}

func (b Binding) hasButton(button Button) bool {
	return slices.Contains(b.Buttons, button)
}

// Table is an ordered, immutable set of bindings.
type Table struct {
	bindings []Binding
	index    map[string]int
}

// NewTable validates and copies the given bindings. Declaration order is kept
// and is the order in which simultaneous transitions are dispatched.
func NewTable(bindings ...Binding) (*Table, error) {
	t := &Table{
		bindings: make([]Binding, 0, len(bindings)),
		index:    make(map[string]int, len(bindings)),
	}
	for i, b := range bindings {
		if b.ID == "" {
			return nil, fmt.Errorf("controls: binding %d: empty id: %w", i, ErrInvalidTable)
		}
		if _, dup := t.index[b.ID]; dup {
			return nil, fmt.Errorf("controls: binding %q: duplicate id: %w", b.ID, ErrInvalidTable)
		}
		if len(b.Keys) == 0 && len(b.Buttons) == 0 {
			return nil, fmt.Errorf("controls: binding %q: no keys or buttons: %w", b.ID, ErrInvalidTable)
		}
		t.index[b.ID] = len(t.bindings)
		t.bindings = append(t.bindings, Binding{
			ID:      b.ID,
			Keys:    slices.Clone(b.Keys),
			Buttons: slices.Clone(b.Buttons),
		})
	}
	return t, nil
}

// DefaultTable returns the game's built-in bindings.
func DefaultTable() *Table {
	t, err := NewTable(
		Binding{ID: North, Keys: []KeyCode{"KeyW", "ArrowUp"}},
		Binding{ID: South, Keys: []KeyCode{"KeyS", "ArrowDown"}},
		Binding{ID: West, Keys: []KeyCode{"KeyA", "ArrowLeft"}},
		Binding{ID: East, Keys: []KeyCode{"KeyD", "ArrowRight"}},
		Binding{ID: Sprint, Keys: []KeyCode{"ShiftLeft", "ShiftRight"}},
		Binding{ID: Shoot, Keys: []KeyCode{"Space"}, Buttons: []Button{ButtonPrimary}},
		Binding{ID: TurnCompass, Keys: []KeyCode{"KeyC"}},
	)
	if err != nil {
		panic("controls: default table: " + err.Error())
	}
	return t
}

// Lookup returns a copy of the binding with the given id.
func (t *Table) Lookup(id string) (Binding, bool) {
	i, ok := t.index[id]
	if !ok {
		return Binding{}, false
	}
	b := t.bindings[i]
	return Binding{ID: b.ID, Keys: slices.Clone(b.Keys), Buttons: slices.Clone(b.Buttons)}, true
}

// mustLookup is Lookup for callers that treat an unknown id as a bug.
func (t *Table) mustLookup(id string) Binding {
	i, ok := t.index[id]
	if !ok {
		panic(fmt.Errorf("controls: %w %q", ErrUnknownBinding, id))
	}
	return t.bindings[i]
}

// Bindings returns copies of the bindings in table order.
func (t *Table) Bindings() []Binding {
	out := make([]Binding, 0, len(t.bindings))
	for _, b := range t.bindings {
		out = append(out, Binding{ID: b.ID, Keys: slices.Clone(b.Keys), Buttons: slices.Clone(b.Buttons)})
	}
	return out
}

// Len returns the number of bindings.
func (t *Table) Len() int {
	return len(t.bindings)
}

// UsesButton reports whether any binding can be triggered by button.
func (t *Table) UsesButton(button Button) bool {
	for _, b := range t.bindings {
		if b.hasButton(button) {
			return true
		}
	}
	return false
}
