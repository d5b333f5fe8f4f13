package controls

// deviceState is the set of physical inputs currently held plus the last
// pointer position relative to the surface's top-left corner.
type deviceState struct {
	keys    map[KeyCode]struct{}
	buttons map[Button]struct{}

	pointerX, pointerY float64
	hasPointer         bool
}

func newDeviceState() *deviceState {
	return &deviceState{
		keys:    make(map[KeyCode]struct{}),
		buttons: make(map[Button]struct{}),
	}
}

func (s *deviceState) keyDown(code KeyCode) bool {
	_, ok := s.keys[code]
	return ok
}

func (s *deviceState) buttonDown(button Button) bool {
	_, ok := s.buttons[button]
	return ok
}

// reset drops every held key and button. The pointer position survives.
func (s *deviceState) reset() {
	clear(s.keys)
	clear(s.buttons)
}

// wouldBeActive reports whether b is active in state s: any of its keys or
// buttons is held. Edge detection and IsActive both go through here.
func wouldBeActive(b Binding, s *deviceState) bool {
	for _, k := range b.Keys {
		if s.keyDown(k) {
			return true
		}
	}
	for _, btn := range b.Buttons {
		if s.buttonDown(btn) {
			return true
		}
	}
	return false
}
