// Package ebitensource feeds ebiten's polled input state into controls as
// discrete events.
package ebitensource

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/campus/controls"
)

// Input is the slice of ebiten's polled state a Source reads each tick.
type Input interface {
	IsFocused() bool
	AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key
	AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key
	IsMouseButtonJustPressed(b ebiten.MouseButton) bool
	IsMouseButtonJustReleased(b ebiten.MouseButton) bool
	CursorPosition() (int, int)
}

type ebitenInput struct{}

func (ebitenInput) IsFocused() bool { return ebiten.IsFocused() }

func (ebitenInput) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustPressedKeys(keys)
}

func (ebitenInput) AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustReleasedKeys(keys)
}

func (ebitenInput) IsMouseButtonJustPressed(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(b)
}

func (ebitenInput) IsMouseButtonJustReleased(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustReleased(b)
}

func (ebitenInput) CursorPosition() (int, int) { return ebiten.CursorPosition() }

// Source is a controls.EventSource backed by ebiten. Poll must be called once
// per tick from Game.Update, before anything queries the controls.
type Source struct {
	in   Input
	feed *controls.FeedSource
	keys []ebiten.Key

	focused bool

	cursorX, cursorY int
	cursorSeen       bool
}

// New reads the live ebiten input state.
func New() *Source {
	return NewWithInput(ebitenInput{})
}

func NewWithInput(in Input) *Source {
	return &Source{
		in:      in,
		feed:    controls.NewFeedSource(),
		focused: true,
	}
}

func (s *Source) Subscribe(h controls.Handler) func() {
	return s.feed.Subscribe(h)
}

// Poll diffs this tick's input state against the last one and emits the
// differences.
func (s *Source) Poll() {
	focused := s.in.IsFocused()
	if s.focused && !focused {
		s.feed.FocusLost()
	}
	s.focused = focused

	s.keys = s.in.AppendJustPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		s.feed.KeyDown(CodeForKey(k))
	}
	s.keys = s.in.AppendJustReleasedKeys(s.keys[:0])
	for _, k := range s.keys {
		s.feed.KeyUp(CodeForKey(k))
	}

	for b := ebiten.MouseButton0; b <= ebiten.MouseButtonMax; b++ {
		button := ButtonForMouse(b)
		if s.in.IsMouseButtonJustPressed(b) {
			s.feed.ButtonDown(button)
			if button == controls.ButtonSecondary {
				// ebiten already swallows the browser menu; the request is
				// still raised so handlers see the same sequence as on the web.
				s.feed.ContextMenu()
			}
		}
		if s.in.IsMouseButtonJustReleased(b) {
			s.feed.ButtonUp(button)
		}
	}

	x, y := s.in.CursorPosition()
	if s.cursorSeen && (x != s.cursorX || y != s.cursorY) {
		s.feed.PointerMove(float64(x), float64(y))
	}
	s.cursorX, s.cursorY = x, y
	s.cursorSeen = true
}
