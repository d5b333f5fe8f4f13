// Package demo drives controls from a tengo script instead of a player, for
// the attract mode and for replaying input sequences headlessly.
package demo

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/campus/controls"
	"github.com/milk9111/campus/prefabs"
)

// The script defines tick(frame) returning an array of event maps.
const tickDispatchScript = `
__events := tick(__frame)
`

// ScriptSource is a controls.EventSource whose events come from a script.
type ScriptSource struct {
	feed     *controls.FeedSource
	compiled *tengo.Compiled
	frame    int
}

// LoadScriptSource compiles an embedded script from prefabs/scripts.
func LoadScriptSource(name string) (*ScriptSource, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("demo: load %s: %w", name, err)
	}
	s, err := NewScriptSource(src)
	if err != nil {
		return nil, fmt.Errorf("demo: %s: %w", name, err)
	}
	return s, nil
}

func NewScriptSource(src []byte) (*ScriptSource, error) {
	compiled, err := compile(src)
	if err != nil {
		return nil, err
	}
	return &ScriptSource{feed: controls.NewFeedSource(), compiled: compiled}, nil
}

func compile(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(append(append([]byte(nil), src...), tickDispatchScript...))
	_ = script.Add("__frame", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
}

// Reload swaps in an edited script. The frame counter and subscribers carry
// over; on error the previous script stays in place.
func (s *ScriptSource) Reload(src []byte) error {
	compiled, err := compile(src)
	if err != nil {
		return fmt.Errorf("demo: reload: %w", err)
	}
	s.compiled = compiled
	return nil
}

func (s *ScriptSource) Subscribe(h controls.Handler) func() {
	return s.feed.Subscribe(h)
}

// Frame returns the number of frames polled so far.
func (s *ScriptSource) Frame() int {
	return s.frame
}

// Poll runs the script for the current frame and delivers its events.
func (s *ScriptSource) Poll() error {
	frame := s.frame
	s.frame++

	if err := s.compiled.Set("__frame", frame); err != nil {
		return fmt.Errorf("demo: frame %d: %w", frame, err)
	}
	if err := s.compiled.Run(); err != nil {
		return fmt.Errorf("demo: frame %d: %w", frame, err)
	}

	raw := s.compiled.Get("__events").Value()
	if raw == nil {
		return nil
	}
	events, ok := raw.([]any)
	if !ok {
		return fmt.Errorf("demo: frame %d: tick returned %T, want array", frame, raw)
	}
	for i, e := range events {
		m, ok := e.(map[string]any)
		if !ok {
			return fmt.Errorf("demo: frame %d: event %d is %T, want map", frame, i, e)
		}
		if err := s.deliver(m); err != nil {
			return fmt.Errorf("demo: frame %d: %w", frame, err)
		}
	}
	return nil
}

func (s *ScriptSource) deliver(m map[string]any) error {
	kind, _ := m["type"].(string)
	switch kind {
	case "key_down":
		code, err := stringField(m, "code")
		if err != nil {
			return err
		}
		s.feed.KeyDown(controls.KeyCode(code))
	case "key_up":
		code, err := stringField(m, "code")
		if err != nil {
			return err
		}
		s.feed.KeyUp(controls.KeyCode(code))
	case "button_down":
		b, err := numberField(m, "button")
		if err != nil {
			return err
		}
		s.feed.ButtonDown(controls.Button(b))
	case "button_up":
		b, err := numberField(m, "button")
		if err != nil {
			return err
		}
		s.feed.ButtonUp(controls.Button(b))
	case "move":
		x, err := numberField(m, "x")
		if err != nil {
			return err
		}
		y, err := numberField(m, "y")
		if err != nil {
			return err
		}
		s.feed.PointerMove(x, y)
	case "blur":
		s.feed.FocusLost()
	case "context_menu":
		s.feed.ContextMenu()
	default:
		return fmt.Errorf("unknown event type %q", kind)
	}
	return nil
}

func stringField(m map[string]any, key string) (string, error) {
	v, ok := m[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%s event needs string %q", m["type"], key)
	}
	return v, nil
}

func numberField(m map[string]any, key string) (float64, error) {
	switch v := m[key].(type) {
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%s event needs number %q", m["type"], key)
	}
}
