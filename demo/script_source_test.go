package demo

import (
	"testing"

	"github.com/milk9111/campus/controls"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newControls(t *testing.T, src controls.EventSource) *controls.Controls {
	t.Helper()
	c := controls.New(src, controls.SurfaceFunc(func() (int, int) { return 200, 100 }), controls.DefaultTable())
	t.Cleanup(c.Close)
	return c
}

func TestScriptSourceFeedsControls(t *testing.T) {
	script := []byte(`
tick := func(frame) {
	if frame == 0 {
		return [{type: "key_down", code: "KeyW"}, {type: "move", x: 150, y: 25}]
	}
	if frame == 1 {
		return [{type: "button_down", button: 0}, {type: "key_up", code: "KeyW"}]
	}
	if frame == 2 {
		return [{type: "blur"}]
	}
	return []
}
`)
	src, err := NewScriptSource(script)
	require.NoError(t, err)
	c := newControls(t, src)

	var got []string
	c.OnBecameActive(controls.North, func() { got = append(got, "north+") })
	c.OnBecameInactive(controls.North, func() { got = append(got, "north-") })
	c.OnBecameActive(controls.Shoot, func() { got = append(got, "shoot+") })
	c.OnClear(func() { got = append(got, "clear") })

	require.NoError(t, src.Poll())
	assert.True(t, c.IsActive(controls.North))
	dir, ok := c.PointingDir()
	require.True(t, ok)
	assert.InDelta(t, -0.4636, dir, 1e-4)

	require.NoError(t, src.Poll())
	assert.False(t, c.IsActive(controls.North))
	assert.True(t, c.IsActive(controls.Shoot))

	require.NoError(t, src.Poll())
	assert.False(t, c.IsActive(controls.Shoot))

	require.NoError(t, src.Poll())
	assert.Equal(t, 4, src.Frame())
	assert.Equal(t, []string{"north+", "shoot+", "north-", "clear"}, got)
}

func TestScriptSourceErrors(t *testing.T) {
	cases := []struct {
		name    string
		script  string
		wantErr string
	}{
		{"unknown_type", `tick := func(f) { return [{type: "jump"}] }`, `unknown event type "jump"`},
		{"missing_code", `tick := func(f) { return [{type: "key_down"}] }`, `needs string "code"`},
		{"bad_button", `tick := func(f) { return [{type: "button_up", button: "left"}] }`, `needs number "button"`},
		{"not_array", `tick := func(f) { return 3 }`, "want array"},
		{"not_map", `tick := func(f) { return [1] }`, "want map"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src, err := NewScriptSource([]byte(tc.script))
			require.NoError(t, err)
			err = src.Poll()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
			assert.Contains(t, err.Error(), "frame 0")
		})
	}
}

func TestScriptSourceCompileError(t *testing.T) {
	_, err := NewScriptSource([]byte(`tick := func(f) {`))
	assert.Error(t, err)
}

func TestEmbeddedDemoScript(t *testing.T) {
	src, err := LoadScriptSource("demo.tengo")
	require.NoError(t, err)
	c := newControls(t, src)

	var shots, turns int
	c.OnBecameActive(controls.Shoot, func() { shots++ })
	c.OnBecameActive(controls.TurnCompass, func() { turns++ })

	require.NoError(t, src.Poll())
	assert.True(t, c.IsActive(controls.East))

	for i := 1; i < 400; i++ {
		require.NoError(t, src.Poll())
	}
	assert.Positive(t, shots)
	assert.Positive(t, turns)
	_, ok := c.PointingDir()
	assert.True(t, ok)

	// one leg at a time
	active := 0
	for _, id := range []string{controls.North, controls.South, controls.West, controls.East} {
		if c.IsActive(id) {
			active++
		}
	}
	assert.Equal(t, 1, active)
}

func TestLoadScriptSourceMissing(t *testing.T) {
	_, err := LoadScriptSource("nope.tengo")
	assert.Error(t, err)
}

func TestScriptSourceReload(t *testing.T) {
	src, err := NewScriptSource([]byte(`tick := func(f) { return [{type: "key_down", code: "KeyW"}] }`))
	require.NoError(t, err)
	c := newControls(t, src)

	require.NoError(t, src.Poll())
	assert.True(t, c.IsActive(controls.North))

	assert.Error(t, src.Reload([]byte(`tick := func(f) {`)))
	require.NoError(t, src.Reload([]byte(`tick := func(f) { return f == 1 ? [{type: "key_up", code: "KeyW"}] : [] }`)))

	require.NoError(t, src.Poll())
	assert.False(t, c.IsActive(controls.North))
	assert.Equal(t, 2, src.Frame())
}
