package prefabs

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/campus/controls"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBindingsYAMLMatchesDefaultTable(t *testing.T) {
	table, err := LoadBindings("bindings.yaml")
	require.NoError(t, err)

	assert.Equal(t, controls.DefaultTable().Bindings(), table.Bindings())
}

func TestBindingsSpecTable(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		wantErr bool
	}{
		{"secondary_button", "bindings:\n  - id: aim\n    pointer_buttons: [2]\n", false},
		{"duplicate", "bindings:\n  - id: a\n    keys: [KeyA]\n  - id: a\n    keys: [KeyB]\n", true},
		{"no_triggers", "bindings:\n  - id: a\n", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var spec BindingsSpec
			require.NoError(t, yaml.Unmarshal([]byte(tc.src), &spec))
			table, err := spec.Table()
			if tc.wantErr {
				assert.ErrorIs(t, err, controls.ErrInvalidTable)
				return
			}
			require.NoError(t, err)
			assert.True(t, table.UsesButton(controls.ButtonSecondary))
		})
	}
}

func TestLoadHUDSpec(t *testing.T) {
	spec, err := LoadHUDSpec()
	require.NoError(t, err)

	assert.Equal(t, "You're currently in:", spec.Location.Heading)
	assert.Equal(t, 192.0, spec.Location.Width)
	require.NotNil(t, spec.Location.TeamTint.Color)

	tint := color.NRGBAModel.Convert(spec.Location.TeamTint.Color).(color.NRGBA)
	assert.Greater(t, tint.R, uint8(200))
	assert.Less(t, tint.G, uint8(10))
	assert.Greater(t, tint.B, tint.G)

	bg := color.NRGBAModel.Convert(spec.Minimap.Background.Color).(color.NRGBA)
	assert.Equal(t, uint8(0xc8), bg.A)
}

func TestLoadPlayerSpec(t *testing.T) {
	spec, err := LoadPlayerSpec()
	require.NoError(t, err)

	assert.Greater(t, spec.SprintMultiplier, 1.0)
	assert.Positive(t, spec.Shot.LifeFrames)
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		src     string
		want    color.NRGBA
		wantErr bool
	}{
		{`"#ff0000"`, color.NRGBA{R: 0xff, A: 0xff}, false},
		{`"#00ff0080"`, color.NRGBA{G: 0xff, A: 0x80}, false},
		{`"black"`, color.NRGBA{A: 0xff}, false},
		{`"not-a-color"`, color.NRGBA{}, true},
		{`[1, 2]`, color.NRGBA{}, true},
	}

	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tc.src), &c)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.Color)
		})
	}

	var unset YAMLColor
	assert.Equal(t, color.White, unset.Or(color.White))
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"demo.tengo", "scripts/demo.tengo", "prefabs/scripts/demo.tengo"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "tick := func(frame)")
	}
}

func TestWatcherReportsSpecEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hud.yaml"), []byte("location: {}\n"), 0o644))

	var got []string
	require.Eventually(t, func() bool {
		names, err := w.Poll()
		require.NoError(t, err)
		got = append(got, names...)
		return len(got) > 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"hud.yaml"}, got)
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
	names, err := w.Poll()
	assert.Empty(t, names)
	assert.NoError(t, err)
}

func TestWatcherPollReturnsWatchErrors(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	defer w.Close()

	w.watcher.Errors <- errors.New("queue overflow")

	var pollErr error
	require.Eventually(t, func() bool {
		_, pollErr = w.Poll()
		return pollErr != nil
	}, 2*time.Second, 10*time.Millisecond)
	assert.ErrorContains(t, pollErr, "prefabs: watch: queue overflow")

	_, err = w.Poll()
	assert.NoError(t, err)
}
