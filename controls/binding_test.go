package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTableValidation(t *testing.T) {
	cases := []struct {
		name     string
		bindings []Binding
		wantErr  string
	}{
		{"empty_table", nil, ""},
		{"ok", []Binding{{ID: "a", Keys: []KeyCode{"KeyA"}}, {ID: "b", Buttons: []Button{ButtonPrimary}}}, ""},
		{"empty_id", []Binding{{Keys: []KeyCode{"KeyA"}}}, "empty id"},
		{"duplicate_id", []Binding{{ID: "a", Keys: []KeyCode{"KeyA"}}, {ID: "a", Keys: []KeyCode{"KeyB"}}}, "duplicate id"},
		{"no_triggers", []Binding{{ID: "a"}}, "no keys or buttons"},
		{"shared_key_is_fine", []Binding{{ID: "a", Keys: []KeyCode{"KeyA"}}, {ID: "b", Keys: []KeyCode{"KeyA"}}}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			table, err := NewTable(tc.bindings...)
			if tc.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, len(tc.bindings), table.Len())
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTable)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()

	var ids []string
	for _, b := range table.Bindings() {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{North, South, West, East, Sprint, Shoot, TurnCompass}, ids)

	shoot, ok := table.Lookup(Shoot)
	require.True(t, ok)
	assert.Equal(t, []KeyCode{"Space"}, shoot.Keys)
	assert.Equal(t, []Button{ButtonPrimary}, shoot.Buttons)

	assert.True(t, table.UsesButton(ButtonPrimary))
	assert.False(t, table.UsesButton(ButtonSecondary))

	_, ok = table.Lookup("jump")
	assert.False(t, ok)
}

func TestTableIsImmutable(t *testing.T) {
	keys := []KeyCode{"KeyQ"}
	table, err := NewTable(Binding{ID: "q", Keys: keys})
	require.NoError(t, err)

	keys[0] = "KeyZ"
	b, _ := table.Lookup("q")
	b.Keys[0] = "KeyX"
	table.Bindings()[0].Keys[0] = "KeyY"

	got, _ := table.Lookup("q")
	assert.Equal(t, []KeyCode{"KeyQ"}, got.Keys)
}

func TestWouldBeActive(t *testing.T) {
	b := Binding{ID: "shoot", Keys: []KeyCode{"Space"}, Buttons: []Button{ButtonPrimary}}

	s := newDeviceState()
	assert.False(t, wouldBeActive(b, s))

	s.keys["Space"] = struct{}{}
	assert.True(t, wouldBeActive(b, s))

	s.reset()
	s.buttons[ButtonPrimary] = struct{}{}
	assert.True(t, wouldBeActive(b, s))

	s.buttons[ButtonSecondary] = struct{}{}
	delete(s.buttons, ButtonPrimary)
	assert.False(t, wouldBeActive(b, s))
}
