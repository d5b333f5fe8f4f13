package levels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCampus(t *testing.T) {
	c, err := LoadCampusFromFS("campus.json")
	require.NoError(t, err)

	assert.Equal(t, 64*32, c.PixelWidth())
	assert.Equal(t, 40*32, c.PixelHeight())
	assert.NotEmpty(t, c.Buildings)

	b, ok := c.BuildingAt(7*32+5, 5*32+5)
	require.True(t, ok)
	assert.Equal(t, "Doherty Hall", b.Name)
	assert.Equal(t, "D272", b.Room)

	_, ok = c.BuildingAt(float64(c.Spawn.X*32), float64(c.Spawn.Y*32))
	assert.False(t, ok, "spawn should be outdoors")
}

func TestBuildingAt(t *testing.T) {
	c := &Campus{
		Width: 10, Height: 10, TileSize: 10,
		Buildings: []Building{
			{Name: "outer", Rect: Rect{X: 0, Y: 0, W: 5, H: 5}},
			{Name: "inner", Rect: Rect{X: 2, Y: 2, W: 1, H: 1}},
		},
	}

	cases := []struct {
		name   string
		x, y   float64
		want   string
		inside bool
	}{
		{"outer_corner", 0, 0, "outer", true},
		{"overlap_prefers_later", 25, 25, "inner", true},
		{"right_edge_exclusive", 50, 10, "", false},
		{"negative", -1, 3, "", false},
		{"far_away", 95, 95, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, ok := c.BuildingAt(tc.x, tc.y)
			assert.Equal(t, tc.inside, ok)
			assert.Equal(t, tc.want, b.Name)
		})
	}

	var nilCampus *Campus
	_, ok := nilCampus.BuildingAt(1, 1)
	assert.False(t, ok)
}

func TestParseCampusValidation(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"bad_json", `{`},
		{"zero_size", `{"width": 0, "height": 4, "tile_size": 8}`},
		{"no_tile_size", `{"width": 4, "height": 4}`},
		{"spawn_outside", `{"width": 4, "height": 4, "tile_size": 8, "spawn": {"x": 9, "y": 0}}`},
		{"unnamed_building", `{"width": 4, "height": 4, "tile_size": 8, "buildings": [{"x": 0, "y": 0, "w": 1, "h": 1}]}`},
		{"empty_wall", `{"width": 4, "height": 4, "tile_size": 8, "walls": [{"x": 0, "y": 0, "w": 0, "h": 1}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCampus([]byte(tc.src))
			require.Error(t, err)
			if tc.name != "bad_json" {
				assert.ErrorIs(t, err, ErrInvalidCampus)
			}
		})
	}
}
