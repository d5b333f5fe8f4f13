package main

import (
	"math"
	"testing"

	"github.com/milk9111/campus/controls"
	"github.com/milk9111/campus/levels"
	"github.com/milk9111/campus/prefabs"
	"github.com/stretchr/testify/assert"
)

func newTestMinimap(t *testing.T) (*Minimap, *controls.FeedSource) {
	t.Helper()
	feed := controls.NewFeedSource()
	c := controls.New(feed, controls.SurfaceFunc(func() (int, int) { return 100, 100 }), nil)
	t.Cleanup(c.Close)
	m := NewMinimap(prefabs.MinimapSpec{Size: 100, Scale: 0.5}, &levels.Campus{TileSize: 10}, c)
	return m, feed
}

func TestMinimapTogglesOnTurnCompassDownEdge(t *testing.T) {
	m, feed := newTestMinimap(t)
	assert.False(t, m.HeadingUp())

	feed.KeyDown("KeyC")
	assert.True(t, m.HeadingUp())

	// auto-repeat and release do not toggle
	feed.KeyDown("KeyC")
	feed.KeyUp("KeyC")
	assert.True(t, m.HeadingUp())

	feed.KeyDown("KeyC")
	assert.False(t, m.HeadingUp())

	m.Close()
	feed.KeyUp("KeyC")
	feed.KeyDown("KeyC")
	assert.False(t, m.HeadingUp())
}

func TestMinimapProjection(t *testing.T) {
	m, _ := newTestMinimap(t)

	// north-up: a point 20px east of the player lands 10px right of center
	x, y := m.project(120, 100, 100, 100, m.rotation(0))
	assert.InDelta(t, 60.0, x, 1e-9)
	assert.InDelta(t, 50.0, y, 1e-9)

	// heading-up while facing east: east ends up at the top
	m.Toggle()
	x, y = m.project(120, 100, 100, 100, m.rotation(0))
	assert.InDelta(t, 50.0, x, 1e-9)
	assert.InDelta(t, 40.0, y, 1e-9)

	// facing north is the same as north-up
	assert.InDelta(t, 0.0, math.Remainder(m.rotation(-math.Pi/2), 2*math.Pi), 1e-9)
}
