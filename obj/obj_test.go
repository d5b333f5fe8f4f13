package obj

import (
	"image/color"
	"math"
	"testing"

	"github.com/milk9111/campus/levels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 10x10 tiles of 10px with a wall column at tile x=6.
func testCampus() *levels.Campus {
	return &levels.Campus{
		Name:     "test",
		Width:    10,
		Height:   10,
		TileSize: 10,
		Spawn:    levels.Point{X: 2, Y: 2},
		Walls:    []levels.Rect{{X: 6, Y: 0, W: 1, H: 10}},
	}
}

func TestCollisionWorldStopsAtWall(t *testing.T) {
	cw := NewCollisionWorld(testCampus())
	cw.AttachBody(30, 50, 5)

	for i := 0; i < 60; i++ {
		cw.SetVelocity(2, 0)
		cw.Step(1)
	}

	x, y := cw.Position()
	assert.Less(t, x, 60.0-4.0)
	assert.Greater(t, x, 40.0)
	assert.InDelta(t, 50.0, y, 0.5)
	assert.True(t, cw.Blocked())
}

func TestCollisionWorldMovesFreely(t *testing.T) {
	cw := NewCollisionWorld(testCampus())
	cw.AttachBody(30, 50, 5)

	for i := 0; i < 10; i++ {
		cw.SetVelocity(0, -1)
		cw.Step(1)
	}

	x, y := cw.Position()
	assert.InDelta(t, 30.0, x, 0.01)
	assert.InDelta(t, 40.0, y, 0.01)
	assert.False(t, cw.Blocked())
}

func TestCollisionWorldSolid(t *testing.T) {
	cw := NewCollisionWorld(testCampus())

	cases := []struct {
		name string
		x, y float64
		want bool
	}{
		{"open_ground", 30, 30, false},
		{"inside_wall", 65, 30, true},
		{"left_of_campus", -1, 30, true},
		{"below_campus", 30, 100, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cw.Solid(tc.x, tc.y))
		})
	}
}

func TestCollisionWorldBeforeAttach(t *testing.T) {
	cw := NewCollisionWorld(testCampus())
	cw.SetVelocity(1, 1)
	cw.Step(1)

	x, y := cw.Position()
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestCameraClampsToWorld(t *testing.T) {
	cam := NewCamera(100, 50, 1)
	cam.SetWorldBounds(400, 300)
	cam.SetSmooth(0)

	cam.Update(10, 10)
	assert.Equal(t, 50.0, cam.PosX)
	assert.Equal(t, 25.0, cam.PosY)

	cam.SnapTo(390, 290)
	assert.Equal(t, 350.0, cam.PosX)
	assert.Equal(t, 275.0, cam.PosY)

	left, top := cam.ViewTopLeft()
	assert.Equal(t, 300.0, left)
	assert.Equal(t, 250.0, top)
}

func TestCameraCentersSmallWorld(t *testing.T) {
	cam := NewCamera(100, 100, 1)
	cam.SetWorldBounds(60, 400)
	cam.SnapTo(0, 0)

	assert.Equal(t, 30.0, cam.PosX)
	assert.Equal(t, 50.0, cam.PosY)
}

func TestCameraSmoothFollow(t *testing.T) {
	cam := NewCamera(100, 100, 1)
	cam.SnapTo(50, 50)
	cam.Update(150, 50)

	assert.Equal(t, 65.0, cam.PosX)
	assert.Equal(t, 50.0, cam.PosY)

	cam.SetSmooth(0.5)
	cam.Update(165, 50)
	assert.Equal(t, 115.0, cam.PosX)
}

func TestCameraScreenWorldRoundTrip(t *testing.T) {
	cam := NewCamera(200, 100, 2)
	cam.SetWorldBounds(1000, 1000)
	cam.SnapTo(300, 300)

	sx, sy := cam.WorldToScreen(310, 295)
	assert.Equal(t, 120.0, sx)
	assert.Equal(t, 40.0, sy)

	wx, wy := cam.ScreenToWorld(sx, sy)
	assert.Equal(t, 310.0, wx)
	assert.Equal(t, 295.0, wy)
}

func TestProjectilesExpire(t *testing.T) {
	p := NewProjectiles(2, color.White)
	s := p.Spawn(10, 10, 0, 1, 3)
	assert.Equal(t, 1, p.Len())

	for i := 0; i < 2; i++ {
		p.Update(nil)
	}
	assert.Equal(t, 1, p.Len())
	assert.InDelta(t, 12.0, s.X, 1e-9)

	p.Update(nil)
	assert.Zero(t, p.Len())
}

func TestProjectilesStopAtWalls(t *testing.T) {
	cw := NewCollisionWorld(testCampus())
	p := NewProjectiles(2, color.White)
	p.Spawn(50, 50, 0, 4, 0)        // toward the wall at x=60
	p.Spawn(50, 50, math.Pi/2, 4, 0) // down, out of the campus at y=100
	p.Spawn(20, 50, math.Pi, 1, 100)

	for i := 0; i < 3; i++ {
		p.Update(cw)
	}
	require.Equal(t, 2, p.Len())

	for i := 0; i < 10; i++ {
		p.Update(cw)
	}
	require.Equal(t, 1, p.Len())
	p.Each(func(s *Shot) {
		assert.InDelta(t, 7.0, s.X, 1e-9)
		assert.InDelta(t, 0.0, s.VelocityY, 1e-9)
	})
}
