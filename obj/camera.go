package obj

import (
	"math"

	"github.com/milk9111/campus/common"
)

// Camera follows a world point, clamped so the view never leaves the campus.
type Camera struct {
	PosX float64
	PosY float64

	screenW int
	screenH int
	zoom    float64

	// smoothing factor (0..1). higher -> faster follow. e.g. 0.15
	smooth float64
	// world bounds in pixels (0 means unbounded)
	worldW float64
	worldH float64
}

func NewCamera(screenW, screenH int, zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{
		PosX:    float64(screenW) / 2.0,
		PosY:    float64(screenH) / 2.0,
		screenW: screenW,
		screenH: screenH,
		zoom:    zoom,
		smooth:  0.15,
	}
}

func (c *Camera) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	c.zoom = z
}

func (c *Camera) Zoom() float64 {
	return c.zoom
}

// SetScreenSize is called from Layout whenever the window size changes.
func (c *Camera) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.screenW = w
	c.screenH = h
}

func (c *Camera) SetWorldBounds(w, h int) {
	c.worldW = float64(w)
	c.worldH = float64(h)
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = common.Clamp(f, 0, 1)
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	viewW := float64(c.screenW) / c.zoom
	viewH := float64(c.screenH) / c.zoom
	return c.PosX - viewW/2.0, c.PosY - viewH/2.0
}

func (c *Camera) WorldToScreen(x, y float64) (float64, float64) {
	left, top := c.ViewTopLeft()
	return (x - left) * c.zoom, (y - top) * c.zoom
}

func (c *Camera) ScreenToWorld(x, y float64) (float64, float64) {
	left, top := c.ViewTopLeft()
	return x/c.zoom + left, y/c.zoom + top
}

// Update moves the camera toward the target world coordinate. Call from the
// fixed-rate Update loop to get consistent smoothing.
func (c *Camera) Update(targetX, targetY float64) {
	if c.smooth <= 0 {
		c.PosX = targetX
		c.PosY = targetY
	} else {
		c.PosX = common.Lerp(c.PosX, targetX, c.smooth)
		c.PosY = common.Lerp(c.PosY, targetY, c.smooth)
	}
	c.constrain()
}

// SnapTo places the camera without smoothing, e.g. after a campus load.
func (c *Camera) SnapTo(x, y float64) {
	c.PosX = x
	c.PosY = y
	c.constrain()
}

func (c *Camera) constrain() {
	// snap position to 1/zoom grid to align source texels to integer screen pixels
	c.PosX = math.Round(c.PosX*c.zoom) / c.zoom
	c.PosY = math.Round(c.PosY*c.zoom) / c.zoom

	halfW := float64(c.screenW) / c.zoom / 2.0
	halfH := float64(c.screenH) / c.zoom / 2.0
	c.PosX = clampAxis(c.PosX, halfW, c.worldW)
	c.PosY = clampAxis(c.PosY, halfH, c.worldH)
}

// clampAxis keeps a view of half-size half inside [0, world]. A world smaller
// than the view is centered instead.
func clampAxis(pos, half, world float64) float64 {
	if world <= 0 {
		return pos
	}
	if world-half < half {
		return world / 2.0
	}
	return common.Clamp(pos, half, world-half)
}
