package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/campus/assets"
	"github.com/milk9111/campus/controls"
	"github.com/milk9111/campus/levels"
	"github.com/milk9111/campus/prefabs"
	"golang.org/x/image/colornames"
)

// Minimap shows the campus around the player in the top-right corner,
// either north-up or rotated so the player's heading points up.
type Minimap struct {
	spec      prefabs.MinimapSpec
	campus    *levels.Campus
	headingUp bool

	off      *ebiten.Image
	whiteImg *ebiten.Image

	handle controls.Handle
}

func NewMinimap(spec prefabs.MinimapSpec, campus *levels.Campus, c *controls.Controls) *Minimap {
	m := &Minimap{spec: spec, campus: campus}
	m.handle = c.OnBecameActive(controls.TurnCompass, m.Toggle)
	return m
}

func (m *Minimap) SetSpec(spec prefabs.MinimapSpec) {
	if spec.Size != m.spec.Size {
		m.off = nil
	}
	m.spec = spec
}

// Toggle flips between north-up and heading-up.
func (m *Minimap) Toggle() {
	m.headingUp = !m.headingUp
}

func (m *Minimap) HeadingUp() bool {
	return m.headingUp
}

func (m *Minimap) Close() {
	m.handle.Remove()
}

// rotation is the angle applied to world offsets. Heading-up turns the map
// so that facing (screen radians, -pi/2 is up) ends up pointing up.
func (m *Minimap) rotation(facing float64) float64 {
	if !m.headingUp {
		return 0
	}
	return -math.Pi/2 - facing
}

// project maps a world point into minimap pixels around a player at (px, py).
func (m *Minimap) project(wx, wy, px, py, rot float64) (float64, float64) {
	dx := (wx - px) * m.spec.Scale
	dy := (wy - py) * m.spec.Scale
	sin, cos := math.Sincos(rot)
	half := m.spec.Size / 2
	return half + dx*cos - dy*sin, half + dx*sin + dy*cos
}

func (m *Minimap) Draw(screen *ebiten.Image, px, py, facing float64) {
	size := int(m.spec.Size)
	if size <= 0 || m.spec.Scale <= 0 {
		return
	}
	if m.off == nil {
		m.off = ebiten.NewImage(size, size)
	}
	if m.whiteImg == nil {
		m.whiteImg = ebiten.NewImage(1, 1)
		m.whiteImg.Fill(color.White)
	}
	m.off.Fill(m.spec.Background.Or(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xc8}))

	rot := m.rotation(facing)
	ts := float64(m.campus.TileSize)
	building := m.spec.Building.Or(colornames.Lightsteelblue)
	for _, b := range m.campus.Buildings {
		m.fillRect(b.Rect, ts, px, py, rot, building)
	}
	wall := m.spec.Wall.Or(colornames.Dimgray)
	for _, w := range m.campus.Walls {
		m.fillRect(w, ts, px, py, rot, wall)
	}

	half := float32(m.spec.Size / 2)
	vector.FillCircle(m.off, half, half, 3, m.spec.Player.Or(colornames.Crimson), true)

	// north marker, 80% of the way to the rim
	nx, ny := m.project(px, py-0.4*m.spec.Size/m.spec.Scale, px, py, rot)
	op := &text.DrawOptions{}
	op.GeoM.Translate(nx, ny)
	op.ColorScale.ScaleWithColor(color.Black)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(m.off, "N", assets.Fixed(), op)

	vector.StrokeRect(m.off, 0, 0, float32(size), float32(size), 2, color.Black, false)

	w := screen.Bounds().Dx()
	dop := &ebiten.DrawImageOptions{}
	dop.GeoM.Translate(float64(w)-m.spec.Margin-m.spec.Size, m.spec.Margin)
	screen.DrawImage(m.off, dop)
}

func (m *Minimap) fillRect(r levels.Rect, ts, px, py, rot float64, clr color.Color) {
	x0, y0 := float64(r.X)*ts, float64(r.Y)*ts
	x1, y1 := x0+float64(r.W)*ts, y0+float64(r.H)*ts

	var path vector.Path
	ax, ay := m.project(x0, y0, px, py, rot)
	path.MoveTo(float32(ax), float32(ay))
	for _, c := range [][2]float64{{x1, y0}, {x1, y1}, {x0, y1}} {
		cx, cy := m.project(c[0], c[1], px, py, rot)
		path.LineTo(float32(cx), float32(cy))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	cr, cg, cb, ca := clr.RGBA()
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 0, 0
		vs[i].ColorR = float32(cr) / 0xffff
		vs[i].ColorG = float32(cg) / 0xffff
		vs[i].ColorB = float32(cb) / 0xffff
		vs[i].ColorA = float32(ca) / 0xffff
	}
	m.off.DrawTriangles(vs, is, m.whiteImg, &ebiten.DrawTrianglesOptions{})
}
