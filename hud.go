package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/campus/assets"
	"github.com/milk9111/campus/levels"
	"github.com/milk9111/campus/prefabs"
	"golang.org/x/image/colornames"
)

const (
	refWidth  = 1920
	refHeight = 1080
)

// pxScale maps reference 1920x1080 layout units onto a w x h surface.
func pxScale(w, h int) float64 {
	if w <= 0 || h <= 0 {
		return 0
	}
	return math.Sqrt((float64(w) / refWidth) * (float64(h) / refHeight))
}

type hudLine struct {
	text string
	size float64
	bold bool
	team bool
	// y offset of the line's top edge from the panel top, in layout units
	y float64
}

// locationLines lays out the "You're currently in" panel for a building, or
// the outdoors line when there is none.
func locationLines(spec prefabs.LocationPanelSpec, b levels.Building, inside bool) []hudLine {
	lines := []hudLine{{text: spec.Heading, size: 12, y: 18}}
	if !inside {
		lines = append(lines, hudLine{text: spec.Outdoors, size: 18, bold: true, y: 42})
	} else {
		lines = append(lines, hudLine{text: b.Name, size: 18, bold: true, y: 42})
		switch {
		case b.Floor != "" && b.Room != "":
			lines = append(lines, hudLine{text: fmt.Sprintf("%s - %s", b.Floor, b.Room), size: 15, y: 66})
		case b.Floor != "":
			lines = append(lines, hudLine{text: b.Floor, size: 15, y: 66})
		case b.Room != "":
			lines = append(lines, hudLine{text: b.Room, size: 15, y: 66})
		}
	}
	if spec.Team != "" {
		lines = append(lines, hudLine{text: "● " + spec.Team + " ●", size: 18, bold: true, team: true, y: 90})
	}
	return lines
}

// HUD draws the location panel in the top-left corner.
type HUD struct {
	spec   *prefabs.HUDSpec
	campus *levels.Campus
}

func NewHUD(spec *prefabs.HUDSpec, campus *levels.Campus) *HUD {
	return &HUD{spec: spec, campus: campus}
}

func (h *HUD) SetSpec(spec *prefabs.HUDSpec) {
	h.spec = spec
}

func (h *HUD) Draw(screen *ebiten.Image, playerX, playerY float64) {
	w, hgt := screen.Bounds().Dx(), screen.Bounds().Dy()
	s := pxScale(w, hgt)
	loc := h.spec.Location

	vector.StrokeRect(screen,
		float32(loc.X*s), float32(loc.Y*s), float32(loc.Width*s), float32(loc.Height*s),
		float32(math.Max(1, s)), loc.Border.Or(color.Black), false)

	b, inside := h.campus.BuildingAt(playerX, playerY)
	centerX := (loc.X + loc.Width/2) * s
	for _, line := range locationLines(loc, b, inside) {
		clr := loc.Text.Or(color.Black)
		if line.team {
			clr = loc.TeamTint.Or(colornames.Crimson)
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(centerX, (loc.Y+line.y)*s)
		op.ColorScale.ScaleWithColor(clr)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignStart
		text.Draw(screen, line.text, assets.Face(math.Round(line.size*s), line.bold), op)
	}
}
