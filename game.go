package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/campus/assets"
	"github.com/milk9111/campus/common"
	"github.com/milk9111/campus/controls"
	"github.com/milk9111/campus/controls/ebitensource"
	"github.com/milk9111/campus/demo"
	"github.com/milk9111/campus/levels"
	"github.com/milk9111/campus/obj"
	"github.com/milk9111/campus/prefabs"
	"golang.org/x/image/colornames"
)

const (
	initialWidth  = 1280
	initialHeight = 720
)

// Options are the settings NewGame needs from the command line.
type Options struct {
	Debug    bool
	Demo     bool
	Script   string
	Level    string
	Bindings string
}

type Game struct {
	logger *log.Logger
	debug  bool
	frames int

	width, height int

	campus   *levels.Campus
	controls *controls.Controls
	// poll feeds this tick's input events into controls
	poll func() error

	world   *obj.CollisionWorld
	camera  *obj.Camera
	shots   *obj.Projectiles
	player  *Player
	hud     *HUD
	minimap *Minimap

	watcher *prefabs.Watcher
	// set in demo mode so edits to the script can be reloaded
	script     *demo.ScriptSource
	scriptName string

	paused  bool
	pauseUI *ebitenui.UI
	quit    bool
	closed  bool
}

func NewGame(opts Options, logger *log.Logger) (*Game, error) {
	campus, err := levels.LoadCampusFromFS(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("load campus %s: %w", opts.Level, err)
	}
	table, err := prefabs.LoadBindings(opts.Bindings)
	if err != nil {
		return nil, err
	}
	hudSpec, err := prefabs.LoadHUDSpec()
	if err != nil {
		return nil, err
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}

	g := &Game{
		logger: logger,
		debug:  opts.Debug,
		width:  initialWidth,
		height: initialHeight,
		campus: campus,
	}

	var src controls.EventSource
	if opts.Demo {
		script, err := demo.LoadScriptSource(opts.Script)
		if err != nil {
			return nil, err
		}
		src = script
		g.poll = script.Poll
		g.script, g.scriptName = script, opts.Script
		logger.Info("demo mode", "script", opts.Script)
	} else {
		live := ebitensource.New()
		src = live
		g.poll = func() error {
			live.Poll()
			return nil
		}
	}
	g.controls = controls.New(src, g, table, controls.WithLogger(logger.WithPrefix("controls")))
	g.controls.OnClear(g.Pause)

	spawnX := (float64(campus.Spawn.X) + 0.5) * float64(campus.TileSize)
	spawnY := (float64(campus.Spawn.Y) + 0.5) * float64(campus.TileSize)

	g.world = obj.NewCollisionWorld(campus)
	g.world.AttachBody(spawnX, spawnY, playerSpec.Radius)
	g.shots = obj.NewProjectiles(float32(playerSpec.Shot.Radius), playerSpec.Shot.Color.Or(colornames.Black))
	g.player = NewPlayer(playerSpec, g.controls, g.world, g.shots, logger)
	g.hud = NewHUD(hudSpec, campus)
	g.minimap = NewMinimap(hudSpec.Minimap, campus, g.controls)

	g.camera = obj.NewCamera(g.width, g.height, 1)
	g.camera.SetWorldBounds(campus.PixelWidth(), campus.PixelHeight())
	g.camera.SnapTo(spawnX, spawnY)

	if opts.Debug {
		g.startWatcher()
	}

	logger.Info("campus loaded", "name", campus.Name, "buildings", len(campus.Buildings), "bindings", table.Len())
	return g, nil
}

// Size implements controls.Surface with the size last reported by Layout.
func (g *Game) Size() (int, int) {
	return g.width, g.height
}

func (g *Game) startWatcher() {
	if _, err := os.Stat(prefabs.Dir); err != nil {
		g.logger.Warn("prefabs directory not found, hot reload disabled")
		return
	}
	w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
	if err != nil {
		g.logger.Warn("prefab watcher failed", "error", err)
		return
	}
	g.watcher = w
}

// reloadSpecs applies edited HUD and player specs and, in demo mode, the
// demo script. Bindings stay fixed for the life of the process.
func (g *Game) reloadSpecs() {
	if g.watcher == nil {
		return
	}
	names, err := g.watcher.Poll()
	if err != nil {
		g.logger.Warn("prefab watcher", "error", err)
	}
	for _, name := range names {
		switch name {
		case "hud.yaml":
			spec, err := prefabs.LoadHUDSpec()
			if err != nil {
				g.logger.Warn("reload failed", "file", name, "error", err)
				continue
			}
			g.hud.SetSpec(spec)
			g.minimap.SetSpec(spec.Minimap)
		case "player.yaml":
			spec, err := prefabs.LoadPlayerSpec()
			if err != nil {
				g.logger.Warn("reload failed", "file", name, "error", err)
				continue
			}
			g.player.SetSpec(spec)
		case filepath.Base(g.scriptName):
			if g.script == nil {
				continue
			}
			data, err := prefabs.LoadScript(g.scriptName)
			if err == nil {
				err = g.script.Reload(data)
			}
			if err != nil {
				g.logger.Warn("reload failed", "file", name, "error", err)
				continue
			}
		default:
			g.logger.Debug("ignoring change", "file", name)
			continue
		}
		g.logger.Info("reloaded", "file", name)
	}
}

// Pause opens the pause menu. Controls calls it after focus loss.
func (g *Game) Pause() {
	if g.paused {
		return
	}
	g.paused = true
	g.player.suspended = true
	g.pauseUI = NewPauseUI(g, g.width, g.height)
	g.world.SetVelocity(0, 0)
	g.logger.Debug("paused")
}

func (g *Game) Resume() {
	g.paused = false
	g.player.suspended = false
	g.pauseUI = nil
}

func (g *Game) Paused() bool {
	return g.paused
}

func (g *Game) Quit() {
	g.quit = true
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++

	if err := g.poll(); err != nil {
		return fmt.Errorf("poll input: %w", err)
	}
	g.reloadSpecs()

	if g.paused {
		if g.pauseUI != nil {
			g.pauseUI.Update()
		}
		return nil
	}

	g.player.Update()
	g.world.Step(common.StepDT)
	g.shots.Update(g.world)
	g.camera.Update(g.world.Position())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkseagreen)
	g.drawCampus(screen)
	g.shots.Draw(screen, g.camera)
	g.player.Draw(screen, g.camera)

	px, py := g.world.Position()
	if g.debug {
		g.world.DebugDraw(screen, g.camera)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
			"FPS: %.1f  pos: %.0f,%.0f  shots: %d/%d  heading-up: %v  blocked: %v",
			ebiten.ActualFPS(), px, py, g.shots.Len(), g.player.Fired(), g.minimap.HeadingUp(), g.world.Blocked(),
		), 4, g.height-16)
	}

	g.hud.Draw(screen, px, py)
	g.minimap.Draw(screen, px, py, g.player.Facing)

	if g.paused && g.pauseUI != nil {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawCampus(screen *ebiten.Image) {
	ts := float64(g.campus.TileSize)
	zoom := g.camera.Zoom()
	label := assets.Face(14*zoom, true)

	for _, b := range g.campus.Buildings {
		x, y := g.camera.WorldToScreen(float64(b.X)*ts, float64(b.Y)*ts)
		w, h := float64(b.W)*ts*zoom, float64(b.H)*ts*zoom
		vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), colornames.Lightsteelblue, false)
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, colornames.Slategray, false)

		op := &text.DrawOptions{}
		op.GeoM.Translate(x+w/2, y+h/2)
		op.ColorScale.ScaleWithColor(color.Black)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		text.Draw(screen, b.Name, label, op)
	}
	for _, wall := range g.campus.Walls {
		x, y := g.camera.WorldToScreen(float64(wall.X)*ts, float64(wall.Y)*ts)
		vector.FillRect(screen, float32(x), float32(y), float32(float64(wall.W)*ts*zoom), float32(float64(wall.H)*ts*zoom), colornames.Dimgray, false)
	}
}

// Layout uses the window size as the logical screen, so pointer coordinates
// and the HUD scale track the real surface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = outsideWidth, outsideHeight
		g.camera.SetScreenSize(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}

// Close detaches every listener from the controls and stops the watcher.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.player.Close()
	g.minimap.Close()
	g.controls.Close()
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.logger.Warn("closing watcher", "error", err)
		}
	}
}
