package main

import (
	"image/color"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/campus/controls"
	"github.com/milk9111/campus/obj"
	"github.com/milk9111/campus/prefabs"
	"golang.org/x/image/colornames"
)

// Player walks the campus on the movement bindings and shoots toward the
// pointer.
type Player struct {
	spec     *prefabs.PlayerSpec
	controls *controls.Controls
	world    *obj.CollisionWorld
	shots    *obj.Projectiles
	logger   *log.Logger

	// Facing is the last known pointing direction in radians.
	Facing float64

	cooldown int
	fired    int
	// set while the pause menu is open so menu clicks do not shoot
	suspended bool

	shootHandle controls.Handle
}

func NewPlayer(spec *prefabs.PlayerSpec, c *controls.Controls, world *obj.CollisionWorld, shots *obj.Projectiles, logger *log.Logger) *Player {
	p := &Player{
		spec:     spec,
		controls: c,
		world:    world,
		shots:    shots,
		logger:   logger,
		Facing:   -math.Pi / 2,
	}
	p.shootHandle = c.OnBecameActive(controls.Shoot, p.fire)
	return p
}

// SetSpec swaps in a reloaded player spec. Radius changes only take effect on
// the next campus load.
func (p *Player) SetSpec(spec *prefabs.PlayerSpec) {
	p.spec = spec
	p.shots.Radius = float32(spec.Shot.Radius)
	p.shots.Color = spec.Shot.Color.Or(colornames.Black)
}

// Velocity derives this frame's movement from the held bindings. Diagonals
// are normalized so they are no faster than straight lines.
func (p *Player) Velocity() (float64, float64) {
	var dx, dy float64
	if p.controls.IsActive(controls.North) {
		dy--
	}
	if p.controls.IsActive(controls.South) {
		dy++
	}
	if p.controls.IsActive(controls.West) {
		dx--
	}
	if p.controls.IsActive(controls.East) {
		dx++
	}
	if dx != 0 && dy != 0 {
		dx *= math.Sqrt2 / 2
		dy *= math.Sqrt2 / 2
	}

	speed := p.spec.WalkSpeed
	if p.controls.IsActive(controls.Sprint) {
		speed *= p.spec.SprintMultiplier
	}
	return dx * speed, dy * speed
}

func (p *Player) Update() {
	if p.cooldown > 0 {
		p.cooldown--
	}
	if dir, ok := p.controls.PointingDir(); ok {
		p.Facing = dir
	}
	p.world.SetVelocity(p.Velocity())
}

// fire runs on the shoot down-edge only; holding shoot does not autofire.
func (p *Player) fire() {
	if p.suspended || p.cooldown > 0 {
		return
	}
	if dir, ok := p.controls.PointingDir(); ok {
		p.Facing = dir
	}
	x, y := p.world.Position()
	muzzle := p.spec.Radius + p.spec.Shot.Radius
	p.shots.Spawn(
		x+math.Cos(p.Facing)*muzzle,
		y+math.Sin(p.Facing)*muzzle,
		p.Facing,
		p.spec.Shot.Speed,
		p.spec.Shot.LifeFrames,
	)
	p.cooldown = p.spec.Shot.CooldownFrames
	p.fired++
	p.logger.Debug("shot fired", "facing", p.Facing, "total", p.fired)
}

// Fired returns how many shots the player has taken.
func (p *Player) Fired() int {
	return p.fired
}

func (p *Player) Close() {
	p.shootHandle.Remove()
}

func (p *Player) Draw(screen *ebiten.Image, cam *obj.Camera) {
	x, y := cam.WorldToScreen(p.world.Position())
	r := p.spec.Radius * cam.Zoom()
	body := p.spec.Color.Or(colornames.Steelblue)

	vector.FillCircle(screen, float32(x), float32(y), float32(r), body, true)
	vector.StrokeCircle(screen, float32(x), float32(y), float32(r), 1.5, color.Black, true)
	vector.StrokeLine(screen,
		float32(x), float32(y),
		float32(x+math.Cos(p.Facing)*r*1.6), float32(y+math.Sin(p.Facing)*r*1.6),
		2, color.Black, true)
}
