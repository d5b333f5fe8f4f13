package obj

import (
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Shot is a single projectile moving in a straight line.
type Shot struct {
	X, Y       float64
	VelocityX  float64
	VelocityY  float64
	LifeFrames int
	Active     bool

	age int
}

// Projectiles owns the live shots and recycles finished ones through a pool.
type Projectiles struct {
	Radius float32
	Color  color.Color

	pool   sync.Pool
	active []*Shot
}

func NewProjectiles(radius float32, clr color.Color) *Projectiles {
	p := &Projectiles{Radius: radius, Color: clr}
	p.pool.New = func() any { return &Shot{} }
	return p
}

// Spawn fires a shot from (x, y) along angle (radians, screen axes) at speed
// pixels per frame. A shot with life <= 0 lives until it hits something.
func (p *Projectiles) Spawn(x, y, angle, speed float64, life int) *Shot {
	s := p.pool.Get().(*Shot)
	*s = Shot{
		X:          x,
		Y:          y,
		VelocityX:  math.Cos(angle) * speed,
		VelocityY:  math.Sin(angle) * speed,
		LifeFrames: life,
		Active:     true,
	}
	p.active = append(p.active, s)
	return s
}

// Update advances every shot and releases those that expired, left the
// campus or entered a wall.
func (p *Projectiles) Update(cw *CollisionWorld) {
	writeIdx := 0
	for _, s := range p.active {
		s.update(cw)
		if !s.Active {
			p.pool.Put(s)
			continue
		}
		p.active[writeIdx] = s
		writeIdx++
	}
	clear(p.active[writeIdx:])
	p.active = p.active[:writeIdx]
}

func (p *Projectiles) Len() int {
	return len(p.active)
}

// Each calls fn for every live shot in spawn order.
func (p *Projectiles) Each(fn func(*Shot)) {
	for _, s := range p.active {
		fn(s)
	}
}

func (p *Projectiles) Draw(screen *ebiten.Image, cam *Camera) {
	zoom := 1.0
	if cam != nil {
		zoom = cam.Zoom()
	}
	for _, s := range p.active {
		x, y := s.X, s.Y
		if cam != nil {
			x, y = cam.WorldToScreen(x, y)
		}
		vector.FillCircle(screen, float32(x), float32(y), p.Radius*float32(zoom), p.Color, true)
	}
}

func (s *Shot) update(cw *CollisionWorld) {
	s.X += s.VelocityX
	s.Y += s.VelocityY

	if cw.Solid(s.X, s.Y) {
		s.Active = false
		return
	}

	if s.LifeFrames > 0 {
		s.age++
		if s.age >= s.LifeFrames {
			s.Active = false
		}
	}
}
