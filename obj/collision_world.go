package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/campus/levels"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeSolid
)

// CollisionWorld is a top-down chipmunk space: no gravity, static boxes for
// campus walls and segments along the world edge.
type CollisionWorld struct {
	campus *levels.Campus
	space  *cp.Space

	body  *cp.Body
	shape *cp.Shape

	// number of solid shapes the body is currently touching
	contacts int

	handlersReady bool
}

func NewCollisionWorld(campus *levels.Campus) *CollisionWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	cw := &CollisionWorld{campus: campus, space: space}
	cw.buildStaticShapes()
	return cw
}

func (cw *CollisionWorld) buildStaticShapes() {
	if cw.campus == nil {
		return
	}
	ts := float64(cw.campus.TileSize)
	for _, w := range cw.campus.Walls {
		x0 := float64(w.X) * ts
		y0 := float64(w.Y) * ts
		bb := cp.BB{L: x0, B: y0, R: x0 + float64(w.W)*ts, T: y0 + float64(w.H)*ts}
		shape := cp.NewBox2(cw.space.StaticBody, bb, 0)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeSolid)
		cw.space.AddShape(shape)
	}

	worldW := float64(cw.campus.PixelWidth())
	worldH := float64(cw.campus.PixelHeight())
	if worldW <= 0 || worldH <= 0 {
		return
	}
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(cw.space.StaticBody, seg.a, seg.b, 1)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeSolid)
		cw.space.AddShape(shape)
	}
}

// AttachBody adds the single dynamic circle the world tracks. Rotation is
// locked with an infinite moment. A second call is a no-op.
func (cw *CollisionWorld) AttachBody(x, y, radius float64) {
	if cw == nil || cw.body != nil {
		return
	}
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: x, Y: y})
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeBody)

	cw.space.AddBody(body)
	cw.space.AddShape(shape)
	cw.body = body
	cw.shape = shape

	cw.setupHandlers()
}

func (cw *CollisionWorld) setupHandlers() {
	if cw.handlersReady {
		return
	}
	handler := cw.space.NewCollisionHandler(collisionTypeBody, collisionTypeSolid)
	handler.UserData = cw
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		if world, ok := userData.(*CollisionWorld); ok {
			world.contacts++
		}
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		if world, ok := userData.(*CollisionWorld); ok && world.contacts > 0 {
			world.contacts--
		}
	}
	cw.handlersReady = true
}

func (cw *CollisionWorld) SetVelocity(vx, vy float64) {
	if cw == nil || cw.body == nil {
		return
	}
	cw.body.SetVelocity(vx, vy)
}

func (cw *CollisionWorld) Step(dt float64) {
	if cw == nil {
		return
	}
	cw.space.Step(dt)
}

// Position returns the attached body's center, or (0, 0) before AttachBody.
func (cw *CollisionWorld) Position() (float64, float64) {
	if cw == nil || cw.body == nil {
		return 0, 0
	}
	p := cw.body.Position()
	return p.X, p.Y
}

// Blocked reports whether the body is pressed against a wall or the world edge.
func (cw *CollisionWorld) Blocked() bool {
	return cw != nil && cw.contacts > 0
}

// Solid reports whether world point (x, y) lies inside a wall or outside the
// campus.
func (cw *CollisionWorld) Solid(x, y float64) bool {
	if cw == nil || cw.campus == nil {
		return false
	}
	if x < 0 || y < 0 || x >= float64(cw.campus.PixelWidth()) || y >= float64(cw.campus.PixelHeight()) {
		return true
	}
	info := cw.space.PointQueryNearest(cp.Vector{X: x, Y: y}, 0, cp.SHAPE_FILTER_ALL)
	return info.Shape != nil && info.Shape.Body() == cw.space.StaticBody
}
