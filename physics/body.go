package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/fpcontroller/controller"
)

// Body adapts a Chipmunk capsule to controller.Body.
type Body struct {
	world *World
	name  string
	body  *cp.Body
	shape *cp.Shape
	group uint

	mass   float64
	height float64
	radius float64

	// depth, integrated by World.Step
	z  float64
	vz float64
	fz float64

	yaw      float64
	material controller.Material
	removed  bool
}

var _ controller.Body = (*Body)(nil)

func (b *Body) Name() string {
	return b.name
}

// CP returns the Chipmunk body and its capsule shape.
func (b *Body) CP() (*cp.Body, *cp.Shape) {
	return b.body, b.shape
}

func (b *Body) Position() mgl64.Vec3 {
	p := b.body.Position()
	return mgl64.Vec3{p.X, p.Y, b.z}
}

func (b *Body) SetPosition(p mgl64.Vec3) {
	b.body.SetPosition(cp.Vector{X: p.X(), Y: p.Y()})
	b.z = p.Z()
}

func (b *Body) Velocity() mgl64.Vec3 {
	v := b.body.Velocity()
	return mgl64.Vec3{v.X, v.Y, b.vz}
}

func (b *Body) SetVelocity(v mgl64.Vec3) {
	b.body.SetVelocityVector(cp.Vector{X: v.X(), Y: v.Y()})
	b.vz = v.Z()
}

// AddForce applies f at the centre of mass until the next step.
func (b *Body) AddForce(f mgl64.Vec3) {
	b.body.ApplyForceAtLocalPoint(cp.Vector{X: f.X(), Y: f.Y()}, cp.Vector{})
	b.fz += f.Z()
}

func (b *Body) Height() float64 {
	return b.height
}

func (b *Body) Radius() float64 {
	return b.radius
}

func (b *Body) Yaw() float64 {
	return b.yaw
}

func (b *Body) SetYaw(yaw float64) {
	b.yaw = yaw
}

func (b *Body) Orientation() controller.Orientation {
	return controller.OrientationFromYaw(b.yaw)
}

func (b *Body) Material() controller.Material {
	return b.material
}

func (b *Body) SetMaterial(m controller.Material) {
	b.material = m
	b.shape.SetFriction(m.Friction)
	b.shape.SetElasticity(m.Elasticity)
}

// Query returns the world's ray cast with this body's own shape filtered out.
func (b *Body) Query() controller.SpatialQuery {
	return bodyQuery{world: b.world, group: b.group}
}
