// Package physics hosts character bodies in a Chipmunk2D space. Level
// geometry lives in the X/Y plane and is treated as extruded along Z, so a
// body's depth is integrated here rather than by the space.
package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/fpcontroller/controller"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeTrigger
	collisionTypeCharacter
)

const (
	allCategories = ^uint(0)
	spaceIters    = 20
)

var ErrDegenerateShape = errors.New("physics: degenerate shape")

// Surface describes a static piece of level geometry.
type Surface struct {
	Name       string
	Friction   float64
	Elasticity float64
	// Trigger surfaces are sensors: rays report them but nothing rests on them.
	Trigger bool
}

// World owns the Chipmunk space, static geometry and character bodies.
type World struct {
	space   *cp.Space
	gravity mgl64.Vec3

	bodies    []*Body
	surfaces  map[*cp.Shape]Surface
	nextGroup uint
}

func NewWorld(gravity mgl64.Vec3) *World {
	space := cp.NewSpace()
	space.Iterations = spaceIters
	space.SetGravity(cp.Vector{X: gravity.X(), Y: gravity.Y()})
	return &World{
		space:    space,
		gravity:  gravity,
		surfaces: make(map[*cp.Shape]Surface),
	}
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

func (w *World) Gravity() mgl64.Vec3 {
	return w.gravity
}

func (w *World) Bodies() []*Body {
	return w.bodies
}

// AddBox adds an axis-aligned static box spanning min to max.
func (w *World) AddBox(s Surface, min, max mgl64.Vec2) (*cp.Shape, error) {
	if max.X() <= min.X() || max.Y() <= min.Y() {
		return nil, fmt.Errorf("%w: box %q min=%v max=%v", ErrDegenerateShape, s.Name, min, max)
	}
	bb := cp.BB{L: min.X(), B: min.Y(), R: max.X(), T: max.Y()}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	w.addStatic(shape, s)
	return shape, nil
}

// AddPolygon adds a convex static polygon, e.g. a slope. Winding is fixed up.
func (w *World) AddPolygon(s Surface, verts []mgl64.Vec2) (*cp.Shape, error) {
	if len(verts) < 3 {
		return nil, fmt.Errorf("%w: polygon %q has %d vertices", ErrDegenerateShape, s.Name, len(verts))
	}
	area := signedArea(verts)
	if math.Abs(area) < 1e-9 {
		return nil, fmt.Errorf("%w: polygon %q has no area", ErrDegenerateShape, s.Name)
	}
	cpVerts := make([]cp.Vector, len(verts))
	for i, v := range verts {
		cpVerts[i] = cp.Vector{X: v.X(), Y: v.Y()}
	}
	if area < 0 {
		for i, j := 0, len(cpVerts)-1; i < j; i, j = i+1, j-1 {
			cpVerts[i], cpVerts[j] = cpVerts[j], cpVerts[i]
		}
	}
	shape := cp.NewPolyShapeRaw(w.space.StaticBody, len(cpVerts), cpVerts, 0)
	w.addStatic(shape, s)
	return shape, nil
}

func (w *World) addStatic(shape *cp.Shape, s Surface) {
	shape.SetFriction(s.Friction)
	shape.SetElasticity(s.Elasticity)
	if s.Trigger {
		shape.SetSensor(true)
		shape.SetCollisionType(collisionTypeTrigger)
	} else {
		shape.SetCollisionType(collisionTypeSolid)
	}
	w.space.AddShape(shape)
	w.surfaces[shape] = s
}

// CapsuleSpec describes a character body.
type CapsuleSpec struct {
	Name     string
	Position mgl64.Vec3
	Height   float64
	Radius   float64
	Mass     float64
	Yaw      float64
	Material controller.Material
}

// AddCapsule creates an upright capsule body that does not rotate.
func (w *World) AddCapsule(spec CapsuleSpec) (*Body, error) {
	if spec.Height <= 0 || spec.Radius <= 0 || spec.Height < spec.Radius*2 {
		return nil, fmt.Errorf("%w: capsule %q height=%v radius=%v", ErrDegenerateShape, spec.Name, spec.Height, spec.Radius)
	}
	mass := spec.Mass
	if mass <= 0 {
		mass = 1
	}

	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: spec.Position.X(), Y: spec.Position.Y()})
	body.SetAngle(0)
	body.SetAngularVelocity(0)

	half := spec.Height/2 - spec.Radius
	shape := cp.NewSegment(body, cp.Vector{X: 0, Y: -half}, cp.Vector{X: 0, Y: half}, spec.Radius)
	w.nextGroup++
	shape.SetFilter(cp.ShapeFilter{Group: w.nextGroup, Categories: allCategories, Mask: allCategories})
	shape.SetCollisionType(collisionTypeCharacter)

	w.space.AddBody(body)
	w.space.AddShape(shape)

	b := &Body{
		world:  w,
		name:   spec.Name,
		body:   body,
		shape:  shape,
		group:  w.nextGroup,
		mass:   mass,
		height: spec.Height,
		radius: spec.Radius,
		z:      spec.Position.Z(),
		yaw:    spec.Yaw,
	}
	b.SetMaterial(spec.Material)
	w.bodies = append(w.bodies, b)
	return b, nil
}

// RemoveBody takes a body out of the space. It is safe to call twice.
func (w *World) RemoveBody(b *Body) {
	if w == nil || b == nil || b.removed {
		return
	}
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	b.removed = true
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
}

// Step advances the space by dt and integrates body depth.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.space.Step(dt)
	for _, b := range w.bodies {
		b.vz += b.fz / b.mass * dt
		b.fz = 0
		b.z += b.vz * dt
	}
}

func signedArea(verts []mgl64.Vec2) float64 {
	var sum float64
	for i := range verts {
		a := verts[i]
		b := verts[(i+1)%len(verts)]
		sum += a.X()*b.Y() - b.X()*a.Y()
	}
	return sum / 2
}
