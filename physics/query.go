package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/fpcontroller/controller"
)

type bodyQuery struct {
	world *World
	group uint
}

func (q bodyQuery) RaycastAll(origin, direction mgl64.Vec3, maxDistance float64) []controller.RayHit {
	filter := cp.ShapeFilter{Group: q.group, Categories: allCategories, Mask: allCategories}
	return q.world.raycastAll(origin, direction, maxDistance, filter)
}

// RaycastAll reports every shape along the ray, in no particular order.
func (w *World) RaycastAll(origin, direction mgl64.Vec3, maxDistance float64) []controller.RayHit {
	filter := cp.ShapeFilter{Categories: allCategories, Mask: allCategories}
	return w.raycastAll(origin, direction, maxDistance, filter)
}

// raycastAll runs the query in the X/Y plane. Geometry is extruded along Z,
// so the fraction along the projected segment is the fraction along the 3D
// ray.
func (w *World) raycastAll(origin, direction mgl64.Vec3, maxDistance float64, filter cp.ShapeFilter) []controller.RayHit {
	if w == nil || w.space == nil || maxDistance <= 0 {
		return nil
	}
	if direction.Len() == 0 {
		return nil
	}
	dir := direction.Normalize()
	end := origin.Add(dir.Mul(maxDistance))

	var hits []controller.RayHit
	w.space.SegmentQuery(
		cp.Vector{X: origin.X(), Y: origin.Y()},
		cp.Vector{X: end.X(), Y: end.Y()},
		0,
		filter,
		func(shape *cp.Shape, point, normal cp.Vector, alpha float64, data interface{}) {
			hit := controller.RayHit{
				Distance: alpha * maxDistance,
				Point:    mgl64.Vec3{point.X, point.Y, origin.Z() + dir.Z()*alpha*maxDistance},
				Normal:   mgl64.Vec3{normal.X, normal.Y, 0},
				Collider: shape,
			}
			if s, ok := w.surfaces[shape]; ok {
				hit.Trigger = s.Trigger
				hit.Collider = s.Name
			}
			hits = append(hits, hit)
		},
		nil,
	)
	return hits
}
