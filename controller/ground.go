package controller

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// ProbeLengthFactor scales capsule height into the ground probe length.
	ProbeLengthFactor = 0.7
	// ReprobeVelocityFactor gates ground re-evaluation while airborne: the
	// probe only runs when vertical velocity is below JumpPower times this.
	ReprobeVelocityFactor = 0.5
)

// RayHit is one surface crossed by a probe ray.
type RayHit struct {
	Distance float64
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Trigger  bool
	Collider any
}

// SpatialQuery is the physics world's ray cast. Hits may come back in any
// order.
type SpatialQuery interface {
	RaycastAll(origin, direction mgl64.Vec3, maxDistance float64) []RayHit
}

// Probe records the last ground probe for debug views.
type Probe struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
	Length    float64
	Evaluated bool
	Hit       bool
	Ground    RayHit
}

func CompareHitDistance(a, b RayHit) int {
	return cmp.Compare(a.Distance, b.Distance)
}

// SortHits orders hits nearest first; equal distances keep query order.
func SortHits(hits []RayHit) {
	slices.SortStableFunc(hits, CompareHitDistance)
}

// FirstSolid returns the nearest hit that is not a trigger. hits must be
// sorted.
func FirstSolid(hits []RayHit) (RayHit, bool) {
	for _, h := range hits {
		if h.Trigger {
			continue
		}
		return h, true
	}
	return RayHit{}, false
}

// ShouldReprobe reports whether the ground state may change this tick.
// A body rising fast after a jump keeps its airborne state.
func ShouldReprobe(grounded bool, verticalVelocity, jumpPower float64) bool {
	return grounded || verticalVelocity < jumpPower*ReprobeVelocityFactor
}

// MoveTowards moves current toward target by at most maxDelta.
func MoveTowards(current, target mgl64.Vec3, maxDelta float64) mgl64.Vec3 {
	delta := target.Sub(current)
	dist := delta.Len()
	if dist <= maxDelta || dist == 0 {
		return target
	}
	return current.Add(delta.Mul(maxDelta / dist))
}
