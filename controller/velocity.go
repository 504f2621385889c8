package controller

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WorldUp is the up axis used for jumping and ground sticking.
var WorldUp = mgl64.Vec3{0, 1, 0}

// Orientation is the body's facing in world space.
type Orientation struct {
	Forward mgl64.Vec3
	Right   mgl64.Vec3
	Up      mgl64.Vec3
}

// OrientationFromYaw builds an upright orientation. Yaw 0 faces +Z with +X
// to the right; yaw pi/2 faces +X.
func OrientationFromYaw(yaw float64) Orientation {
	sin, cos := math.Sincos(yaw)
	return Orientation{
		Forward: mgl64.Vec3{sin, 0, cos},
		Right:   mgl64.Vec3{cos, 0, -sin},
		Up:      WorldUp,
	}
}

// Composition is the outcome of the velocity composer for one tick.
type Composition struct {
	Desired  mgl64.Vec3
	Velocity mgl64.Vec3
	Grounded bool
	Jumped   bool
	Material Material
}

// ComposeVelocity builds the velocity written to the body this tick.
// current is the body's velocity before the write; only its vertical
// component survives.
func ComposeVelocity(cfg Config, m Motion, o Orientation, current mgl64.Vec3, grounded, jump bool) Composition {
	desired := o.Forward.Mul(m.Move.Y() * m.ForwardSpeed).Add(o.Right.Mul(m.Move.X() * m.StrafeSpeed))

	yvel := current.Dot(WorldUp)
	jumped := false
	if grounded && jump {
		yvel += cfg.JumpPower
		grounded = false
		jumped = true
	}

	return Composition{
		Desired:  desired,
		Velocity: desired.Add(WorldUp.Mul(yvel)),
		Grounded: grounded,
		Jumped:   jumped,
		Material: SelectMaterial(cfg, desired, grounded),
	}
}

// SelectMaterial keeps a resting, grounded body from sliding down slopes and
// lets it glide everywhere else.
func SelectMaterial(cfg Config, desired mgl64.Vec3, grounded bool) Material {
	if desired.Len() > 0 || !grounded {
		return cfg.ZeroFriction
	}
	return cfg.HighFriction
}

// ExtraGravity is the force added on top of engine gravity.
func ExtraGravity(cfg Config, gravity mgl64.Vec3) mgl64.Vec3 {
	return gravity.Mul(cfg.GravityMultiplier - 1)
}
