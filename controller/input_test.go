package controller

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestClampInput(t *testing.T) {
	cases := []struct {
		name    string
		in      mgl64.Vec2
		clamped bool
	}{
		{"zero", mgl64.Vec2{0, 0}, false},
		{"forward", mgl64.Vec2{0, 1}, false},
		{"partial", mgl64.Vec2{0.3, 0.4}, false},
		{"full_diagonal", mgl64.Vec2{1, 1}, true},
		{"back_left", mgl64.Vec2{-1, -0.5}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClampInput(tc.in)
			if !tc.clamped {
				if got != tc.in {
					t.Fatalf("ClampInput(%v) = %v, want unchanged", tc.in, got)
				}
				return
			}
			if math.Abs(got.Len()-1) > 1e-12 {
				t.Fatalf("|ClampInput(%v)| = %v, want 1", tc.in, got.Len())
			}
			// direction is preserved
			cross := got.X()*tc.in.Y() - got.Y()*tc.in.X()
			if math.Abs(cross) > 1e-12 || got.Dot(tc.in) <= 0 {
				t.Fatalf("ClampInput(%v) = %v changed direction", tc.in, got)
			}
		})
	}
}

// The walk/jog switch is binary, so the configured run speed is never picked.
func TestForwardSpeedTable(t *testing.T) {
	cfg := DefaultConfig()
	table := []struct {
		walkByDefault bool
		modifier      bool
		want          float64
	}{
		{walkByDefault: false, modifier: false, want: cfg.JogSpeed},
		{walkByDefault: false, modifier: true, want: cfg.WalkSpeed},
		{walkByDefault: true, modifier: false, want: cfg.WalkSpeed},
		{walkByDefault: true, modifier: true, want: cfg.JogSpeed},
	}
	for _, row := range table {
		c := cfg
		c.WalkByDefault = row.walkByDefault
		got := ForwardSpeed(c, row.modifier)
		if got != row.want {
			t.Fatalf("ForwardSpeed(walkByDefault=%v, modifier=%v) = %v, want %v", row.walkByDefault, row.modifier, got, row.want)
		}
		if got == cfg.RunSpeed {
			t.Fatalf("ForwardSpeed returned run speed %v", got)
		}
	}
}

func TestStrafeSpeed(t *testing.T) {
	cfg := DefaultConfig()
	for _, walkByDefault := range []bool{false, true} {
		cfg.WalkByDefault = walkByDefault
		if got := StrafeSpeed(cfg, true); got != cfg.WalkStrafeSpeed {
			t.Fatalf("StrafeSpeed(modifier) = %v, want %v", got, cfg.WalkStrafeSpeed)
		}
		if got := StrafeSpeed(cfg, false); got != cfg.JogStrafeSpeed {
			t.Fatalf("StrafeSpeed() = %v, want %v", got, cfg.JogStrafeSpeed)
		}
	}
}

func TestComposeVelocity(t *testing.T) {
	cfg := DefaultConfig()
	o := OrientationFromYaw(math.Pi / 2)

	t.Run("forward_and_strafe", func(t *testing.T) {
		m := ResolveInput(cfg, Input{Horizontal: 1, Vertical: 1})
		comp := ComposeVelocity(cfg, m, o, mgl64.Vec3{7, -1.2, 7}, true, false)

		k := math.Sqrt2 / 2
		want := o.Forward.Mul(k * cfg.JogSpeed).Add(o.Right.Mul(k * cfg.JogStrafeSpeed)).Add(mgl64.Vec3{0, -1.2, 0})
		approxVec(t, comp.Velocity, want, "velocity")
		if !comp.Grounded || comp.Jumped {
			t.Fatalf("grounded=%v jumped=%v, want grounded without jump", comp.Grounded, comp.Jumped)
		}
	})

	t.Run("jump_adds_power", func(t *testing.T) {
		comp := ComposeVelocity(cfg, Motion{}, o, mgl64.Vec3{0, -0.25, 0}, true, true)
		if math.Abs(comp.Velocity.Y()-(cfg.JumpPower-0.25)) > 1e-12 {
			t.Fatalf("velocity.y = %v, want %v", comp.Velocity.Y(), cfg.JumpPower-0.25)
		}
		if comp.Grounded || !comp.Jumped {
			t.Fatalf("grounded=%v jumped=%v, want airborne after jump", comp.Grounded, comp.Jumped)
		}
	})
}

func TestOrientationFromYaw(t *testing.T) {
	for _, yaw := range []float64{0, 0.4, math.Pi / 2, -2.5} {
		o := OrientationFromYaw(yaw)
		if math.Abs(o.Forward.Dot(o.Right)) > 1e-12 {
			t.Fatalf("yaw %v: forward and right are not orthogonal", yaw)
		}
		if math.Abs(o.Forward.Len()-1) > 1e-12 || math.Abs(o.Right.Len()-1) > 1e-12 {
			t.Fatalf("yaw %v: axes are not unit length", yaw)
		}
		if o.Forward.Y() != 0 || o.Right.Y() != 0 {
			t.Fatalf("yaw %v: axes leave the horizontal plane", yaw)
		}
	}
	o := OrientationFromYaw(math.Pi / 2)
	approxVec(t, o.Forward, mgl64.Vec3{1, 0, 0}, "forward at yaw pi/2")
	approxVec(t, OrientationFromYaw(0).Forward, mgl64.Vec3{0, 0, 1}, "forward at yaw 0")
}
