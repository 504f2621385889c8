package controller

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type fakeBody struct {
	pos      mgl64.Vec3
	vel      mgl64.Vec3
	height   float64
	orient   Orientation
	material Material
	forces   []mgl64.Vec3
	writes   int
}

func newFakeBody() *fakeBody {
	return &fakeBody{height: 2, orient: OrientationFromYaw(0)}
}

func (b *fakeBody) Position() mgl64.Vec3     { return b.pos }
func (b *fakeBody) SetPosition(p mgl64.Vec3) { b.pos = p; b.writes++ }
func (b *fakeBody) Velocity() mgl64.Vec3     { return b.vel }
func (b *fakeBody) SetVelocity(v mgl64.Vec3) { b.vel = v; b.writes++ }
func (b *fakeBody) AddForce(f mgl64.Vec3)    { b.forces = append(b.forces, f); b.writes++ }
func (b *fakeBody) Height() float64          { return b.height }
func (b *fakeBody) Orientation() Orientation { return b.orient }
func (b *fakeBody) SetMaterial(m Material)   { b.material = m; b.writes++ }

type fakeQuery struct {
	hits  []RayHit
	calls int
}

func (q *fakeQuery) RaycastAll(origin, direction mgl64.Vec3, maxDistance float64) []RayHit {
	q.calls++
	out := make([]RayHit, len(q.hits))
	copy(out, q.hits)
	return out
}

// floorUnder returns a solid hit whose stick target is exactly the body's
// current position.
func floorUnder(b *fakeBody) RayHit {
	return RayHit{
		Distance: b.height * 0.5,
		Point:    b.pos.Sub(mgl64.Vec3{0, b.height * 0.5, 0}),
		Normal:   WorldUp,
	}
}

func approxVec(t *testing.T, got, want mgl64.Vec3, field string) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("%s = %v, want %v", field, got, want)
		}
	}
}

func approxFloat(t *testing.T, got, want float64, field string) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %.9f, want %.9f", field, got, want)
	}
}

func mustNew(t *testing.T, cfg Config, opts ...Option) *Controller {
	t.Helper()
	c, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNew_StartsGrounded(t *testing.T) {
	c := mustNew(t, DefaultConfig())
	if !c.Grounded() {
		t.Fatalf("grounded = false at spawn, want true")
	}
}

func TestNew_Options(t *testing.T) {
	saved := State{Grounded: false, LastInput: mgl64.Vec2{0.5, -1}}
	c := mustNew(t, DefaultConfig(), WithState(saved), WithGravity(mgl64.Vec3{}))
	if c.Grounded() {
		t.Fatal("WithState should replace the grounded initial state")
	}
	if c.LastInput() != saved.LastInput {
		t.Fatalf("last input = %v, want %v", c.LastInput(), saved.LastInput)
	}
	if c.Gravity() != (mgl64.Vec3{}) {
		t.Fatalf("gravity = %v, want zero", c.Gravity())
	}
	if def := mustNew(t, DefaultConfig()); def.Gravity() != DefaultGravity {
		t.Fatalf("default gravity = %v, want %v", def.Gravity(), DefaultGravity)
	}
}

func TestNew_RejectsNegativeSpeed(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"run", func(c *Config) { c.RunSpeed = -1 }},
		{"jog", func(c *Config) { c.JogSpeed = -0.1 }},
		{"walk", func(c *Config) { c.WalkSpeed = -3 }},
		{"run_strafe", func(c *Config) { c.RunStrafeSpeed = -1 }},
		{"jog_strafe", func(c *Config) { c.JogStrafeSpeed = -1 }},
		{"walk_strafe", func(c *Config) { c.WalkStrafeSpeed = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			c, err := New(cfg)
			if !errors.Is(err, ErrNegativeSpeed) {
				t.Fatalf("New() error = %v, want ErrNegativeSpeed", err)
			}
			if c != nil {
				t.Fatalf("New() returned a controller for an invalid config")
			}
		})
	}
}

func TestTick_JumpWhileGrounded(t *testing.T) {
	cfg := DefaultConfig()
	c := mustNew(t, cfg)
	body := newFakeBody()
	body.vel = mgl64.Vec3{0, 0.3, 0}
	query := &fakeQuery{hits: []RayHit{floorUnder(body)}}

	res := c.Tick(body, query, Input{Jump: true}, 0.02)

	if c.Grounded() {
		t.Fatalf("grounded = true after jump, want false")
	}
	if res.Transition != TransitionJumped {
		t.Fatalf("transition = %v, want jumped", res.Transition)
	}
	approxFloat(t, body.vel.Y(), 0.3+cfg.JumpPower, "velocity.y")
	if res.Probe.Evaluated {
		t.Fatalf("probe evaluated while rising after a jump")
	}
}

func TestTick_JumpIgnoredWhileAirborne(t *testing.T) {
	cfg := DefaultConfig()
	c := mustNew(t, cfg, WithState(State{Grounded: false}))
	body := newFakeBody()
	body.vel = mgl64.Vec3{0, 4, 0}

	res := c.Tick(body, &fakeQuery{}, Input{Jump: true}, 0.02)

	if res.Transition != TransitionNone {
		t.Fatalf("transition = %v, want none", res.Transition)
	}
	approxFloat(t, body.vel.Y(), 4, "velocity.y")
}

func TestTick_ReprobeGuardKeepsRisingBodyAirborne(t *testing.T) {
	cfg := DefaultConfig()
	c := mustNew(t, cfg, WithState(State{Grounded: false}))
	body := newFakeBody()
	body.vel = mgl64.Vec3{0, cfg.JumpPower * 0.6, 0}
	query := &fakeQuery{hits: []RayHit{floorUnder(body)}}

	res := c.Tick(body, query, Input{}, 0.02)

	if c.Grounded() {
		t.Fatalf("grounded = true, want false while rising at 0.6 x jump power")
	}
	if res.Probe.Evaluated {
		t.Fatalf("probe evaluated under the re-evaluation guard")
	}
	approxFloat(t, body.vel.Y(), cfg.JumpPower*0.6, "velocity.y")
}

func TestTick_LandsWhenFallingOntoSurface(t *testing.T) {
	c := mustNew(t, DefaultConfig(), WithState(State{Grounded: false}))
	body := newFakeBody()
	body.vel = mgl64.Vec3{1, -3, 0}
	query := &fakeQuery{hits: []RayHit{floorUnder(body)}}

	res := c.Tick(body, query, Input{}, 0.02)

	if res.Transition != TransitionLanded {
		t.Fatalf("transition = %v, want landed", res.Transition)
	}
	approxFloat(t, body.vel.Y(), 0, "velocity.y")
}

func TestTick_TriggerIsSkipped(t *testing.T) {
	c := mustNew(t, DefaultConfig())
	body := newFakeBody()
	body.pos = mgl64.Vec3{0, 5, 0}
	solid := RayHit{Distance: 1.2, Point: mgl64.Vec3{0, 3.8, 0}, Normal: WorldUp, Collider: "floor"}
	trigger := RayHit{Distance: 0.3, Point: mgl64.Vec3{0, 4.7, 0}, Normal: WorldUp, Trigger: true, Collider: "zone"}
	// unordered on purpose
	query := &fakeQuery{hits: []RayHit{solid, trigger}}

	res := c.Tick(body, query, Input{}, 0.02)

	if !c.Grounded() {
		t.Fatalf("grounded = false, want true from the solid hit")
	}
	if res.Probe.Ground.Collider != "floor" {
		t.Fatalf("ground collider = %v, want floor", res.Probe.Ground.Collider)
	}
	// target is 3.8 + 1 = 4.8, 0.2 below; max step is 5 * 0.02 = 0.1
	approxVec(t, body.pos, mgl64.Vec3{0, 4.9, 0}, "position")
}

func TestTick_OnlyTriggersMeansAirborne(t *testing.T) {
	c := mustNew(t, DefaultConfig())
	body := newFakeBody()
	body.vel = mgl64.Vec3{0, -0.5, 0}
	query := &fakeQuery{hits: []RayHit{{Distance: 0.4, Trigger: true}}}

	res := c.Tick(body, query, Input{}, 0.02)

	if c.Grounded() {
		t.Fatalf("grounded = true on a trigger")
	}
	if res.Transition != TransitionFell {
		t.Fatalf("transition = %v, want fell", res.Transition)
	}
	approxFloat(t, body.vel.Y(), -0.5, "velocity.y")
}

func TestTick_StickinessIsRateBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GroundStickyEffect = 5
	c := mustNew(t, cfg)
	body := newFakeBody()
	// stick target sits 10 units below the body
	query := &fakeQuery{hits: []RayHit{{Distance: 0.5, Point: mgl64.Vec3{0, -11, 0}, Normal: WorldUp}}}

	c.Tick(body, query, Input{}, 0.02)

	moved := body.pos.Len()
	if moved > 0.1+1e-9 {
		t.Fatalf("correction = %.6f, want <= 0.1", moved)
	}
	approxVec(t, body.pos, mgl64.Vec3{0, -0.1, 0}, "position")
}

func TestTick_ExtraGravity(t *testing.T) {
	cases := []struct {
		name       string
		multiplier float64
		want       mgl64.Vec3
	}{
		{"unchanged", 1, mgl64.Vec3{}},
		{"softer", 0.5, mgl64.Vec3{0, 4.905, 0}},
		{"sharper", 2, mgl64.Vec3{0, -9.81, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.GravityMultiplier = tc.multiplier
			c := mustNew(t, cfg, WithGravity(mgl64.Vec3{0, -9.81, 0}))
			body := newFakeBody()

			c.Tick(body, &fakeQuery{hits: []RayHit{floorUnder(body)}}, Input{}, 0.02)

			if len(body.forces) != 1 {
				t.Fatalf("forces applied = %d, want 1", len(body.forces))
			}
			approxVec(t, body.forces[0], tc.want, "force")
		})
	}
}

func TestTick_FrictionSelection(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		name     string
		grounded bool
		input    Input
		want     string
	}{
		{"idle_grounded", true, Input{}, cfg.HighFriction.Name},
		{"moving_grounded", true, Input{Horizontal: 0.2}, cfg.ZeroFriction.Name},
		{"idle_airborne", false, Input{}, cfg.ZeroFriction.Name},
		{"moving_airborne", false, Input{Vertical: -1}, cfg.ZeroFriction.Name},
		{"jump_from_idle", true, Input{Jump: true}, cfg.ZeroFriction.Name},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := mustNew(t, cfg, WithState(State{Grounded: tc.grounded}))
			body := newFakeBody()

			res := c.Tick(body, &fakeQuery{hits: []RayHit{floorUnder(body)}}, tc.input, 0.02)

			if res.Material.Name != tc.want || body.material.Name != tc.want {
				t.Fatalf("material = %q (body %q), want %q", res.Material.Name, body.material.Name, tc.want)
			}
		})
	}
}

func TestTick_ForwardJog(t *testing.T) {
	cfg := DefaultConfig()
	c := mustNew(t, cfg)
	body := newFakeBody()
	query := &fakeQuery{hits: []RayHit{floorUnder(body)}}

	res := c.Tick(body, query, Input{Vertical: 1}, 0.02)

	approxFloat(t, res.Motion.ForwardSpeed, cfg.JogSpeed, "forward speed")
	approxVec(t, body.vel, body.orient.Forward.Mul(cfg.JogSpeed), "velocity")
	if res.Material != cfg.ZeroFriction {
		t.Fatalf("material = %+v, want zero friction", res.Material)
	}
	if !c.Grounded() || res.Transition != TransitionNone {
		t.Fatalf("grounded = %v transition = %v, want grounded with no transition", c.Grounded(), res.Transition)
	}
	if c.LastInput() != (mgl64.Vec2{0, 1}) {
		t.Fatalf("last input = %v, want (0, 1)", c.LastInput())
	}
}

func TestTick_NoGroundLeavesVelocity(t *testing.T) {
	c := mustNew(t, DefaultConfig())
	body := newFakeBody()
	body.vel = mgl64.Vec3{0, -2, 0}

	res := c.Tick(body, &fakeQuery{}, Input{}, 0.02)

	if res.Transition != TransitionFell {
		t.Fatalf("transition = %v, want fell", res.Transition)
	}
	approxFloat(t, body.vel.Y(), -2, "velocity.y")
	approxVec(t, body.pos, mgl64.Vec3{}, "position")
}

func TestTick_DisabledLeavesBodyAlone(t *testing.T) {
	c := mustNew(t, DefaultConfig())
	c.Disable()
	body := newFakeBody()
	query := &fakeQuery{}

	c.Tick(body, query, Input{Vertical: 1, Jump: true}, 0.02)

	if body.writes != 0 || query.calls != 0 {
		t.Fatalf("disabled controller wrote %d times and queried %d times", body.writes, query.calls)
	}
	c.Enable()
	c.Tick(body, query, Input{Vertical: 1}, 0.02)
	if query.calls != 1 {
		t.Fatalf("queries after enable = %d, want 1", query.calls)
	}
}

func TestTick_ProbeShape(t *testing.T) {
	c := mustNew(t, DefaultConfig())
	body := newFakeBody()
	body.height = 1.8
	body.pos = mgl64.Vec3{2, 3, 4}

	res := c.Tick(body, &fakeQuery{}, Input{}, 0.02)

	approxVec(t, res.Probe.Origin, mgl64.Vec3{2, 3, 4}, "probe origin")
	approxVec(t, res.Probe.Direction, mgl64.Vec3{0, -1, 0}, "probe direction")
	approxFloat(t, res.Probe.Length, 1.8*ProbeLengthFactor, "probe length")
}
