// Package controller moves a first-person capsule body: it turns player input
// into velocity, applies jumps and extra gravity, and keeps the body on the
// ground with a downward probe. It runs once per fixed physics tick and owns
// nothing but its own state; the body and the ray cast come from the host.
package controller

import "github.com/go-gl/mathgl/mgl64"

// Body is the physics body driven by a controller. The controller assumes it
// is the only writer of the body during a tick.
type Body interface {
	Position() mgl64.Vec3
	SetPosition(p mgl64.Vec3)
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	AddForce(f mgl64.Vec3)
	// Height is the capsule height.
	Height() float64
	Orientation() Orientation
	SetMaterial(m Material)
}

// Transition names the grounded state change of a tick.
type Transition int

const (
	TransitionNone Transition = iota
	// TransitionJumped is Grounded to Airborne by a jump.
	TransitionJumped
	// TransitionFell is Grounded to Airborne because no ground was found.
	TransitionFell
	// TransitionLanded is Airborne to Grounded.
	TransitionLanded
)

func (t Transition) String() string {
	switch t {
	case TransitionJumped:
		return "jumped"
	case TransitionFell:
		return "fell"
	case TransitionLanded:
		return "landed"
	default:
		return "none"
	}
}

// State is the mutable per-character state.
type State struct {
	Grounded  bool
	LastInput mgl64.Vec2
	Probe     Probe
}

// TickResult summarises one tick.
type TickResult struct {
	Motion     Motion
	Velocity   mgl64.Vec3
	Material   Material
	Transition Transition
	Probe      Probe
}

type Controller struct {
	cfg      Config
	gravity  mgl64.Vec3
	state    State
	disabled bool
}

type Option func(*Controller)

// WithGravity sets the engine gravity the multiplier is applied to.
func WithGravity(g mgl64.Vec3) Option {
	return func(c *Controller) {
		c.gravity = g
	}
}

// WithState starts the controller from a saved state instead of the
// grounded initial one. Tests use it to begin airborne.
func WithState(s State) Option {
	return func(c *Controller) {
		c.state = s
	}
}

// DefaultGravity matches the usual engine default.
var DefaultGravity = mgl64.Vec3{0, -9.81, 0}

func New(cfg Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		cfg:     cfg,
		gravity: DefaultGravity,
		state:   State{Grounded: true},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Controller) Config() Config {
	return c.cfg
}

func (c *Controller) State() State {
	return c.state
}

// Gravity is the engine gravity the extra gravity force is scaled from.
func (c *Controller) Gravity() mgl64.Vec3 {
	return c.gravity
}

func (c *Controller) Grounded() bool {
	return c.state.Grounded
}

func (c *Controller) LastInput() mgl64.Vec2 {
	return c.state.LastInput
}

// Disable stops the controller from touching its body until Enable.
func (c *Controller) Disable() {
	c.disabled = true
}

func (c *Controller) Enable() {
	c.disabled = false
}

func (c *Controller) Enabled() bool {
	return !c.disabled
}

// Tick runs input resolution, velocity composition and ground resolution on
// body. dt is the fixed tick duration in seconds.
func (c *Controller) Tick(body Body, query SpatialQuery, in Input, dt float64) TickResult {
	if c.disabled {
		return TickResult{Probe: c.state.Probe}
	}
	wasGrounded := c.state.Grounded

	motion := ResolveInput(c.cfg, in)
	c.state.LastInput = motion.Move

	comp := ComposeVelocity(c.cfg, motion, body.Orientation(), body.Velocity(), c.state.Grounded, in.Jump)
	c.state.Grounded = comp.Grounded
	body.SetVelocity(comp.Velocity)
	body.SetMaterial(comp.Material)

	c.resolveGround(body, query, dt)

	body.AddForce(ExtraGravity(c.cfg, c.gravity))

	res := TickResult{
		Motion:   motion,
		Velocity: body.Velocity(),
		Material: comp.Material,
		Probe:    c.state.Probe,
	}
	switch {
	case comp.Jumped:
		res.Transition = TransitionJumped
	case wasGrounded && !c.state.Grounded:
		res.Transition = TransitionFell
	case !wasGrounded && c.state.Grounded:
		res.Transition = TransitionLanded
	}
	return res
}

func (c *Controller) resolveGround(body Body, query SpatialQuery, dt float64) {
	o := body.Orientation()
	height := body.Height()
	probe := Probe{
		Origin:    body.Position(),
		Direction: o.Up.Mul(-1),
		Length:    height * ProbeLengthFactor,
	}

	var hits []RayHit
	if query != nil {
		hits = query.RaycastAll(probe.Origin, probe.Direction, probe.Length)
	}
	SortHits(hits)

	vel := body.Velocity()
	if !ShouldReprobe(c.state.Grounded, vel.Dot(WorldUp), c.cfg.JumpPower) {
		c.state.Probe = probe
		return
	}

	probe.Evaluated = true
	c.state.Grounded = false
	if ground, ok := FirstSolid(hits); ok {
		c.state.Grounded = true
		probe.Hit = true
		probe.Ground = ground

		target := ground.Point.Add(WorldUp.Mul(height * 0.5))
		body.SetPosition(MoveTowards(body.Position(), target, dt*c.cfg.GroundStickyEffect))

		vel = body.Velocity()
		body.SetVelocity(vel.Sub(WorldUp.Mul(vel.Dot(WorldUp))))
	}
	c.state.Probe = probe
}
