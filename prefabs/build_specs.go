package prefabs

import (
	"math"

	"github.com/milk9111/fpcontroller/controller"
	"gopkg.in/yaml.v3"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	return DecodeComponentSpecInto(raw, zero)
}

// DecodeComponentSpecInto decodes raw over base, so fields the prefab leaves
// out keep base's values.
func DecodeComponentSpecInto[T any](raw any, base T) (T, error) {
	if raw == nil {
		return base, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return base, err
	}
	out := base
	if err := yaml.Unmarshal(b, &out); err != nil {
		return base, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Z          float64 `yaml:"z"`
	YawDegrees float64 `yaml:"yaw_degrees"`
}

func (s TransformComponentSpec) Yaw() float64 {
	return s.YawDegrees * math.Pi / 180
}

type PhysicsBodyComponentSpec struct {
	Height float64 `yaml:"height"`
	Radius float64 `yaml:"radius"`
	Mass   float64 `yaml:"mass"`
}

func DefaultPhysicsBodySpec() PhysicsBodyComponentSpec {
	return PhysicsBodyComponentSpec{Height: 2, Radius: 0.5, Mass: 1}
}

type MaterialSpec struct {
	Name       string  `yaml:"name"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
}

type ControllerComponentSpec struct {
	RunSpeed           float64      `yaml:"run_speed"`
	JogSpeed           float64      `yaml:"jog_speed"`
	WalkSpeed          float64      `yaml:"walk_speed"`
	RunStrafeSpeed     float64      `yaml:"run_strafe_speed"`
	JogStrafeSpeed     float64      `yaml:"jog_strafe_speed"`
	WalkStrafeSpeed    float64      `yaml:"walk_strafe_speed"`
	JumpPower          float64      `yaml:"jump_power"`
	WalkByDefault      bool         `yaml:"walk_by_default"`
	LockCursor         bool         `yaml:"lock_cursor"`
	GravityMultiplier  float64      `yaml:"gravity_multiplier"`
	GroundStickyEffect float64      `yaml:"ground_sticky_effect"`
	ZeroFriction       MaterialSpec `yaml:"zero_friction"`
	HighFriction       MaterialSpec `yaml:"high_friction"`
}

// DefaultControllerSpec mirrors controller.DefaultConfig.
func DefaultControllerSpec() ControllerComponentSpec {
	cfg := controller.DefaultConfig()
	return ControllerComponentSpec{
		RunSpeed:           cfg.RunSpeed,
		JogSpeed:           cfg.JogSpeed,
		WalkSpeed:          cfg.WalkSpeed,
		RunStrafeSpeed:     cfg.RunStrafeSpeed,
		JogStrafeSpeed:     cfg.JogStrafeSpeed,
		WalkStrafeSpeed:    cfg.WalkStrafeSpeed,
		JumpPower:          cfg.JumpPower,
		WalkByDefault:      cfg.WalkByDefault,
		LockCursor:         cfg.LockCursor,
		GravityMultiplier:  cfg.GravityMultiplier,
		GroundStickyEffect: cfg.GroundStickyEffect,
		ZeroFriction:       MaterialSpec(cfg.ZeroFriction),
		HighFriction:       MaterialSpec(cfg.HighFriction),
	}
}

// Config converts to a controller.Config and validates it.
func (s ControllerComponentSpec) Config() (controller.Config, error) {
	cfg := controller.Config{
		RunSpeed:           s.RunSpeed,
		JogSpeed:           s.JogSpeed,
		WalkSpeed:          s.WalkSpeed,
		RunStrafeSpeed:     s.RunStrafeSpeed,
		JogStrafeSpeed:     s.JogStrafeSpeed,
		WalkStrafeSpeed:    s.WalkStrafeSpeed,
		JumpPower:          s.JumpPower,
		WalkByDefault:      s.WalkByDefault,
		LockCursor:         s.LockCursor,
		GravityMultiplier:  s.GravityMultiplier,
		GroundStickyEffect: s.GroundStickyEffect,
		ZeroFriction:       controller.Material(s.ZeroFriction),
		HighFriction:       controller.Material(s.HighFriction),
	}
	return cfg, cfg.Validate()
}

func (p *PlayerSpec) ControllerConfig() (controller.Config, error) {
	return p.Controller.Config()
}

type NameComponentSpec struct {
	Name string `yaml:"name"`
}

type CameraComponentSpec struct {
	TargetName string  `yaml:"target"`
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

type LineRenderComponentSpec struct {
	StartX    float64    `yaml:"start_x"`
	StartY    float64    `yaml:"start_y"`
	EndX      float64    `yaml:"end_x"`
	EndY      float64    `yaml:"end_y"`
	Width     float32    `yaml:"width"`
	Color     *YAMLColor `yaml:"color"`
	AntiAlias bool       `yaml:"anti_alias"`
}

type ScriptedInputComponentSpec struct {
	Path string `yaml:"path"`
}

type PlayerComponentSpec struct {
	Debug bool `yaml:"debug"`
}
