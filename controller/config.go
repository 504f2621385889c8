package controller

import (
	"errors"
	"fmt"
)

var ErrNegativeSpeed = errors.New("speed must not be negative")

// Material describes the contact surface the controller puts on its body.
type Material struct {
	Name       string
	Friction   float64
	Elasticity float64
}

// Config holds the tunables of one controller. It is set once at spawn and
// never mutated by the controller.
type Config struct {
	RunSpeed  float64
	JogSpeed  float64
	WalkSpeed float64

	RunStrafeSpeed  float64
	JogStrafeSpeed  float64
	WalkStrafeSpeed float64

	JumpPower float64

	WalkByDefault bool
	LockCursor    bool

	// GravityMultiplier scales engine gravity; 1 leaves it untouched.
	GravityMultiplier float64
	// GroundStickyEffect is how fast (units per second) the body is pulled
	// onto the surface under it.
	GroundStickyEffect float64
	ZeroFriction       Material
	HighFriction       Material
}

func DefaultConfig() Config {
	return Config{
		RunSpeed:           8,
		JogSpeed:           5,
		WalkSpeed:          3,
		RunStrafeSpeed:     5,
		JogStrafeSpeed:     3,
		WalkStrafeSpeed:    1.5,
		JumpPower:          5,
		WalkByDefault:      false,
		LockCursor:         true,
		GravityMultiplier:  1,
		GroundStickyEffect: 5,
		ZeroFriction:       Material{Name: "zero_friction", Friction: 0},
		HighFriction:       Material{Name: "high_friction", Friction: 1},
	}
}

// Validate reports the first speed field that is negative.
func (c Config) Validate() error {
	speeds := []struct {
		name  string
		value float64
	}{
		{"run_speed", c.RunSpeed},
		{"jog_speed", c.JogSpeed},
		{"walk_speed", c.WalkSpeed},
		{"run_strafe_speed", c.RunStrafeSpeed},
		{"jog_strafe_speed", c.JogStrafeSpeed},
		{"walk_strafe_speed", c.WalkStrafeSpeed},
	}
	for _, s := range speeds {
		if s.value < 0 {
			return fmt.Errorf("controller: %s=%v: %w", s.name, s.value, ErrNegativeSpeed)
		}
	}
	return nil
}
