package controller

import "github.com/go-gl/mathgl/mgl64"

// Input is one tick of player intent. Axes are in [-1, 1].
type Input struct {
	Horizontal float64
	Vertical   float64
	Jump       bool
	// Modifier is the held walk/jog toggle key.
	Modifier bool
}

// Motion is the resolved input for a tick.
type Motion struct {
	Move         mgl64.Vec2
	ForwardSpeed float64
	StrafeSpeed  float64
}

func ResolveInput(cfg Config, in Input) Motion {
	return Motion{
		Move:         ClampInput(mgl64.Vec2{in.Horizontal, in.Vertical}),
		ForwardSpeed: ForwardSpeed(cfg, in.Modifier),
		StrafeSpeed:  StrafeSpeed(cfg, in.Modifier),
	}
}

// ClampInput scales v down to unit length when it is longer than 1 so that
// diagonal input is not faster than straight input.
func ClampInput(v mgl64.Vec2) mgl64.Vec2 {
	if v.Dot(v) > 1 {
		return v.Normalize()
	}
	return v
}

// ForwardSpeed picks walk or jog speed. RunSpeed is never returned.
func ForwardSpeed(cfg Config, modifier bool) float64 {
	if cfg.WalkByDefault {
		if modifier {
			return cfg.JogSpeed
		}
		return cfg.WalkSpeed
	}
	if modifier {
		return cfg.WalkSpeed
	}
	return cfg.JogSpeed
}

func StrafeSpeed(cfg Config, modifier bool) float64 {
	if modifier {
		return cfg.WalkStrafeSpeed
	}
	return cfg.JogStrafeSpeed
}
