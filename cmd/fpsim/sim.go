package main

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpcontroller/controller"
	"github.com/milk9111/fpcontroller/ecs/entity"
	"github.com/milk9111/fpcontroller/levels"
	"github.com/milk9111/fpcontroller/physics"
	"github.com/milk9111/fpcontroller/prefabs"
	"github.com/milk9111/fpcontroller/script"
)

const dt = 1.0 / 60.0

type simOptions struct {
	Level  string
	Script string
	Prefab string
	Ticks  int
	Every  int
	Load   func(path string) ([]byte, error)
	Logf   func(format string, args ...any)
}

type simSummary struct {
	Ticks       int
	Transitions map[controller.Transition]int
	Final       mgl64.Vec3
	Grounded    bool
}

func (s simSummary) String() string {
	return fmt.Sprintf("%d ticks, jumped=%d fell=%d landed=%d, final (%.2f, %.2f, %.2f) grounded=%v",
		s.Ticks,
		s.Transitions[controller.TransitionJumped],
		s.Transitions[controller.TransitionFell],
		s.Transitions[controller.TransitionLanded],
		s.Final.X(), s.Final.Y(), s.Final.Z(), s.Grounded)
}

func run(opts simOptions) (simSummary, error) {
	summary := simSummary{Transitions: make(map[controller.Transition]int)}
	if opts.Ticks < 0 {
		return summary, fmt.Errorf("ticks must not be negative, got %d", opts.Ticks)
	}
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	lvl, err := levels.Load(opts.Level)
	if err != nil {
		return summary, err
	}
	world, err := entity.NewLevelWorld(lvl)
	if err != nil {
		return summary, err
	}

	spec, err := prefabs.LoadPlayerSpec(opts.Prefab)
	if err != nil {
		return summary, err
	}
	cfg, err := spec.ControllerConfig()
	if err != nil {
		return summary, err
	}
	ctrl, err := controller.New(cfg, controller.WithGravity(world.Gravity()))
	if err != nil {
		return summary, err
	}

	name := opts.Script
	if name == "" {
		name = spec.Script
	}
	if opts.Load == nil {
		return summary, fmt.Errorf("no script loader")
	}
	src, err := opts.Load(name)
	if err != nil {
		return summary, fmt.Errorf("load script %s: %w", name, err)
	}
	input, err := script.Compile(name, src)
	if err != nil {
		return summary, err
	}

	body, err := world.AddCapsule(physics.CapsuleSpec{
		Name:     spec.Name,
		Position: lvl.SpawnPosition(),
		Height:   spec.Body.Height,
		Radius:   spec.Body.Radius,
		Mass:     spec.Body.Mass,
		Yaw:      lvl.Spawn.YawDegrees * math.Pi / 180,
	})
	if err != nil {
		return summary, err
	}

	for tick := 0; tick < opts.Ticks; tick++ {
		frame := script.Frame{
			Tick:     tick,
			Time:     float64(tick) * dt,
			Grounded: ctrl.Grounded(),
			Position: body.Position(),
			Velocity: body.Velocity(),
		}
		in, err := input.Next(frame)
		if err != nil {
			return summary, err
		}

		res := ctrl.Tick(body, body.Query(), in, dt)
		world.Step(dt)
		summary.Ticks++

		if res.Transition != controller.TransitionNone {
			summary.Transitions[res.Transition]++
			p := body.Position()
			logf("tick %4d %-6s at (%.2f, %.2f, %.2f) vy=%.2f", tick, res.Transition, p.X(), p.Y(), p.Z(), res.Velocity.Y())
		}
		if opts.Every > 0 && tick%opts.Every == 0 {
			p, v := body.Position(), body.Velocity()
			logf("tick %4d pos=(%.2f, %.2f, %.2f) vel=(%.2f, %.2f, %.2f) grounded=%v material=%s",
				tick, p.X(), p.Y(), p.Z(), v.X(), v.Y(), v.Z(), ctrl.Grounded(), res.Material.Name)
		}
	}

	summary.Final = body.Position()
	summary.Grounded = ctrl.Grounded()
	return summary, nil
}
