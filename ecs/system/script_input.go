package system

import (
	"errors"
	"log"

	"github.com/milk9111/fpcontroller/ecs"
	"github.com/milk9111/fpcontroller/ecs/component"
	"github.com/milk9111/fpcontroller/script"
)

var errNoScriptLoader = errors.New("no script loader")

// ScriptLoader returns the source of a script by path.
type ScriptLoader func(path string) ([]byte, error)

// ScriptInputSystem fills Input from each entity's tengo script.
type ScriptInputSystem struct {
	dt   float64
	load ScriptLoader
}

func NewScriptInputSystem(dt float64, load ScriptLoader) *ScriptInputSystem {
	return &ScriptInputSystem{dt: dt, load: load}
}

func (s *ScriptInputSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.ScriptedInputComponent, component.InputComponent, func(e ecs.Entity, si *component.ScriptedInput, input *component.Input) {
		if si.Failed {
			return
		}
		if si.Script == nil {
			compiled, err := s.compile(si.Path)
			if err != nil {
				log.Printf("ScriptInputSystem: entity=%v load %s: %v", e, si.Path, err)
				si.Failed = true
				return
			}
			si.Script = compiled
		}

		frame := script.Frame{Tick: si.Tick, Time: si.Time}
		if fpc, ok := ecs.Get(w, e, component.FirstPersonControllerComponent); ok && fpc.Controller != nil {
			frame.Grounded = fpc.Controller.Grounded()
		}
		if bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok && bodyComp.Body != nil {
			frame.Position = bodyComp.Body.Position()
			frame.Velocity = bodyComp.Body.Velocity()
		} else if transform, ok := ecs.Get(w, e, component.TransformComponent); ok {
			frame.Position = transform.Position
		}

		next, err := si.Script.Next(frame)
		if err != nil {
			log.Printf("ScriptInputSystem: entity=%v: %v", e, err)
			si.Failed = true
			return
		}
		si.Tick++
		si.Time += s.dt

		*input = component.Input{
			Horizontal: next.Horizontal,
			Vertical:   next.Vertical,
			Jump:       next.Jump,
			Modifier:   next.Modifier,
		}
	})
}

func (s *ScriptInputSystem) compile(path string) (*script.InputScript, error) {
	if s.load == nil {
		return nil, errNoScriptLoader
	}
	src, err := s.load(path)
	if err != nil {
		return nil, err
	}
	return script.Compile(path, src)
}
