package system

import (
	"github.com/milk9111/fpcontroller/controller"
	"github.com/milk9111/fpcontroller/ecs"
	"github.com/milk9111/fpcontroller/ecs/component"
)

// PlayerControllerSystem runs one controller tick per body and reports ground
// transitions as ControllerEvents.
type PlayerControllerSystem struct {
	dt float64
}

func NewPlayerControllerSystem(dt float64) *PlayerControllerSystem {
	return &PlayerControllerSystem{dt: dt}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}

	ecs.ForEach3(w, component.FirstPersonControllerComponent, component.PhysicsBodyComponent, component.InputComponent, func(e ecs.Entity, fpc *component.FirstPersonController, bodyComp *component.PhysicsBody, input *component.Input) {
		if fpc.Controller == nil || bodyComp.Body == nil {
			return
		}
		body := bodyComp.Body

		if fpc.Controller.Enabled() && input.Turn != 0 {
			body.SetYaw(body.Yaw() + input.Turn)
		}

		res := fpc.Controller.Tick(body, body.Query(), input.Controller(), p.dt)
		fpc.Last = res

		if res.Transition == controller.TransitionNone {
			return
		}
		w.Events().Push(ecs.Event{
			Type: ecs.EventTypeController,
			Data: ecs.ControllerEvent{
				Entity:     e,
				Transition: res.Transition,
				Position:   body.Position(),
				Velocity:   res.Velocity,
			},
		})
	})
}

// SetControllersEnabled enables or disables every controller in w.
func SetControllersEnabled(w *ecs.World, enabled bool) {
	ecs.ForEach(w, component.FirstPersonControllerComponent, func(_ ecs.Entity, fpc *component.FirstPersonController) {
		if fpc.Controller == nil {
			return
		}
		if enabled {
			fpc.Controller.Enable()
		} else {
			fpc.Controller.Disable()
		}
	})
}
