package system

import (
	"log"

	"github.com/milk9111/fpcontroller/ecs"
)

// ControllerEventLogSystem logs ground transitions. It peeks so later systems
// still see the events.
type ControllerEventLogSystem struct {
	Enabled bool
	logf    func(format string, args ...any)
}

func NewControllerEventLogSystem(enabled bool) *ControllerEventLogSystem {
	return &ControllerEventLogSystem{Enabled: enabled, logf: log.Printf}
}

func (s *ControllerEventLogSystem) Update(w *ecs.World) {
	if s == nil || !s.Enabled || w == nil {
		return
	}
	for _, evt := range w.Events().Peek() {
		if evt.Type != ecs.EventTypeController {
			continue
		}
		ce, ok := evt.Data.(ecs.ControllerEvent)
		if !ok {
			continue
		}
		s.logf("PlayerControllerSystem: entity=%v %s at (%.2f, %.2f, %.2f) vy=%.2f",
			ce.Entity, ce.Transition, ce.Position.X(), ce.Position.Y(), ce.Position.Z(), ce.Velocity.Y())
	}
}
