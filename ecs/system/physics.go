package system

import (
	"log"

	"github.com/milk9111/fpcontroller/ecs"
	"github.com/milk9111/fpcontroller/ecs/component"
	"github.com/milk9111/fpcontroller/physics"
)

// PhysicsSystem creates capsules for new bodies, steps the level's world and
// copies body poses back to transforms.
type PhysicsSystem struct {
	dt       float64
	world    *physics.World
	entities map[ecs.Entity]*physics.Body
}

func NewPhysicsSystem(dt float64) *PhysicsSystem {
	return &PhysicsSystem{
		dt:       dt,
		entities: make(map[ecs.Entity]*physics.Body),
	}
}

// World returns the physics world of the current level, if any.
func (ps *PhysicsSystem) World() *physics.World {
	if ps == nil {
		return nil
	}
	return ps.world
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	world := levelWorld(w)
	if world != ps.world {
		// level was swapped; bodies in the old space are gone with it
		ps.world = world
		clear(ps.entities)
	}
	if ps.world == nil {
		return
	}

	ps.cleanupEntities(w)
	ps.syncEntities(w)
	ps.world.Step(ps.dt)
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent, component.TransformComponent, func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if body, ok := ps.entities[e]; ok {
			bodyComp.Body = body
			return
		}

		name := "entity"
		if n, ok := ecs.Get(w, e, component.EntityNameComponent); ok && n.Name != "" {
			name = n.Name
		}
		body, err := ps.world.AddCapsule(physics.CapsuleSpec{
			Name:     name,
			Position: transform.Position,
			Height:   bodyComp.Height,
			Radius:   bodyComp.Radius,
			Mass:     bodyComp.Mass,
			Yaw:      transform.Yaw,
		})
		if err != nil {
			log.Printf("PhysicsSystem: entity=%v create body: %v", e, err)
			return
		}
		ps.entities[e] = body
		bodyComp.Body = body
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent, component.TransformComponent, func(_ ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil {
			return
		}
		transform.Position = bodyComp.Body.Position()
		transform.Yaw = bodyComp.Body.Yaw()
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, body := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent) {
			continue
		}
		ps.world.RemoveBody(body)
		delete(ps.entities, e)
	}
}

func levelWorld(w *ecs.World) *physics.World {
	e, ok := ecs.First(w, component.LevelComponent)
	if !ok {
		return nil
	}
	level, ok := ecs.Get(w, e, component.LevelComponent)
	if !ok {
		return nil
	}
	return level.World
}
