package system

import (
	"github.com/milk9111/fpcontroller/common"
	"github.com/milk9111/fpcontroller/ecs"
	"github.com/milk9111/fpcontroller/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update eases the camera toward its target's X/Y position.
func (cs *CameraSystem) Update(w *ecs.World) {
	if !ecs.IsAlive(w, cs.camEntity) {
		cs.camEntity, _ = ecs.First(w, component.CameraComponent)
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent)
	if !ok {
		return
	}

	if !ecs.IsAlive(w, cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, cam.TargetName)
	}
	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent)
	if !ok {
		return
	}

	s := cam.Smoothness
	if s <= 0 || s > 1 {
		s = 1
	}
	cam.X = common.Lerp(cam.X, target.Position.X(), s)
	cam.Y = common.Lerp(cam.Y, target.Position.Y(), s)
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name != "" {
		for _, e := range ecs.Query(w, component.EntityNameComponent) {
			if n, ok := ecs.Get(w, e, component.EntityNameComponent); ok && n.Name == name {
				return e
			}
		}
	}
	if name == "player" {
		if e, ok := ecs.First(w, component.PlayerTagComponent); ok {
			return e
		}
	}
	return 0
}
