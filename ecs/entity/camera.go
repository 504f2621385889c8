package entity

import (
	"github.com/milk9111/fpcontroller/ecs"
)

const CameraPrefab = "camera.yaml"

func NewCamera(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, CameraPrefab)
}
