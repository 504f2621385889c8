package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpcontroller/physics"
)

// Level marks the entity that owns the loaded level and its physics world.
type Level struct {
	Name  string
	World *physics.World
	Spawn mgl64.Vec3
	Yaw   float64
}

var LevelComponent = NewComponent[Level]()
