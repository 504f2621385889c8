package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is the world pose of an entity. Yaw turns about the up axis;
// zero faces +Z.
type Transform struct {
	Position mgl64.Vec3
	Yaw      float64
}

var TransformComponent = NewComponent[Transform]()
