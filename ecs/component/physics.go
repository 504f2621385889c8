package component

import "github.com/milk9111/fpcontroller/physics"

// PhysicsBody links an entity to its capsule in the physics world. Body is
// nil until the physics system creates it.
type PhysicsBody struct {
	Body   *physics.Body
	Height float64
	Radius float64
	Mass   float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
