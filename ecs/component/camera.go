package component

// Camera follows a named entity in the side (X/Y) debug view.
type Camera struct {
	TargetName string
	Zoom       float64
	Smoothness float64
	X          float64
	Y          float64
}

var CameraComponent = NewComponent[Camera]()

// EntityName lets systems find entities by the name given in prefabs.
type EntityName struct {
	Name string
}

var EntityNameComponent = NewComponent[EntityName]()
