package component

import "github.com/milk9111/fpcontroller/controller"

// Input stores per-tick input state for an entity.
type Input struct {
	Horizontal float64
	Vertical   float64
	Jump       bool
	Modifier   bool
	// Turn is a yaw delta in radians for this tick.
	Turn            float64
	PointerReleased bool
}

func (in Input) Controller() controller.Input {
	return controller.Input{
		Horizontal: in.Horizontal,
		Vertical:   in.Vertical,
		Jump:       in.Jump,
		Modifier:   in.Modifier,
	}
}

var InputComponent = NewComponent[Input]()
