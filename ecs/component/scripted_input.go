package component

import "github.com/milk9111/fpcontroller/script"

// ScriptedInput replaces device input with a tengo script. Script is loaded
// lazily from Path.
type ScriptedInput struct {
	Path   string
	Script *script.InputScript
	Tick   int
	Time   float64
	Failed bool
}

var ScriptedInputComponent = NewComponent[ScriptedInput]()
