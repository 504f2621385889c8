package component

import "github.com/milk9111/fpcontroller/controller"

type FirstPersonController struct {
	Controller *controller.Controller
	Last       controller.TickResult
}

var FirstPersonControllerComponent = NewComponent[FirstPersonController]()
