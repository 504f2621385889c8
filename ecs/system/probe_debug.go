package system

import (
	"image/color"

	"github.com/milk9111/fpcontroller/ecs"
	"github.com/milk9111/fpcontroller/ecs/component"
)

var (
	probeGroundedColor = color.RGBA{G: 255, A: 255}
	probeAirborneColor = color.RGBA{R: 255, A: 255}
)

const probeLineWidth = 2

// ProbeDebugSystem mirrors each controller's last ground probe into its
// LineRender: green while grounded, red otherwise.
type ProbeDebugSystem struct{}

func NewProbeDebugSystem() *ProbeDebugSystem {
	return &ProbeDebugSystem{}
}

func (p *ProbeDebugSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.FirstPersonControllerComponent, component.LineRenderComponent, func(_ ecs.Entity, fpc *component.FirstPersonController, line *component.LineRender) {
		if fpc.Controller == nil {
			return
		}
		probe := fpc.Last.Probe
		end := probe.Origin.Add(probe.Direction.Mul(probe.Length))

		line.StartX = probe.Origin.X()
		line.StartY = probe.Origin.Y()
		line.EndX = end.X()
		line.EndY = end.Y()
		line.Width = probeLineWidth
		line.AntiAlias = true
		if fpc.Controller.Grounded() {
			line.Color = probeGroundedColor
		} else {
			line.Color = probeAirborneColor
		}
	})
}
