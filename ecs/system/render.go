package system

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/fpcontroller/ecs"
	"github.com/milk9111/fpcontroller/ecs/component"
	"github.com/milk9111/fpcontroller/physics"
)

const defaultZoom = 40

// sideView maps world X/Y (Y up) to screen pixels centred on the camera.
type sideView struct {
	camX  float64
	camY  float64
	zoom  float64
	halfW float64
	halfH float64
}

func (v sideView) toScreen(x, y float64) (float64, float64) {
	return (x-v.camX)*v.zoom + v.halfW, v.halfH - (y-v.camY)*v.zoom
}

func cameraView(w *ecs.World, screen *ebiten.Image) sideView {
	b := screen.Bounds()
	v := sideView{zoom: defaultZoom, halfW: float64(b.Dx()) / 2, halfH: float64(b.Dy()) / 2}
	camEntity, ok := ecs.First(w, component.CameraComponent)
	if !ok {
		return v
	}
	if cam, ok := ecs.Get(w, camEntity, component.CameraComponent); ok {
		v.camX = cam.X
		v.camY = cam.Y
		if cam.Zoom > 0 {
			v.zoom = cam.Zoom
		}
	}
	return v
}

// RenderSystem draws the side view of the level: shapes, line renders and,
// in debug mode, the controller HUD.
type RenderSystem struct {
	Debug bool
}

func NewRenderSystem(debug bool) *RenderSystem {
	return &RenderSystem{Debug: debug}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	v := cameraView(w, screen)

	if world := levelWorld(w); world != nil {
		DrawPhysicsDebug(world.Space(), v, screen)
	}

	if r.Debug {
		ecs.ForEach(w, component.LineRenderComponent, func(_ ecs.Entity, line *component.LineRender) {
			if line.Width <= 0 || line.Color == nil {
				return
			}
			x1, y1 := v.toScreen(line.StartX, line.StartY)
			x2, y2 := v.toScreen(line.EndX, line.EndY)
			vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), line.Width, line.Color, line.AntiAlias)
		})
		DrawControllerDebug(w, screen)
	}
}

// DrawControllerDebug prints the player's controller state in the corner.
func DrawControllerDebug(w *ecs.World, screen *ebiten.Image) {
	player, ok := ecs.First(w, component.PlayerTagComponent)
	if !ok {
		return
	}
	fpc, ok := ecs.Get(w, player, component.FirstPersonControllerComponent)
	if !ok || fpc.Controller == nil {
		return
	}
	var body *physics.Body
	if bodyComp, ok := ecs.Get(w, player, component.PhysicsBodyComponent); ok {
		body = bodyComp.Body
	}

	last := fpc.Controller.LastInput()
	text := fmt.Sprintf("Grounded: %v\nInput: (%.2f, %.2f)\nMaterial: %s\nEnabled: %v",
		fpc.Controller.Grounded(), last.X(), last.Y(), fpc.Last.Material.Name, fpc.Controller.Enabled())
	if body != nil {
		p := body.Position()
		vel := body.Velocity()
		text += fmt.Sprintf("\nPosition: (%.2f, %.2f, %.2f)\nVelocity: (%.2f, %.2f, %.2f)\nYaw: %.2f",
			p.X(), p.Y(), p.Z(), vel.X(), vel.Y(), vel.Z(), body.Yaw())
	}
	text += fmt.Sprintf("\nTPS: %.0f", ebiten.ActualTPS())
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}
