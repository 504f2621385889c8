package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/fpcontroller/ecs"
	"github.com/milk9111/fpcontroller/ecs/component"
)

const (
	stickDeadzone    = 0.2
	keyTurnRate      = 0.05
	stickTurnRate    = 0.06
	mouseSensitivity = 0.003
)

// InputSystem reads keyboard, mouse and the first gamepad into every Input
// that is not driven by a script.
type InputSystem struct {
	lastCursorX int
	hasCursor   bool
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	horizontal := 0.0
	vertical := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		horizontal -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		horizontal += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		vertical += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		vertical -= 1
	}
	jump := ebiten.IsKeyPressed(ebiten.KeySpace)
	modifier := ebiten.IsKeyPressed(ebiten.KeyShiftLeft)
	released := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	turn := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		turn -= keyTurnRate
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		turn += keyTurnRate
	}
	turn += i.mouseTurn()

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		leftY := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(leftX, leftY) > stickDeadzone {
			horizontal = leftX
			// stick up is negative
			vertical = -leftY
		}
		rightX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		if math.Abs(rightX) > stickDeadzone {
			turn += rightX * stickTurnRate
		}

		jump = jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		modifier = modifier || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftStick)
		released = released || inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonFrontBottomRight)
	}

	ecs.ForEach(w, component.InputComponent, func(e ecs.Entity, input *component.Input) {
		if ecs.Has(w, e, component.ScriptedInputComponent) {
			return
		}
		input.Horizontal = horizontal
		input.Vertical = vertical
		input.Jump = jump
		input.Modifier = modifier
		input.Turn = turn
		input.PointerReleased = released
	})
}

// mouseTurn converts horizontal cursor motion to yaw while the cursor is captured.
func (i *InputSystem) mouseTurn() float64 {
	x, _ := ebiten.CursorPosition()
	if ebiten.CursorMode() != ebiten.CursorModeCaptured {
		i.hasCursor = false
		return 0
	}
	if !i.hasCursor {
		i.lastCursorX = x
		i.hasCursor = true
		return 0
	}
	dx := x - i.lastCursorX
	i.lastCursorX = x
	return float64(dx) * mouseSensitivity
}
