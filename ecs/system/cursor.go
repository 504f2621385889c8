package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/fpcontroller/ecs"
	"github.com/milk9111/fpcontroller/ecs/component"
)

// CursorSystem captures the pointer on pointer release when the controller
// asks for it and lets it go whenever the controller is disabled.
type CursorSystem struct {
	applied  bool
	captured bool
}

func NewCursorSystem() *CursorSystem {
	return &CursorSystem{}
}

func (c *CursorSystem) Update(w *ecs.World) {
	if c == nil || w == nil {
		return
	}

	want := false
	ecs.ForEach2(w, component.CursorComponent, component.InputComponent, func(e ecs.Entity, cursor *component.Cursor, input *component.Input) {
		UpdateCursor(w, e, cursor, input)
		want = want || cursor.Captured
	})
	c.apply(want)
}

// UpdateCursor applies one tick of capture rules to cursor.
func UpdateCursor(w *ecs.World, e ecs.Entity, cursor *component.Cursor, input *component.Input) {
	if input.PointerReleased {
		cursor.Captured = cursor.Lock
	}
	if fpc, ok := ecs.Get(w, e, component.FirstPersonControllerComponent); ok && fpc.Controller != nil && !fpc.Controller.Enabled() {
		cursor.Captured = false
	}
}

// Release frees the pointer regardless of component state.
func (c *CursorSystem) Release() {
	if c == nil {
		return
	}
	c.apply(false)
}

func (c *CursorSystem) apply(captured bool) {
	if c.applied && c.captured == captured {
		return
	}
	c.applied = true
	c.captured = captured
	if captured {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}
