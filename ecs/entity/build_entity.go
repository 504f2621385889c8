package entity

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpcontroller/controller"
	"github.com/milk9111/fpcontroller/ecs"
	"github.com/milk9111/fpcontroller/ecs/component"
	"github.com/milk9111/fpcontroller/prefabs"
)

// DefaultGravity is used when neither the level nor the caller sets one.
var DefaultGravity = controller.DefaultGravity

// BuildOptions carries what a prefab cannot know on its own.
type BuildOptions struct {
	// Gravity is the world gravity controllers scale their extra force from.
	// Nil means DefaultGravity; a zero vector is a real zero-gravity world.
	Gravity *mgl64.Vec3
	// Script, when set, replaces device input with the named tengo script.
	Script string
}

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
	Options    BuildOptions
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":              addPlayerTag,
	"camera_tag":              addCameraTag,
	"name":                    addName,
	"player":                  addPlayer,
	"input":                   addInput,
	"transform":               addTransform,
	"physics_body":            addPhysicsBody,
	"first_person_controller": addFirstPersonController,
	"cursor":                  addCursor,
	"scripted_input":          addScriptedInput,
	"line_render":             addLineRender,
	"camera":                  addCamera,
}

// cursor reads lock_cursor from the controller, so it comes after it.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"name",
	"player",
	"input",
	"transform",
	"physics_body",
	"first_person_controller",
	"cursor",
	"scripted_input",
	"line_render",
	"camera",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return BuildEntityWith(w, prefabPath, BuildOptions{})
}

func BuildEntityWith(w *ecs.World, prefabPath string, opts BuildOptions) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, prefabPath, spec, opts)
}

func buildFromSpec(w *ecs.World, prefabPath string, spec entityPrefabSpec, opts BuildOptions) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}
	if opts.Script != "" {
		remaining["scripted_input"] = map[string]any{"path": opts.Script}
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Options: opts}

	order := append([]string(nil), componentBuildOrder...)
	extra := make([]string, 0)
	for name := range remaining {
		if _, known := componentRegistry[name]; !known {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	order = append(order, extra...)

	for _, name := range order {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		builder, ok := componentRegistry[name]
		if !ok {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

// SetEntityTransform moves e, and its body if it already has one.
func SetEntityTransform(w *ecs.World, e ecs.Entity, pos mgl64.Vec3, yaw float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.Position = pos
	t.Yaw = yaw
	if bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok && bodyComp.Body != nil {
		bodyComp.Body.SetPosition(pos)
		bodyComp.Body.SetVelocity(mgl64.Vec3{})
		bodyComp.Body.SetYaw(yaw)
	}
	return ecs.Add(w, e, component.TransformComponent, t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent, &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent, &component.CameraTag{})
}

func addName(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.NameComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode name spec: %w", err)
	}
	return ecs.Add(w, e, component.EntityNameComponent, &component.EntityName{Name: spec.Name})
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	return ecs.Add(w, e, component.PlayerComponent, &component.Player{
		Prefab: ctx.PrefabPath,
		Debug:  spec.Debug,
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent, &component.Input{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent, &component.Transform{
		Position: mgl64.Vec3{spec.X, spec.Y, spec.Z},
		Yaw:      spec.Yaw(),
	})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpecInto(raw, prefabs.DefaultPhysicsBodySpec())
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Height <= 0 || spec.Radius <= 0 || spec.Height < 2*spec.Radius {
		return fmt.Errorf("capsule height %.2f radius %.2f is degenerate", spec.Height, spec.Radius)
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{
		Height: spec.Height,
		Radius: spec.Radius,
		Mass:   spec.Mass,
	})
}

func addFirstPersonController(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpecInto(raw, prefabs.DefaultControllerSpec())
	if err != nil {
		return fmt.Errorf("decode controller spec: %w", err)
	}
	cfg, err := spec.Config()
	if err != nil {
		return err
	}
	gravity := DefaultGravity
	if ctx.Options.Gravity != nil {
		gravity = *ctx.Options.Gravity
	}
	c, err := controller.New(cfg, controller.WithGravity(gravity))
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.FirstPersonControllerComponent, &component.FirstPersonController{Controller: c})
}

func addCursor(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	lock := false
	if fpc, ok := ecs.Get(w, e, component.FirstPersonControllerComponent); ok && fpc.Controller != nil {
		lock = fpc.Controller.Config().LockCursor
	}
	return ecs.Add(w, e, component.CursorComponent, &component.Cursor{Lock: lock})
}

func addScriptedInput(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ScriptedInputComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode scripted input spec: %w", err)
	}
	if spec.Path == "" {
		return fmt.Errorf("scripted_input needs a path")
	}
	return ecs.Add(w, e, component.ScriptedInputComponent, &component.ScriptedInput{Path: spec.Path})
}

func addLineRender(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LineRenderComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode line render spec: %w", err)
	}
	var c color.Color = color.White
	if spec.Color != nil && spec.Color.Color != nil {
		c = spec.Color.Color
	}
	width := spec.Width
	if width <= 0 {
		width = 1
	}
	return ecs.Add(w, e, component.LineRenderComponent, &component.LineRender{
		StartX:    spec.StartX,
		StartY:    spec.StartY,
		EndX:      spec.EndX,
		EndY:      spec.EndY,
		Width:     width,
		Color:     c,
		AntiAlias: spec.AntiAlias,
	})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 40
	}
	smooth := spec.Smoothness
	if smooth == 0 {
		smooth = 0.15
	}
	return ecs.Add(w, e, component.CameraComponent, &component.Camera{
		TargetName: spec.TargetName,
		Zoom:       zoom,
		Smoothness: smooth,
	})
}
