package entity

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpcontroller/ecs"
	"github.com/milk9111/fpcontroller/ecs/component"
	"github.com/milk9111/fpcontroller/levels"
	"github.com/milk9111/fpcontroller/physics"
)

// NewLevelWorld builds the static physics world described by lvl.
func NewLevelWorld(lvl *levels.Level) (*physics.World, error) {
	if lvl == nil {
		return nil, fmt.Errorf("level: nil level")
	}
	world := physics.NewWorld(lvl.GravityVec(DefaultGravity))

	for _, b := range lvl.Boxes {
		s := physics.Surface{Name: b.Name, Friction: b.Friction, Elasticity: b.Elasticity}
		if _, err := world.AddBox(s, mgl64.Vec2(b.Min), mgl64.Vec2(b.Max)); err != nil {
			return nil, fmt.Errorf("level %s: box %q: %w", lvl.Name, b.Name, err)
		}
	}
	for _, p := range lvl.Polygons {
		verts := make([]mgl64.Vec2, len(p.Points))
		for i, pt := range p.Points {
			verts[i] = mgl64.Vec2(pt)
		}
		s := physics.Surface{Name: p.Name, Friction: p.Friction, Elasticity: p.Elasticity}
		if _, err := world.AddPolygon(s, verts); err != nil {
			return nil, fmt.Errorf("level %s: polygon %q: %w", lvl.Name, p.Name, err)
		}
	}
	for _, t := range lvl.Triggers {
		s := physics.Surface{Name: t.Name, Trigger: true}
		if _, err := world.AddBox(s, mgl64.Vec2(t.Min), mgl64.Vec2(t.Max)); err != nil {
			return nil, fmt.Errorf("level %s: trigger %q: %w", lvl.Name, t.Name, err)
		}
	}
	return world, nil
}

// BuildLevel creates the level entity and any prefabs the level places.
func BuildLevel(w *ecs.World, lvl *levels.Level) (ecs.Entity, error) {
	world, err := NewLevelWorld(lvl)
	if err != nil {
		return 0, err
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.LevelTagComponent, &component.LevelTag{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.LevelComponent, &component.Level{
		Name:  lvl.Name,
		World: world,
		Spawn: lvl.SpawnPosition(),
		Yaw:   lvl.Spawn.YawDegrees * math.Pi / 180,
	}); err != nil {
		return 0, err
	}

	gravity := world.Gravity()
	opts := BuildOptions{Gravity: &gravity}
	for _, placed := range lvl.Entities {
		pe, err := BuildEntityWith(w, placed.Prefab, opts)
		if err != nil {
			return 0, fmt.Errorf("level %s: %w", lvl.Name, err)
		}
		t, _ := ecs.Get(w, pe, component.TransformComponent)
		yaw := 0.0
		if t != nil {
			yaw = t.Yaw
		}
		if err := SetEntityTransform(w, pe, mgl64.Vec3{placed.X, placed.Y, placed.Z}, yaw); err != nil {
			return 0, err
		}
	}
	return e, nil
}
