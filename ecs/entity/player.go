package entity

import (
	"fmt"

	"github.com/milk9111/fpcontroller/ecs"
	"github.com/milk9111/fpcontroller/ecs/component"
)

const PlayerPrefab = "player.yaml"

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, PlayerPrefab)
}

// NewPlayerInLevel builds the player at the level's spawn, using the level's
// gravity for its controller.
func NewPlayerInLevel(w *ecs.World, prefab string, opts BuildOptions) (ecs.Entity, error) {
	if prefab == "" {
		prefab = PlayerPrefab
	}
	levelEntity, ok := ecs.First(w, component.LevelComponent)
	if !ok {
		return 0, fmt.Errorf("player: no level loaded")
	}
	level, _ := ecs.Get(w, levelEntity, component.LevelComponent)
	if level.World != nil {
		gravity := level.World.Gravity()
		opts.Gravity = &gravity
	}

	player, err := BuildEntityWith(w, prefab, opts)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, player, level.Spawn, level.Yaw); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return player, nil
}
