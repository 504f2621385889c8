package main

import (
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/fpcontroller/common"
	"github.com/milk9111/fpcontroller/ecs"
	"github.com/milk9111/fpcontroller/ecs/component"
	"github.com/milk9111/fpcontroller/ecs/entity"
	"github.com/milk9111/fpcontroller/ecs/system"
	"github.com/milk9111/fpcontroller/levels"
	"github.com/milk9111/fpcontroller/prefabs"
)

const (
	tps = 60
	dt  = 1.0 / tps
)

var backgroundColor = color.NRGBA{R: 0x1c, G: 0x1f, B: 0x26, A: 0xff}

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
	cursor    *system.CursorSystem
	eventLog  *system.ControllerEventLogSystem

	levelName  string
	scriptName string
	debug      bool

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher
}

func NewGame(levelName, scriptName string, debug, watch bool) (*Game, error) {
	g := &Game{
		levelName:  levelName,
		scriptName: scriptName,
		debug:      debug,
		render:     system.NewRenderSystem(debug),
		cursor:     system.NewCursorSystem(),
		eventLog:   system.NewControllerEventLogSystem(debug),
	}
	if err := g.load(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if watch {
		g.watcher = newWatcher()
	}
	return g, nil
}

// load rebuilds the whole ECS world from the level and prefabs.
func (g *Game) load() error {
	lvl, err := levels.Load(g.levelName)
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	if _, err := entity.BuildLevel(w, lvl); err != nil {
		return err
	}
	player, err := entity.NewPlayerInLevel(w, entity.PlayerPrefab, entity.BuildOptions{Script: g.scriptName})
	if err != nil {
		return err
	}
	if _, err := entity.NewCamera(w); err != nil {
		return err
	}
	if p, ok := ecs.Get(w, player, component.PlayerComponent); ok && p.Debug {
		g.setDebug(true)
	}

	g.world = w
	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewScriptInputSystem(dt, prefabs.LoadScript),
		system.NewPlayerControllerSystem(dt),
		system.NewPhysicsSystem(dt),
		system.NewCameraSystem(),
		system.NewProbeDebugSystem(),
		g.cursor,
		g.eventLog,
	)
	if t, ok := ecs.Get(w, player, component.TransformComponent); ok {
		log.Printf("Game: loaded level %q, player %v at (%.2f, %.2f, %.2f)", lvl.Name, player, t.Position.X(), t.Position.Y(), t.Position.Z())
	}
	return nil
}

func (g *Game) Update() error {
	if g.quit {
		g.cursor.Release()
		if g.watcher != nil {
			_ = g.watcher.Close()
		}
		return ebiten.Termination
	}

	g.pollWatcher()
	if _, ok := ecs.First(g.world, component.ReloadRequestComponent); ok {
		g.reload()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.setDebug(!g.debug)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.requestReload()
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.render.Draw(g.world, screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	system.SetControllersEnabled(g.world, !paused)
	if paused {
		g.cursor.Release()
		g.pauseUI = NewPauseUI(g)
	}
}

func (g *Game) setDebug(debug bool) {
	g.debug = debug
	g.render.Debug = debug
	g.eventLog.Enabled = debug
}

func (g *Game) requestReload() {
	e := ecs.CreateEntity(g.world)
	if err := ecs.Add(g.world, e, component.ReloadRequestComponent, &component.ReloadRequest{}); err != nil {
		log.Printf("Game: request reload: %v", err)
	}
}

// reload swaps in a fresh world. A broken prefab or level keeps the old one.
func (g *Game) reload() {
	old, oldScheduler := g.world, g.scheduler
	if err := g.load(); err != nil {
		log.Printf("Game: reload failed, keeping current world: %v", err)
		g.world, g.scheduler = old, oldScheduler
		for _, e := range ecs.Query(old, component.ReloadRequestComponent) {
			ecs.DestroyEntity(old, e)
		}
		return
	}
	g.setPaused(false)
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("Game: %s changed: %s", change.Kind, change.Path)
			g.requestReload()
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("Game: watch: %v", err)
		default:
			return
		}
	}
}

func newWatcher() *prefabs.Watcher {
	dirs := make([]string, 0, 3)
	for _, dir := range []string{prefabs.Dir, prefabs.Dir + "/scripts", "levels"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return nil
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Printf("Game: hot reload disabled: %v", err)
		return nil
	}
	return w
}

func (g *Game) playerConfigText() string {
	player, ok := ecs.First(g.world, component.PlayerTagComponent)
	if !ok {
		return "no player"
	}
	fpc, ok := ecs.Get(g.world, player, component.FirstPersonControllerComponent)
	if !ok || fpc.Controller == nil {
		return "no controller"
	}
	cfg := fpc.Controller.Config()
	return fmt.Sprintf("run %.1f  jog %.1f  walk %.1f\nstrafe %.1f / %.1f / %.1f\njump %.1f  gravity x%.1f  sticky %.1f\nwalk by default %v  lock cursor %v",
		cfg.RunSpeed, cfg.JogSpeed, cfg.WalkSpeed,
		cfg.RunStrafeSpeed, cfg.JogStrafeSpeed, cfg.WalkStrafeSpeed,
		cfg.JumpPower, cfg.GravityMultiplier, cfg.GroundStickyEffect,
		cfg.WalkByDefault, cfg.LockCursor)
}
