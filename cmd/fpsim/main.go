// Command fpsim runs the first-person controller headless: it loads a level
// and the player prefab, drives the player with a tengo script for a fixed
// number of ticks and logs every ground transition.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/milk9111/fpcontroller/levels"
	"github.com/milk9111/fpcontroller/prefabs"
)

func main() {
	levelName := flag.String("level", levels.DefaultLevel, "level name in levels/ (basename, .json optional)")
	scriptName := flag.String("script", "jog_and_jump", "tengo script in prefabs/scripts that drives the player")
	prefab := flag.String("prefab", "player.yaml", "player prefab")
	ticks := flag.Int("ticks", 600, "number of fixed ticks to run")
	every := flag.Int("every", 0, "also log the body state every n ticks (0 disables)")
	flag.Parse()

	log.SetFlags(0)
	summary, err := run(simOptions{
		Level:  *levelName,
		Script: *scriptName,
		Prefab: *prefab,
		Ticks:  *ticks,
		Every:  *every,
		Load:   prefabs.LoadScript,
		Logf:   log.Printf,
	})
	if err != nil {
		log.Printf("fpsim: %v", err)
		os.Exit(1)
	}
	log.Printf("fpsim: %s", summary)
}
