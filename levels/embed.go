package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

//go:embed *.json
var LevelsFS embed.FS

const DefaultLevel = "playground"

var ErrInvalidLevel = errors.New("invalid level")

// Level is a side-on level: shapes live in the X/Y plane and extend along Z.
type Level struct {
	Name     string     `json:"name"`
	Gravity  []float64  `json:"gravity,omitempty"`
	Spawn    Spawn      `json:"spawn"`
	Boxes    []Box      `json:"boxes,omitempty"`
	Polygons []Polygon  `json:"polygons,omitempty"`
	Triggers []Box      `json:"triggers,omitempty"`
	Entities []Entity   `json:"entities,omitempty"`
	Meta     *LevelMeta `json:"meta,omitempty"`
}

type LevelMeta struct {
	Description string `json:"description,omitempty"`
}

type Spawn struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	YawDegrees float64 `json:"yaw_degrees"`
}

type Box struct {
	Name       string     `json:"name"`
	Min        [2]float64 `json:"min"`
	Max        [2]float64 `json:"max"`
	Friction   float64    `json:"friction"`
	Elasticity float64    `json:"elasticity,omitempty"`
}

type Polygon struct {
	Name       string       `json:"name"`
	Points     [][2]float64 `json:"points"`
	Friction   float64      `json:"friction"`
	Elasticity float64      `json:"elasticity,omitempty"`
}

// Entity places an extra prefab in the level.
type Entity struct {
	Prefab string  `json:"prefab"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
}

// GravityVec returns the level's gravity, or def when none is set.
func (l *Level) GravityVec(def mgl64.Vec3) mgl64.Vec3 {
	if l == nil || len(l.Gravity) != 3 {
		return def
	}
	return mgl64.Vec3{l.Gravity[0], l.Gravity[1], l.Gravity[2]}
}

func (l *Level) SpawnPosition() mgl64.Vec3 {
	return mgl64.Vec3{l.Spawn.X, l.Spawn.Y, l.Spawn.Z}
}

func (l *Level) Validate() error {
	if len(l.Gravity) != 0 && len(l.Gravity) != 3 {
		return fmt.Errorf("%w: gravity needs 3 components, got %d", ErrInvalidLevel, len(l.Gravity))
	}
	if len(l.Boxes) == 0 && len(l.Polygons) == 0 {
		return fmt.Errorf("%w: %q has no solid geometry", ErrInvalidLevel, l.Name)
	}
	for _, p := range l.Polygons {
		if len(p.Points) < 3 {
			return fmt.Errorf("%w: polygon %q has %d points", ErrInvalidLevel, p.Name, len(p.Points))
		}
	}
	return nil
}

// Load reads a level by base name (".json" optional), preferring a copy on
// disk under levels/ over the embedded one.
func Load(name string) (*Level, error) {
	clean := cleanLevelName(name)
	data, err := os.ReadFile(filepath.Join("levels", clean))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
	}
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", clean, err)
	}
	return Parse(clean, data)
}

func Parse(name string, data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level %s: %w", name, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(name, ".json")
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Names lists the embedded levels.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".json") {
			out = append(out, strings.TrimSuffix(e.Name(), ".json"))
		}
	}
	return out
}

func cleanLevelName(name string) string {
	s := filepath.ToSlash(strings.TrimSpace(name))
	if s == "" {
		s = DefaultLevel
	}
	s = strings.TrimPrefix(s, "levels/")
	if !strings.HasSuffix(s, ".json") {
		s += ".json"
	}
	return s
}
