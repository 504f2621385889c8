// Package script drives controller input from tengo scripts.
//
// A script defines update(frame, state) and returns a map with any of
// horizontal, vertical, jump and modifier. state is a map that survives
// between ticks.
package script

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpcontroller/controller"
)

var ErrNoUpdate = errors.New("script: update is not defined")

const dispatchScript = `
__out := undefined
if __phase == "update" {
	__out = update(__frame, __state)
}
`

// Frame is what a script sees about the body it drives.
type Frame struct {
	Tick     int
	Time     float64
	Grounded bool
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

type InputScript struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

// Compile prepares src for per-tick evaluation.
func Compile(name string, src []byte) (*InputScript, error) {
	if err := checkUpdate(src); err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + dispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__frame", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}

	s := &InputScript{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	return s, nil
}

// checkUpdate runs src on its own so a missing update surfaces as
// ErrNoUpdate instead of an unresolved reference in the dispatcher.
func checkUpdate(src []byte) error {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	compiled, err := script.Run()
	if err != nil {
		return err
	}
	if !compiled.IsDefined("update") {
		return ErrNoUpdate
	}
	return nil
}

func (s *InputScript) Name() string {
	return s.name
}

// Next runs update for one tick and converts its result to controller input.
func (s *InputScript) Next(f Frame) (controller.Input, error) {
	if s == nil || s.compiled == nil {
		return controller.Input{}, errors.New("script: nil input script")
	}
	if err := s.run("update", f); err != nil {
		return controller.Input{}, fmt.Errorf("script %s tick %d: %w", s.name, f.Tick, err)
	}
	out := s.compiled.Get("__out")
	if out.IsUndefined() {
		return controller.Input{}, nil
	}
	m, ok := out.Value().(map[string]any)
	if !ok {
		return controller.Input{}, fmt.Errorf("script %s tick %d: update returned %s, want map", s.name, f.Tick, out.ValueType())
	}
	return controller.Input{
		Horizontal: axis(m["horizontal"]),
		Vertical:   axis(m["vertical"]),
		Jump:       flag(m["jump"]),
		Modifier:   flag(m["modifier"]),
	}, nil
}

func (s *InputScript) run(phase string, f Frame) error {
	if err := s.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := s.compiled.Set("__frame", frameObject(f)); err != nil {
		return err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return err
	}
	return s.compiled.Run()
}

func frameObject(f Frame) *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"tick":     &tengo.Int{Value: int64(f.Tick)},
		"time":     &tengo.Float{Value: f.Time},
		"grounded": boolObject(f.Grounded),
		"position": vecObject(f.Position),
		"velocity": vecObject(f.Velocity),
	}}
}

func vecObject(v mgl64.Vec3) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: v.X()},
		&tengo.Float{Value: v.Y()},
		&tengo.Float{Value: v.Z()},
	}}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func axis(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int64:
		f = float64(n)
	case bool:
		if n {
			f = 1
		}
	default:
		return 0
	}
	if math.IsNaN(f) {
		return 0
	}
	return math.Max(-1, math.Min(1, f))
}

func flag(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	case string:
		return strings.EqualFold(b, "true")
	}
	return false
}
