package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PlayerSpec is the part of a player prefab the headless runner needs.
type PlayerSpec struct {
	Name       string
	Transform  TransformComponentSpec
	Body       PhysicsBodyComponentSpec
	Controller ControllerComponentSpec
	Script     string
}

func LoadPlayerSpec(filename string) (*PlayerSpec, error) {
	build, err := LoadEntityBuildSpec(filename)
	if err != nil {
		return nil, err
	}

	spec := &PlayerSpec{Name: build.Name}
	if spec.Transform, err = DecodeComponentSpec[TransformComponentSpec](build.Components["transform"]); err != nil {
		return nil, fmt.Errorf("prefabs: %s transform: %w", filename, err)
	}
	if spec.Body, err = DecodeComponentSpecInto(build.Components["physics_body"], DefaultPhysicsBodySpec()); err != nil {
		return nil, fmt.Errorf("prefabs: %s physics_body: %w", filename, err)
	}
	if spec.Controller, err = DecodeComponentSpecInto(build.Components["first_person_controller"], DefaultControllerSpec()); err != nil {
		return nil, fmt.Errorf("prefabs: %s first_person_controller: %w", filename, err)
	}
	scripted, err := DecodeComponentSpec[ScriptedInputComponentSpec](build.Components["scripted_input"])
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s scripted_input: %w", filename, err)
	}
	spec.Script = scripted.Path
	return spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseHexColor parses #rrggbb or #rrggbbaa.
func ParseHexColor(v string) (color.Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("invalid color format: %q", v)
	}
	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}
	r, err := parse(0)
	if err != nil {
		return nil, fmt.Errorf("parse red component: %w", err)
	}
	g, err := parse(2)
	if err != nil {
		return nil, fmt.Errorf("parse green component: %w", err)
	}
	b, err := parse(4)
	if err != nil {
		return nil, fmt.Errorf("parse blue component: %w", err)
	}
	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return nil, fmt.Errorf("parse alpha component: %w", err)
		}
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
