package prefabs

import (
	"fmt"
	"image/color"

	"github.com/mazznoer/csscolorparser"
	"github.com/milk9111/campus/controls"
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

type BindingsSpec struct {
	Bindings []BindingSpec `yaml:"bindings"`
}

type BindingSpec struct {
	ID             string   `yaml:"id"`
	Keys           []string `yaml:"keys"`
	PointerButtons []int    `yaml:"pointer_buttons"`
}

// Table converts the spec into a validated binding table.
func (s BindingsSpec) Table() (*controls.Table, error) {
	bindings := make([]controls.Binding, 0, len(s.Bindings))
	for _, b := range s.Bindings {
		var keys []controls.KeyCode
		for _, k := range b.Keys {
			keys = append(keys, controls.KeyCode(k))
		}
		var buttons []controls.Button
		for _, btn := range b.PointerButtons {
			buttons = append(buttons, controls.Button(btn))
		}
		bindings = append(bindings, controls.Binding{ID: b.ID, Keys: keys, Buttons: buttons})
	}
	return controls.NewTable(bindings...)
}

// LoadBindings loads a bindings spec and builds its table.
func LoadBindings(filename string) (*controls.Table, error) {
	spec, err := LoadSpec[BindingsSpec](filename)
	if err != nil {
		return nil, err
	}
	table, err := spec.Table()
	if err != nil {
		return nil, fmt.Errorf("prefabs: bindings %s: %w", filename, err)
	}
	return table, nil
}

type HUDSpec struct {
	Location LocationPanelSpec `yaml:"location"`
	Minimap  MinimapSpec       `yaml:"minimap"`
}

// LocationPanelSpec sizes are in reference pixels at 1920x1080.
type LocationPanelSpec struct {
	X        float64   `yaml:"x"`
	Y        float64   `yaml:"y"`
	Width    float64   `yaml:"width"`
	Height   float64   `yaml:"height"`
	Heading  string    `yaml:"heading"`
	Outdoors string    `yaml:"outdoors"`
	Team     string    `yaml:"team"`
	Text     YAMLColor `yaml:"text_color"`
	Border   YAMLColor `yaml:"border_color"`
	TeamTint YAMLColor `yaml:"team_color"`
}

type MinimapSpec struct {
	Size       float64   `yaml:"size"`
	Margin     float64   `yaml:"margin"`
	Scale      float64   `yaml:"scale"`
	Background YAMLColor `yaml:"background"`
	Building   YAMLColor `yaml:"building"`
	Wall       YAMLColor `yaml:"wall"`
	Player     YAMLColor `yaml:"player"`
}

func LoadHUDSpec() (*HUDSpec, error) {
	spec, err := LoadSpec[HUDSpec]("hud.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type PlayerSpec struct {
	Name             string    `yaml:"name"`
	Radius           float64   `yaml:"radius"`
	WalkSpeed        float64   `yaml:"walk_speed"`
	SprintMultiplier float64   `yaml:"sprint_multiplier"`
	Color            YAMLColor `yaml:"color"`
	Shot             ShotSpec  `yaml:"shot"`
}

type ShotSpec struct {
	Speed          float64   `yaml:"speed"`
	LifeFrames     int       `yaml:"life_frames"`
	CooldownFrames int       `yaml:"cooldown_frames"`
	Radius         float64   `yaml:"radius"`
	Color          YAMLColor `yaml:"color"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Radius <= 0 || spec.WalkSpeed <= 0 {
		return nil, fmt.Errorf("prefabs: player.yaml: radius and walk_speed must be positive")
	}
	if spec.SprintMultiplier <= 0 {
		spec.SprintMultiplier = 1
	}
	return &spec, nil
}

// YAMLColor accepts any CSS color string: "#rrggbb", "#rrggbbaa", names,
// "rgb(...)" or "hsl(350, 100%, 45%)".
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	parsed, err := csscolorparser.Parse(value.Value)
	if err != nil {
		return fmt.Errorf("invalid color format: %s: %w", value.Value, err)
	}

	r, g, b, a := parsed.RGBA255()
	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the color, or fallback when unset.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}
