package formats

import (
	"fmt"

	"github.com/vovakirdan/forcegrid/internal/puzzle"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name,omitempty"`
	Message   string            `yaml:"message,omitempty"`
	Size      YAMLSize          `yaml:"size"`
	Default   string            `yaml:"default,omitempty"`
	Blocks    []YAMLBlock       `yaml:"blocks"`
	Surfaces  []YAMLSurface     `yaml:"surfaces,omitempty"`
	Solutions []string          `yaml:"solutions,omitempty"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLBlock places a block. Kind is a name or a number.
type YAMLBlock struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Kind string `yaml:"kind"`
}

// YAMLSurface sets a surface. S is a name, "goal:<kind>" or a number.
type YAMLSurface struct {
	X int    `yaml:"x"`
	Y int    `yaml:"y"`
	S string `yaml:"s"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	d := &puzzle.Definition{
		Width:          yl.Size.W,
		Height:         yl.Size.H,
		DefaultSurface: puzzle.DefaultSurface,
		Message:        yl.Message,
		Solutions:      yl.Solutions,
	}
	if yl.Default != "" {
		s, err := ParseSurface(yl.Default)
		if err != nil {
			return Level{}, fmt.Errorf("default surface: %w", err)
		}
		d.DefaultSurface = s
	}
	for i, b := range yl.Blocks {
		k, err := ParseKind(b.Kind)
		if err != nil {
			return Level{}, fmt.Errorf("block %d: %w", i, err)
		}
		d.Blocks = append(d.Blocks, puzzle.BlockSpec{Kind: k, Pos: puzzle.C(b.X, b.Y)})
	}
	for i, s := range yl.Surfaces {
		v, err := ParseSurface(s.S)
		if err != nil {
			return Level{}, fmt.Errorf("surface %d: %w", i, err)
		}
		d.Surfaces = append(d.Surfaces, puzzle.SurfaceSpec{Surface: v, Pos: puzzle.C(s.X, s.Y)})
	}
	if err := d.Validate(); err != nil {
		return Level{}, err
	}

	name := yl.Name
	if name == "" {
		name = yl.Message
	}
	return Level{ID: yl.ID, Name: name, Definition: d, Metadata: yl.Metadata}, nil
}

// MarshalYAML renders a level in the YAML format using kind and surface
// names where they exist.
func MarshalYAML(l Level) ([]byte, error) {
	d := l.Definition
	yl := YAMLLevel{
		ID:        l.ID,
		Name:      l.Name,
		Message:   d.Message,
		Size:      YAMLSize{W: d.Width, H: d.Height},
		Solutions: d.Solutions,
		Metadata:  l.Metadata,
	}
	if yl.Name == d.Message {
		yl.Name = ""
	}
	if d.DefaultSurface != puzzle.DefaultSurface {
		yl.Default = SurfaceName(d.DefaultSurface)
	}
	for _, b := range d.Blocks {
		yl.Blocks = append(yl.Blocks, YAMLBlock{X: b.Pos.X, Y: b.Pos.Y, Kind: KindName(b.Kind)})
	}
	for _, s := range d.Surfaces {
		yl.Surfaces = append(yl.Surfaces, YAMLSurface{X: s.Pos.X, Y: s.Pos.Y, S: SurfaceName(s.Surface)})
	}
	return yaml.Marshal(yl)
}
