// Package scene describes a still scene as data and renders it: which
// textures and materials exist, how it is lit, and the ordered list of
// objects to draw.
package scene

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/stilllife/internal/engine/draw"
	"github.com/Faultbox/stilllife/internal/engine/lighting"
	"github.com/Faultbox/stilllife/internal/engine/material"
	"github.com/Faultbox/stilllife/internal/engine/mesh"
	"github.com/Faultbox/stilllife/pkg/math"
)

//go:embed kitchen.yaml
var kitchenScript []byte

// TextureSource names an image file and the tag it is registered under.
type TextureSource struct {
	Tag  string `yaml:"tag"`
	Path string `yaml:"path"`
}

// Step is one object in the draw list.
type Step struct {
	Name      string      `yaml:"name"`
	Primitive mesh.Kind   `yaml:"primitive"`
	Scale     [3]float32  `yaml:"scale"`
	Rotation  [3]float32  `yaml:"rotation"` // degrees about X, Y, Z
	Position  [3]float32  `yaml:"position"`
	Color     *[4]float32 `yaml:"color,omitempty"`
	Texture   string      `yaml:"texture,omitempty"`
	UV        [2]float32  `yaml:"uv,omitempty"`
	Material  string      `yaml:"material,omitempty"`
	Caps      *mesh.Caps  `yaml:"caps,omitempty"`
}

// Binding returns the surface state the step draws with.
func (s Step) Binding() draw.Binding {
	if s.Texture != "" {
		return draw.Textured(s.Texture, s.UV[0], s.UV[1], s.Material)
	}
	var c [4]float32
	if s.Color != nil {
		c = *s.Color
	}
	return draw.Colored(c[0], c[1], c[2], c[3], s.Material)
}

// DrawCaps returns the parts of the primitive to draw. Unset means all.
func (s Step) DrawCaps() mesh.Caps {
	if s.Caps == nil {
		return mesh.AllCaps
	}
	return *s.Caps
}

func (s Step) scale() math.Vec3    { return math.V3(s.Scale[0], s.Scale[1], s.Scale[2]) }
func (s Step) position() math.Vec3 { return math.V3(s.Position[0], s.Position[1], s.Position[2]) }

// label identifies the step in logs and errors.
func (s Step) label(i int) string {
	if s.Name == "" {
		return fmt.Sprintf("step %d", i)
	}
	return fmt.Sprintf("step %d (%s)", i, s.Name)
}

// Script is the complete description of a scene.
type Script struct {
	Textures  []TextureSource     `yaml:"textures"`
	Materials []material.Material `yaml:"materials"`
	Lights    lighting.Setup      `yaml:"lights"`
	Steps     []Step              `yaml:"steps"`
}

// Primitives returns the distinct primitives the steps draw, in first-use
// order.
func (s *Script) Primitives() []mesh.Kind {
	seen := make(map[mesh.Kind]bool)
	var kinds []mesh.Kind
	for _, st := range s.Steps {
		if !seen[st.Primitive] {
			seen[st.Primitive] = true
			kinds = append(kinds, st.Primitive)
		}
	}
	return kinds
}

// Parse decodes a YAML scene script. Unknown keys are rejected.
func Parse(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse scene script: %w", err)
	}
	return &s, nil
}

// LoadFile reads and parses a scene script from disk.
func LoadFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene script: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in kitchen still life.
func Default() (*Script, error) {
	return Parse(kitchenScript)
}

// Load returns the script at path, or the built-in scene when path is empty.
func Load(path string) (*Script, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}
