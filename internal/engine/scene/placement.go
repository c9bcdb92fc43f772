package scene

import (
	"github.com/Faultbox/attic3d/internal/engine/mesh"
	"github.com/Faultbox/attic3d/internal/engine/transform"
	"github.com/Faultbox/attic3d/pkg/math"
)

// Placement is one declarative draw: which mesh, where, and with what
// surface state. Zero values mean "not set": no material change, no texture,
// UV scale 1, no offset, no tint, lit.
type Placement struct {
	Name      string              `yaml:"name" toml:"name"`
	Material  string              `yaml:"material,omitempty" toml:"material,omitempty"`
	Mesh      mesh.Kind           `yaml:"mesh" toml:"mesh"`
	Transform transform.Transform `yaml:"transform" toml:"transform"`
	Texture   string              `yaml:"texture,omitempty" toml:"texture,omitempty"`
	UVScale   math.Vec2           `yaml:"uv_scale,omitempty" toml:"uv_scale,omitempty"`
	UVOffset  math.Vec2           `yaml:"uv_offset,omitempty" toml:"uv_offset,omitempty"`
	Color     *math.Vec4          `yaml:"color,omitempty" toml:"color,omitempty"`
	Emissive  *math.Vec3          `yaml:"emissive,omitempty" toml:"emissive,omitempty"`
	Tint      float32             `yaml:"tint,omitempty" toml:"tint,omitempty"`
	Unlit     bool                `yaml:"unlit,omitempty" toml:"unlit,omitempty"`
}

// Script is an ordered list of placements.
type Script []Placement

// uvScale returns the UV scale to push, defaulting to 1×1.
func (p *Placement) uvScale() math.Vec2 {
	if p.UVScale.IsZero() {
		return math.V2(1, 1)
	}
	return p.UVScale
}

// Count returns the number of placements per mesh kind.
func (s Script) Count() map[mesh.Kind]int {
	out := make(map[mesh.Kind]int)
	for _, p := range s {
		out[p.Mesh]++
	}
	return out
}

// Materials returns the distinct material tags in first-use order.
func (s Script) Materials() []string {
	return s.distinct(func(p *Placement) string { return p.Material })
}

// Textures returns the distinct texture tags in first-use order.
func (s Script) Textures() []string {
	return s.distinct(func(p *Placement) string { return p.Texture })
}

func (s Script) distinct(field func(*Placement) string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range s {
		v := field(&s[i])
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// rgba builds a colour from 0-255 channels and a 0-1 alpha.
func rgba(r, g, b, a float32) *math.Vec4 {
	return &math.Vec4{r / 255, g / 255, b / 255, a}
}

func gray(v float32) *math.Vec4 {
	return rgba(v, v, v, 1)
}
