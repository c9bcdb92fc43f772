// Package material holds the Phong material catalog and pushes the selected
// material to the scene shader.
package material

import "github.com/Faultbox/attic3d/pkg/math"

// Material is a named set of Phong shading parameters.
type Material struct {
	Tag             string    `yaml:"tag" toml:"tag"`
	AmbientColor    math.Vec3 `yaml:"ambient_color" toml:"ambient_color"`
	AmbientStrength float32   `yaml:"ambient_strength" toml:"ambient_strength"`
	DiffuseColor    math.Vec3 `yaml:"diffuse_color" toml:"diffuse_color"`
	SpecularColor   math.Vec3 `yaml:"specular_color" toml:"specular_color"`
	Shininess       float32   `yaml:"shininess" toml:"shininess"`
	EmissiveColor   math.Vec3 `yaml:"emissive_color" toml:"emissive_color"`
	// Tint, when set, multiplies the surface colour by this amount.
	Tint *float32 `yaml:"tint,omitempty" toml:"tint,omitempty"`
}

// DefaultTexturedTags lists the materials whose surfaces sample a texture.
var DefaultTexturedTags = []string{"floor", "wall", "ceiling", "sofa", "rug"}
