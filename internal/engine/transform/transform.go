// Package transform builds model matrices from scale, Euler angles and position.
package transform

import (
	"github.com/Faultbox/attic3d/internal/engine/shader"
	"github.com/Faultbox/attic3d/pkg/math"
)

// Transform places one mesh. Rotations are in degrees.
type Transform struct {
	Scale    math.Vec3 `yaml:"scale" toml:"scale"`
	RotX     float32   `yaml:"rot_x,omitempty" toml:"rot_x,omitempty"`
	RotY     float32   `yaml:"rot_y,omitempty" toml:"rot_y,omitempty"`
	RotZ     float32   `yaml:"rot_z,omitempty" toml:"rot_z,omitempty"`
	Position math.Vec3 `yaml:"position" toml:"position"`
}

// New returns a transform with the given scale, rotation and position.
func New(scale math.Vec3, rotX, rotY, rotZ float32, pos math.Vec3) Transform {
	return Transform{Scale: scale, RotX: rotX, RotY: rotY, RotZ: rotZ, Position: pos}
}

// At returns an unrotated transform.
func At(scale, pos math.Vec3) Transform {
	return Transform{Scale: scale, Position: pos}
}

// Compose returns T · Rz · Ry · Rx · S: scale first, then X, Y and Z
// rotations, then translation.
func Compose(t Transform) math.Mat4 {
	s := math.Scale(t.Scale)
	rx := math.RotateX(math.Radians(t.RotX))
	ry := math.RotateY(math.Radians(t.RotY))
	rz := math.RotateZ(math.Radians(t.RotZ))
	tr := math.Translate(t.Position)
	return tr.Mul(rz).Mul(ry).Mul(rx).Mul(s)
}

// Apply composes t and writes it to the model uniform.
func Apply(u shader.Uniforms, t Transform) math.Mat4 {
	m := Compose(t)
	u.SetMat4(shader.UniformModel, m)
	return m
}
