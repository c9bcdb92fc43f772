// Package lighting drives the scene's spotlight and point-light slots.
package lighting

import (
	"fmt"

	"github.com/Faultbox/attic3d/internal/engine/shader"
	"github.com/Faultbox/attic3d/pkg/math"
)

// NumPointLights is the number of point-light slots the shader declares.
const NumPointLights = 6

// Attenuation holds the constant, linear and quadratic falloff terms.
type Attenuation struct {
	Constant  float32 `yaml:"constant" toml:"constant"`
	Linear    float32 `yaml:"linear" toml:"linear"`
	Quadratic float32 `yaml:"quadratic" toml:"quadratic"`
}

// At returns the attenuation factor at distance d.
func (a Attenuation) At(d float32) float32 {
	return 1 / (a.Constant + a.Linear*d + a.Quadratic*d*d)
}

// PointLight is one point-light slot.
type PointLight struct {
	Position    math.Vec3   `yaml:"position" toml:"position"`
	Ambient     math.Vec3   `yaml:"ambient" toml:"ambient"`
	Diffuse     math.Vec3   `yaml:"diffuse" toml:"diffuse"`
	Specular    math.Vec3   `yaml:"specular" toml:"specular"`
	Attenuation Attenuation `yaml:"attenuation" toml:"attenuation"`
	Active      bool        `yaml:"active" toml:"active"`
}

// Disabled returns a placeholder slot that contributes only a faint ambient
// term and is flagged inactive.
func Disabled(pos math.Vec3) PointLight {
	return PointLight{
		Position:    pos,
		Ambient:     math.Splat(0.05),
		Attenuation: Attenuation{1, 0.09, 0.032},
	}
}

func pointUniform(slot int, field string) string {
	return fmt.Sprintf("pointLights[%d].%s", slot, field)
}

func (p PointLight) apply(u shader.Uniforms, slot int) {
	u.SetVec3(pointUniform(slot, "position"), p.Position)
	u.SetVec3(pointUniform(slot, "ambient"), p.Ambient)
	u.SetVec3(pointUniform(slot, "diffuse"), p.Diffuse)
	u.SetVec3(pointUniform(slot, "specular"), p.Specular)
	u.SetFloat(pointUniform(slot, "constant"), p.Attenuation.Constant)
	u.SetFloat(pointUniform(slot, "linear"), p.Attenuation.Linear)
	u.SetFloat(pointUniform(slot, "quadratic"), p.Attenuation.Quadratic)
	u.SetBool(pointUniform(slot, "bActive"), p.Active)
}
