package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/attic3d/internal/engine/shader"
	"github.com/Faultbox/attic3d/pkg/math"
)

// SpotLight is a cone light. CutOff and OuterCutOff are cosines.
type SpotLight struct {
	Position    math.Vec3   `yaml:"position" toml:"position"`
	Direction   math.Vec3   `yaml:"direction" toml:"direction"`
	CutOff      float32     `yaml:"cut_off" toml:"cut_off"`
	OuterCutOff float32     `yaml:"outer_cut_off" toml:"outer_cut_off"`
	Ambient     math.Vec3   `yaml:"ambient" toml:"ambient"`
	Diffuse     math.Vec3   `yaml:"diffuse" toml:"diffuse"`
	Specular    math.Vec3   `yaml:"specular" toml:"specular"`
	Attenuation Attenuation `yaml:"attenuation" toml:"attenuation"`
	Active      bool        `yaml:"active" toml:"active"`
}

// Cone returns the cosines of inner and outer half-angles given in degrees.
func Cone(innerDeg, outerDeg float32) (cutOff, outerCutOff float32) {
	return math32.Cos(math.Radians(innerDeg)), math32.Cos(math.Radians(outerDeg))
}

func (s SpotLight) apply(u shader.Uniforms) {
	u.SetVec3("spotLight.position", s.Position)
	u.SetVec3("spotLight.direction", s.Direction)
	u.SetFloat("spotLight.cutOff", s.CutOff)
	u.SetFloat("spotLight.outerCutOff", s.OuterCutOff)
	u.SetVec3("spotLight.ambient", s.Ambient)
	u.SetVec3("spotLight.diffuse", s.Diffuse)
	u.SetVec3("spotLight.specular", s.Specular)
	u.SetFloat("spotLight.constant", s.Attenuation.Constant)
	u.SetFloat("spotLight.linear", s.Attenuation.Linear)
	u.SetFloat("spotLight.quadratic", s.Attenuation.Quadratic)
	u.SetBool("spotLight.bActive", s.Active)
}
