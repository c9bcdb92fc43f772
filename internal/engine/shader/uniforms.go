package shader

import "github.com/Faultbox/attic3d/pkg/math"

// Uniforms is the narrow contract scene code uses to talk to a shader.
// Implementations must tolerate names the active program does not declare.
type Uniforms interface {
	Use()
	SetBool(name string, v bool)
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec2(name string, v math.Vec2)
	SetVec3(name string, v math.Vec3)
	SetVec4(name string, v math.Vec4)
	SetMat4(name string, m math.Mat4)
	// SetSampler points a sampler uniform at a texture unit index.
	SetSampler(name string, unit int32)
}

// Names of the uniforms shared between the scene core and the scene shaders.
const (
	UniformModel         = "model"
	UniformView          = "view"
	UniformProjection    = "projection"
	UniformViewPosition  = "viewPosition"
	UniformLightSpace    = "lightSpaceMatrix"
	UniformPass          = "uPass"
	UniformUseShadows    = "bUseShadows"
	UniformShadowMap     = "shadowMap"
	UniformObjectColor   = "objectColor"
	UniformObjectTexture = "objectTexture"
	UniformUseTexture    = "bUseTexture"
	UniformUseLighting   = "bUseLighting"
	UniformUVScale       = "UVscale"
	UniformTextureOffset = "textureOffset"
	UniformTintIntensity = "tintIntensity"
	UniformTintColor     = "tintColor"
	UniformGlobalAmbient = "globalAmbientColor"
	UniformMatDiffuse    = "material.diffuseColor"
	UniformMatSpecular   = "material.specularColor"
	UniformMatShininess  = "material.shininess"
	UniformMatEmissive   = "material.emissiveColor"
	UniformDirectional   = "directionalLight.bActive"
)
