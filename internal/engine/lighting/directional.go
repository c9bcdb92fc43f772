package lighting

import "github.com/Faultbox/attic3d/internal/engine/shader"

// The shader still declares a single directional light. The rig never uses
// it and switches it off on every Apply.
func disableDirectional(u shader.Uniforms) {
	u.SetBool(shader.UniformDirectional, false)
}
