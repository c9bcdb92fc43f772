package shadow

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/attic3d/internal/engine/shader"
	"github.com/Faultbox/attic3d/internal/logger"
	"github.com/Faultbox/attic3d/pkg/math"
)

// TextureUnit is the unit the depth texture is sampled from. Scene textures
// use the units below it.
const TextureUnit = 15

// Screen is the default framebuffer.
type Screen interface {
	// BeginColorPass restores the window viewport and clears color and depth.
	BeginColorPass()
}

// Scene is what the controller draws in each pass.
type Scene interface {
	ApplyLights(u shader.Uniforms, elapsed time.Duration)
	BindTextures()
	Draw(pass shader.Pass, u shader.Uniforms)
}

// Frame carries everything one Render call needs.
type Frame struct {
	Uniforms shader.Uniforms
	Screen   Screen
	Scene    Scene
	Elapsed  time.Duration
}

// State reports what the controller did most recently.
type State struct {
	Enabled     bool
	Last        shader.Pass
	Frames      uint64
	DepthPasses uint64
	ColorPasses uint64
}

// Controller runs the depth pass into the shadow target, then the color
// pass to the screen.
type Controller struct {
	target     Target
	lightPos   math.Vec3
	lightSpace math.Mat4
	state      State
	log        *zap.Logger
}

// NewController returns a controller drawing depth into target. A nil target
// disables shadows: the depth pass is skipped and bUseShadows is false.
func NewController(target Target, lightPos math.Vec3, log *zap.Logger) *Controller {
	if log == nil {
		log = logger.Named("shadow")
	}
	c := &Controller{
		target:     target,
		lightPos:   lightPos,
		lightSpace: LightSpaceMatrix(lightPos),
		log:        log,
	}
	c.state.Enabled = target != nil
	if target == nil {
		log.Warn("shadows disabled")
	} else {
		log.Debug("shadow map ready", zap.Int32("resolution", target.Resolution()))
	}
	return c
}

// NewGL creates a GL shadow map of the given resolution. If the framebuffer
// cannot be created the error is logged and shadows are disabled.
func NewGL(resolution int32, enabled bool, lightPos math.Vec3, log *zap.Logger) *Controller {
	if log == nil {
		log = logger.Named("shadow")
	}
	if !enabled {
		return NewController(nil, lightPos, log)
	}
	sm, err := NewMap(resolution)
	if err != nil {
		log.Error("shadow map creation failed", zap.Error(err))
		return NewController(nil, lightPos, log)
	}
	return NewController(sm, lightPos, log)
}

// LightSpace returns the matrix used by both passes.
func (c *Controller) LightSpace() math.Mat4 {
	return c.lightSpace
}

// State returns the pass bookkeeping.
func (c *Controller) State() State {
	return c.state
}

// Render draws one frame: DepthPass, then ColorPass.
func (c *Controller) Render(f Frame) {
	f.Uniforms.Use()
	c.DepthPass(f)
	c.ColorPass(f)
	c.state.Frames++
}

// DepthPass draws the scene from the light into the shadow target.
func (c *Controller) DepthPass(f Frame) {
	if c.target == nil {
		return
	}
	u := f.Uniforms
	c.target.Begin()
	shader.SetPass(u, shader.PassDepth)
	u.SetMat4(shader.UniformLightSpace, c.lightSpace)
	f.Scene.Draw(shader.PassDepth, u)
	c.target.End()

	c.state.Last = shader.PassDepth
	c.state.DepthPasses++
}

// ColorPass draws the fully shaded scene to the screen.
func (c *Controller) ColorPass(f Frame) {
	u := f.Uniforms
	f.Screen.BeginColorPass()
	shader.SetPass(u, shader.PassColor)
	u.SetMat4(shader.UniformLightSpace, c.lightSpace)
	f.Scene.ApplyLights(u, f.Elapsed)

	if c.target != nil {
		c.target.BindTexture(TextureUnit)
	}
	// Always point the sampler at its own unit; two sampler types sharing
	// unit 0 is an invalid draw.
	u.SetSampler(shader.UniformShadowMap, TextureUnit)
	u.SetBool(shader.UniformUseShadows, c.target != nil)

	f.Scene.BindTextures()
	f.Scene.Draw(shader.PassColor, u)

	c.state.Last = shader.PassColor
	c.state.ColorPasses++
}

// Destroy releases the shadow target.
func (c *Controller) Destroy() {
	if c.target != nil {
		c.target.Destroy()
		c.target = nil
	}
	c.state.Enabled = false
}
