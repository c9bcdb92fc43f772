package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/attic3d/internal/engine/mesh"
	"github.com/Faultbox/attic3d/internal/engine/shader"
	"github.com/Faultbox/attic3d/internal/engine/transform"
	"github.com/Faultbox/attic3d/internal/logger"
)

// Materials pushes a named material's uniforms.
type Materials interface {
	Apply(u shader.Uniforms, tag string) bool
}

// Textures resolves texture tags to bind slots, -1 on a miss.
type Textures interface {
	FindSlot(tag string) int
}

// Deps is everything the interpreter draws with.
type Deps struct {
	Uniforms  shader.Uniforms
	Materials Materials
	Textures  Textures
	Meshes    mesh.Drawer
	Log       *zap.Logger
}

// Stats summarises one interpreter run.
type Stats struct {
	Draws          int
	MaterialMisses int
	TextureMisses  int
}

// Interpreter turns placements into uniform writes and draw calls.
type Interpreter struct {
	deps   Deps
	warned map[string]struct{}
}

// NewInterpreter returns an interpreter drawing through deps.
func NewInterpreter(deps Deps) *Interpreter {
	if deps.Log == nil {
		deps.Log = logger.Named("scene")
	}
	return &Interpreter{deps: deps, warned: make(map[string]struct{})}
}

// Run draws every placement of s for the given pass. The depth pass only
// sets the model matrix and draws; surface state is skipped.
func (in *Interpreter) Run(pass shader.Pass, s Script) Stats {
	var st Stats
	u := in.deps.Uniforms
	for i := range s {
		p := &s[i]
		if pass == shader.PassColor {
			in.surface(p, &st)
		}
		transform.Apply(u, p.Transform)
		in.deps.Meshes.Draw(p.Mesh)
		st.Draws++
	}
	return st
}

func (in *Interpreter) surface(p *Placement, st *Stats) {
	u := in.deps.Uniforms

	if p.Material != "" && in.deps.Materials != nil {
		if !in.deps.Materials.Apply(u, p.Material) {
			st.MaterialMisses++
		}
	}

	if p.Color != nil {
		u.SetVec4(shader.UniformObjectColor, *p.Color)
		u.SetBool(shader.UniformUseTexture, false)
	}
	if p.Emissive != nil {
		u.SetVec3(shader.UniformMatEmissive, *p.Emissive)
	}

	if p.Texture != "" {
		slot := -1
		if in.deps.Textures != nil {
			slot = in.deps.Textures.FindSlot(p.Texture)
		}
		if slot >= 0 {
			u.SetBool(shader.UniformUseTexture, true)
			u.SetSampler(shader.UniformObjectTexture, int32(slot))
		} else {
			// A textured material may have switched sampling on.
			u.SetBool(shader.UniformUseTexture, false)
			st.TextureMisses++
			in.warnOnce(p.Texture, p.Name)
		}
	}
	u.SetVec2(shader.UniformUVScale, p.uvScale())
	u.SetVec2(shader.UniformTextureOffset, p.UVOffset)
	u.SetFloat(shader.UniformTintIntensity, p.Tint)
	u.SetBool(shader.UniformUseLighting, !p.Unlit)
}

func (in *Interpreter) warnOnce(tag, placement string) {
	if _, seen := in.warned[tag]; seen {
		return
	}
	in.warned[tag] = struct{}{}
	in.deps.Log.Warn("texture not loaded, drawing flat colour",
		zap.String("tag", tag),
		zap.String("placement", placement),
	)
}

// Run draws s once with a throwaway interpreter.
func Run(pass shader.Pass, s Script, deps Deps) Stats {
	return NewInterpreter(deps).Run(pass, s)
}
