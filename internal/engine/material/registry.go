package material

import (
	"go.uber.org/zap"

	"github.com/Faultbox/attic3d/internal/engine/shader"
	"github.com/Faultbox/attic3d/internal/logger"
	"github.com/Faultbox/attic3d/pkg/math"
)

// Registry stores materials by tag. Lookups are O(1); when a tag is defined
// twice the first definition wins.
type Registry struct {
	materials []Material
	index     map[string]int
	textured  map[string]bool
	warned    map[string]struct{}
	log       *zap.Logger
}

// NewRegistry returns an empty registry using DefaultTexturedTags.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = logger.Named("material")
	}
	r := &Registry{
		index:  make(map[string]int),
		warned: make(map[string]struct{}),
		log:    log,
	}
	r.SetTexturedTags(DefaultTexturedTags)
	return r
}

// SetTexturedTags replaces the set of materials that enable texturing.
func (r *Registry) SetTexturedTags(tags []string) {
	r.textured = make(map[string]bool, len(tags))
	for _, t := range tags {
		r.textured[t] = true
	}
}

// Define appends a material.
func (r *Registry) Define(m Material) {
	if _, ok := r.index[m.Tag]; !ok {
		r.index[m.Tag] = len(r.materials)
	}
	r.materials = append(r.materials, m)
}

// DefineAll appends every material in order.
func (r *Registry) DefineAll(ms []Material) {
	for _, m := range ms {
		r.Define(m)
	}
}

// Find returns the material registered under tag.
func (r *Registry) Find(tag string) (Material, bool) {
	i, ok := r.index[tag]
	if !ok {
		return Material{}, false
	}
	return r.materials[i], true
}

// Textured reports whether surfaces using tag sample a texture.
func (r *Registry) Textured(tag string) bool {
	return r.textured[tag]
}

// Len returns the number of definitions, duplicates included.
func (r *Registry) Len() int {
	return len(r.materials)
}

// All returns a copy of every definition in order.
func (r *Registry) All() []Material {
	out := make([]Material, len(r.materials))
	copy(out, r.materials)
	return out
}

// Apply pushes the material for tag to u and reports whether it was found.
// On a miss nothing is written, so the previous material stays in effect.
func (r *Registry) Apply(u shader.Uniforms, tag string) bool {
	m, ok := r.Find(tag)
	if !ok {
		r.warnOnce(tag)
		return false
	}

	u.SetVec3(shader.UniformMatDiffuse, m.DiffuseColor)
	u.SetVec3(shader.UniformMatSpecular, m.SpecularColor)
	u.SetFloat(shader.UniformMatShininess, m.Shininess)
	u.SetVec3(shader.UniformMatEmissive, m.EmissiveColor)
	if m.Tint != nil {
		u.SetVec3(shader.UniformTintColor, math.Splat(*m.Tint))
	} else {
		u.SetVec3(shader.UniformTintColor, math.Splat(1))
	}
	u.SetBool(shader.UniformUseTexture, r.textured[tag])
	return true
}

func (r *Registry) warnOnce(tag string) {
	if _, seen := r.warned[tag]; seen {
		return
	}
	r.warned[tag] = struct{}{}
	if len(r.materials) == 0 {
		r.log.Warn("no materials defined", zap.String("tag", tag))
		return
	}
	r.log.Warn("material not found", zap.String("tag", tag))
}
