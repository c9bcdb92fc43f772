package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/attic3d/internal/logger"
	"github.com/Faultbox/attic3d/pkg/math"
)

// Program is a linked GL program implementing Uniforms.
// Uniform locations are looked up once and cached by name.
type Program struct {
	id        uint32
	locations map[string]int32
	missing   map[string]struct{}
	log       *zap.Logger
}

var _ Uniforms = (*Program)(nil)

// NewProgram compiles and links a program from GLSL sources.
func NewProgram(vertexSrc, fragmentSrc string) (*Program, error) {
	log := logger.Named("shader")
	id, err := build(log, vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("compile program: %w", err)
	}
	p := &Program{log: log}
	p.reset(id)
	p.log.Debug("program linked", zap.Uint32("program", id))
	return p, nil
}

// Reload replaces the program with one built from new sources.
// On failure the current program stays active.
func (p *Program) Reload(vertexSrc, fragmentSrc string) error {
	id, err := build(p.log, vertexSrc, fragmentSrc)
	if err != nil {
		return fmt.Errorf("reload program: %w", err)
	}
	gl.DeleteProgram(p.id)
	p.reset(id)
	p.log.Info("program reloaded", zap.Uint32("program", id))
	return nil
}

func (p *Program) reset(id uint32) {
	p.id = id
	p.locations = make(map[string]int32, 64)
	p.missing = make(map[string]struct{})
}

// ID returns the GL program name.
func (p *Program) ID() uint32 {
	return p.id
}

// Delete releases the GL program.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// Use makes this program current.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// location returns the cached uniform location, -1 if the program has none.
func (p *Program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.locations[name] = loc
	if loc < 0 {
		if _, seen := p.missing[name]; !seen {
			p.missing[name] = struct{}{}
			// The GLSL compiler strips unused uniforms, so this is not an error.
			p.log.Debug("uniform inactive", zap.String("name", name))
		}
	}
	return loc
}

func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(p.location(name), i)
}

func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.location(name), v)
}

func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.location(name), v)
}

func (p *Program) SetVec2(name string, v math.Vec2) {
	gl.Uniform2f(p.location(name), v.X, v.Y)
}

func (p *Program) SetVec3(name string, v math.Vec3) {
	gl.Uniform3f(p.location(name), v.X, v.Y, v.Z)
}

func (p *Program) SetVec4(name string, v math.Vec4) {
	gl.Uniform4f(p.location(name), v[0], v[1], v[2], v[3])
}

func (p *Program) SetMat4(name string, m math.Mat4) {
	gl.UniformMatrix4fv(p.location(name), 1, false, m.Ptr())
}

func (p *Program) SetSampler(name string, unit int32) {
	gl.Uniform1i(p.location(name), unit)
}
