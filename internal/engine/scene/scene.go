// Package scene describes the attic as declarative placements and draws it
// through the shadow and color passes.
package scene

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/attic3d/internal/engine/lighting"
	"github.com/Faultbox/attic3d/internal/engine/material"
	"github.com/Faultbox/attic3d/internal/engine/mesh"
	"github.com/Faultbox/attic3d/internal/engine/shader"
	"github.com/Faultbox/attic3d/internal/engine/shadow"
	"github.com/Faultbox/attic3d/internal/engine/texture"
	"github.com/Faultbox/attic3d/internal/logger"
)

// Config contains scene configuration options.
type Config struct {
	ShadowResolution int32
	ShadowsEnabled   bool
	GlobalAmbient    float32
	DeskLamp         bool
	DecodeWorkers    int
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		ShadowResolution: shadow.DefaultResolution,
		ShadowsEnabled:   true,
		GlobalAmbient:    0.05,
		DecodeWorkers:    4,
	}
}

// Resources are the GPU-side collaborators of a Manager.
type Resources struct {
	Textures *texture.Registry
	Meshes   mesh.Drawer
	Shadows  *shadow.Controller
}

// Manager owns the attic: its textures, materials, lights and script.
// It implements shadow.Scene.
type Manager struct {
	config Config

	textures  *texture.Registry
	materials *material.Registry
	meshes    mesh.Drawer
	shadows   *shadow.Controller
	rig       *lighting.Rig

	script Script
	interp *Interpreter
	last   Stats

	log *zap.Logger
}

var _ shadow.Scene = (*Manager)(nil)

// NewManager wires a manager from already-created resources. A nil Shadows
// controller gets one without a depth target.
func NewManager(cfg Config, res Resources, log *zap.Logger) *Manager {
	if log == nil {
		log = logger.Named("scene")
	}
	rig := lighting.Attic(cfg.GlobalAmbient, cfg.DeskLamp)
	if res.Shadows == nil {
		res.Shadows = shadow.NewController(nil, rig.Spot.Position, log.Named("shadow"))
	}
	if res.Textures != nil && cfg.DecodeWorkers > 0 {
		res.Textures.Workers = cfg.DecodeWorkers
	}
	m := &Manager{
		config:    cfg,
		textures:  res.Textures,
		materials: material.NewRegistry(log.Named("material")),
		meshes:    res.Meshes,
		shadows:   res.Shadows,
		rig:       rig,
		log:       log,
	}
	return m
}

// New creates a manager backed by OpenGL. readFile resolves texture names,
// typically assets.Manager.Load. Must be called on the GL thread.
func New(cfg Config, readFile func(string) ([]byte, error)) (*Manager, error) {
	log := logger.Named("scene")

	meshes, err := mesh.NewLibrary()
	if err != nil {
		return nil, fmt.Errorf("creating mesh library: %w", err)
	}

	textures := texture.NewRegistry(texture.GL{}, log.Named("texture"))
	if readFile != nil {
		textures.ReadFile = readFile
	}

	rig := lighting.Attic(cfg.GlobalAmbient, cfg.DeskLamp)
	shadows := shadow.NewGL(cfg.ShadowResolution, cfg.ShadowsEnabled, rig.Spot.Position, log.Named("shadow"))

	return NewManager(cfg, Resources{
		Textures: textures,
		Meshes:   meshes,
		Shadows:  shadows,
	}, log), nil
}

// Prepare loads the attic textures, defines its materials and builds the
// script. Texture failures are logged and joined into the returned error;
// the scene stays drawable with flat colours in their place. The attic's
// repeated roof.jpg load is expected to be rejected and is not reported.
func (m *Manager) Prepare(ctx context.Context) error {
	var loadErr error
	if m.textures != nil {
		errs := unexpected(m.textures.LoadAll(ctx, AtticTextures()))
		loadErr = errors.Join(errs...)
		m.log.Info("textures loaded",
			zap.Int("count", m.textures.Count()),
			zap.Int("failed", len(errs)),
		)
	}

	m.materials.DefineAll(material.Attic())
	m.script = Attic()
	m.interp = NewInterpreter(Deps{
		Materials: m.materials,
		Textures:  optionalTextures(m.textures),
		Meshes:    m.meshes,
		Log:       m.log,
	})

	m.log.Info("scene prepared",
		zap.Int("placements", len(m.script)),
		zap.Int("materials", m.materials.Len()),
		zap.Bool("shadows", m.shadows.State().Enabled),
	)
	return loadErr
}

func unexpected(errs []error) []error {
	var out []error
	for _, err := range errs {
		if err != nil && !errors.Is(err, texture.ErrDuplicateTag) {
			out = append(out, err)
		}
	}
	return out
}

// optionalTextures keeps a nil registry from becoming a non-nil interface.
func optionalTextures(r *texture.Registry) Textures {
	if r == nil {
		return nil
	}
	return r
}

// ApplyLights pushes the lighting rig for the given time.
func (m *Manager) ApplyLights(u shader.Uniforms, elapsed time.Duration) {
	m.rig.Apply(u, elapsed)
}

// BindTextures binds every loaded texture to its slot.
func (m *Manager) BindTextures() {
	if m.textures != nil {
		m.textures.BindAll()
	}
}

// Draw runs the script for one pass.
func (m *Manager) Draw(pass shader.Pass, u shader.Uniforms) {
	if m.interp == nil {
		return
	}
	m.interp.deps.Uniforms = u
	st := m.interp.Run(pass, m.script)
	if pass == shader.PassColor {
		m.last = st
	}
}

// Render draws one frame: depth pass, then color pass to screen.
func (m *Manager) Render(u shader.Uniforms, screen shadow.Screen, elapsed time.Duration) {
	m.shadows.Render(shadow.Frame{
		Uniforms: u,
		Screen:   screen,
		Scene:    m,
		Elapsed:  elapsed,
	})
}

// Script returns the placements drawn each pass.
func (m *Manager) Script() Script { return m.script }

// Rig returns the lighting rig.
func (m *Manager) Rig() *lighting.Rig { return m.rig }

// Materials returns the material registry.
func (m *Manager) Materials() *material.Registry { return m.materials }

// Textures returns the texture registry, nil when the scene has none.
func (m *Manager) Textures() *texture.Registry { return m.textures }

// Shadows returns the shadow pass controller.
func (m *Manager) Shadows() *shadow.Controller { return m.shadows }

// LastStats returns the counters of the most recent color pass.
func (m *Manager) LastStats() Stats { return m.last }

// Destroy releases all GPU resources.
func (m *Manager) Destroy() {
	if m.shadows != nil {
		m.shadows.Destroy()
	}
	if m.textures != nil {
		m.textures.Destroy()
	}
	if d, ok := m.meshes.(interface{ Destroy() }); ok {
		d.Destroy()
	}
}
