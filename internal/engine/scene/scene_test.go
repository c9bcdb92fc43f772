package scene

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/attic3d/internal/engine/material"
	"github.com/Faultbox/attic3d/internal/engine/mesh"
	"github.com/Faultbox/attic3d/internal/engine/shader"
	"github.com/Faultbox/attic3d/internal/engine/shader/shadertest"
	"github.com/Faultbox/attic3d/internal/engine/texture"
	"github.com/Faultbox/attic3d/internal/engine/transform"
	"github.com/Faultbox/attic3d/pkg/math"
)

type fakeDrawer struct {
	drawn     []mesh.Kind
	destroyed bool
}

func (d *fakeDrawer) Draw(k mesh.Kind) { d.drawn = append(d.drawn, k) }
func (d *fakeDrawer) Destroy()         { d.destroyed = true }

type slotMap map[string]int

func (m slotMap) FindSlot(tag string) int {
	if s, ok := m[tag]; ok {
		return s
	}
	return -1
}

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

func atticMaterials(log *zap.Logger) *material.Registry {
	r := material.NewRegistry(log)
	r.DefineAll(material.Attic())
	return r
}

func indexOf(calls []shadertest.Call, name string) int {
	for i, c := range calls {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func TestRunColorPassOrder(t *testing.T) {
	u := shadertest.New()
	d := &fakeDrawer{}
	log, _ := observed()

	s := Script{{
		Name:      "rug",
		Material:  "rug",
		Mesh:      mesh.Box,
		Transform: transform.At(math.V3(16, 0.2, 16), math.V3(-1, 0.15, 4)),
		Texture:   "texture2",
		UVScale:   math.V2(0.75, 0.75),
		Color:     gray(128),
		Tint:      0.8,
	}}
	st := Run(shader.PassColor, s, Deps{
		Uniforms:  u,
		Materials: atticMaterials(log),
		Textures:  slotMap{"texture2": 1},
		Meshes:    d,
		Log:       log,
	})

	assert.Equal(t, Stats{Draws: 1}, st)
	assert.Equal(t, []mesh.Kind{mesh.Box}, d.drawn)

	order := []string{
		shader.UniformMatDiffuse,
		shader.UniformObjectColor,
		shader.UniformObjectTexture,
		shader.UniformUVScale,
		shader.UniformTextureOffset,
		shader.UniformTintIntensity,
		shader.UniformUseLighting,
		shader.UniformModel,
	}
	prev := -1
	for _, name := range order {
		i := indexOf(u.Calls, name)
		require.GreaterOrEqual(t, i, 0, name)
		assert.Greater(t, i, prev, name)
		prev = i
	}

	assert.True(t, u.Bool(shader.UniformUseTexture), "texture wins over flat colour")
	assert.Equal(t, int32(1), u.Int(shader.UniformObjectTexture))
	assert.Equal(t, math.V2(0.75, 0.75), u.Vec2(shader.UniformUVScale))
	assert.InDelta(t, 0.8, u.Float(shader.UniformTintIntensity), 1e-6)
	assert.True(t, u.Bool(shader.UniformUseLighting))
}

func TestRunDepthPassOnlyTransforms(t *testing.T) {
	u := shadertest.New()
	d := &fakeDrawer{}
	log, _ := observed()

	st := Run(shader.PassDepth, Attic(), Deps{
		Uniforms:  u,
		Materials: atticMaterials(log),
		Textures:  slotMap{},
		Meshes:    d,
		Log:       log,
	})

	assert.Equal(t, []string{shader.UniformModel}, u.Names())
	assert.Equal(t, len(Attic()), st.Draws)
	assert.Len(t, d.drawn, st.Draws)
	assert.Zero(t, st.TextureMisses)
}

func TestRunMaterialMissLoggedOnce(t *testing.T) {
	u := shadertest.New()
	log, logs := observed()

	s := Script{
		{Material: "velvet", Mesh: mesh.Box},
		{Material: "velvet", Mesh: mesh.Sphere},
		{Material: "velvet", Mesh: mesh.Plane},
	}
	st := Run(shader.PassColor, s, Deps{
		Uniforms:  u,
		Materials: atticMaterials(log),
		Meshes:    &fakeDrawer{},
		Log:       log,
	})

	assert.Equal(t, 3, st.MaterialMisses)
	assert.Equal(t, 3, st.Draws)
	assert.Equal(t, 1, logs.FilterMessage("material not found").Len())
	assert.False(t, u.Has(shader.UniformMatDiffuse))
}

func TestRunTextureMissDrawsFlatColour(t *testing.T) {
	u := shadertest.New()
	log, logs := observed()

	s := Script{
		{Name: "a", Mesh: mesh.Box, Color: gray(10), Texture: "missing"},
		{Name: "b", Mesh: mesh.Box, Color: gray(20), Texture: "missing"},
	}
	st := Run(shader.PassColor, s, Deps{
		Uniforms: u,
		Textures: slotMap{},
		Meshes:   &fakeDrawer{},
		Log:      log,
	})

	assert.Equal(t, 2, st.TextureMisses)
	assert.False(t, u.Bool(shader.UniformUseTexture))
	assert.False(t, u.Has(shader.UniformObjectTexture))
	assert.Equal(t, 1, logs.FilterMessage("texture not loaded, drawing flat colour").Len())
}

func TestRunTextureMissOnTexturedMaterial(t *testing.T) {
	u := shadertest.New()
	log, _ := observed()

	s := Script{
		{Name: "drawer", Material: "drawer", Mesh: mesh.Box, Texture: "texture9"},
		{Name: "floor", Material: "floor", Mesh: mesh.Plane, Texture: "missing"},
	}
	st := Run(shader.PassColor, s, Deps{
		Uniforms:  u,
		Materials: atticMaterials(log),
		Textures:  slotMap{"texture9": 3},
		Meshes:    &fakeDrawer{},
		Log:       log,
	})

	assert.Equal(t, 1, st.TextureMisses)
	assert.Zero(t, st.MaterialMisses)
	assert.False(t, u.Bool(shader.UniformUseTexture), "floor must not sample the drawer's unit")
	assert.Equal(t, 1, u.Count(shader.UniformObjectTexture))
}

func TestRunStateDoesNotLeak(t *testing.T) {
	u := shadertest.New()
	s := Script{
		Unlit(Placement{Mesh: mesh.Box, UVOffset: math.V2(0.5, 0.5), UVScale: math.V2(2, 2), Tint: 0.8})[0],
		{Mesh: mesh.Box},
	}
	Run(shader.PassColor, s, Deps{Uniforms: u, Meshes: &fakeDrawer{}, Log: zap.NewNop()})

	var lighting []bool
	for _, c := range u.Calls {
		if c.Name == shader.UniformUseLighting {
			lighting = append(lighting, c.Value.(bool))
		}
	}
	assert.Equal(t, []bool{false, true}, lighting)
	assert.Equal(t, math.V2(0, 0), u.Vec2(shader.UniformTextureOffset))
	assert.Equal(t, math.V2(1, 1), u.Vec2(shader.UniformUVScale))
	assert.Zero(t, u.Float(shader.UniformTintIntensity))
}

func TestRunEmissiveOverride(t *testing.T) {
	u := shadertest.New()
	log, _ := observed()
	glow := math.V3(1, 0.4, 0)

	Run(shader.PassColor, Script{{Material: "lamp", Mesh: mesh.Sphere, Emissive: &glow}}, Deps{
		Uniforms:  u,
		Materials: atticMaterials(log),
		Meshes:    &fakeDrawer{},
		Log:       log,
	})

	assert.Equal(t, 2, u.Count(shader.UniformMatEmissive))
	assert.Equal(t, glow, u.Vec3(shader.UniformMatEmissive))
}

func TestAtticScript(t *testing.T) {
	s := Attic()
	require.Len(t, s, 332)

	counts := s.Count()
	assert.Equal(t, 7, counts[mesh.Plane])
	assert.Equal(t, 3, counts[mesh.TaperedCylinder])
	assert.Equal(t, 3, counts[mesh.Torus])
	assert.Equal(t, 7, counts[mesh.Sphere])
	assert.Equal(t, 55, counts[mesh.Cylinder])
	assert.Equal(t, 257, counts[mesh.Box])

	var catalog []string
	for _, m := range material.Attic() {
		catalog = append(catalog, m.Tag)
	}
	assert.ElementsMatch(t, catalog, s.Materials())

	var loaded []string
	seen := map[string]bool{}
	for _, src := range AtticTextures() {
		if !seen[src.Tag] {
			seen[src.Tag] = true
			loaded = append(loaded, src.Tag)
		}
	}
	assert.Len(t, AtticTextures(), 10)
	assert.ElementsMatch(t, loaded, s.Textures())

	for _, p := range s {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Material, p.Name)
	}
}

func TestAtticUnlitGroups(t *testing.T) {
	unlit := map[string]bool{}
	for _, p := range Attic() {
		if p.Unlit {
			unlit[p.Name] = true
		}
	}
	for _, name := range []string{"window_glass", "window_rail_top", "pc_front", "painting_canvas", "monitor_screen", "keyboard_keys"} {
		assert.True(t, unlit[name], name)
	}
	assert.False(t, unlit["floor"])
	assert.False(t, unlit["chair_column"])
}

func TestBeamRowAndMirror(t *testing.T) {
	base := Placement{Mesh: mesh.Box, Transform: transform.New(math.V3(21, 0.5, 0.5), 90, 0, 135, math.V3(7.4, 14.5, 0))}

	row := BeamRow(base, -10, 10, 4)
	require.Len(t, row, 6)
	for i, p := range row {
		assert.InDelta(t, -10+4*float32(i), p.Transform.Position.Z, 1e-5)
		assert.Equal(t, float32(7.4), p.Transform.Position.X)
	}

	m := Mirror(base)
	assert.Equal(t, float32(-7.4), m.Transform.Position.X)
	assert.Equal(t, float32(-90), m.Transform.RotX)
	assert.Equal(t, float32(0), m.Transform.RotY)
	assert.Equal(t, float32(-135), m.Transform.RotZ)
	assert.Equal(t, float32(7.4), base.Transform.Position.X, "base untouched")

	assert.Len(t, BeamRow(base, 0, 10, 0), 1)
}

func TestRadialCluster(t *testing.T) {
	pivot := math.V3(1, 2, 3)
	ring := RadialCluster(Placement{Mesh: mesh.Cylinder}, Radial{
		Pivot:  pivot,
		Radius: 0.5,
		Count:  4,
		Lift:   func(i int, _ float32) float32 { return float32(i) },
		Orient: func(rad float32) (float32, float32, float32) { return 0, math.Degrees(rad), 0 },
	})
	require.Len(t, ring, 4)

	want := []math.Vec3{
		math.V3(1.5, 2, 3),
		math.V3(1, 3, 3.5),
		math.V3(0.5, 4, 3),
		math.V3(1, 5, 2.5),
	}
	for i, p := range ring {
		assert.True(t, p.Transform.Position.ApproxEqual(want[i], 1e-5), "item %d at %v", i, p.Transform.Position)
		assert.InDelta(t, float32(i)*90, p.Transform.RotY, 1e-3)
	}

	phased := RadialCluster(Placement{}, Radial{Count: 2, StepDeg: 18, PhaseDeg: 60, Radius: 1})
	assert.InDelta(t, 0.5, phased[0].Transform.Position.X, 1e-5)

	assert.Empty(t, RadialCluster(Placement{}, Radial{}))
}

func TestNamed(t *testing.T) {
	ps := Named("leaf", make([]Placement, 3))
	assert.Equal(t, "leaf_0", ps[0].Name)
	assert.Equal(t, "leaf_2", ps[2].Name)
	assert.Equal(t, "solo", Named("solo", make([]Placement, 1))[0].Name)
}

type fakeGPU struct{ next uint32 }

func (g *fakeGPU) Upload(*texture.Image) (uint32, error) { g.next++; return g.next, nil }
func (g *fakeGPU) Bind(int, uint32)                      {}
func (g *fakeGPU) Delete([]uint32)                       {}

type screen struct{ clears int }

func (s *screen) BeginColorPass() { s.clears++ }

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestManagerPrepareAndRender(t *testing.T) {
	log, logs := observed()
	data := pngBytes(t)

	textures := texture.NewRegistry(&fakeGPU{}, log)
	textures.ReadFile = func(string) ([]byte, error) { return data, nil }
	meshes := &fakeDrawer{}

	m := NewManager(DefaultConfig(), Resources{Textures: textures, Meshes: meshes}, log)
	require.NoError(t, m.Prepare(context.Background()))
	assert.Equal(t, 9, textures.Count())
	assert.Equal(t, 1, logs.FilterMessage("texture load failed").Len(), "repeated roof.jpg")

	u := shadertest.New()
	sc := &screen{}
	m.Render(u, sc, 1500*time.Millisecond)

	assert.Equal(t, 1, sc.clears)
	assert.Len(t, meshes.drawn, len(m.Script()), "no depth pass without a shadow target")
	assert.False(t, u.Bool(shader.UniformUseShadows))
	assert.Equal(t, int32(shader.PassColor), u.Int(shader.UniformPass))
	assert.Equal(t, Stats{Draws: len(m.Script())}, m.LastStats())
	assert.True(t, u.Has("pointLights[5].position"))

	m.Destroy()
	assert.True(t, meshes.destroyed)
	assert.Zero(t, textures.Count())
}

func TestManagerPrepareReportsMissingFiles(t *testing.T) {
	log, _ := observed()
	textures := texture.NewRegistry(&fakeGPU{}, log)
	textures.ReadFile = func(p string) ([]byte, error) { return nil, assert.AnError }

	m := NewManager(DefaultConfig(), Resources{Textures: textures, Meshes: &fakeDrawer{}}, log)
	err := m.Prepare(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, textures.Count())

	u := shadertest.New()
	m.Render(u, &screen{}, 0)
	assert.Equal(t, len(m.Script()), m.LastStats().TextureMisses+countUntextured(m.Script()))
}

func countUntextured(s Script) int {
	n := 0
	for _, p := range s {
		if p.Texture == "" {
			n++
		}
	}
	return n
}
