package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/attic3d/internal/engine/shader"
	"github.com/Faultbox/attic3d/internal/engine/shader/shadertest"
	"github.com/Faultbox/attic3d/pkg/math"
)

const eps = 1e-4

func assertVec(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqual(got, eps), "want %v, got %v", want, got)
}

func TestDefault(t *testing.T) {
	s := Default()
	assertVec(t, math.V3(0, 5, 12), s.Position)
	assertVec(t, math.V3(0, -0.5, -2).Normalize(), s.Front)
	assert.Equal(t, float32(80), s.Zoom)
	assert.Equal(t, float32(20), s.Speed)
	assert.False(t, s.Orthographic)
	assert.InDelta(t, 0, s.Up.Dot(s.Front), eps)
	assert.Greater(t, s.Up.Y, float32(0))
}

func TestOrthoCycle(t *testing.T) {
	s := Default()

	assert.False(t, s.CycleOrtho(), "L is ignored in perspective")
	assertVec(t, math.V3(0, 5, 12), s.Position)

	s.Ortho()
	assert.True(t, s.Orthographic)
	assert.Equal(t, TopDown, s.OrthoView)
	assertVec(t, math.V3(0, 20, 0), s.Position)
	assertVec(t, math.V3(0, -1, 0), s.Front)

	want := []struct {
		view  OrthoView
		pos   math.Vec3
		front math.Vec3
	}{
		{Side, math.V3(20, 5, 0), math.V3(-1, 0, 0)},
		{Front, math.V3(0, 5, 20), math.V3(0, 0, -1)},
		{TopDown, math.V3(0, 20, 0), math.V3(0, -1, 0)},
		{Side, math.V3(20, 5, 0), math.V3(-1, 0, 0)},
	}
	for _, w := range want {
		require.True(t, s.CycleOrtho())
		assert.Equal(t, w.view, s.OrthoView, w.view.String())
		assertVec(t, w.pos, s.Position)
		assertVec(t, w.front, s.Front)
	}
}

func TestOrthoResetsToTopDown(t *testing.T) {
	s := Default()
	s.Ortho()
	s.CycleOrtho()
	s.Ortho()
	assert.Equal(t, TopDown, s.OrthoView)
	assertVec(t, math.V3(0, 20, 0), s.Position)
}

func TestPerspectiveReset(t *testing.T) {
	s := Default()
	s.Ortho()
	s.Move(Forward, 1)
	s.Perspective()
	assert.False(t, s.Orthographic)
	assertVec(t, math.V3(0.5, 5.5, 10), s.Position)
	assertVec(t, math.V3(0, 0, -1), s.Front)
}

func TestTopDownViewIsWellFormed(t *testing.T) {
	s := Default()
	s.Ortho()
	assertVec(t, math.V3(0, 0, -1), s.Up)

	v := s.View()
	for _, x := range v {
		assert.False(t, math32.IsNaN(x), "NaN in view matrix")
	}
	// The origin sits 20 units in front of the camera.
	p := v.TransformPoint(math.V3(0, 0, 0))
	assertVec(t, math.V3(0, 0, -20), p)
}

func TestScrollSpeedFloor(t *testing.T) {
	s := Default()
	s.Scroll(3)
	assert.Equal(t, float32(23), s.Speed)
	s.Scroll(-100)
	assert.Equal(t, float32(MinSpeed), s.Speed)
	s.Scroll(-1)
	assert.Equal(t, float32(MinSpeed), s.Speed)
}

func TestLookClampsPitch(t *testing.T) {
	s := Default()
	s.Look(0, 10000)
	assert.Equal(t, float32(MaxPitch), s.Pitch)
	assert.Less(t, s.Front.Y, float32(1))
	s.Look(0, -20000)
	assert.Equal(t, float32(-MaxPitch), s.Pitch)
}

func TestLookContinuesFromSetView(t *testing.T) {
	s := Default()
	s.Perspective()
	before := s.Front
	s.Look(0, 0)
	assertVec(t, before, s.Front)

	s.Look(900, 0) // 90 degrees to the right
	assertVec(t, math.V3(1, 0, 0), s.Front)
}

func TestMove(t *testing.T) {
	s := Default()
	s.Perspective()
	s.Speed = 2

	s.Move(Forward, 0.5)
	assertVec(t, math.V3(0.5, 5.5, 9), s.Position)
	s.Move(Right, 1)
	assertVec(t, math.V3(2.5, 5.5, 9), s.Position)
	s.Move(Up, 1)
	assertVec(t, math.V3(2.5, 7.5, 9), s.Position)
	s.Move(Down, 1)
	s.Move(Left, 1)
	s.Move(Backward, 0.5)
	assertVec(t, math.V3(0.5, 5.5, 10), s.Position)
}

func TestUpdate(t *testing.T) {
	s := Default()
	var in Input
	in.Ortho = true
	in.Cycle = true
	in.Held[Up] = true
	in.Scroll = -30
	Update(s, in, 1)

	assert.Equal(t, Side, s.OrthoView)
	assert.Equal(t, float32(MinSpeed), s.Speed)
	assertVec(t, math.V3(20, 6, 0), s.Position)
}

func TestProjection(t *testing.T) {
	s := Default()
	p := s.Projection(1000.0 / 800.0)
	assert.Equal(t, float32(-1), p[11], "perspective")

	s.Ortho()
	o := s.Projection(1000.0 / 800.0)
	assert.Equal(t, float32(0), o[11])
	assert.InDelta(t, 0.1, o[0], eps)
}

func TestApply(t *testing.T) {
	u := shadertest.New()
	s := Default()
	Apply(u, s, 1.25)

	assert.Equal(t, s.View(), u.Mat4(shader.UniformView))
	assert.Equal(t, s.Projection(1.25), u.Mat4(shader.UniformProjection))
	assert.Equal(t, s.Position, u.Vec3(shader.UniformViewPosition))
}
