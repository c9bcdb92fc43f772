package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/attic3d/internal/engine/shader"
	"github.com/Faultbox/attic3d/internal/engine/shader/shadertest"
	"github.com/Faultbox/attic3d/pkg/math"
)

const eps = 1e-5

func assertVec(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "x")
	assert.InDelta(t, want.Y, got.Y, eps, "y")
	assert.InDelta(t, want.Z, got.Z, eps, "z")
}

func TestComposeIdentity(t *testing.T) {
	m := Compose(At(math.Splat(1), math.Vec3{}))
	assert.True(t, m.ApproxEqual(math.Identity(), eps))
}

func TestComposeTranslation(t *testing.T) {
	m := Compose(At(math.Splat(1), math.V3(1, 2, 3)))
	assert.Equal(t, float32(1), m[12])
	assert.Equal(t, float32(2), m[13])
	assert.Equal(t, float32(3), m[14])
}

func TestComposeRotY90(t *testing.T) {
	m := Compose(New(math.Splat(1), 0, 90, 0, math.Vec3{}))
	assertVec(t, math.V3(0, 0, -1), m.TransformPoint(math.V3(1, 0, 0)))
}

func TestComposeOrder(t *testing.T) {
	// Scale applies before rotation, rotation before translation.
	tr := New(math.V3(2, 1, 1), 0, 0, 90, math.V3(10, 0, 0))
	got := Compose(tr).TransformPoint(math.V3(1, 0, 0))
	assertVec(t, math.V3(10, 2, 0), got)
}

func TestComposeRotationOrderXThenYThenZ(t *testing.T) {
	tr := New(math.Splat(1), 90, 90, 0, math.Vec3{})
	// Rx(90) sends +Y to +Z, then Ry(90) sends +Z to +X.
	got := Compose(tr).TransformPoint(math.V3(0, 1, 0))
	assertVec(t, math.V3(1, 0, 0), got)
}

func TestApplyPushesModel(t *testing.T) {
	u := shadertest.New()
	tr := New(math.V3(15, 0.1, 12), 0, 0, 0, math.V3(0, 0, 2))

	m := Apply(u, tr)
	Apply(u, tr)

	assert.Equal(t, 2, u.Count(shader.UniformModel), "pushed on every call")
	assert.Equal(t, m, u.Mat4(shader.UniformModel))
}
