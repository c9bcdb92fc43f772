package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cross(a, b vec3) vec3 {
	return vec3{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
}

func sub(a, b vec3) vec3 { return vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func dot(a, b vec3) float32 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func TestBuildAllKinds(t *testing.T) {
	for _, k := range Kinds {
		t.Run(k.String(), func(t *testing.T) {
			m := Build(k)
			require.NotEmpty(t, m.Vertices)
			require.Zero(t, len(m.Indices)%3)
			for _, i := range m.Indices {
				require.Less(t, int(i), len(m.Vertices))
			}
		})
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		kind     Kind
		min, max vec3
	}{
		{Box, vec3{-0.5, -0.5, -0.5}, vec3{0.5, 0.5, 0.5}},
		{Plane, vec3{-1, 0, -1}, vec3{1, 0, 1}},
		{Cylinder, vec3{-1, 0, -1}, vec3{1, 1, 1}},
		{Sphere, vec3{-1, -1, -1}, vec3{1, 1, 1}},
	}
	for _, tt := range tests {
		b := Build(tt.kind).Bounds
		for i := 0; i < 3; i++ {
			assert.InDelta(t, tt.min[i], b.Min[i], 1e-4, "%s min[%d]", tt.kind, i)
			assert.InDelta(t, tt.max[i], b.Max[i], 1e-4, "%s max[%d]", tt.kind, i)
		}
	}
}

// Every triangle of a closed primitive must wind counter-clockwise when seen
// from outside, i.e. its face normal agrees with its vertex normals.
func TestWindingMatchesNormals(t *testing.T) {
	for _, k := range Kinds {
		m := Build(k)
		bad := 0
		for i := 0; i < len(m.Indices); i += 3 {
			a, b, c := m.Vertices[m.Indices[i]], m.Vertices[m.Indices[i+1]], m.Vertices[m.Indices[i+2]]
			face := cross(sub(b.Position, a.Position), sub(c.Position, a.Position))
			if dot(face, face) < 1e-12 {
				continue // degenerate pole triangle
			}
			n := add3(add3(a.Normal, b.Normal), c.Normal)
			if dot(face, n) < 0 {
				bad++
			}
		}
		assert.Zero(t, bad, "%s has %d inward triangles", k, bad)
	}
}

func TestTaperedTopIsNarrower(t *testing.T) {
	m := NewCylinder(1, 0.5)
	var topMax float32
	for _, v := range m.Vertices {
		if v.Position[1] == 1 && v.Position[0] > topMax {
			topMax = v.Position[0]
		}
	}
	assert.InDelta(t, 0.5, topMax, 1e-5)
}

func TestKindText(t *testing.T) {
	for _, k := range Kinds {
		b, err := k.MarshalText()
		require.NoError(t, err)
		var got Kind
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("teapot")
	assert.Error(t, err)
	assert.Equal(t, "kind(42)", Kind(42).String())
}
