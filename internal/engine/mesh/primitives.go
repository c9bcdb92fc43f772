package mesh

import "github.com/chewxy/math32"

// Tessellation detail.
const (
	RadialSegments = 36
	SphereStacks   = 18
	SphereSlices   = 36
	TorusSegments  = 36
	TorusSides     = 16
	TorusTube      = 0.1
)

// Build returns the CPU mesh for a primitive kind.
func Build(k Kind) *Mesh {
	var m *Mesh
	switch k {
	case Plane:
		m = NewPlane()
	case Cylinder:
		m = NewCylinder(1, 1)
	case TaperedCylinder:
		m = NewCylinder(1, 0.5)
	case Torus:
		m = NewTorus(1, TorusTube)
	case Sphere:
		m = NewSphere()
	default:
		m = NewBox()
	}
	m.computeBounds()
	return m
}

type vec3 = [3]float32

func add3(a, b vec3) vec3 { return vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }

func mul3(a vec3, s float32) vec3 { return vec3{a[0] * s, a[1] * s, a[2] * s} }

// quad appends a face centred at c spanning ±hu along u and ±hv along v.
// u × v must point along n for counter-clockwise winding.
func (m *Mesh) quad(c, u, v, n vec3, hu, hv float32) {
	base := uint32(len(m.Vertices))
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, k := range corners {
		p := add3(c, add3(mul3(u, k[0]*hu), mul3(v, k[1]*hv)))
		m.Vertices = append(m.Vertices, Vertex{
			Position: p,
			Normal:   n,
			TexCoord: [2]float32{(k[0] + 1) / 2, (k[1] + 1) / 2},
		})
	}
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}

// NewBox returns a unit cube centred on the origin.
func NewBox() *Mesh {
	m := &Mesh{}
	faces := []struct{ n, u, v vec3 }{
		{vec3{1, 0, 0}, vec3{0, 0, -1}, vec3{0, 1, 0}},
		{vec3{-1, 0, 0}, vec3{0, 0, 1}, vec3{0, 1, 0}},
		{vec3{0, 1, 0}, vec3{1, 0, 0}, vec3{0, 0, -1}},
		{vec3{0, -1, 0}, vec3{1, 0, 0}, vec3{0, 0, 1}},
		{vec3{0, 0, 1}, vec3{1, 0, 0}, vec3{0, 1, 0}},
		{vec3{0, 0, -1}, vec3{-1, 0, 0}, vec3{0, 1, 0}},
	}
	for _, f := range faces {
		m.quad(mul3(f.n, 0.5), f.u, f.v, f.n, 0.5, 0.5)
	}
	return m
}

// NewPlane returns a 2×2 plane in XZ facing +Y.
func NewPlane() *Mesh {
	m := &Mesh{}
	m.quad(vec3{}, vec3{1, 0, 0}, vec3{0, 0, -1}, vec3{0, 1, 0}, 1, 1)
	return m
}

// NewCylinder returns a capped cylinder from y=0 to y=1. A top radius
// smaller than the bottom one gives a tapered cylinder.
func NewCylinder(bottom, top float32) *Mesh {
	m := &Mesh{}
	seg := RadialSegments

	// Side normals lean outward by the taper slope.
	slope := bottom - top
	for i := 0; i <= seg; i++ {
		s, c := math32.Sincos(2 * math32.Pi * float32(i) / float32(seg))
		n := normalize(vec3{c, slope, s})
		u := float32(i) / float32(seg)
		m.Vertices = append(m.Vertices,
			Vertex{Position: vec3{bottom * c, 0, bottom * s}, Normal: n, TexCoord: [2]float32{u, 0}},
			Vertex{Position: vec3{top * c, 1, top * s}, Normal: n, TexCoord: [2]float32{u, 1}},
		)
	}
	for i := 0; i < seg; i++ {
		b0 := uint32(2 * i)
		t0, b1, t1 := b0+1, b0+2, b0+3
		m.Indices = append(m.Indices, b0, t0, b1, b1, t0, t1)
	}

	m.cap(0, bottom, vec3{0, -1, 0})
	if top > 0 {
		m.cap(1, top, vec3{0, 1, 0})
	}
	return m
}

func (m *Mesh) cap(y, r float32, n vec3) {
	seg := RadialSegments
	center := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, Vertex{Position: vec3{0, y, 0}, Normal: n, TexCoord: [2]float32{0.5, 0.5}})
	for i := 0; i <= seg; i++ {
		s, c := math32.Sincos(2 * math32.Pi * float32(i) / float32(seg))
		m.Vertices = append(m.Vertices, Vertex{
			Position: vec3{r * c, y, r * s},
			Normal:   n,
			TexCoord: [2]float32{0.5 + 0.5*c, 0.5 + 0.5*s},
		})
	}
	for i := uint32(0); i < uint32(seg); i++ {
		a, b := center+1+i, center+2+i
		if n[1] > 0 {
			m.Indices = append(m.Indices, center, b, a)
		} else {
			m.Indices = append(m.Indices, center, a, b)
		}
	}
}

// NewSphere returns a unit-radius UV sphere.
func NewSphere() *Mesh {
	m := &Mesh{}
	for i := 0; i <= SphereStacks; i++ {
		phi := math32.Pi * float32(i) / SphereStacks
		sp, cp := math32.Sincos(phi)
		for j := 0; j <= SphereSlices; j++ {
			st, ct := math32.Sincos(2 * math32.Pi * float32(j) / SphereSlices)
			p := vec3{sp * ct, cp, sp * st}
			m.Vertices = append(m.Vertices, Vertex{
				Position: p,
				Normal:   p,
				TexCoord: [2]float32{float32(j) / SphereSlices, 1 - float32(i)/SphereStacks},
			})
		}
	}
	m.grid(SphereStacks, SphereSlices, false)
	return m
}

// NewTorus returns a torus in the XY plane with the given main and tube radii.
func NewTorus(main, tube float32) *Mesh {
	m := &Mesh{}
	for i := 0; i <= TorusSegments; i++ {
		su, cu := math32.Sincos(2 * math32.Pi * float32(i) / TorusSegments)
		for j := 0; j <= TorusSides; j++ {
			sv, cv := math32.Sincos(2 * math32.Pi * float32(j) / TorusSides)
			n := vec3{cv * cu, cv * su, sv}
			p := add3(vec3{main * cu, main * su, 0}, mul3(n, tube))
			m.Vertices = append(m.Vertices, Vertex{
				Position: p,
				Normal:   n,
				TexCoord: [2]float32{float32(i) / TorusSegments, float32(j) / TorusSides},
			})
		}
	}
	m.grid(TorusSegments, TorusSides, true)
	return m
}

// grid indexes a (rows+1)×(cols+1) vertex lattice. flip reverses the winding
// for lattices whose row and column directions are swapped.
func (m *Mesh) grid(rows, cols int, flip bool) {
	stride := uint32(cols + 1)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			a := uint32(i)*stride + uint32(j)
			b := a + stride
			if flip {
				m.Indices = append(m.Indices, a, b, a+1, a+1, b, b+1)
			} else {
				m.Indices = append(m.Indices, a, a+1, b, a+1, b+1, b)
			}
		}
	}
}

func normalize(v vec3) vec3 {
	l := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return v
	}
	return mul3(v, 1/l)
}
