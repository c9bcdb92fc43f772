// Package mesh tessellates the unit primitives the scene is built from and
// uploads them to the GPU.
package mesh

import (
	"fmt"
	"strings"
)

// Vertex is the interleaved layout bound at attribute locations 0, 1 and 2.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Mesh is CPU-side triangle data ready for upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Triangles returns the triangle count.
func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}

func (m *Mesh) computeBounds() {
	if len(m.Vertices) == 0 {
		return
	}
	b := Bounds{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			b.Min[i] = min(b.Min[i], v.Position[i])
			b.Max[i] = max(b.Max[i], v.Position[i])
		}
	}
	m.Bounds = b
}

// Kind names a primitive.
type Kind uint8

const (
	Box Kind = iota
	Plane
	Cylinder
	TaperedCylinder
	Torus
	Sphere
)

// Kinds lists every primitive in load order.
var Kinds = []Kind{Box, Plane, Cylinder, TaperedCylinder, Torus, Sphere}

var kindNames = [...]string{
	Box:             "box",
	Plane:           "plane",
	Cylinder:        "cylinder",
	TaperedCylinder: "tapered_cylinder",
	Torus:           "torus",
	Sphere:          "sphere",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown mesh kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
