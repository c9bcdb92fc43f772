package mesh

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/attic3d/internal/logger"
)

// Drawer issues the draw call for a primitive.
type Drawer interface {
	Draw(k Kind)
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

// Library holds every primitive uploaded once.
type Library struct {
	meshes map[Kind]*gpuMesh
	log    *zap.Logger
}

var _ Drawer = (*Library)(nil)

// NewLibrary tessellates and uploads all primitive kinds.
func NewLibrary() (*Library, error) {
	l := &Library{
		meshes: make(map[Kind]*gpuMesh, len(Kinds)),
		log:    logger.Named("mesh"),
	}
	for _, k := range Kinds {
		m := Build(k)
		g, err := upload(m)
		if err != nil {
			l.Destroy()
			return nil, fmt.Errorf("upload %s: %w", k, err)
		}
		l.meshes[k] = g
		l.log.Debug("mesh uploaded",
			zap.Stringer("kind", k),
			zap.Int("vertices", len(m.Vertices)),
			zap.Int("triangles", m.Triangles()))
	}
	return l, nil
}

func upload(m *Mesh) (*gpuMesh, error) {
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return nil, fmt.Errorf("empty mesh")
	}
	g := &gpuMesh{count: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	vertexSize := int(unsafe.Sizeof(Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*vertexSize, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord (location 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return g, nil
}

// Draw renders one primitive with the current program state.
func (l *Library) Draw(k Kind) {
	g, ok := l.meshes[k]
	if !ok {
		return
	}
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Destroy releases all GPU buffers.
func (l *Library) Destroy() {
	for k, g := range l.meshes {
		gl.DeleteVertexArrays(1, &g.vao)
		gl.DeleteBuffers(1, &g.vbo)
		gl.DeleteBuffers(1, &g.ebo)
		delete(l.meshes, k)
	}
}
