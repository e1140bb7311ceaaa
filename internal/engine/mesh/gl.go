package mesh

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/stilllife/internal/logger"
)

type gpuMesh struct {
	vao, vbo, ebo uint32
	geometry      Geometry
}

// Library holds the uploaded primitives. It requires a current GL context.
type Library struct {
	meshes map[Kind]*gpuMesh
	missed map[Kind]bool
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{
		meshes: make(map[Kind]*gpuMesh),
		missed: make(map[Kind]bool),
	}
}

// Load generates and uploads kind. Loading a kind twice is a no-op.
func (l *Library) Load(kind Kind) error {
	if _, ok := l.meshes[kind]; ok {
		return nil
	}
	g, err := Build(kind)
	if err != nil {
		return err
	}
	if len(g.Vertices) == 0 || len(g.Indices) == 0 {
		return fmt.Errorf("primitive %q has no geometry", kind)
	}

	m := &gpuMesh{geometry: g}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	vertexSize := int(unsafe.Sizeof(Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Vertices)*vertexSize, unsafe.Pointer(&g.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, unsafe.Pointer(&g.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	l.meshes[kind] = m
	logger.Debug("mesh uploaded",
		zap.String("kind", string(kind)),
		zap.Int("vertices", len(g.Vertices)),
		zap.Int("indices", len(g.Indices)),
		zap.Uint32("vao", m.vao),
	)
	return nil
}

// Draw issues the draw calls for the parts of kind selected by caps. A kind
// that was never loaded is skipped and logged once.
func (l *Library) Draw(kind Kind, caps Caps) {
	m, ok := l.meshes[kind]
	if !ok {
		if !l.missed[kind] {
			l.missed[kind] = true
			logger.Warn("draw of unloaded primitive", zap.String("kind", string(kind)))
		}
		return
	}
	gl.BindVertexArray(m.vao)
	for _, grp := range m.geometry.Ranges(caps) {
		gl.DrawElementsWithOffset(gl.TRIANGLES, grp.Count, gl.UNSIGNED_INT, uintptr(grp.Start*4))
	}
	gl.BindVertexArray(0)
}

// Release deletes every uploaded buffer.
func (l *Library) Release() {
	for kind, m := range l.meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
		delete(l.meshes, kind)
	}
}
