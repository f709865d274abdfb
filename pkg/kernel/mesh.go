package kernel

import (
	"github.com/chazu/lignin-bsp/pkg/csg"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // which scene part this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// MeshFromFaces flattens triangles into a Mesh with three unshared vertices
// per face. Vertices without a normal get the face normal.
func MeshFromFaces(faces []csg.Face) *Mesh {
	m := &Mesh{
		Vertices: make([]float32, 0, len(faces)*9),
		Normals:  make([]float32, 0, len(faces)*9),
		Indices:  make([]uint32, 0, len(faces)*3),
	}
	for _, f := range faces {
		fn := f.Normal()
		for _, v := range f {
			n := v.Normal
			if n == (v3.Vec{}) {
				n = fn
			}
			m.Indices = append(m.Indices, uint32(len(m.Vertices)/3))
			m.Vertices = append(m.Vertices, float32(v.Pos.X), float32(v.Pos.Y), float32(v.Pos.Z))
			m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
		}
	}
	return m
}

// Faces expands the indexed mesh back into triangles. Triangles that refer
// to vertices outside the mesh are skipped.
func (m *Mesh) Faces() []csg.Face {
	nv := uint32(m.VertexCount())
	hasNormals := len(m.Normals) == len(m.Vertices)
	faces := make([]csg.Face, 0, m.TriangleCount())
	for t := 0; t+2 < len(m.Indices); t += 3 {
		var f csg.Face
		ok := true
		for j := 0; j < 3; j++ {
			i := m.Indices[t+j]
			if i >= nv {
				ok = false
				break
			}
			f[j].Pos = v3.Vec{
				X: float64(m.Vertices[i*3]),
				Y: float64(m.Vertices[i*3+1]),
				Z: float64(m.Vertices[i*3+2]),
			}
			if hasNormals {
				f[j].Normal = v3.Vec{
					X: float64(m.Normals[i*3]),
					Y: float64(m.Normals[i*3+1]),
					Z: float64(m.Normals[i*3+2]),
				}
			}
		}
		if ok {
			faces = append(faces, f)
		}
	}
	return faces
}
