// Package meshio reads and writes triangle meshes as glTF 2.0 files.
// Files ending in .glb are binary; anything else is written as .gltf JSON
// with the buffer embedded as a data URI.
package meshio

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/chazu/lignin-bsp/pkg/csg"
	"github.com/chazu/lignin-bsp/pkg/kernel"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// attrColor1 carries the secondary vertex color.
const attrColor1 = "COLOR_1"

// ErrNoTriangles is returned by ReadFaces when a file holds no triangle
// primitives at all.
var ErrNoTriangles = errors.New("meshio: no triangle primitives")

// IsBinary reports whether path names a binary .glb file.
func IsBinary(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".glb")
}

// ReadFaces loads every triangle primitive of every mesh in a .gltf or
// .glb file. Node transforms are not applied. Missing normals, texture
// coordinates or colors are left zero.
func ReadFaces(path string) ([]csg.Face, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	var faces []csg.Face
	prims := 0
	for _, m := range doc.Meshes {
		for i, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			got, err := readPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", m.Name, i, err)
			}
			faces = append(faces, got...)
			prims++
		}
	}
	if prims == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoTriangles)
	}
	return faces, nil
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive) ([]csg.Face, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}
	verts := make([]csg.Vertex, len(positions))
	for i, p := range positions {
		verts[i].Pos = vec3(p)
	}

	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err := modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
		for i := range min(len(normals), len(verts)) {
			verts[i].Normal = vec3(normals[i])
		}
	}
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("read texture coordinates: %w", err)
		}
		for i := range min(len(uvs), len(verts)) {
			verts[i].UV = v2.Vec{X: float64(uvs[i][0]), Y: float64(uvs[i][1])}
		}
	}
	for _, c := range []struct {
		attr string
		set  func(v *csg.Vertex, c color.RGBA)
	}{
		{gltf.COLOR_0, func(v *csg.Vertex, c color.RGBA) { v.Color = c }},
		{attrColor1, func(v *csg.Vertex, c color.RGBA) { v.Color2 = c }},
	} {
		idx, ok := prim.Attributes[c.attr]
		if !ok {
			continue
		}
		colors, err := modeler.ReadColor(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", c.attr, err)
		}
		for i := range min(len(colors), len(verts)) {
			c.set(&verts[i], color.RGBA{R: colors[i][0], G: colors[i][1], B: colors[i][2], A: colors[i][3]})
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(verts))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	faces := make([]csg.Face, 0, len(indices)/3)
	for t := 0; t+2 < len(indices); t += 3 {
		a, b, c := indices[t], indices[t+1], indices[t+2]
		if int(a) >= len(verts) || int(b) >= len(verts) || int(c) >= len(verts) {
			return nil, fmt.Errorf("triangle %d: index out of range", t/3)
		}
		faces = append(faces, csg.Face{verts[a], verts[b], verts[c]})
	}
	return faces, nil
}

// WriteFaces saves faces as a single mesh, keeping every vertex attribute.
func WriteFaces(path string, faces []csg.Face) error {
	doc := gltf.NewDocument()
	addFaces(doc, "mesh", faces)
	return save(doc, path)
}

// Part is a named triangle list written as one glTF node.
type Part struct {
	Name  string
	Faces []csg.Face
}

// WriteParts saves one glTF node per part, in order.
func WriteParts(path string, parts []Part) error {
	doc := gltf.NewDocument()
	for i, p := range parts {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("part%d", i)
		}
		addFaces(doc, name, p.Faces)
	}
	return save(doc, path)
}

// WriteMeshes saves one glTF node per mesh, named after its part.
func WriteMeshes(path string, meshes []*kernel.Mesh) error {
	return WriteParts(path, PartsFromMeshes(meshes))
}

// PartsFromMeshes expands kernel meshes into parts.
func PartsFromMeshes(meshes []*kernel.Mesh) []Part {
	parts := make([]Part, len(meshes))
	for i, m := range meshes {
		parts[i] = Part{Name: m.PartName, Faces: m.Faces()}
	}
	return parts
}

// Paint sets the primary color of every vertex in place.
func Paint(faces []csg.Face, c color.RGBA) {
	for i := range faces {
		for j := range faces[i] {
			faces[i][j].Color = c
		}
	}
}

// addFaces appends a mesh and a node referencing it to the default scene.
// Empty face lists produce a node without a mesh.
func addFaces(doc *gltf.Document, name string, faces []csg.Face) {
	node := &gltf.Node{Name: name}
	if len(faces) > 0 {
		n := len(faces) * 3
		positions := make([][3]float32, 0, n)
		normals := make([][3]float32, 0, n)
		uvs := make([][2]float32, 0, n)
		colors := make([][4]uint8, 0, n)
		colors2 := make([][4]uint8, 0, n)
		indices := make([]uint32, 0, n)
		var hasUV, hasColor, hasColor2 bool

		for _, f := range faces {
			fn := f.Normal()
			for _, v := range f {
				nrm := v.Normal
				if nrm == (v3.Vec{}) {
					nrm = fn
				}
				indices = append(indices, uint32(len(positions)))
				positions = append(positions, float3(v.Pos))
				normals = append(normals, float3(nrm))
				uvs = append(uvs, [2]float32{float32(v.UV.X), float32(v.UV.Y)})
				colors = append(colors, rgba(v.Color))
				colors2 = append(colors2, rgba(v.Color2))
				hasUV = hasUV || v.UV != (v2.Vec{})
				hasColor = hasColor || v.Color != (color.RGBA{})
				hasColor2 = hasColor2 || v.Color2 != (color.RGBA{})
			}
		}

		attrs := map[string]int{
			gltf.POSITION: modeler.WritePosition(doc, positions),
			gltf.NORMAL:   modeler.WriteNormal(doc, normals),
		}
		if hasUV {
			attrs[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(doc, uvs)
		}
		if hasColor {
			attrs[gltf.COLOR_0] = modeler.WriteColor(doc, colors)
		}
		if hasColor2 {
			attrs[attrColor1] = modeler.WriteColor(doc, colors2)
		}

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: name,
			Primitives: []*gltf.Primitive{{
				Indices:    gltf.Index(modeler.WriteIndices(doc, indices)),
				Attributes: attrs,
				Mode:       gltf.PrimitiveTriangles,
			}},
		})
		node.Mesh = gltf.Index(len(doc.Meshes) - 1)
	}
	doc.Nodes = append(doc.Nodes, node)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
}

func save(doc *gltf.Document, path string) error {
	if len(doc.Accessors) == 0 {
		doc.Buffers = nil
	}
	var err error
	if IsBinary(path) {
		err = gltf.SaveBinary(doc, path)
	} else {
		for _, b := range doc.Buffers {
			b.EmbeddedResource()
		}
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func vec3(p [3]float32) v3.Vec {
	return v3.Vec{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
}

func float3(v v3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func rgba(c color.RGBA) [4]uint8 {
	return [4]uint8{c.R, c.G, c.B, c.A}
}
