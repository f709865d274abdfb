// Package bsp implements the kernel.Kernel interface in pure Go on top of
// the BSP-tree boolean engine in package csg. Solids are immutable triangle
// lists; every operation returns a new solid.
package bsp

import (
	"math"

	"github.com/chazu/lignin-bsp/pkg/csg"
	"github.com/chazu/lignin-bsp/pkg/kernel"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface checks.
var _ kernel.Kernel = (*BspKernel)(nil)
var _ kernel.Solid = (*bspSolid)(nil)

// DefaultSegments is used when Cylinder is asked for fewer than 3 segments.
const DefaultSegments = 32

// bspSolid wraps a closed, outward-wound triangle list.
type bspSolid struct {
	faces []csg.Face
}

// BoundingBox returns the axis-aligned bounding box of the solid.
func (s *bspSolid) BoundingBox() (min, max [3]float64) {
	lo, hi := csg.Bounds(s.faces)
	return [3]float64{lo.X, lo.Y, lo.Z}, [3]float64{hi.X, hi.Y, hi.Z}
}

// FromFaces wraps an existing triangle mesh as a solid. The mesh should be
// closed and wound counter-clockwise seen from outside.
func FromFaces(faces []csg.Face) kernel.Solid {
	return &bspSolid{faces: append([]csg.Face(nil), faces...)}
}

// Faces returns a copy of the triangles of a solid created by this kernel.
func Faces(s kernel.Solid) []csg.Face {
	return append([]csg.Face(nil), unwrap(s)...)
}

func unwrap(s kernel.Solid) []csg.Face {
	return s.(*bspSolid).faces
}

// BspKernel implements kernel.Kernel with BSP-tree mesh booleans.
type BspKernel struct{}

// New returns a new BspKernel.
func New() *BspKernel {
	return &BspKernel{}
}

// Name returns "bsp".
func (k *BspKernel) Name() string { return "bsp" }

// boxQuads lists box corners per side, counter-clockwise seen from outside.
// Corner i sits at (i&1, i>>1&1, i>>2&1) scaled by the box size.
var boxQuads = [6]struct {
	corners [4]int
	normal  v3.Vec
}{
	{[4]int{0, 4, 6, 2}, v3.Vec{X: -1}},
	{[4]int{1, 3, 7, 5}, v3.Vec{X: 1}},
	{[4]int{0, 1, 5, 4}, v3.Vec{Y: -1}},
	{[4]int{2, 6, 7, 3}, v3.Vec{Y: 1}},
	{[4]int{0, 2, 3, 1}, v3.Vec{Z: -1}},
	{[4]int{4, 5, 7, 6}, v3.Vec{Z: 1}},
}

// Box creates a box with the given dimensions and its minimum corner at the
// origin, matching the sdfx kernel's placement convention.
func (k *BspKernel) Box(x, y, z float64) kernel.Solid {
	faces := make([]csg.Face, 0, 12)
	for _, q := range boxQuads {
		var vs [4]csg.Vertex
		for i, c := range q.corners {
			vs[i] = csg.Vertex{
				Pos: v3.Vec{
					X: x * float64(c&1),
					Y: y * float64(c>>1&1),
					Z: z * float64(c>>2&1),
				},
				Normal: q.normal,
			}
		}
		faces = append(faces, csg.Triangulate(vs[:])...)
	}
	return &bspSolid{faces: faces}
}

// Cylinder creates a cylinder along the Z axis, centered at the origin, as
// a prism with the given number of sides.
func (k *BspKernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	if segments < 3 {
		segments = DefaultSegments
	}
	h := height / 2
	ring := func(i int, z float64) csg.Vertex {
		a := 2 * math.Pi * float64(i%segments) / float64(segments)
		return csg.Vertex{Pos: v3.Vec{X: radius * math.Cos(a), Y: radius * math.Sin(a), Z: z}}
	}
	top := csg.Vertex{Pos: v3.Vec{Z: h}, Normal: v3.Vec{Z: 1}}
	bottom := csg.Vertex{Pos: v3.Vec{Z: -h}, Normal: v3.Vec{Z: -1}}

	faces := make([]csg.Face, 0, segments*4)
	for i := 0; i < segments; i++ {
		b0, b1 := ring(i, -h), ring(i+1, -h)
		t0, t1 := ring(i, h), ring(i+1, h)

		side := csg.Triangulate([]csg.Vertex{b0, b1, t1, t0})
		faces = append(faces, withFlatNormals(side)...)

		t0.Normal, t1.Normal = top.Normal, top.Normal
		b0.Normal, b1.Normal = bottom.Normal, bottom.Normal
		faces = append(faces,
			csg.Face{top, t0, t1},
			csg.Face{bottom, b1, b0},
		)
	}
	return &bspSolid{faces: faces}
}

func withFlatNormals(faces []csg.Face) []csg.Face {
	for i := range faces {
		n := faces[i].Normal()
		for j := range faces[i] {
			faces[i][j].Normal = n
		}
	}
	return faces
}

// Union returns the boolean union of two solids.
func (k *BspKernel) Union(a, b kernel.Solid) kernel.Solid {
	return &bspSolid{faces: csg.Union(unwrap(a), unwrap(b))}
}

// Difference returns the boolean difference (a minus b).
func (k *BspKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return &bspSolid{faces: csg.Subtract(unwrap(a), unwrap(b))}
}

// Intersection returns the boolean intersection of two solids.
func (k *BspKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return &bspSolid{faces: csg.Intersect(unwrap(a), unwrap(b))}
}

// Translate moves the solid by (x, y, z).
func (k *BspKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return transform(s, m, sdf.Identity3d())
}

// Rotate rotates the solid by Euler angles (in degrees) around the X, Y, Z
// axes, applied in X, Y, Z order.
func (k *BspKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return transform(s, m, m)
}

// transform maps positions through m and normals through the rotation-only
// matrix rot.
func transform(s kernel.Solid, m, rot sdf.M44) kernel.Solid {
	src := unwrap(s)
	faces := make([]csg.Face, len(src))
	for i, f := range src {
		for j, v := range f {
			v.Pos = m.MulPosition(v.Pos)
			v.Normal = rot.MulPosition(v.Normal)
			faces[i][j] = v
		}
	}
	return &bspSolid{faces: faces}
}

// ToMesh flattens the solid into a render mesh. An empty solid yields an
// empty mesh, not an error.
func (k *BspKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	return kernel.MeshFromFaces(unwrap(s)), nil
}
