package csg

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Face is a triangle. Counter-clockwise winding, seen from outside the
// solid, defines the outward normal.
type Face [3]Vertex

// Normal returns the unit normal implied by the winding order, or the zero
// vector for a degenerate triangle.
func (f Face) Normal() v3.Vec {
	return normalize(f.cross())
}

// Plane returns the plane the face lies in. The second result is false when
// the face has no area and therefore no well-defined plane.
func (f Face) Plane() (Plane, bool) {
	n := f.Normal()
	if n == (v3.Vec{}) {
		return Plane{}, false
	}
	return Plane{Normal: n, W: n.Dot(f[0].Pos)}, true
}

// Inverted returns the face with vertex 0 and 2 swapped, which reverses the
// winding and therefore the outward normal. Vertex normals are negated too.
func (f Face) Inverted() Face {
	return Face{f[2].flip(), f[1].flip(), f[0].flip()}
}

// Area returns the surface area of the triangle.
func (f Face) Area() float64 {
	return f.cross().Length() / 2
}

// Positions returns the three vertex positions.
func (f Face) Positions() [3]v3.Vec {
	return [3]v3.Vec{f[0].Pos, f[1].Pos, f[2].Pos}
}

func (f Face) cross() v3.Vec {
	return f[1].Pos.Sub(f[0].Pos).Cross(f[2].Pos.Sub(f[0].Pos))
}

// SignedVolume returns the volume enclosed by a closed, outward-wound
// triangle mesh, as a sum of signed tetrahedra against the origin.
func SignedVolume(faces []Face) float64 {
	var vol float64
	for _, f := range faces {
		vol += f[0].Pos.Dot(f[1].Pos.Cross(f[2].Pos))
	}
	return vol / 6
}

// SurfaceArea returns the summed area of all faces.
func SurfaceArea(faces []Face) float64 {
	var a float64
	for _, f := range faces {
		a += f.Area()
	}
	return a
}

// NonDegenerate returns the faces whose area exceeds minArea.
func NonDegenerate(faces []Face, minArea float64) []Face {
	out := make([]Face, 0, len(faces))
	for _, f := range faces {
		if f.Area() > minArea {
			out = append(out, f)
		}
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the faces. An empty list
// yields two zero vectors.
func Bounds(faces []Face) (min, max v3.Vec) {
	if len(faces) == 0 {
		return
	}
	min, max = faces[0][0].Pos, faces[0][0].Pos
	for _, f := range faces {
		for _, v := range f {
			min = v3.Vec{X: minf(min.X, v.Pos.X), Y: minf(min.Y, v.Pos.Y), Z: minf(min.Z, v.Pos.Z)}
			max = v3.Vec{X: maxf(max.X, v.Pos.X), Y: maxf(max.Y, v.Pos.Y), Z: maxf(max.Z, v.Pos.Z)}
		}
	}
	return min, max
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
