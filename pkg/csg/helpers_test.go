package csg

import (
	"fmt"
	"math"
	"sort"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// cubeQuads lists the corners of each cube side, counter-clockwise seen from
// outside. Corner i sits at (i&1, i>>1&1, i>>2&1).
var cubeQuads = [6][4]int{
	{0, 4, 6, 2}, // -x
	{1, 3, 7, 5}, // +x
	{0, 1, 5, 4}, // -y
	{2, 6, 7, 3}, // +y
	{0, 2, 3, 1}, // -z
	{4, 5, 7, 6}, // +z
}

// cube returns the 12 outward-wound triangles of the box [min, max].
func cube(min, max v3.Vec) []Face {
	corner := func(i int) Vertex {
		p := min
		if i&1 != 0 {
			p.X = max.X
		}
		if i&2 != 0 {
			p.Y = max.Y
		}
		if i&4 != 0 {
			p.Z = max.Z
		}
		return Vertex{Pos: p}
	}
	faces := make([]Face, 0, 12)
	for _, q := range cubeQuads {
		a, b, c, d := corner(q[0]), corner(q[1]), corner(q[2]), corner(q[3])
		faces = append(faces, Face{a, b, c}, Face{a, c, d})
	}
	return faces
}

func unitCube(offset float64) []Face {
	return cube(
		v3.Vec{X: offset, Y: offset, Z: offset},
		v3.Vec{X: offset + 1, Y: offset + 1, Z: offset + 1},
	)
}

// faceKey identifies a face by its ordered vertex positions.
func faceKey(f Face) string {
	return fmt.Sprintf("%.9g,%.9g,%.9g|%.9g,%.9g,%.9g|%.9g,%.9g,%.9g",
		f[0].Pos.X, f[0].Pos.Y, f[0].Pos.Z,
		f[1].Pos.X, f[1].Pos.Y, f[1].Pos.Z,
		f[2].Pos.X, f[2].Pos.Y, f[2].Pos.Z)
}

func faceKeys(faces []Face) []string {
	keys := make([]string, len(faces))
	for i, f := range faces {
		keys[i] = faceKey(f)
	}
	sort.Strings(keys)
	return keys
}

// assertSameFaces fails unless got and want hold the same multiset of faces
// (positions and winding).
func assertSameFaces(t *testing.T, got, want []Face) {
	t.Helper()
	g, w := faceKeys(got), faceKeys(want)
	if len(g) != len(w) {
		t.Fatalf("face count = %d, want %d", len(g), len(w))
	}
	for i := range g {
		if g[i] != w[i] {
			t.Fatalf("face multiset differs at %d: got %s, want %s", i, g[i], w[i])
		}
	}
}

func assertNear(t *testing.T, what string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %.12f, want %.12f (tol %g)", what, got, want, tol)
	}
}
