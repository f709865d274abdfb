package csg

import (
	"image/color"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Vertex is a mesh vertex with position, normal, texture coordinate and two
// RGBA colors. It is a plain value type.
type Vertex struct {
	Pos    v3.Vec
	Normal v3.Vec
	UV     v2.Vec
	Color  color.RGBA
	Color2 color.RGBA
}

// V returns a vertex at (x, y, z) with every other attribute zeroed.
func V(x, y, z float64) Vertex {
	return Vertex{Pos: v3.Vec{X: x, Y: y, Z: z}}
}

// Lerp interpolates every attribute of a and b at t, colors included.
// t = 0 yields a, t = 1 yields b.
func Lerp(a, b Vertex, t float64) Vertex {
	return Vertex{
		Pos:    lerp3(a.Pos, b.Pos, t),
		Normal: lerp3(a.Normal, b.Normal, t),
		UV: v2.Vec{
			X: a.UV.X + (b.UV.X-a.UV.X)*t,
			Y: a.UV.Y + (b.UV.Y-a.UV.Y)*t,
		},
		Color:  lerpColor(a.Color, b.Color, t),
		Color2: lerpColor(a.Color2, b.Color2, t),
	}
}

// flip negates the vertex normal.
func (v Vertex) flip() Vertex {
	v.Normal = v.Normal.MulScalar(-1)
	return v
}

func lerp3(a, b v3.Vec, t float64) v3.Vec {
	return a.Add(b.Sub(a).MulScalar(t))
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: lerpByte(a.R, b.R, t),
		G: lerpByte(a.G, b.G, t),
		B: lerpByte(a.B, b.B, t),
		A: lerpByte(a.A, b.A, t),
	}
}

func lerpByte(a, b uint8, t float64) uint8 {
	x := math.Round(float64(a) + (float64(b)-float64(a))*t)
	switch {
	case x <= 0:
		return 0
	case x >= 255:
		return 255
	}
	return uint8(x)
}

// normalize returns v scaled to unit length, or the zero vector when v has
// no length. It never produces NaN.
func normalize(v v3.Vec) v3.Vec {
	l := v.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return v3.Vec{}
	}
	return v.MulScalar(1 / l)
}
