package csg

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Epsilon is the tolerance on signed point-to-plane distance below which a
// point counts as lying on the plane.
const Epsilon = 1e-8

// Classification places a point or a triangle relative to a plane. Triangle
// classes are the bitwise OR of their vertex classes.
type Classification uint8

const (
	Coplanar Classification = 0
	Front    Classification = 1
	Back     Classification = 2
	Spanning Classification = Front | Back
)

func (c Classification) String() string {
	switch c {
	case Coplanar:
		return "coplanar"
	case Front:
		return "front"
	case Back:
		return "back"
	case Spanning:
		return "spanning"
	}
	return "unknown"
}

// Plane is the set of points p with dot(Normal, p) == W.
type Plane struct {
	Normal v3.Vec
	W      float64
}

// Distance returns the signed distance from p to the plane, positive on the
// side the normal points to.
func (p Plane) Distance(pt v3.Vec) float64 {
	return p.Normal.Dot(pt) - p.W
}

// Classify returns Front, Back or Coplanar for a single point.
func (p Plane) Classify(pt v3.Vec) Classification {
	d := p.Distance(pt)
	switch {
	case d < -Epsilon:
		return Back
	case d > Epsilon:
		return Front
	}
	return Coplanar
}

// ClassifyFace folds the three vertex classes of f into one.
func (p Plane) ClassifyFace(f Face) Classification {
	return p.Classify(f[0].Pos) | p.Classify(f[1].Pos) | p.Classify(f[2].Pos)
}

// Flip returns the same plane facing the other way.
func (p Plane) Flip() Plane {
	return Plane{Normal: p.Normal.MulScalar(-1), W: -p.W}
}
