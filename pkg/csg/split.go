package csg

// SplitResult holds the pieces of one face after splitting it by a plane.
// Coplanar faces are sorted by facing: CoplanarFront when the face normal
// agrees with the plane normal, CoplanarBack otherwise.
type SplitResult struct {
	CoplanarFront []Face
	CoplanarBack  []Face
	Front         []Face
	Back          []Face
}

// Split partitions f by p. Faces wholly on one side are returned unmodified;
// spanning faces are cut along the plane and fan-triangulated on each side.
func Split(p Plane, f Face) SplitResult {
	var r SplitResult
	r.add(p, f)
	return r
}

// add splits f by p and appends the pieces to r.
func (r *SplitResult) add(p Plane, f Face) {
	var classes [3]Classification
	var faceClass Classification
	for i := range f {
		classes[i] = p.Classify(f[i].Pos)
		faceClass |= classes[i]
	}

	switch faceClass {
	case Coplanar:
		if p.Normal.Dot(f.Normal()) > 0 {
			r.CoplanarFront = append(r.CoplanarFront, f)
		} else {
			r.CoplanarBack = append(r.CoplanarBack, f)
		}
	case Front:
		r.Front = append(r.Front, f)
	case Back:
		r.Back = append(r.Back, f)
	case Spanning:
		front := make([]Vertex, 0, 4)
		back := make([]Vertex, 0, 4)
		for i := 0; i < 3; i++ {
			j := (i + 1) % 3
			ci, cj := classes[i], classes[j]
			vi, vj := f[i], f[j]
			if ci != Back {
				front = append(front, vi)
			}
			if ci != Front {
				back = append(back, vi)
			}
			if ci|cj == Spanning {
				t := (p.W - p.Normal.Dot(vi.Pos)) / p.Normal.Dot(vj.Pos.Sub(vi.Pos))
				v := Lerp(vi, vj, t)
				front = append(front, v)
				back = append(back, v)
			}
		}
		r.Front = append(r.Front, Triangulate(front)...)
		r.Back = append(r.Back, Triangulate(back)...)
	}
}

// Triangulate fans a convex polygon into len(poly)-2 triangles around its
// first vertex. Polygons with fewer than three vertices yield nothing.
func Triangulate(poly []Vertex) []Face {
	if len(poly) < 3 {
		return nil
	}
	out := make([]Face, 0, len(poly)-2)
	for i := 2; i < len(poly); i++ {
		out = append(out, Face{poly[0], poly[i-1], poly[i]})
	}
	return out
}
