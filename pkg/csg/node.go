package csg

// Node is a BSP tree node. It owns a splitting plane, the faces lying in that
// plane, and optional front and back subtrees. A node without a plane passes
// everything through: it clips nothing and behaves like open space.
//
// A tree is mutated in place by AddFaces, Invert and CutTreeOut. Nodes are
// never shared between parents, so dropping the root drops the whole tree.
type Node struct {
	plane    Plane
	hasPlane bool
	faces    []Face
	front    *Node
	back     *Node
}

// NewNode builds a tree from faces.
func NewNode(faces []Face) *Node {
	n := &Node{}
	n.AddFaces(faces)
	return n
}

// Plane returns the splitting plane, if the node has one yet.
func (n *Node) Plane() (Plane, bool) {
	return n.plane, n.hasPlane
}

// Faces returns the faces stored at this node, all coplanar with its plane.
func (n *Node) Faces() []Face {
	return n.faces
}

// Front returns the front subtree, or nil.
func (n *Node) Front() *Node { return n.front }

// Back returns the back subtree, or nil.
func (n *Node) Back() *Node { return n.back }

// AddFaces inserts faces into the tree. An unseeded node takes the plane of
// the first non-degenerate face in the batch. Every face of the batch is
// split against the plane; coplanar pieces stay here, the rest descend.
func (n *Node) AddFaces(faces []Face) {
	if len(faces) == 0 {
		return
	}
	seed := -1
	if !n.hasPlane {
		for i, f := range faces {
			if p, ok := f.Plane(); ok {
				n.plane, n.hasPlane = p, true
				seed = i
				break
			}
		}
		if !n.hasPlane {
			// Nothing here has area; there is no plane to split by.
			n.faces = append(n.faces, faces...)
			return
		}
		// The seed face defines the plane, so it always stays here even if
		// rounding would classify one of its vertices off the plane.
		n.faces = append(n.faces, faces[seed])
	}

	var r SplitResult
	for i, f := range faces {
		if i != seed {
			r.add(n.plane, f)
		}
	}
	n.faces = append(n.faces, r.CoplanarFront...)
	n.faces = append(n.faces, r.CoplanarBack...)

	if len(r.Front) > 0 {
		if n.front == nil {
			n.front = &Node{}
		}
		n.front.AddFaces(r.Front)
	}
	if len(r.Back) > 0 {
		if n.back == nil {
			n.back = &Node{}
		}
		n.back.AddFaces(r.Back)
	}
}

// AllFaces returns every face in the tree: this node's, then the front
// subtree's, then the back subtree's.
func (n *Node) AllFaces() []Face {
	out := make([]Face, 0, n.Len())
	return n.appendFaces(out)
}

func (n *Node) appendFaces(out []Face) []Face {
	out = append(out, n.faces...)
	if n.front != nil {
		out = n.front.appendFaces(out)
	}
	if n.back != nil {
		out = n.back.appendFaces(out)
	}
	return out
}

// Invert turns the tree into its complement: inside becomes outside.
func (n *Node) Invert() {
	if n.hasPlane {
		n.plane = n.plane.Flip()
	}
	for i := range n.faces {
		n.faces[i] = n.faces[i].Inverted()
	}
	if n.front != nil {
		n.front.Invert()
	}
	if n.back != nil {
		n.back.Invert()
	}
	n.front, n.back = n.back, n.front
}

// FilterList removes from faces every piece that lies inside the solid this
// tree represents and returns the remainder. The input slice is not modified.
func (n *Node) FilterList(faces []Face) []Face {
	if !n.hasPlane {
		return append([]Face(nil), faces...)
	}

	var r SplitResult
	for _, f := range faces {
		r.add(n.plane, f)
	}
	front := append(r.Front, r.CoplanarFront...)
	back := append(r.Back, r.CoplanarBack...)

	if n.front != nil {
		front = n.front.FilterList(front)
	}
	if n.back == nil {
		return front
	}
	return append(front, n.back.FilterList(back)...)
}

// CutTreeOut removes from this tree all geometry inside the solid
// represented by other.
func (n *Node) CutTreeOut(other *Node) {
	n.faces = other.FilterList(n.faces)
	if n.front != nil {
		n.front.CutTreeOut(other)
	}
	if n.back != nil {
		n.back.CutTreeOut(other)
	}
}

// Len returns the number of faces in the tree.
func (n *Node) Len() int {
	c := len(n.faces)
	if n.front != nil {
		c += n.front.Len()
	}
	if n.back != nil {
		c += n.back.Len()
	}
	return c
}

// Count returns the number of nodes in the tree.
func (n *Node) Count() int {
	c := 1
	if n.front != nil {
		c += n.front.Count()
	}
	if n.back != nil {
		c += n.back.Count()
	}
	return c
}

// Depth returns the length of the longest root-to-leaf path, counting nodes.
func (n *Node) Depth() int {
	d := 0
	if n.front != nil {
		d = n.front.Depth()
	}
	if n.back != nil {
		if bd := n.back.Depth(); bd > d {
			d = bd
		}
	}
	return d + 1
}
