package csg

import (
	"fmt"
	"strings"
)

// Op selects a boolean operation.
type Op int

const (
	OpUnion Op = iota
	OpIntersect
	OpSubtract
)

func (o Op) String() string {
	switch o {
	case OpUnion:
		return "union"
	case OpIntersect:
		return "intersect"
	case OpSubtract:
		return "subtract"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// ParseOp maps an operation name to an Op. Both the short and the long
// spelling of each operation are accepted.
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "union", "combine":
		return OpUnion, nil
	case "intersect", "intersection":
		return OpIntersect, nil
	case "subtract", "difference":
		return OpSubtract, nil
	}
	return 0, fmt.Errorf("csg: unknown operation %q", s)
}

// Combine applies op to the solids a and b. The only error is an unknown op;
// an empty result is valid and returned as an empty, non-nil slice.
func Combine(op Op, a, b []Face) ([]Face, error) {
	switch op {
	case OpUnion:
		return Union(a, b), nil
	case OpIntersect:
		return Intersect(a, b), nil
	case OpSubtract:
		return Subtract(a, b), nil
	}
	return nil, fmt.Errorf("csg: unknown operation %v", op)
}

// Union returns the boundary of the space inside a or b.
func Union(a, b []Face) []Face {
	ta, tb := NewNode(a), NewNode(b)
	union(ta, tb)
	return ta.AllFaces()
}

// Intersect returns the boundary of the space inside both a and b.
func Intersect(a, b []Face) []Face {
	ta, tb := NewNode(a), NewNode(b)
	ta.Invert()
	tb.CutTreeOut(ta)
	tb.Invert()
	ta.CutTreeOut(tb)
	tb.CutTreeOut(ta)
	ta.AddFaces(tb.AllFaces())
	ta.Invert()
	return ta.AllFaces()
}

// Subtract returns the boundary of the space inside a but not inside b.
func Subtract(a, b []Face) []Face {
	ta, tb := NewNode(a), NewNode(b)
	ta.Invert()
	union(ta, tb)
	ta.Invert()
	return ta.AllFaces()
}

// union merges b into a in place. b is consumed.
func union(a, b *Node) {
	a.CutTreeOut(b)
	b.CutTreeOut(a)
	b.Invert()
	b.CutTreeOut(a)
	b.Invert()
	a.AddFaces(b.AllFaces())
}
