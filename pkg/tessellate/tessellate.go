// Package tessellate turns an evaluated scene into triangle meshes using a
// geometry kernel. One mesh is produced per part.
package tessellate

import (
	"fmt"

	"github.com/chazu/lignin-bsp/pkg/engine"
	"github.com/chazu/lignin-bsp/pkg/kernel"
)

// Tessellate produces one mesh per scene part, in definition order, using
// the provided geometry kernel. Parts whose solid is empty (a boolean that
// removed everything) still get a mesh, with no triangles. The scene is
// never mutated.
func Tessellate(s *engine.Scene, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if s == nil {
		return nil, nil
	}

	meshes := make([]*kernel.Mesh, 0, s.Len())
	for _, p := range s.Parts {
		if p.Solid == nil {
			return nil, fmt.Errorf("tessellate: part %q has no solid", p.Name)
		}
		mesh, err := k.ToMesh(p.Solid)
		if err != nil {
			return nil, fmt.Errorf("tessellate: ToMesh failed for part %q: %w", p.Name, err)
		}
		mesh.PartName = p.Name
		meshes = append(meshes, mesh)
	}

	return meshes, nil
}

// TriangleCount sums the triangles of all meshes.
func TriangleCount(meshes []*kernel.Mesh) int {
	n := 0
	for _, m := range meshes {
		n += m.TriangleCount()
	}
	return n
}
