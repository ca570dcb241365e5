package model

import (
	"fmt"

	"github.com/fogleman/simplify"
)

// SimplifyMesh converts the triangles to the float64 triangle soup used by
// the simplify package. Normals and texcoords are dropped.
func (m *Mesh) SimplifyMesh() *simplify.Mesh {
	tris := make([]*simplify.Triangle, len(m.Triangles))
	for i, tri := range m.Triangles {
		var corners [3]simplify.Vector
		for c, idx := range tri {
			p := m.Positions[idx]
			corners[c] = simplify.Vector{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
		}
		tris[i] = &simplify.Triangle{V1: corners[0], V2: corners[1], V3: corners[2]}
	}
	return &simplify.Mesh{Triangles: tris}
}

// WriteSTL saves the mesh as binary STL. A factor in (0, 1) first reduces
// the triangle count to roughly that fraction with quadric edge collapse.
// It returns the number of triangles written.
func (m *Mesh) WriteSTL(path string, factor float64) (int, error) {
	if factor <= 0 || factor > 1 {
		return 0, fmt.Errorf("simplify factor %v outside (0, 1]", factor)
	}

	out := m.SimplifyMesh()
	if factor < 1 {
		out = out.Simplify(factor)
	}
	if err := out.SaveBinarySTL(path); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return len(out.Triangles), nil
}
