package model

import (
	"github.com/Faultbox/objview/pkg/math"
)

// generateNormals assigns smooth normals to the vertices in missing, which
// maps an output vertex to its source position. Face normals are summed
// unnormalized, so larger faces weigh more, and accumulated per source
// position so that texture seams do not split the shading.
func generateNormals(mesh *Mesh, missing map[uint32]int) {
	sums := make(map[int]math.Vec3, len(missing))

	for _, tri := range mesh.Triangles {
		p0 := mesh.Positions[tri[0]]
		e1 := mesh.Positions[tri[1]].Sub(p0)
		e2 := mesh.Positions[tri[2]].Sub(p0)
		faceNormal := e1.Cross(e2)

		for _, idx := range tri {
			src, ok := missing[idx]
			if !ok {
				continue
			}
			sums[src] = sums[src].Add(faceNormal)
		}
	}

	for idx, src := range missing {
		mesh.Normals[idx] = sums[src].Normalize()
	}
}
