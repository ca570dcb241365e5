package debug

import "github.com/Faultbox/objview/pkg/math"

// BBoxWireframeVertexCount is the number of vertices for a box wireframe
// (12 edges, 2 endpoints each).
const BBoxWireframeVertexCount = 24

// BBoxWireframeVertices returns line-list positions, three floats per
// vertex, outlining the box from min to max.
func BBoxWireframeVertices(min, max math.Vec3) []float32 {
	corner := func(x, y, z bool) [3]float32 {
		c := min
		if x {
			c.X = max.X
		}
		if y {
			c.Y = max.Y
		}
		if z {
			c.Z = max.Z
		}
		return c.Array()
	}

	out := make([]float32, 0, BBoxWireframeVertexCount*3)
	line := func(a, b [3]float32) {
		out = append(out, a[0], a[1], a[2], b[0], b[1], b[2])
	}

	for _, y := range []bool{false, true} {
		// Bottom then top ring
		line(corner(false, y, false), corner(true, y, false))
		line(corner(true, y, false), corner(true, y, true))
		line(corner(true, y, true), corner(false, y, true))
		line(corner(false, y, true), corner(false, y, false))
	}
	for _, xz := range [][2]bool{{false, false}, {true, false}, {true, true}, {false, true}} {
		line(corner(xz[0], false, xz[1]), corner(xz[0], true, xz[1]))
	}
	return out
}
