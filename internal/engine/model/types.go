// Package model builds render-ready meshes from parsed OBJ documents.
package model

import (
	"github.com/Faultbox/objview/pkg/math"
)

// Vertex is the interleaved GPU vertex layout.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Triangle holds three indices into a Mesh's vertex attributes.
type Triangle [3]uint32

// MaterialGroup is a contiguous run of triangles sharing one material.
// Material is "" for faces that precede any usemtl.
type MaterialGroup struct {
	Material      string
	FirstTriangle int
	TriangleCount int
}

// Mesh holds deduplicated vertex attributes and the triangles that index
// them. Positions, Normals and Texcoords always have equal length.
type Mesh struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	Texcoords []math.Vec2
	Triangles []Triangle
	Groups    []MaterialGroup
	Bounds    Bounds
}

// BuildOptions contains options for mesh building.
type BuildOptions struct {
	// GenerateNormals fills in normals for vertices whose face corners
	// carry none, from the area-weighted normals of adjacent faces.
	GenerateNormals bool
}
