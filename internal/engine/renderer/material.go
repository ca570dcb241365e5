package renderer

import (
	"github.com/Faultbox/objview/internal/engine/model"
	"github.com/Faultbox/objview/pkg/formats"
)

// materialUniforms is the per-batch shader state derived from a material.
type materialUniforms struct {
	Ambient    [3]float32
	Diffuse    [3]float32
	Specular   [3]float32
	Emissive   [3]float32
	Shininess  float32
	Opacity    float32
	SpecularOn bool
	DiffuseMap *formats.TextureMap
}

// defaultMaterial shades faces without a material.
var defaultMaterial = materialUniforms{
	Ambient:  [3]float32{0.15, 0.15, 0.15},
	Diffuse:  [3]float32{0.8, 0.8, 0.8},
	Specular: [3]float32{0.2, 0.2, 0.2},
	// Shininess only matters when SpecularOn.
	Shininess:  32,
	Opacity:    1,
	SpecularOn: true,
}

// boundsMaterial colors the bounding box overlay.
var boundsMaterial = materialUniforms{
	Diffuse: [3]float32{1, 0.85, 0.2},
	Opacity: 1,
}

func uniformsFor(m *formats.Material) materialUniforms {
	if m == nil {
		return defaultMaterial
	}
	return materialUniforms{
		Ambient:    m.Ambient.Array(),
		Diffuse:    m.Diffuse.Array(),
		Specular:   m.Specular.Array(),
		Emissive:   m.Emissive.Array(),
		Shininess:  m.Shininess,
		Opacity:    1 - m.Transparency,
		SpecularOn: m.Illum >= 2,
		DiffuseMap: m.DiffuseMap,
	}
}

// batch is one indexed draw call over a run of triangles.
type batch struct {
	FirstIndex int32
	IndexCount int32
	Material   materialUniforms
}

func (b batch) transparent() bool {
	return b.Material.Opacity < 1
}

// buildBatches turns material groups into draw calls. Opaque batches come
// first so that blended ones are drawn over finished depth.
func buildBatches(mesh *model.Mesh, obj *formats.OBJ) []batch {
	var opaque, blended []batch
	for _, g := range mesh.Groups {
		var mat *formats.Material
		if obj != nil {
			mat = obj.MaterialNamed(g.Material)
		}
		b := batch{
			FirstIndex: int32(g.FirstTriangle * 3),
			IndexCount: int32(g.TriangleCount * 3),
			Material:   uniformsFor(mat),
		}
		if b.transparent() {
			blended = append(blended, b)
		} else {
			opaque = append(opaque, b)
		}
	}
	return append(opaque, blended...)
}

// textureSet lists each distinct texture used by batches once, in first-use
// order.
func textureSet(batches []batch) []*formats.TextureMap {
	seen := make(map[*formats.TextureMap]bool)
	var out []*formats.TextureMap
	for _, b := range batches {
		tex := b.Material.DiffuseMap
		if tex == nil || seen[tex] {
			continue
		}
		seen[tex] = true
		out = append(out, tex)
	}
	return out
}
