package model

import (
	"fmt"

	"github.com/Faultbox/objview/pkg/formats"
	"github.com/Faultbox/objview/pkg/math"
)

// vertexKey identifies one unique output vertex by the 0-based attribute
// indices a face corner references. Absent components keep formats.Absent.
type vertexKey struct {
	p, t, n int
}

// BuildMesh creates a deduplicated mesh from a parsed OBJ document.
// Corners that reference the same position, texcoord and normal share one
// output vertex. Missing texcoords and normals are stored as zero values.
func BuildMesh(obj *formats.OBJ, opts BuildOptions) (*Mesh, error) {
	mesh := &Mesh{
		Bounds:    EmptyBounds(),
		Triangles: make([]Triangle, 0, len(obj.Faces)),
	}

	index := make(map[vertexKey]uint32)
	// Output vertices without a source normal, by source position.
	var missingNormal map[uint32]int
	if opts.GenerateNormals {
		missingNormal = make(map[uint32]int)
	}

	for fi, face := range obj.Faces {
		var tri Triangle
		for ci, ref := range face.Corners {
			key := vertexKey{p: ref.Position, t: ref.Texcoord, n: ref.Normal}
			if idx, ok := index[key]; ok {
				tri[ci] = idx
				continue
			}

			if err := checkRef(obj, ref); err != nil {
				return nil, fmt.Errorf("face %d corner %d: %w", fi, ci, err)
			}

			idx := uint32(len(mesh.Positions))
			pos := obj.Positions[ref.Position]
			var normal math.Vec3
			if ref.HasNormal() {
				normal = obj.Normals[ref.Normal]
			} else if missingNormal != nil {
				missingNormal[idx] = ref.Position
			}
			var uv math.Vec2
			if ref.HasTexcoord() {
				uv = obj.Texcoords[ref.Texcoord]
			}

			mesh.Positions = append(mesh.Positions, pos)
			mesh.Normals = append(mesh.Normals, normal)
			mesh.Texcoords = append(mesh.Texcoords, uv)
			mesh.Bounds.Extend(pos)

			index[key] = idx
			tri[ci] = idx
		}

		mesh.Triangles = append(mesh.Triangles, tri)
		mesh.addToGroup(face.Material)
	}

	if len(missingNormal) > 0 {
		generateNormals(mesh, missingNormal)
	}

	return mesh, nil
}

// LoadFile parses the OBJ file at path with lib and builds its mesh.
// The parsed document is returned alongside for material lookups.
func LoadFile(path string, lib *formats.MaterialLibrary, opts BuildOptions) (*Mesh, *formats.OBJ, error) {
	obj, err := formats.ParseOBJFile(path, lib)
	if err != nil {
		return nil, nil, err
	}
	mesh, err := BuildMesh(obj, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return mesh, obj, nil
}

func checkRef(obj *formats.OBJ, ref formats.FaceVertexRef) error {
	if ref.Position < 0 || ref.Position >= len(obj.Positions) {
		return fmt.Errorf("%w: position %d of %d", formats.ErrReference, ref.Position+1, len(obj.Positions))
	}
	if ref.HasTexcoord() && (ref.Texcoord < 0 || ref.Texcoord >= len(obj.Texcoords)) {
		return fmt.Errorf("%w: texcoord %d of %d", formats.ErrReference, ref.Texcoord+1, len(obj.Texcoords))
	}
	if ref.HasNormal() && (ref.Normal < 0 || ref.Normal >= len(obj.Normals)) {
		return fmt.Errorf("%w: normal %d of %d", formats.ErrReference, ref.Normal+1, len(obj.Normals))
	}
	return nil
}

// addToGroup records the newest triangle under material, extending the last
// group when the material is unchanged.
func (m *Mesh) addToGroup(material string) {
	if n := len(m.Groups); n > 0 && m.Groups[n-1].Material == material {
		m.Groups[n-1].TriangleCount++
		return
	}
	m.Groups = append(m.Groups, MaterialGroup{
		Material:      material,
		FirstTriangle: len(m.Triangles) - 1,
		TriangleCount: 1,
	})
}

// VertexCount returns the number of unique vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// Vertices returns the attributes interleaved for upload.
func (m *Mesh) Vertices() []Vertex {
	out := make([]Vertex, len(m.Positions))
	for i := range out {
		out[i] = Vertex{
			Position: m.Positions[i].Array(),
			Normal:   m.Normals[i].Array(),
			TexCoord: m.Texcoords[i].Array(),
		}
	}
	return out
}

// Indices returns the triangle list flattened into an index buffer.
func (m *Mesh) Indices() []uint32 {
	out := make([]uint32, 0, len(m.Triangles)*3)
	for _, tri := range m.Triangles {
		out = append(out, tri[0], tri[1], tri[2])
	}
	return out
}

// NormalizeTransform returns the uniform scale and translation that fit the
// mesh into the cube [-1, 1]: translate by -center, then scale by
// 2 / largest extent. A flat or empty box scales by 1.
func (m *Mesh) NormalizeTransform() (scale float32, translate math.Vec3) {
	scale = 1
	if extent := m.Bounds.Size().MaxComponent(); extent > 0 {
		scale = 2 / extent
	}
	return scale, m.Bounds.Center().Neg()
}

// NormalizeMatrix returns NormalizeTransform as a model matrix.
func (m *Mesh) NormalizeMatrix() math.Mat4 {
	scale, translate := m.NormalizeTransform()
	return math.Scale(scale).Mul(math.Translate(translate))
}
