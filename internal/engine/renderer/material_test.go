package renderer

import (
	"testing"

	"github.com/Faultbox/objview/internal/engine/model"
	"github.com/Faultbox/objview/pkg/formats"
)

func testLibrary(t *testing.T) (*formats.MaterialLibrary, *formats.TextureMap) {
	t.Helper()
	tex := &formats.TextureMap{Path: "wood.png", Width: 1, Height: 1, Pixels: []byte{1, 2, 3, 255}}
	lib := formats.NewMaterialLibrary(formats.ImageDecoderFunc(func(string) (*formats.TextureMap, error) {
		return tex, nil
	}))
	data := `newmtl wood
Kd 0.5 0.4 0.3
map_Kd wood.png
illum 2
newmtl glass
Kd 1 1 1
d 0.25
newmtl plank
map_Kd wood.png
`
	if err := lib.Parse([]byte(data), ""); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return lib, tex
}

func TestUniformsFor(t *testing.T) {
	lib, tex := testLibrary(t)

	wood, _ := lib.Material("wood")
	u := uniformsFor(wood)
	if u.Diffuse != [3]float32{0.5, 0.4, 0.3} {
		t.Errorf("unexpected diffuse %v", u.Diffuse)
	}
	if u.Opacity != 1 || !u.SpecularOn || u.DiffuseMap != tex {
		t.Errorf("unexpected uniforms %+v", u)
	}

	glass, _ := lib.Material("glass")
	if u := uniformsFor(glass); u.Opacity != 0.25 || u.SpecularOn {
		t.Errorf("unexpected glass uniforms %+v", u)
	}

	if uniformsFor(nil) != defaultMaterial {
		t.Error("expected default material for untagged faces")
	}
}

func TestBuildBatches(t *testing.T) {
	lib, tex := testLibrary(t)
	obj := &formats.OBJ{Library: lib}
	mesh := &model.Mesh{Groups: []model.MaterialGroup{
		{Material: "", FirstTriangle: 0, TriangleCount: 2},
		{Material: "glass", FirstTriangle: 2, TriangleCount: 1},
		{Material: "wood", FirstTriangle: 3, TriangleCount: 4},
		{Material: "plank", FirstTriangle: 7, TriangleCount: 1},
	}}

	batches := buildBatches(mesh, obj)
	if len(batches) != 4 {
		t.Fatalf("expected 4 batches, got %d", len(batches))
	}

	expected := []struct{ first, count int32 }{{0, 6}, {9, 12}, {21, 3}, {6, 3}}
	for i, e := range expected {
		if batches[i].FirstIndex != e.first || batches[i].IndexCount != e.count {
			t.Errorf("batch %d: expected first %d count %d, got %d %d",
				i, e.first, e.count, batches[i].FirstIndex, batches[i].IndexCount)
		}
	}
	if !batches[3].transparent() {
		t.Error("expected the transparent batch last")
	}

	textures := textureSet(batches)
	if len(textures) != 1 || textures[0] != tex {
		t.Errorf("expected one shared texture, got %v", textures)
	}
}
