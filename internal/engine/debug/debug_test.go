package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/objview/pkg/math"
)

func TestBBoxWireframeVertices(t *testing.T) {
	min := math.Vec3{X: -1, Y: -2, Z: -3}
	max := math.Vec3{X: 1, Y: 2, Z: 3}

	verts := BBoxWireframeVertices(min, max)
	if len(verts) != BBoxWireframeVertexCount*3 {
		t.Fatalf("expected %d floats, got %d", BBoxWireframeVertexCount*3, len(verts))
	}

	// Every edge runs along exactly one axis, at box extremes.
	for i := 0; i < len(verts); i += 6 {
		a := math.Vec3{X: verts[i], Y: verts[i+1], Z: verts[i+2]}
		b := math.Vec3{X: verts[i+3], Y: verts[i+4], Z: verts[i+5]}
		changed := 0
		for _, d := range []float32{a.X - b.X, a.Y - b.Y, a.Z - b.Z} {
			if d != 0 {
				changed++
			}
		}
		if changed != 1 {
			t.Errorf("edge %d from %v to %v is not axis aligned", i/6, a, b)
		}
		for _, p := range []math.Vec3{a, b} {
			if (p.X != min.X && p.X != max.X) || (p.Y != min.Y && p.Y != max.Y) || (p.Z != min.Z && p.Z != max.Z) {
				t.Errorf("vertex %v is not a box corner", p)
			}
		}
	}
}

func TestCaptureFromPixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "objview")
	sc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	// 1x2: bottom row red, top row blue, as glReadPixels returns them.
	pixels := []byte{255, 0, 0, 255, 0, 0, 255, 255}
	path, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "objview_2024-05-01_12-30-00") {
		t.Errorf("unexpected filename %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open screenshot: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("failed to decode screenshot: %v", err)
	}
	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0 || b == 0 {
		t.Error("expected the top row to be blue after flipping")
	}
	if r, _, _, _ := img.At(0, 1).RGBA(); r == 0 {
		t.Error("expected the bottom row to be red after flipping")
	}

	if _, err := sc.CaptureFromPixels(pixels[:4], 1, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}
