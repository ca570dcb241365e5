package formats

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// countingDecoder records decode calls per path and returns a 1x1 texture.
type countingDecoder struct {
	calls map[string]int
	fail  bool
}

func newCountingDecoder() *countingDecoder {
	return &countingDecoder{calls: make(map[string]int)}
}

func (d *countingDecoder) Decode(path string) (*TextureMap, error) {
	d.calls[path]++
	if d.fail {
		return nil, errors.New("corrupt image")
	}
	return &TextureMap{Path: path, Width: 1, Height: 1, Pixels: []byte{255, 255, 255, 255}}, nil
}

func (d *countingDecoder) total() int {
	n := 0
	for _, c := range d.calls {
		n += c
	}
	return n
}

// writeTestFile writes content under dir and returns the full path.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
