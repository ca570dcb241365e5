package formats

// TextureMap is a decoded texture image: tightly packed, row-major RGBA with
// 8 bits per channel. Materials that name the same resolved file share one
// *TextureMap.
type TextureMap struct {
	Path   string
	Width  int
	Height int
	Pixels []byte
}

// ImageDecoder turns a resolved image path into pixels. The material library
// delegates all image work to it.
type ImageDecoder interface {
	Decode(path string) (*TextureMap, error)
}

// ImageDecoderFunc adapts a function to ImageDecoder.
type ImageDecoderFunc func(path string) (*TextureMap, error)

// Decode calls f(path).
func (f ImageDecoderFunc) Decode(path string) (*TextureMap, error) {
	return f(path)
}

// textureCache maps resolved image paths to decoded textures so each path
// is decoded at most once per library.
type textureCache struct {
	entries map[string]*TextureMap

	// Stats. misses counts decoder invocations and is bumped by the caller.
	hits   int
	misses int
}

func newTextureCache() textureCache {
	return textureCache{entries: make(map[string]*TextureMap)}
}

func (c *textureCache) get(path string) (*TextureMap, bool) {
	tex, ok := c.entries[path]
	if ok {
		c.hits++
	}
	return tex, ok
}

func (c *textureCache) set(path string, tex *TextureMap) {
	c.entries[path] = tex
}

func (c *textureCache) len() int {
	return len(c.entries)
}
