package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/objview/pkg/math"
)

// maxLineSize bounds a single line of OBJ or MTL input.
const maxLineSize = 1 << 20

// Material is one newmtl record.
type Material struct {
	Name string

	Ambient           math.Vec3 // Ka
	Diffuse           math.Vec3 // Kd
	Specular          math.Vec3 // Ks
	Emissive          math.Vec3 // Ke
	TransmissionColor math.Vec3 // Tf

	Shininess float32 // Ns
	// Transparency is 0 for opaque and 1 for fully clear. Both d (as 1-d)
	// and Tr (as-is) write it; the later directive wins.
	Transparency float32
	IOR          float32 // Ni
	Illum        int     // illumination model

	AmbientMap  *TextureMap // map_Ka
	DiffuseMap  *TextureMap // map_Kd
	SpecularMap *TextureMap // map_Ks
	BumpMap     *TextureMap // map_bump, bump
}

// LibraryOption configures a MaterialLibrary.
type LibraryOption func(*MaterialLibrary)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(log *zap.Logger) LibraryOption {
	return func(lib *MaterialLibrary) {
		if log != nil {
			lib.log = log
		}
	}
}

// MaterialLibrary owns named materials, the texture cache and the set of
// material files already parsed during one loading session. Reusing a
// library across OBJ loads shares its textures. It is not safe for
// concurrent use.
type MaterialLibrary struct {
	decoder ImageDecoder
	log     *zap.Logger

	materials materialSet
	textures  textureCache
	loaded    map[string]struct{}
}

// NewMaterialLibrary creates an empty library. decoder may be nil, in which
// case any texture directive fails with ErrDecode.
func NewMaterialLibrary(decoder ImageDecoder, opts ...LibraryOption) *MaterialLibrary {
	lib := &MaterialLibrary{
		decoder:   decoder,
		log:       zap.NewNop(),
		materials: newMaterialSet(),
		textures:  newTextureCache(),
		loaded:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(lib)
	}
	return lib
}

// LoadFile parses a material file from disk. A file whose resolved path
// was already loaded is skipped.
func (lib *MaterialLibrary) LoadFile(path string) error {
	key := canonicalPath(path)
	if lib.Loaded(key) {
		lib.log.Debug("material library already loaded", zap.String("path", key))
		return nil
	}

	data, err := os.ReadFile(key)
	if err != nil {
		return fmt.Errorf("%w: opening material file: %w", ErrIO, err)
	}
	if err := lib.parse(data, filepath.Dir(key), key); err != nil {
		return err
	}
	lib.loaded[key] = struct{}{}

	lib.log.Debug("loaded material library",
		zap.String("path", key),
		zap.Int("materials", len(lib.materials.order)),
		zap.Int("textures", lib.textures.len()),
	)
	return nil
}

// Parse parses MTL data. Texture paths are resolved against dir.
func (lib *MaterialLibrary) Parse(data []byte, dir string) error {
	return lib.parse(data, dir, "")
}

// Loaded reports whether the material file at path has been parsed.
func (lib *MaterialLibrary) Loaded(path string) bool {
	_, ok := lib.loaded[canonicalPath(path)]
	return ok
}

// Material returns the material registered under name.
func (lib *MaterialLibrary) Material(name string) (*Material, bool) {
	m, ok := lib.materials.byName[name]
	return m, ok
}

// Materials returns all materials in definition order.
func (lib *MaterialLibrary) Materials() []*Material {
	out := make([]*Material, 0, len(lib.materials.order))
	for _, name := range lib.materials.order {
		out = append(out, lib.materials.byName[name])
	}
	return out
}

// TextureCount returns the number of distinct decoded textures.
func (lib *MaterialLibrary) TextureCount() int {
	return lib.textures.len()
}

// CacheStats returns texture cache hits and misses. Every miss is one
// decoder invocation, successful or not.
func (lib *MaterialLibrary) CacheStats() (hits, misses int) {
	return lib.textures.hits, lib.textures.misses
}

// parse reads data into a staged set and merges it into the library only
// when every line succeeded. Textures decoded before a failure stay cached.
func (lib *MaterialLibrary) parse(data []byte, dir, source string) error {
	staged := newMaterialSet()
	scanner := newLineScanner(data)

	var current *Material
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		record, fields, ok := Tokenize(text)
		if !ok {
			continue
		}

		next, err := lib.applyDirective(&staged, current, record, fields, dir)
		if err != nil {
			return &LineError{Path: source, Line: lineNo, Text: text, Err: err}
		}
		current = next
	}
	if err := scanner.Err(); err != nil {
		return &LineError{Path: source, Line: lineNo + 1, Err: fmt.Errorf("%w: %w", ErrIO, err)}
	}

	for _, name := range staged.order {
		if lib.materials.put(staged.byName[name]) {
			lib.log.Debug("material redefined", zap.String("name", name))
		}
	}
	return nil
}

// applyDirective handles one MTL record and returns the material that
// subsequent property lines mutate.
func (lib *MaterialLibrary) applyDirective(staged *materialSet, current *Material, record string, fields []string, dir string) (*Material, error) {
	if record == "newmtl" {
		if err := requireFields(record, fields, 1); err != nil {
			return current, err
		}
		m := &Material{Name: strings.Join(fields, " ")}
		staged.put(m)
		return m, nil
	}

	switch record {
	case "Ka", "Kd", "Ks", "Ke", "Tf",
		"Ns", "Ni", "d", "Tr", "illum",
		"map_Ka", "map_Kd", "map_Ks", "map_bump", "bump":
	default:
		return current, nil
	}

	if current == nil {
		return nil, parseErrorf(record, "material property before any newmtl")
	}

	switch record {
	case "Ka", "Kd", "Ks", "Ke", "Tf":
		if err := requireFields(record, fields, 3); err != nil {
			return current, err
		}
		color, err := parseVec3(fields)
		if err != nil {
			return current, err
		}
		switch record {
		case "Ka":
			current.Ambient = color
		case "Kd":
			current.Diffuse = color
		case "Ks":
			current.Specular = color
		case "Ke":
			current.Emissive = color
		case "Tf":
			current.TransmissionColor = color
		}

	case "Ns", "Ni", "d", "Tr":
		if err := requireFields(record, fields, 1); err != nil {
			return current, err
		}
		v, err := ParseFloat(fields[0])
		if err != nil {
			return current, err
		}
		switch record {
		case "Ns":
			current.Shininess = v
		case "Ni":
			current.IOR = v
		case "d":
			current.Transparency = 1 - v
		case "Tr":
			current.Transparency = v
		}

	case "illum":
		if err := requireFields(record, fields, 1); err != nil {
			return current, err
		}
		v, err := ParseInt(fields[0])
		if err != nil {
			return current, err
		}
		current.Illum = v

	default: // texture maps
		if err := requireFields(record, fields, 1); err != nil {
			return current, err
		}
		// Map options (-bm, -s, ...) precede the filename.
		tex, err := lib.texture(dir, fields[len(fields)-1])
		if err != nil {
			return current, err
		}
		switch record {
		case "map_Ka":
			current.AmbientMap = tex
		case "map_Kd":
			current.DiffuseMap = tex
		case "map_Ks":
			current.SpecularMap = tex
		default:
			current.BumpMap = tex
		}
	}

	return current, nil
}

// materialSet holds materials by name in definition order.
type materialSet struct {
	byName map[string]*Material
	order  []string
}

func newMaterialSet() materialSet {
	return materialSet{byName: make(map[string]*Material)}
}

// put stores m, replacing any material with the same name in place. It
// reports whether a replacement happened.
func (s *materialSet) put(m *Material) bool {
	_, exists := s.byName[m.Name]
	if !exists {
		s.order = append(s.order, m.Name)
	}
	s.byName[m.Name] = m
	return exists
}

// texture resolves name against dir and returns the shared decoded image,
// decoding it on first use.
func (lib *MaterialLibrary) texture(dir, name string) (*TextureMap, error) {
	path := resolvePath(dir, name)
	if tex, ok := lib.textures.get(path); ok {
		lib.log.Debug("texture cache hit", zap.String("path", path))
		return tex, nil
	}

	if lib.decoder == nil {
		return nil, fmt.Errorf("%w: no image decoder for %s", ErrDecode, path)
	}
	lib.textures.misses++
	tex, err := lib.decoder.Decode(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	if tex == nil || tex.Width <= 0 || tex.Height <= 0 || len(tex.Pixels) < tex.Width*tex.Height*4 {
		return nil, fmt.Errorf("%w: %s: decoder returned an empty or short image", ErrDecode, path)
	}
	lib.textures.set(path, tex)

	lib.log.Debug("decoded texture",
		zap.String("path", path),
		zap.Int("width", tex.Width),
		zap.Int("height", tex.Height),
	)
	return tex, nil
}

// resolvePath joins a file reference from inside an OBJ or MTL file onto the
// referencing file's directory. Backslash separators are accepted.
func resolvePath(dir, name string) string {
	name = filepath.FromSlash(strings.ReplaceAll(name, `\`, "/"))
	if !filepath.IsAbs(name) {
		name = filepath.Join(dir, name)
	}
	return canonicalPath(name)
}

// canonicalPath is the cache key form of a path.
func canonicalPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func newLineScanner(data []byte) *bufio.Scanner {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return scanner
}
