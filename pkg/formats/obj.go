package formats

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/objview/pkg/math"
)

// Face is a triangle of 0-based corner references. Polygons are fanned into
// faces while scanning, so every face has exactly three corners.
type Face struct {
	Corners [3]FaceVertexRef
	// Material is the name selected by the most recent usemtl, or "".
	Material string
}

// OBJ represents a parsed Wavefront OBJ file. Attribute lists keep file
// order; faces index them 0-based.
type OBJ struct {
	Path      string
	Positions []math.Vec3
	Normals   []math.Vec3
	Texcoords []math.Vec2
	Faces     []Face

	// Library holds the materials named by Faces.
	Library *MaterialLibrary
}

// objScanner is the single-pass state of one OBJ load.
type objScanner struct {
	obj      *OBJ
	dir      string
	material string
	skipped  map[string]int
}

// ParseOBJ parses OBJ data. mtllib references are resolved against dir and
// loaded into lib; a nil lib gets a fresh library without an image decoder.
func ParseOBJ(data []byte, dir string, lib *MaterialLibrary) (*OBJ, error) {
	return parseOBJ(data, dir, "", lib)
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string, lib *MaterialLibrary) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading OBJ file: %w", ErrIO, err)
	}
	return parseOBJ(data, filepath.Dir(path), path, lib)
}

func parseOBJ(data []byte, dir, source string, lib *MaterialLibrary) (*OBJ, error) {
	if lib == nil {
		lib = NewMaterialLibrary(nil)
	}

	s := &objScanner{
		obj:     &OBJ{Path: source, Library: lib},
		dir:     dir,
		skipped: make(map[string]int),
	}

	scanner := newLineScanner(data)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		record, fields, ok := Tokenize(text)
		if !ok {
			continue
		}
		if err := s.apply(record, fields); err != nil {
			return nil, &LineError{Path: source, Line: lineNo, Text: text, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &LineError{Path: source, Line: lineNo + 1, Err: fmt.Errorf("%w: %w", ErrIO, err)}
	}

	obj := s.obj
	lib.log.Debug("parsed OBJ",
		zap.String("path", source),
		zap.Int("positions", len(obj.Positions)),
		zap.Int("normals", len(obj.Normals)),
		zap.Int("texcoords", len(obj.Texcoords)),
		zap.Int("faces", len(obj.Faces)),
		zap.Any("skipped", s.skipped),
	)
	return obj, nil
}

func (s *objScanner) apply(record string, fields []string) error {
	switch record {
	case "v":
		if err := requireFields(record, fields, 3); err != nil {
			return err
		}
		// A w component or vertex colors may follow; both are ignored.
		p, err := parseVec3(fields)
		if err != nil {
			return err
		}
		s.obj.Positions = append(s.obj.Positions, p)

	case "vn":
		if err := requireFields(record, fields, 3); err != nil {
			return err
		}
		n, err := parseVec3(fields)
		if err != nil {
			return err
		}
		s.obj.Normals = append(s.obj.Normals, n)

	case "vt":
		if err := requireFields(record, fields, 1); err != nil {
			return err
		}
		var uv math.Vec2
		var err error
		if uv.X, err = ParseFloat(fields[0]); err != nil {
			return err
		}
		if len(fields) > 1 {
			if uv.Y, err = ParseFloat(fields[1]); err != nil {
				return err
			}
		}
		s.obj.Texcoords = append(s.obj.Texcoords, uv)

	case "f":
		return s.face(fields)

	case "mtllib":
		if err := requireFields(record, fields, 1); err != nil {
			return err
		}
		for _, name := range fields {
			if err := s.obj.Library.LoadFile(resolvePath(s.dir, name)); err != nil {
				return err
			}
		}

	case "usemtl":
		if err := requireFields(record, fields, 1); err != nil {
			return err
		}
		name := strings.Join(fields, " ")
		if _, ok := s.obj.Library.Material(name); !ok {
			return fmt.Errorf("%w: unknown material %q", ErrReference, name)
		}
		s.material = name

	default:
		s.skipped[record]++
	}
	return nil
}

// face parses the corners of an f record and appends one triangle, or a
// fan of n-2 triangles around corner 0 for an n-gon. The fan is only
// correct for convex, planar polygons.
func (s *objScanner) face(fields []string) error {
	if err := requireFields("f", fields, 3); err != nil {
		return err
	}

	corners := make([]FaceVertexRef, len(fields))
	for i, tok := range fields {
		ref, err := ParseFaceRef(tok)
		if err != nil {
			return err
		}
		corners[i] = ref.ZeroBased()
	}

	for i := 1; i < len(corners)-1; i++ {
		s.obj.Faces = append(s.obj.Faces, Face{
			Corners:  [3]FaceVertexRef{corners[0], corners[i], corners[i+1]},
			Material: s.material,
		})
	}
	return nil
}

// MaterialNamed returns the material registered under name, or nil for ""
// and unknown names.
func (o *OBJ) MaterialNamed(name string) *Material {
	if name == "" || o.Library == nil {
		return nil
	}
	m, _ := o.Library.Material(name)
	return m
}
