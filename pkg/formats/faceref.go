package formats

import "strings"

// Absent marks a texcoord or normal index that a face corner does not carry.
// It never collides with a valid index, 1-based or 0-based.
const Absent = -1

// FaceVertexRef is one face corner: a position index plus optional texcoord
// and normal indices.
type FaceVertexRef struct {
	Position int
	Texcoord int
	Normal   int
}

// HasTexcoord reports whether the corner references a texture coordinate.
func (r FaceVertexRef) HasTexcoord() bool {
	return r.Texcoord != Absent
}

// HasNormal reports whether the corner references a normal.
func (r FaceVertexRef) HasNormal() bool {
	return r.Normal != Absent
}

// ZeroBased converts the 1-based indices as written in the file to 0-based
// slice indices. Absent components stay absent.
func (r FaceVertexRef) ZeroBased() FaceVertexRef {
	out := FaceVertexRef{Position: r.Position - 1, Texcoord: Absent, Normal: Absent}
	if r.HasTexcoord() {
		out.Texcoord = r.Texcoord - 1
	}
	if r.HasNormal() {
		out.Normal = r.Normal - 1
	}
	return out
}

// ParseFaceRef decodes a corner token of the form v, v/t, v//n or v/t/n.
// Indices are returned 1-based.
func ParseFaceRef(tok string) (FaceVertexRef, error) {
	ref := FaceVertexRef{Texcoord: Absent, Normal: Absent}

	segments := strings.Split(tok, "/")
	if len(segments) > 3 {
		return ref, parseErrorf(tok, "face corner has %d segments, at most 3 allowed", len(segments))
	}

	if segments[0] == "" {
		return ref, parseErrorf(tok, "face corner is missing its position index")
	}
	pos, err := parseIndex(segments[0])
	if err != nil {
		return ref, err
	}
	ref.Position = pos

	if len(segments) > 1 && segments[1] != "" {
		if ref.Texcoord, err = parseIndex(segments[1]); err != nil {
			return ref, err
		}
	}
	if len(segments) > 2 && segments[2] != "" {
		if ref.Normal, err = parseIndex(segments[2]); err != nil {
			return ref, err
		}
	}

	return ref, nil
}

// parseIndex reads one 1-based index. Relative (negative) indices are
// rejected rather than resolved.
func parseIndex(tok string) (int, error) {
	idx, err := ParseInt(tok)
	if err != nil {
		return 0, err
	}
	switch {
	case idx < 0:
		return 0, parseErrorf(tok, "relative face indices are not supported")
	case idx == 0:
		return 0, parseErrorf(tok, "face indices are 1-based")
	}
	return idx, nil
}
