package formats

import (
	"errors"
	gomath "math"
	"strconv"

	"github.com/Faultbox/objview/pkg/math"
)

// ParseFloat converts a whole token to a finite 32-bit float. NaN and
// infinity spellings are rejected.
func ParseFloat(tok string) (float32, error) {
	v, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, parseErrorf(tok, "out of range for a 32-bit float")
		}
		return 0, parseErrorf(tok, "not a float")
	}
	if gomath.IsNaN(v) || gomath.IsInf(v, 0) {
		return 0, parseErrorf(tok, "not a finite float")
	}
	return float32(v), nil
}

// ParseInt converts a whole token to an int.
func ParseInt(tok string) (int, error) {
	v, err := strconv.Atoi(tok)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, parseErrorf(tok, "out of range for an integer")
		}
		return 0, parseErrorf(tok, "not an integer")
	}
	return v, nil
}

// parseVec3 reads the first three fields as a vector. Callers check the
// field count first.
func parseVec3(fields []string) (math.Vec3, error) {
	var out [3]float32
	for i := range out {
		v, err := ParseFloat(fields[i])
		if err != nil {
			return math.Vec3{}, err
		}
		out[i] = v
	}
	return math.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}
