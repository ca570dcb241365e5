package model

import (
	gomath "math"

	"github.com/Faultbox/objview/pkg/math"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// EmptyBounds returns a box that contains nothing. Extending it by a point
// yields a box around that point alone.
func EmptyBounds() Bounds {
	inf := float32(gomath.Inf(1))
	return Bounds{
		Min: math.Vec3{X: inf, Y: inf, Z: inf},
		Max: math.Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// Empty reports whether no point has been added to the box.
func (b Bounds) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Extend grows the box to include p.
func (b *Bounds) Extend(p math.Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Center returns the midpoint of the box, or the origin when it is empty.
func (b Bounds) Center() math.Vec3 {
	if b.Empty() {
		return math.Vec3{}
	}
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent along each axis, or zero when the box is empty.
func (b Bounds) Size() math.Vec3 {
	if b.Empty() {
		return math.Vec3{}
	}
	return b.Max.Sub(b.Min)
}
