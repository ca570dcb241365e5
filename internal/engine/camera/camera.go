// Package camera provides the orbit camera used by the viewer.
package camera

import (
	gomath "math"

	"github.com/Faultbox/objview/pkg/math"
)

// OrbitCamera orbits around a target point.
type OrbitCamera struct {
	Target math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // radians, positive looks down on the target
	Yaw      float32 // radians around +Y

	// Constraints
	MinDistance float32
	MaxDistance float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera framing the cube [-1, 1], which is
// where a normalized mesh lives.
func NewOrbitCamera() *OrbitCamera {
	c := &OrbitCamera{
		MinDistance:     0.1,
		MaxDistance:     100,
		MaxPitch:        1.55,
		DragSensitivity: 0.01,
		ZoomSensitivity: 0.1,
	}
	c.Reset()
	return c
}

// Reset returns to the initial three-quarter view of the unit cube.
func (c *OrbitCamera) Reset() {
	c.Target = math.Vec3{}
	c.Distance = 3.5
	c.Pitch = 0.4
	c.Yaw = 0.6
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cp, sp := cosSin(c.Pitch)
	cy, sy := cosSin(c.Yaw)
	offset := math.Vec3{X: cp * sy, Y: sp, Z: cp * cy}
	return c.Target.Add(offset.Scale(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, math.Vec3{Y: 1})
}

// HandleDrag rotates by a mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity
	c.Pitch = clamp(c.Pitch, -c.MaxPitch, c.MaxPitch)
}

// HandlePan moves the target in the view plane by a drag delta in pixels.
func (c *OrbitCamera) HandlePan(deltaX, deltaY float32) {
	forward := c.Target.Sub(c.Position()).Normalize()
	right := forward.Cross(math.Vec3{Y: 1}).Normalize()
	up := right.Cross(forward)

	speed := c.Distance * c.DragSensitivity * 0.1
	c.Target = c.Target.Add(right.Scale(-deltaX * speed)).Add(up.Scale(deltaY * speed))
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}

func cosSin(a float32) (float32, float32) {
	s, c := gomath.Sincos(float64(a))
	return float32(c), float32(s)
}
