// Package lighting provides light direction helpers.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/objview/pkg/math"
)

// Direction converts azimuth and elevation angles in degrees to a unit
// vector pointing towards the light. Azimuth 0 is +Z, rotating towards +X;
// elevation is measured up from the XZ plane.
func Direction(azimuth, elevation float32) math.Vec3 {
	az := float64(azimuth) * gomath.Pi / 180
	el := float64(elevation) * gomath.Pi / 180

	return math.Vec3{
		X: float32(gomath.Cos(el) * gomath.Sin(az)),
		Y: float32(gomath.Sin(el)),
		Z: float32(gomath.Cos(el) * gomath.Cos(az)),
	}
}
