package atmosphere

import (
	"math"

	"github.com/orbview/atmosray/pkg/core"
)

// NoHit is the sentinel returned when a ray does not intersect a sphere at
// any strictly positive distance. Callers treat it as "use the far-field
// march bound", not as an error.
const NoHit = -1.0

// IntersectSphere returns the nearest strictly positive distance at which the
// ray hits the sphere, or NoHit. The ray direction must be non-zero; it does
// not need to be unit length, but the returned t is in units of its length.
//
// An origin inside the sphere yields one negative and one positive root; the
// positive (exit) root is returned, which is what bounding a march against the
// planet surface wants.
func IntersectSphere(origin, direction, center core.Vec3, radius float64) float64 {
	oc := origin.Subtract(center)

	// Quadratic at² + 2(oc·d)t + (oc·oc - r²) = 0, using the half-b form
	a := direction.Dot(direction)
	halfB := oc.Dot(direction)
	c := oc.Dot(oc) - radius*radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return NoHit
	}

	sqrtD := math.Sqrt(discriminant)

	// Nearer root first; a tangent ray yields the repeated root
	if t := (-halfB - sqrtD) / a; t > 0 {
		return t
	}
	if t := (-halfB + sqrtD) / a; t > 0 {
		return t
	}
	return NoHit
}
