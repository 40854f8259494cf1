package renderer

import (
	"math"

	"github.com/orbview/atmosray/pkg/core"
)

// CameraConfig places a pinhole camera above the planet. Latitude/longitude
// are geodetic degrees on the planet sphere (+Z polar axis, longitude 0 at
// +X); altitude is measured from the surface in the scene's distance units.
type CameraConfig struct {
	LatDeg      float64
	LonDeg      float64
	Altitude    float64
	FOVDeg      float64
	OrbitRadius float64 // distance from planet center; derived from Altitude when zero
}

// Camera generates viewing rays. It always looks at the planet center.
type Camera struct {
	position   core.Vec3
	forward    core.Vec3
	right      core.Vec3
	up         core.Vec3
	tanHalfFOV float64
	width      int
	height     int
}

// NewCamera builds a camera from an orbital position and field of view for an
// output image of the given dimensions.
func NewCamera(cfg CameraConfig, width, height int, planetRadius float64) *Camera {
	lat := cfg.LatDeg * math.Pi / 180
	lon := cfg.LonDeg * math.Pi / 180

	radius := cfg.OrbitRadius
	if radius == 0 {
		radius = planetRadius + cfg.Altitude
	}

	position := core.NewVec3(
		radius*math.Cos(lat)*math.Cos(lon),
		radius*math.Cos(lat)*math.Sin(lon),
		radius*math.Sin(lat),
	)

	forward := position.Normalize().Negate() // look at the planet center

	globalUp := core.NewVec3(0, 0, 1)
	right := forward.Cross(globalUp)
	if right.Length() < 1e-6 {
		right = core.NewVec3(1, 0, 0) // directly over a pole
	}
	right = right.Normalize()
	up := right.Cross(forward).Normalize()

	return &Camera{
		position:   position,
		forward:    forward,
		right:      right,
		up:         up,
		tanHalfFOV: math.Tan(cfg.FOVDeg * math.Pi / 180 / 2),
		width:      width,
		height:     height,
	}
}

// Position returns the camera's world-space position.
func (c *Camera) Position() core.Vec3 {
	return c.position
}

// GetRay returns the viewing ray through pixel (i, j). Fractional coordinates
// address sub-pixel positions for supersampling. The returned direction is
// unit length, as the scattering core requires.
func (c *Camera) GetRay(i, j float64) core.Ray {
	w := float64(c.width)
	h := float64(c.height)

	// NDC in [-1, 1], +Y up in screen space, aspect-corrected horizontally
	xNDC := (2*(i+0.5) - w) / h
	yNDC := -(2*(j+0.5) - h) / h

	dir := c.right.Multiply(xNDC * c.tanHalfFOV).
		Add(c.up.Multiply(yNDC * c.tanHalfFOV)).
		Add(c.forward)

	return core.NewRay(c.position, dir.Normalize())
}
