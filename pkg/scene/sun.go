package scene

import (
	"math"
	"time"

	"github.com/orbview/atmosray/pkg/core"
)

// DefaultRotationRate is the sun's angular speed about the polar axis in
// radians per second of scene time. A deliberately fast day/night cycle
// rather than a real 24h rotation.
const DefaultRotationRate = 0.07

// SunFromLatLon returns the unit direction toward the sun for a sub-solar
// point at the given geodetic latitude/longitude (degrees). The polar axis
// is +Z, longitude 0 is +X.
func SunFromLatLon(latDeg, lonDeg float64) core.Vec3 {
	lat := latDeg * math.Pi / 180
	lon := lonDeg * math.Pi / 180
	return core.NewVec3(
		math.Cos(lat)*math.Cos(lon),
		math.Cos(lat)*math.Sin(lon),
		math.Sin(lat),
	)
}

// RotateSun advances a sun direction about the polar axis by rate·elapsed.
// With a fixed camera, rotating the sun is equivalent to spinning the
// planet under it.
func RotateSun(sunDir core.Vec3, rate float64, elapsed time.Duration) core.Vec3 {
	angle := rate * elapsed.Seconds()
	cosA, sinA := math.Cos(angle), math.Sin(angle)
	return core.NewVec3(
		sunDir.X*cosA-sunDir.Y*sinA,
		sunDir.X*sinA+sunDir.Y*cosA,
		sunDir.Z,
	).Normalize()
}
