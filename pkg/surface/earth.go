package surface

import (
	"math"

	"github.com/orbview/atmosray/pkg/core"
)

// Terminator transition band for the day/night blend, as N·L values.
const (
	nightEdge = -0.25
	dayEdge   = 0.05
)

// Ocean specular tuning
const (
	specularExponent = 400.0 // sharp sun glint
	specularStrength = 1.0
	oceanBlueBias    = 1.1 // blue-dominance threshold for the heuristic ocean test
)

// SurfaceShader shades the lit planet surface: a day/night texture blend
// across the terminator plus a specular sun glint on water.
type SurfaceShader struct {
	Day       Texture
	Night     Texture
	OceanMask Texture // optional; nil falls back to a blue-dominance heuristic
}

// NewSurfaceShader creates a surface shader from day and night textures.
func NewSurfaceShader(day, night Texture) *SurfaceShader {
	return &SurfaceShader{Day: day, Night: night}
}

// Smoothstep performs a Hermite interpolation between 0 and 1 across
// [edge0, edge1]. Returns 0 below edge0 and 1 above edge1.
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

// Reflect mirrors v about the normal n.
func Reflect(v, n core.Vec3) core.Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Shade returns the surface color at a point on the planet sphere. sunDir is
// the unit direction toward the sun; viewDir is the unit camera ray direction.
func (s *SurfaceShader) Shade(point, sunDir, viewDir core.Vec3) core.Vec3 {
	normal := point.Normalize()

	// Soft transition across the terminator instead of a hard cut
	light := Smoothstep(nightEdge, dayEdge, normal.Dot(sunDir))

	dayColor := s.Day.Sample(point)
	nightColor := s.Night.Sample(point)

	color := blendDayNight(dayColor, nightColor, light)

	if spec := s.specular(point, normal, sunDir, viewDir, dayColor); spec > 0 {
		sunTint := core.NewVec3(1.0, 0.97, 0.9)
		color = color.Add(sunTint.Multiply(spec * light))
	}

	return color
}

// blendDayNight mixes the two textures in a perceptually smoother squared
// space rather than linearly.
func blendDayNight(day, night core.Vec3, light float64) core.Vec3 {
	return core.NewVec3(
		math.Sqrt((1-light)*night.X*night.X+light*day.X*day.X),
		math.Sqrt((1-light)*night.Y*night.Y+light*day.Y*day.Y),
		math.Sqrt((1-light)*night.Z*night.Z+light*day.Z*day.Z),
	)
}

// specular returns the sun glint intensity at the point, zero on land.
func (s *SurfaceShader) specular(point, normal, sunDir, viewDir, dayColor core.Vec3) float64 {
	if !s.isOcean(point, dayColor) {
		return 0
	}

	view := viewDir.Negate()
	reflected := Reflect(sunDir.Negate(), normal).Normalize()

	specAngle := reflected.Dot(view)
	if specAngle < 0 {
		return 0
	}

	// Grazing-angle falloff suppresses edge blowouts at the limb
	normalView := normal.Dot(view)
	if normalView < 0 {
		normalView = 0
	}
	grazing := normalView * normalView * normalView

	spec := math.Pow(specAngle, specularExponent) * grazing * specularStrength
	if spec > 1 {
		spec = 1
	}
	return spec
}

// isOcean consults the ocean mask when present, otherwise guesses from
// blue dominance in the day texture.
func (s *SurfaceShader) isOcean(point core.Vec3, dayColor core.Vec3) bool {
	if s.OceanMask != nil {
		return s.OceanMask.Sample(point).Luminance() > 0.5
	}
	return dayColor.Z > dayColor.X*oceanBlueBias && dayColor.Z > dayColor.Y*oceanBlueBias
}
