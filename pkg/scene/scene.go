// Package scene assembles the planet scene: atmosphere model, surface and
// cloud shaders, and the sun, and composites them per viewing ray.
package scene

import (
	"fmt"

	"github.com/orbview/atmosray/pkg/atmosphere"
	"github.com/orbview/atmosray/pkg/core"
	"github.com/orbview/atmosray/pkg/surface"
)

// Scene holds everything needed to shade one viewing ray. The planet sits at
// the origin; all members are read-only during rendering, so a Scene is safe
// for concurrent use by render workers.
type Scene struct {
	SunDirection core.Vec3 // unit vector toward the sun
	Atmosphere   *atmosphere.Model
	Surface      *surface.SurfaceShader
	Clouds       *surface.CloudLayer // optional
}

// New builds a scene from a validated atmosphere parameter block and the
// collaborator shaders. The scene's sun is the parameter block's sun.
func New(params atmosphere.Parameters, surf *surface.SurfaceShader, clouds *surface.CloudLayer) (*Scene, error) {
	model, err := atmosphere.New(params)
	if err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}
	if surf == nil {
		return nil, fmt.Errorf("building scene: surface shader is required")
	}
	return &Scene{
		SunDirection: params.SunDirection.Normalize(),
		Atmosphere:   model,
		Surface:      surf,
		Clouds:       clouds,
	}, nil
}

// DefaultSurface returns a flat procedural surface shader: an ocean-blue
// planet with dim night lights. Useful for previews and tests when no
// texture files are configured.
func DefaultSurface() *surface.SurfaceShader {
	return surface.NewSurfaceShader(
		surface.NewSolidTexture(core.NewVec3(0.05, 0.15, 0.35)),
		surface.NewSolidTexture(core.NewVec3(0.04, 0.035, 0.01)),
	)
}

// NewDefault builds a scene with default atmosphere parameters, the default
// procedural surface and no cloud layer.
func NewDefault() *Scene {
	s, err := New(atmosphere.DefaultParameters(), DefaultSurface(), nil)
	if err != nil {
		// Defaults always validate; a failure here is a programming error
		panic(err)
	}
	return s
}

// ShadeRay computes the final color seen along a camera ray: deep space or
// the shaded planet surface, the cloud shell blended over it, and the
// atmosphere's in-scattered light composited on top using its alpha.
// The ray direction must be pre-normalized.
func (s *Scene) ShadeRay(ray core.Ray) core.Vec3 {
	var base core.Vec3 // deep space

	earthT := atmosphere.IntersectSphere(ray.Origin, ray.Direction, core.Vec3{}, atmosphere.PlanetRadius)
	if earthT > 0 {
		base = s.Surface.Shade(ray.At(earthT), s.SunDirection, ray.Direction)
	}

	if s.Clouds != nil {
		cloudT := atmosphere.IntersectSphere(ray.Origin, ray.Direction, core.Vec3{}, surface.CloudRadius)
		if cloudT > 0 && (earthT <= 0 || cloudT < earthT) {
			cloudColor, cloudAlpha := s.Clouds.Shade(ray.At(cloudT), s.SunDirection)
			base = cloudColor.Multiply(cloudAlpha).Add(base.Multiply(1 - cloudAlpha))
		}
	}

	atmColor, alpha := s.Atmosphere.Evaluate(ray)
	return atmColor.Multiply(alpha).Add(base.Multiply(1 - alpha))
}
