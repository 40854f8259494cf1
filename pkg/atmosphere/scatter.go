package atmosphere

import (
	"github.com/orbview/atmosray/pkg/core"
)

// Evaluate computes the scattered sunlight along a viewing ray, returning an
// RGB color and an opacity in [0, 1] meant to be composited over whatever is
// behind the atmosphere. The ray direction must be pre-normalized; the
// evaluation is deterministic and independent across rays.
//
// The march covers min(planet hit distance, AtmosphereRadius·FarFieldFactor)
// in SampleCount segments, sampling each at its midpoint. Contributions are
// weighted by density, the phase functions, a cheap sun-visibility proxy, and
// the step size, making the sums a Riemann approximation of the single-
// scattering integral.
func (m *Model) Evaluate(ray core.Ray) (core.Vec3, float64) {
	// Stop the march at the planet surface when the ray hits it
	maxDistance := m.params.AtmosphereRadius * FarFieldFactor
	if earthDistance := IntersectSphere(ray.Origin, ray.Direction, core.Vec3{}, PlanetRadius); earthDistance > 0 {
		maxDistance = earthDistance
	}
	stepSize := maxDistance / SampleCount

	// cosθ is constant along the ray, so the phase weights are too
	cosTheta := ray.Direction.Dot(m.sunDir)
	rayleighPhase := RayleighPhase(cosTheta)
	miePhase := HenyeyGreensteinPhase(cosTheta, MieAnisotropy)

	var rayleighSum core.Vec3
	var mieSum float64
	var totalDensity float64

	for i := 0; i < SampleCount; i++ {
		t := (float64(i) + 0.5) * stepSize
		samplePos := ray.At(t)

		density := m.Density(samplePos)
		if density < DensityEpsilon {
			continue
		}
		totalDensity += density

		// Sun-visibility proxy: darkens samples on the night side without a
		// second march, floored so the term never goes fully black
		sunAttenuation := samplePos.Normalize().Dot(m.sunDir)
		if sunAttenuation < SunAttenuationFloor {
			sunAttenuation = SunAttenuationFloor
		} else if sunAttenuation > 1 {
			sunAttenuation = 1
		}

		weight := density * sunAttenuation * stepSize
		rayleighSum = rayleighSum.Add(m.params.RayleighCoeff.Multiply(rayleighPhase * weight))
		mieSum += m.params.MieCoeff * miePhase * weight
	}

	color := rayleighSum.Add(core.NewVec3(mieSum, mieSum, mieSum)).Multiply(m.params.SunIntensity)

	alpha := totalDensity * AlphaScale
	if alpha > 1 {
		alpha = 1
	}

	return color, alpha
}
