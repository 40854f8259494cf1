// Package atmosphere implements single-scattering atmospheric light transport
// for an earth-like planet. Each evaluation is a pure function of a viewing ray
// and a parameter block: a fixed-step ray march through an altitude-based
// density field accumulates Rayleigh and Mie contributions shaped by their
// phase functions, producing an RGB color and a haze opacity.
package atmosphere

import (
	"fmt"

	"github.com/orbview/atmosray/pkg/core"
)

// Tuned rendering constants. These are visual-plausibility choices rather than
// derived physical quantities; they are named so they stay tunable without
// touching the algorithm structure.
const (
	// PlanetRadius is the planet sphere radius. All distances share this unit (km).
	PlanetRadius = 6378.0

	// ScaleHeight controls the exponential density falloff with altitude.
	ScaleHeight = 8000.0

	// SampleCount is the fixed number of ray-march steps per evaluation.
	SampleCount = 64

	// MieAnisotropy is the Henyey-Greenstein g factor. Must stay strictly
	// inside (-1, 1) so the phase denominator is bounded away from zero.
	MieAnisotropy = 0.76

	// AltitudeMargin extends the density band past the atmosphere radius so
	// density fades to exactly zero instead of cutting off (prevents banding).
	AltitudeMargin = 100.0

	// FarFieldFactor bounds the march for rays that miss the planet; density
	// decay zeroes out the tail well before this distance.
	FarFieldFactor = 10.0

	// SunAttenuationFloor keeps the night-side sun proxy from reaching zero,
	// which would create harsh cutoffs.
	SunAttenuationFloor = 0.005

	// AlphaScale maps accumulated density to output opacity.
	AlphaScale = 0.01

	// DensityEpsilon is the negligible-density short-circuit threshold.
	DensityEpsilon = 1e-5
)

// Parameters is the immutable per-frame parameter block for atmosphere
// evaluation. The planet sphere is centered at the origin with radius
// PlanetRadius; AtmosphereRadius is the outer boundary in the same units.
type Parameters struct {
	SunDirection     core.Vec3 // direction light travels from, world space
	CameraPosition   core.Vec3 // viewer position, world space
	RayleighCoeff    core.Vec3 // per-channel scattering coefficient
	MieCoeff         float64   // scalar scattering coefficient
	SunIntensity     float64   // multiplier on the accumulated scattering
	AtmosphereRadius float64   // outer atmosphere boundary
}

// DefaultParameters returns physically-plausible defaults: RGB Rayleigh
// coefficients for visible wavelengths, a weak isotropic Mie coefficient,
// and an atmosphere shell extending 622 units above the surface.
func DefaultParameters() Parameters {
	return Parameters{
		SunDirection:     core.NewVec3(1, 1, 1).Normalize(),
		CameraPosition:   core.NewVec3(0, 0, 15000),
		RayleighCoeff:    core.NewVec3(0.0000055, 0.000013, 0.0000224),
		MieCoeff:         0.00012,
		SunIntensity:     22.0,
		AtmosphereRadius: 7000.0,
	}
}

// Validate checks the parameter invariants. Evaluation assumes a validated
// block; it performs no checks of its own.
func (p Parameters) Validate() error {
	if p.SunDirection.Length() == 0 {
		return fmt.Errorf("sun direction must be a normalizable (non-zero) vector")
	}
	if p.AtmosphereRadius < PlanetRadius+AltitudeMargin {
		return fmt.Errorf("atmosphere radius %.1f must exceed planet radius %.1f by at least %.0f",
			p.AtmosphereRadius, PlanetRadius, AltitudeMargin)
	}
	if p.RayleighCoeff.X < 0 || p.RayleighCoeff.Y < 0 || p.RayleighCoeff.Z < 0 {
		return fmt.Errorf("rayleigh coefficient must be non-negative, got %v", p.RayleighCoeff)
	}
	if p.MieCoeff < 0 {
		return fmt.Errorf("mie coefficient must be non-negative, got %g", p.MieCoeff)
	}
	return nil
}

// Model evaluates atmospheric scattering for a fixed parameter block.
// It is stateless beyond the parameters and safe for concurrent use.
type Model struct {
	params Parameters
	sunDir core.Vec3 // normalized copy of params.SunDirection
}

// New validates the parameters and builds a scattering model.
func New(params Parameters) (*Model, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid atmosphere parameters: %w", err)
	}
	return &Model{
		params: params,
		sunDir: params.SunDirection.Normalize(),
	}, nil
}

// Params returns the parameter block the model was built with.
func (m *Model) Params() Parameters {
	return m.params
}
