package atmosphere

import (
	"math"

	"github.com/orbview/atmosray/pkg/core"
)

// Density returns the atmospheric density in [0, 1] at a world-space position.
//
// The exponential term thins the atmosphere realistically with altitude; the
// linear fade term forces density to exactly zero at the outer boundary so the
// march region has no hard edge. Altitudes outside [-1, maxAltitude] are zero,
// where maxAltitude = AtmosphereRadius - PlanetRadius + AltitudeMargin.
func (m *Model) Density(position core.Vec3) float64 {
	altitude := position.Length() - PlanetRadius
	maxAltitude := m.params.AtmosphereRadius - PlanetRadius + AltitudeMargin

	if altitude < -1 || altitude > maxAltitude {
		return 0
	}
	if altitude < 0 {
		altitude = 0
	}

	fade := 1 - altitude/maxAltitude
	if fade < 0 {
		fade = 0
	} else if fade > 1 {
		fade = 1
	}

	return math.Exp(-altitude/ScaleHeight) * fade
}
