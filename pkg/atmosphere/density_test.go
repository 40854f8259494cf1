package atmosphere

import (
	"math"
	"testing"

	"github.com/orbview/atmosray/pkg/core"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	model, err := New(DefaultParameters())
	if err != nil {
		t.Fatalf("Failed to build model from defaults: %v", err)
	}
	return model
}

// positionAtAltitude returns a point at the given altitude above the surface.
func positionAtAltitude(altitude float64) core.Vec3 {
	return core.NewVec3(0, 0, PlanetRadius+altitude)
}

func TestDensity_AtSurface(t *testing.T) {
	model := newTestModel(t)

	if got := model.Density(positionAtAltitude(0)); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("Expected density 1 at surface, got %g", got)
	}
}

func TestDensity_Range(t *testing.T) {
	model := newTestModel(t)
	maxAltitude := model.Params().AtmosphereRadius - PlanetRadius + AltitudeMargin

	for altitude := -2.0; altitude <= maxAltitude+100; altitude += 0.5 {
		density := model.Density(positionAtAltitude(altitude))
		if density < 0 || density > 1 {
			t.Fatalf("Density %g out of [0,1] at altitude %f", density, altitude)
		}
	}
}

func TestDensity_MonotonicWithAltitude(t *testing.T) {
	model := newTestModel(t)
	maxAltitude := model.Params().AtmosphereRadius - PlanetRadius + AltitudeMargin

	prev := model.Density(positionAtAltitude(0))
	for altitude := 0.5; altitude <= maxAltitude; altitude += 0.5 {
		density := model.Density(positionAtAltitude(altitude))
		if density > prev+1e-12 {
			t.Fatalf("Density increased with altitude: %g -> %g at altitude %f", prev, density, altitude)
		}
		prev = density
	}
}

func TestDensity_ZeroOutsideBand(t *testing.T) {
	model := newTestModel(t)
	maxAltitude := model.Params().AtmosphereRadius - PlanetRadius + AltitudeMargin

	tests := []struct {
		name     string
		altitude float64
	}{
		{"below valid band", -1.5},
		{"deep underground", -PlanetRadius / 2},
		{"just past outer boundary", maxAltitude + 0.001},
		{"far outside", maxAltitude * 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := model.Density(positionAtAltitude(tt.altitude)); got != 0 {
				t.Errorf("Expected zero density at altitude %f, got %g", tt.altitude, got)
			}
		})
	}
}

func TestDensity_SlightlyUndergroundClampsToSurface(t *testing.T) {
	model := newTestModel(t)

	// Altitudes in [-1, 0) behave like the surface
	if got := model.Density(positionAtAltitude(-0.5)); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("Expected density 1 just under the surface, got %g", got)
	}
}

func TestDensity_ExactlyZeroAtOuterBoundary(t *testing.T) {
	model := newTestModel(t)
	maxAltitude := model.Params().AtmosphereRadius - PlanetRadius + AltitudeMargin

	// The linear fade term zeroes density at the boundary itself, which is
	// what prevents visible banding where the march region ends
	if got := model.Density(positionAtAltitude(maxAltitude)); got != 0 {
		t.Errorf("Expected exactly zero density at outer boundary, got %g", got)
	}
}
