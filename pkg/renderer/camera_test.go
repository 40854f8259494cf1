package renderer

import (
	"math"
	"testing"

	"github.com/orbview/atmosray/pkg/atmosphere"
	"github.com/orbview/atmosray/pkg/core"
)

func testCameraConfig() CameraConfig {
	return CameraConfig{
		LatDeg:   0,
		LonDeg:   0,
		Altitude: 15000,
		FOVDeg:   60,
	}
}

func TestNewCamera_Position(t *testing.T) {
	tests := []struct {
		name     string
		cfg      CameraConfig
		expected core.Vec3
	}{
		{
			"equator at prime meridian",
			CameraConfig{LatDeg: 0, LonDeg: 0, Altitude: 1000, FOVDeg: 60},
			core.NewVec3(atmosphere.PlanetRadius+1000, 0, 0),
		},
		{
			"equator at 90E",
			CameraConfig{LatDeg: 0, LonDeg: 90, Altitude: 1000, FOVDeg: 60},
			core.NewVec3(0, atmosphere.PlanetRadius+1000, 0),
		},
		{
			"north pole",
			CameraConfig{LatDeg: 90, LonDeg: 0, Altitude: 500, FOVDeg: 60},
			core.NewVec3(0, 0, atmosphere.PlanetRadius+500),
		},
		{
			"explicit orbit radius wins",
			CameraConfig{LatDeg: 0, LonDeg: 0, Altitude: 1000, FOVDeg: 60, OrbitRadius: 20000},
			core.NewVec3(20000, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera(tt.cfg, 100, 100, atmosphere.PlanetRadius)
			if cam.Position().Subtract(tt.expected).Length() > 1e-6 {
				t.Errorf("Expected position %v, got %v", tt.expected, cam.Position())
			}
		})
	}
}

func TestGetRay_CenterLooksAtPlanet(t *testing.T) {
	width, height := 200, 100
	cam := NewCamera(testCameraConfig(), width, height, atmosphere.PlanetRadius)

	// The exact image center maps to the forward axis
	ray := cam.GetRay(float64(width)/2-0.5, float64(height)/2-0.5)

	toCenter := cam.Position().Negate().Normalize()
	if ray.Direction.Subtract(toCenter).Length() > 1e-9 {
		t.Errorf("Expected center ray toward planet center %v, got %v", toCenter, ray.Direction)
	}
	if ray.Origin != cam.Position() {
		t.Errorf("Expected ray origin at camera position %v, got %v", cam.Position(), ray.Origin)
	}
}

func TestGetRay_UnitDirections(t *testing.T) {
	cam := NewCamera(testCameraConfig(), 64, 64, atmosphere.PlanetRadius)

	for _, px := range []float64{0, 13.25, 31.5, 63} {
		for _, py := range []float64{0, 7.75, 31.5, 63} {
			ray := cam.GetRay(px, py)
			if math.Abs(ray.Direction.Length()-1) > 1e-12 {
				t.Errorf("Expected unit direction at (%f, %f), got length %f",
					px, py, ray.Direction.Length())
			}
		}
	}
}

func TestGetRay_CornersAreSymmetric(t *testing.T) {
	width, height := 101, 101
	cam := NewCamera(testCameraConfig(), width, height, atmosphere.PlanetRadius)

	center := cam.GetRay(50, 50)
	left := cam.GetRay(0, 50)
	right := cam.GetRay(100, 50)
	top := cam.GetRay(50, 0)
	bottom := cam.GetRay(50, 100)

	// Opposite edges deviate from the center ray by the same angle
	angL := math.Acos(left.Direction.Dot(center.Direction))
	angR := math.Acos(right.Direction.Dot(center.Direction))
	if math.Abs(angL-angR) > 1e-9 {
		t.Errorf("Expected symmetric horizontal deviation, got %f vs %f", angL, angR)
	}

	angT := math.Acos(top.Direction.Dot(center.Direction))
	angB := math.Acos(bottom.Direction.Dot(center.Direction))
	if math.Abs(angT-angB) > 1e-9 {
		t.Errorf("Expected symmetric vertical deviation, got %f vs %f", angT, angB)
	}
}

func TestNewCamera_PolarSingularity(t *testing.T) {
	cfg := CameraConfig{LatDeg: 90, LonDeg: 0, Altitude: 1000, FOVDeg: 45}
	cam := NewCamera(cfg, 32, 32, atmosphere.PlanetRadius)

	ray := cam.GetRay(15.5, 15.5)
	if !ray.Direction.IsFinite() || math.Abs(ray.Direction.Length()-1) > 1e-12 {
		t.Errorf("Expected a usable ray over the pole, got %v", ray.Direction)
	}
	// Looking straight down the polar axis
	if ray.Direction.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-9 {
		t.Errorf("Expected -Z view from the north pole, got %v", ray.Direction)
	}
}
