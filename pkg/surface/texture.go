// Package surface implements the non-volumetric shading stages that the
// atmosphere is composited over: equirectangular planet textures, day/night
// surface shading with an ocean specular glint, and the cloud layer.
package surface

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"math"
	"os"

	"github.com/orbview/atmosray/pkg/core"
)

// Texture supplies a color for a world-space point on (or above) the planet
// surface. Implementations must be safe for concurrent sampling.
type Texture interface {
	Sample(point core.Vec3) core.Vec3
}

// SolidTexture returns a uniform color everywhere. Used as a fallback when no
// texture file is configured, and in tests.
type SolidTexture struct {
	Color core.Vec3
}

// NewSolidTexture creates a new solid texture
func NewSolidTexture(color core.Vec3) *SolidTexture {
	return &SolidTexture{Color: color}
}

// Sample returns the solid color regardless of position
func (t *SolidTexture) Sample(point core.Vec3) core.Vec3 {
	return t.Color
}

// SphereTexture maps an equirectangular image onto the planet sphere.
type SphereTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], row 0 at the north edge
}

// NewSphereTexture creates a sphere texture from raw pixel data
func NewSphereTexture(width, height int, pixels []core.Vec3) *SphereTexture {
	return &SphereTexture{Width: width, Height: height, Pixels: pixels}
}

// LoadSphereTexture loads a PNG or JPEG equirectangular map from disk.
func LoadSphereTexture(filename string) (*SphereTexture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", filename, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return NewSphereTexture(width, height, pixels), nil
}

// Sample returns the texel under the given world-space point using
// nearest-neighbor filtering. Longitude 0 maps to u=0.5; v runs north to south.
func (t *SphereTexture) Sample(point core.Vec3) core.Vec3 {
	d := point.Normalize()

	u := 0.5 + math.Atan2(d.Y, d.X)/(2*math.Pi)
	v := 0.5 - math.Asin(max(-1, min(1, d.Z)))/math.Pi

	x := int(u * float64(t.Width))
	y := int(v * float64(t.Height))

	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	return t.Pixels[y*t.Width+x]
}
