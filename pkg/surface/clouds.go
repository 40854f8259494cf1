package surface

import (
	"github.com/orbview/atmosray/pkg/core"
)

// CloudRadius is the cloud shell radius, 50 units above the surface.
const CloudRadius = 6428.0

// DefaultCloudOpacity is the default global coverage multiplier.
const DefaultCloudOpacity = 0.7

// CloudLayer shades the thin cloud shell. Unlike the atmosphere this does no
// ray marching: texture brightness becomes coverage (alpha) and a Lambertian
// term tints the clouds by sun exposure.
type CloudLayer struct {
	Texture Texture
	Opacity float64 // global coverage multiplier in [0, 1]
}

// NewCloudLayer creates a cloud layer with the default opacity.
func NewCloudLayer(texture Texture) *CloudLayer {
	return &CloudLayer{Texture: texture, Opacity: DefaultCloudOpacity}
}

// Shade returns the cloud color and alpha at a point on the cloud sphere.
func (c *CloudLayer) Shade(point, sunDir core.Vec3) (core.Vec3, float64) {
	sample := c.Texture.Sample(point)

	// Brightness-as-alpha: white cloud texels are opaque, dark ones clear
	brightness := (sample.X + sample.Y + sample.Z) / 3.0
	alpha := brightness * c.Opacity
	if alpha > 1 {
		alpha = 1
	}

	lambert := point.Normalize().Dot(sunDir)
	if lambert < 0 {
		lambert = 0
	}

	return sample.Multiply(lambert), alpha
}
