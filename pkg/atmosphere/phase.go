package atmosphere

import "math"

// RayleighPhase returns the Rayleigh scattering-direction weight for the
// cosine of the view/sun angle: 0.75·(1 + cos²θ). Symmetric, favoring forward
// and backward scattering equally; range [0.75, 1.5].
func RayleighPhase(cosTheta float64) float64 {
	return 0.75 * (1 + cosTheta*cosTheta)
}

// HenyeyGreensteinPhase approximates the Mie phase function with anisotropy
// factor g: (1 - g²) / (4π·(1 + g² - 2g·cosθ)^1.5). For |g| < 1 the
// denominator is bounded away from zero, so no guard is needed.
func HenyeyGreensteinPhase(cosTheta, g float64) float64 {
	g2 := g * g
	denom := 1 + g2 - 2*g*cosTheta
	return (1 - g2) / (4 * math.Pi * math.Pow(denom, 1.5))
}
