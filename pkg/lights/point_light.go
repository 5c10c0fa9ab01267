package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Default distance attenuation coefficients: no falloff
const (
	DefaultConstant  = 1.0
	DefaultLinear    = 0.0
	DefaultQuadratic = 0.0
)

// PointLight is an omnidirectional light at a fixed position. Its contribution
// at distance d is scaled by min(1, 1/(Constant + Linear·d + Quadratic·d²)).
type PointLight struct {
	Position  core.Vec3 // World-space position
	Intensity float64   // I_p, scalar intensity
	Color     core.Vec3 // Light color, multiplied into diffuse and specular terms

	Constant  float64 // c1
	Linear    float64 // c2
	Quadratic float64 // c3
}

// NewPointLight creates a white point light with no distance falloff
func NewPointLight(position core.Vec3, intensity float64) *PointLight {
	return &PointLight{
		Position:  position,
		Intensity: intensity,
		Color:     core.White,
		Constant:  DefaultConstant,
		Linear:    DefaultLinear,
		Quadratic: DefaultQuadratic,
	}
}

// Direction returns the unit vector from point towards the light
func (l *PointLight) Direction(point core.Vec3) core.Vec3 {
	return l.Position.Subtract(point).Normalize()
}

// Distance returns the distance from point to the light
func (l *PointLight) Distance(point core.Vec3) float64 {
	return l.Position.Subtract(point).Length()
}

// Attenuation returns the distance falloff factor in [0,1]. A non-positive
// denominator disables attenuation.
func (l *PointLight) Attenuation(distance float64) float64 {
	denom := l.Constant + l.Linear*distance + l.Quadratic*distance*distance
	if denom <= 0 {
		return 1
	}
	return min(1, 1/denom)
}

// Contribution returns the light's color scaled by intensity and attenuation as
// seen from point
func (l *PointLight) Contribution(point core.Vec3) core.Vec3 {
	return l.Color.Multiply(l.Intensity * l.Attenuation(l.Distance(point)))
}
