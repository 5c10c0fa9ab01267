package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DefaultShininess is the specular exponent used when none is configured
const DefaultShininess = 10.0

// Params are the raw surface parameters of a material, before clamping
type Params struct {
	Color        core.Vec3 // Base color
	CheckerColor core.Vec3 // Second checker color, used when CheckerSize > 0
	Ambient      float64   // k_a
	Diffuse      float64   // k_d
	Specular     float64   // k_s
	Shininess    float64   // k_n, specular exponent
	Reflectivity float64
	Transparency float64
	CheckerSize  float64 // Checker tile size; 0 disables the checkerboard
}

// Material describes how a surface responds to local illumination and how much of
// the reflected and transmitted light it lets through. Materials are immutable once
// built and may be shared across primitives.
type Material struct {
	Color        core.Vec3
	CheckerColor core.Vec3
	Ambient      float64
	Diffuse      float64
	Specular     float64
	Shininess    float64
	Reflectivity float64
	Transparency float64
	CheckerSize  float64

	texture ColorSource
}

// New builds a material, clamping the light proportions to [0,1] and the shininess
// to >= 0. Diffuse + specular + reflectivity + transparency may exceed 1.
func New(p Params) *Material {
	m := &Material{
		Color:        p.Color.Clamp(0, 1),
		CheckerColor: p.CheckerColor.Clamp(0, 1),
		Ambient:      clamp01(p.Ambient),
		Diffuse:      clamp01(p.Diffuse),
		Specular:     clamp01(p.Specular),
		Shininess:    max(0, p.Shininess),
		Reflectivity: clamp01(p.Reflectivity),
		Transparency: clamp01(p.Transparency),
		CheckerSize:  max(0, p.CheckerSize),
	}

	if m.CheckerSize > 0 {
		m.texture = NewCheckerboard(m.Color, m.CheckerColor, m.CheckerSize)
	} else {
		m.texture = NewSolidColor(m.Color)
	}

	return m
}

// NewMatte creates an opaque material with the given base color and coefficients
func NewMatte(color core.Vec3, ambient, diffuse, specular float64) *Material {
	return New(Params{
		Color:     color,
		Ambient:   ambient,
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: DefaultShininess,
	})
}

// ColorAt returns the surface color at a world-space point
func (m *Material) ColorAt(point core.Vec3) core.Vec3 {
	return m.texture.Evaluate(point)
}

// Residual is the weight left for the local illumination term
func (m *Material) Residual() float64 {
	return 1 - m.Reflectivity - m.Transparency
}

// Opaque reports whether the material blocks light completely
func (m *Material) Opaque() bool {
	return m.Transparency <= 0
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
