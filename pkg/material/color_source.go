package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns the color at a world-space point
	Evaluate(point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of position
func (s *SolidColor) Evaluate(point core.Vec3) core.Vec3 {
	return s.Color
}

// Checkerboard alternates two colors on square tiles of side Size laid out on the
// world XZ axes. The pattern does not depend on the primitive that was hit, so
// planes, spheres and triangles sharing a material line up.
type Checkerboard struct {
	Even core.Vec3 // Color of tiles with even parity
	Odd  core.Vec3 // Color of tiles with odd parity
	Size float64   // Tile side length, must be > 0
}

// NewCheckerboard creates a checkerboard color source
func NewCheckerboard(even, odd core.Vec3, size float64) *Checkerboard {
	return &Checkerboard{Even: even, Odd: odd, Size: size}
}

// Parity returns 0 or 1 for the tile containing point
func (c *Checkerboard) Parity(point core.Vec3) int {
	ix := int64(math.Floor(point.X / c.Size))
	iz := int64(math.Floor(point.Z / c.Size))
	// Go's % keeps the sign of the dividend
	return int(((ix+iz)%2 + 2) % 2)
}

// Evaluate returns Even or Odd depending on the tile parity at point
func (c *Checkerboard) Evaluate(point core.Vec3) core.Vec3 {
	if c.Parity(point) == 0 {
		return c.Even
	}
	return c.Odd
}

// Complement returns the complementary color (1-r, 1-g, 1-b)
func Complement(color core.Vec3) core.Vec3 {
	return core.White.Subtract(color).Clamp(0, 1)
}
