package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Cylinder represents an infinite, open cylinder around an axis line
type Cylinder struct {
	Point    core.Vec3 // A point on the axis
	Axis     core.Vec3 // Unit axis direction
	Radius   float64
	Material *material.Material
}

// NewCylinder creates a new cylinder
func NewCylinder(point, axis core.Vec3, radius float64, mat *material.Material) *Cylinder {
	return &Cylinder{
		Point:    point,
		Axis:     axis.Normalize(),
		Radius:   radius,
		Material: mat,
	}
}

// Intersect projects the ray onto the plane perpendicular to the axis and solves
// the resulting 2D circle quadratic. There are no caps.
func (c *Cylinder) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	if c.Degenerate() {
		return 0, false
	}

	// Vector from the axis point to the ray origin
	delta := ray.Origin.Subtract(c.Point)

	DV := ray.Direction.Dot(c.Axis) // D · V̂
	deltaV := delta.Dot(c.Axis)     // Δ · V̂

	// a = |D|² - (D·V̂)²
	// b = 2[Δ·D - (Δ·V̂)(D·V̂)]
	// cc = |Δ|² - (Δ·V̂)² - r²
	a := ray.Direction.LengthSquared() - DV*DV
	b := 2.0 * (delta.Dot(ray.Direction) - deltaV*DV)
	cc := delta.LengthSquared() - deltaV*deltaV - c.Radius*c.Radius

	// Ray parallel to the axis never meets the tube
	if a < core.Epsilon {
		return 0, false
	}

	discriminant := b*b - 4*a*cc
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	return nearestRoot((-b-sqrtD)/(2*a), (-b+sqrtD)/(2*a), tMin, tMax)
}

// NormalAt returns the radial direction from the axis to point
func (c *Cylinder) NormalAt(point core.Vec3) core.Vec3 {
	v := point.Subtract(c.Point)
	axisPoint := c.Axis.Multiply(v.Dot(c.Axis))
	return v.Subtract(axisPoint).Normalize()
}

// GetMaterial returns the cylinder's material
func (c *Cylinder) GetMaterial() *material.Material { return c.Material }

// Kind returns KindCylinder
func (c *Cylinder) Kind() Kind { return KindCylinder }

// Degenerate reports a zero axis or a non-positive radius
func (c *Cylinder) Degenerate() bool { return c.Axis.IsZero() || !(c.Radius > 0) }

func (c *Cylinder) isPrimitive() {}
