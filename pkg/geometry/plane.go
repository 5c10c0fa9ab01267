package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3          // A point on the plane
	Normal   core.Vec3          // Unit normal
	Material *material.Material // Material of the plane
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, mat *material.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(),
		Material: mat,
	}
}

// Intersect solves (O + tD - P)·N = 0 for t
func (p *Plane) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	if p.Degenerate() {
		return 0, false
	}
	return intersectPlane(p.Point, p.Normal, ray, tMin, tMax)
}

// intersectPlane is shared by planes and discs
func intersectPlane(point, normal core.Vec3, ray core.Ray, tMin, tMax float64) (float64, bool) {
	denominator := ray.Direction.Dot(normal)

	// Ray parallel to the plane
	if math.Abs(denominator) < core.Epsilon {
		return 0, false
	}

	t := point.Subtract(ray.Origin).Dot(normal) / denominator
	if !inRange(t, tMin, tMax) {
		return 0, false
	}
	return t, true
}

// NormalAt returns the plane normal
func (p *Plane) NormalAt(point core.Vec3) core.Vec3 {
	return p.Normal
}

// GetMaterial returns the plane's material
func (p *Plane) GetMaterial() *material.Material { return p.Material }

// Kind returns KindPlane
func (p *Plane) Kind() Kind { return KindPlane }

// Degenerate reports a zero normal
func (p *Plane) Degenerate() bool { return p.Normal.IsZero() }

func (p *Plane) isPrimitive() {}
