package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material *material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat *material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Intersect solves |O + tD - C|² = r² for t
func (s *Sphere) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	if s.Degenerate() {
		return 0, false
	}

	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	return nearestRoot((-halfB-sqrtD)/a, (-halfB+sqrtD)/a, tMin, tMax)
}

// NormalAt returns the unit vector from the center to point
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Multiply(1.0 / s.Radius)
}

// GetMaterial returns the sphere's material
func (s *Sphere) GetMaterial() *material.Material { return s.Material }

// Kind returns KindSphere
func (s *Sphere) Kind() Kind { return KindSphere }

// Degenerate reports a non-positive radius
func (s *Sphere) Degenerate() bool { return !(s.Radius > 0) }

func (s *Sphere) isPrimitive() {}
