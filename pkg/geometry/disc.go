package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Disc represents a circular disc in 3D space
type Disc struct {
	Center   core.Vec3          // Center of the disc
	Normal   core.Vec3          // Unit normal
	Radius   float64            // Radius of the disc
	Material *material.Material // Material of the disc
}

// NewDisc creates a new disc
func NewDisc(center, normal core.Vec3, radius float64, mat *material.Material) *Disc {
	return &Disc{
		Center:   center,
		Normal:   normal.Normalize(),
		Radius:   radius,
		Material: mat,
	}
}

// Intersect intersects the supporting plane and rejects points outside the radius
func (d *Disc) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	if d.Degenerate() {
		return 0, false
	}

	t, ok := intersectPlane(d.Center, d.Normal, ray, tMin, tMax)
	if !ok {
		return 0, false
	}

	if ray.At(t).Subtract(d.Center).LengthSquared() > d.Radius*d.Radius {
		return 0, false
	}
	return t, true
}

// NormalAt returns the disc normal
func (d *Disc) NormalAt(point core.Vec3) core.Vec3 {
	return d.Normal
}

// GetMaterial returns the disc's material
func (d *Disc) GetMaterial() *material.Material { return d.Material }

// Kind returns KindDisc
func (d *Disc) Kind() Kind { return KindDisc }

// Degenerate reports a zero normal or a non-positive radius
func (d *Disc) Degenerate() bool { return d.Normal.IsZero() || !(d.Radius > 0) }

func (d *Disc) isPrimitive() {}
