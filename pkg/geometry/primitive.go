package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Kind identifies the concrete primitive variant
type Kind int

// The closed set of primitive variants
const (
	KindSphere Kind = iota
	KindPlane
	KindDisc
	KindCylinder
	KindTriangle
)

var kindNames = [...]string{"sphere", "plane", "disc", "cylinder", "triangle"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Primitive is a renderable shape. The set of implementations is closed: only the
// types in this package satisfy it.
type Primitive interface {
	// Intersect returns the smallest ray parameter t with tMin < t < tMax at which
	// the ray meets the surface. The ray direction must be normalized.
	Intersect(ray core.Ray, tMin, tMax float64) (float64, bool)

	// NormalAt returns the outward unit normal at a point on the surface
	NormalAt(point core.Vec3) core.Vec3

	// GetMaterial returns the surface material
	GetMaterial() *material.Material

	// Kind returns the primitive variant
	Kind() Kind

	// Degenerate reports whether the geometry is invalid (zero radius, zero
	// normal, collinear vertices). Degenerate primitives never intersect.
	Degenerate() bool

	isPrimitive()
}

// HitRecord contains information about a ray-primitive intersection
type HitRecord struct {
	T         float64            // Parameter t along the ray
	Point     core.Vec3          // Point of intersection
	Normal    core.Vec3          // Unit normal facing the incoming ray
	FrontFace bool               // Whether the ray hit the outward side
	Primitive Primitive          // Primitive that was struck
	Material  *material.Material // Material of the struck primitive
}

// NewHitRecord builds the hit record for primitive p at parameter t along ray
func NewHitRecord(ray core.Ray, t float64, p Primitive) *HitRecord {
	point := ray.At(t)
	hit := &HitRecord{
		T:         t,
		Point:     point,
		Primitive: p,
		Material:  p.GetMaterial(),
	}
	hit.SetFaceNormal(ray, p.NormalAt(point))
	return hit
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// inRange reports whether t lies strictly inside (tMin, tMax)
func inRange(t, tMin, tMax float64) bool {
	return t > tMin && t < tMax
}

// nearestRoot picks the smaller root of a quadratic inside (tMin, tMax), falling
// back to the larger one; r1 <= r2 is assumed
func nearestRoot(r1, r2, tMin, tMax float64) (float64, bool) {
	if inRange(r1, tMin, tMax) {
		return r1, true
	}
	if inRange(r2, tMin, tMax) {
		return r2, true
	}
	return 0, false
}
