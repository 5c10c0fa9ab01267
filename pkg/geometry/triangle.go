package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3          // The three vertices
	Material   *material.Material // Material of the triangle
	normal     core.Vec3          // Cached normal vector, from the vertex winding
	degenerate bool
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, mat *material.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: mat,
	}

	edge1, edge2 := v1.Subtract(v0), v2.Subtract(v0)
	cross := edge1.Cross(edge2)
	// Relative to the edge lengths, so small but well-shaped triangles survive
	t.degenerate = cross.Length() <= core.Epsilon*edge1.Length()*edge2.Length()
	t.normal = cross.Normalize()

	return t
}

// Intersect uses the Möller-Trumbore algorithm: the plane hit and the barycentric
// coordinates (u, v, 1-u-v) come out of the same solve.
func (t *Triangle) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	if t.degenerate {
		return 0, false
	}

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the plane of the triangle
	if math.Abs(a) <= core.Epsilon*edge1.Length()*edge2.Length() {
		return 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < -core.Epsilon || u > 1.0+core.Epsilon {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < -core.Epsilon || u+v > 1.0+core.Epsilon {
		return 0, false
	}

	tParam := f * edge2.Dot(q)
	if !inRange(tParam, tMin, tMax) {
		return 0, false
	}
	return tParam, true
}

// NormalAt returns the constant triangle normal
func (t *Triangle) NormalAt(point core.Vec3) core.Vec3 {
	return t.normal
}

// GetNormal returns the triangle's normal vector
func (t *Triangle) GetNormal() core.Vec3 {
	return t.normal
}

// GetMaterial returns the triangle's material
func (t *Triangle) GetMaterial() *material.Material { return t.Material }

// Kind returns KindTriangle
func (t *Triangle) Kind() Kind { return KindTriangle }

// Degenerate reports collinear or coincident vertices
func (t *Triangle) Degenerate() bool { return t.degenerate }

func (t *Triangle) isPrimitive() {}
