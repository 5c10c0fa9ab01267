package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestTriangle_Intersect(t *testing.T) {
	// Create a triangle in the XY plane
	v0 := core.NewVec3(0, 0, 0)
	v1 := core.NewVec3(1, 0, 0)
	v2 := core.NewVec3(0, 1, 0)
	triangle := NewTriangle(v0, v1, v2, testMaterial())

	tests := []struct {
		name      string
		ray       core.Ray
		shouldHit bool
		expectedT float64
	}{
		{
			name:      "Ray hits triangle center",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1)),
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Ray hits triangle edge",
			ray:       core.NewRay(core.NewVec3(0.5, 0, -1), core.NewVec3(0, 0, 1)),
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Ray hits vertex",
			ray:       core.NewRay(core.NewVec3(0, 1, -2), core.NewVec3(0, 0, 1)),
			shouldHit: true,
			expectedT: 2.0,
		},
		{
			name:      "Ray misses triangle",
			ray:       core.NewRay(core.NewVec3(1, 1, -1), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
		{
			name:      "Ray parallel to triangle",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 0), core.NewVec3(1, 0, 0)),
			shouldHit: false,
		},
		{
			name:      "Ray hits from behind",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1)),
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Triangle behind ray",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, isHit := triangle.Intersect(tt.ray, core.Epsilon, math.Inf(1))
			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got hit=%v", tt.shouldHit, isHit)
			}
			if tt.shouldHit && math.Abs(got-tt.expectedT) > 1e-6 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, got)
			}
		})
	}
}

func TestTriangle_NormalFromWinding(t *testing.T) {
	ccw := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), testMaterial())
	cw := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), testMaterial())

	if !vecApproxEqual(ccw.GetNormal(), core.NewVec3(0, 0, 1), tolerance) {
		t.Errorf("Expected +Z normal, got %v", ccw.GetNormal())
	}
	if !vecApproxEqual(cw.GetNormal(), core.NewVec3(0, 0, -1), tolerance) {
		t.Errorf("Expected -Z normal, got %v", cw.GetNormal())
	}

	// Normal is constant across the surface
	if ccw.NormalAt(core.NewVec3(0.1, 0.1, 0)) != ccw.NormalAt(core.NewVec3(0.7, 0.2, 0)) {
		t.Error("Expected constant normal across the triangle")
	}
}

func TestTriangle_DegenerateIsScaleInvariant(t *testing.T) {
	tests := []struct {
		name       string
		v0, v1, v2 core.Vec3
		degenerate bool
	}{
		{"unit", core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), false},
		{"small", core.NewVec3(0, 0, 0), core.NewVec3(0.002, 0, 0), core.NewVec3(0, 0.002, 0), false},
		{"tiny", core.NewVec3(0, 0, 0), core.NewVec3(1e-7, 0, 0), core.NewVec3(0, 1e-7, 0), false},
		{"collinear", core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), core.NewVec3(2, 2, 2), true},
		{"nearly collinear", core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 1e-7, 0), true},
		{"coincident vertices", core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), core.NewVec3(0, 1, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			triangle := NewTriangle(tt.v0, tt.v1, tt.v2, testMaterial())
			if triangle.Degenerate() != tt.degenerate {
				t.Errorf("Expected degenerate=%v, got %v", tt.degenerate, triangle.Degenerate())
			}
		})
	}
}

func TestTriangle_SmallTriangleIsHit(t *testing.T) {
	triangle := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(0.002, 0, 0), core.NewVec3(0, 0.002, 0), testMaterial())

	got, isHit := triangle.Intersect(core.NewRay(core.NewVec3(0.0005, 0.0005, -1), core.NewVec3(0, 0, 1)), core.Epsilon, math.Inf(1))
	if !isHit {
		t.Fatal("Expected small triangle to be hit")
	}
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", got)
	}
	if !triangle.NormalAt(core.NewVec3(0.0005, 0.0005, 0)).Equals(core.NewVec3(0, 0, 1)) {
		t.Errorf("Expected normal (0,0,1), got %v", triangle.NormalAt(core.Vec3{}))
	}

	if _, isHit := triangle.Intersect(core.NewRay(core.NewVec3(0.003, 0.003, -1), core.NewVec3(0, 0, 1)), core.Epsilon, math.Inf(1)); isHit {
		t.Error("Expected ray beside the small triangle to miss")
	}
}
