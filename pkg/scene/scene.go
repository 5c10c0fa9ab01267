package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// DefaultBackground is the color returned by rays that miss every primitive (#3D1A28)
var DefaultBackground = core.NewVec3(0x3D/255.0, 0x1A/255.0, 0x28/255.0)

// Config holds everything needed to build a Scene
type Config struct {
	Primitives   []geometry.Primitive
	Lights       []*lights.PointLight
	Ambient      float64   // I_a, ambient light intensity
	AmbientColor core.Vec3 // Color of the ambient light
	Background   core.Vec3 // Color of rays that hit nothing
}

// Scene is the immutable set of primitives and lights a render reads from. Once
// built it is never mutated, so any number of traces may query it at once.
type Scene struct {
	primitives []geometry.Primitive
	lights     []*lights.PointLight

	Ambient      float64
	AmbientColor core.Vec3
	Background   core.Vec3
}

// New builds a scene from the given configuration. The primitive and light slices
// are copied so later changes by the caller do not leak into the scene.
func New(cfg Config) *Scene {
	s := &Scene{
		primitives:   make([]geometry.Primitive, len(cfg.Primitives)),
		lights:       make([]*lights.PointLight, len(cfg.Lights)),
		Ambient:      max(0, cfg.Ambient),
		AmbientColor: cfg.AmbientColor,
		Background:   cfg.Background,
	}
	copy(s.primitives, cfg.Primitives)
	copy(s.lights, cfg.Lights)
	return s
}

// Primitives returns the primitives in insertion order. The slice must not be modified.
func (s *Scene) Primitives() []geometry.Primitive {
	return s.primitives
}

// Lights returns the scene lights. The slice must not be modified.
func (s *Scene) Lights() []*lights.PointLight {
	return s.lights
}

// Hit finds the nearest intersection in (tMin, tMax) across all primitives.
// On coincident hits the primitive added first wins.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*geometry.HitRecord, bool) {
	var nearest geometry.Primitive
	closest := tMax

	for _, p := range s.primitives {
		if t, ok := p.Intersect(ray, tMin, closest); ok {
			nearest = p
			closest = t
		}
	}

	if nearest == nil {
		return nil, false
	}
	return geometry.NewHitRecord(ray, closest, nearest), true
}

// GetPrimitiveCount returns the number of primitives in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.primitives)
}

// DegenerateCount returns how many primitives can never be hit
func (s *Scene) DegenerateCount() int {
	count := 0
	for _, p := range s.primitives {
		if p.Degenerate() {
			count++
		}
	}
	return count
}
