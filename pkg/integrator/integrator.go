package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Sample is the result of tracing one camera ray
type Sample struct {
	Color      core.Vec3 // Final color, clamped to [0,1]
	Hit        bool      // Whether the camera ray struck a primitive
	Rays       int       // Camera and secondary rays traced
	ShadowRays int       // Shadow rays cast towards lights
	Depth      int       // Deepest recursion level reached
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Trace computes the color seen along ray. It must not modify the scene and
	// must return the same sample for the same inputs.
	Trace(ray core.Ray, sc *scene.Scene) Sample
}
