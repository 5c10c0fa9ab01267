package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	// DefaultMaxDepth is the number of reflection/transmission bounces traced
	DefaultMaxDepth = 5

	// DefaultMinWeight is the smallest accumulated weight a secondary ray may carry
	DefaultMinWeight = 1e-4

	// MaxShadowCrossings bounds the surfaces a shadow ray passes through; the factor
	// accumulated so far is kept once it is reached
	MaxShadowCrossings = 64
)

// Config controls recursion and shadowing
type Config struct {
	MaxDepth  int     // Maximum recursion depth; 0 traces camera rays only
	MinWeight float64 // Secondary rays with a smaller weight are not traced
	Shadows   bool    // Cast shadow rays towards lights
}

// DefaultConfig returns the standard Whitted configuration
func DefaultConfig() Config {
	return Config{
		MaxDepth:  DefaultMaxDepth,
		MinWeight: DefaultMinWeight,
		Shadows:   true,
	}
}

// WhittedIntegrator implements recursive Whitted-style ray tracing: Phong local
// illumination with transparency-aware shadows, plus mirror reflection and
// straight-through transmission.
type WhittedIntegrator struct {
	config Config
}

// NewWhitted creates a new Whitted integrator
func NewWhitted(config Config) *WhittedIntegrator {
	config.MaxDepth = max(0, config.MaxDepth)
	config.MinWeight = max(0, config.MinWeight)
	return &WhittedIntegrator{config: config}
}

// Config returns the integrator configuration
func (w *WhittedIntegrator) Config() Config {
	return w.config
}

// Trace computes the color for a single camera ray
func (w *WhittedIntegrator) Trace(ray core.Ray, sc *scene.Scene) Sample {
	var s Sample
	s.Color = w.rayColor(ray, sc, 0, 1, &s)
	return s
}

// rayColor traces ray at the given recursion depth. weight is the product of the
// reflect/transmit coefficients along the path from the camera.
func (w *WhittedIntegrator) rayColor(ray core.Ray, sc *scene.Scene, depth int, weight float64, s *Sample) core.Vec3 {
	s.Rays++
	s.Depth = max(s.Depth, depth)

	hit, isHit := sc.Hit(ray, core.Epsilon, math.Inf(1))
	if !isHit {
		return sc.Background
	}
	if depth == 0 {
		s.Hit = true
	}

	mat := hit.Material
	local := w.localColor(ray, hit, sc, s)

	reflected, transmitted := local, local

	if mat.Reflectivity > 0 && w.canRecurse(depth, weight*mat.Reflectivity) {
		origin := hit.Point.Add(hit.Normal.Multiply(core.Epsilon))
		next := core.NewRay(origin, ray.Direction.Reflect(hit.Normal).Normalize())
		reflected = w.rayColor(next, sc, depth+1, weight*mat.Reflectivity, s)
	}

	if mat.Transparency > 0 && w.canRecurse(depth, weight*mat.Transparency) {
		origin := hit.Point.Subtract(hit.Normal.Multiply(core.Epsilon))
		next := core.NewRay(origin, ray.Direction)
		transmitted = w.rayColor(next, sc, depth+1, weight*mat.Transparency, s)
	}

	color := reflected.Multiply(mat.Reflectivity).Add(transmitted.Multiply(mat.Transparency))
	if residual := mat.Residual(); residual >= 0 && residual <= 1 {
		color = color.Add(local.Multiply(residual))
	} else {
		// Over-committed material: the local term is added unweighted
		color = color.Add(local)
	}

	return color.Clamp(0, 1)
}

func (w *WhittedIntegrator) canRecurse(depth int, weight float64) bool {
	return depth < w.config.MaxDepth && weight >= w.config.MinWeight
}

// localColor computes ambient plus per-light diffuse and specular terms
func (w *WhittedIntegrator) localColor(ray core.Ray, hit *geometry.HitRecord, sc *scene.Scene, s *Sample) core.Vec3 {
	mat := hit.Material
	normal := hit.Normal
	view := ray.Direction.Negate()
	surface := mat.ColorAt(hit.Point)

	color := surface.MultiplyVec(sc.AmbientColor).Multiply(sc.Ambient * mat.Ambient)

	for _, light := range sc.Lights() {
		toLight := light.Direction(hit.Point)
		cosTheta := normal.Dot(toLight)
		if cosTheta <= 0 {
			continue
		}

		shadow := 1.0
		if w.config.Shadows {
			s.ShadowRays++
			shadow = ShadowFactor(sc, hit.Point, normal, light)
			if shadow <= 0 {
				continue
			}
		}

		radiance := light.Contribution(hit.Point).Multiply(shadow)

		diffuse := surface.MultiplyVec(radiance).Multiply(cosTheta * mat.Diffuse)
		color = color.Add(diffuse)

		if mat.Specular > 0 {
			if rv := toLight.Negate().Reflect(normal).Dot(view); rv > 0 {
				color = color.Add(radiance.Multiply(math.Pow(rv, mat.Shininess) * mat.Specular))
			}
		}
	}

	return color
}

// ShadowFactor returns the fraction of light reaching point from light, in [0,1].
// The shadow ray starts just above the surface along normal; every surface it
// crosses before the light scales the factor by that surface's transparency.
func ShadowFactor(sc *scene.Scene, point, normal core.Vec3, light *lights.PointLight) float64 {
	origin := point.Add(normal.Multiply(core.Epsilon))
	toLight := light.Position.Subtract(origin)
	remaining := toLight.Length()
	if remaining < core.Epsilon {
		return 1
	}

	ray := core.NewRay(origin, toLight.Multiply(1/remaining))
	factor := 1.0

	for crossings := 0; crossings < MaxShadowCrossings; crossings++ {
		hit, isHit := sc.Hit(ray, core.Epsilon, remaining)
		if !isHit {
			return factor
		}

		if hit.Material.Opaque() {
			return 0
		}
		factor *= hit.Material.Transparency

		// Continue from the crossing towards the light
		ray = core.NewRay(hit.Point, ray.Direction)
		remaining -= hit.T
	}

	return factor
}
