package renderer

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ProgressFunc is called after each completed row
type ProgressFunc func(rowsDone, totalRows int)

// Raytracer drives the render loop: one camera ray per pixel, row-major, top row first
type Raytracer struct {
	scene      *scene.Scene
	camera     *Camera
	integrator integrator.Integrator
	progress   ProgressFunc
}

// NewRaytracer creates a new raytracer
func NewRaytracer(sc *scene.Scene, camera *Camera, integ integrator.Integrator) *Raytracer {
	return &Raytracer{
		scene:      sc,
		camera:     camera,
		integrator: integ,
	}
}

// SetProgress installs a callback invoked after every row
func (rt *Raytracer) SetProgress(fn ProgressFunc) {
	rt.progress = fn
}

// RenderPixel traces the camera ray through pixel (col, row). It reads the scene
// only, so pixels may be evaluated in any order.
func (rt *Raytracer) RenderPixel(col, row int) integrator.Sample {
	return rt.integrator.Trace(rt.camera.GetRay(col, row), rt.scene)
}

// Render renders every pixel and returns the image along with render statistics
func (rt *Raytracer) Render() (*image.RGBA, RenderStats) {
	width, height := rt.camera.Width(), rt.camera.Height()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	stats := RenderStats{Width: width, Height: height}

	start := time.Now()
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			sample := rt.RenderPixel(col, row)
			stats.AddSample(sample)
			img.SetRGBA(col, row, vec3ToColor(sample.Color))
		}
		if rt.progress != nil {
			rt.progress(row+1, height)
		}
	}
	stats.RenderTime = time.Since(start)
	stats.AverageLuminance = CalculateAverageLuminance(img)

	return img, stats
}

// vec3ToColor converts a linear [0,1] color to opaque 8-bit RGBA
func vec3ToColor(c core.Vec3) color.RGBA {
	c = c.Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(math.Round(255 * c.X)),
		G: uint8(math.Round(255 * c.Y)),
		B: uint8(math.Round(255 * c.Z)),
		A: 255,
	}
}
