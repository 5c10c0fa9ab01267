package renderer

import (
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width            int           // Image width in pixels
	Height           int           // Image height in pixels
	TotalPixels      int           // Total number of pixels rendered
	BackgroundPixels int           // Pixels whose camera ray hit nothing
	TotalRays        int           // Camera, reflected and transmitted rays
	ShadowRays       int           // Shadow rays cast towards lights
	MaxDepthReached  int           // Deepest recursion level of any pixel
	AverageLuminance float64       // Mean luminance of the final image
	RenderTime       time.Duration // Wall time of the render loop
}

// AddSample folds one pixel's sample into the statistics
func (rs *RenderStats) AddSample(s integrator.Sample) {
	rs.TotalPixels++
	if !s.Hit {
		rs.BackgroundPixels++
	}
	rs.TotalRays += s.Rays
	rs.ShadowRays += s.ShadowRays
	rs.MaxDepthReached = max(rs.MaxDepthReached, s.Depth)
}

// RaysPerPixel returns the average number of rays traced per pixel
func (rs RenderStats) RaysPerPixel() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return float64(rs.TotalRays) / float64(rs.TotalPixels)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of img in [0,1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	count := bounds.Dx() * bounds.Dy()
	if count == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
		}
	}

	return total / 255.0 / float64(count)
}
