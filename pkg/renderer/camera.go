package renderer

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrInvalidCamera is returned when a camera cannot map pixels to rays
var ErrInvalidCamera = errors.New("renderer: invalid camera")

// Camera maps pixel coordinates to world-space rays through a projection plane
type Camera struct {
	observer *scene.Observer
	plane    scene.ProjectionPlane
	width    int
	height   int

	center core.Vec3 // World-space center of the projection plane
}

// NewCamera creates a camera for a width x height pixel grid. Mismatched plane
// and resolution aspect ratios are not corrected; the image stretches.
func NewCamera(observer *scene.Observer, plane scene.ProjectionPlane, width, height int) (*Camera, error) {
	if observer == nil {
		return nil, fmt.Errorf("%w: missing observer", ErrInvalidCamera)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: resolution %dx%d", ErrInvalidCamera, width, height)
	}
	if err := plane.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCamera, err)
	}

	return &Camera{
		observer: observer,
		plane:    plane,
		width:    width,
		height:   height,
		center:   plane.Center(observer),
	}, nil
}

// GetRay returns the ray from the observer through the center of pixel (col, row).
// Row 0 is the top of the image.
func (c *Camera) GetRay(col, row int) core.Ray {
	u := (float64(col) + 0.5) / float64(c.width)
	v := (float64(row) + 0.5) / float64(c.height)

	point := c.center.
		Add(c.observer.Right.Multiply((u - 0.5) * c.plane.Width)).
		Add(c.observer.Up.Multiply((0.5 - v) * c.plane.Height))

	return core.NewRayTowards(c.observer.Position, point)
}

// Width returns the horizontal resolution in pixels
func (c *Camera) Width() int { return c.width }

// Height returns the vertical resolution in pixels
func (c *Camera) Height() int { return c.height }
