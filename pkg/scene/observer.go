package scene

import (
	"errors"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var (
	// ErrDegenerateObserver is returned when the observer basis cannot be built
	ErrDegenerateObserver = errors.New("scene: observer basis is degenerate")

	// ErrInvalidProjection is returned for a projection plane with non-positive dimensions
	ErrInvalidProjection = errors.New("scene: projection plane dimensions must be positive")
)

// Observer is the camera pose: a position and an orthonormal basis
type Observer struct {
	Position core.Vec3
	Forward  core.Vec3
	Up       core.Vec3
	Right    core.Vec3
}

// NewObserver builds an observer looking along forward. The up hint does not need
// to be perpendicular to forward; it is re-orthogonalized with Right = Up × Forward
// and Up = Forward × Right, so looking down +z with +y up puts +x on the right of
// the image.
func NewObserver(position, forward, up core.Vec3) (*Observer, error) {
	if forward.IsZero() || up.IsZero() {
		return nil, ErrDegenerateObserver
	}

	f := forward.Normalize()
	right := up.Normalize().Cross(f)
	if right.IsZero() {
		// up is parallel to forward
		return nil, ErrDegenerateObserver
	}
	right = right.Normalize()

	return &Observer{
		Position: position,
		Forward:  f,
		Up:       f.Cross(right).Normalize(),
		Right:    right,
	}, nil
}

// NewObserverLookAt builds an observer at position looking at target
func NewObserverLookAt(position, target, up core.Vec3) (*Observer, error) {
	return NewObserver(position, target.Subtract(position), up)
}

// NewObserverBasis builds an observer from an explicit basis, which must be
// orthonormal within Epsilon
func NewObserverBasis(position, forward, up, right core.Vec3) (*Observer, error) {
	for _, v := range []core.Vec3{forward, up, right} {
		if math.Abs(v.Length()-1) > core.Epsilon {
			return nil, ErrDegenerateObserver
		}
	}
	if math.Abs(forward.Dot(up)) > core.Epsilon ||
		math.Abs(forward.Dot(right)) > core.Epsilon ||
		math.Abs(up.Dot(right)) > core.Epsilon {
		return nil, ErrDegenerateObserver
	}

	return &Observer{
		Position: position,
		Forward:  forward,
		Up:       up,
		Right:    right,
	}, nil
}

// ProjectionPlane is the world-space rectangle pixels are mapped onto. It sits at
// Distance along the observer's forward axis, centered on that axis unless shifted
// by OffsetRight and OffsetUp.
type ProjectionPlane struct {
	Distance    float64
	Width       float64
	Height      float64
	OffsetRight float64 // Shift of the rectangle center along the observer's right axis
	OffsetUp    float64 // Shift of the rectangle center along the observer's up axis
}

// Validate checks that the plane has positive dimensions
func (p ProjectionPlane) Validate() error {
	if !(p.Distance > 0) || !(p.Width > 0) || !(p.Height > 0) {
		return ErrInvalidProjection
	}
	return nil
}

// Center returns the world-space center of the plane as seen by observer o
func (p ProjectionPlane) Center(o *Observer) core.Vec3 {
	return o.Position.
		Add(o.Forward.Multiply(p.Distance)).
		Add(o.Right.Multiply(p.OffsetRight)).
		Add(o.Up.Multiply(p.OffsetUp))
}
