// Package camera keeps the viewport framed on a followed entity inside the
// world bounds.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// DefaultSmoothing is the fraction of the remaining distance covered per
// Update.
const DefaultSmoothing = 0.1

// Target is anything the camera can follow. The camera does not own it.
type Target interface {
	Position() mgl64.Vec2
}

// Camera tracks the top-left corner of the viewport in world coordinates.
type Camera struct {
	position      mgl64.Vec2
	width, height float64
	worldW        float64
	worldH        float64
	smoothing     float64
	target        Target
}

// New creates a camera at the world origin.
func New(width, height, worldW, worldH, smoothing float64) (*Camera, error) {
	if !(width > 0 && height > 0) {
		return nil, errors.Errorf("viewport must be positive, got %vx%v", width, height)
	}
	if !(worldW > 0 && worldH > 0) {
		return nil, errors.Errorf("camera world bounds must be positive, got %vx%v", worldW, worldH)
	}
	if !(smoothing > 0 && smoothing <= 1) {
		return nil, errors.Errorf("camera smoothing must be in (0, 1], got %v", smoothing)
	}
	return &Camera{
		width:     width,
		height:    height,
		worldW:    worldW,
		worldH:    worldH,
		smoothing: smoothing,
	}, nil
}

// SetTarget follows t and centres on it immediately. A nil target stops
// following and leaves the camera where it is.
func (c *Camera) SetTarget(t Target) {
	c.target = t
	if t == nil {
		return
	}
	c.position = c.desired()
	c.clamp()
}

// Target returns the followed entity, if any.
func (c *Camera) Target() Target { return c.target }

// Update moves the camera a fraction of the way toward centring the target,
// then clamps it to the world.
func (c *Camera) Update() {
	if c.target == nil {
		return
	}
	c.position = c.position.Add(c.desired().Sub(c.position).Mul(c.smoothing))
	c.clamp()
}

func (c *Camera) desired() mgl64.Vec2 {
	return c.target.Position().Sub(mgl64.Vec2{c.width / 2, c.height / 2})
}

// clamp keeps the viewport inside the world. When the world is smaller
// than the viewport the range collapses to 0.
func (c *Camera) clamp() {
	c.position[0] = mgl64.Clamp(c.position[0], 0, math.Max(0, c.worldW-c.width))
	c.position[1] = mgl64.Clamp(c.position[1], 0, math.Max(0, c.worldH-c.height))
}

// Resize changes the viewport size and re-clamps.
func (c *Camera) Resize(width, height float64) {
	if !(width > 0 && height > 0) {
		return
	}
	c.width, c.height = width, height
	c.clamp()
}

func (c *Camera) Position() mgl64.Vec2 { return c.position }

// Size returns the viewport width and height.
func (c *Camera) Size() (width, height float64) { return c.width, c.height }

// WorldToScreen converts a world position to viewport coordinates.
func (c *Camera) WorldToScreen(p mgl64.Vec2) mgl64.Vec2 {
	return p.Sub(c.position)
}

// ScreenToWorld converts viewport coordinates to a world position. It
// inverts WorldToScreen up to float64 rounding of the camera offset, so a
// round trip matches within mgl64's epsilon rather than bit for bit.
func (c *Camera) ScreenToWorld(p mgl64.Vec2) mgl64.Vec2 {
	return p.Add(c.position)
}

// IsVisible reports whether p lies inside the viewport grown by margin on
// every side.
func (c *Camera) IsVisible(p mgl64.Vec2, margin float64) bool {
	return p.X() >= c.position.X()-margin &&
		p.X() <= c.position.X()+c.width+margin &&
		p.Y() >= c.position.Y()-margin &&
		p.Y() <= c.position.Y()+c.height+margin
}
