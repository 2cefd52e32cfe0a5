package world

import (
	"math"

	"raycastmaze/internal/mathutil"
)

// Camera is the viewer pose. The input controller mutates it once per frame;
// renderers only read it.
type Camera struct {
	X, Y  float64 // Position in world units
	Angle float64 // Facing in radians, 0 = +X (east), Pi/2 = +Y
	FOV   float64 // Horizontal field of view in radians
}

// NewCamera creates a camera with a normalized facing angle.
func NewCamera(x, y, angle, fov float64) Camera {
	return Camera{X: x, Y: y, Angle: mathutil.NormalizeAngle(angle), FOV: fov}
}

// GetForwardX returns the X component of the forward direction vector
func (c *Camera) GetForwardX() float64 {
	return math.Cos(c.Angle)
}

// GetForwardY returns the Y component of the forward direction vector
func (c *Camera) GetForwardY() float64 {
	return math.Sin(c.Angle)
}

// GetRightX returns the X component of the right direction vector
func (c *Camera) GetRightX() float64 {
	return math.Cos(c.Angle + math.Pi/2)
}

// GetRightY returns the Y component of the right direction vector
func (c *Camera) GetRightY() float64 {
	return math.Sin(c.Angle + math.Pi/2)
}

// GetPosition returns the camera's current position
func (c *Camera) GetPosition() (float64, float64) {
	return c.X, c.Y
}

// SetPosition sets the camera's position
func (c *Camera) SetPosition(x, y float64) {
	c.X = x
	c.Y = y
}

// Rotate turns the camera and keeps the angle inside (-Pi, Pi].
func (c *Camera) Rotate(angle float64) {
	c.Angle = mathutil.NormalizeAngle(c.Angle + angle)
}

// RayOffset returns the angle offset from the facing direction for screen
// column i of n, spanning [-FOV/2, FOV/2).
func (c *Camera) RayOffset(i, n int) float64 {
	if n <= 0 {
		return 0
	}
	return -c.FOV/2 + c.FOV*float64(i)/float64(n)
}
