// Package player turns per-frame input into camera motion with collision.
package player

import (
	"raycastmaze/internal/collision"
	"raycastmaze/internal/config"
	"raycastmaze/internal/world"
)

// Input is the control state sampled for one frame.
type Input struct {
	Forward, Backward       bool
	TurnLeft, TurnRight     bool
	StrafeLeft, StrafeRight bool
	MouseDX                 float64 // Horizontal cursor movement in pixels
}

// Controller moves a camera through a grid. The frame loop owns the camera;
// the controller only mutates it inside Update.
type Controller struct {
	Camera           *world.Camera
	MoveSpeed        float64
	RotationSpeed    float64
	MouseSensitivity float64
	Radius           float64

	collisionSystem *collision.CollisionSystem
}

// NewController creates a controller using the movement settings of cfg.
func NewController(cam *world.Camera, grid *world.Grid, cfg *config.Config) *Controller {
	return &Controller{
		Camera:           cam,
		MoveSpeed:        cfg.GetMoveSpeed(),
		RotationSpeed:    cfg.GetRotSpeed(),
		MouseSensitivity: cfg.Movement.MouseSensitivity,
		Radius:           cfg.Movement.CollisionRadius,
		collisionSystem:  collision.NewCollisionSystem(grid, grid.BlockSize()),
	}
}

// SetGrid switches the grid movement is checked against.
func (c *Controller) SetGrid(grid *world.Grid) {
	c.collisionSystem = collision.NewCollisionSystem(grid, grid.BlockSize())
}

// Update applies one frame of input. Rotation happens before translation, so
// movement follows the new facing. It reports whether the camera position
// changed.
func (c *Controller) Update(in Input) bool {
	turn := in.MouseDX * c.MouseSensitivity
	if in.TurnLeft {
		turn -= c.RotationSpeed
	}
	if in.TurnRight {
		turn += c.RotationSpeed
	}
	if turn != 0 {
		c.Camera.Rotate(turn)
	}

	var dx, dy float64
	if in.Forward {
		dx += c.Camera.GetForwardX() * c.MoveSpeed
		dy += c.Camera.GetForwardY() * c.MoveSpeed
	}
	if in.Backward {
		dx -= c.Camera.GetForwardX() * c.MoveSpeed
		dy -= c.Camera.GetForwardY() * c.MoveSpeed
	}
	if in.StrafeLeft {
		dx -= c.Camera.GetRightX() * c.MoveSpeed
		dy -= c.Camera.GetRightY() * c.MoveSpeed
	}
	if in.StrafeRight {
		dx += c.Camera.GetRightX() * c.MoveSpeed
		dy += c.Camera.GetRightY() * c.MoveSpeed
	}
	if dx == 0 && dy == 0 {
		return false
	}

	x, y := c.Camera.GetPosition()
	nx, ny := c.collisionSystem.Move(x, y, dx, dy, c.Radius)
	if nx == x && ny == y {
		return false
	}
	c.Camera.SetPosition(nx, ny)
	return true
}
