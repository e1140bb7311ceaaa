// Package camera provides the viewer's orbit camera.
package camera

import (
	gomath "math"

	"github.com/Faultbox/stilllife/pkg/math"
)

// Placement is an initial camera setup. Angles are in degrees.
type Placement struct {
	Target   math.Vec3
	Distance float32
	Pitch    float32
	Yaw      float32
	FOV      float32
	Near     float32
	Far      float32
}

// OrbitCamera orbits around a target point.
type OrbitCamera struct {
	Target math.Vec3

	// Spherical coordinates
	Distance float32 // Distance from target
	Pitch    float32 // Vertical angle, radians
	Yaw      float32 // Horizontal angle, radians; 0 looks down -Z

	// Projection
	FOV  float32 // Vertical field of view, radians
	Near float32
	Far  float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera at p.
func NewOrbitCamera(p Placement) *OrbitCamera {
	c := &OrbitCamera{
		Target:          p.Target,
		Distance:        p.Distance,
		Pitch:           math.Radians(p.Pitch),
		Yaw:             math.Radians(p.Yaw),
		FOV:             math.Radians(p.FOV),
		Near:            p.Near,
		Far:             p.Far,
		MinDistance:     1.0,
		MaxDistance:     80.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
	c.clamp()
	return c
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.Pitch))*gomath.Sin(float64(c.Yaw)))
	y := c.Distance * float32(gomath.Sin(float64(c.Pitch)))
	z := c.Distance * float32(gomath.Cos(float64(c.Pitch))*gomath.Cos(float64(c.Yaw)))
	return c.Target.Add(math.V3(x, y, z))
}

// Forward returns the unit view direction, from the camera to the target.
func (c *OrbitCamera) Forward() math.Vec3 {
	return c.Target.Sub(c.Position()).Normalize()
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, math.V3(0, 1, 0))
}

// ProjectionMatrix returns the perspective projection for a viewport aspect
// ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity
	c.clamp()
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.clamp()
}

// HandleMovement pans the target on the ground plane relative to the
// current yaw.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.01

	dirX := float32(gomath.Sin(float64(c.Yaw)))
	dirZ := float32(gomath.Cos(float64(c.Yaw)))

	// Negate forward so W moves into the scene
	c.Target.X += (-dirX*forward + dirZ*right) * speed
	c.Target.Z += (-dirZ*forward - dirX*right) * speed
	c.Target.Y += up * speed
}

func (c *OrbitCamera) clamp() {
	c.Pitch = min(max(c.Pitch, c.MinPitch), c.MaxPitch)
	c.Distance = min(max(c.Distance, c.MinDistance), c.MaxDistance)
}
