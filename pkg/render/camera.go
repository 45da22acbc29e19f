package render

import (
	"math"

	"github.com/taigrr/patchwork/pkg/math3d"
)

// Default projection of every demo: a 45° vertical field of view with
// clip planes at 0.1 and 100.
const (
	DefaultFOV  = 45 * math.Pi / 180
	DefaultNear = 0.1
	DefaultFar  = 100
)

// MaxPitch is the largest pitch Rotate allows, just short of straight up.
var MaxPitch = math3d.Radians(89)

// Camera is a perspective camera oriented by Euler angles.
type Camera struct {
	Position math3d.Vec3

	// Orientation in radians. Yaw 0 with pitch 0 looks down -Z.
	Pitch float64
	Yaw   float64

	FOV         float64 // vertical, radians
	AspectRatio float64 // width / height
	Near        float64
	Far         float64

	viewMatrix     math3d.Mat4
	projMatrix     math3d.Mat4
	viewProjMatrix math3d.Mat4
	viewDirty      bool
	projDirty      bool
	viewProjDirty  bool
}

// NewCamera creates a camera at (0, 0, 5) looking down -Z.
func NewCamera() *Camera {
	return &Camera{
		Position:      math3d.V3(0, 0, 5),
		FOV:           DefaultFOV,
		AspectRatio:   4.0 / 3.0,
		Near:          DefaultNear,
		Far:           DefaultFar,
		viewDirty:     true,
		projDirty:     true,
		viewProjDirty: true,
	}
}

func (c *Camera) invalidate(view, proj bool) {
	c.viewDirty = c.viewDirty || view
	c.projDirty = c.projDirty || proj
	c.viewProjDirty = true
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.invalidate(true, false)
}

// SetRotation sets pitch and yaw in radians.
func (c *Camera) SetRotation(pitch, yaw float64) {
	c.Pitch = pitch
	c.Yaw = yaw
	c.invalidate(true, false)
}

// SetFOV sets the vertical field of view in radians.
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.invalidate(false, true)
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.invalidate(false, true)
}

// SetViewport derives the aspect ratio from a viewport size. A zero height
// leaves the ratio unchanged.
func (c *Camera) SetViewport(width, height int) {
	if height <= 0 {
		return
	}
	c.SetAspectRatio(float64(width) / float64(height))
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.invalidate(false, true)
}

// Forward returns the unit view direction.
func (c *Camera) Forward() math3d.Vec3 {
	return math3d.V3(
		-math.Sin(c.Yaw)*math.Cos(c.Pitch),
		math.Sin(c.Pitch),
		-math.Cos(c.Yaw)*math.Cos(c.Pitch),
	)
}

// Right returns the horizontal right vector.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.V3(math.Cos(c.Yaw), 0, -math.Sin(c.Yaw))
}

// Up returns the camera up vector.
func (c *Camera) Up() math3d.Vec3 {
	return c.Right().Cross(c.Forward())
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.viewMatrix = math3d.RotateX(-c.Pitch).
			Mul(math3d.RotateY(-c.Yaw)).
			Mul(math3d.Translate(c.Position.Negate()))
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns projection * view.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	if c.viewProjDirty {
		c.viewProjMatrix = c.ProjectionMatrix().Mul(c.ViewMatrix())
		c.viewProjDirty = false
	}
	return c.viewProjMatrix
}

// MoveForward moves the camera along its view direction.
func (c *Camera) MoveForward(distance float64) {
	c.SetPosition(c.Position.Add(c.Forward().Scale(distance)))
}

// MoveRight strafes the camera along its right vector.
func (c *Camera) MoveRight(distance float64) {
	c.SetPosition(c.Position.Add(c.Right().Scale(distance)))
}

// Rotate adds to pitch and yaw (radians), clamping pitch to ±MaxPitch.
func (c *Camera) Rotate(deltaPitch, deltaYaw float64) {
	c.Pitch = math.Max(-MaxPitch, math.Min(MaxPitch, c.Pitch+deltaPitch))
	c.Yaw += deltaYaw
	c.invalidate(true, false)
}

// LookAt turns the camera toward target, keeping world up.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalize()
	c.Pitch = math.Asin(math.Max(-1, math.Min(1, dir.Y)))
	c.Yaw = math.Atan2(-dir.X, -dir.Z)
	c.invalidate(true, false)
}

// WorldToScreen projects a world point to screen coordinates with y = 0 at
// the top. visible is false when the point is outside the view volume.
func (c *Camera) WorldToScreen(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	clip := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(worldPos, 1))
	if clip.W <= 0 {
		return 0, 0, 0, false
	}

	ndc := clip.PerspectiveDivide()
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}

	x = (ndc.X + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float64(screenHeight)
	return x, y, ndc.Z, true
}

// Frustum returns the current view frustum.
func (c *Camera) Frustum() Frustum {
	return NewFrustumFromMatrix(c.ViewProjectionMatrix())
}
