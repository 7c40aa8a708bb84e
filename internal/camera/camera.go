// Package camera is a perspective camera that turns pointer positions into
// world-space picking rays.
package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/inamate/wallplan/internal/config"
	"github.com/inamate/wallplan/internal/geom"
)

// Camera looks from Position at Target. FovY is the vertical field of view
// in degrees.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	FovY   float64
	Aspect float64
	Near   float64
	Far    float64
}

// New creates a camera on the z axis at v.CameraZ looking at the origin.
func New(v config.Viewer) *Camera {
	return &Camera{
		Position: mgl64.Vec3{0, 0, v.CameraZ},
		Up:       mgl64.Vec3{0, 1, 0},
		FovY:     v.FOV,
		Aspect:   1,
		Near:     v.Near,
		Far:      v.Far,
	}
}

// SetAspect updates the aspect ratio from a viewport size. A degenerate
// size is ignored.
func (c *Camera) SetAspect(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = width / height
}

// ViewMatrix is the world-to-camera transform.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

// ProjectionMatrix is the perspective projection for the current aspect.
func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
}

// NDC maps client pixel coordinates to normalized device coordinates,
// x right and y up in [-1, 1].
func NDC(clientX, clientY, width, height float64) mgl64.Vec2 {
	if width <= 0 || height <= 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{
		clientX/width*2 - 1,
		-(clientY/height)*2 + 1,
	}
}

// Unproject maps an NDC point at depth z to world space.
func (c *Camera) Unproject(ndc mgl64.Vec2, z float64) mgl64.Vec3 {
	inv := c.ProjectionMatrix().Mul4(c.ViewMatrix()).Inv()
	p := inv.Mul4x1(mgl64.Vec4{ndc[0], ndc[1], z, 1})
	if p[3] == 0 {
		return p.Vec3()
	}
	return p.Vec3().Mul(1 / p[3])
}

// RayFromNDC returns the picking ray from the camera through ndc.
func (c *Camera) RayFromNDC(ndc mgl64.Vec2) geom.Ray {
	p := c.Unproject(ndc, 0.5)
	return geom.NewRay(c.Position, p.Sub(c.Position))
}

// RayFromClient is RayFromNDC for a pointer position on a viewport of the
// given size.
func (c *Camera) RayFromClient(clientX, clientY, width, height float64) geom.Ray {
	return c.RayFromNDC(NDC(clientX, clientY, width, height))
}
