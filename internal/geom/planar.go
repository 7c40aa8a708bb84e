// Package geom holds the vector math shared by walls, the camera and the
// scene: rays and planes, plan-space transforms, convex outlines and the
// geometry resources handed to the renderer.
//
// Scene coordinates keep the floor plan in x/y with z pointing at the
// viewer. Extension math runs in a planar frame where the plan is x/z;
// ToPlanarMath and FromPlanarMath are the only place that swap happens.
package geom

import "github.com/go-gl/mathgl/mgl64"

// Epsilon is the tolerance used for parallel and coincidence tests.
const Epsilon = 1e-9

// Vertical is the plan-normal axis in scene coordinates.
var Vertical = mgl64.Vec3{0, 0, 1}

// ToPlanarMath maps a scene vector (x, y, z) to the planar frame (x, z, -y).
func ToPlanarMath(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[2], -v[1]}
}

// FromPlanarMath maps a planar-frame vector (x, y, z) back to scene
// coordinates (x, -z, y). It is the exact inverse of ToPlanarMath.
func FromPlanarMath(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], -v[2], v[1]}
}

// Normalize returns v scaled to unit length, or the zero vector when v has
// no length. mgl64's Normalize divides by zero in that case.
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < Epsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// Plan drops z.
func Plan(v mgl64.Vec3) mgl64.Vec2 {
	return mgl64.Vec2{v[0], v[1]}
}

// Cross2 is the z component of the cross product of two plan vectors.
func Cross2(a, b mgl64.Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// Perp rotates a plan vector a quarter turn counter-clockwise.
func Perp(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v[1], v[0]}
}

// Unit2 returns v scaled to unit length, or zero when v has no length.
func Unit2(v mgl64.Vec2) mgl64.Vec2 {
	l := v.Len()
	if l < Epsilon {
		return mgl64.Vec2{}
	}
	return v.Mul(1 / l)
}
