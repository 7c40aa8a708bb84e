package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Plane is the set of points p with Normal·p + Constant = 0.
type Plane struct {
	Normal   mgl64.Vec3
	Constant float64
}

// PlaneFromNormalAndPoint builds the plane through point with the given
// normal. The normal is normalized; a zero normal yields a plane no ray
// can intersect.
func PlaneFromNormalAndPoint(normal, point mgl64.Vec3) Plane {
	n := Normalize(normal)
	return Plane{Normal: n, Constant: -point.Dot(n)}
}

// DistanceToPoint returns the signed distance from the plane to p.
func (p Plane) DistanceToPoint(v mgl64.Vec3) float64 {
	return p.Normal.Dot(v) + p.Constant
}

// Ray is a half-line starting at Origin.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// NewRay returns a ray with a normalized direction.
func NewRay(origin, direction mgl64.Vec3) Ray {
	return Ray{Origin: origin, Direction: Normalize(direction)}
}

// At returns the point at parameter t.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// DistanceToPlane returns the ray parameter at which it meets the plane.
// A ray parallel to the plane meets it only when the origin lies in it.
// Intersections behind the origin are not reported.
func (r Ray) DistanceToPlane(p Plane) (float64, bool) {
	if p.Normal.Len() < Epsilon {
		return 0, false
	}
	denom := p.Normal.Dot(r.Direction)
	if math.Abs(denom) < Epsilon {
		if math.Abs(p.DistanceToPoint(r.Origin)) < Epsilon {
			return 0, true
		}
		return 0, false
	}

	t := -(r.Origin.Dot(p.Normal) + p.Constant) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectPlane returns the point where the ray meets the plane.
func (r Ray) IntersectPlane(p Plane) (mgl64.Vec3, bool) {
	t, ok := r.DistanceToPlane(p)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return r.At(t), true
}

// Transform maps the ray through a rigid transform. Directions ignore the
// translation part, so parameters are preserved.
func (r Ray) Transform(m mgl64.Mat4) Ray {
	return Ray{
		Origin:    m.Mul4x1(r.Origin.Vec4(1)).Vec3(),
		Direction: m.Mul4x1(r.Direction.Vec4(0)).Vec3(),
	}
}
