package wall

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/inamate/wallplan/internal/geom"
)

// Extend casts this wall's axis onto the vertical plane through other and
// returns the meeting point. With atEnd the ray starts at Start and runs
// along Direction (the end is being joined); otherwise it starts at End
// and runs backwards. The point is computed in the planar frame and mapped
// back to scene coordinates. A ray parallel to the plane, or a plane behind
// the ray, yields false and leaves both walls untouched; on success both
// walls are rebuilt.
func (w *Wall) Extend(other *Wall, atEnd bool) (mgl64.Vec3, bool) {
	normal := other.Direction().Cross(geom.Vertical)
	plane := geom.PlaneFromNormalAndPoint(
		geom.ToPlanarMath(normal),
		geom.ToPlanarMath(other.start),
	)

	origin, dir := w.end, w.Direction().Mul(-1)
	if atEnd {
		origin, dir = w.start, w.Direction()
	}
	ray := geom.NewRay(geom.ToPlanarMath(origin), geom.ToPlanarMath(dir))

	hit, ok := ray.IntersectPlane(plane)
	if !ok {
		return mgl64.Vec3{}, false
	}

	other.Rebuild()
	w.Rebuild()

	return geom.FromPlanarMath(hit), true
}

// Join describes how two walls meet at a corner point.
type Join struct {
	Point mgl64.Vec3
	// Angle is the other wall's rotation minus this wall's, in radians.
	Angle float64

	// Distance1 is from this wall's midpoint to Point; Distance2 is the
	// same for the other wall.
	Distance1 float64
	Distance2 float64

	// Sign1 and Sign2 say which half-space of each wall's box faces the
	// joint; Sign3 is +1 when joining at the end point.
	Sign1 int
	Sign2 int
	Sign3 int
}

// JoinSigns compares each wall's start-to-midpoint distance with its
// start-to-point distance and derives the half-space signs of the joint.
func (w *Wall) JoinSigns(other *Wall, atEnd bool, point mgl64.Vec3) Join {
	mid, otherMid := w.MidPoint(), other.MidPoint()

	j := Join{
		Point:     point,
		Angle:     other.mesh.Rotation[2] - w.mesh.Rotation[2],
		Distance1: mid.Sub(point).Len(),
		Distance2: otherMid.Sub(point).Len(),
		Sign1:     1,
		Sign2:     1,
		Sign3:     -1,
	}
	if atEnd {
		j.Sign3 = 1
	}

	ownMid := w.start.Sub(mid).Len()
	ownPoint := w.start.Sub(point).Len()
	otherOwnMid := other.start.Sub(otherMid).Len()
	otherPoint := other.start.Sub(point).Len()

	switch {
	case ownMid <= ownPoint && otherOwnMid <= otherPoint:
		j.Sign1, j.Sign2 = j.Sign3, j.Sign3
	case ownMid >= ownPoint && otherOwnMid >= otherPoint:
		j.Sign1, j.Sign2 = -1, -1
	case ownMid >= ownPoint && otherOwnMid <= otherPoint:
		j.Sign1, j.Sign2 = 1, -1
	case ownMid < ownPoint && otherOwnMid > otherPoint:
		j.Sign1, j.Sign2 = -1, 1
	}

	return j
}
