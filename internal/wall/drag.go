package wall

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/inamate/wallplan/internal/geom"
)

// dragPlane is the plan plane z = 0 dragged endpoints are projected onto.
var dragPlane = geom.Plane{Normal: geom.Vertical}

// Hit is a ray intersection with a wall mesh.
type Hit struct {
	Point    mgl64.Vec3
	Distance float64
}

// HitTest intersects a world-space ray with the wall mesh.
func (w *Wall) HitTest(r geom.Ray) (Hit, bool) {
	local := r.Transform(w.mesh.Matrix().Inv())
	prism := geom.Prism{Outline: w.mesh.Section(), Depth: w.mesh.Size[2]}

	t, ok := prism.IntersectRay(local)
	if !ok {
		return Hit{}, false
	}
	return Hit{Point: r.At(t), Distance: t}, true
}

// OnPointerDown starts a drag session if the ray hits the wall.
func (w *Wall) OnPointerDown(r geom.Ray) bool {
	hit, ok := w.HitTest(r)
	if !ok {
		return false
	}
	w.BeginDrag(hit.Point)
	return true
}

// BeginDrag starts a drag session anchored at the given point.
func (w *Wall) BeginDrag(at mgl64.Vec3) {
	w.dragging = true
	w.dragStart = at
}

// Dragging reports whether a drag session is active.
func (w *Wall) Dragging() bool { return w.dragging }

// DragStart returns the point the active drag session started at.
func (w *Wall) DragStart() (mgl64.Vec3, bool) {
	return w.dragStart, w.dragging
}

// OnPointerMove moves the end point to where the ray meets the plan plane
// while a drag session is active, then rebuilds the wall and its corners.
// It reports whether the wall changed.
func (w *Wall) OnPointerMove(r geom.Ray) bool {
	if !w.dragging {
		return false
	}

	dragEnd, ok := r.IntersectPlane(dragPlane)
	if !ok {
		return false
	}

	offset := dragEnd.Sub(w.start)
	length := offset.Len()
	if length < geom.Epsilon {
		return false
	}

	w.end = w.start.Add(geom.Normalize(offset).Mul(length))
	w.dirty = true
	w.RebuildWithCorners()
	return true
}

// OnPointerUp ends the drag session.
func (w *Wall) OnPointerUp() {
	w.dragging = false
	w.dragStart = mgl64.Vec3{}
}
