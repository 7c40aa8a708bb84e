package wall

import (
	"log/slog"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/inamate/wallplan/internal/geom"
	"github.com/inamate/wallplan/internal/typeid"
)

// jointTolerance is how close a wall endpoint must be to a joint point to
// count as meeting there (L joint) rather than abutting mid-wall (T joint).
const jointTolerance = 1e-6

// Resolver looks walls up by ID. Corners keep IDs, never pointers, so a
// wall removed from its container simply stops resolving.
type Resolver interface {
	Wall(id string) (*Wall, bool)
}

// Corner records that this wall's end (AtEnd) or start point is joined to
// another wall.
type Corner struct {
	ID       string
	WallID   string
	AtEnd    bool
	LastJoin *Join
}

// trim is a half-plane cut in world plan coordinates. The wall's section
// is first extended from the joined endpoint to the joint point and then
// by margin, so the cut can reach the far corner of a miter.
type trim struct {
	joint  mgl64.Vec2
	point  mgl64.Vec2
	normal mgl64.Vec2
	margin float64
	atEnd  bool
}

// Attach sets the resolver corners are looked up through.
func (w *Wall) Attach(r Resolver) { w.resolver = r }

// AddCorner joins this wall's end (atEnd) or start point to the wall with
// the given ID and returns the corner ID. Joints are computed by
// UpdateAllCorners.
func (w *Wall) AddCorner(wallID string, atEnd bool) string {
	id := typeid.NewCornerID()
	w.corners = append(w.corners, Corner{ID: id, WallID: wallID, AtEnd: atEnd})
	return id
}

// RemoveCorner drops a corner and the cuts it applied to both walls.
func (w *Wall) RemoveCorner(id string) bool {
	i := slices.IndexFunc(w.corners, func(c Corner) bool { return c.ID == id })
	if i < 0 {
		return false
	}
	c := w.corners[i]
	w.corners = slices.Delete(w.corners, i, i+1)

	w.ClearJoint(c.WallID)
	if other, ok := w.resolve(c.WallID); ok {
		other.ClearJoint(w.ID)
	}
	return true
}

// Corners returns a copy of the corner list in insertion order.
func (w *Wall) Corners() []Corner {
	return slices.Clone(w.corners)
}

// References reports whether any corner of w points at wallID.
func (w *Wall) References(wallID string) bool {
	return slices.ContainsFunc(w.corners, func(c Corner) bool { return c.WallID == wallID })
}

// ClearJoint removes the cut applied for the joint with otherID.
func (w *Wall) ClearJoint(otherID string) {
	if _, ok := w.trims[otherID]; ok {
		delete(w.trims, otherID)
		w.dirty = true
	}
}

// Trimmed reports whether any joint cut currently shapes the mesh.
func (w *Wall) Trimmed() bool { return len(w.trims) > 0 }

func (w *Wall) resolve(id string) (*Wall, bool) {
	if w.resolver == nil || id == w.ID {
		return nil, false
	}
	return w.resolver.Wall(id)
}

func (w *Wall) setTrim(otherID string, t trim) {
	w.trims[otherID] = t
	w.dirty = true
}

// UpdateAllCorners recomputes every joint this wall owns, in insertion
// order. Endpoints are never moved; the cuts close the joint. Corners
// whose wall no longer resolves are skipped. The first corner without an
// intersection drops its cuts and stops the pass.
func (w *Wall) UpdateAllCorners() {
	for i := range w.corners {
		c := &w.corners[i]

		other, ok := w.resolve(c.WallID)
		if !ok {
			w.ClearJoint(c.WallID)
			continue
		}

		point, ok := w.Extend(other, c.AtEnd)
		if !ok {
			slog.Debug("corner has no intersection", "wall", w.ID, "corner", c.ID, "other", other.ID)
			c.LastJoin = nil
			w.ClearJoint(other.ID)
			other.ClearJoint(w.ID)
			other.Update()
			break
		}

		join := w.JoinSigns(other, c.AtEnd, point)
		c.LastJoin = &join

		// A ray running inside the other wall's plane meets it at its own
		// origin; cutting there would collapse the wall.
		free := w.start
		if !c.AtEnd {
			free = w.end
		}
		if point.Sub(free).Len() <= jointTolerance {
			w.ClearJoint(other.ID)
			other.ClearJoint(w.ID)
			other.Update()
			continue
		}

		w.applyJoint(other, c.AtEnd, point)
		other.Rebuild()
	}
	w.Rebuild()
}

// applyJoint cuts both walls at the joint point. When the other wall ends
// at the point the cut runs through the meeting points of the two inner
// faces and the two outer faces (a miter for equal heights). When the
// point is mid-wall only this wall is cut, back to the other wall's near
// face. Parallel walls are left alone.
func (w *Wall) applyJoint(other *Wall, atEnd bool, point mgl64.Vec3) {
	p := geom.Plan(point)

	free := w.end
	if atEnd {
		free = w.start
	}
	arm1 := geom.Unit2(geom.Plan(free).Sub(p))

	nearIsEnd := other.end.Sub(point).Len() <= other.start.Sub(point).Len()
	near, far := other.start, other.end
	if nearIsEnd {
		near, far = other.end, other.start
	}
	arm2 := geom.Unit2(geom.Plan(far).Sub(p))
	meets := near.Sub(point).Len() <= jointTolerance

	if arm1 == (mgl64.Vec2{}) || arm2 == (mgl64.Vec2{}) {
		w.ClearJoint(other.ID)
		other.ClearJoint(w.ID)
		return
	}

	h1, h2 := w.height/2, other.height/2
	cross, dot := geom.Cross2(arm1, arm2), arm1.Dot(arm2)

	switch {
	case math.Abs(cross) < geom.Epsilon:
		w.ClearJoint(other.ID)
		other.ClearJoint(w.ID)

	case meets:
		n1 := sideToward(arm1, arm2)
		n2 := sideToward(arm2, arm1)
		inner := lineIntersection(p.Add(n1.Mul(h1)), arm1, p.Add(n2.Mul(h2)), arm2)
		outer := lineIntersection(p.Sub(n1.Mul(h1)), arm1, p.Sub(n2.Mul(h2)), arm2)

		cut := geom.Unit2(outer.Sub(inner))
		if cut == (mgl64.Vec2{}) {
			cut = geom.Unit2(arm1.Add(arm2))
		}
		normal := geom.Perp(cut)
		if normal.Dot(arm1) < 0 {
			normal = normal.Mul(-1)
		}
		margin := math.Max(outer.Sub(p).Len(), inner.Sub(p).Len())

		w.setTrim(other.ID, trim{joint: p, point: inner, normal: normal, margin: margin, atEnd: atEnd})
		other.setTrim(w.ID, trim{joint: p, point: inner, normal: normal.Mul(-1), margin: margin, atEnd: nearIsEnd})

	default:
		normal := geom.Unit2(geom.Perp(geom.Plan(other.Direction())))
		if normal.Dot(arm1) < 0 {
			normal = normal.Mul(-1)
		}
		margin := h2*2 + h1*math.Abs(dot)/math.Abs(cross)

		w.setTrim(other.ID, trim{joint: p, point: p.Add(normal.Mul(h2)), normal: normal, margin: margin, atEnd: atEnd})
		other.ClearJoint(w.ID)
	}
}

// trimmedOutline applies the joint cuts to the wall's section and returns
// it in wall-local coordinates, or nil when the wall is a plain box.
func (w *Wall) trimmedOutline() geom.Outline {
	if len(w.trims) == 0 {
		return nil
	}

	s, e := geom.Plan(w.start), geom.Plan(w.end)
	u := geom.Unit2(e.Sub(s))
	if u == (mgl64.Vec2{}) {
		return nil
	}

	// Map order is random; cuts are applied in key order so rebuilds are
	// reproducible.
	keys := make([]string, 0, len(w.trims))
	var extStart, extEnd float64
	for k, t := range w.trims {
		keys = append(keys, k)
		if t.atEnd {
			extEnd = math.Max(extEnd, e.Sub(t.joint).Len()+t.margin)
		} else {
			extStart = math.Max(extStart, s.Sub(t.joint).Len()+t.margin)
		}
	}
	slices.Sort(keys)

	s = s.Sub(u.Mul(extStart))
	e = e.Add(u.Mul(extEnd))
	v := geom.Perp(u).Mul(w.height / 2)
	section := geom.Outline{s.Sub(v), e.Sub(v), e.Add(v), s.Add(v)}

	for _, k := range keys {
		t := w.trims[k]
		section = section.ClipHalfPlane(t.point, t.normal)
		if section == nil {
			return nil
		}
	}

	return w.pose().Invert().ApplyOutline(section)
}

// sideToward returns the unit normal of arm pointing to the side target
// lies on.
func sideToward(arm, target mgl64.Vec2) mgl64.Vec2 {
	n := geom.Perp(arm)
	if n.Dot(target) < 0 {
		n = n.Mul(-1)
	}
	return n
}

// lineIntersection intersects p1 + t*d1 with p2 + s*d2. The lines must not
// be parallel.
func lineIntersection(p1, d1, p2, d2 mgl64.Vec2) mgl64.Vec2 {
	t := geom.Cross2(p2.Sub(p1), d2) / geom.Cross2(d1, d2)
	return p1.Add(d1.Mul(t))
}
