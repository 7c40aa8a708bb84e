// Package wall implements a rigid wall segment: a box whose pose follows
// two endpoints, kept in sync with a renderer geometry buffer, joined to
// neighbouring walls at corners and reshaped by pointer drags.
package wall

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/inamate/wallplan/internal/geom"
	"github.com/inamate/wallplan/internal/typeid"
)

const (
	DefaultHeight = 1.0
	DefaultWidth  = 0.2
	DefaultColor  = "#00ff00"
)

// Mesh is the render-ready state of a wall. Size is (length, height, width)
// along the box's local axes; the box is rotated about z by Rotation.Z and
// centred on Position. Outline is set when corner trimming turned the box
// into a prism; it is in local x/y coordinates.
type Mesh struct {
	Size     mgl64.Vec3
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Outline  geom.Outline
	Geometry geom.Geometry
}

// Matrix returns the local-to-world transform.
func (m *Mesh) Matrix() mgl64.Mat4 {
	return mgl64.Translate3D(m.Position[0], m.Position[1], m.Position[2]).
		Mul4(mgl64.HomogRotate3DZ(m.Rotation[2]))
}

// Section returns the local x/y cross-section the mesh is extruded from.
func (m *Mesh) Section() geom.Outline {
	if m.Outline != nil {
		return m.Outline
	}
	return geom.RectOutline(m.Size[0], m.Size[1])
}

// Wall is one wall segment. It is not safe for concurrent use; all
// mutation happens on the render/event loop.
type Wall struct {
	ID    string
	Color string

	start  mgl64.Vec3
	end    mgl64.Vec3
	height float64
	width  float64

	mesh  Mesh
	alloc geom.Allocator
	dirty bool

	// Drag session
	dragging  bool
	dragStart mgl64.Vec3

	resolver Resolver
	corners  []Corner
	openings []Opening
	trims    map[string]trim // other wall ID -> joint cut
}

// New creates a wall from (0,0,0) to (1,0,0) with the default height and
// width and builds its mesh.
func New(alloc geom.Allocator) *Wall {
	if alloc == nil {
		alloc = geom.NewHeapAllocator()
	}
	w := &Wall{
		ID:     typeid.NewWallID(),
		Color:  DefaultColor,
		start:  mgl64.Vec3{0, 0, 0},
		end:    mgl64.Vec3{1, 0, 0},
		height: DefaultHeight,
		width:  DefaultWidth,
		alloc:  alloc,
		trims:  make(map[string]trim),
	}
	w.Rebuild()
	return w
}

// Start returns the start point.
func (w *Wall) Start() mgl64.Vec3 { return w.start }

// End returns the end point.
func (w *Wall) End() mgl64.Vec3 { return w.end }

// Height returns the box extent across the wall axis.
func (w *Wall) Height() float64 { return w.height }

// Width returns the box extent along z.
func (w *Wall) Width() float64 { return w.width }

// SetStart moves the start point. The mesh is rebuilt on the next Update.
func (w *Wall) SetStart(p mgl64.Vec3) {
	if p != w.start {
		w.start = p
		w.dirty = true
	}
}

// SetEnd moves the end point. The mesh is rebuilt on the next Update.
func (w *Wall) SetEnd(p mgl64.Vec3) {
	if p != w.end {
		w.end = p
		w.dirty = true
	}
}

// SetHeight changes the height. The mesh is rebuilt on the next Update.
func (w *Wall) SetHeight(h float64) {
	if h != w.height {
		w.height = h
		w.dirty = true
	}
}

// SetWidth changes the width. The mesh is rebuilt on the next Update.
func (w *Wall) SetWidth(width float64) {
	if width != w.width {
		w.width = width
		w.dirty = true
	}
}

// Length is the distance between the endpoints.
func (w *Wall) Length() float64 {
	return w.end.Sub(w.start).Len()
}

// MidPoint is the average of the endpoints.
func (w *Wall) MidPoint() mgl64.Vec3 {
	return w.start.Add(w.end).Mul(0.5)
}

// Direction is the unit vector from start to end, or zero for a wall of
// no length.
func (w *Wall) Direction() mgl64.Vec3 {
	return geom.Normalize(w.end.Sub(w.start))
}

// Dirty reports whether the mesh lags behind the wall's fields.
func (w *Wall) Dirty() bool { return w.dirty }

// Mesh returns the current mesh.
func (w *Wall) Mesh() *Mesh { return &w.mesh }

// Update rebuilds the mesh if a field changed since the last rebuild and
// reports whether it did.
func (w *Wall) Update() bool {
	if !w.dirty {
		return false
	}
	w.Rebuild()
	return true
}

// Rebuild recomputes the mesh from the current endpoints, height, width
// and joint trims. The previous geometry buffer is disposed before the new
// one is installed.
func (w *Wall) Rebuild() {
	length := w.Length()
	dir := w.end.Sub(w.start)

	w.mesh.Size = mgl64.Vec3{length, w.height, w.width}
	w.mesh.Position = w.MidPoint()
	w.mesh.Rotation = mgl64.Vec3{0, 0, math.Atan2(dir[1], dir[0])}
	w.mesh.Outline = w.trimmedOutline()

	spec := geom.Spec{Kind: geom.KindBox, Size: w.mesh.Size}
	if w.mesh.Outline != nil {
		spec.Kind = geom.KindPrism
		spec.Outline = w.mesh.Outline
	}

	if w.mesh.Geometry != nil {
		w.mesh.Geometry.Dispose()
	}
	w.mesh.Geometry = w.alloc.Allocate(spec)

	w.placeOpenings()
	w.dirty = false
}

// RebuildWithCorners rebuilds the mesh and then recomputes every corner
// this wall owns.
func (w *Wall) RebuildWithCorners() {
	w.Rebuild()
	w.UpdateAllCorners()
}

// Dispose releases the geometry buffer. The wall must not be rendered
// afterwards.
func (w *Wall) Dispose() {
	if w.mesh.Geometry != nil {
		w.mesh.Geometry.Dispose()
		w.mesh.Geometry = nil
	}
}

// pose maps wall-local plan coordinates to world plan coordinates.
func (w *Wall) pose() geom.Affine2D {
	return geom.FromPose(w.mesh.Position[0], w.mesh.Position[1], w.mesh.Rotation[2])
}

// Footprint returns the wall's section in world plan coordinates.
func (w *Wall) Footprint() geom.Outline {
	return w.pose().ApplyOutline(w.mesh.Section())
}
