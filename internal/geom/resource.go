package geom

import "github.com/go-gl/mathgl/mgl64"

// Kind selects how a renderer builds a geometry buffer.
type Kind string

const (
	KindBox   Kind = "box"
	KindPrism Kind = "prism"
)

// Spec describes a geometry buffer in mesh-local coordinates.
// Box: Size is (length, height, width) centred on the origin.
// Prism: Outline in local x/y extruded by Size.Z centred on z=0.
type Spec struct {
	Kind    Kind
	Size    mgl64.Vec3
	Outline Outline
}

// Geometry is a renderer-side buffer. Dispose releases it; calling Dispose
// again is a no-op.
type Geometry interface {
	Spec() Spec
	Dispose()
}

// Allocator creates geometry buffers.
type Allocator interface {
	Allocate(spec Spec) Geometry
}

// HeapAllocator keeps geometry in process memory. It is used headless and
// in tests, and counts live buffers so leaks are visible.
type HeapAllocator struct {
	allocated int
	live      int
}

// NewHeapAllocator returns an empty allocator.
func NewHeapAllocator() *HeapAllocator {
	return &HeapAllocator{}
}

// Allocate returns a new in-memory buffer.
func (a *HeapAllocator) Allocate(spec Spec) Geometry {
	a.allocated++
	a.live++
	return &heapGeometry{owner: a, spec: spec}
}

// Allocated returns the number of buffers ever allocated.
func (a *HeapAllocator) Allocated() int { return a.allocated }

// Live returns the number of buffers not yet disposed.
func (a *HeapAllocator) Live() int { return a.live }

type heapGeometry struct {
	owner    *HeapAllocator
	spec     Spec
	disposed bool
}

func (g *heapGeometry) Spec() Spec { return g.spec }

func (g *heapGeometry) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.owner.live--
}
