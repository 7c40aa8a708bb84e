// Package scene holds the wall model: the ordered set of walls, the
// render graph mirroring them and the routing of pointer input to the
// wall being dragged.
package scene

import (
	"log/slog"
	"slices"

	"github.com/inamate/wallplan/internal/geom"
	"github.com/inamate/wallplan/internal/wall"
)

// Model owns the walls and the render graph. It is the only code that
// mutates the graph. Not safe for concurrent use.
type Model struct {
	alloc    geom.Allocator
	elements []*wall.Wall
	byID     map[string]*wall.Wall
	graph    *Graph

	// Active drag target, set by PointerDown and cleared by PointerUp.
	target *wall.Wall

	frame uint64
}

// Compile-time interface check.
var _ wall.Resolver = (*Model)(nil)

// NewModel creates an empty model whose walls allocate geometry from alloc.
func NewModel(alloc geom.Allocator) *Model {
	if alloc == nil {
		alloc = geom.NewHeapAllocator()
	}
	return &Model{
		alloc: alloc,
		byID:  make(map[string]*wall.Wall),
		graph: NewGraph(),
	}
}

// NewWall creates a wall on the model's allocator without adding it.
func (m *Model) NewWall() *wall.Wall {
	return wall.New(m.alloc)
}

// AddElement appends a wall and inserts its mesh into the render graph.
func (m *Model) AddElement(w *wall.Wall) {
	m.elements = append(m.elements, w)
	m.byID[w.ID] = w
	w.Attach(m)

	m.graph.insert(&Node{
		ID:      w.ID,
		Type:    "wall",
		Visible: true,
		Color:   w.Color,
		Mesh:    w.Mesh(),
		Bounds:  w.Footprint().Bounds(),
	})
}

// RemoveElement drops a wall, releases its geometry and removes its node.
// Corners on other walls that point at it stop resolving and their cuts
// are cleared.
func (m *Model) RemoveElement(id string) bool {
	w, ok := m.byID[id]
	if !ok {
		return false
	}

	if m.target == w {
		w.OnPointerUp()
		m.target = nil
	}

	delete(m.byID, id)
	m.elements = slices.DeleteFunc(m.elements, func(e *wall.Wall) bool { return e == w })
	m.graph.remove(id)
	w.Attach(nil)
	w.Dispose()

	for _, other := range m.elements {
		other.ClearJoint(id)
	}
	return true
}

// Wall looks a wall up by ID.
func (m *Model) Wall(id string) (*wall.Wall, bool) {
	w, ok := m.byID[id]
	return w, ok
}

// Elements returns the walls in insertion order.
func (m *Model) Elements() []*wall.Wall {
	return slices.Clone(m.elements)
}

// Graph returns the render graph.
func (m *Model) Graph() *Graph { return m.graph }

// Frame returns the number of Update calls so far.
func (m *Model) Frame() uint64 { return m.frame }

// Update runs once per frame: every dirty wall is rebuilt and the graph
// nodes are refreshed. It returns the number of walls rebuilt.
func (m *Model) Update() int {
	m.frame++

	rebuilt := make(map[string]bool)
	for _, w := range m.elements {
		if w.Update() {
			rebuilt[w.ID] = true
		}
	}
	m.refreshCorners(rebuilt)

	for _, w := range m.elements {
		n, ok := m.graph.Get(w.ID)
		if !ok {
			continue
		}
		n.Mesh = w.Mesh()
		n.Color = w.Color
		n.Bounds = w.Footprint().Bounds()
	}
	m.graph.Dirty = false

	return len(rebuilt)
}

// refreshCorners recomputes the joints of every wall that was rebuilt or
// that references a rebuilt wall, so a moved peer never keeps stale cuts.
func (m *Model) refreshCorners(rebuilt map[string]bool) {
	if len(rebuilt) == 0 {
		return
	}
	for _, w := range m.elements {
		if len(w.Corners()) == 0 {
			continue
		}
		stale := rebuilt[w.ID]
		for id := range rebuilt {
			if stale {
				break
			}
			stale = w.References(id)
		}
		if stale {
			w.UpdateAllCorners()
		}
	}
}

// HitTest returns the wall nearest along the ray and the hit.
func (m *Model) HitTest(r geom.Ray) (*wall.Wall, wall.Hit, bool) {
	var (
		best    *wall.Wall
		bestHit wall.Hit
	)
	for _, w := range m.elements {
		hit, ok := w.HitTest(r)
		if !ok {
			continue
		}
		if best == nil || hit.Distance < bestHit.Distance {
			best, bestHit = w, hit
		}
	}
	return best, bestHit, best != nil
}

// PointerDown makes the nearest wall under the ray the drag target and
// starts its drag session. Only one wall is ever dragged.
func (m *Model) PointerDown(r geom.Ray) bool {
	if m.target != nil {
		m.target.OnPointerUp()
		m.target = nil
	}

	w, hit, ok := m.HitTest(r)
	if !ok {
		return false
	}

	m.target = w
	w.BeginDrag(hit.Point)
	slog.Debug("drag started", "wall", w.ID, "at", hit.Point)
	return true
}

// PointerMove forwards the ray to the drag target. Walls holding a corner
// on the target have their joints recomputed as well.
func (m *Model) PointerMove(r geom.Ray) bool {
	if m.target == nil {
		return false
	}
	if !m.target.OnPointerMove(r) {
		return false
	}

	for _, w := range m.elements {
		if w != m.target && w.References(m.target.ID) {
			w.UpdateAllCorners()
		}
	}
	return true
}

// PointerUp ends the drag session of the target, if any.
func (m *Model) PointerUp() {
	if m.target == nil {
		return
	}
	slog.Debug("drag ended", "wall", m.target.ID)
	m.target.OnPointerUp()
	m.target = nil
}

// Target returns the wall being dragged, or nil.
func (m *Model) Target() *wall.Wall { return m.target }

// Snapshot returns the draw commands of the current graph as JSON.
func (m *Model) Snapshot() string {
	result, err := DrawCommandsToJSON(CompileDrawCommands(m.graph))
	if err != nil {
		slog.Debug("encode snapshot", "frame", m.frame, "error", err)
	}
	return result
}

// Bounds returns the plan extent of the visible walls as of the last Update.
func (m *Model) Bounds() geom.Rect { return m.graph.Bounds() }
