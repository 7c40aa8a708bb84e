package scene

import (
	"slices"

	"github.com/inamate/wallplan/internal/geom"
	"github.com/inamate/wallplan/internal/wall"
)

// Graph is the retained render graph. It persists between frames; the
// model inserts and removes nodes and refreshes their derived state once
// per frame. Renderers only read it.
type Graph struct {
	Nodes     []*Node
	NodesById map[string]*Node
	Dirty     bool // structure changed since the last sync
}

// Node is a renderable wall.
type Node struct {
	ID      string
	Type    string // "wall"
	Visible bool
	Color   string

	// Mesh is owned by the wall; the node only points at it.
	Mesh *wall.Mesh

	// Hit testing and framing
	Bounds geom.Rect // axis-aligned plan bounds in world space
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		NodesById: make(map[string]*Node),
		Dirty:     true,
	}
}

func (g *Graph) insert(n *Node) {
	g.Nodes = append(g.Nodes, n)
	g.NodesById[n.ID] = n
	g.Dirty = true
}

func (g *Graph) remove(id string) bool {
	if _, ok := g.NodesById[id]; !ok {
		return false
	}
	delete(g.NodesById, id)
	g.Nodes = slices.DeleteFunc(g.Nodes, func(n *Node) bool { return n.ID == id })
	g.Dirty = true
	return true
}

// Bounds returns the plan extent of every visible node.
func (g *Graph) Bounds() geom.Rect {
	var r geom.Rect
	for _, n := range g.Nodes {
		if n.Visible {
			r = r.Union(n.Bounds)
		}
	}
	return r
}

// Get returns the node with the given ID.
func (g *Graph) Get(id string) (*Node, bool) {
	n, ok := g.NodesById[id]
	return n, ok
}
