//go:build js && wasm

package main

import (
	"log/slog"
	"syscall/js"

	"github.com/inamate/wallplan/internal/camera"
	"github.com/inamate/wallplan/internal/geom"
	"github.com/inamate/wallplan/internal/scene"
)

// threeGeometry is a three.js BufferGeometry handle.
type threeGeometry struct {
	spec     geom.Spec
	value    js.Value
	disposed bool
}

func (g *threeGeometry) Spec() geom.Spec { return g.spec }

func (g *threeGeometry) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.value.Call("dispose")
}

// threeAllocator builds box geometries for plain walls and extruded
// shapes for trimmed ones.
type threeAllocator struct {
	three js.Value
}

func newThreeAllocator(three js.Value) *threeAllocator {
	return &threeAllocator{three: three}
}

func (a *threeAllocator) Allocate(spec geom.Spec) geom.Geometry {
	size := spec.Size
	if spec.Kind != geom.KindPrism || len(spec.Outline) < 3 {
		return &threeGeometry{
			spec:  spec,
			value: a.three.Get("BoxGeometry").New(size[0], size[1], size[2]),
		}
	}

	shape := a.three.Get("Shape").New()
	shape.Call("moveTo", spec.Outline[0][0], spec.Outline[0][1])
	for _, p := range spec.Outline[1:] {
		shape.Call("lineTo", p[0], p[1])
	}
	shape.Call("closePath")

	opts := js.Global().Get("Object").New()
	opts.Set("depth", size[2])
	opts.Set("bevelEnabled", false)

	value := a.three.Get("ExtrudeGeometry").New(shape, opts)
	// Extrusion runs from z=0 to depth; centre it like the box.
	value.Call("translate", 0, 0, -size[2]/2)

	return &threeGeometry{spec: spec, value: value}
}

// threeSurface renders the graph with a WebGLRenderer appended to the
// mount element. It keeps one three.js mesh per graph node.
type threeSurface struct {
	window   js.Value
	three    js.Value
	mount    js.Value
	renderer js.Value
	scene    js.Value
	camera   js.Value

	meshes map[string]js.Value
}

func newThreeSurface(window, mount js.Value) *threeSurface {
	three := window.Get("THREE")
	s := &threeSurface{
		window:   window,
		three:    three,
		mount:    mount,
		renderer: three.Get("WebGLRenderer").New(),
		scene:    three.Get("Scene").New(),
		meshes:   make(map[string]js.Value),
	}

	w, h := s.Size()
	s.camera = three.Get("PerspectiveCamera").New(75, w/h, 0.1, 1000)
	s.renderer.Call("setSize", w, h)
	mount.Call("appendChild", s.renderer.Get("domElement"))
	return s
}

func (s *threeSurface) Size() (float64, float64) {
	return s.window.Get("innerWidth").Float(), s.window.Get("innerHeight").Float()
}

// Resize matches the renderer to the window.
func (s *threeSurface) Resize() {
	w, h := s.Size()
	s.renderer.Call("setSize", w, h)
}

func (s *threeSurface) Render(g *scene.Graph, c *camera.Camera) {
	s.syncCamera(c)

	seen := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		seen[n.ID] = true
		s.syncNode(n)
	}
	for id, mesh := range s.meshes {
		if !seen[id] {
			s.scene.Call("remove", mesh)
			mesh.Get("material").Call("dispose")
			delete(s.meshes, id)
		}
	}

	s.renderer.Call("render", s.scene, s.camera)
}

func (s *threeSurface) syncCamera(c *camera.Camera) {
	s.camera.Get("position").Call("set", c.Position[0], c.Position[1], c.Position[2])
	s.camera.Get("up").Call("set", c.Up[0], c.Up[1], c.Up[2])
	s.camera.Set("fov", c.FovY)
	s.camera.Set("aspect", c.Aspect)
	s.camera.Set("near", c.Near)
	s.camera.Set("far", c.Far)
	s.camera.Call("lookAt", c.Target[0], c.Target[1], c.Target[2])
	s.camera.Call("updateProjectionMatrix")
}

func (s *threeSurface) syncNode(n *scene.Node) {
	geo, ok := n.Mesh.Geometry.(*threeGeometry)
	if !ok {
		slog.Warn("node without three.js geometry", "wall", n.ID)
		return
	}

	mesh, ok := s.meshes[n.ID]
	if !ok {
		params := js.Global().Get("Object").New()
		params.Set("color", n.Color)
		material := s.three.Get("MeshBasicMaterial").New(params)
		mesh = s.three.Get("Mesh").New(geo.value, material)
		s.scene.Call("add", mesh)
		s.meshes[n.ID] = mesh
	}

	if !mesh.Get("geometry").Equal(geo.value) {
		mesh.Set("geometry", geo.value)
	}
	m := n.Mesh
	mesh.Get("position").Call("set", m.Position[0], m.Position[1], m.Position[2])
	mesh.Get("rotation").Call("set", m.Rotation[0], m.Rotation[1], m.Rotation[2])
	mesh.Get("material").Get("color").Call("set", n.Color)
	mesh.Set("visible", n.Visible)
}

func (s *threeSurface) Detach() {
	for id, mesh := range s.meshes {
		s.scene.Call("remove", mesh)
		mesh.Get("material").Call("dispose")
		delete(s.meshes, id)
	}
	if dom := s.renderer.Get("domElement"); dom.Get("parentNode").Equal(s.mount) {
		s.mount.Call("removeChild", dom)
	}
	s.renderer.Call("dispose")
}
