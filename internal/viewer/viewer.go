// Package viewer drives the wall model from pointer input and a frame
// scheduler, and hands each frame to a rendering surface. The browser build
// supplies DOM-backed collaborators; tests supply fakes.
package viewer

import (
	"log/slog"

	"github.com/inamate/wallplan/internal/camera"
	"github.com/inamate/wallplan/internal/geom"
	"github.com/inamate/wallplan/internal/scene"
)

// EventKind names a pointer event.
type EventKind string

const (
	PointerDown EventKind = "mousedown"
	PointerMove EventKind = "mousemove"
	PointerUp   EventKind = "mouseup"
)

// PointerEvent carries the pointer position in client pixels.
type PointerEvent struct {
	ClientX float64
	ClientY float64
}

// EventSource delivers pointer events. Listen returns a function that
// removes the listener.
type EventSource interface {
	Listen(kind EventKind, fn func(PointerEvent)) (remove func())
}

// Scheduler runs fn before the next repaint. The returned function cancels
// the request if it has not run yet.
type Scheduler interface {
	RequestFrame(fn func()) (cancel func())
}

// Surface draws the scene. Size reports the drawable area in pixels.
type Surface interface {
	Size() (width, height float64)
	Render(g *scene.Graph, c *camera.Camera)
	Detach()
}

// Viewer owns the render loop and pointer routing for one mounted surface.
type Viewer struct {
	model   *scene.Model
	camera  *camera.Camera
	surface Surface
	events  EventSource
	sched   Scheduler

	removers []func()
	cancel   func()

	started  bool
	tornDown bool
	frames   uint64
}

func New(model *scene.Model, cam *camera.Camera, surface Surface, events EventSource, sched Scheduler) *Viewer {
	return &Viewer{
		model:   model,
		camera:  cam,
		surface: surface,
		events:  events,
		sched:   sched,
	}
}

// Start registers the pointer listeners and schedules the first frame.
// Without a surface there is nothing to mount and Start does nothing.
func (v *Viewer) Start() {
	if v.surface == nil {
		slog.Warn("viewer has no surface, not starting")
		return
	}
	if v.started || v.tornDown {
		return
	}
	v.started = true

	v.camera.SetAspect(v.surface.Size())

	v.removers = append(v.removers,
		v.events.Listen(PointerDown, v.handleDown),
		v.events.Listen(PointerMove, v.handleMove),
		v.events.Listen(PointerUp, v.handleUp),
	)
	v.cancel = v.sched.RequestFrame(v.frame)
}

// frame reschedules itself, advances the model and renders.
func (v *Viewer) frame() {
	if v.tornDown {
		return
	}
	v.cancel = v.sched.RequestFrame(v.frame)

	v.model.Update()
	v.surface.Render(v.model.Graph(), v.camera)
	v.frames++
}

// Frames returns the number of frames rendered.
func (v *Viewer) Frames() uint64 { return v.frames }

func (v *Viewer) handleDown(e PointerEvent) {
	v.model.PointerDown(v.ray(e))
}

func (v *Viewer) handleMove(e PointerEvent) {
	v.model.PointerMove(v.ray(e))
}

func (v *Viewer) handleUp(PointerEvent) {
	v.model.PointerUp()
}

func (v *Viewer) ray(e PointerEvent) geom.Ray {
	w, h := v.surface.Size()
	return v.camera.RayFromClient(e.ClientX, e.ClientY, w, h)
}

// Resize updates the camera for a new viewport size.
func (v *Viewer) Resize(width, height float64) {
	v.camera.SetAspect(width, height)
}

// Teardown stops the loop, removes every listener and detaches the
// surface. Further calls do nothing.
func (v *Viewer) Teardown() {
	if v.tornDown {
		return
	}
	v.tornDown = true

	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	for _, remove := range v.removers {
		remove()
	}
	v.removers = nil

	if v.surface != nil && v.started {
		v.surface.Detach()
	}
	slog.Debug("viewer torn down", "frames", v.frames)
}
