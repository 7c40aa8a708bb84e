//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/inamate/wallplan/internal/viewer"
)

// domEvents delivers mouse events registered on window.
type domEvents struct {
	window js.Value
}

func newDOMEvents(window js.Value) *domEvents {
	return &domEvents{window: window}
}

func (d *domEvents) Listen(kind viewer.EventKind, fn func(viewer.PointerEvent)) func() {
	cb := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) < 1 {
			return nil
		}
		e := args[0]
		fn(viewer.PointerEvent{
			ClientX: e.Get("clientX").Float(),
			ClientY: e.Get("clientY").Float(),
		})
		return nil
	})
	d.window.Call("addEventListener", string(kind), cb)

	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		d.window.Call("removeEventListener", string(kind), cb)
		cb.Release()
	}
}

// rafScheduler schedules frames with requestAnimationFrame.
type rafScheduler struct {
	window js.Value
}

func newRAFScheduler(window js.Value) *rafScheduler {
	return &rafScheduler{window: window}
}

func (s *rafScheduler) RequestFrame(fn func()) func() {
	done := false
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if done {
			return nil
		}
		done = true
		cb.Release()
		fn()
		return nil
	})
	id := s.window.Call("requestAnimationFrame", cb)

	return func() {
		if done {
			return
		}
		done = true
		s.window.Call("cancelAnimationFrame", id)
		cb.Release()
	}
}
