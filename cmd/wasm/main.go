//go:build js && wasm

package main

import (
	"log/slog"
	"os"
	"syscall/js"

	"github.com/inamate/wallplan/internal/camera"
	"github.com/inamate/wallplan/internal/config"
	"github.com/inamate/wallplan/internal/scene"
	"github.com/inamate/wallplan/internal/viewer"
)

const mountID = "viewport"

var (
	model *scene.Model
	view  *viewer.Viewer
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	window := js.Global()
	mount := window.Get("document").Call("getElementById", mountID)
	if mount.IsNull() || mount.IsUndefined() {
		slog.Warn("mount element missing, viewer not started", "id", mountID)
		select {}
	}

	cfg := loadViewerConfig(window)

	alloc := newThreeAllocator(window.Get("THREE"))
	model = scene.NewDemoModel(alloc, cfg)
	surface := newThreeSurface(window, mount)
	cam := camera.New(cfg)

	view = viewer.New(model, cam, surface, newDOMEvents(window), newRAFScheduler(window))
	view.Start()

	onResize := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		surface.Resize()
		view.Resize(surface.Size())
		return nil
	})
	window.Call("addEventListener", "resize", onResize)

	onUnload := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		teardown(this, nil)
		return nil
	})
	window.Call("addEventListener", "beforeunload", onUnload)

	api := window.Get("Object").New()
	api.Set("getScene", js.FuncOf(getScene))
	api.Set("getBounds", js.FuncOf(getBounds))
	api.Set("teardown", js.FuncOf(teardown))
	window.Set("wallplan", api)

	// Signal that WASM is ready
	window.Set("wallplanReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// loadViewerConfig reads window.wallplanConfig over the defaults.
func loadViewerConfig(window js.Value) config.Viewer {
	raw := window.Get("wallplanConfig")
	if raw.IsUndefined() || raw.IsNull() {
		return config.DefaultViewer()
	}

	data := window.Get("JSON").Call("stringify", raw).String()
	cfg, err := config.DecodeViewer([]byte(data))
	if err != nil {
		slog.Warn("invalid viewer config, using defaults", "error", err)
	}
	return cfg
}

func getScene(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(model.Snapshot())
}

func getBounds(this js.Value, args []js.Value) interface{} {
	b := model.Bounds()
	return js.ValueOf(map[string]interface{}{
		"x":      b.X,
		"y":      b.Y,
		"width":  b.Width,
		"height": b.Height,
	})
}

func teardown(this js.Value, args []js.Value) interface{} {
	view.Teardown()
	return nil
}
