// Package web serves the viewer page, the wasm build and static files.
package web

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/inamate/wallplan/internal/config"
)

// DefaultThreeURL is the UMD build of three.js the wasm bridge expects on
// window.THREE.
const DefaultThreeURL = "https://unpkg.com/three@0.149.0/build/three.min.js"

//go:embed page.html
var pageSource string

var pageTemplate = template.Must(template.New("page").Parse(pageSource))

type pageData struct {
	Viewer   config.Viewer
	Reload   bool
	ThreeURL string
}

// Handler serves files from dir. The page embeds the viewer settings; the
// wasm bridge reads them back from window.wallplanConfig.
type Handler struct {
	dir      string
	viewer   config.Viewer
	reload   bool
	threeURL string
}

// NewHandler creates a handler for the web directory dir.
func NewHandler(dir string, viewer config.Viewer, reload bool) *Handler {
	if _, err := os.Stat(dir); err != nil {
		slog.Warn("web dir not readable", "error", err, "dir", dir)
	}
	return &Handler{
		dir:      dir,
		viewer:   viewer,
		reload:   reload,
		threeURL: DefaultThreeURL,
	}
}

// Page handles GET /.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageData{
		Viewer:   h.viewer,
		Reload:   h.reload,
		ThreeURL: h.threeURL,
	})
	if err != nil {
		slog.Error("render page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// WasmExec handles GET /wasm_exec.js, the Go runtime loader shipped with
// the toolchain.
func (h *Handler) WasmExec(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, "wasm_exec.js", "text/javascript; charset=utf-8")
}

// Wasm handles GET /app.wasm.
func (h *Handler) Wasm(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, "app.wasm", "application/wasm")
}

func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request, name, contentType string) {
	path := filepath.Join(h.dir, name)
	if _, err := os.Stat(path); err != nil {
		http.Error(w, fmt.Sprintf("%s not found", name), http.StatusNotFound)
		return
	}

	// Rebuilt in place during development
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Content-Type", contentType)
	http.ServeFile(w, r, path)
}

// Static returns an http.Handler that serves dir/static under /static/.
func (h *Handler) Static() http.Handler {
	fs := http.FileServer(http.Dir(filepath.Join(h.dir, "static")))
	return http.StripPrefix("/static/", fs)
}
