package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/inamate/wallplan/internal/config"
)

func newTestHandler(t *testing.T, reload bool) (*Handler, string) {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"app.wasm":         "\x00asm",
		"wasm_exec.js":     "// loader",
		"static/style.css": "body{}",
	}
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return NewHandler(dir, config.DefaultViewer(), reload), dir
}

var configLine = regexp.MustCompile(`window\.wallplanConfig = (\{.*\});`)

func TestPageEmbedsViewerConfig(t *testing.T) {
	h, _ := newTestHandler(t, false)
	rec := httptest.NewRecorder()
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `<div id="viewport">`) {
		t.Errorf("page has no viewport element")
	}
	if strings.Contains(body, "/ws/reload") {
		t.Errorf("reload client present with reload disabled")
	}

	m := configLine.FindStringSubmatch(body)
	if m == nil {
		t.Fatalf("config not found in page")
	}
	var v config.Viewer
	if err := json.Unmarshal([]byte(m[1]), &v); err != nil {
		t.Fatalf("config is not JSON: %v (%s)", err, m[1])
	}
	if v != config.DefaultViewer() {
		t.Errorf("embedded viewer = %+v", v)
	}
}

func TestPageReloadClient(t *testing.T) {
	h, _ := newTestHandler(t, true)
	rec := httptest.NewRecorder()
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.Contains(rec.Body.String(), "/ws/reload") {
		t.Errorf("reload client missing")
	}
}

func TestServeFiles(t *testing.T) {
	h, _ := newTestHandler(t, false)

	tests := []struct {
		name        string
		handler     http.Handler
		path        string
		status      int
		contentType string
		body        string
	}{
		{"wasm", http.HandlerFunc(h.Wasm), "/app.wasm", http.StatusOK, "application/wasm", "\x00asm"},
		{"loader", http.HandlerFunc(h.WasmExec), "/wasm_exec.js", http.StatusOK, "text/javascript; charset=utf-8", "// loader"},
		{"static", h.Static(), "/static/style.css", http.StatusOK, "", "body{}"},
		{"static missing", h.Static(), "/static/nope.css", http.StatusNotFound, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.contentType != "" && rec.Header().Get("Content-Type") != tt.contentType {
				t.Errorf("content type = %q, want %q", rec.Header().Get("Content-Type"), tt.contentType)
			}
			if tt.body != "" && rec.Body.String() != tt.body {
				t.Errorf("body = %q", rec.Body.String())
			}
		})
	}
}

func TestWasmMissing(t *testing.T) {
	h := NewHandler(t.TempDir(), config.DefaultViewer(), false)
	rec := httptest.NewRecorder()
	h.Wasm(rec, httptest.NewRequest(http.MethodGet, "/app.wasm", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
