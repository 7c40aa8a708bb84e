package devreload

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub()
	go hub.Run()
	srv := httptest.NewServer(Handler(hub, nil))
	t.Cleanup(func() {
		srv.Close()
		hub.Stop()
	})
	return hub, srv
}

func dial(t *testing.T, ctx context.Context, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func readMessage(t *testing.T, ctx context.Context, conn *websocket.Conn) Message {
	t.Helper()
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return msg
}

func TestBroadcastReload(t *testing.T) {
	hub, srv := startHub(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dial(t, ctx, srv)
	welcome := readMessage(t, ctx, conn)
	if welcome.Type != TypeWelcome || welcome.ClientID == "" {
		t.Fatalf("first message = %+v, want welcome with client id", welcome)
	}
	if hub.Clients() != 1 {
		t.Errorf("Clients() = %d, want 1", hub.Clients())
	}

	hub.Broadcast(ReloadMessage("web/app.wasm"))

	msg := readMessage(t, ctx, conn)
	if msg.Type != TypeReload {
		t.Fatalf("got %q, want reload", msg.Type)
	}
	var payload ReloadPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Path != "web/app.wasm" {
		t.Errorf("path = %q", payload.Path)
	}
}

func TestPingPong(t *testing.T) {
	_, srv := startHub(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dial(t, ctx, srv)
	readMessage(t, ctx, conn)

	if err := conn.Write(ctx, websocket.MessageText, []byte(`{"type":"ping"}`)); err != nil {
		t.Fatal(err)
	}
	if msg := readMessage(t, ctx, conn); msg.Type != TypePong {
		t.Errorf("got %q, want pong", msg.Type)
	}
}

func TestDisconnectUnregisters(t *testing.T) {
	hub, srv := startHub(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dial(t, ctx, srv)
	readMessage(t, ctx, conn)
	conn.Close(websocket.StatusNormalClosure, "bye")

	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client still registered after close")
		}
		time.Sleep(10 * time.Millisecond)
	}

	// Broadcasting to nobody is fine.
	hub.Broadcast(ReloadMessage(""))
}

func TestReloadMessageWithoutPath(t *testing.T) {
	msg := ReloadMessage("")
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"type":"reload"}` {
		t.Errorf("got %s", data)
	}
}

func TestWatcherDebounces(t *testing.T) {
	dir := t.TempDir()
	changes := make(chan string, 8)

	w, err := NewWatcher(dir, 50*time.Millisecond, func(path string) { changes <- path })
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	target := filepath.Join(dir, "index.html")
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(target, []byte("<p>hi</p>"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case path := <-changes:
		if path != target {
			t.Errorf("changed path = %q, want %q", path, target)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case path := <-changes:
		t.Errorf("burst reported twice, second path %q", path)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherMissingRoot(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), DefaultDebounce, func(string) {})
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}
