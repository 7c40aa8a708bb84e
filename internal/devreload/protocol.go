// Package devreload pushes reload notifications to open browser pages
// over a websocket whenever files under the served web directory change.
package devreload

import "encoding/json"

// Message is the envelope of every frame on the reload socket.
type Message struct {
	Type     string          `json:"type"`
	ClientID string          `json:"clientId,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

type ReloadPayload struct {
	Path string `json:"path"`
}

const (
	// Connection
	TypeWelcome = "welcome"

	// Server to page
	TypeReload = "reload"

	// Page to server
	TypePing = "ping"
	TypePong = "pong"
)

// ReloadMessage builds the reload notification for a changed path.
func ReloadMessage(path string) *Message {
	msg := &Message{Type: TypeReload}
	if path != "" {
		msg.Payload, _ = json.Marshal(ReloadPayload{Path: path})
	}
	return msg
}
