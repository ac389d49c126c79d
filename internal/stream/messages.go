package stream

import (
	"encoding/json"

	"aurex-showroom/scene"
)

// Message types on the showroom socket.
const (
	// server to viewer
	TypeScene = "scene"
	TypeFrame = "frame"
	TypeError = "error"

	// viewer to server
	TypeScroll  = "scroll"
	TypeColor   = "color"
	TypeVariant = "variant"
)

// Envelope wraps every server message.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ScenePayload is sent on connect and after every rebuild.
type ScenePayload struct {
	Session  string          `json:"session"`
	Version  uint64          `json:"version"`
	Model    string          `json:"model"`
	Color    string          `json:"color"`
	Document *scene.Document `json:"document"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// ClientMessage is a viewer input. Only the fields for Type are set.
type ClientMessage struct {
	Type           string  `json:"type"`
	ScrollY        float64 `json:"scrollY"`
	ScrollHeight   float64 `json:"scrollHeight"`
	ViewportHeight float64 `json:"viewportHeight"`
	Color          string  `json:"color"`
	Variant        string  `json:"variant"`
}

func encode(typ string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: typ, Payload: raw})
}
