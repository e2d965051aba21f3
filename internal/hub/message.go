package hub

import "time"

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type      string             `json:"type"`              // "full", "delta", "action" or "paused"
	Seq       int64              `json:"seq"`               // Sequence number for ordering
	Timestamp int64              `json:"timestamp"`         // Unix timestamp in milliseconds
	Controls  map[string]float64 `json:"controls,omitempty"` // full: every control; delta: changed ones
	Control   string             `json:"control,omitempty"` // action: the control that fired
	Combo     string             `json:"combo,omitempty"`   // action: the held main control of a combo
	Actions   []string           `json:"actions,omitempty"` // action: descriptions of what ran
	Error     string             `json:"error,omitempty"`   // action: injection failure
	Paused    bool               `json:"paused"`
}

func newMessage(typ string, seq int64, paused bool) *WSMessage {
	return &WSMessage{
		Type:      typ,
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Paused:    paused,
	}
}

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type string `json:"type"` // "pause" or "resume"
}
