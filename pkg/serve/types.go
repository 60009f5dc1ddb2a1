package serve

import (
	"encoding/json"

	"github.com/lexgrep/lexgrep/pkg/types"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "run" | "encode" | "decode" | "close"
	Payload json.RawMessage `json:"payload"`
}

// SessionPayload carries a session as either a share token or its editor
// parts. A non-empty token wins.
type SessionPayload struct {
	Token    string `json:"token,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Language string `json:"language,omitempty"`
	Rules    string `json:"rules,omitempty"` // YAML unit list
}

// RunData is the data field for "run" responses
type RunData struct {
	Matches []types.Match `json:"matches"`
	Total   int           `json:"total"`
}

// EncodeData is the data field for "encode" responses
type EncodeData struct {
	Token string `json:"token"`
	Path  string `json:"path"` // public prefix + token
}

// DecodeData is the data field for "decode" responses: the editor parts of
// the decoded session.
type DecodeData struct {
	Subject  string `json:"subject"`
	Language string `json:"language"`
	Rules    string `json:"rules"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | "run" | "encode" | "decode" | "error"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version string `json:"version"`
}
