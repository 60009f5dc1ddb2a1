//go:build wasm

package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/lexgrep/lexgrep/pkg/editor"
	"github.com/lexgrep/lexgrep/pkg/share"
	"github.com/lexgrep/lexgrep/pkg/types"
)

var codec = share.New(share.DefaultPublicPrefix)

// consoleLogger routes engine tracing to the browser console.
type consoleLogger struct{}

func (consoleLogger) Log(format string, args ...interface{}) {
	js.Global().Get("console").Call("debug", fmt.Sprintf(format, args...))
}

// highlightElement is the shape the editor front end consumes to paint one
// match range.
type highlightElement struct {
	StartLine int    `json:"start_line"`
	StartCol  int    `json:"start_col"`
	EndLine   int    `json:"end_line"`
	EndCol    int    `json:"end_col"`
	ClassName string `json:"class_name"`
	Text      string `json:"text,omitempty"`
}

// decodeSession decodes a share token (or full share path) into editor parts.
// JS: LexgrepDecodeSession(token) -> {rules, subject, language} or {error}
func decodeSession(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "token argument required"}
	}

	cfg := codec.Decode(args[0].String())
	rules, subject, language, err := editor.ToParts(cfg)
	if err != nil {
		return map[string]interface{}{"error": "failed to render session: " + err.Error()}
	}

	return map[string]interface{}{
		"rules":    rules,
		"subject":  subject,
		"language": language,
	}
}

// encodeSession collects editor parts into a share token.
// JS: LexgrepEncodeSession(subject, language, rules) -> {token, path} or {error}
func encodeSession(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return map[string]interface{}{"error": "subject, language and rules arguments required"}
	}

	cfg, err := editor.FromParts(args[0].String(), args[1].String(), args[2].String())
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}

	token, err := codec.Encode(cfg)
	if err != nil {
		return map[string]interface{}{"error": "failed to encode session: " + err.Error()}
	}

	return map[string]interface{}{
		"token": token,
		"path":  codec.PublicPrefix + token,
	}
}

// run collects editor parts, executes the session, and returns highlight
// elements as JSON.
// JS: LexgrepRun(subject, language, rules) -> JSON highlights or {error}
func run(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return map[string]interface{}{"error": "subject, language and rules arguments required"}
	}

	cfg, err := editor.FromParts(args[0].String(), args[1].String(), args[2].String())
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}

	var highlights []highlightElement
	err = cfg.RunWithLogger(consoleLogger{}, func(m types.Match) {
		label := m.Name
		if len(m.Captures) > 0 {
			label = m.Name + ": " + m.CapturesJSON()
		}
		highlights = append(highlights, highlightElement{
			StartLine: m.Start.Line,
			StartCol:  m.Start.Column,
			EndLine:   m.End.Line,
			EndCol:    m.End.Column,
			ClassName: "match-highlight",
			Text:      label,
		})
	})
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}

	jsonBytes, err := json.Marshal(highlights)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal highlights: " + err.Error()}
	}
	return string(jsonBytes)
}
