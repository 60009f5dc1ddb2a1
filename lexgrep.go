// Package lexgrep provides lexical multi-pattern search over source text,
// with sessions that round-trip through a single URL-safe share token.
//
// A session holds a subject text, its language, and an ordered list of
// matching units: named sets of token-level patterns with optional output
// and transform metadata. Patterns use three metacharacters: $NAME captures
// one token, &NAME captures one token that must agree with every other
// binding of NAME, and ... matches any token run.
//
// # Basic Usage
//
// Run the built-in example session:
//
//	cfg := lexgrep.DefaultConfig()
//	err := lexgrep.Run(cfg, func(m lexgrep.Match) {
//	    fmt.Printf("%s at %d:%d %s\n", m.Name, m.Start.Line, m.Start.Column, m.CapturesJSON())
//	})
//
// # Sharing
//
// Encode a session into a URL-safe token and decode it back:
//
//	token, err := lexgrep.EncodeSession(cfg)
//	cfg2 := lexgrep.DecodeSession(token) // never fails: malformed tokens
//	                                     // yield the default session
package lexgrep

import (
	"github.com/lexgrep/lexgrep/pkg/session"
	"github.com/lexgrep/lexgrep/pkg/share"
	"github.com/lexgrep/lexgrep/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/lexgrep/lexgrep" without subpackages.
type (
	// Config is a complete session: subject, language, matching units.
	Config = session.Config

	// Unit is one named, grouped set of alternative patterns.
	Unit = session.Unit

	// Match is a single completed pattern match.
	Match = types.Match

	// Language identifies the subject's source language.
	Language = types.Language

	// SourcePoint is a 1-based line:column position.
	SourcePoint = types.SourcePoint
)

// Re-export the language constants.
const (
	LangC      = types.LangC
	LangCpp    = types.LangCpp
	LangCSharp = types.LangCSharp
	LangGo     = types.LangGo
	LangJava   = types.LangJava
	LangJS     = types.LangJS
	LangKotlin = types.LangKotlin
	LangPython = types.LangPython
	LangRust   = types.LangRust
	LangTS     = types.LangTS
)

// DefaultPublicPrefix is the compiled-in public path prefix used by the
// package-level Encode/Decode helpers.
const DefaultPublicPrefix = share.DefaultPublicPrefix

// DefaultConfig returns the built-in example session.
func DefaultConfig() Config {
	return session.Default()
}

// EncodeSession serializes cfg into a share token using the default public
// prefix.
func EncodeSession(cfg Config) (string, error) {
	return share.New(DefaultPublicPrefix).Encode(cfg)
}

// DecodeSession decodes a share token (with or without the default public
// prefix). It never fails: any malformed token yields the default session.
func DecodeSession(token string) Config {
	return share.New(DefaultPublicPrefix).Decode(token)
}

// Run compiles cfg's patterns and executes them against its subject,
// streaming each match to sink.
func Run(cfg Config, sink func(Match)) error {
	return cfg.Run(sink)
}
