// Package lexer provides the tokenizers used for both pattern compilation
// and subject scanning.
//
// Three lexer families cover the supported languages: a C-like family
// (parameterized by backtick raw-string support), a Python-like family, and
// a Rust-like family. Each family can run in pattern mode, where the pattern
// metacharacters $NAME, &NAME and ... are recognized as single tokens; with
// pattern mode off they lex as ordinary punctuation.
package lexer

import (
	"fmt"

	"github.com/lexgrep/lexgrep/pkg/types"
)

// Kind classifies a token.
type Kind int

const (
	Ident Kind = iota
	Number
	String
	Punct
	Capture // $NAME — capture one token (pattern mode only)
	Unify   // &NAME — capture one token, must agree with other bindings
	Gap     // ...   — match any token run (pattern mode only)
)

func (k Kind) String() string {
	switch k {
	case Ident:
		return "ident"
	case Number:
		return "number"
	case String:
		return "string"
	case Punct:
		return "punct"
	case Capture:
		return "capture"
	case Unify:
		return "unify"
	case Gap:
		return "gap"
	default:
		return "unknown"
	}
}

// Token is a single lexical token.
type Token struct {
	Kind Kind
	// Text is the raw source text, quotes included for strings. Literal
	// matching compares Text.
	Text string
	// Value is the cooked text used for captures: for strings the content
	// between the delimiters, otherwise identical to Text.
	Value string
	// Name is the capture name for Capture and Unify tokens.
	Name string
	// Start is the token's first position, End the position just past it.
	Start, End types.SourcePoint
}

// Lexer tokenizes a byte stream. Implementations are bounded: any single
// token longer than the configured maximum is a lexing error.
type Lexer interface {
	Tokens(src []byte) ([]Token, error)
}

// tooLongError reports a token exceeding the length bound.
func tooLongError(max int, at types.SourcePoint) error {
	return fmt.Errorf("token exceeds maximum length %d at %d:%d", max, at.Line, at.Column)
}

// unterminatedError reports an unclosed string or comment.
func unterminatedError(what string, at types.SourcePoint) error {
	return fmt.Errorf("unterminated %s at %d:%d", what, at.Line, at.Column)
}
