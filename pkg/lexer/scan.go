package lexer

import "github.com/lexgrep/lexgrep/pkg/types"

// scanner holds the position state shared by all lexer families.
type scanner struct {
	src         []byte
	pos         int
	line, col   int
	maxToken    int
	patternMode bool
}

func newScanner(src []byte, maxToken int, patternMode bool) *scanner {
	return &scanner{src: src, line: 1, col: 1, maxToken: maxToken, patternMode: patternMode}
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) peekAt(off int) byte {
	if s.pos+off >= len(s.src) {
		return 0
	}
	return s.src[s.pos+off]
}

func (s *scanner) advance() byte {
	b := s.src[s.pos]
	s.pos++
	if b == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return b
}

func (s *scanner) point() types.SourcePoint {
	return types.SourcePoint{Line: s.line, Column: s.col}
}

func (s *scanner) skipSpace() {
	for !s.eof() {
		switch s.peek() {
		case ' ', '\t', '\r', '\n', '\v', '\f':
			s.advance()
		default:
			return
		}
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// token finishes a token spanning [start,startPos)..current, enforcing the
// length bound.
func (s *scanner) token(kind Kind, startOff int, startPt types.SourcePoint) (Token, error) {
	text := string(s.src[startOff:s.pos])
	if len(text) > s.maxToken {
		return Token{}, tooLongError(s.maxToken, startPt)
	}
	return Token{Kind: kind, Text: text, Value: text, Start: startPt, End: s.point()}, nil
}

// lexIdent scans an identifier. The caller ensures the first byte starts one.
func (s *scanner) lexIdent() (Token, error) {
	startOff, startPt := s.pos, s.point()
	for !s.eof() && isIdentPart(s.peek()) {
		s.advance()
	}
	return s.token(Ident, startOff, startPt)
}

// lexNumber scans a numeric literal: digits with optional underscores,
// a fractional part, and trailing alphanumeric suffix or radix characters
// (so 0xFF, 1_000u32 and 1.5e3 each form one token).
func (s *scanner) lexNumber() (Token, error) {
	startOff, startPt := s.pos, s.point()
	for !s.eof() && (isIdentPart(s.peek()) || s.peek() == '_') {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekAt(1)) {
		s.advance()
		for !s.eof() && (isIdentPart(s.peek()) || s.peek() == '_') {
			s.advance()
		}
	}
	return s.token(Number, startOff, startPt)
}

// lexQuoted scans a quoted literal terminated by quote. With escapes on, a
// backslash escapes the next byte. The cooked value is the inner text with
// escape sequences left unprocessed.
func (s *scanner) lexQuoted(quote byte, escapes bool, what string) (Token, error) {
	startOff, startPt := s.pos, s.point()
	s.advance() // opening quote
	for !s.eof() {
		if s.pos-startOff > s.maxToken {
			return Token{}, tooLongError(s.maxToken, startPt)
		}
		b := s.peek()
		if escapes && b == '\\' {
			s.advance()
			if !s.eof() {
				s.advance()
			}
			continue
		}
		s.advance()
		if b == quote {
			tok, err := s.token(String, startOff, startPt)
			if err != nil {
				return Token{}, err
			}
			tok.Value = tok.Text[1 : len(tok.Text)-1]
			return tok, nil
		}
	}
	return Token{}, unterminatedError(what, startPt)
}

// lexMeta scans a pattern metacharacter token if one starts here. It returns
// ok=false when the current input is not a metacharacter (or pattern mode is
// off), leaving the scanner untouched.
func (s *scanner) lexMeta() (Token, bool, error) {
	if !s.patternMode {
		return Token{}, false, nil
	}
	switch b := s.peek(); b {
	case '$', '&':
		if !isIdentStart(s.peekAt(1)) {
			return Token{}, false, nil
		}
		startOff, startPt := s.pos, s.point()
		s.advance() // sigil
		for !s.eof() && isIdentPart(s.peek()) {
			s.advance()
		}
		kind := Capture
		if b == '&' {
			kind = Unify
		}
		tok, err := s.token(kind, startOff, startPt)
		if err != nil {
			return Token{}, false, err
		}
		tok.Name = tok.Text[1:]
		return tok, true, nil
	case '.':
		if s.peekAt(1) == '.' && s.peekAt(2) == '.' {
			startOff, startPt := s.pos, s.point()
			s.advance()
			s.advance()
			s.advance()
			tok, err := s.token(Gap, startOff, startPt)
			if err != nil {
				return Token{}, false, err
			}
			return tok, true, nil
		}
	}
	return Token{}, false, nil
}

// operators shared by all families, longest first for maximal munch. The
// same table serves pattern and subject passes so literal punctuation in a
// pattern tokenizes exactly like the subject it must match.
var operators = []string{
	"<<=", ">>=", "...", "===", "!==",
	"==", "!=", "<=", ">=", "&&", "||", "<<", ">>",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"->", "=>", "::", ":=", "++", "--", "**", "//",
}

// lexPunct scans an operator or a single punctuation byte.
func (s *scanner) lexPunct() (Token, error) {
	startOff, startPt := s.pos, s.point()
	rest := s.src[s.pos:]
	for _, op := range operators {
		if len(rest) >= len(op) && string(rest[:len(op)]) == op {
			for range op {
				s.advance()
			}
			return s.token(Punct, startOff, startPt)
		}
	}
	s.advance()
	return s.token(Punct, startOff, startPt)
}
