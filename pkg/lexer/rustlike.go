package lexer

// RustLike tokenizes Rust-family source: nested block comments, raw string
// literals (r"…", r#"…"#), and character literals distinguished from
// lifetimes.
type RustLike struct {
	patternMode bool
	maxToken    int
}

// NewRustLike constructs a Rust-family lexer.
func NewRustLike(patternMode bool, maxToken int) *RustLike {
	return &RustLike{patternMode: patternMode, maxToken: maxToken}
}

// Tokens implements Lexer.
func (l *RustLike) Tokens(src []byte) ([]Token, error) {
	s := newScanner(src, l.maxToken, l.patternMode)
	var toks []Token
	for {
		s.skipSpace()
		if s.eof() {
			return toks, nil
		}

		if s.peek() == '/' {
			switch s.peekAt(1) {
			case '/':
				for !s.eof() && s.peek() != '\n' {
					s.advance()
				}
				continue
			case '*':
				if err := skipBlockComment(s, true); err != nil {
					return nil, err
				}
				continue
			}
		}

		if tok, ok, err := s.lexMeta(); err != nil {
			return nil, err
		} else if ok {
			toks = append(toks, tok)
			continue
		}

		var (
			tok Token
			err error
		)
		switch b := s.peek(); {
		case b == 'r' && (s.peekAt(1) == '"' || s.peekAt(1) == '#'):
			tok, err = lexRawString(s)
		case isIdentStart(b):
			tok, err = s.lexIdent()
		case isDigit(b):
			tok, err = s.lexNumber()
		case b == '"':
			tok, err = s.lexQuoted('"', true, "string literal")
		case b == '\'':
			tok, err = lexCharOrLifetime(s)
		default:
			tok, err = s.lexPunct()
		}
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
}

// lexRawString scans r"…" or r#…"…"#… literals. Falls back to an identifier
// when the r# prefix turns out not to start a raw string (r#keyword).
func lexRawString(s *scanner) (Token, error) {
	startOff, startPt := s.pos, s.point()
	hashes := 0
	for s.peekAt(1+hashes) == '#' {
		hashes++
	}
	if s.peekAt(1+hashes) != '"' {
		return s.lexIdent()
	}
	for i := 0; i < 1+hashes+1; i++ { // r, hashes, opening quote
		s.advance()
	}
	for !s.eof() {
		if s.pos-startOff > s.maxToken {
			return Token{}, tooLongError(s.maxToken, startPt)
		}
		if s.peek() == '"' {
			closed := true
			for i := 0; i < hashes; i++ {
				if s.peekAt(1+i) != '#' {
					closed = false
					break
				}
			}
			if closed {
				for i := 0; i < 1+hashes; i++ {
					s.advance()
				}
				tok, err := s.token(String, startOff, startPt)
				if err != nil {
					return Token{}, err
				}
				tok.Value = tok.Text[2+hashes : len(tok.Text)-1-hashes]
				return tok, nil
			}
		}
		s.advance()
	}
	return Token{}, unterminatedError("raw string literal", startPt)
}

// lexCharOrLifetime scans 'x' and '\n' character literals, or a lifetime
// ('ident with no closing quote) as punctuation plus identifier.
func lexCharOrLifetime(s *scanner) (Token, error) {
	// 'a' or '\x' — a closing quote within two bytes makes it a char.
	if s.peekAt(1) == '\\' || s.peekAt(2) == '\'' {
		return s.lexQuoted('\'', true, "character literal")
	}
	// lifetime: lex the quote alone, the identifier follows as its own token
	return s.lexPunct()
}
