package lexer

// PythonLike tokenizes Python-family source: # comments, triple-quoted and
// single/double-quoted strings.
type PythonLike struct {
	patternMode bool
	maxToken    int
}

// NewPythonLike constructs a Python-family lexer.
func NewPythonLike(patternMode bool, maxToken int) *PythonLike {
	return &PythonLike{patternMode: patternMode, maxToken: maxToken}
}

// Tokens implements Lexer.
func (l *PythonLike) Tokens(src []byte) ([]Token, error) {
	s := newScanner(src, l.maxToken, l.patternMode)
	var toks []Token
	for {
		s.skipSpace()
		if s.eof() {
			return toks, nil
		}

		if s.peek() == '#' {
			for !s.eof() && s.peek() != '\n' {
				s.advance()
			}
			continue
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
		case isIdentStart(b):
			tok, err = s.lexIdent()
		case isDigit(b):
			tok, err = s.lexNumber()
		case b == '"' || b == '\'':
			if s.peekAt(1) == b && s.peekAt(2) == b {
				tok, err = lexTriple(s, b)
			} else {
				tok, err = s.lexQuoted(b, true, "string literal")
			}
		default:
			tok, err = s.lexPunct()
		}
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
}

// lexTriple scans a triple-quoted string. Escapes are honored so an escaped
// quote cannot close the literal early.
func lexTriple(s *scanner, quote byte) (Token, error) {
	startOff, startPt := s.pos, s.point()
	s.advance()
	s.advance()
	s.advance()
	for !s.eof() {
		if s.pos-startOff > s.maxToken {
			return Token{}, tooLongError(s.maxToken, startPt)
		}
		if s.peek() == '\\' {
			s.advance()
			if !s.eof() {
				s.advance()
			}
			continue
		}
		if s.peek() == quote && s.peekAt(1) == quote && s.peekAt(2) == quote {
			s.advance()
			s.advance()
			s.advance()
			tok, err := s.token(String, startOff, startPt)
			if err != nil {
				return Token{}, err
			}
			tok.Value = tok.Text[3 : len(tok.Text)-3]
			return tok, nil
		}
		s.advance()
	}
	return Token{}, unterminatedError("string literal", startPt)
}
