package lexer

// CLike tokenizes the C-family languages. Backticks enables backtick-quoted
// raw strings and template literals (Go, JavaScript, TypeScript, Kotlin);
// with it off backticks lex as plain punctuation (C, C++, C#, Java).
type CLike struct {
	backticks   bool
	patternMode bool
	maxToken    int
}

// NewCLike constructs a C-family lexer.
func NewCLike(backticks, patternMode bool, maxToken int) *CLike {
	return &CLike{backticks: backticks, patternMode: patternMode, maxToken: maxToken}
}

// Tokens implements Lexer.
func (l *CLike) Tokens(src []byte) ([]Token, error) {
	s := newScanner(src, l.maxToken, l.patternMode)
	var toks []Token
	for {
		s.skipSpace()
		if s.eof() {
			return toks, nil
		}

		// comments
		if s.peek() == '/' {
			switch s.peekAt(1) {
			case '/':
				for !s.eof() && s.peek() != '\n' {
					s.advance()
				}
				continue
			case '*':
				if err := skipBlockComment(s, false); err != nil {
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
		case isIdentStart(b):
			tok, err = s.lexIdent()
		case isDigit(b):
			tok, err = s.lexNumber()
		case b == '"' || b == '\'':
			tok, err = s.lexQuoted(b, true, "string literal")
		case b == '`' && l.backticks:
			tok, err = s.lexQuoted('`', false, "raw string literal")
		default:
			tok, err = s.lexPunct()
		}
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
}

// skipBlockComment consumes a /* */ comment, nesting when nested is true.
func skipBlockComment(s *scanner, nested bool) error {
	startPt := s.point()
	s.advance() // '/'
	s.advance() // '*'
	depth := 1
	for !s.eof() {
		if s.peek() == '*' && s.peekAt(1) == '/' {
			s.advance()
			s.advance()
			depth--
			if depth == 0 {
				return nil
			}
			continue
		}
		if nested && s.peek() == '/' && s.peekAt(1) == '*' {
			s.advance()
			s.advance()
			depth++
			continue
		}
		s.advance()
	}
	return unterminatedError("block comment", startPt)
}
