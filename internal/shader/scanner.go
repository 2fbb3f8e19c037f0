package shader

import (
	"github.com/hashicorp/hcl/v2"
)

// TokenKind identifies the class of a scanned token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenNumber
	TokenPunct
	// TokenDirective is a '#' that starts a line, together with the directive
	// name that follows it. Text holds the name only, e.g. "pragma".
	TokenDirective
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenIdent:
		return "Ident"
	case TokenNumber:
		return "Number"
	case TokenPunct:
		return "Punct"
	case TokenDirective:
		return "Directive"
	default:
		return "Unknown"
	}
}

// Token is a lexeme of shader or header source. Text is a substring of the
// scanned source, so Pos.Byte+len(Text) is the end offset for every kind but
// TokenDirective.
type Token struct {
	Kind TokenKind
	Text string
	Pos  hcl.Pos
}

// Is reports whether t is of the given kind and has the given text.
func (t Token) Is(kind TokenKind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// End returns the offset just past the token in the source.
func (t Token) End() int { return t.Pos.Byte + len(t.Text) }

type scanState uint8

const (
	stateCode scanState = iota
	stateLineComment
	stateBlockComment
	stateString
)

// Scanner splits GLSL and C-like header text into tokens. Comments and string
// literals never produce tokens, so keywords mentioned in them are invisible
// to every pass built on top of the scanner.
type Scanner struct {
	src   string
	off   int
	line  int
	col   int
	state scanState
	// bol is true until the first token of the current line has been seen.
	bol bool
}

// NewScanner creates a scanner positioned at the start of src.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src, line: 1, col: 1, bol: true}
}

// Next returns the next token, or a TokenEOF token once the input is exhausted.
func (s *Scanner) Next() Token {
	for s.off < len(s.src) {
		c := s.src[s.off]
		switch s.state {
		case stateLineComment:
			if c == '\n' {
				s.state = stateCode
			}
			s.advance()
			continue
		case stateBlockComment:
			if c == '*' && s.peek(1) == '/' {
				s.advance()
				s.advance()
				s.state = stateCode
				continue
			}
			s.advance()
			continue
		case stateString:
			switch c {
			case '\\':
				s.advance()
				if s.off < len(s.src) {
					s.advance()
				}
				continue
			case '"', '\n':
				s.state = stateCode
			}
			s.advance()
			continue
		}

		switch {
		case c == '/' && s.peek(1) == '/':
			s.state = stateLineComment
			s.advance()
			s.advance()
		case c == '/' && s.peek(1) == '*':
			s.state = stateBlockComment
			s.advance()
			s.advance()
		case c == '"':
			s.state = stateString
			s.bol = false
			s.advance()
		case isSpace(c):
			s.advance()
		case c == '#' && s.bol:
			return s.scanDirective()
		case isIdentStart(c):
			return s.scanRun(TokenIdent, isIdentChar)
		case isDigit(c) || (c == '.' && isDigit(s.peek(1))):
			return s.scanRun(TokenNumber, isNumberChar)
		default:
			pos := s.pos()
			s.bol = false
			s.advance()
			return Token{Kind: TokenPunct, Text: s.src[pos.Byte:s.off], Pos: pos}
		}
	}
	return Token{Kind: TokenEOF, Pos: s.pos()}
}

// Tokens scans the whole of src, excluding the trailing EOF token.
func Tokens(src string) []Token {
	s := NewScanner(src)
	toks := make([]Token, 0, len(src)/4)
	for {
		tok := s.Next()
		if tok.Kind == TokenEOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func (s *Scanner) scanRun(kind TokenKind, accept func(byte) bool) Token {
	pos := s.pos()
	s.bol = false
	for s.off < len(s.src) && accept(s.src[s.off]) {
		s.advance()
	}
	return Token{Kind: kind, Text: s.src[pos.Byte:s.off], Pos: pos}
}

func (s *Scanner) scanDirective() Token {
	pos := s.pos()
	s.bol = false
	s.advance() // '#'
	for s.off < len(s.src) && (s.src[s.off] == ' ' || s.src[s.off] == '\t') {
		s.advance()
	}
	start := s.off
	for s.off < len(s.src) && isIdentChar(s.src[s.off]) {
		s.advance()
	}
	return Token{Kind: TokenDirective, Text: s.src[start:s.off], Pos: pos}
}

func (s *Scanner) pos() hcl.Pos {
	return hcl.Pos{Line: s.line, Column: s.col, Byte: s.off}
}

func (s *Scanner) peek(n int) byte {
	if s.off+n < len(s.src) {
		return s.src[s.off+n]
	}
	return 0
}

func (s *Scanner) advance() {
	if s.src[s.off] == '\n' {
		s.line++
		s.col = 1
		s.bol = true
	} else {
		s.col++
	}
	s.off++
}

// positionAt computes the line/column position of a byte offset in src.
func positionAt(src string, offset int) hcl.Pos {
	if offset > len(src) {
		offset = len(src)
	}
	pos := hcl.Pos{Line: 1, Column: 1, Byte: offset}
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool { return isIdentStart(c) || isDigit(c) }

func isNumberChar(c byte) bool { return isIdentChar(c) || c == '.' }
