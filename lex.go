package arival

import (
	"io"
	"iter"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Token is a single lexical token of an expression.
type Token struct {
	// Kind is the token's type.
	Kind TokenKind
	// Text is the exact input text the token matched.
	Text string
	// Pos is the byte offset of the start of the token in the input.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// IsFunction reports whether the token names a built-in function.
func (t Token) IsFunction() bool {
	return t.Kind == TokenFunction
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	// TokenNone is the zero TokenKind. The scanner never produces it.
	TokenNone TokenKind = iota
	// TokenNumber is a decimal literal like 2, 2. or 2.5.
	TokenNumber
	// TokenIdentifier is a variable name.
	TokenIdentifier
	// TokenFunction is the name of a built-in function.
	TokenFunction
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenCaret
	TokenLParen
	TokenRParen
	TokenComma
)

//go:generate go run golang.org/x/tools/cmd/stringer@latest -type=TokenKind -trimprefix=Token

// punct maps single-byte punctuation to token kinds.
func punct(b byte) TokenKind {
	switch b {
	case '+':
		return TokenPlus
	case '-':
		return TokenMinus
	case '*':
		return TokenStar
	case '/':
		return TokenSlash
	case '^':
		return TokenCaret
	case '(':
		return TokenLParen
	case ')':
		return TokenRParen
	case ',':
		return TokenComma
	default:
		return TokenNone
	}
}

// Scanner splits an expression into tokens. Tokens are produced one at a time
// as they are requested; the scanner never looks past the token it returns.
type Scanner struct {
	src   string
	cur   int
	funcs *funcTable
}

// NewScanner creates a scanner over src which classifies the names of
// built-in functions as TokenFunction.
func NewScanner(src string) *Scanner {
	return newScanner(src, builtins)
}

func newScanner(src string, funcs *funcTable) *Scanner {
	return &Scanner{src: src, funcs: funcs}
}

// Next scans the next token. At the end of the input, the result is io.EOF,
// as many times as Next is called. If no token matches at the current
// position, the error is a *LexError and the scanner does not advance.
func (s *Scanner) Next() (Token, error) {
	s.skipSpace()
	if s.cur >= len(s.src) {
		return Token{}, io.EOF
	}
	start := s.cur
	c := s.src[start]
	var kind TokenKind
	n := 0
	switch {
	case isDigit(c):
		n = scanNum(s.src[start:])
		kind = TokenNumber
	case isIdentStart(c):
		n = scanIdent(s.src[start:])
		kind = TokenIdentifier
		if s.funcs.has(s.src[start : start+n]) {
			kind = TokenFunction
		}
	default:
		kind = punct(c)
		if kind == TokenNone {
			return Token{}, &LexError{Offset: start, Text: s.src[start:]}
		}
		n = 1
	}
	s.cur += n
	return Token{Kind: kind, Text: s.src[start:s.cur], Pos: start}, nil
}

// skipSpace advances past whitespace.
func (s *Scanner) skipSpace() {
	for s.cur < len(s.src) {
		r, sz := utf8.DecodeRuneInString(s.src[s.cur:])
		if !unicode.IsSpace(r) {
			return
		}
		s.cur += sz
	}
}

// scanNum returns the length of the numeric literal at the start of src,
// which must begin with a digit.
func scanNum(src string) int {
	n := 1
	for n < len(src) && isDigit(src[n]) {
		n++
	}
	if n < len(src) && src[n] == '.' {
		n++
		for n < len(src) && isDigit(src[n]) {
			n++
		}
	}
	return n
}

// scanIdent returns the length of the identifier at the start of src, which
// must begin with an identifier start byte.
func scanIdent(src string) int {
	n := 1
	for n < len(src) && (isIdentStart(src[n]) || isDigit(src[n])) {
		n++
	}
	return n
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// Reset rewinds the scanner to the start of its input.
func (s *Scanner) Reset() {
	s.cur = 0
}

// Pos returns the byte offset of the scanner in its input.
func (s *Scanner) Pos() int {
	return s.cur
}

// More reports whether any input, possibly only whitespace, remains.
func (s *Scanner) More() bool {
	return s.cur < len(s.src)
}

// Rest returns the input which has not yet been scanned.
func (s *Scanner) Rest() string {
	return s.src[s.cur:]
}

// All resets the scanner and returns a sequence of its tokens. The sequence
// ends at the end of the input or after yielding the first error.
func (s *Scanner) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		s.Reset()
		for {
			tok, err := s.Next()
			if err == io.EOF {
				return
			}
			if !yield(tok, err) || err != nil {
				return
			}
		}
	}
}

// LexError indicates input which does not begin any token. It implements
// InputError.
type LexError struct {
	// Offset is the byte offset at which scanning failed.
	Offset int
	// Text is the unscanned remainder of the input, starting at Offset.
	Text string
}

func (err *LexError) Error() string {
	return errpos(err.Offset, "unexpected input "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Offset
}
