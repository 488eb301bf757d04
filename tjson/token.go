package tjson

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// TokenType represents the type of a lexer token.
type TokenType uint8

const (
	TokenEOF TokenType = iota

	// Literals
	TokenString // "quoted string" (Text holds the decoded value)
	TokenNumber // 123, -4.5e6 (Text holds the raw literal)
	TokenTrue   // true
	TokenFalse  // false
	TokenNull   // null (lexically valid, always a decode error)

	// Structural
	TokenLBrace   // {
	TokenRBrace   // }
	TokenLBracket // [
	TokenRBracket // ]
	TokenColon    // :
	TokenComma    // ,
)

// String returns the token type name.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenString:
		return "STRING"
	case TokenNumber:
		return "NUMBER"
	case TokenTrue:
		return "TRUE"
	case TokenFalse:
		return "FALSE"
	case TokenNull:
		return "NULL"
	case TokenLBrace:
		return "{"
	case TokenRBrace:
		return "}"
	case TokenLBracket:
		return "["
	case TokenRBracket:
		return "]"
	case TokenColon:
		return ":"
	case TokenComma:
		return ","
	default:
		return "UNKNOWN"
	}
}

// Token represents a lexer token.
type Token struct {
	Type TokenType
	Text string
	Pos  Position
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Text == "" {
		return t.Type.String()
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Text)
}

// Lexer tokenizes TJSON text under the JSON lexical grammar.
type Lexer struct {
	input string
	pos   int
	line  int
	col   int
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1, col: 1}
}

// Tokenize returns all tokens from the input, or the first lexical
// error encountered.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) nextToken() (Token, error) {
	l.skipWhitespace()

	startPos := l.currentPos()
	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: startPos}, nil
	}

	ch := l.peek()
	switch ch {
	case '{':
		l.advance()
		return Token{Type: TokenLBrace, Text: "{", Pos: startPos}, nil
	case '}':
		l.advance()
		return Token{Type: TokenRBrace, Text: "}", Pos: startPos}, nil
	case '[':
		l.advance()
		return Token{Type: TokenLBracket, Text: "[", Pos: startPos}, nil
	case ']':
		l.advance()
		return Token{Type: TokenRBracket, Text: "]", Pos: startPos}, nil
	case ':':
		l.advance()
		return Token{Type: TokenColon, Text: ":", Pos: startPos}, nil
	case ',':
		l.advance()
		return Token{Type: TokenComma, Text: ",", Pos: startPos}, nil
	case '"':
		return l.scanString()
	case 't', 'f', 'n':
		return l.scanKeyword()
	}

	if ch == '-' || (ch >= '0' && ch <= '9') {
		return l.scanNumber()
	}

	return Token{}, errAt(ErrLex, startPos, "unexpected character %q", ch)
}

// scanString scans a JSON string literal, decoding escapes.
func (l *Lexer) scanString() (Token, error) {
	startPos := l.currentPos()
	l.advance() // consume opening "

	var sb strings.Builder
	for {
		if l.pos >= len(l.input) {
			return Token{}, errAt(ErrUnexpectedEOF, startPos, "unterminated string")
		}

		ch := l.peek()
		switch {
		case ch == '"':
			l.advance()
			return Token{Type: TokenString, Text: sb.String(), Pos: startPos}, nil
		case ch == '\\':
			if err := l.scanEscape(&sb); err != nil {
				return Token{}, err
			}
		case ch < 0x20:
			return Token{}, errAt(ErrLex, l.currentPos(),
				"control character %#02x in string literal", ch)
		default:
			sb.WriteByte(ch)
			l.advance()
		}
	}
}

// scanEscape consumes one backslash escape and appends its value.
func (l *Lexer) scanEscape(sb *strings.Builder) error {
	escPos := l.currentPos()
	l.advance() // consume backslash
	if l.pos >= len(l.input) {
		return errAt(ErrUnexpectedEOF, escPos, "unterminated escape")
	}

	ch := l.peek()
	l.advance()
	switch ch {
	case '"':
		sb.WriteByte('"')
	case '\\':
		sb.WriteByte('\\')
	case '/':
		sb.WriteByte('/')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		r, err := l.scanUnicodeEscape(escPos)
		if err != nil {
			return err
		}
		if utf16.IsSurrogate(r) {
			// A high surrogate must pair with a following \uXXXX low
			// surrogate; anything else becomes U+FFFD.
			if l.pos+1 < len(l.input) && l.input[l.pos] == '\\' && l.input[l.pos+1] == 'u' {
				l.advance()
				l.advance()
				r2, err := l.scanUnicodeEscape(escPos)
				if err != nil {
					return err
				}
				r = utf16.DecodeRune(r, r2)
			} else {
				r = utf8.RuneError
			}
		}
		sb.WriteRune(r)
	default:
		return errAt(ErrLex, escPos, "invalid escape \\%c", ch)
	}
	return nil
}

func (l *Lexer) scanUnicodeEscape(escPos Position) (rune, error) {
	if l.pos+4 > len(l.input) {
		return 0, errAt(ErrUnexpectedEOF, escPos, "unterminated \\u escape")
	}
	var r rune
	for i := 0; i < 4; i++ {
		c := l.peek()
		switch {
		case c >= '0' && c <= '9':
			r = r<<4 | rune(c-'0')
		case c >= 'a' && c <= 'f':
			r = r<<4 | rune(c-'a'+10)
		case c >= 'A' && c <= 'F':
			r = r<<4 | rune(c-'A'+10)
		default:
			return 0, errAt(ErrLex, escPos, "invalid hex digit %q in \\u escape", c)
		}
		l.advance()
	}
	return r, nil
}

// scanNumber scans a JSON number literal, keeping the raw text: the
// decoder needs the literal form to honor the i/u/f tag distinction.
func (l *Lexer) scanNumber() (Token, error) {
	startPos := l.currentPos()
	start := l.pos

	if l.peek() == '-' {
		l.advance()
	}

	// Integer part: a single 0, or a nonzero digit run.
	switch {
	case l.pos < len(l.input) && l.peek() == '0':
		l.advance()
	case l.pos < len(l.input) && isDigit(l.peek()):
		for l.pos < len(l.input) && isDigit(l.peek()) {
			l.advance()
		}
	default:
		return Token{}, errAt(ErrLex, startPos, "malformed number literal")
	}

	// Fraction part
	if l.pos < len(l.input) && l.peek() == '.' {
		l.advance()
		if l.pos >= len(l.input) || !isDigit(l.peek()) {
			return Token{}, errAt(ErrLex, startPos, "malformed number literal: missing fraction digits")
		}
		for l.pos < len(l.input) && isDigit(l.peek()) {
			l.advance()
		}
	}

	// Exponent part
	if l.pos < len(l.input) && (l.peek() == 'e' || l.peek() == 'E') {
		l.advance()
		if l.pos < len(l.input) && (l.peek() == '+' || l.peek() == '-') {
			l.advance()
		}
		if l.pos >= len(l.input) || !isDigit(l.peek()) {
			return Token{}, errAt(ErrLex, startPos, "malformed number literal: missing exponent digits")
		}
		for l.pos < len(l.input) && isDigit(l.peek()) {
			l.advance()
		}
	}

	return Token{Type: TokenNumber, Text: l.input[start:l.pos], Pos: startPos}, nil
}

// scanKeyword scans true, false or null.
func (l *Lexer) scanKeyword() (Token, error) {
	startPos := l.currentPos()
	for _, kw := range [...]struct {
		word string
		typ  TokenType
	}{{"true", TokenTrue}, {"false", TokenFalse}, {"null", TokenNull}} {
		if strings.HasPrefix(l.input[l.pos:], kw.word) {
			for range kw.word {
				l.advance()
			}
			return Token{Type: kw.typ, Text: kw.word, Pos: startPos}, nil
		}
	}
	return Token{}, errAt(ErrLex, startPos, "unexpected character %q", l.peek())
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) advance() {
	if l.pos < len(l.input) {
		if l.input[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// TokenStream provides a stream interface over tokens.
type TokenStream struct {
	tokens []Token
	pos    int
}

// NewTokenStream creates a token stream from tokens.
func NewTokenStream(tokens []Token) *TokenStream {
	return &TokenStream{tokens: tokens}
}

// Peek returns the current token without advancing.
func (ts *TokenStream) Peek() Token {
	if ts.pos >= len(ts.tokens) {
		return Token{Type: TokenEOF}
	}
	return ts.tokens[ts.pos]
}

// Advance moves to the next token and returns the current one.
func (ts *TokenStream) Advance() Token {
	tok := ts.Peek()
	if ts.pos < len(ts.tokens) {
		ts.pos++
	}
	return tok
}

// Expect advances if the current token matches, otherwise returns an
// error naming both sides.
func (ts *TokenStream) Expect(typ TokenType) (Token, error) {
	tok := ts.Peek()
	if tok.Type != typ {
		if tok.Type == TokenEOF {
			return tok, errAt(ErrUnexpectedEOF, tok.Pos, "expected %s, got end of input", typ)
		}
		return tok, errAt(ErrLex, tok.Pos, "expected %s, got %s", typ, tok.Type)
	}
	ts.Advance()
	return tok, nil
}

// Match returns true and advances if the current token matches.
func (ts *TokenStream) Match(typ TokenType) bool {
	if ts.Peek().Type == typ {
		ts.Advance()
		return true
	}
	return false
}

// AtEnd returns true if at end of stream.
func (ts *TokenStream) AtEnd() bool {
	return ts.Peek().Type == TokenEOF
}
