package tjson

import "testing"

func lexOne(t *testing.T, input string) Token {
	t.Helper()
	tokens, err := NewLexer(input).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", input, err)
	}
	if len(tokens) != 2 || tokens[1].Type != TokenEOF {
		t.Fatalf("Tokenize(%q) = %v, expected one token plus EOF", input, tokens)
	}
	return tokens[0]
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `"hello"`, "hello"},
		{"empty", `""`, ""},
		{"simple escapes", `"a\"b\\c\/d\n\t"`, "a\"b\\c/d\n\t"},
		{"control escapes", `"\b\f\r"`, "\b\f\r"},
		{"unicode escape", `"é"`, "é"},
		{"surrogate pair", `"😀"`, "😀"},
		{"lone high surrogate", `"\ud83dx"`, "�x"},
		{"lone low surrogate", `"\ude00"`, "�"},
		{"raw utf8 passes through", `"héllo"`, "héllo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := lexOne(t, tt.in)
			if tok.Type != TokenString {
				t.Fatalf("token type = %s, expected STRING", tok.Type)
			}
			if tok.Text != tt.want {
				t.Errorf("decoded = %q, expected %q", tok.Text, tt.want)
			}
		})
	}
}

func TestLexerStringErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind ErrKind
	}{
		{"unterminated", `"abc`, ErrUnexpectedEOF},
		{"unterminated escape", `"abc\`, ErrUnexpectedEOF},
		{"bad escape", `"\q"`, ErrLex},
		{"bad hex digit", `"\u00gg"`, ErrLex},
		{"short unicode escape", `"\u00`, ErrUnexpectedEOF},
		{"raw control char", "\"a\x01b\"", ErrLex},
		{"raw newline", "\"a\nb\"", ErrLex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLexer(tt.in).Tokenize()
			if err == nil {
				t.Fatalf("Tokenize(%q) succeeded", tt.in)
			}
			if kind := err.(*Error).Kind; kind != tt.kind {
				t.Errorf("error kind = %v, expected %v", kind, tt.kind)
			}
		})
	}
}

func TestLexerNumbers(t *testing.T) {
	// The raw literal text is preserved: the decoder distinguishes
	// integer and float shapes from it.
	for _, in := range []string{
		"0", "-0", "42", "-42", "0.5", "3.14", "1e10", "1E+10", "2.5e-3",
		"9223372036854775807", "18446744073709551615",
	} {
		t.Run(in, func(t *testing.T) {
			tok := lexOne(t, in)
			if tok.Type != TokenNumber {
				t.Fatalf("token type = %s, expected NUMBER", tok.Type)
			}
			if tok.Text != in {
				t.Errorf("raw text = %q, expected %q", tok.Text, in)
			}
		})
	}
}

func TestLexerNumberErrors(t *testing.T) {
	for _, in := range []string{"-", "1.", ".5", "1e", "1e+", "-.5"} {
		t.Run(in, func(t *testing.T) {
			tokens, err := NewLexer(in).Tokenize()
			if err == nil {
				// ".5" lexes no number at all and must fail on '.'.
				t.Fatalf("Tokenize(%q) = %v, expected error", in, tokens)
			}
		})
	}
}

func TestLexerKeywordsAndStructure(t *testing.T) {
	tokens, err := NewLexer(" {\n\t[ true, false, null ] : } ").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	want := []TokenType{
		TokenLBrace, TokenLBracket, TokenTrue, TokenComma, TokenFalse,
		TokenComma, TokenNull, TokenRBracket, TokenColon, TokenRBrace, TokenEOF,
	}
	if len(tokens) != len(want) {
		t.Fatalf("token count = %d, expected %d", len(tokens), len(want))
	}
	for i, typ := range want {
		if tokens[i].Type != typ {
			t.Errorf("token %d = %s, expected %s", i, tokens[i].Type, typ)
		}
	}

	if _, err := NewLexer("tru").Tokenize(); err == nil {
		t.Error("Tokenize(tru) succeeded")
	}
}

func TestLexerPositions(t *testing.T) {
	tokens, err := NewLexer("{\n  \"a\": 1\n}").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	// {, "a", :, 1, }, EOF
	wantPos := []Position{
		{Line: 1, Column: 1, Offset: 0},
		{Line: 2, Column: 3, Offset: 4},
		{Line: 2, Column: 6, Offset: 7},
		{Line: 2, Column: 8, Offset: 9},
		{Line: 3, Column: 1, Offset: 11},
	}
	for i, want := range wantPos {
		if tokens[i].Pos != want {
			t.Errorf("token %d pos = %+v, expected %+v", i, tokens[i].Pos, want)
		}
	}
}

func TestTokenStream(t *testing.T) {
	tokens, err := NewLexer("[1]").Tokenize()
	if err != nil {
		t.Fatal(err)
	}
	ts := NewTokenStream(tokens)

	if ts.Peek().Type != TokenLBracket {
		t.Fatalf("Peek = %s", ts.Peek().Type)
	}
	if !ts.Match(TokenLBracket) {
		t.Fatal("Match([) = false")
	}
	if ts.Match(TokenRBracket) {
		t.Fatal("Match(]) = true on the number")
	}
	if _, err := ts.Expect(TokenNumber); err != nil {
		t.Fatalf("Expect(NUMBER) failed: %v", err)
	}
	if _, err := ts.Expect(TokenComma); err == nil {
		t.Fatal("Expect(,) succeeded on ]")
	}
	ts.Advance()
	if !ts.AtEnd() {
		t.Error("AtEnd = false after consuming all tokens")
	}
	if _, err := ts.Expect(TokenNumber); err == nil {
		t.Error("Expect past EOF succeeded")
	} else if kind := err.(*Error).Kind; kind != ErrUnexpectedEOF {
		t.Errorf("error kind = %v, expected ErrUnexpectedEOF", kind)
	}
}
