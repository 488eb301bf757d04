package tjson

import (
	"encoding/base64"
	"io"
	"strconv"
	"strings"
	"time"
)

// DefaultMaxDepth bounds container nesting during decode and encode.
// Adversarial inputs past the limit fail with ErrNestingTooDeep
// instead of exhausting the stack.
const DefaultMaxDepth = 128

// DecodeOptions configures the decoder.
type DecodeOptions struct {
	// MaxDepth overrides DefaultMaxDepth when positive.
	MaxDepth int

	// Strict rejects duplicate object keys with ErrDuplicateObjectKey.
	// The default keeps the last member for a repeated key.
	Strict bool

	// Order is the iteration-order policy of every Map and Set the
	// decoder constructs.
	Order MapOrder
}

// Parse decodes TJSON text into a Value tree.
func Parse(input string) (*Value, error) {
	return ParseWithOptions(input, DecodeOptions{})
}

// Unmarshal decodes TJSON bytes into a Value tree.
func Unmarshal(data []byte) (*Value, error) {
	return Parse(string(data))
}

// DecodeFrom reads r to the end and decodes it as one TJSON document.
func DecodeFrom(r io.Reader) (*Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

// ParseWithOptions decodes with explicit options.
func ParseWithOptions(input string, opts DecodeOptions) (*Value, error) {
	tokens, err := NewLexer(input).Tokenize()
	if err != nil {
		return nil, err
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	d := &decoder{stream: NewTokenStream(tokens), opts: opts}
	v, err := d.decodeDocument()
	if err != nil {
		return nil, err
	}
	return v, nil
}

// decoder drives the token stream and the tag grammar to materialize a
// Value tree. A failed decode of any subtree propagates immediately:
// no partially built sibling is ever attached to a reported failure.
type decoder struct {
	stream *TokenStream
	opts   DecodeOptions
}

// decodeDocument decodes the root object and requires the input to end
// after it.
func (d *decoder) decodeDocument() (*Value, error) {
	tok := d.stream.Peek()
	if tok.Type != TokenLBrace {
		return nil, errAt(ErrTagMismatch, tok.Pos,
			"document root must be an object, got %s", tok.Type)
	}
	v, err := d.decodeObject(1)
	if err != nil {
		return nil, err
	}
	if !d.stream.AtEnd() {
		trailing := d.stream.Peek()
		return nil, errAt(ErrLex, trailing.Pos, "trailing content after document")
	}
	return v, nil
}

// decodeObject decodes { "name:tag": value, ... }. Each member name
// passes through the tag grammar before its value is decoded.
func (d *decoder) decodeObject(depth int) (*Value, error) {
	if depth > d.opts.MaxDepth {
		return nil, errAt(ErrNestingTooDeep, d.stream.Peek().Pos,
			"nesting exceeds %d levels", d.opts.MaxDepth)
	}
	d.stream.Advance() // consume {

	m := NewMapWith(d.opts.Order)
	if d.stream.Match(TokenRBrace) {
		return FromMap(m), nil
	}

	for {
		keyTok, err := d.stream.Expect(TokenString)
		if err != nil {
			return nil, err
		}
		base, tag, err := ParseMemberName(keyTok.Text)
		if err != nil {
			tagErr := err.(*Error)
			tagErr.Pos = keyTok.Pos
			return nil, tagErr
		}
		// O describes composite elements only; an object member is
		// structurally evident and carries no tag.
		if tag != nil && tag.Kind == TagObject {
			return nil, errAt(ErrInvalidTag, keyTok.Pos,
				"tag O is valid only inside a composite tag")
		}
		if _, err := d.stream.Expect(TokenColon); err != nil {
			return nil, err
		}

		v, err := d.decodeMember(tag, depth)
		if err != nil {
			return nil, err
		}
		if m.Contains(base) && d.opts.Strict {
			return nil, errAt(ErrDuplicateObjectKey, keyTok.Pos,
				"duplicate object key %q", base)
		}
		m.Set(base, v)

		if d.stream.Match(TokenRBrace) {
			return FromMap(m), nil
		}
		if _, err := d.stream.Expect(TokenComma); err != nil {
			return nil, err
		}
	}
}

// decodeMember decodes one member value under its tag. A nil tag is
// only valid for the structurally evident shapes (object, array); a
// scalar literal without a tag fails with ErrMissingTag.
func (d *decoder) decodeMember(tag *Tag, depth int) (*Value, error) {
	tok := d.stream.Peek()
	if tok.Type == TokenNull {
		return nil, errAt(ErrTagMismatch, tok.Pos, "TJSON has no null")
	}
	if tok.Type == TokenEOF {
		return nil, errAt(ErrUnexpectedEOF, tok.Pos, "expected a value")
	}

	if tag == nil {
		switch tok.Type {
		case TokenLBrace:
			return d.decodeObject(depth + 1)
		case TokenLBracket:
			return d.decodeUntaggedArray(depth + 1)
		default:
			return nil, errAt(ErrMissingTag, tok.Pos,
				"scalar member requires a tag")
		}
	}

	switch tag.Kind {
	case TagBool:
		return d.decodeBool()
	case TagData:
		return d.decodeData()
	case TagFloat:
		return d.decodeFloat()
	case TagInt:
		return d.decodeInt()
	case TagUint:
		return d.decodeUint()
	case TagString:
		tok, err := d.expectShape(TokenString, "s", "string")
		if err != nil {
			return nil, err
		}
		return Str(tok.Text), nil
	case TagTimestamp:
		return d.decodeTimestamp()
	case TagObject:
		if d.stream.Peek().Type != TokenLBrace {
			return nil, errAt(ErrTagMismatch, d.stream.Peek().Pos,
				"tag O requires an object literal, got %s", d.stream.Peek().Type)
		}
		return d.decodeObject(depth + 1)
	case TagArray:
		return d.decodeTaggedArray(tag.Elem, depth+1)
	default: // TagSet
		return d.decodeTaggedSet(tag.Elem, depth+1)
	}
}

func (d *decoder) decodeBool() (*Value, error) {
	tok := d.stream.Peek()
	switch tok.Type {
	case TokenTrue:
		d.stream.Advance()
		return Bool(true), nil
	case TokenFalse:
		d.stream.Advance()
		return Bool(false), nil
	default:
		return nil, errAt(ErrTagMismatch, tok.Pos,
			"tag b requires a boolean literal, got %s", tok.Type)
	}
}

func (d *decoder) decodeData() (*Value, error) {
	tok, err := d.expectShape(TokenString, "d", "string")
	if err != nil {
		return nil, err
	}
	raw, err := base64.StdEncoding.Strict().DecodeString(tok.Text)
	if err != nil {
		return nil, errAt(ErrInvalidData, tok.Pos, "bad base64: %v", err)
	}
	return Data(raw), nil
}

func (d *decoder) decodeFloat() (*Value, error) {
	tok, err := d.expectShape(TokenNumber, "f", "number")
	if err != nil {
		return nil, err
	}
	f, perr := strconv.ParseFloat(tok.Text, 64)
	if perr != nil {
		// Lexically valid JSON numbers only fail here by overflowing
		// to an infinity.
		return nil, errAt(ErrInvalidNumber, tok.Pos,
			"float literal %s is not finite in 64 bits", tok.Text)
	}
	v, ferr := Float(f)
	if ferr != nil {
		return nil, errAt(ErrInvalidNumber, tok.Pos,
			"float literal %s is not finite in 64 bits", tok.Text)
	}
	return v, nil
}

// decodeInt accepts a bare number literal or a quoted decimal string;
// the quoted form survives transports that round JSON numbers through
// float64.
func (d *decoder) decodeInt() (*Value, error) {
	text, pos, err := d.integerLiteral("i")
	if err != nil {
		return nil, err
	}
	i, perr := strconv.ParseInt(text, 10, 64)
	if perr != nil {
		return nil, errAt(ErrNumberOutOfRange, pos,
			"integer %s does not fit in a signed 64-bit value", text)
	}
	return Int(i), nil
}

func (d *decoder) decodeUint() (*Value, error) {
	text, pos, err := d.integerLiteral("u")
	if err != nil {
		return nil, err
	}
	u, perr := strconv.ParseUint(text, 10, 64)
	if perr != nil {
		return nil, errAt(ErrNumberOutOfRange, pos,
			"integer %s does not fit in an unsigned 64-bit value", text)
	}
	return Uint(u), nil
}

// integerLiteral consumes an integer-shaped literal for tag i or u:
// a JSON number with no fraction or exponent, bare or quoted.
func (d *decoder) integerLiteral(tagName string) (string, Position, error) {
	tok := d.stream.Peek()
	switch tok.Type {
	case TokenNumber, TokenString:
		d.stream.Advance()
	default:
		return "", tok.Pos, errAt(ErrTagMismatch, tok.Pos,
			"tag %s requires a decimal integer literal, got %s", tagName, tok.Type)
	}
	if !isDecimalInteger(tok.Text) {
		return "", tok.Pos, errAt(ErrTagMismatch, tok.Pos,
			"tag %s requires a decimal integer literal, got %q", tagName, tok.Text)
	}
	return tok.Text, tok.Pos, nil
}

// isDecimalInteger reports whether s is an optionally signed decimal
// integer with no leading zeros (the canonical JSON integer shape).
func isDecimalInteger(s string) bool {
	if strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	if s[0] == '0' && len(s) > 1 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func (d *decoder) decodeTimestamp() (*Value, error) {
	tok, err := d.expectShape(TokenString, "t", "string")
	if err != nil {
		return nil, err
	}
	t, perr := time.Parse(time.RFC3339, tok.Text)
	if perr != nil {
		return nil, errAt(ErrInvalidTimestamp, tok.Pos,
			"malformed RFC 3339 timestamp %q", tok.Text)
	}
	return Timestamp(t), nil
}

func (d *decoder) decodeTaggedArray(elem *Tag, depth int) (*Value, error) {
	elems, err := d.decodeElements(elem, depth, "A")
	if err != nil {
		return nil, err
	}
	return Array(elems...), nil
}

func (d *decoder) decodeTaggedSet(elem *Tag, depth int) (*Value, error) {
	elems, err := d.decodeElementsWith(elem, depth, "S", func(s *Set, v *Value, pos Position) error {
		if !s.Add(v) {
			return errAt(ErrDuplicateSetElement, pos, "duplicate set element")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromSet(elems), nil
}

// decodeElements decodes a JSON array whose elements all decode under
// the inner tag.
func (d *decoder) decodeElements(elem *Tag, depth int, tagName string) ([]*Value, error) {
	if depth > d.opts.MaxDepth {
		return nil, errAt(ErrNestingTooDeep, d.stream.Peek().Pos,
			"nesting exceeds %d levels", d.opts.MaxDepth)
	}
	tok := d.stream.Peek()
	if tok.Type != TokenLBracket {
		return nil, errAt(ErrTagMismatch, tok.Pos,
			"tag %s requires an array literal, got %s", tagName, tok.Type)
	}
	d.stream.Advance()

	var elems []*Value
	if d.stream.Match(TokenRBracket) {
		return elems, nil
	}
	for {
		v, err := d.decodeMember(elem, depth)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
		if d.stream.Match(TokenRBracket) {
			return elems, nil
		}
		if _, err := d.stream.Expect(TokenComma); err != nil {
			return nil, err
		}
	}
}

// decodeElementsWith is decodeElements collecting into a Set, with a
// per-element insert hook carrying the element position.
func (d *decoder) decodeElementsWith(elem *Tag, depth int, tagName string,
	insert func(*Set, *Value, Position) error) (*Set, error) {
	if depth > d.opts.MaxDepth {
		return nil, errAt(ErrNestingTooDeep, d.stream.Peek().Pos,
			"nesting exceeds %d levels", d.opts.MaxDepth)
	}
	tok := d.stream.Peek()
	if tok.Type != TokenLBracket {
		return nil, errAt(ErrTagMismatch, tok.Pos,
			"tag %s requires an array literal, got %s", tagName, tok.Type)
	}
	d.stream.Advance()

	s := NewSetWith(d.opts.Order)
	if d.stream.Match(TokenRBracket) {
		return s, nil
	}
	for {
		elemPos := d.stream.Peek().Pos
		v, err := d.decodeMember(elem, depth)
		if err != nil {
			return nil, err
		}
		if err := insert(s, v, elemPos); err != nil {
			return nil, err
		}
		if d.stream.Match(TokenRBracket) {
			return s, nil
		}
		if _, err := d.stream.Expect(TokenComma); err != nil {
			return nil, err
		}
	}
}

// decodeUntaggedArray decodes an array member that carries no tag.
// Elements must be structurally evident (objects or arrays); a scalar
// element has no tag to decode under.
func (d *decoder) decodeUntaggedArray(depth int) (*Value, error) {
	return d.decodeTaggedArray(nil, depth)
}

// expectShape consumes a token of the required type or fails with a
// TagMismatch naming the tag.
func (d *decoder) expectShape(typ TokenType, tagName, shape string) (Token, error) {
	tok := d.stream.Peek()
	if tok.Type != typ {
		return Token{}, errAt(ErrTagMismatch, tok.Pos,
			"tag %s requires a %s literal, got %s", tagName, shape, tok.Type)
	}
	d.stream.Advance()
	return tok, nil
}
