package tjson

import (
	"encoding/base64"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// EncodeOptions configures the canonical emitter.
type EncodeOptions struct {
	// Pretty adds one member or element per line with fixed
	// indentation per nesting level.
	Pretty bool

	// Indent string for pretty mode (default: "  ").
	Indent string

	// MaxDepth overrides DefaultMaxDepth when positive.
	MaxDepth int
}

// Emit renders a Value tree as compact canonical TJSON text: no
// insignificant whitespace, deterministic member order (the tree's own
// iteration order), canonical scalar forms.
func Emit(v *Value) (string, error) {
	return EmitWithOptions(v, EncodeOptions{})
}

// EmitPretty renders with indentation and one member per line.
func EmitPretty(v *Value) (string, error) {
	return EmitWithOptions(v, EncodeOptions{Pretty: true})
}

// Marshal renders compact canonical TJSON bytes.
func Marshal(v *Value) ([]byte, error) {
	s, err := Emit(v)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// MarshalIndent renders pretty TJSON bytes.
func MarshalIndent(v *Value) ([]byte, error) {
	s, err := EmitPretty(v)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// EncodeTo renders compact TJSON text to w.
func EncodeTo(w io.Writer, v *Value) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// EmitWithOptions renders with explicit options.
func EmitWithOptions(v *Value, opts EncodeOptions) (string, error) {
	if !v.IsObject() {
		return "", errf(ErrTagMismatch, "document root must be an object, got %s", v.Type())
	}
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	e := &emitter{opts: opts}
	if err := e.emitObject(v.objVal, 0); err != nil {
		return "", err
	}
	return e.sb.String(), nil
}

// emitter walks a Value tree depth-first, consulting the tag grammar
// for every object member name.
type emitter struct {
	sb   strings.Builder
	opts EncodeOptions
}

func (e *emitter) emitValue(v *Value, depth int) error {
	if depth > e.opts.MaxDepth {
		return errf(ErrNestingTooDeep, "nesting exceeds %d levels", e.opts.MaxDepth)
	}
	switch v.Type() {
	case TypeBool:
		if v.boolVal {
			e.sb.WriteString("true")
		} else {
			e.sb.WriteString("false")
		}
		return nil
	case TypeData:
		return e.emitQuoted(base64.StdEncoding.EncodeToString(v.dataVal))
	case TypeNumber:
		e.sb.WriteString(v.numVal.String())
		return nil
	case TypeString:
		return e.emitQuoted(v.strVal)
	case TypeTimestamp:
		return e.emitQuoted(v.timeVal.Format("2006-01-02T15:04:05Z"))
	case TypeArray:
		return e.emitElements(v.arrVal, depth)
	case TypeSet:
		return e.emitElements(v.setVal.Elements(), depth)
	case TypeObject:
		return e.emitObject(v.objVal, depth)
	default:
		return errf(ErrTagMismatch, "undefined value has no wire form")
	}
}

func (e *emitter) emitObject(m *Map, depth int) error {
	if depth > e.opts.MaxDepth {
		return errf(ErrNestingTooDeep, "nesting exceeds %d levels", e.opts.MaxDepth)
	}
	entries := m.Entries()
	e.sb.WriteString("{")
	for i, entry := range entries {
		if i > 0 {
			e.sb.WriteString(",")
		}
		e.newlineIndent(depth + 1)

		tag, err := DeriveTag(entry.Value)
		if err != nil {
			return err
		}
		if err := e.emitQuoted(RenderMemberName(entry.Key, tag)); err != nil {
			return err
		}
		e.sb.WriteString(":")
		if e.opts.Pretty {
			e.sb.WriteString(" ")
		}
		if err := e.emitValue(entry.Value, depth+1); err != nil {
			return err
		}
	}
	if len(entries) > 0 {
		e.newlineIndent(depth)
	}
	e.sb.WriteString("}")
	return nil
}

func (e *emitter) emitElements(elems []*Value, depth int) error {
	e.sb.WriteString("[")
	for i, elem := range elems {
		if i > 0 {
			e.sb.WriteString(",")
		}
		e.newlineIndent(depth + 1)
		if err := e.emitValue(elem, depth+1); err != nil {
			return err
		}
	}
	if len(elems) > 0 {
		e.newlineIndent(depth)
	}
	e.sb.WriteString("]")
	return nil
}

func (e *emitter) newlineIndent(depth int) {
	if !e.opts.Pretty {
		return
	}
	e.sb.WriteString("\n")
	for i := 0; i < depth; i++ {
		e.sb.WriteString(e.opts.Indent)
	}
}

// emitQuoted writes a JSON string literal with minimal escapes.
// Invalid UTF-8 has no faithful JSON rendering; ranging over it would
// silently substitute U+FFFD, so it fails instead.
func (e *emitter) emitQuoted(s string) error {
	if !utf8.ValidString(s) {
		return errf(ErrInvalidData, "string %q is not valid UTF-8", s)
	}
	e.sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			e.sb.WriteString(`\"`)
		case '\\':
			e.sb.WriteString(`\\`)
		case '\n':
			e.sb.WriteString(`\n`)
		case '\r':
			e.sb.WriteString(`\r`)
		case '\t':
			e.sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				e.sb.WriteString(`\u00`)
				hex := strconv.FormatInt(int64(r), 16)
				if len(hex) == 1 {
					e.sb.WriteByte('0')
				}
				e.sb.WriteString(hex)
			} else {
				e.sb.WriteRune(r)
			}
		}
	}
	e.sb.WriteByte('"')
	return nil
}
