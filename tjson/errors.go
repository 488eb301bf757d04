package tjson

import "fmt"

// ErrKind classifies a codec failure.
type ErrKind uint8

const (
	ErrLex ErrKind = iota + 1
	ErrUnexpectedEOF
	ErrMissingTag
	ErrInvalidTag
	ErrTagMismatch
	ErrNumberOutOfRange
	ErrInvalidNumber
	ErrInvalidData
	ErrInvalidTimestamp
	ErrDuplicateSetElement
	ErrDuplicateObjectKey
	ErrNestingTooDeep
)

// String returns the kind name.
func (k ErrKind) String() string {
	switch k {
	case ErrLex:
		return "lex error"
	case ErrUnexpectedEOF:
		return "unexpected end of input"
	case ErrMissingTag:
		return "missing tag"
	case ErrInvalidTag:
		return "invalid tag"
	case ErrTagMismatch:
		return "tag mismatch"
	case ErrNumberOutOfRange:
		return "number out of range"
	case ErrInvalidNumber:
		return "invalid number"
	case ErrInvalidData:
		return "invalid data"
	case ErrInvalidTimestamp:
		return "invalid timestamp"
	case ErrDuplicateSetElement:
		return "duplicate set element"
	case ErrDuplicateObjectKey:
		return "duplicate object key"
	case ErrNestingTooDeep:
		return "nesting too deep"
	default:
		return "unknown"
	}
}

// Position is a source location in TJSON text. Line and Column are
// 1-based; Offset is the byte offset from the start of the input.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

func (p Position) isZero() bool {
	return p.Line == 0
}

// Error is a typed codec failure. Pos is the zero value for failures
// that have no text location (programmatic construction, encoding).
type Error struct {
	Kind    ErrKind
	Message string
	Pos     Position
}

func (e *Error) Error() string {
	if e.Pos.isZero() {
		return "tjson: " + e.Message
	}
	return fmt.Sprintf("tjson: %s at %s", e.Message, e.Pos)
}

func errf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func errAt(kind ErrKind, pos Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}
