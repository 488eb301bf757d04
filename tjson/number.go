package tjson

import (
	"math"
	"strconv"
	"strings"
)

// numberKind discriminates the three numeric representations.
type numberKind uint8

const (
	numSigned numberKind = iota
	numUnsigned
	numFloat
)

// Number is a TJSON number: a signed 64-bit integer, an unsigned
// 64-bit integer, or a finite 64-bit float. The float representation
// never holds NaN or an infinity.
//
// Equality and ordering are total across the three kinds and follow
// mathematical magnitude: NumberFromInt64(5) equals NumberFromUint64(5)
// and the two occupy a single ordering slot. Kind is never a tie-break.
type Number struct {
	kind numberKind
	i    int64
	u    uint64
	f    float64
}

// NumberFromInt64 returns a signed integer Number.
func NumberFromInt64(i int64) Number {
	return Number{kind: numSigned, i: i}
}

// NumberFromUint64 returns an unsigned integer Number.
func NumberFromUint64(u uint64) Number {
	return Number{kind: numUnsigned, u: u}
}

// NumberFromFloat64 returns a float Number. NaN and infinities are not
// TJSON numbers and fail with an ErrInvalidNumber error.
func NumberFromFloat64(f float64) (Number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}, errf(ErrInvalidNumber, "non-finite float %v is not a TJSON number", f)
	}
	return Number{kind: numFloat, f: f}, nil
}

// IsInt64 reports whether the Number holds a signed integer.
func (n Number) IsInt64() bool { return n.kind == numSigned }

// IsUint64 reports whether the Number holds an unsigned integer.
func (n Number) IsUint64() bool { return n.kind == numUnsigned }

// IsFloat64 reports whether the Number holds a float.
func (n Number) IsFloat64() bool { return n.kind == numFloat }

// Int64 returns the signed integer value, if that is the stored kind.
func (n Number) Int64() (int64, bool) {
	if n.kind != numSigned {
		return 0, false
	}
	return n.i, true
}

// Uint64 returns the unsigned integer value, if that is the stored kind.
func (n Number) Uint64() (uint64, bool) {
	if n.kind != numUnsigned {
		return 0, false
	}
	return n.u, true
}

// Float64 returns the float value, if that is the stored kind.
func (n Number) Float64() (float64, bool) {
	if n.kind != numFloat {
		return 0, false
	}
	return n.f, true
}

// String returns the canonical decimal text: integers without a
// decimal point, floats in shortest round-trip form with a decimal
// point or exponent.
func (n Number) String() string {
	switch n.kind {
	case numSigned:
		return strconv.FormatInt(n.i, 10)
	case numUnsigned:
		return strconv.FormatUint(n.u, 10)
	default:
		return formatFloat(n.f)
	}
}

// formatFloat renders the canonical float text: shortest form that
// round-trips, always carrying a decimal point or exponent so the text
// is distinguishable from an integer. -0 normalizes to 0.
func formatFloat(f float64) string {
	if f == 0 {
		return "0.0"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// Exact float bounds of the two integer domains. 2^63 and 2^64 are
// both representable in a float64.
const (
	maxInt64Float  = 9223372036854775808.0  // 2^63
	maxUint64Float = 18446744073709551616.0 // 2^64
)

// Compare returns -1, 0 or +1 ordering n against other by mathematical
// magnitude. The comparison is exact for every representable pair:
// integers are never rounded through float64.
func (n Number) Compare(other Number) int {
	switch {
	case n.kind == numSigned && other.kind == numSigned:
		return cmpOrdered(n.i, other.i)
	case n.kind == numUnsigned && other.kind == numUnsigned:
		return cmpOrdered(n.u, other.u)
	case n.kind == numFloat && other.kind == numFloat:
		return cmpOrdered(n.f, other.f)
	case n.kind == numSigned && other.kind == numUnsigned:
		return cmpIntUint(n.i, other.u)
	case n.kind == numUnsigned && other.kind == numSigned:
		return -cmpIntUint(other.i, n.u)
	case n.kind == numSigned && other.kind == numFloat:
		return cmpIntFloat(n.i, other.f)
	case n.kind == numFloat && other.kind == numSigned:
		return -cmpIntFloat(other.i, n.f)
	case n.kind == numUnsigned && other.kind == numFloat:
		return cmpUintFloat(n.u, other.f)
	default: // float vs unsigned
		return -cmpUintFloat(other.u, n.f)
	}
}

// Equal reports whether the two numbers denote the same magnitude,
// regardless of kind.
func (n Number) Equal(other Number) bool {
	return n.Compare(other) == 0
}

func cmpOrdered[T int64 | uint64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpIntUint(i int64, u uint64) int {
	if i < 0 {
		return -1
	}
	return cmpOrdered(uint64(i), u)
}

func cmpIntFloat(i int64, f float64) int {
	if f >= maxInt64Float {
		return -1
	}
	if f < -maxInt64Float {
		return 1
	}
	// f is within int64 range: compare against its truncation, then
	// let any fractional part break the tie.
	t := int64(f)
	if c := cmpOrdered(i, t); c != 0 {
		return c
	}
	frac := f - math.Trunc(f)
	switch {
	case frac > 0:
		return -1
	case frac < 0:
		return 1
	default:
		return 0
	}
}

func cmpUintFloat(u uint64, f float64) int {
	if f < 0 {
		return 1
	}
	if f >= maxUint64Float {
		return -1
	}
	t := uint64(f)
	if c := cmpOrdered(u, t); c != 0 {
		return c
	}
	if f-math.Trunc(f) > 0 {
		return -1
	}
	return 0
}
