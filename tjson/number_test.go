package tjson

import (
	"math"
	"testing"
)

func TestNumberConstructors(t *testing.T) {
	n := NumberFromInt64(-42)
	if !n.IsInt64() || n.IsUint64() || n.IsFloat64() {
		t.Errorf("NumberFromInt64 kind flags wrong: %+v", n)
	}
	if i, ok := n.Int64(); !ok || i != -42 {
		t.Errorf("Int64() = (%d, %v), expected (-42, true)", i, ok)
	}
	if _, ok := n.Uint64(); ok {
		t.Error("Uint64() succeeded on a signed number")
	}

	u := NumberFromUint64(math.MaxUint64)
	if got, ok := u.Uint64(); !ok || got != math.MaxUint64 {
		t.Errorf("Uint64() = (%d, %v), expected (MaxUint64, true)", got, ok)
	}

	f, err := NumberFromFloat64(0.42)
	if err != nil {
		t.Fatalf("NumberFromFloat64(0.42) failed: %v", err)
	}
	if got, ok := f.Float64(); !ok || got != 0.42 {
		t.Errorf("Float64() = (%v, %v), expected (0.42, true)", got, ok)
	}
}

func TestNumberRejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := NumberFromFloat64(f)
		if err == nil {
			t.Errorf("NumberFromFloat64(%v) succeeded, expected error", f)
			continue
		}
		if kind := err.(*Error).Kind; kind != ErrInvalidNumber {
			t.Errorf("NumberFromFloat64(%v) error kind = %v, expected ErrInvalidNumber", f, kind)
		}
	}
}

func TestNumberString(t *testing.T) {
	mustFloat := func(f float64) Number {
		n, err := NumberFromFloat64(f)
		if err != nil {
			t.Fatalf("NumberFromFloat64(%v) failed: %v", f, err)
		}
		return n
	}

	tests := []struct {
		name string
		n    Number
		want string
	}{
		{"int", NumberFromInt64(42), "42"},
		{"negative int", NumberFromInt64(-7), "-7"},
		{"min int64", NumberFromInt64(math.MinInt64), "-9223372036854775808"},
		{"uint", NumberFromUint64(18446744073709551615), "18446744073709551615"},
		{"fraction", mustFloat(0.42), "0.42"},
		{"whole float keeps point", mustFloat(256.0), "256.0"},
		{"negative zero normalizes", mustFloat(math.Copysign(0, -1)), "0.0"},
		{"zero float", mustFloat(0), "0.0"},
		{"exponent", mustFloat(1e21), "1e+21"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.n.String(); got != tt.want {
				t.Errorf("String() = %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestNumberCrossKindEquality(t *testing.T) {
	five := NumberFromInt64(5)
	ufive := NumberFromUint64(5)
	ffive, _ := NumberFromFloat64(5.0)

	if !five.Equal(ufive) {
		t.Error("int 5 != uint 5")
	}
	if !five.Equal(ffive) {
		t.Error("int 5 != float 5.0")
	}
	if !ufive.Equal(ffive) {
		t.Error("uint 5 != float 5.0")
	}
	if five.Compare(ufive) != 0 || ufive.Compare(five) != 0 {
		t.Error("Compare disagrees with Equal for int/uint 5")
	}
}

func TestNumberCompareTotalOrder(t *testing.T) {
	f := func(x float64) Number {
		n, err := NumberFromFloat64(x)
		if err != nil {
			t.Fatalf("NumberFromFloat64(%v) failed: %v", x, err)
		}
		return n
	}

	tests := []struct {
		name string
		a, b Number
		want int
	}{
		{"int < int", NumberFromInt64(1), NumberFromInt64(2), -1},
		{"negative int < uint zero", NumberFromInt64(-1), NumberFromUint64(0), -1},
		{"uint beyond int64 > max int64", NumberFromUint64(math.MaxInt64 + 1), NumberFromInt64(math.MaxInt64), 1},
		{"int < fractional float above it", NumberFromInt64(5), f(5.5), -1},
		{"int > fractional float below it", NumberFromInt64(5), f(4.5), 1},
		{"float below min int64", NumberFromInt64(math.MinInt64), f(-1e300), 1},
		{"float above max uint64", NumberFromUint64(math.MaxUint64), f(1e300), -1},
		{"negative float < uint", NumberFromUint64(0), f(-0.5), 1},
		{"max uint64 exact vs nearby float", NumberFromUint64(math.MaxUint64), f(18446744073709551616.0), -1},
		{"large int not rounded through float", NumberFromInt64(1<<53 + 1), f(1 << 53), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare = %d, expected %d", got, tt.want)
			}
			if got := tt.b.Compare(tt.a); got != -tt.want {
				t.Errorf("reverse Compare = %d, expected %d", got, -tt.want)
			}
		})
	}
}

func TestNumberFloatTextRoundTrip(t *testing.T) {
	// Canonical text must parse back to the identical float.
	for _, x := range []float64{0.42, 256.0, 1.0 / 3.0, 1e-10, 6.02214076e23} {
		n, err := NumberFromFloat64(x)
		if err != nil {
			t.Fatalf("NumberFromFloat64(%v) failed: %v", x, err)
		}
		doc := `{"v:f":` + n.String() + `}`
		v, err := Parse(doc)
		if err != nil {
			t.Fatalf("Parse(%s) failed: %v", doc, err)
		}
		got, ok := v.At("v").AsFloat64()
		if !ok || got != x {
			t.Errorf("round-trip of %v through %q = %v", x, n.String(), got)
		}
	}
}
