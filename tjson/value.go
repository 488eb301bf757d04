package tjson

import (
	"bytes"
	"time"
)

// Type identifies the active variant of a Value.
type Type uint8

const (
	TypeUndefined Type = iota
	TypeBool
	TypeData
	TypeNumber
	TypeString
	TypeTimestamp
	TypeArray
	TypeSet
	TypeObject
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeUndefined:
		return "undefined"
	case TypeBool:
		return "bool"
	case TypeData:
		return "data"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeTimestamp:
		return "timestamp"
	case TypeArray:
		return "array"
	case TypeSet:
		return "set"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a TJSON value: exactly one variant is active, given by
// Type(). A Value owns its children exclusively; trees never share or
// cycle. The zero Value is Undefined, the absence marker (TJSON has no
// null and Undefined has no wire form).
type Value struct {
	typ Type

	// Scalar storage (one valid per typ)
	boolVal bool
	dataVal []byte
	numVal  Number
	strVal  string
	timeVal time.Time

	// Container storage
	arrVal []*Value
	setVal *Set
	objVal *Map
}

// Undefined returns the absence marker.
func Undefined() *Value {
	return &Value{}
}

// Bool returns a boolean Value.
func Bool(b bool) *Value {
	return &Value{typ: TypeBool, boolVal: b}
}

// Data returns a binary data Value.
func Data(b []byte) *Value {
	return &Value{typ: TypeData, dataVal: b}
}

// Int returns a signed integer Value.
func Int(i int64) *Value {
	return &Value{typ: TypeNumber, numVal: NumberFromInt64(i)}
}

// Uint returns an unsigned integer Value.
func Uint(u uint64) *Value {
	return &Value{typ: TypeNumber, numVal: NumberFromUint64(u)}
}

// Float returns a float Value. NaN and infinities fail with
// ErrInvalidNumber.
func Float(f float64) (*Value, error) {
	n, err := NumberFromFloat64(f)
	if err != nil {
		return nil, err
	}
	return &Value{typ: TypeNumber, numVal: n}, nil
}

// Num returns a numeric Value holding n.
func Num(n Number) *Value {
	return &Value{typ: TypeNumber, numVal: n}
}

// Str returns a string Value.
func Str(s string) *Value {
	return &Value{typ: TypeString, strVal: s}
}

// Timestamp returns a timestamp Value. The instant is normalized to
// UTC and truncated to whole seconds, the precision of the canonical
// wire form.
func Timestamp(t time.Time) *Value {
	return &Value{typ: TypeTimestamp, timeVal: t.UTC().Truncate(time.Second)}
}

// Array returns an array Value of the given elements.
func Array(elems ...*Value) *Value {
	return &Value{typ: TypeArray, arrVal: elems}
}

// SetOf returns a set Value of the given elements, with the sorted
// order policy. Duplicate elements collapse.
func SetOf(elems ...*Value) *Value {
	s := NewSet()
	for _, e := range elems {
		s.Add(e)
	}
	return FromSet(s)
}

// Object returns an object Value of the given entries, backed by a Map
// with the sorted order policy. Duplicate keys keep the last value.
func Object(entries ...MapEntry) *Value {
	m := NewMap()
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return FromMap(m)
}

// Field builds a MapEntry for use with Object.
func Field(key string, v *Value) MapEntry {
	return MapEntry{Key: key, Value: v}
}

// FromMap returns an object Value backed by m. A nil m is an empty
// sorted Map.
func FromMap(m *Map) *Value {
	if m == nil {
		m = NewMap()
	}
	return &Value{typ: TypeObject, objVal: m}
}

// FromSet returns a set Value backed by s. A nil s is an empty sorted
// Set.
func FromSet(s *Set) *Value {
	if s == nil {
		s = NewSet()
	}
	return &Value{typ: TypeSet, setVal: s}
}

// Type returns the active variant. A nil Value is Undefined.
func (v *Value) Type() Type {
	if v == nil {
		return TypeUndefined
	}
	return v.typ
}

// IsUndefined reports whether the Value is the absence marker.
func (v *Value) IsUndefined() bool { return v.Type() == TypeUndefined }

// IsBool reports whether the Value is a boolean.
func (v *Value) IsBool() bool { return v.Type() == TypeBool }

// IsData reports whether the Value is binary data.
func (v *Value) IsData() bool { return v.Type() == TypeData }

// IsNumber reports whether the Value is a number of any kind.
func (v *Value) IsNumber() bool { return v.Type() == TypeNumber }

// IsInt64 reports whether the Value is a signed integer number.
func (v *Value) IsInt64() bool { return v.Type() == TypeNumber && v.numVal.IsInt64() }

// IsUint64 reports whether the Value is an unsigned integer number.
func (v *Value) IsUint64() bool { return v.Type() == TypeNumber && v.numVal.IsUint64() }

// IsFloat64 reports whether the Value is a float number.
func (v *Value) IsFloat64() bool { return v.Type() == TypeNumber && v.numVal.IsFloat64() }

// IsString reports whether the Value is a string.
func (v *Value) IsString() bool { return v.Type() == TypeString }

// IsTimestamp reports whether the Value is a timestamp.
func (v *Value) IsTimestamp() bool { return v.Type() == TypeTimestamp }

// IsArray reports whether the Value is an array.
func (v *Value) IsArray() bool { return v.Type() == TypeArray }

// IsSet reports whether the Value is a set.
func (v *Value) IsSet() bool { return v.Type() == TypeSet }

// IsObject reports whether the Value is an object.
func (v *Value) IsObject() bool { return v.Type() == TypeObject }

// AsBool returns the boolean value. The second result is false when
// the active variant is not a boolean.
func (v *Value) AsBool() (bool, bool) {
	if v.Type() != TypeBool {
		return false, false
	}
	return v.boolVal, true
}

// AsData returns the binary data.
func (v *Value) AsData() ([]byte, bool) {
	if v.Type() != TypeData {
		return nil, false
	}
	return v.dataVal, true
}

// AsNumber returns the Number.
func (v *Value) AsNumber() (Number, bool) {
	if v.Type() != TypeNumber {
		return Number{}, false
	}
	return v.numVal, true
}

// AsInt64 returns the signed integer value, if the Value is a number
// of the signed kind.
func (v *Value) AsInt64() (int64, bool) {
	if v.Type() != TypeNumber {
		return 0, false
	}
	return v.numVal.Int64()
}

// AsUint64 returns the unsigned integer value, if the Value is a
// number of the unsigned kind.
func (v *Value) AsUint64() (uint64, bool) {
	if v.Type() != TypeNumber {
		return 0, false
	}
	return v.numVal.Uint64()
}

// AsFloat64 returns the float value, if the Value is a number of the
// float kind.
func (v *Value) AsFloat64() (float64, bool) {
	if v.Type() != TypeNumber {
		return 0, false
	}
	return v.numVal.Float64()
}

// AsStr returns the string value.
func (v *Value) AsStr() (string, bool) {
	if v.Type() != TypeString {
		return "", false
	}
	return v.strVal, true
}

// AsTimestamp returns the timestamp (always UTC).
func (v *Value) AsTimestamp() (time.Time, bool) {
	if v.Type() != TypeTimestamp {
		return time.Time{}, false
	}
	return v.timeVal, true
}

// AsArray returns the element slice. Mutating the slice elements
// mutates the tree.
func (v *Value) AsArray() ([]*Value, bool) {
	if v.Type() != TypeArray {
		return nil, false
	}
	return v.arrVal, true
}

// AsSet returns the backing Set.
func (v *Value) AsSet() (*Set, bool) {
	if v.Type() != TypeSet {
		return nil, false
	}
	return v.setVal, true
}

// AsObject returns the backing Map.
func (v *Value) AsObject() (*Map, bool) {
	if v.Type() != TypeObject {
		return nil, false
	}
	return v.objVal, true
}

// Equal reports deep structural equality. Container comparison is
// order-independent for objects and sets, elementwise for arrays.
// Equal and Compare agree: Equal(a, b) iff Compare(a, b) == 0.
func (v *Value) Equal(other *Value) bool {
	return v.Compare(other) == 0
}

// Compare is a total order over all Values: -1, 0 or +1. Values of
// different types order by type rank (Undefined < Bool < Data < Number
// < String < Timestamp < Array < Set < Object); within a type the
// order is structural. Numbers order by magnitude across kinds.
func (v *Value) Compare(other *Value) int {
	vt, ot := v.Type(), other.Type()
	if vt != ot {
		return cmpOrdered(int64(vt), int64(ot))
	}
	switch vt {
	case TypeUndefined:
		return 0
	case TypeBool:
		if v.boolVal == other.boolVal {
			return 0
		}
		if !v.boolVal {
			return -1
		}
		return 1
	case TypeData:
		return bytes.Compare(v.dataVal, other.dataVal)
	case TypeNumber:
		return v.numVal.Compare(other.numVal)
	case TypeString:
		if v.strVal == other.strVal {
			return 0
		}
		if v.strVal < other.strVal {
			return -1
		}
		return 1
	case TypeTimestamp:
		return cmpOrdered(v.timeVal.Unix(), other.timeVal.Unix())
	case TypeArray:
		for i := 0; i < len(v.arrVal) && i < len(other.arrVal); i++ {
			if c := v.arrVal[i].Compare(other.arrVal[i]); c != 0 {
				return c
			}
		}
		return cmpOrdered(int64(len(v.arrVal)), int64(len(other.arrVal)))
	case TypeSet:
		return compareSets(v.setVal, other.setVal)
	default:
		return compareMaps(v.objVal, other.objVal)
	}
}

// Clone returns a deep copy of the tree.
func (v *Value) Clone() *Value {
	if v == nil {
		return Undefined()
	}
	out := &Value{typ: v.typ}
	switch v.typ {
	case TypeBool:
		out.boolVal = v.boolVal
	case TypeData:
		out.dataVal = append([]byte(nil), v.dataVal...)
	case TypeNumber:
		out.numVal = v.numVal
	case TypeString:
		out.strVal = v.strVal
	case TypeTimestamp:
		out.timeVal = v.timeVal
	case TypeArray:
		out.arrVal = make([]*Value, len(v.arrVal))
		for i, e := range v.arrVal {
			out.arrVal[i] = e.Clone()
		}
	case TypeSet:
		out.setVal = v.setVal.Clone()
	case TypeObject:
		out.objVal = v.objVal.Clone()
	}
	return out
}
