package tjson

import (
	"math/big"
	"reflect"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// CBOR carriage for Value trees: a deterministic binary interchange
// that preserves every TJSON kind. Objects map to CBOR maps, arrays to
// arrays, sets to tag 258 (mathematical finite set) around an array,
// timestamps to tag 0 (RFC 3339 text), data to byte strings, and
// numbers to the native int/uint/float encodings.
//
// Within CBOR a non-negative integer has a single encoding, so a
// signed Number with a non-negative magnitude decodes back as the
// unsigned kind. The trees still compare Equal: cross-kind number
// equality is magnitude-based.

const (
	cborTagTimestamp = 0   // RFC 3339 text (RFC 8949 §3.4.1)
	cborTagSet       = 258 // mathematical finite set
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Same logical data always
// produces identical bytes.
var encMode cbor.EncMode

// decMode is the CBOR decoder. IntDecConvertNone keeps the major-type
// sign distinction (non-negative integers decode as uint64, negative
// as int64) so Number kinds survive the trip.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("tjson: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		IntDec:         cbor.IntDecConvertNone,
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("tjson: CBOR decoder initialization failed: " + err.Error())
	}
}

// MarshalCBOR encodes a Value tree to deterministic CBOR bytes.
// Undefined has no wire form, in CBOR as in text.
func MarshalCBOR(v *Value) ([]byte, error) {
	raw, err := toCBOR(v)
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(raw)
}

// UnmarshalCBOR decodes CBOR bytes produced by MarshalCBOR (or any
// CBOR document over the same vocabulary) into a Value tree.
func UnmarshalCBOR(data []byte) (*Value, error) {
	var raw any
	if err := decMode.Unmarshal(data, &raw); err != nil {
		return nil, errf(ErrLex, "malformed CBOR: %v", err)
	}
	return fromCBOR(raw)
}

func toCBOR(v *Value) (any, error) {
	switch v.Type() {
	case TypeBool:
		return v.boolVal, nil
	case TypeData:
		if v.dataVal == nil {
			return []byte{}, nil
		}
		return v.dataVal, nil
	case TypeNumber:
		switch {
		case v.numVal.IsInt64():
			return v.numVal.i, nil
		case v.numVal.IsUint64():
			return v.numVal.u, nil
		default:
			return v.numVal.f, nil
		}
	case TypeString:
		return v.strVal, nil
	case TypeTimestamp:
		return cbor.Tag{
			Number:  cborTagTimestamp,
			Content: v.timeVal.Format("2006-01-02T15:04:05Z"),
		}, nil
	case TypeArray:
		return sliceToCBOR(v.arrVal)
	case TypeSet:
		elems, err := sliceToCBOR(v.setVal.Elements())
		if err != nil {
			return nil, err
		}
		return cbor.Tag{Number: cborTagSet, Content: elems}, nil
	case TypeObject:
		out := make(map[string]any, v.objVal.Len())
		for _, entry := range v.objVal.Entries() {
			c, err := toCBOR(entry.Value)
			if err != nil {
				return nil, err
			}
			out[entry.Key] = c
		}
		return out, nil
	default:
		return nil, errf(ErrTagMismatch, "undefined value has no wire form")
	}
}

func sliceToCBOR(elems []*Value) ([]any, error) {
	out := make([]any, len(elems))
	for i, e := range elems {
		c, err := toCBOR(e)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func fromCBOR(raw any) (*Value, error) {
	switch x := raw.(type) {
	case bool:
		return Bool(x), nil
	case []byte:
		return Data(x), nil
	case uint64:
		return Uint(x), nil
	case int64:
		return Int(x), nil
	case float64:
		v, err := Float(x)
		if err != nil {
			return nil, errf(ErrInvalidNumber, "non-finite float in CBOR input")
		}
		return v, nil
	case string:
		return Str(x), nil
	case time.Time:
		return Timestamp(x), nil
	case big.Int, *big.Int:
		return nil, errf(ErrNumberOutOfRange, "CBOR integer exceeds 64 bits")
	case []any:
		elems := make([]*Value, len(x))
		for i, e := range x {
			v, err := fromCBOR(e)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return Array(elems...), nil
	case map[string]any:
		m := NewMap()
		for k, e := range x {
			v, err := fromCBOR(e)
			if err != nil {
				return nil, err
			}
			m.Set(k, v)
		}
		return FromMap(m), nil
	case cbor.Tag:
		return taggedFromCBOR(x)
	default:
		return nil, errf(ErrTagMismatch, "CBOR type %T has no TJSON mapping", raw)
	}
}

func taggedFromCBOR(t cbor.Tag) (*Value, error) {
	switch t.Number {
	case cborTagTimestamp:
		text, ok := t.Content.(string)
		if !ok {
			return nil, errf(ErrInvalidTimestamp, "CBOR tag 0 content is %T, want text", t.Content)
		}
		ts, err := time.Parse(time.RFC3339, text)
		if err != nil {
			return nil, errf(ErrInvalidTimestamp, "malformed RFC 3339 timestamp %q", text)
		}
		return Timestamp(ts), nil
	case cborTagSet:
		elems, ok := t.Content.([]any)
		if !ok {
			return nil, errf(ErrTagMismatch, "CBOR tag 258 content is %T, want array", t.Content)
		}
		s := NewSet()
		for _, e := range elems {
			v, err := fromCBOR(e)
			if err != nil {
				return nil, err
			}
			if !s.Add(v) {
				return nil, errf(ErrDuplicateSetElement, "duplicate set element in CBOR input")
			}
		}
		return FromSet(s), nil
	default:
		return nil, errf(ErrTagMismatch, "CBOR tag %d has no TJSON mapping", t.Number)
	}
}
