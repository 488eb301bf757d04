package tjson

// Get indexes into an object or array. A string index looks up an
// object member; an int index looks up an array position. The second
// result is false when the index type does not match the value type,
// the key is absent, or the position is out of range — never a fault.
func (v *Value) Get(index any) (*Value, bool) {
	switch i := index.(type) {
	case string:
		if v.Type() != TypeObject {
			return nil, false
		}
		return v.objVal.Get(i)
	case int:
		if v.Type() != TypeArray {
			return nil, false
		}
		if i < 0 || i >= len(v.arrVal) {
			return nil, false
		}
		return v.arrVal[i], true
	default:
		return nil, false
	}
}

// At is the chaining variant of Get: where Get reports "no value", At
// returns Undefined, so lookups compose without intermediate checks:
//
//	v.At("config").At("servers").At(0).At("host")
//
// The two contracts are deliberately distinct: Get distinguishes "the
// member is absent" from "the member is Undefined"; At does not.
func (v *Value) At(index any) *Value {
	if out, ok := v.Get(index); ok {
		return out
	}
	return Undefined()
}
