package tjson

import "strings"

// Pointer resolves an RFC 6901 JSON Pointer against the tree and
// returns the addressed value. The empty pointer resolves to v itself;
// any other pointer must start with "/". Within a segment "~1" decodes
// to "/" and "~0" to "~". A segment is an object key when the current
// node is an object, or an array index when it is an array; the index
// is a bare non-negative decimal with no leading "+" and no leading
// zero (unless it is exactly "0"). Any type mismatch, missing key,
// malformed index or out-of-range position fails resolution for the
// whole pointer.
//
// The returned value is a live node of the tree: assigning through it
// mutates the tree in place.
func (v *Value) Pointer(pointer string) (*Value, bool) {
	if pointer == "" {
		return v, v != nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, false
	}
	target := v
	for _, token := range strings.Split(pointer, "/")[1:] {
		token = strings.ReplaceAll(token, "~1", "/")
		token = strings.ReplaceAll(token, "~0", "~")
		switch target.Type() {
		case TypeObject:
			next, ok := target.objVal.Get(token)
			if !ok {
				return nil, false
			}
			target = next
		case TypeArray:
			i, ok := parseArrayIndex(token)
			if !ok || i >= len(target.arrVal) {
				return nil, false
			}
			target = target.arrVal[i]
		default:
			return nil, false
		}
	}
	return target, true
}

// parseArrayIndex parses a strict RFC 6901 array index: decimal digits
// only, no sign, no leading zero unless the index is exactly "0".
func parseArrayIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if s[0] == '0' && len(s) > 1 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		if n > (1<<31-1-int(c-'0'))/10 {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
