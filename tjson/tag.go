package tjson

import "strings"

// TagKind is one letter of the tag vocabulary. The vocabulary is
// closed: scalar codes b d f i u s t, the container codes A and S, and
// O for "nested object" (valid only as a composite's element tag).
type TagKind uint8

const (
	TagBool      TagKind = iota // b
	TagData                     // d
	TagFloat                    // f
	TagInt                      // i
	TagUint                     // u
	TagString                   // s
	TagTimestamp                // t
	TagObject                   // O
	TagArray                    // A<T>
	TagSet                      // S<T>
)

// Tag is a parsed tag descriptor. Elem is non-nil exactly for the
// container kinds TagArray and TagSet, describing the uniform element
// tag. A nil *Tag means the member carries no tag (objects and arrays
// are structurally evident and never require one on their own key).
type Tag struct {
	Kind TagKind
	Elem *Tag
}

// String renders the tag in its wire form, e.g. "i", "A<O>", "S<A<u>>".
func (t *Tag) String() string {
	switch t.Kind {
	case TagBool:
		return "b"
	case TagData:
		return "d"
	case TagFloat:
		return "f"
	case TagInt:
		return "i"
	case TagUint:
		return "u"
	case TagString:
		return "s"
	case TagTimestamp:
		return "t"
	case TagObject:
		return "O"
	case TagArray:
		return "A<" + t.Elem.String() + ">"
	default:
		return "S<" + t.Elem.String() + ">"
	}
}

// Equal reports whether two descriptors denote the same tag.
func (t *Tag) Equal(other *Tag) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}
	return t.Elem.Equal(other.Elem)
}

// ParseMemberName splits a member name into its base name and tag
// descriptor. The tag is everything after the last unescaped ":"; in
// the base name "\:" denotes a literal colon and "\\" a literal
// backslash, so a ":" is escaped exactly when an odd run of
// backslashes precedes it. A name with no unescaped colon has a nil
// tag. Malformed tag text fails with ErrInvalidTag.
func ParseMemberName(name string) (string, *Tag, error) {
	sep := -1
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] != ':' {
			continue
		}
		bs := 0
		for j := i - 1; j >= 0 && name[j] == '\\'; j-- {
			bs++
		}
		if bs%2 == 0 {
			sep = i
			break
		}
	}
	if sep == -1 {
		return unescapeName(name), nil, nil
	}
	tag, err := ParseTag(name[sep+1:])
	if err != nil {
		return "", nil, err
	}
	return unescapeName(name[:sep]), tag, nil
}

// ParseTag parses tag text: a single scalar letter, O, or a composite
// A<T> / S<T> with a recursively parsed inner tag.
func ParseTag(s string) (*Tag, error) {
	switch s {
	case "":
		return nil, errf(ErrInvalidTag, "empty tag")
	case "b":
		return &Tag{Kind: TagBool}, nil
	case "d":
		return &Tag{Kind: TagData}, nil
	case "f":
		return &Tag{Kind: TagFloat}, nil
	case "i":
		return &Tag{Kind: TagInt}, nil
	case "u":
		return &Tag{Kind: TagUint}, nil
	case "s":
		return &Tag{Kind: TagString}, nil
	case "t":
		return &Tag{Kind: TagTimestamp}, nil
	case "O":
		return &Tag{Kind: TagObject}, nil
	}
	if len(s) >= 3 && (s[0] == 'A' || s[0] == 'S') && s[1] == '<' {
		if s[len(s)-1] != '>' {
			return nil, errf(ErrInvalidTag, "unterminated composite tag %q", s)
		}
		elem, err := ParseTag(s[2 : len(s)-1])
		if err != nil {
			return nil, err
		}
		kind := TagArray
		if s[0] == 'S' {
			kind = TagSet
		}
		return &Tag{Kind: kind, Elem: elem}, nil
	}
	return nil, errf(ErrInvalidTag, "unknown tag %q", s)
}

// RenderMemberName is the inverse of ParseMemberName: it escapes
// literal backslashes and colons in the base name and appends the tag,
// if any. Backslashes escape too, or a base name ending in "\" would
// swallow the tag separator on the way back in.
func RenderMemberName(base string, tag *Tag) string {
	name := nameEscaper.Replace(base)
	if tag == nil {
		return name
	}
	return name + ":" + tag.String()
}

var nameEscaper = strings.NewReplacer(`\`, `\\`, ":", `\:`)

func unescapeName(name string) string {
	if !strings.Contains(name, `\`) {
		return name
	}
	var sb strings.Builder
	sb.Grow(len(name))
	for i := 0; i < len(name); i++ {
		if name[i] == '\\' && i+1 < len(name) && (name[i+1] == '\\' || name[i+1] == ':') {
			i++
		}
		sb.WriteByte(name[i])
	}
	return sb.String()
}

// DeriveTag computes the minimal tag the encoder attaches to a member
// holding v. Objects yield nil (untagged). Arrays yield A<T> when a
// uniform element tag exists, or nil when every element is itself
// structurally evident (object or array); an empty array is untagged.
// Sets always yield S<T>: set-ness is not structurally evident, so a
// uniform element tag is required and an empty set renders S<O>.
// Values the format cannot express under one tag fail with
// ErrTagMismatch; Undefined has no wire form and always fails.
func DeriveTag(v *Value) (*Tag, error) {
	switch v.Type() {
	case TypeBool:
		return &Tag{Kind: TagBool}, nil
	case TypeData:
		return &Tag{Kind: TagData}, nil
	case TypeNumber:
		switch {
		case v.numVal.IsInt64():
			return &Tag{Kind: TagInt}, nil
		case v.numVal.IsUint64():
			return &Tag{Kind: TagUint}, nil
		default:
			return &Tag{Kind: TagFloat}, nil
		}
	case TypeString:
		return &Tag{Kind: TagString}, nil
	case TypeTimestamp:
		return &Tag{Kind: TagTimestamp}, nil
	case TypeObject:
		return nil, nil
	case TypeArray:
		if len(v.arrVal) == 0 {
			return nil, nil
		}
		elem, err := uniformElemTag(v.arrVal)
		if err == nil {
			return &Tag{Kind: TagArray, Elem: elem}, nil
		}
		// No uniform tag: still expressible untagged if the whole
		// subtree is structurally evident. An untagged rendering has no
		// place for element tags, so the check is recursive.
		for _, e := range v.arrVal {
			if !untaggedOK(e) {
				return nil, err
			}
		}
		return nil, nil
	case TypeSet:
		if v.setVal.IsEmpty() {
			return &Tag{Kind: TagSet, Elem: &Tag{Kind: TagObject}}, nil
		}
		elem, err := uniformElemTag(v.setVal.Elements())
		if err != nil {
			return nil, err
		}
		return &Tag{Kind: TagSet, Elem: elem}, nil
	default:
		return nil, errf(ErrTagMismatch, "undefined value has no wire form")
	}
}

// elemTag is DeriveTag for a composite element position, where the
// untagged option does not exist: objects are O, arrays must resolve
// to A<T> (empty arrays use A<O>).
func elemTag(v *Value) (*Tag, error) {
	switch v.Type() {
	case TypeObject:
		return &Tag{Kind: TagObject}, nil
	case TypeArray:
		if len(v.arrVal) == 0 {
			return &Tag{Kind: TagArray, Elem: &Tag{Kind: TagObject}}, nil
		}
		elem, err := uniformElemTag(v.arrVal)
		if err != nil {
			return nil, err
		}
		return &Tag{Kind: TagArray, Elem: elem}, nil
	default:
		return DeriveTag(v)
	}
}

// untaggedOK reports whether v decodes correctly with no tag anywhere
// in its subtree: objects always, arrays when every element does.
func untaggedOK(v *Value) bool {
	switch v.Type() {
	case TypeObject:
		return true
	case TypeArray:
		for _, e := range v.arrVal {
			if !untaggedOK(e) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func uniformElemTag(elems []*Value) (*Tag, error) {
	var uniform *Tag
	for i, e := range elems {
		t, err := elemTag(e)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			uniform = t
			continue
		}
		if !uniform.Equal(t) {
			return nil, errf(ErrTagMismatch,
				"no uniform element tag: %s versus %s", uniform, t)
		}
	}
	return uniform, nil
}
