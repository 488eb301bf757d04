package tjson

// Visitor receives the depth-first event sequence of a Value tree.
// This is the protocol boundary for typed-record façades: the core
// emits events via Walk and accepts the same primitives via Builder,
// and never depends on the shape of application types.
type Visitor interface {
	// Scalar reports a leaf value (bool, data, number, string,
	// timestamp, or the Undefined absence marker).
	Scalar(v *Value) error

	// BeginObject opens an object of size members; each member is
	// reported as MemberName followed by that member's value events.
	BeginObject(size int) error
	MemberName(name string) error
	EndObject() error

	// BeginArray opens an array of size elements, each reported as its
	// own value events.
	BeginArray(size int) error
	EndArray() error

	// BeginSet opens a set of size elements, reported in the set's
	// iteration order.
	BeginSet(size int) error
	EndSet() error
}

// Walk emits v's event sequence to vis, depth-first. Members follow
// the object's iteration order, set elements the set's.
func Walk(v *Value, vis Visitor) error {
	switch v.Type() {
	case TypeObject:
		if err := vis.BeginObject(v.objVal.Len()); err != nil {
			return err
		}
		for _, entry := range v.objVal.Entries() {
			if err := vis.MemberName(entry.Key); err != nil {
				return err
			}
			if err := Walk(entry.Value, vis); err != nil {
				return err
			}
		}
		return vis.EndObject()
	case TypeArray:
		if err := vis.BeginArray(len(v.arrVal)); err != nil {
			return err
		}
		for _, elem := range v.arrVal {
			if err := Walk(elem, vis); err != nil {
				return err
			}
		}
		return vis.EndArray()
	case TypeSet:
		if err := vis.BeginSet(v.setVal.Len()); err != nil {
			return err
		}
		for _, elem := range v.setVal.Elements() {
			if err := Walk(elem, vis); err != nil {
				return err
			}
		}
		return vis.EndSet()
	default:
		return vis.Scalar(v)
	}
}

// Builder constructs Values from the primitive calls of the event
// protocol. Containers nest: BeginObject/BeginArray/BeginSet open a
// container, PutMember/PushElement fill the innermost open one, and
// the matching End call closes it and returns the finished Value,
// which the caller attaches to its parent (or keeps as the result).
type Builder struct {
	stack []*Value
}

// Depth returns the number of currently open containers.
func (b *Builder) Depth() int { return len(b.stack) }

// BeginObject opens an object with the given order policy.
func (b *Builder) BeginObject(order MapOrder) {
	b.stack = append(b.stack, FromMap(NewMapWith(order)))
}

// BeginArray opens an array.
func (b *Builder) BeginArray() {
	b.stack = append(b.stack, Array())
}

// BeginSet opens a set with the given order policy.
func (b *Builder) BeginSet(order MapOrder) {
	b.stack = append(b.stack, FromSet(NewSetWith(order)))
}

// PutMember adds a member to the innermost open object. Repeated names
// update in place, per Map semantics.
func (b *Builder) PutMember(name string, v *Value) error {
	top, err := b.top(TypeObject, "PutMember")
	if err != nil {
		return err
	}
	top.objVal.Set(name, v)
	return nil
}

// PushElement appends to the innermost open array, or adds to the
// innermost open set (a duplicate set element is a no-op).
func (b *Builder) PushElement(v *Value) error {
	if len(b.stack) == 0 {
		return errf(ErrTagMismatch, "PushElement with no open container")
	}
	top := b.stack[len(b.stack)-1]
	switch top.typ {
	case TypeArray:
		top.arrVal = append(top.arrVal, v)
		return nil
	case TypeSet:
		top.setVal.Add(v)
		return nil
	default:
		return errf(ErrTagMismatch, "PushElement into %s", top.typ)
	}
}

// EndObject closes the innermost open object and returns it.
func (b *Builder) EndObject() (*Value, error) {
	return b.pop(TypeObject, "EndObject")
}

// EndArray closes the innermost open array and returns it.
func (b *Builder) EndArray() (*Value, error) {
	return b.pop(TypeArray, "EndArray")
}

// EndSet closes the innermost open set and returns it.
func (b *Builder) EndSet() (*Value, error) {
	return b.pop(TypeSet, "EndSet")
}

func (b *Builder) top(typ Type, op string) (*Value, error) {
	if len(b.stack) == 0 {
		return nil, errf(ErrTagMismatch, "%s with no open container", op)
	}
	top := b.stack[len(b.stack)-1]
	if top.typ != typ {
		return nil, errf(ErrTagMismatch, "%s on %s", op, top.typ)
	}
	return top, nil
}

func (b *Builder) pop(typ Type, op string) (*Value, error) {
	top, err := b.top(typ, op)
	if err != nil {
		return nil, err
	}
	b.stack = b.stack[:len(b.stack)-1]
	return top, nil
}

// TreeBuilder is a Visitor that rebuilds the Value tree from an event
// sequence; Walk into a TreeBuilder reproduces an equal tree. New
// containers use the given order policy.
type TreeBuilder struct {
	Order MapOrder

	b       Builder
	names   []string // pending member name per open object
	hasName []bool
	result  *Value
}

// Build returns the finished tree after a complete event sequence.
func (t *TreeBuilder) Build() (*Value, error) {
	if t.b.Depth() != 0 || t.result == nil {
		return nil, errf(ErrUnexpectedEOF, "incomplete event sequence")
	}
	return t.result, nil
}

func (t *TreeBuilder) Scalar(v *Value) error {
	return t.place(v)
}

func (t *TreeBuilder) BeginObject(size int) error {
	t.b.BeginObject(t.Order)
	t.names = append(t.names, "")
	t.hasName = append(t.hasName, false)
	return nil
}

func (t *TreeBuilder) MemberName(name string) error {
	if len(t.names) == 0 {
		return errf(ErrTagMismatch, "MemberName with no open object")
	}
	t.names[len(t.names)-1] = name
	t.hasName[len(t.hasName)-1] = true
	return nil
}

func (t *TreeBuilder) EndObject() error {
	v, err := t.b.EndObject()
	if err != nil {
		return err
	}
	t.names = t.names[:len(t.names)-1]
	t.hasName = t.hasName[:len(t.hasName)-1]
	return t.place(v)
}

func (t *TreeBuilder) BeginArray(size int) error {
	t.b.BeginArray()
	return nil
}

func (t *TreeBuilder) EndArray() error {
	v, err := t.b.EndArray()
	if err != nil {
		return err
	}
	return t.place(v)
}

func (t *TreeBuilder) BeginSet(size int) error {
	t.b.BeginSet(t.Order)
	return nil
}

func (t *TreeBuilder) EndSet() error {
	v, err := t.b.EndSet()
	if err != nil {
		return err
	}
	return t.place(v)
}

// place attaches a finished value to the innermost open container, or
// records it as the result when nothing is open.
func (t *TreeBuilder) place(v *Value) error {
	if t.b.Depth() == 0 {
		t.result = v
		return nil
	}
	top := t.b.stack[t.b.Depth()-1]
	if top.typ == TypeObject {
		if len(t.hasName) == 0 || !t.hasName[len(t.hasName)-1] {
			return errf(ErrTagMismatch, "object member value without a MemberName")
		}
		t.hasName[len(t.hasName)-1] = false
		return t.b.PutMember(t.names[len(t.names)-1], v)
	}
	return t.b.PushElement(v)
}
