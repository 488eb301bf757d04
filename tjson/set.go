package tjson

import "sort"

// Set is an ordered container of unique Values. Uniqueness follows
// Value.Equal (deep, order-independent for nested containers). The
// order policy is fixed at construction: OrderSorted iterates in
// ascending Value.Compare order, OrderInsertion in first-insertion
// order. Iteration is stable across repeated calls without mutation.
type Set struct {
	order MapOrder
	elems []*Value
}

// NewSet returns an empty Set with the sorted order policy.
func NewSet() *Set {
	return NewSetWith(OrderSorted)
}

// NewSetWith returns an empty Set with the given order policy.
func NewSetWith(order MapOrder) *Set {
	return &Set{order: order}
}

// Order returns the set's order policy.
func (s *Set) Order() MapOrder { return s.order }

// Len returns the number of elements.
func (s *Set) Len() int { return len(s.elems) }

// IsEmpty reports whether the set has no elements.
func (s *Set) IsEmpty() bool { return len(s.elems) == 0 }

// find locates v. pos is the element's index when found, otherwise the
// position an insert would use under the active policy.
func (s *Set) find(v *Value) (pos int, found bool) {
	if s.order == OrderSorted {
		pos = sort.Search(len(s.elems), func(i int) bool {
			return s.elems[i].Compare(v) >= 0
		})
		found = pos < len(s.elems) && s.elems[pos].Equal(v)
		return pos, found
	}
	for i, e := range s.elems {
		if e.Equal(v) {
			return i, true
		}
	}
	return len(s.elems), false
}

// Contains reports whether an equal element is present.
func (s *Set) Contains(v *Value) bool {
	_, found := s.find(v)
	return found
}

// Add inserts v and reports whether the set changed. Adding an element
// that is already present is a no-op.
func (s *Set) Add(v *Value) bool {
	pos, found := s.find(v)
	if found {
		return false
	}
	s.elems = append(s.elems, nil)
	copy(s.elems[pos+1:], s.elems[pos:])
	s.elems[pos] = v
	return true
}

// Remove deletes the element equal to v and reports whether it was
// present.
func (s *Set) Remove(v *Value) bool {
	pos, found := s.find(v)
	if !found {
		return false
	}
	s.elems = append(s.elems[:pos], s.elems[pos+1:]...)
	return true
}

// Elements returns the elements in iteration order. The slice is a
// copy; the values are shared.
func (s *Set) Elements() []*Value {
	out := make([]*Value, len(s.elems))
	copy(out, s.elems)
	return out
}

// Equal reports whether the two sets hold the same elements.
// Iteration order and order policy do not participate.
func (s *Set) Equal(other *Set) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.elems) != len(other.elems) {
		return false
	}
	for _, e := range s.elems {
		if !other.Contains(e) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy preserving the order policy.
func (s *Set) Clone() *Set {
	out := NewSetWith(s.order)
	for _, e := range s.elems {
		out.Add(e.Clone())
	}
	return out
}

// sortedElements returns the elements in ascending Compare order
// regardless of policy. Used by order-independent comparison.
func (s *Set) sortedElements() []*Value {
	out := s.Elements()
	if s.order != OrderSorted {
		sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	}
	return out
}

// compareSets orders two sets as their sorted element sequences.
func compareSets(a, b *Set) int {
	ae, be := a.sortedElements(), b.sortedElements()
	for i := 0; i < len(ae) && i < len(be); i++ {
		if c := ae[i].Compare(be[i]); c != 0 {
			return c
		}
	}
	return cmpOrdered(int64(len(ae)), int64(len(be)))
}
