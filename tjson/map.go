package tjson

import "sort"

// MapOrder is the iteration-order policy of a Map or Set. It is fixed
// at construction and affects iteration order only; equality is always
// order-independent.
type MapOrder uint8

const (
	// OrderSorted iterates in ascending byte-wise key order,
	// independent of insertion order.
	OrderSorted MapOrder = iota

	// OrderInsertion iterates in first-insertion order. Re-inserting
	// an existing key updates its value without moving it.
	OrderInsertion
)

// MapEntry is a key/value pair in a Map.
type MapEntry struct {
	Key   string
	Value *Value
}

// Map is an ordered associative container from string keys to Values.
// Keys are unique; values are mutable in place.
type Map struct {
	order   MapOrder
	entries []MapEntry
	index   map[string]int
}

// NewMap returns an empty Map with the sorted order policy.
func NewMap() *Map {
	return NewMapWith(OrderSorted)
}

// NewMapWith returns an empty Map with the given order policy.
func NewMapWith(order MapOrder) *Map {
	return &Map{order: order, index: make(map[string]int)}
}

// Order returns the map's order policy.
func (m *Map) Order() MapOrder { return m.order }

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.entries) }

// IsEmpty reports whether the map has no entries.
func (m *Map) IsEmpty() bool { return len(m.entries) == 0 }

// Contains reports whether the key is present.
func (m *Map) Contains(key string) bool {
	_, ok := m.index[key]
	return ok
}

// Get returns the value for key. The second result is false when the
// key is absent.
func (m *Map) Get(key string) (*Value, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// Set inserts or updates the value for key. Updating an existing key
// never moves its iteration position.
func (m *Map) Set(key string, v *Value) {
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = v
		return
	}
	pos := len(m.entries)
	if m.order == OrderSorted {
		pos = sort.Search(len(m.entries), func(i int) bool {
			return m.entries[i].Key > key
		})
	}
	m.entries = append(m.entries, MapEntry{})
	copy(m.entries[pos+1:], m.entries[pos:])
	m.entries[pos] = MapEntry{Key: key, Value: v}
	for k, i := range m.index {
		if i >= pos {
			m.index[k] = i + 1
		}
	}
	m.index[key] = pos
}

// Delete removes the key and reports whether it was present.
func (m *Map) Delete(key string) bool {
	pos, ok := m.index[key]
	if !ok {
		return false
	}
	m.entries = append(m.entries[:pos], m.entries[pos+1:]...)
	delete(m.index, key)
	for k, i := range m.index {
		if i > pos {
			m.index[k] = i - 1
		}
	}
	return true
}

// Keys returns the keys in iteration order.
func (m *Map) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Values returns the values in iteration order.
func (m *Map) Values() []*Value {
	vals := make([]*Value, len(m.entries))
	for i, e := range m.entries {
		vals[i] = e.Value
	}
	return vals
}

// Entries returns the entries in iteration order. The slice is a copy;
// the values are shared.
func (m *Map) Entries() []MapEntry {
	out := make([]MapEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Equal reports whether the two maps hold the same set of key/value
// pairs. Iteration order and order policy do not participate.
func (m *Map) Equal(other *Map) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.entries) != len(other.entries) {
		return false
	}
	for _, e := range m.entries {
		ov, ok := other.Get(e.Key)
		if !ok || !e.Value.Equal(ov) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy preserving the order policy.
func (m *Map) Clone() *Map {
	out := NewMapWith(m.order)
	for _, e := range m.entries {
		out.Set(e.Key, e.Value.Clone())
	}
	return out
}

// sortedEntries returns the entries in ascending key order regardless
// of policy. Used by order-independent comparison.
func (m *Map) sortedEntries() []MapEntry {
	out := m.Entries()
	if m.order != OrderSorted {
		sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	}
	return out
}

// compareMaps orders two maps as their sorted (key, value) sequences.
func compareMaps(a, b *Map) int {
	ae, be := a.sortedEntries(), b.sortedEntries()
	for i := 0; i < len(ae) && i < len(be); i++ {
		if ae[i].Key != be[i].Key {
			if ae[i].Key < be[i].Key {
				return -1
			}
			return 1
		}
		if c := ae[i].Value.Compare(be[i].Value); c != 0 {
			return c
		}
	}
	return cmpOrdered(int64(len(ae)), int64(len(be)))
}
