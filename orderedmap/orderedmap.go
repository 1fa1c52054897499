// Package orderedmap implements a sequence of unique-keyed pairs that
// preserves insertion order while still supporting O(log n) lookup by key.
//
// The representation is two layers, mirroring the original C++ source this
// was ported from: a dense ordered sequence of pairs, plus a sorted
// array-backed side index (flatIndex) mapping each key to its current
// position in that sequence. The index is rebuilt incrementally rather than
// rehashed, so iteration of the main sequence stays O(1) per step and the
// footprint stays compact.
package orderedmap

import "errors"

// ErrKeyExists is returned when an insertion targets a key already present.
var ErrKeyExists = errors.New("orderedmap: key already exists")

// ErrKeyNotFound is returned by At for an absent key.
var ErrKeyNotFound = errors.New("orderedmap: no such key")

// Pair is one key/value entry of an OrderedMap, exposed by Pairs for
// positional iteration.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// OrderedMap is a sequence of (K, V) pairs with unique keys, preserving
// insertion order. Cmp must impose a strict total order on K; two keys are
// equal exactly when Cmp returns 0.
type OrderedMap[K, V any] struct {
	cmp   func(a, b K) int
	pairs []Pair[K, V]
	index *flatIndex[K]
}

// New creates an empty OrderedMap ordered by cmp.
func New[K, V any](cmp func(a, b K) int) *OrderedMap[K, V] {
	return &OrderedMap[K, V]{cmp: cmp, index: newFlatIndex[K](cmp)}
}

// FromPairs bulk-constructs an OrderedMap from pairs, preserving their
// order and rebuilding the index in a single O(n log n) sort. It fails if
// pairs contains a duplicate key.
func FromPairs[K, V any](cmp func(a, b K) int, pairs []Pair[K, V]) (*OrderedMap[K, V], error) {
	m := New[K, V](cmp)
	m.pairs = append(m.pairs, pairs...)
	keys := make([]K, len(pairs))
	for i, p := range pairs {
		keys[i] = p.Key
	}
	m.index.rebuild(keys)
	for i := 1; i < len(m.index.es); i++ {
		if cmp(m.index.es[i-1].key, m.index.es[i].key) == 0 {
			return nil, ErrKeyExists
		}
	}
	return m, nil
}

// Len returns the number of pairs.
func (m *OrderedMap[K, V]) Len() int { return len(m.pairs) }

// Pairs returns the pairs in insertion order. The returned slice aliases
// internal storage and must not be mutated.
func (m *OrderedMap[K, V]) Pairs() []Pair[K, V] { return m.pairs }

// Keys returns the keys in insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	ks := make([]K, len(m.pairs))
	for i, p := range m.pairs {
		ks[i] = p.Key
	}
	return ks
}

// Append adds (key, val) at the end. It fails with ErrKeyExists if key is
// already present.
func (m *OrderedMap[K, V]) Append(key K, val V) error {
	if !m.index.insert(key, len(m.pairs)) {
		return ErrKeyExists
	}
	m.pairs = append(m.pairs, Pair[K, V]{Key: key, Value: val})
	return nil
}

// InsertAt splices (key, val) into the sequence at position pos, shifting
// index entries for keys at or after pos up by one first and recording the
// new key at pos, exactly as the source's insert() does: positions are
// shifted by walking the *old* main sequence from pos onward before the
// new element is spliced in.
func (m *OrderedMap[K, V]) InsertAt(pos int, key K, val V) error {
	if pos < 0 || pos > len(m.pairs) {
		return errors.New("orderedmap: position out of range")
	}
	if m.index.contains(key) {
		return ErrKeyExists
	}
	for i := pos; i < len(m.pairs); i++ {
		k := m.pairs[i].Key
		cur, _ := m.index.find(k)
		m.index.set(k, cur+1)
	}
	m.pairs = append(m.pairs, Pair[K, V]{})
	copy(m.pairs[pos+1:], m.pairs[pos:])
	m.pairs[pos] = Pair[K, V]{Key: key, Value: val}
	m.index.insert(key, pos)
	return nil
}

// PopBack removes the last pair, if any.
func (m *OrderedMap[K, V]) PopBack() {
	if len(m.pairs) == 0 {
		return
	}
	last := m.pairs[len(m.pairs)-1]
	m.index.delete(last.Key)
	m.pairs = m.pairs[:len(m.pairs)-1]
}

// Clear removes every pair.
func (m *OrderedMap[K, V]) Clear() {
	m.pairs = m.pairs[:0]
	m.index.clear()
}

// Find returns the position of key and whether it was present.
func (m *OrderedMap[K, V]) Find(key K) (int, bool) {
	return m.index.find(key)
}

// Contains reports whether key is present.
func (m *OrderedMap[K, V]) Contains(key K) bool {
	return m.index.contains(key)
}

// Count returns 1 if key is present, 0 otherwise.
func (m *OrderedMap[K, V]) Count(key K) int {
	if m.Contains(key) {
		return 1
	}
	return 0
}

// At returns the value stored for key, or ErrKeyNotFound if absent.
func (m *OrderedMap[K, V]) At(key K) (V, error) {
	pos, ok := m.index.find(key)
	if !ok {
		var zero V
		return zero, ErrKeyNotFound
	}
	return m.pairs[pos].Value, nil
}

// GetOrInsert returns a pointer to the value stored for key. If key is
// absent, a default-valued entry is appended at the end first, mirroring
// the source's subscript-with-insertion operator[].
func (m *OrderedMap[K, V]) GetOrInsert(key K) *V {
	if pos, ok := m.index.find(key); ok {
		return &m.pairs[pos].Value
	}
	pos := len(m.pairs)
	m.pairs = append(m.pairs, Pair[K, V]{Key: key})
	m.index.insert(key, pos)
	return &m.pairs[pos].Value
}

// Set stores val for key, inserting a new pair at the end if key is absent
// and overwriting the existing value otherwise.
func (m *OrderedMap[K, V]) Set(key K, val V) {
	*m.GetOrInsert(key) = val
}
