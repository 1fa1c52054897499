package orderedmap

import "sort"

// entry is one (key, position) pair held by a flatIndex.
type entry[K any] struct {
	key K
	pos int
}

// flatIndex is a sorted-array-backed map from key to position, the side
// index that backs OrderedMap. Lookups are O(log n) via binary search;
// mutation shifts a contiguous run of the backing slice, same as the
// original's flat_map over std::vector.
type flatIndex[K any] struct {
	cmp func(a, b K) int
	es  []entry[K]
}

func newFlatIndex[K any](cmp func(a, b K) int) *flatIndex[K] {
	return &flatIndex[K]{cmp: cmp}
}

// search returns the index at which key is found (ok=true) or the index at
// which it would need to be inserted to keep es sorted (ok=false).
func (f *flatIndex[K]) search(key K) (int, bool) {
	lo, hi := 0, len(f.es)
	for lo < hi {
		mid := (lo + hi) / 2
		c := f.cmp(f.es[mid].key, key)
		switch {
		case c == 0:
			return mid, true
		case c < 0:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return lo, false
}

func (f *flatIndex[K]) find(key K) (int, bool) {
	i, ok := f.search(key)
	if !ok {
		return 0, false
	}
	return f.es[i].pos, true
}

func (f *flatIndex[K]) contains(key K) bool {
	_, ok := f.search(key)
	return ok
}

// insert adds (key, pos) and fails if key is already present.
func (f *flatIndex[K]) insert(key K, pos int) bool {
	i, ok := f.search(key)
	if ok {
		return false
	}
	f.es = append(f.es, entry[K]{})
	copy(f.es[i+1:], f.es[i:])
	f.es[i] = entry[K]{key: key, pos: pos}
	return true
}

// set overwrites the stored position of an existing key.
func (f *flatIndex[K]) set(key K, pos int) bool {
	i, ok := f.search(key)
	if !ok {
		return false
	}
	f.es[i].pos = pos
	return true
}

func (f *flatIndex[K]) delete(key K) bool {
	i, ok := f.search(key)
	if !ok {
		return false
	}
	f.es = append(f.es[:i], f.es[i+1:]...)
	return true
}

func (f *flatIndex[K]) clear() {
	f.es = f.es[:0]
}

func (f *flatIndex[K]) len() int {
	return len(f.es)
}

// rebuild discards the current index and repopulates it from pairs in a
// single O(n log n) sort, as bulk construction requires.
func (f *flatIndex[K]) rebuild(keys []K) {
	f.es = make([]entry[K], len(keys))
	for i, k := range keys {
		f.es[i] = entry[K]{key: k, pos: i}
	}
	sort.Slice(f.es, func(i, j int) bool {
		return f.cmp(f.es[i].key, f.es[j].key) < 0
	})
}
