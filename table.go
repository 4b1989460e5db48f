package chainmap

import (
	"fmt"

	"go.uber.org/zap"
)

const initialBuckets = 1

// Pair is a single key/value association stored in a chain.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// Table is a hash table that resolves collisions by chaining. Each bucket
// holds a slice of pairs; a key lives in bucket hash(key) % Capacity().
//
// A Table is not safe for concurrent use. Pointers returned by GetPtr,
// Entry and the iterators are invalidated by any insertion or removal.
type Table[K, V any] struct {
	buckets [][]Pair[K, V]
	items   int
	hasher  Hasher[K]
	logger  *zap.Logger
	resizes int
}

// New creates an empty table for comparable keys. No buckets are
// allocated until the first insertion unless WithCapacity is given.
func New[K comparable, V any](opts ...Option) *Table[K, V] {
	return NewWithHasher[K, V](ComparableHasher[K]{}, opts...)
}

// NewWithHasher creates an empty table that hashes and compares keys with h.
func NewWithHasher[K, V any](h Hasher[K], opts ...Option) *Table[K, V] {
	o := buildOptions(opts)
	t := &Table[K, V]{
		hasher: h,
		logger: o.logger,
	}
	if o.capacity > 0 {
		t.Reserve(o.capacity)
	}
	return t
}

// FromPairs builds a comparable-keyed table by inserting pairs in order.
// Later pairs overwrite earlier ones with an equal key.
func FromPairs[K comparable, V any](pairs ...Pair[K, V]) *Table[K, V] {
	t := New[K, V](WithCapacity(len(pairs)))
	for _, p := range pairs {
		t.Insert(p.Key, p.Value)
	}
	return t
}

// Len returns the number of stored pairs.
func (t *Table[K, V]) Len() int { return t.items }

// Capacity returns the number of buckets, not an item limit.
func (t *Table[K, V]) Capacity() int { return len(t.buckets) }

// IsEmpty reports whether the table holds no pairs.
func (t *Table[K, V]) IsEmpty() bool { return t.items == 0 }

// Insert stores value under key. If an equal key was already present its
// value is replaced and returned with replaced set to true.
func (t *Table[K, V]) Insert(key K, value V) (prev V, replaced bool) {
	t.grow(t.items + 1)

	b := t.bucketOf(t.hasher.Hash(key))
	chain := t.buckets[b]
	for i := range chain {
		if t.hasher.Equal(chain[i].Key, key) {
			prev = chain[i].Value
			chain[i].Value = value
			return prev, true
		}
	}

	t.buckets[b] = append(chain, Pair[K, V]{Key: key, Value: value})
	t.items++
	return prev, false
}

// Get returns the value stored under key.
func (t *Table[K, V]) Get(key K) (V, bool) {
	if p, ok := t.GetPtr(key); ok {
		return *p, true
	}
	var zero V
	return zero, false
}

// GetPtr returns a pointer to the value stored under key so that it can be
// modified in place.
func (t *Table[K, V]) GetPtr(key K) (*V, bool) {
	b, i := t.locate(key)
	if i < 0 {
		return nil, false
	}
	return &t.buckets[b][i].Value, true
}

// ContainsKey reports whether key is present.
func (t *Table[K, V]) ContainsKey(key K) bool {
	_, ok := t.GetPtr(key)
	return ok
}

// MustGet returns the value stored under key and panics if there is none.
// Use it only where the key is known to be present.
func (t *Table[K, V]) MustGet(key K) V {
	p, ok := t.GetPtr(key)
	if !ok {
		panic("no entry found for key")
	}
	return *p
}

// Remove deletes key and returns its value. The last pair of the chain is
// moved into the vacated slot, so chain order is not preserved.
func (t *Table[K, V]) Remove(key K) (V, bool) {
	b, i := t.locate(key)
	if i < 0 {
		var zero V
		return zero, false
	}
	return t.removeAt(b, i), true
}

// Reserve makes room for n items in total without further resizing.
// On an empty table it allocates at least one bucket.
func (t *Table[K, V]) Reserve(n int) {
	t.grow(n)
}

// Clear removes every pair but keeps the bucket array.
func (t *Table[K, V]) Clear() {
	for i := range t.buckets {
		clear(t.buckets[i])
		t.buckets[i] = t.buckets[i][:0]
	}
	t.items = 0
}

// Stats describes how pairs are spread over the buckets.
type Stats struct {
	Items        int
	Buckets      int
	EmptyBuckets int
	LongestChain int
	Resizes      int
}

// Stats walks the bucket array and reports its occupancy.
func (t *Table[K, V]) Stats() Stats {
	s := Stats{Items: t.items, Buckets: len(t.buckets), Resizes: t.resizes}
	for _, chain := range t.buckets {
		if len(chain) == 0 {
			s.EmptyBuckets++
		}
		s.LongestChain = max(s.LongestChain, len(chain))
	}
	return s
}

func (t *Table[K, V]) bucketOf(hash uint64) int {
	return int(hash % uint64(len(t.buckets)))
}

// locate returns the bucket and chain position of key, or i == -1.
// Nothing is hashed while the bucket array is empty.
func (t *Table[K, V]) locate(key K) (b, i int) {
	if len(t.buckets) == 0 {
		return -1, -1
	}
	b = t.bucketOf(t.hasher.Hash(key))
	chain := t.buckets[b]
	for i := range chain {
		if t.hasher.Equal(chain[i].Key, key) {
			return b, i
		}
	}
	return b, -1
}

func (t *Table[K, V]) removeAt(b, i int) V {
	chain := t.buckets[b]
	last := len(chain) - 1
	value := chain[i].Value
	chain[i] = chain[last]
	chain[last] = Pair[K, V]{}
	t.buckets[b] = chain[:last]
	t.items--
	return value
}

// overloaded reports whether items exceed three quarters of buckets.
func overloaded(items, buckets int) bool {
	return 4*items > 3*buckets
}

// grow doubles the bucket count until n items fit under the load factor,
// then rehashes once.
func (t *Table[K, V]) grow(n int) {
	size := len(t.buckets)
	if size > 0 && !overloaded(n, size) {
		return
	}
	target := max(size, initialBuckets)
	for overloaded(n, target) {
		target *= 2
	}
	if target != size {
		t.resize(target)
	}
}

// resize moves every pair into a fresh bucket array of the given size.
// Pairs that collide in the new array are not kept in their old order.
func (t *Table[K, V]) resize(size int) {
	buckets := make([][]Pair[K, V], size)
	for _, chain := range t.buckets {
		for _, p := range chain {
			b := int(t.hasher.Hash(p.Key) % uint64(size))
			buckets[b] = append(buckets[b], p)
		}
	}

	t.logger.Debug("resized table",
		zap.Int("from", len(t.buckets)),
		zap.Int("to", size),
		zap.Int("items", t.items))

	t.buckets = buckets
	t.resizes++
}

// checkInvariants verifies the item count and that every key sits in the
// bucket its hash selects, exactly once.
func (t *Table[K, V]) checkInvariants() error {
	n := 0
	for b, chain := range t.buckets {
		for i, p := range chain {
			if want := t.bucketOf(t.hasher.Hash(p.Key)); want != b {
				return fmt.Errorf("key at bucket %d position %d belongs in bucket %d", b, i, want)
			}
			for j := i + 1; j < len(chain); j++ {
				if t.hasher.Equal(p.Key, chain[j].Key) {
					return fmt.Errorf("duplicate key in bucket %d at positions %d and %d", b, i, j)
				}
			}
		}
		n += len(chain)
	}
	if n != t.items {
		return fmt.Errorf("item count %d does not match %d stored pairs", t.items, n)
	}
	if len(t.buckets) > 0 && overloaded(t.items, len(t.buckets)) {
		return fmt.Errorf("load factor exceeded: %d items in %d buckets", t.items, len(t.buckets))
	}
	return nil
}
