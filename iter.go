package chainmap

import "iter"

// Iter walks a table bucket by bucket, then along each chain. It must not
// be used across a modification of the table.
type Iter[K, V any] struct {
	table  *Table[K, V]
	bucket int
	at     int
	cur    *Pair[K, V]
}

// Iter returns a cursor positioned before the first pair.
func (t *Table[K, V]) Iter() *Iter[K, V] {
	return &Iter[K, V]{table: t}
}

// Next advances to the next pair and reports whether there is one.
func (it *Iter[K, V]) Next() bool {
	buckets := it.table.buckets
	for it.bucket < len(buckets) {
		chain := buckets[it.bucket]
		if it.at < len(chain) {
			it.cur = &chain[it.at]
			it.at++
			return true
		}
		it.bucket++
		it.at = 0
	}
	it.cur = nil
	return false
}

// Key returns the key at the cursor. Only valid after Next returned true.
func (it *Iter[K, V]) Key() K { return it.cur.Key }

// Value returns the value at the cursor.
func (it *Iter[K, V]) Value() V { return it.cur.Value }

// ValuePtr returns a pointer to the value at the cursor for in-place edits.
func (it *Iter[K, V]) ValuePtr() *V { return &it.cur.Value }

// All yields every pair in bucket order.
func (t *Table[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := t.Iter()
		for it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// Keys yields every key in bucket order.
func (t *Table[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range t.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values yields every value in bucket order.
func (t *Table[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range t.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// DrainIter removes pairs from a table as it advances. Each chain is
// emptied from its back before moving to the next bucket.
type DrainIter[K, V any] struct {
	table  *Table[K, V]
	bucket int
	key    K
	value  V
}

// Drain returns a consuming cursor. Once Next returns false the table is
// empty; its bucket array is kept.
func (t *Table[K, V]) Drain() *DrainIter[K, V] {
	return &DrainIter[K, V]{table: t}
}

// Next pops the next pair and reports whether there was one.
func (d *DrainIter[K, V]) Next() bool {
	t := d.table
	for d.bucket < len(t.buckets) {
		chain := t.buckets[d.bucket]
		if n := len(chain); n > 0 {
			d.key, d.value = chain[n-1].Key, chain[n-1].Value
			chain[n-1] = Pair[K, V]{}
			t.buckets[d.bucket] = chain[:n-1]
			t.items--
			return true
		}
		d.bucket++
	}
	var (
		zk K
		zv V
	)
	d.key, d.value = zk, zv
	return false
}

// Key returns the key of the last popped pair.
func (d *DrainIter[K, V]) Key() K { return d.key }

// Value returns the value of the last popped pair.
func (d *DrainIter[K, V]) Value() V { return d.value }

// DrainAll yields and removes every pair. Stopping early leaves the
// remaining pairs in the table.
func (t *Table[K, V]) DrainAll() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		d := t.Drain()
		for d.Next() {
			if !yield(d.Key(), d.Value()) {
				return
			}
		}
	}
}

// Collect builds a comparable-keyed table from seq. Later pairs overwrite
// earlier ones with an equal key.
func Collect[K comparable, V any](seq iter.Seq2[K, V], opts ...Option) *Table[K, V] {
	t := New[K, V](opts...)
	for k, v := range seq {
		t.Insert(k, v)
	}
	return t
}
