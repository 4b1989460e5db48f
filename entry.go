package chainmap

// Entry is the result of Table.Entry: either an occupied slot holding an
// equal key, or a vacant position where the key can be placed without
// hashing it again. An Entry is only valid until the table is next
// modified through any other path.
type Entry[K, V any] struct {
	table  *Table[K, V]
	key    K
	bucket int
	index  int // -1 when vacant
	epoch  int
}

// Entry looks key up once and returns a handle for a follow-up read or
// write. The table grows first if needed, so inserting through a vacant
// entry never triggers a resize.
func (t *Table[K, V]) Entry(key K) Entry[K, V] {
	t.grow(t.items + 1)

	b, i := t.locate(key)
	return Entry[K, V]{
		table:  t,
		key:    key,
		bucket: b,
		index:  i,
		epoch:  t.resizes,
	}
}

// Occupied returns the occupied view of e, if the key was found.
func (e Entry[K, V]) Occupied() (OccupiedEntry[K, V], bool) {
	if e.index < 0 {
		return OccupiedEntry[K, V]{}, false
	}
	return OccupiedEntry[K, V]{table: e.table, bucket: e.bucket, index: e.index}, true
}

// Vacant returns the vacant view of e, if the key was not found.
func (e Entry[K, V]) Vacant() (VacantEntry[K, V], bool) {
	if e.index >= 0 {
		return VacantEntry[K, V]{}, false
	}
	return VacantEntry[K, V]{table: e.table, key: e.key, bucket: e.bucket, epoch: e.epoch}, true
}

// Key returns the stored key when occupied and the looked-up key otherwise.
func (e Entry[K, V]) Key() K {
	if o, ok := e.Occupied(); ok {
		return o.Key()
	}
	return e.key
}

// OrInsert returns a pointer to the existing value, or stores value and
// returns a pointer to it.
func (e Entry[K, V]) OrInsert(value V) *V {
	if o, ok := e.Occupied(); ok {
		return o.GetPtr()
	}
	v, _ := e.Vacant()
	return v.Insert(value)
}

// OrInsertWith is OrInsert with a lazily built value; fn runs only when
// the entry is vacant.
func (e Entry[K, V]) OrInsertWith(fn func() V) *V {
	if o, ok := e.Occupied(); ok {
		return o.GetPtr()
	}
	v, _ := e.Vacant()
	return v.Insert(fn())
}

// OrDefault is OrInsert with the zero value of V.
func (e Entry[K, V]) OrDefault() *V {
	var zero V
	return e.OrInsert(zero)
}

// AndModify calls fn on the existing value when occupied and returns e
// unchanged so it can be chained with OrInsert.
func (e Entry[K, V]) AndModify(fn func(*V)) Entry[K, V] {
	if o, ok := e.Occupied(); ok {
		fn(o.GetPtr())
	}
	return e
}

// OccupiedEntry refers to a pair already stored in the table.
type OccupiedEntry[K, V any] struct {
	table  *Table[K, V]
	bucket int
	index  int
}

func (o OccupiedEntry[K, V]) slot() *Pair[K, V] {
	return &o.table.buckets[o.bucket][o.index]
}

func (o OccupiedEntry[K, V]) Key() K { return o.slot().Key }

func (o OccupiedEntry[K, V]) Get() V { return o.slot().Value }

func (o OccupiedEntry[K, V]) GetPtr() *V { return &o.slot().Value }

// Insert overwrites the stored value. Unlike Table.Insert the previous
// value is discarded.
func (o OccupiedEntry[K, V]) Insert(value V) *V {
	p := o.slot()
	p.Value = value
	return &p.Value
}

// Remove deletes the pair from the table and returns its value.
func (o OccupiedEntry[K, V]) Remove() V {
	return o.table.removeAt(o.bucket, o.index)
}

// VacantEntry holds a key that is not in the table together with the
// bucket it hashes to, ready to be inserted.
type VacantEntry[K, V any] struct {
	table  *Table[K, V]
	key    K
	bucket int
	epoch  int
}

func (v VacantEntry[K, V]) Key() K { return v.key }

// Insert appends the pending key with value to its bucket and returns a
// pointer to the stored value.
func (v VacantEntry[K, V]) Insert(value V) *V {
	t := v.table
	if v.epoch != t.resizes {
		panic("chainmap: vacant entry used after the table was resized")
	}
	chain := append(t.buckets[v.bucket], Pair[K, V]{Key: v.key, Value: value})
	t.buckets[v.bucket] = chain
	t.items++
	return &chain[len(chain)-1].Value
}
