package chainmap

// The functions below query a Table[K, V] with a key of a related type Q,
// such as a []byte view of a stored string. Go methods cannot introduce
// type parameters, so they are package-level.

func locateAs[K, V, Q any](t *Table[K, V], q Q, eq Equivalent[K, Q]) (b, i int) {
	if len(t.buckets) == 0 {
		return -1, -1
	}
	b = t.bucketOf(eq.Hash(q))
	chain := t.buckets[b]
	for i := range chain {
		if eq.Matches(chain[i].Key, q) {
			return b, i
		}
	}
	return b, -1
}

// GetAs returns the value whose key matches q under eq.
func GetAs[K, V, Q any](t *Table[K, V], q Q, eq Equivalent[K, Q]) (V, bool) {
	if p, ok := GetPtrAs(t, q, eq); ok {
		return *p, true
	}
	var zero V
	return zero, false
}

// GetPtrAs returns a pointer to the value whose key matches q under eq.
func GetPtrAs[K, V, Q any](t *Table[K, V], q Q, eq Equivalent[K, Q]) (*V, bool) {
	b, i := locateAs(t, q, eq)
	if i < 0 {
		return nil, false
	}
	return &t.buckets[b][i].Value, true
}

// ContainsKeyAs reports whether some key matches q under eq.
func ContainsKeyAs[K, V, Q any](t *Table[K, V], q Q, eq Equivalent[K, Q]) bool {
	_, ok := GetPtrAs(t, q, eq)
	return ok
}

// RemoveAs deletes the pair whose key matches q under eq.
func RemoveAs[K, V, Q any](t *Table[K, V], q Q, eq Equivalent[K, Q]) (V, bool) {
	b, i := locateAs(t, q, eq)
	if i < 0 {
		var zero V
		return zero, false
	}
	return t.removeAt(b, i), true
}
