/*
Package chainmap provides a generic in-memory hash table that resolves
collisions by separate chaining.

Table is designed as a building block for code that needs key/value storage
with amortized O(1) operations and no ordering guarantees. It owns its bucket
array directly and needs no teardown.

Basic usage:

	import "github.com/theflywheel/chainmap"

	t := chainmap.New[string, int]()

	// Insert returns the previous value, if any
	t.Insert("apples", 3)
	prev, replaced := t.Insert("apples", 5) // 3, true

	// Look up and remove
	if n, ok := t.Get("apples"); ok {
		fmt.Println("apples:", n)
	}
	t.Remove("apples")

	// Count words with a single hash per word
	for _, w := range words {
		*t.Entry(w).OrInsert(0)++
	}

	// Look a string key up through a []byte without allocating
	n, ok := chainmap.GetAs(t, buf, chainmap.BytesAsString{})

Features:

  - Separate chaining: each bucket is a slice of key/value pairs
  - Automatic resizing: the bucket count doubles whenever the item count
    would exceed three quarters of it, followed by one full rehash
  - Entry API for lookup-or-insert without hashing twice
  - Lookup through related key types via Equivalent
  - Borrowing (Iter, All) and consuming (Drain, DrainAll) iteration
  - xxhash for strings, byte slices and integers; hash/maphash for other
    comparable keys

Implementation Details:

A key is placed in bucket hash(key) % Capacity(). Inserting an equal key
replaces the value in place; otherwise the pair is appended to the chain.
Removal moves the chain's last pair into the freed slot, so chain order is
not stable across removals or resizes.

The table is not safe for concurrent use. Pointers obtained from GetPtr,
Entry or the iterators must not be kept across a modification of the table.
*/
package chainmap
